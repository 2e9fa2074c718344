// Package debugger steps an LS-8 emulator under operator control, with
// breakpoints and a line oriented command interpreter.
package debugger

import (
	"log"
	"slices"

	"github.com/ezrec/ls8/emulator"
)

// Breakpoint stops Continue before the instruction at Addr executes.
type Breakpoint struct {
	Addr int
}

// Debugger wraps an emulator.
type Debugger struct {
	*emulator.Emulator

	Breakpoints []Breakpoint

	last []string // Last command, repeated on an empty line.
}

// New creates a debugger for an emulator.
func New(emu *emulator.Emulator) *Debugger {
	return &Debugger{
		Emulator: emu,
	}
}

// IsBreakpoint returns true if a breakpoint is set at addr.
func (dbg *Debugger) IsBreakpoint(addr int) bool {
	return slices.ContainsFunc(dbg.Breakpoints, func(bp Breakpoint) bool {
		return bp.Addr == addr
	})
}

// AddBreakpoint sets a breakpoint. Returns false if one was already set
// at addr.
func (dbg *Debugger) AddBreakpoint(addr int) (added bool) {
	if dbg.IsBreakpoint(addr) {
		return
	}

	dbg.Breakpoints = append(dbg.Breakpoints, Breakpoint{Addr: addr})
	slices.SortFunc(dbg.Breakpoints, func(a, b Breakpoint) int {
		return a.Addr - b.Addr
	})

	added = true
	return
}

// RemoveBreakpoint clears the breakpoint at addr.
func (dbg *Debugger) RemoveBreakpoint(addr int) (err error) {
	n := slices.IndexFunc(dbg.Breakpoints, func(bp Breakpoint) bool {
		return bp.Addr == addr
	})
	if n < 0 {
		err = ErrBreakpointMissing
		return
	}

	dbg.Breakpoints = slices.Delete(dbg.Breakpoints, n, n+1)
	return
}

// Step executes up to count instructions, stopping early if the program
// stops.
func (dbg *Debugger) Step(count int) (done bool, err error) {
	for range count {
		done, err = dbg.Emulator.Tick()
		if done || err != nil {
			return
		}
	}

	return
}

// Continue executes instructions until the program stops, or the
// program counter reaches a breakpoint. At least one instruction is
// executed, so Continue from a breakpoint moves past it.
func (dbg *Debugger) Continue() (done bool, err error) {
	for {
		done, err = dbg.Emulator.Tick()
		if done || err != nil {
			return
		}

		if dbg.IsBreakpoint(dbg.Cpu.Pc) {
			if dbg.Verbose {
				log.Printf("debugger: break at %02x", dbg.Cpu.Pc)
			}
			return
		}
	}
}
