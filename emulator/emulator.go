// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs LS-8 program images: it loads the image, drives
// the CPU one instruction per tick, and reports to the operator console.
package emulator

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"
	"os"
	"strings"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
	ls8io "github.com/ezrec/ls8/io"
)

var _emulator_defines = map[string]string{
	"PRINT_RADIX": "10",
}

// Emulator state. CPU + program + print sink.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program image.

	Tape    ls8io.Tape // Print sink for PRN.
	Console io.Writer  // Operator diagnostics.

	Fault error // Why the last run stopped early, if it did.

	running bool
}

// NewEmulator creates a new emulator, printing to stdout and reporting
// to stderr.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
		Console: os.Stderr,
	}

	emu.Tape.Output = os.Stdout
	emu.Cpu.Output = &emu.Tape

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// report writes a diagnostic line to the operator console.
func (emu *Emulator) report(format string, args ...any) {
	if emu.Console == nil {
		return
	}
	fmt.Fprintln(emu.Console, f(format, args...))
}

// Reset the CPU, and load the program image into memory.
// An image too large for memory is reported, and returns
// cpu.ErrLoadOverflow with the fitting part of the image loaded.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.Fault = nil
	emu.running = false

	err = emu.Cpu.Load(emu.Program.Bytes())
	if errors.Is(err, cpu.ErrLoadOverflow{}) {
		emu.report("WARNING: The program file was too large to be loaded into ram fully. It may also be further overwritten by stack and other system memory.")
	}

	return
}

// LineNo returns the source line number of the instruction at the
// program counter.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Cpu.Pc)
}

// reportOpcode describes an unrecognized opcode, and every valid one.
func (emu *Emulator) reportOpcode(code cpu.ErrOpcode) {
	emu.report("Unrecognized Instruction: %v", fmt.Sprintf("0b%b", uint8(code)))

	valid := make([]string, 0, len(cpu.Opcodes()))
	for _, op := range cpu.Opcodes() {
		valid = append(valid, fmt.Sprintf("0b%08b %v", uint8(op), op.String()))
	}
	emu.report("Available Instructions:\n%v", strings.Join(valid, "\n"))
}

// Tick performs a single tick of the emulator.
//
// done is set once the program halts, or stops on an unrecognized
// opcode; the latter is not an error, and is recorded in Fault. Any
// other fault is returned as an *ErrRuntime.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if !emu.running {
		emu.running = true
		emu.report("CPU RUNNING")
	}

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()

	err = emu.Cpu.Tick()

	var code cpu.ErrOpcode
	switch {
	case err == nil:
		done = emu.Cpu.Halted
	case errors.Is(err, cpu.ErrHalted):
		done = true
		err = nil
	case errors.As(err, &code):
		emu.reportOpcode(code)
		emu.Fault = err
		done = true
		err = nil
	default:
		emu.Fault = err
		done = true
		err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
	}

	return
}

// Run ticks the emulator until the program stops.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
