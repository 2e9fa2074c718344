// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/io"
)

// Channel is the print sink used by PRN.
type Channel io.Channel

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("%v", MEMORY_SIZE),
	"KEY_PRESSED":    fmt.Sprintf("0x%02x", KEY_PRESSED),
	"SP_INIT":        fmt.Sprintf("0x%02x", SP_INIT),
	"VECTOR_TABLE":   fmt.Sprintf("0x%02x", VECTOR_TABLE),
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
	"REGISTER_MAX":   fmt.Sprintf("%v", REGISTER_MAX),
	"IM":             "R5",
	"IS":             "R6",
	"SP":             "R7",
}

// opcodeDefines yields OP_<MNEMONIC> for every instruction.
func opcodeDefines(yield func(name, value string) bool) {
	for _, op := range Opcodes() {
		if !yield("OP_"+op.String(), fmt.Sprintf("0x%02x", uint8(op))) {
			return
		}
	}
}

// Cpu is the simulation context for an LS-8 microprocessor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   Memory                // Unified code, data and stack memory.
	Register [REGISTER_COUNT]uint8 // Register bank; r7 is the stack pointer.
	Pc       int                   // Address of the next instruction.
	Fl       Flags                 // Condition flags.
	Halted   bool                  // Set by HLT, or by a fault.
	Output   Channel               // PRN print sink.
	Ticks    int                   // Instructions executed since reset.
}

// NewCpu creates a new CPU in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// defines yields the memory map, register and opcode symbols.
func defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_cpu_defines), opcodeDefines)
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return defines()
}

// Reset the CPU state.
// - Clears memory, registers and flags.
// - Sets the stack pointer to SP_INIT, and the program counter to the
//   program entry.
// - Rewinds the print sink.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Memory.Reset()
	clear(cpu.Register[:])
	cpu.Register[REG_SP] = SP_INIT
	cpu.Pc = PROGRAM_ENTRY
	cpu.Fl = 0
	cpu.Halted = false
	cpu.Ticks = 0

	if cpu.Output != nil {
		cpu.Output.Rewind()
	}
}

// Load writes a program image into memory, starting at address 0.
// An image larger than memory is truncated to fit, and ErrLoadOverflow
// is returned; the bytes already written stay in place.
func (cpu *Cpu) Load(image []uint8) (err error) {
	for addr, value := range image {
		if addr >= cpu.Memory.Len() {
			err = ErrLoadOverflow{Size: len(image)}
			return
		}
		if cpu.Verbose {
			log.Printf("cpu: load %02x: %d", addr, value)
		}
		cpu.Memory.Write(addr, value)
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"ir",
		"fl",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
			if cpu.Halted {
				strval += " (halted)"
			}
		case "ir":
			strval, _ = Disassemble(&cpu.Memory, cpu.Pc)
		case "fl":
			strval = cpu.Fl.String()
		default:
			val := cpu.Register[byte(reg[1]-'0')]
			strval = fmt.Sprintf("%02X %3d", val, val)
		}
		text += fmt.Sprintf("% 3s: %v\n", reg, strval)
	}

	return
}

// Tick executes a single instruction cycle: fetch the opcode at the
// program counter, dispatch it, and advance to the address the handler
// returns.
//
// An unrecognized opcode halts the CPU and returns ErrOpcode, leaving
// all other state untouched. Any other fault also halts the CPU.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	code, err := cpu.Memory.Read(cpu.Pc)
	if err != nil {
		cpu.Halted = true
		err = &ErrInstruction{Pc: cpu.Pc, Err: err}
		return
	}

	op := Opcode(code)
	handle, ok := dispatch[op]
	if !ok {
		cpu.Halted = true
		err = ErrOpcode(code)
		return
	}

	if cpu.Verbose {
		text, _ := Disassemble(&cpu.Memory, cpu.Pc)
		log.Printf("%02x: %v", cpu.Pc, text)
	}

	next, err := handle(cpu, cpu.Pc)
	if err != nil {
		cpu.Halted = true
		err = &ErrInstruction{Pc: cpu.Pc, Opcode: op, Err: err}
		return
	}

	cpu.Pc = next
	cpu.Ticks++

	return
}

// Execute runs the fetch-decode-execute loop until the CPU halts.
// Returns nil on HLT, ErrOpcode on an unrecognized instruction, or the
// fault that stopped the CPU.
func (cpu *Cpu) Execute() (err error) {
	for !cpu.Halted {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// operand reads operand byte n (from 0) of the instruction at pc.
func (cpu *Cpu) operand(pc int, n int) (value uint8, err error) {
	return cpu.Memory.Read(pc + 1 + n)
}

// register reads operand n of the instruction at pc as a register index.
func (cpu *Cpu) register(pc int, n int) (index uint8, err error) {
	index, err = cpu.operand(pc, n)
	if err != nil {
		return
	}

	err = checkRegister(index)
	return
}

// push decrements the stack pointer, and stores a value at the new top.
func (cpu *Cpu) push(value uint8) (err error) {
	if cpu.Register[REG_SP] == 0 {
		err = ErrStackOverflow
		return
	}

	cpu.Register[REG_SP]--
	err = cpu.Memory.Write(int(cpu.Register[REG_SP]), value)
	return
}

// pop reads the value at the top of the stack, and increments the stack
// pointer.
func (cpu *Cpu) pop() (value uint8, err error) {
	sp := int(cpu.Register[REG_SP])
	value, err = cpu.Memory.Read(sp)
	if err != nil {
		return
	}

	if sp+1 >= cpu.Memory.Len() {
		err = ErrAddressInvalid
		return
	}

	cpu.Register[REG_SP]++
	return
}
