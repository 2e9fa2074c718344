package cpu

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Opcode is an LS-8 instruction byte: AABCDDDD
//   - AA: number of operand bytes that follow.
//   - B: set if the ALU performs the operation.
//   - C: set if the instruction sets the program counter itself.
//   - DDDD: instruction identifier.
type Opcode uint8

const (
	OP_HLT  = Opcode(0b00000001) // hlt
	OP_RET  = Opcode(0b00010001) // ret
	OP_PUSH = Opcode(0b01000101) // push
	OP_POP  = Opcode(0b01000110) // pop
	OP_PRN  = Opcode(0b01000111) // prn
	OP_CALL = Opcode(0b01010000) // call
	OP_JMP  = Opcode(0b01010100) // jmp
	OP_JEQ  = Opcode(0b01010101) // jeq
	OP_JNE  = Opcode(0b01010110) // jne
	OP_LDI  = Opcode(0b10000010) // ldi
	OP_ADD  = Opcode(0b10100000) // add
	OP_MUL  = Opcode(0b10100010) // mul
	OP_CMP  = Opcode(0b10100111) // cmp
)

var opcodeName = map[Opcode]string{
	OP_HLT:  "HLT",
	OP_RET:  "RET",
	OP_PUSH: "PUSH",
	OP_POP:  "POP",
	OP_PRN:  "PRN",
	OP_CALL: "CALL",
	OP_JMP:  "JMP",
	OP_JEQ:  "JEQ",
	OP_JNE:  "JNE",
	OP_LDI:  "LDI",
	OP_ADD:  "ADD",
	OP_MUL:  "MUL",
	OP_CMP:  "CMP",
}

// Operands returns the number of operand bytes following the opcode.
func (op Opcode) Operands() int {
	return int(op >> 6)
}

// Size returns the instruction length in bytes.
func (op Opcode) Size() int {
	return 1 + op.Operands()
}

// IsAlu returns true if the instruction is executed by the ALU.
func (op Opcode) IsAlu() bool {
	return (op & 0b00100000) != 0
}

// SetsPc returns true if the instruction computes its own next program
// counter rather than advancing past its operands.
func (op Opcode) SetsPc() bool {
	return (op & 0b00010000) != 0
}

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() (ok bool) {
	_, ok = opcodeName[op]
	return
}

// Immediate returns true if operand n is an immediate value rather than
// a register index.
func (op Opcode) Immediate(n int) bool {
	return op == OP_LDI && n == 1
}

// String returns the mnemonic, or the binary form of an unknown opcode.
func (op Opcode) String() string {
	name, ok := opcodeName[op]
	if !ok {
		return fmt.Sprintf("0b%08b", uint8(op))
	}
	return name
}

// Opcodes returns every valid opcode, in ascending order.
func Opcodes() []Opcode {
	return slices.Sorted(maps.Keys(opcodeName))
}

// LookupOpcode finds an opcode by mnemonic, in any case.
func LookupOpcode(mnemonic string) (op Opcode, ok bool) {
	mnemonic = strings.ToUpper(mnemonic)
	for op, name := range opcodeName {
		if name == mnemonic {
			return op, true
		}
	}
	return
}

// Disassemble returns the assembly text of the instruction at pc, and
// its size in bytes. Unknown opcodes disassemble as a single data byte.
func Disassemble(mem *Memory, pc int) (text string, size int) {
	code, err := mem.Read(pc)
	if err != nil {
		return "", 0
	}

	op := Opcode(code)
	if !op.Valid() {
		return fmt.Sprintf(".db 0x%02x", code), 1
	}

	args := make([]string, 0, op.Operands())
	for n := range op.Operands() {
		arg, err := mem.Read(pc + 1 + n)
		if err != nil {
			args = append(args, "?")
			continue
		}
		if op.Immediate(n) {
			args = append(args, fmt.Sprintf("%d", arg))
		} else {
			args = append(args, fmt.Sprintf("R%d", arg))
		}
	}

	text = op.String()
	if len(args) > 0 {
		text += " " + strings.Join(args, ",")
	}

	return text, op.Size()
}
