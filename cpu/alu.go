package cpu

import (
	"log"
)

// AluOp is an ALU operation type.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_ADD = AluOp(0) // add
	ALU_OP_MUL = AluOp(1) // mul
	ALU_OP_CMP = AluOp(2) // cmp
)

// REGISTER_MAX is the saturation ceiling of ADD and MUL.
const REGISTER_MAX = 0xff

// Alu performs the requested ALU action on two registers.
//   - add, mul: reg_a receives the result, saturated at REGISTER_MAX.
//   - cmp: sets the E flag if both registers are equal. Operands are
//     unchanged.
func (cpu *Cpu) Alu(op AluOp, reg_a, reg_b uint8) (err error) {
	if err = checkRegister(reg_a); err != nil {
		return
	}
	if err = checkRegister(reg_b); err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("alu: %v r%d, r%d", op, reg_a, reg_b)
	}

	a := uint(cpu.Register[reg_a])
	b := uint(cpu.Register[reg_b])

	switch op {
	case ALU_OP_ADD:
		cpu.Register[reg_a] = saturate(a + b)
	case ALU_OP_MUL:
		cpu.Register[reg_a] = saturate(a * b)
	case ALU_OP_CMP:
		cpu.Fl.SetEqual(a == b)
	default:
		err = ErrAluUnsupported
	}

	return
}

func saturate(value uint) uint8 {
	if value > REGISTER_MAX {
		return REGISTER_MAX
	}
	return uint8(value)
}
