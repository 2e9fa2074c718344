package cpu

// handler executes the instruction whose opcode is at pc, and returns the
// address of the next instruction to execute.
type handler func(cpu *Cpu, pc int) (next int, err error)

// dispatch maps every opcode to its handler.
var dispatch = map[Opcode]handler{
	OP_LDI:  (*Cpu).opLdi,
	OP_PRN:  (*Cpu).opPrn,
	OP_ADD:  aluHandler(ALU_OP_ADD),
	OP_MUL:  aluHandler(ALU_OP_MUL),
	OP_CMP:  aluHandler(ALU_OP_CMP),
	OP_HLT:  (*Cpu).opHlt,
	OP_PUSH: (*Cpu).opPush,
	OP_POP:  (*Cpu).opPop,
	OP_CALL: (*Cpu).opCall,
	OP_RET:  (*Cpu).opRet,
	OP_JMP:  (*Cpu).opJmp,
	OP_JEQ:  jumpHandler(func(fl Flags) bool { return fl.Equal() }),
	OP_JNE:  jumpHandler(func(fl Flags) bool { return !fl.Equal() }),
}

// LDI reg, value
func (cpu *Cpu) opLdi(pc int) (next int, err error) {
	reg, err := cpu.register(pc, 0)
	if err != nil {
		return
	}
	value, err := cpu.operand(pc, 1)
	if err != nil {
		return
	}

	cpu.Register[reg] = value

	return pc + 3, nil
}

// PRN reg
func (cpu *Cpu) opPrn(pc int) (next int, err error) {
	reg, err := cpu.register(pc, 0)
	if err != nil {
		return
	}

	if cpu.Output == nil {
		err = ErrChannelInvalid
		return
	}

	err = cpu.Output.Send(cpu.Register[reg])
	if err != nil {
		return
	}

	return pc + 2, nil
}

// ADD, MUL, CMP reg_a, reg_b
func aluHandler(op AluOp) handler {
	return func(cpu *Cpu, pc int) (next int, err error) {
		reg_a, err := cpu.register(pc, 0)
		if err != nil {
			return
		}
		reg_b, err := cpu.register(pc, 1)
		if err != nil {
			return
		}

		err = cpu.Alu(op, reg_a, reg_b)
		if err != nil {
			return
		}

		return pc + 3, nil
	}
}

// HLT
func (cpu *Cpu) opHlt(pc int) (next int, err error) {
	cpu.Halted = true

	return pc + 1, nil
}

// PUSH reg
func (cpu *Cpu) opPush(pc int) (next int, err error) {
	reg, err := cpu.register(pc, 0)
	if err != nil {
		return
	}

	err = cpu.push(cpu.Register[reg])
	if err != nil {
		return
	}

	return pc + 2, nil
}

// POP reg
//
// The stack pointer never rises above SP_INIT, so popping an empty stack
// cannot reach the reserved memory above it.
func (cpu *Cpu) opPop(pc int) (next int, err error) {
	reg, err := cpu.register(pc, 0)
	if err != nil {
		return
	}

	cpu.Register[reg] = cpu.Memory.Cell[cpu.Register[REG_SP]]

	if cpu.Register[REG_SP] >= SP_INIT {
		cpu.Register[REG_SP] = SP_INIT
	} else {
		cpu.Register[REG_SP]++
	}

	return pc + 2, nil
}

// CALL reg
func (cpu *Cpu) opCall(pc int) (next int, err error) {
	reg, err := cpu.register(pc, 0)
	if err != nil {
		return
	}

	if pc+2 > REGISTER_MAX {
		err = ErrAddressInvalid
		return
	}

	err = cpu.push(uint8(pc + 2))
	if err != nil {
		return
	}

	return int(cpu.Register[reg]), nil
}

// RET
func (cpu *Cpu) opRet(pc int) (next int, err error) {
	addr, err := cpu.pop()
	if err != nil {
		return
	}

	return int(addr), nil
}

// JMP reg
func (cpu *Cpu) opJmp(pc int) (next int, err error) {
	reg, err := cpu.register(pc, 0)
	if err != nil {
		return
	}

	return int(cpu.Register[reg]), nil
}

// JEQ, JNE reg
func jumpHandler(taken func(fl Flags) bool) handler {
	return func(cpu *Cpu, pc int) (next int, err error) {
		reg, err := cpu.register(pc, 0)
		if err != nil {
			return
		}

		if taken(cpu.Fl) {
			return int(cpu.Register[reg]), nil
		}

		return pc + 2, nil
	}
}
