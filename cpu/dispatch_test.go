package cpu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatch_Complete(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(len(opcodeName), len(dispatch))
	for _, op := range Opcodes() {
		_, ok := dispatch[op]
		assert.True(ok, op.String())
	}
}

func TestDispatch_Next(t *testing.T) {
	assert := assert.New(t)

	// Straight-line instructions advance past their operands.
	for _, op := range Opcodes() {
		if op.SetsPc() || op == OP_HLT {
			continue
		}
		cpu, _ := newTestCpu(t, uint8(op), 0, 1)
		cpu.Pc = 0
		err := cpu.Tick()
		assert.NoError(err, op.String())
		assert.Equal(op.Size(), cpu.Pc, op.String())
	}
}

func TestDispatch_PushPop(t *testing.T) {
	assert := assert.New(t)

	for _, value := range []uint8{0, 1, 0x7f, 0xff} {
		cpu, _ := newTestCpu(t,
			uint8(OP_PUSH), 0,
			uint8(OP_POP), 1,
			uint8(OP_HLT),
		)
		cpu.Register[0] = value
		sp := cpu.Register[REG_SP]

		assert.NoError(cpu.Tick())
		assert.Equal(sp-1, cpu.Register[REG_SP])
		assert.Equal(value, cpu.Memory.Cell[sp-1])

		assert.NoError(cpu.Tick())
		assert.Equal(value, cpu.Register[1])
		assert.Equal(sp, cpu.Register[REG_SP])
	}
}

func TestDispatch_PopClamp(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t,
		uint8(OP_POP), 0,
		uint8(OP_POP), 0,
	)

	assert.NoError(cpu.Tick())
	assert.Equal(uint8(SP_INIT), cpu.Register[REG_SP])

	cpu.Register[REG_SP] = 0xfe
	assert.NoError(cpu.Tick())
	assert.Equal(uint8(SP_INIT), cpu.Register[REG_SP])
}

func TestDispatch_PushOverflow(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, uint8(OP_PUSH), 0)
	cpu.Register[REG_SP] = 0

	assert.ErrorIs(cpu.Tick(), ErrStackOverflow)
	assert.Equal(uint8(0), cpu.Register[REG_SP])
}

func TestDispatch_CallRet(t *testing.T) {
	assert := assert.New(t)

	for _, target := range []uint8{0x10, 0x40, 0x80, 0xc0} {
		cpu, _ := newTestCpu(t,
			uint8(OP_LDI), 2, target,
			uint8(OP_CALL), 2,
			uint8(OP_HLT),
		)
		cpu.Memory.Write(int(target), uint8(OP_RET))

		assert.NoError(cpu.Tick())
		assert.NoError(cpu.Tick())
		assert.Equal(int(target), cpu.Pc)
		assert.Equal(uint8(SP_INIT-1), cpu.Register[REG_SP])
		assert.Equal(uint8(5), cpu.Memory.Cell[SP_INIT-1])

		assert.NoError(cpu.Tick())
		assert.Equal(5, cpu.Pc)
		assert.Equal(uint8(SP_INIT), cpu.Register[REG_SP])

		assert.NoError(cpu.Tick())
		assert.True(cpu.Halted)
	}
}

func TestDispatch_CallReturnRange(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t)
	cpu.Memory.Write(0xfe, uint8(OP_CALL))
	cpu.Memory.Write(0xff, 0)
	cpu.Pc = 0xfe

	assert.ErrorIs(cpu.Tick(), ErrAddressInvalid)
	assert.Equal(uint8(SP_INIT), cpu.Register[REG_SP])
}

func TestDispatch_RetRange(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, uint8(OP_RET))
	cpu.Register[REG_SP] = 0xff

	assert.ErrorIs(cpu.Tick(), ErrAddressInvalid)
}

func TestDispatch_Jmp(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, uint8(OP_JMP), 3)
	cpu.Register[3] = 0x42

	assert.NoError(cpu.Tick())
	assert.Equal(0x42, cpu.Pc)
}

func TestDispatch_Branch(t *testing.T) {
	assert := assert.New(t)

	pairs := [][2]uint8{{0, 0}, {1, 1}, {0, 1}, {1, 0}, {255, 255}, {200, 100}}

	for _, pair := range pairs {
		for _, op := range []Opcode{OP_JEQ, OP_JNE} {
			name := fmt.Sprintf("%v %v", op, pair)
			cpu, _ := newTestCpu(t,
				uint8(OP_CMP), 0, 1,
				uint8(op), 2,
			)
			cpu.Register[0] = pair[0]
			cpu.Register[1] = pair[1]
			cpu.Register[2] = 0x80

			assert.NoError(cpu.Tick(), name)
			assert.Equal(pair[0] == pair[1], cpu.Fl.Equal(), name)
			assert.Equal(pair[0], cpu.Register[0], name)
			assert.Equal(pair[1], cpu.Register[1], name)

			assert.NoError(cpu.Tick(), name)
			taken := (pair[0] == pair[1]) == (op == OP_JEQ)
			if taken {
				assert.Equal(0x80, cpu.Pc, name)
			} else {
				assert.Equal(5, cpu.Pc, name)
			}
		}
	}
}
