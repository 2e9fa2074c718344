package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/io"
)

func FuzzCpu(f *testing.F) {
	for _, op := range Opcodes() {
		f.Add(uint8(op), uint8(0), uint8(1), uint8(SP_INIT))
		f.Add(uint8(op), uint8(7), uint8(0xff), uint8(0))
		f.Add(uint8(op), uint8(8), uint8(0xfe), uint8(0xff))
	}
	f.Add(uint8(0), uint8(0), uint8(0), uint8(0))
	f.Add(uint8(0xff), uint8(0xff), uint8(0xff), uint8(0xff))

	f.Fuzz(func(t *testing.T, code uint8, reg_a uint8, reg_b uint8, sp uint8) {
		assert := assert.New(t)

		cpu := NewCpu()
		out := &io.Temporary{Capacity: 4}
		cpu.Output = out
		assert.NoError(cpu.Load([]uint8{code, reg_a, reg_b, uint8(OP_HLT)}))
		cpu.Register[0] = 0x10
		cpu.Register[1] = 0x02
		cpu.Register[REG_SP] = sp

		for ticks := 0; !cpu.Halted; ticks++ {
			if ticks > MEMORY_SIZE*2 {
				// Infinite loop.
				return
			}
			pc := cpu.Pc
			err := cpu.Tick()
			if err == nil {
				assert.Less(cpu.Pc, MEMORY_SIZE*2)
				continue
			}

			assert.True(cpu.Halted)

			var inst *ErrInstruction
			switch {
			case errors.Is(err, ErrOpcode(0)):
				assert.Equal(pc, cpu.Pc)
				assert.False(Opcode(cpu.Memory.Cell[pc]).Valid())
			case errors.As(err, &inst):
				assert.Equal(pc, inst.Pc)
				assert.Equal(pc, cpu.Pc)
			default:
				t.Fatalf("unexpected error %v", err)
			}
		}

		assert.LessOrEqual(len(out.Values()), 4)
	})
}
