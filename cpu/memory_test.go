package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	assert.Equal(MEMORY_SIZE, mem.Len())

	value, err := mem.Read(0x10)
	assert.NoError(err)
	assert.Equal(uint8(0), value)
	assert.False(mem.IsSet(0x10))

	assert.NoError(mem.Write(0x10, 0xab))
	value, err = mem.Read(0x10)
	assert.NoError(err)
	assert.Equal(uint8(0xab), value)
	assert.True(mem.IsSet(0x10))

	mem.Reset()
	assert.False(mem.IsSet(0x10))
	assert.Equal(uint8(0), mem.Cell[0x10])
}

func TestMemory_Bounds(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}

	for _, addr := range []int{-1, MEMORY_SIZE, MEMORY_SIZE + 1} {
		_, err := mem.Read(addr)
		assert.ErrorIs(err, ErrAddressInvalid, addr)
		assert.ErrorIs(mem.Write(addr, 1), ErrAddressInvalid, addr)
		assert.False(mem.IsSet(addr), addr)
	}

	assert.NoError(mem.Write(MEMORY_SIZE-1, 1))
	assert.True(mem.IsSet(MEMORY_SIZE - 1))
}

func TestFlags(t *testing.T) {
	assert := assert.New(t)

	var fl Flags
	assert.False(fl.Equal())
	assert.Equal("00000000", fl.String())

	fl.SetEqual(true)
	assert.True(fl.Equal())
	assert.Equal("00000001", fl.String())

	fl |= FLAG_GREATER
	fl.SetEqual(false)
	assert.False(fl.Equal())
	assert.Equal(FLAG_GREATER, fl)
	assert.Equal("00000010", fl.String())
}
