package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemporary(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{}
	assert.Empty(temp.Values())

	assert.NoError(temp.Send(1))
	assert.NoError(temp.Send(2))
	assert.Equal([]uint8{1, 2}, temp.Values())

	temp.Rewind()
	assert.Empty(temp.Values())
}

func TestTemporary_Capacity(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 2}
	assert.NoError(temp.Send(1))
	assert.NoError(temp.Send(2))
	assert.ErrorIs(temp.Send(3), ErrChannelFull)
	assert.Equal([]uint8{1, 2}, temp.Values())
}

func TestTemporary_ValuesCopy(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{}
	temp.Send(7)

	values := temp.Values()
	values[0] = 9
	assert.Equal([]uint8{7}, temp.Values())
}
