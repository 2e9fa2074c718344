package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	tape := &Tape{Output: out}

	for _, value := range []uint8{8, 0, 255, 30} {
		assert.NoError(tape.Send(value))
	}

	assert.Equal("8\n0\n255\n30\n", out.String())
	assert.Equal(4, tape.Lines)

	tape.Rewind()
	assert.Equal(0, tape.Lines)
	assert.Equal("8\n0\n255\n30\n", out.String())
}

func TestTape_NoOutput(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}
	err := tape.Send(1)
	assert.True(errors.Is(err, ErrChannelClosed))
	assert.Equal(0, tape.Lines)
}

type failWriter struct{}

var errWrite = errors.New("write failed")

func (failWriter) Write(p []byte) (int, error) {
	return 0, errWrite
}

func TestTape_WriteError(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Output: failWriter{}}
	err := tape.Send(1)
	assert.ErrorIs(err, errWrite)
	assert.Equal(0, tape.Lines)
}
