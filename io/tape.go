package io

import (
	"io"
	"strconv"
)

// Tape writes each value sent as a decimal integer on its own line.
type Tape struct {
	Output io.Writer

	Lines int // Lines written since rewind.
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape; only the line count is reset.
func (tc *Tape) Rewind() {
	tc.Lines = 0
}

// Send writes a value to the output stream.
func (tc *Tape) Send(value uint8) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	line := strconv.AppendUint(nil, uint64(value), 10)
	line = append(line, '\n')

	_, err = tc.Output.Write(line)
	if err != nil {
		return
	}

	tc.Lines++
	return
}
