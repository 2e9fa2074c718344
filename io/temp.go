package io

import (
	"slices"
)

// Temporary records values sent to it, up to Capacity values.
// A zero Capacity records without limit.
type Temporary struct {
	Capacity int

	Data []uint8
}

var _ Channel = (*Temporary)(nil)

// Rewind discards every recorded value.
func (temp *Temporary) Rewind() {
	temp.Data = temp.Data[:0]
}

// Send records a value.
// Returns ErrChannelFull if the buffer has reached capacity.
func (temp *Temporary) Send(value uint8) (err error) {
	if temp.Capacity > 0 && len(temp.Data) >= temp.Capacity {
		err = ErrChannelFull
		return
	}

	temp.Data = append(temp.Data, value)
	return
}

// Values returns a copy of the recorded values.
func (temp *Temporary) Values() []uint8 {
	return slices.Clone(temp.Data)
}
