// Package io provides the print sinks for the LS-8 emulator.
// PRN sends one register value at a time to a Channel: a Tape writes
// decimal lines to an io.Writer, and a Temporary records the values in
// a bounded buffer.
package io

// Channel defines the interface for all print sinks.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Send writes a single value to the channel.
	Send(value uint8) error
}
