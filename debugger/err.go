package debugger

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	ErrBreakpointMissing = errors.New(f("no breakpoint at that address"))
	ErrCountInvalid      = errors.New(f("count invalid"))
)

// ErrCommand is an unrecognized debugger command.
type ErrCommand string

func (err ErrCommand) Error() string {
	return f("'%v' is not a command, try 'help'", string(err))
}

// ErrUsage is a command given the wrong arguments. The value is the
// command synopsis.
type ErrUsage string

func (err ErrUsage) Error() string {
	return f("usage: %v", string(err))
}

// ErrParseAddress is an argument that is not a memory address.
type ErrParseAddress string

func (err ErrParseAddress) Error() string {
	return f("'%v' is not an address", string(err))
}
