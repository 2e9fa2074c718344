package cpu

import (
	"errors"
	"fmt"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted          = errors.New(f("cpu halted"))
	ErrAddressInvalid  = errors.New(f("address invalid"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrStackOverflow   = errors.New(f("stack overflow"))
	ErrAluUnsupported  = errors.New(f("unsupported alu operation"))
	ErrChannelInvalid  = errors.New(f("channel invalid"))

	// Image errors
	ErrParseBinary = errors.New(f("not a binary literal"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrValueRange         = errors.New(f("value out of byte range"))
)

// ErrOpcode is an opcode byte with no dispatch entry.
type ErrOpcode uint8

func (eo ErrOpcode) Error() string {
	return f("unrecognized instruction %v", fmt.Sprintf("0b%08b", uint8(eo)))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrInstruction locates a fault raised while executing an instruction.
type ErrInstruction struct {
	Pc     int
	Opcode Opcode
	Err    error
}

func (err *ErrInstruction) Error() string {
	return f("%v at 0x%02x: %v", err.Opcode.String(), err.Pc, err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}

// ErrLoadOverflow is returned when a program image does not fit in memory.
type ErrLoadOverflow struct {
	Size int // Size of the rejected image, in bytes.
}

func (err ErrLoadOverflow) Error() string {
	return f("program of %v bytes exceeds %v bytes of memory", err.Size, MEMORY_SIZE)
}

func (err ErrLoadOverflow) Is(target error) (ok bool) {
	_, ok = target.(ErrLoadOverflow)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

func (err ErrParseRegister) Unwrap() error {
	return ErrRegisterInvalid
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
