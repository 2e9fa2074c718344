package cpu

import (
	"fmt"
)

// Register file layout. r0-r4 are free for programs.
const (
	REGISTER_COUNT = 8
	REG_IM         = 5 // Interrupt mask (reserved).
	REG_IS         = 6 // Interrupt status (reserved).
	REG_SP         = 7 // Stack pointer.
)

// Flags is the LS-8 condition code register: 00000LGE.
type Flags uint8

const (
	FLAG_EQUAL   = Flags(1 << 0) // E: last CMP found equal operands.
	FLAG_GREATER = Flags(1 << 1) // G: reserved.
	FLAG_LESS    = Flags(1 << 2) // L: reserved.
)

// Equal returns the state of the E flag.
func (fl Flags) Equal() bool {
	return (fl & FLAG_EQUAL) != 0
}

// SetEqual sets or clears the E flag, preserving the other bits.
func (fl *Flags) SetEqual(equal bool) {
	if equal {
		*fl |= FLAG_EQUAL
	} else {
		*fl &^= FLAG_EQUAL
	}
}

// String renders the flags as a bit string, MSB first.
func (fl Flags) String() string {
	return fmt.Sprintf("%08b", uint8(fl))
}

// checkRegister validates a register index from an operand byte.
func checkRegister(index uint8) (err error) {
	if int(index) >= REGISTER_COUNT {
		err = ErrParseRegister(fmt.Sprintf("r%d", index))
	}
	return
}
