package cpu

// LS-8 memory map.
//
//	0xf8-0xff  interrupt vector table
//	0xf5-0xf7  reserved
//	0xf4       key pressed
//	0xf3-...   stack, growing down
//	...-0x00   program, loaded upward from 0
const (
	MEMORY_SIZE   = 256  // Bytes of unified memory.
	KEY_PRESSED   = 0xf4 // Most recent key pressed.
	SP_INIT       = 0xf4 // Initial stack pointer, and its ceiling.
	VECTOR_TABLE  = 0xf8 // I0 interrupt vector; I7 is at 0xff.
	PROGRAM_ENTRY = 0x00 // First instruction executed after reset.
)

// Memory is the flat LS-8 address space. Cells never written since the
// last reset are unset, and read as zero.
type Memory struct {
	Cell [MEMORY_SIZE]uint8
	Set  [MEMORY_SIZE]bool
}

// Reset clears every cell back to unset.
func (mem *Memory) Reset() {
	clear(mem.Cell[:])
	clear(mem.Set[:])
}

// Len is the number of addressable cells.
func (mem *Memory) Len() int {
	return len(mem.Cell)
}

// Read a cell.
func (mem *Memory) Read(addr int) (value uint8, err error) {
	if addr < 0 || addr >= len(mem.Cell) {
		err = ErrAddressInvalid
		return
	}

	value = mem.Cell[addr]
	return
}

// Write a cell, marking it set.
func (mem *Memory) Write(addr int, value uint8) (err error) {
	if addr < 0 || addr >= len(mem.Cell) {
		err = ErrAddressInvalid
		return
	}

	mem.Cell[addr] = value
	mem.Set[addr] = true
	return
}

// IsSet returns true if the cell has been written since reset.
func (mem *Memory) IsSet(addr int) bool {
	if addr < 0 || addr >= len(mem.Set) {
		return false
	}
	return mem.Set[addr]
}
