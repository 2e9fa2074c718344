// Package cpu implements the LS-8 microprocessor and its assembler.
//
// The LS-8 has 256 bytes of unified code, data and stack memory, eight
// 8-bit registers (r0-r7, with r7 as the stack pointer), a program
// counter, a flags register and an ALU. Instructions are one opcode byte
// followed by zero, one or two operand bytes; the operand count is held
// in the top two bits of the opcode.
//
// Programs are exchanged as .ls8 images: one base-2 byte per line, with
// '#' comments. The assembler translates LS-8 assembly text into images,
// supporting labels, equates, and compile-time expression evaluation.
package cpu
