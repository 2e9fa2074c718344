package cpu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Line is a single byte of a program image, with its source location.
type Line struct {
	LineNo  int    // Source line the byte came from.
	Value   uint8  // Byte value.
	Comment string // Annotation carried with the byte, if any.
}

// Program is an LS-8 program image, in load order from address 0.
type Program struct {
	Lines []Line
}

// ParseImage reads a .ls8 image: one base-2 byte per line, with anything
// after a '#' ignored. Blank and comment-only lines are skipped.
func ParseImage(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var text string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: text, Err: err}
		}
	}()

	prog = &Program{}

	for scanner.Scan() {
		text = scanner.Text()
		lineno++

		line, comment, _ := strings.Cut(text, "#")
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var value uint64
		value, err = strconv.ParseUint(strings.TrimPrefix(line, "0b"), 2, 8)
		if err != nil {
			err = ErrParseBinary
			return
		}

		prog.Lines = append(prog.Lines, Line{
			LineNo:  lineno,
			Value:   uint8(value),
			Comment: strings.TrimSpace(comment),
		})
	}

	err = scanner.Err()

	return
}

// Len returns the image size in bytes.
func (prog *Program) Len() int {
	return len(prog.Lines)
}

// Bytes returns the image contents.
func (prog *Program) Bytes() (image []uint8) {
	image = make([]uint8, len(prog.Lines))
	for n, line := range prog.Lines {
		image[n] = line.Value
	}

	return
}

// LineNo returns the source line of the byte at addr, or 0 if unknown.
func (prog *Program) LineNo(addr int) int {
	if addr < 0 || addr >= len(prog.Lines) {
		return 0
	}

	return prog.Lines[addr].LineNo
}

// Write emits the program as a .ls8 image.
func (prog *Program) Write(output io.Writer) (err error) {
	w := bufio.NewWriter(output)

	for _, line := range prog.Lines {
		if len(line.Comment) > 0 {
			_, err = fmt.Fprintf(w, "%08b # %v\n", line.Value, line.Comment)
		} else {
			_, err = fmt.Fprintf(w, "%08b\n", line.Value)
		}
		if err != nil {
			return
		}
	}

	err = w.Flush()

	return
}
