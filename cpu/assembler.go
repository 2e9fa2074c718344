// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// link is an operand byte waiting for a label address.
type link struct {
	Index  int    // Index of the byte in the generated lines.
	Label  string // Label to resolve.
	LineNo int    // Source line of the reference.
	Line   string // Source text of the reference.
}

// Assembler is a single pass assembler for the LS-8 system.
//
// Source syntax, one statement per line:
//
//	; comment
//	.equ NAME VALUE
//	LABEL: MNEMONIC operand, operand
//	.db value, value, ...
//
// Operands are registers (r0-r7), numbers, 'c' characters, equates,
// labels, or $(...) compile-time expressions.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // Generated image bytes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to addresses.
	Equate    map[string]string // Map of equates.

	links []link
}

// Predefine defines a new equate or redefines an existing equate, applied
// at the start of every Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

var reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
var reCharacter = regexp.MustCompile(`'\\?[^']'`)
var reExpression = regexp.MustCompile(`\$\([^\$]*\)`)

// valueOf returns the byte value of a numeric word. Negative values down
// to -128 are stored in two's complement.
func (asm *Assembler) valueOf(word string) (value uint8, err error) {
	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 > REGISTER_MAX || v64 < -128 {
		err = ErrValueRange
		return
	}

	value = uint8(v64)
	return
}

// registerOf returns the register index named by a word.
func (asm *Assembler) registerOf(word string) (reg uint8, err error) {
	if len(word) != 2 || (word[0] != 'r' && word[0] != 'R') {
		err = ErrParseRegister(word)
		return
	}

	if word[1] < '0' || word[1] >= '0'+REGISTER_COUNT {
		err = ErrParseRegister(word)
		return
	}

	reg = word[1] - '0'
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint8, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, err := strconv.ParseInt(str, 0, 32)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrValueRange
		return
	}
	return asm.valueOf(fmt.Sprintf("%d", st_int64))
}

// parseLine expands a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "0":
				str = "\000"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 || !reIdentifier.MatchString(words[1]) {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		value := words[2]
		equate, ok := asm.Equate[value]
		if ok {
			value = equate
		}
		asm.Equate[words[1]] = value
		words = words[:0]
		return
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reIdentifier.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = len(asm.Lines)
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	for n, word := range words[1:] {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[1+n] = equate
		}
	}

	return
}

// emit appends a byte to the image.
func (asm *Assembler) emit(value uint8, lineno int, comment string) {
	asm.Lines = append(asm.Lines, Line{
		LineNo:  lineno,
		Value:   value,
		Comment: comment,
	})
}

// emitValue appends an immediate value, or a reference to a label.
func (asm *Assembler) emitValue(word string, lineno int, line string) (err error) {
	value, err := asm.valueOf(word)
	if err == nil {
		asm.emit(value, lineno, "")
		return
	}

	if !reIdentifier.MatchString(word) {
		return
	}

	err = nil
	asm.links = append(asm.links, link{
		Index:  len(asm.Lines),
		Label:  word,
		LineNo: lineno,
		Line:   line,
	})
	asm.emit(0, lineno, "")

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, line string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	// .db value...
	if words[0] == ".db" {
		if len(words) == 1 {
			err = ErrOpcodeValueMissing
			return
		}
		first := len(asm.Lines)
		for _, word := range words[1:] {
			err = asm.emitValue(word, lineno, line)
			if err != nil {
				return
			}
		}
		asm.Lines[first].Comment = line
		return
	}

	op, ok := LookupOpcode(words[0])
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]
	if len(args) > op.Operands() {
		err = ErrOpcodeExtraArgs
		return
	}
	if len(args) < op.Operands() {
		err = ErrOpcodeValueMissing
		return
	}

	// Validate registers before emitting anything.
	regs := make([]uint8, len(args))
	for n, arg := range args {
		if op.Immediate(n) {
			continue
		}
		regs[n], err = asm.registerOf(arg)
		if err != nil {
			return
		}
	}

	asm.emit(uint8(op), lineno, line)
	for n, arg := range args {
		if op.Immediate(n) {
			err = asm.emitValue(arg, lineno, line)
			if err != nil {
				return
			}
		} else {
			asm.emit(regs[n], lineno, "")
		}
	}

	return
}

// Parse parses an input stream into a Program image.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Lines = asm.Lines[:0]
	asm.links = asm.links[:0]
	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	clear(asm.Label)
	asm.Equate = maps.Collect(defines())
	asm.Equate["LINENO"] = "0"
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		code, _, _ := strings.Cut(text, ";")
		line = strings.TrimSpace(code)

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of jump labels.
	for _, ln := range asm.links {
		addr, ok := asm.Label[ln.Label]
		if !ok {
			lineno, line = ln.LineNo, ln.Line
			err = ErrLabelMissing(ln.Label)
			return
		}
		if addr > REGISTER_MAX {
			lineno, line = ln.LineNo, ln.Line
			err = ErrValueRange
			return
		}
		asm.Lines[ln.Index].Value = uint8(addr)
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}
