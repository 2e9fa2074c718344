package main

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/ezrec/ls8/debugger"
)

// console runs the debugger on stdin. A terminal gets raw mode and line
// editing; anything else is read as a command script.
func console(dbg *debugger.Debugger) (err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return dbg.Script(os.Stdin, os.Stdout)
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	defer term.Restore(fd, state)

	return dbg.Serve(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout})
}
