package debugger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"

	"golang.org/x/term"
)

const PROMPT = "(ls8) "

// Serve runs the command interpreter on a terminal line editor over rw
// until 'quit', or end of input. Program output and diagnostics are
// routed to the terminal while it runs.
func (dbg *Debugger) Serve(rw io.ReadWriter) (err error) {
	console := term.NewTerminal(rw, PROMPT)

	tape, report, logger := dbg.Tape.Output, dbg.Console, log.Writer()
	dbg.Tape.Output = console
	dbg.Console = console
	log.SetOutput(console)
	defer func() {
		dbg.Tape.Output, dbg.Console = tape, report
		log.SetOutput(logger)
	}()

	dbg.where(console)

	for {
		var line string
		line, err = console.ReadLine()
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil {
			return
		}

		var quit bool
		quit, err = dbg.Execute(line, console)
		if err != nil {
			if dbg.Verbose {
				log.Printf("debugger: %q: %v", line, err)
			}
			fmt.Fprintln(console, err)
			err = nil
		}
		if quit {
			return
		}
	}
}

// Script runs the command interpreter over each line of input, without
// line editing, until 'quit' or end of input. A failing command stops
// the script.
func (dbg *Debugger) Script(input io.Reader, out io.Writer) (err error) {
	scanner := bufio.NewScanner(input)

	for lineno := 1; scanner.Scan(); lineno++ {
		line := scanner.Text()

		var quit bool
		quit, err = dbg.Execute(line, out)
		if err != nil {
			err = fmt.Errorf("%d: %w", lineno, err)
			return
		}
		if quit {
			return
		}
	}

	err = scanner.Err()
	return
}
