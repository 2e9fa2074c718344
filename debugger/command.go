package debugger

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/ls8/cpu"
)

const (
	DUMP_COUNT   = 16 // Default bytes shown by 'mem'.
	DUMP_WIDTH   = 8  // Bytes per 'mem' line.
	DISASM_COUNT = 8  // Default instructions shown by 'dis'.
)

var help = []string{
	"step [n]                   execute n instructions (default 1)",
	"continue                   run to a breakpoint, or until the program stops",
	"break [list]               list breakpoints",
	"break add ADDR             set a breakpoint",
	"break remove ADDR          clear a breakpoint",
	"regs                       show the registers",
	"mem ADDR [n]               dump n bytes of memory",
	"dis [ADDR [n]]             disassemble n instructions",
	"reset                      reload the program",
	"quit                       leave the debugger",
}

// parseAddress parses a memory address, in any strconv base 0 form.
func parseAddress(word string) (addr int, err error) {
	value, err := strconv.ParseUint(word, 0, 8)
	if err != nil {
		err = ErrParseAddress(word)
		return
	}

	addr = int(value)
	return
}

// parseCount parses a positive count.
func parseCount(word string) (count int, err error) {
	count, err = strconv.Atoi(word)
	if err != nil || count < 1 {
		err = ErrCountInvalid
		return
	}

	return
}

// Execute interprets one command line, writing its report to out. An
// empty line repeats the previous command. quit is set when the operator
// asks to leave.
func (dbg *Debugger) Execute(line string, out io.Writer) (quit bool, err error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		args = dbg.last
	}
	if len(args) == 0 {
		return
	}
	dbg.last = args

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "s", "step":
		err = dbg.cmdStep(out, args)
	case "c", "cont", "continue":
		err = dbg.cmdContinue(out, args)
	case "b", "break":
		err = dbg.cmdBreak(out, args)
	case "r", "regs":
		fmt.Fprint(out, dbg.Cpu.String())
	case "m", "mem":
		err = dbg.cmdMem(out, args)
	case "d", "dis":
		err = dbg.cmdDis(out, args)
	case "reset":
		err = dbg.Emulator.Reset()
		if err == nil {
			dbg.where(out)
		}
	case "h", "help":
		for _, text := range help {
			fmt.Fprintln(out, text)
		}
	case "q", "quit":
		quit = true
	default:
		err = ErrCommand(cmd)
	}

	return
}

// where reports the next instruction to execute.
func (dbg *Debugger) where(out io.Writer) {
	text, _ := cpu.Disassemble(&dbg.Cpu.Memory, dbg.Cpu.Pc)
	lineno := dbg.LineNo()
	if lineno > 0 {
		fmt.Fprintln(out, f("%02x: %v (line %d)", dbg.Cpu.Pc, text, lineno))
	} else {
		fmt.Fprintln(out, f("%02x: %v", dbg.Cpu.Pc, text))
	}
}

// stopped reports why execution stopped.
func (dbg *Debugger) stopped(out io.Writer, done bool) {
	switch {
	case !done:
		if dbg.IsBreakpoint(dbg.Cpu.Pc) {
			fmt.Fprintln(out, f("breakpoint at %02x", dbg.Cpu.Pc))
		}
		dbg.where(out)
	case dbg.Fault != nil:
		fmt.Fprintln(out, f("stopped: %v", dbg.Fault))
	default:
		fmt.Fprintln(out, f("halted after %d instructions", dbg.Cpu.Ticks))
	}
}

func (dbg *Debugger) cmdStep(out io.Writer, args []string) (err error) {
	const usage = "step [n]"

	count := 1
	switch len(args) {
	case 0:
	case 1:
		count, err = parseCount(args[0])
		if err != nil {
			return
		}
	default:
		err = ErrUsage(usage)
		return
	}

	done, err := dbg.Step(count)
	if err != nil {
		return
	}

	dbg.stopped(out, done)
	return
}

func (dbg *Debugger) cmdContinue(out io.Writer, args []string) (err error) {
	const usage = "continue"

	if len(args) != 0 {
		err = ErrUsage(usage)
		return
	}

	done, err := dbg.Continue()
	if err != nil {
		return
	}

	dbg.stopped(out, done)
	return
}

func (dbg *Debugger) cmdBreak(out io.Writer, args []string) (err error) {
	const usage = "break [add|remove|list] ADDR"

	if len(args) == 0 {
		args = []string{"list"}
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "a", "add":
		if len(args) != 1 {
			err = ErrUsage(usage)
			return
		}
		var addr int
		addr, err = parseAddress(args[0])
		if err != nil {
			return
		}
		if dbg.AddBreakpoint(addr) {
			fmt.Fprintln(out, f("breakpoint added at %02x", addr))
		}
	case "r", "rm", "remove":
		if len(args) != 1 {
			err = ErrUsage(usage)
			return
		}
		var addr int
		addr, err = parseAddress(args[0])
		if err != nil {
			return
		}
		err = dbg.RemoveBreakpoint(addr)
		if err != nil {
			return
		}
		fmt.Fprintln(out, f("breakpoint removed at %02x", addr))
	case "l", "ls", "list":
		if len(args) != 0 {
			err = ErrUsage(usage)
			return
		}
		for n, bp := range dbg.Breakpoints {
			text, _ := cpu.Disassemble(&dbg.Cpu.Memory, bp.Addr)
			fmt.Fprintf(out, "#%d: %02x %v\n", n, bp.Addr, text)
		}
	default:
		err = ErrUsage(usage)
	}

	return
}

func (dbg *Debugger) cmdMem(out io.Writer, args []string) (err error) {
	const usage = "mem ADDR [n]"

	if len(args) < 1 || len(args) > 2 {
		err = ErrUsage(usage)
		return
	}

	addr, err := parseAddress(args[0])
	if err != nil {
		return
	}

	count := DUMP_COUNT
	if len(args) > 1 {
		count, err = parseCount(args[1])
		if err != nil {
			return
		}
	}

	end := min(addr+count, dbg.Cpu.Memory.Len())
	for base := addr; base < end; base += DUMP_WIDTH {
		cells := make([]string, 0, DUMP_WIDTH)
		for n := base; n < min(base+DUMP_WIDTH, end); n++ {
			value, _ := dbg.Cpu.Memory.Read(n)
			cells = append(cells, fmt.Sprintf("%02x", value))
		}
		fmt.Fprintf(out, "%02x: %v\n", base, strings.Join(cells, " "))
	}

	return
}

func (dbg *Debugger) cmdDis(out io.Writer, args []string) (err error) {
	const usage = "dis [ADDR [n]]"

	if len(args) > 2 {
		err = ErrUsage(usage)
		return
	}

	addr := dbg.Cpu.Pc
	if len(args) > 0 {
		addr, err = parseAddress(args[0])
		if err != nil {
			return
		}
	}

	count := DISASM_COUNT
	if len(args) > 1 {
		count, err = parseCount(args[1])
		if err != nil {
			return
		}
	}

	for range count {
		text, size := cpu.Disassemble(&dbg.Cpu.Memory, addr)
		if size == 0 {
			break
		}
		mark := " "
		if addr == dbg.Cpu.Pc {
			mark = ">"
		}
		fmt.Fprintf(out, "%v%02x: %v\n", mark, addr, text)
		addr += size
	}

	return
}
