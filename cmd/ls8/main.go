// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/debugger"
	"github.com/ezrec/ls8/emulator"
)

// loadImage reads a .ls8 program image. The suffix is added if missing.
func loadImage(path string) (prog *cpu.Program, err error) {
	if !strings.HasSuffix(path, ".ls8") {
		path += ".ls8"
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	prog, err = cpu.ParseImage(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}
	return
}

// saveImage writes a program image to a file, or to stdout for "-".
func saveImage(path string, prog *cpu.Program) (err error) {
	if path == "-" {
		return prog.Write(os.Stdout)
	}

	ouf, err := os.Create(path)
	if err != nil {
		return
	}

	err = prog.Write(ouf)
	if err != nil {
		ouf.Close()
		return
	}

	return ouf.Close()
}

func main() {
	var compile string
	var output string
	var save bool
	var verbose bool
	var debug bool
	var breaks []int

	asm := &cpu.Assembler{}

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&output, "o", "", ".ls8 image to write")
	flag.BoolVar(&save, "s", false, "Save image only, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&debug, "d", false, "Interactive debugger")
	flag.Func("b", "Debugger breakpoint `address` (repeatable)", func(arg string) error {
		addr, err := strconv.ParseUint(arg, 0, 8)
		if err != nil {
			return err
		}
		breaks = append(breaks, int(addr))
		return nil
	})
	flag.Func("D", "Assembler predefine `NAME=VALUE` (repeatable)", func(arg string) error {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || len(name) == 0 {
			return fmt.Errorf("%v: expected NAME=VALUE", arg)
		}
		asm.Predefine(name, value)
		return nil
	})

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [flags] file.ls8\n       %v [flags] -c file.asm\n", os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	var prog *cpu.Program
	var err error

	switch {
	case len(compile) != 0:
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}

		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm.Verbose = verbose
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case flag.NArg() == 1:
		prog, err = loadImage(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
	default:
		flag.Usage()
		os.Exit(1)
	}

	if len(output) != 0 {
		err = saveImage(output, prog)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}

	if save {
		return
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Verbose = verbose

	err = emu.Reset()
	if errors.Is(err, cpu.ErrLoadOverflow{}) {
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}

	if debug {
		dbg := debugger.New(emu)
		for _, addr := range breaks {
			dbg.AddBreakpoint(addr)
		}
		err = console(dbg)
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	err = emu.Run()
	if err != nil {
		log.Fatal(err)
	}

	// Stopped on an unrecognized instruction; already reported.
	if emu.Fault != nil {
		os.Exit(1)
	}
}
