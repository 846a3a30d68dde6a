// This file is part of vic20.
//
// vic20 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// vic20 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.

// Command vic20 wires the emulation core to a host: it loads a ROM
// package, builds a Machine, opens an SDL display and an optional
// raw-terminal debugger console, and runs the machine until the display
// is closed.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/vic20emu/vic20/debugger/rawterm"
	"github.com/vic20emu/vic20/disassembly"
	"github.com/vic20emu/vic20/gui/sdl"
	"github.com/vic20emu/vic20/hardware/machine"
	"github.com/vic20emu/vic20/hardware/preferences"
	"github.com/vic20emu/vic20/hardware/vic"
	"github.com/vic20emu/vic20/logger"
	"github.com/vic20emu/vic20/romset"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "vic20:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		romPath = flag.String("roms", "", "path to a ROM package zip file")
		region  = flag.String("region", "pal", "video region: pal or ntsc")
		model   = flag.String("model", "unexpanded", "memory model: unexpanded, 3k, 8k, 16k, 24k, 32k, 35k")
		scale   = flag.Float64("scale", 2, "display window scale factor")
		debug   = flag.Bool("debug", false, "drop to the raw-terminal debugger on start")
		disasm  = flag.String("disasm", "", "print a linear disassembly of addr1:addr2 (hex) and exit")
	)
	flag.Parse()

	if *romPath == "" {
		return fmt.Errorf("-roms is required")
	}

	f, err := os.Open(*romPath)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}

	roms, err := romset.Load(f, info.Size())
	if err != nil {
		return err
	}

	vicRegion := vic.PAL
	if *region == "ntsc" {
		vicRegion = vic.NTSC
	}

	m, err := machine.NewMachine(nil, vicRegion, preferences.MemoryModel(*model))
	if err != nil {
		return err
	}
	if err := m.Reset(roms); err != nil {
		return err
	}

	if *disasm != "" {
		return runDisasm(m, *disasm)
	}

	display, err := sdl.NewDisplay(m, float32(*scale))
	if err != nil {
		return err
	}
	defer display.Close()
	display.Show(true)

	var console *rawterm.Console
	var repl *rawterm.REPL
	if *debug {
		console, err = rawterm.NewConsole(os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		defer console.Restore()
		repl = rawterm.NewREPL(console, m)
		m.OnBreakpoint = func(*machine.Machine) bool { return true }
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		m.State = machine.Stopped
	}()

	m.Start()
	for m.State != machine.Stopped {
		if err := m.Run(16*time.Millisecond, func(*machine.Machine) bool { return m.State != machine.Stopped }); err != nil {
			return err
		}
		if m.State == machine.Breakpoint {
			if repl == nil {
				m.Start()
				continue
			}
			resume, err := repl.Run()
			if err != nil {
				return err
			}
			if !resume {
				break
			}
		} else {
			break
		}
	}

	logger.Log(logger.Allow, "vic20", "stopped")
	return nil
}

// runDisasm implements -disasm: it parses "addr1:addr2" as two hex
// addresses and prints a linear disassembly of that range to stdout.
func runDisasm(m *machine.Machine, rng string) error {
	parts := strings.SplitN(rng, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("-disasm wants addr1:addr2 in hex, got %q", rng)
	}
	start, err := strconv.ParseUint(strings.TrimPrefix(parts[0], "0x"), 16, 16)
	if err != nil {
		return fmt.Errorf("-disasm start address: %w", err)
	}
	end, err := strconv.ParseUint(strings.TrimPrefix(parts[1], "0x"), 16, 16)
	if err != nil {
		return fmt.Errorf("-disasm end address: %w", err)
	}

	entries, err := disassembly.Linear(m.CPU, m.Mem, uint16(start), uint16(end))
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Println(e.String())
	}
	return nil
}
