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

package rawterm

import (
	"github.com/vic20emu/vic20/hardware/machine"
)

// REPL drives a Console while the Machine is in the Breakpoint state:
// single keys step one cycle, run to the next breakpoint, or dump
// machine state, until the user resumes or quits.
type REPL struct {
	console *Console
	machine *machine.Machine
}

// NewREPL pairs a Console with the Machine it inspects.
func NewREPL(c *Console, m *machine.Machine) *REPL {
	return &REPL{console: c, machine: m}
}

// Run reads keys until the Machine leaves the Breakpoint state or the
// user quits ('q'), returning true if the caller should keep running
// (i.e. the user resumed rather than quit).
//
//   - space, 's': single-step one CPU cycle
//   - 'c': resume running (exits the REPL, Machine.Start)
//   - 'r': print CPU registers
//   - 'h': print recent instruction history
//   - 'q', ctrl-C, ctrl-D: quit the REPL without resuming
func (r *REPL) Run() (resume bool, err error) {
	if err := r.console.Raw(); err != nil {
		return false, err
	}
	defer r.console.Restore()

	for r.machine.State == machine.Breakpoint {
		key, err := r.console.ReadKey()
		if err != nil {
			return false, err
		}

		switch key {
		case ' ', 's':
			if err := r.machine.Tick(); err != nil {
				return false, err
			}
		case 'c':
			r.machine.Start()
			return true, nil
		case 'r':
			r.printRegisters()
		case 'h':
			r.printHistory()
		case 'q', KeyCtrlC, KeyCtrlD:
			return false, nil
		}
	}

	return true, nil
}

func (r *REPL) printRegisters() {
	cpu := r.machine.CPU
	r.console.Printf("PC=%#04x A=%#02x X=%#02x Y=%#02x SP=%#02x P=%#02x\r\n",
		cpu.PC, cpu.A, cpu.X, cpu.Y, cpu.SP, cpu.P.Value(false))
}

func (r *REPL) printHistory() {
	for _, e := range r.machine.CPU.History.Recent(16) {
		r.console.Printf("%s\r\n", e)
	}
}
