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

// Package cpu implements a cycle-counted interpreter for the MOS 6502, the
// processor at the heart of the VIC-20. Unlike a re-entrant, per-memory-access
// emulation, this CPU decodes and fully executes an instruction the moment
// its previous instruction's cycles have elapsed, then counts down the
// cycles the new instruction consumes. The Machine drives Cycle once per
// system clock tick and synchronises the rest of the hardware around it.
package cpu

import (
	"github.com/vic20emu/vic20/errors"
	"github.com/vic20emu/vic20/hardware/cpu/history"
	"github.com/vic20emu/vic20/hardware/instance"
)

// Bus is the memory interface the CPU reads instructions and operands
// from, and writes results to. The Machine's system bus implements this.
type Bus interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

const (
	stackPage    = 0x0100
	nmiVector    = 0xfffa
	resetVector  = 0xfffc
	irqVector    = 0xfffe
	tightLoopLen = 2 // instructions observed at the same PC before a loop is declared
)

// CPU is a MOS 6502 interpreter.
type CPU struct {
	instance *instance.Instance
	mem      Bus

	PC uint16
	SP uint8
	A  uint8
	X  uint8
	Y  uint8
	P  StatusRegister

	// cyclesRemaining counts down the cycles an in-flight instruction still
	// has to consume. A new instruction is fetched and fully executed the
	// moment it reaches zero.
	cyclesRemaining int

	pendingIRQ bool
	pendingNMI bool

	// Killed is true once a JAM/KIL opcode has been executed; the 6502
	// genuinely locks up and requires a reset line pulse to recover.
	Killed bool

	// NoFlowControl, when set, causes branches, jumps and calls to be
	// decoded and timed as normal but never actually redirect the program
	// counter. Used by debuggers single-stepping through a disassembly
	// without letting control flow jump ahead of the instruction pointer.
	NoFlowControl bool

	// TrapPC arms tight-loop detection for test harnesses that signal
	// success or failure by looping forever at a known address (the
	// Klaus2m5 functional test suite does this). Trapped is set the first
	// time the CPU is observed looping; if the loop address doesn't match
	// TrapPC, Cycle returns a TrapLoop error naming both.
	TrapPC  *uint16
	Trapped bool

	lastInstructionPC uint16
	loopCount         int

	History *history.History
}

// NewCPU is the preferred method of initialisation for the CPU type.
func NewCPU(instance *instance.Instance, mem Bus) *CPU {
	cpu := &CPU{
		instance: instance,
		mem:      mem,
		History:  history.NewHistory(),
	}
	return cpu
}

// Reset puts the CPU into its power-on/RESET state: the stack pointer is
// set to 0xfd (as real silicon leaves it after the three implicit pushes
// of the reset sequence), interrupts are disabled, and PC is loaded from
// the reset vector. If randomise is true (preferences.RandomState), A/X/Y
// and the remaining flags are seeded from rnd rather than zeroed.
func (cpu *CPU) Reset(randomise bool, rnd func(n int) int) error {
	cpu.SP = 0xfd
	cpu.P.Reset()
	cpu.cyclesRemaining = 0
	cpu.pendingIRQ = false
	cpu.pendingNMI = false
	cpu.Killed = false
	cpu.Trapped = false
	cpu.loopCount = 0

	if randomise && rnd != nil {
		cpu.A = uint8(rnd(256))
		cpu.X = uint8(rnd(256))
		cpu.Y = uint8(rnd(256))
	} else {
		cpu.A, cpu.X, cpu.Y = 0, 0, 0
	}

	lo, err := cpu.mem.Read(resetVector)
	if err != nil {
		return err
	}
	hi, err := cpu.mem.Read(resetVector + 1)
	if err != nil {
		return err
	}
	cpu.PC = uint16(hi)<<8 | uint16(lo)
	cpu.lastInstructionPC = cpu.PC

	return nil
}

// RequestIRQ raises the maskable interrupt line. Serviced the next time
// Cycle begins a new instruction, provided the interrupt-disable flag is
// clear.
func (cpu *CPU) RequestIRQ() {
	cpu.pendingIRQ = true
}

// RequestNMI raises the non-maskable interrupt line. Serviced the next
// time Cycle begins a new instruction, regardless of the interrupt-disable
// flag. NMI always takes priority over a pending IRQ.
func (cpu *CPU) RequestNMI() {
	cpu.pendingNMI = true
}

// InstructionComplete reports whether the CPU is between instructions,
// i.e. the next Cycle call will fetch (or service an interrupt) rather
// than continue counting down a cycle already in flight.
func (cpu *CPU) InstructionComplete() bool {
	return cpu.cyclesRemaining == 0
}

// Cycle advances the CPU by a single system clock cycle.
func (cpu *CPU) Cycle() error {
	if cpu.Killed {
		return nil
	}

	if cpu.cyclesRemaining > 0 {
		cpu.cyclesRemaining--
		return nil
	}

	if cpu.pendingNMI {
		cpu.pendingNMI = false
		return cpu.serviceInterrupt(nmiVector, false)
	}
	if cpu.pendingIRQ && !cpu.P.InterruptDisable {
		cpu.pendingIRQ = false
		return cpu.serviceInterrupt(irqVector, false)
	}

	return cpu.step()
}

// step fetches, decodes and executes the instruction at PC, arming
// cyclesRemaining with however many cycles (including any page-crossing
// or branch-taken penalty) remain to be consumed.
func (cpu *CPU) step() error {
	addr := cpu.PC

	if cpu.TrapPC != nil {
		if addr == cpu.lastInstructionPC {
			cpu.loopCount++
			if cpu.loopCount >= tightLoopLen {
				cpu.Trapped = true
				if addr != *cpu.TrapPC {
					return errors.Errorf(errors.TrapLoop,
						"tight loop at %#04x, expected %#04x", addr, *cpu.TrapPC)
				}
				return nil
			}
		} else {
			cpu.loopCount = 0
		}
	}
	cpu.lastInstructionPC = addr

	opcode, err := cpu.mem.Read(cpu.PC)
	if err != nil {
		return err
	}

	entry := opcodeTable[opcode]
	if entry == nil {
		return errors.Errorf(errors.InvalidOpcode, "invalid opcode %#02x at %#04x", opcode, cpu.PC)
	}

	cpu.History.Add(cpu.PC, opcode, entry.Mnemonic)
	cpu.PC++

	extraCycles, err := cpu.execute(entry)
	if err != nil {
		return err
	}

	cpu.cyclesRemaining = entry.Cycles + extraCycles - 1
	return nil
}

// serviceInterrupt pushes PC and P then loads PC from vector. brk is true
// only for the software BRK instruction, which sets the Break bit in the
// pushed status image; hardware NMI/IRQ leave it clear.
func (cpu *CPU) serviceInterrupt(vector uint16, brk bool) error {
	if err := cpu.push16(cpu.PC); err != nil {
		return err
	}
	if err := cpu.push(cpu.P.Value(brk)); err != nil {
		return err
	}
	cpu.P.InterruptDisable = true

	lo, err := cpu.mem.Read(vector)
	if err != nil {
		return err
	}
	hi, err := cpu.mem.Read(vector + 1)
	if err != nil {
		return err
	}
	cpu.PC = uint16(hi)<<8 | uint16(lo)
	cpu.cyclesRemaining = 7 - 1
	return nil
}

func (cpu *CPU) push(v uint8) error {
	err := cpu.mem.Write(stackPage|uint16(cpu.SP), v)
	cpu.SP--
	return err
}

func (cpu *CPU) pull() (uint8, error) {
	cpu.SP++
	return cpu.mem.Read(stackPage | uint16(cpu.SP))
}

func (cpu *CPU) push16(v uint16) error {
	if err := cpu.push(uint8(v >> 8)); err != nil {
		return err
	}
	return cpu.push(uint8(v))
}

func (cpu *CPU) pull16() (uint16, error) {
	lo, err := cpu.pull()
	if err != nil {
		return 0, err
	}
	hi, err := cpu.pull()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// PredictRTS reports the address an RTS instruction would return to,
// without executing anything, by peeking at the two bytes above the
// current stack pointer. Used by debuggers drawing a call/return overlay.
func (cpu *CPU) PredictRTS() (uint16, error) {
	lo, err := cpu.mem.Read(stackPage | uint16(cpu.SP+1))
	if err != nil {
		return 0, err
	}
	hi, err := cpu.mem.Read(stackPage | uint16(cpu.SP+2))
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo) + 1, nil
}
