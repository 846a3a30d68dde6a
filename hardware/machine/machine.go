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

// Package machine composes the CPU, system bus, two VIAs and the VIC into
// a running VIC-20: it owns the per-tick wiring order between the chips,
// ROM-package loading, cartridge autoboot/keystroke-injected bootstrap,
// and the Stopped/Loaded/Running/Breakpoint state machine that gates it.
package machine

import (
	"github.com/vic20emu/vic20/assert"
	"github.com/vic20emu/vic20/errors"
	"github.com/vic20emu/vic20/hardware/cpu"
	"github.com/vic20emu/vic20/hardware/instance"
	"github.com/vic20emu/vic20/hardware/memory/bus"
	"github.com/vic20emu/vic20/hardware/memory/memorymap"
	"github.com/vic20emu/vic20/hardware/preferences"
	"github.com/vic20emu/vic20/hardware/via"
	"github.com/vic20emu/vic20/hardware/vic"
	"github.com/vic20emu/vic20/romset"
)

// bootstrapAddr is where a non-autoboot cartridge's jump-in stub is
// written; 320 decimal is the address the injected "SYS320" keystrokes
// name.
const bootstrapAddr = 0x0140

// keyboardBufferAddr and keyboardBufferCountAddr are the kernal's type-
// ahead buffer and its fill count, used to inject keystrokes as if typed
// at the BASIC prompt.
const (
	keyboardBufferAddr      = 0x0277
	keyboardBufferCountAddr = 0x00c6
	keyboardBufferLen       = 10
)

// BreakpointFunc is consulted once per tick while Running; returning true
// moves the Machine to the Breakpoint state before the next tick runs.
type BreakpointFunc func(m *Machine) bool

// Machine is one VIC-20, fully wired.
type Machine struct {
	instance *instance.Instance

	Mem  *bus.Memory
	CPU  *cpu.CPU
	VIA1 *via.VIA // joystick/cassette; timer 1 drives NMI
	VIA2 *via.VIA // keyboard matrix; drives IRQ
	VIC  *vic.VIC

	State State

	// tickGoroutine is the goroutine ID Tick was first called from; every
	// later call must come from the same one. The core is defined as
	// single-threaded and cooperative (no device's state is safe for
	// concurrent access), so a Tick from a second goroutine is a bug in
	// the caller, not a condition to recover from.
	tickGoroutine uint64

	// OnBreakpoint, if set, is consulted at the end of every tick while
	// Running.
	OnBreakpoint BreakpointFunc
}

// NewMachine constructs a Machine in the Stopped state. region selects
// the VIC's timing; model selects which expansion blocks are writable
// RAM. prefs may be nil, in which case instance.NewInstance loads (or
// defaults) a fresh Preferences; the VIC itself seeds the instance's
// random source, so the Instance is built here rather than handed in,
// avoiding a construction-order cycle between the two.
func NewMachine(prefs *preferences.Preferences, region vic.Region, model preferences.MemoryModel) (*Machine, error) {
	mem := bus.NewMemory(model)
	v := vic.NewVIC(region, mem)

	ins, err := instance.NewInstance(v, prefs)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		instance: ins,
		Mem:      mem,
		CPU:      cpu.NewCPU(ins, mem),
		VIA1:     via.NewVIA(),
		VIA2:     via.NewVIA(),
		VIC:      v,
		State:    Stopped,
	}

	mem.InstallDevice(memorymap.VICRegisters, m.VIC)
	mem.InstallDevice(memorymap.VIA1Registers, m.VIA1)
	mem.InstallDevice(memorymap.VIA2Registers, m.VIA2)

	return m, nil
}

// Instance returns the Machine's Instance (preferences and random
// source), for callers that need to adjust preferences after
// construction.
func (m *Machine) Instance() *instance.Instance { return m.instance }

// RegionFor maps a preferences.Region to the VIC timing it drives: NTSC
// and Japan use NTSC timing, every other region (including the PAL
// Nordic variants, which differ only in kernal ROM) uses PAL timing.
func RegionFor(region preferences.Region) vic.Region {
	switch region {
	case preferences.RegionNTSC, preferences.RegionJapan:
		return vic.NTSC
	}
	return vic.PAL
}

// kernalRegion maps RegionDefault to the concrete PAL kernal region a ROM
// package is guaranteed to carry (romset.Set.validate requires a PAL and
// an NTSC kernal, never a default-region one), agreeing with RegionFor's
// own default-to-PAL timing choice. Any other region is passed through
// unchanged, so a region-specific kernal (e.g. a Nordic variant) is still
// preferred over the PAL fallback via Set.Kernal's own lookup order.
func kernalRegion(region preferences.Region) preferences.Region {
	if region == preferences.RegionDefault {
		return preferences.RegionPAL
	}
	return region
}

// Reset loads roms, resets every chip, and moves the Machine to Loaded.
// Non-autoboot cartridges are installed and a keystroke-injected BASIC
// bootstrap is armed; autoboot cartridges (load address 0xa000) and
// ROM-only boots fall straight through to the kernal.
func (m *Machine) Reset(roms *romset.Set) error {
	region := m.instance.Prefs.Region

	char, ok := roms.Character(region)
	if !ok {
		return errors.Errorf(errors.Configuration, "rom set has no character rom for region %q", region)
	}
	if err := m.Mem.LoadBlock(memorymap.CharacterROM.Start, char.Data); err != nil {
		return err
	}

	basic, ok := roms.Basic(region)
	if !ok {
		return errors.Errorf(errors.Configuration, "rom set has no basic rom for region %q", region)
	}
	if err := m.Mem.LoadBlock(memorymap.BasicROM.Start, basic.Data); err != nil {
		return err
	}

	kernal, ok := roms.Kernal(kernalRegion(region))
	if !ok {
		return errors.Errorf(errors.Configuration, "rom set has no kernal rom for region %q", region)
	}
	if err := m.Mem.LoadBlock(memorymap.KernalROM.Start, kernal.Data); err != nil {
		return err
	}

	m.VIA1.Reset()
	m.VIA2.Reset()
	m.VIC.Reset()
	m.tickGoroutine = 0

	if cart, ok := roms.Cartridge(); ok {
		if err := m.Mem.LoadBlock(cart.LoadAddr, cart.Data); err != nil {
			return err
		}
		if cart.LoadAddr != memorymap.Block5.Start {
			if err := m.bootstrapCartridge(cart.LoadAddr); err != nil {
				return err
			}
		}
	}

	rnd := m.instance.Random.NoRewind
	if err := m.CPU.Reset(m.instance.Prefs.RandomState.Get(), rnd); err != nil {
		return err
	}

	m.State = Loaded
	return nil
}

// bootstrapCartridge writes a jump-in stub at bootstrapAddr targeting
// entry, and injects the keystrokes "SYS320\r" into the kernal's
// type-ahead buffer so that BASIC, once it reaches its ready prompt,
// runs it unattended.
func (m *Machine) bootstrapCartridge(entry uint16) error {
	jmp := []byte{0x4c, uint8(entry), uint8(entry >> 8)} // JMP entry
	if err := m.Mem.LoadBlock(bootstrapAddr, jmp); err != nil {
		return err
	}

	keys := []byte("SYS320\r")
	if len(keys) > keyboardBufferLen {
		keys = keys[:keyboardBufferLen]
	}
	for i, k := range keys {
		if err := m.Mem.Write(keyboardBufferAddr+uint16(i), k); err != nil {
			return err
		}
	}
	return m.Mem.Write(keyboardBufferCountAddr, uint8(len(keys)))
}

// Start moves a Loaded or Breakpoint Machine into Running.
func (m *Machine) Start() {
	if m.State == Loaded || m.State == Breakpoint {
		m.State = Running
	}
}

// Tick advances every chip by exactly one system clock cycle, in the
// fixed wiring order: VIA1's interrupt line is sampled before anything
// else moves, VIA1 and VIA2 count their timers up, a low-to-high edge on
// VIA1's interrupt line (relative to that pre-CycleUp sample) requests an
// NMI, VIA2's interrupt line requests an IRQ, the CPU executes (or
// continues) an instruction, the VIC paints its slice of the current
// raster line, and both VIAs run their (currently no-op) down-phase hook.
func (m *Machine) Tick() error {
	id := assert.GetGoRoutineID()
	if m.tickGoroutine == 0 {
		m.tickGoroutine = id
	} else if m.tickGoroutine != id {
		panic("machine: Tick called from more than one goroutine")
	}

	// Sampled before CycleUp, not cached from the previous tick: the
	// previous tick's CPU.Cycle can itself clear VIA1's interrupt flag
	// (an NMI handler reading T1C-L, say), so a value cached before that
	// Cycle ran would miss a clear-then-re-expire that happens within a
	// single tick.
	previousNMI := m.VIA1.IRQ()

	m.VIA1.CycleUp()
	m.VIA2.CycleUp()

	if m.VIA1.IRQ() && !previousNMI {
		m.CPU.RequestNMI()
	}
	if m.VIA2.IRQ() {
		m.CPU.RequestIRQ()
	}

	if err := m.CPU.Cycle(); err != nil {
		return err
	}
	if err := m.VIC.Cycle(); err != nil {
		return err
	}

	m.VIA1.CycleDown()
	m.VIA2.CycleDown()

	return nil
}

// RunCycles runs exactly n ticks, stopping early (State becomes
// Breakpoint) if OnBreakpoint reports true after any tick. The Machine
// must already be Running.
func (m *Machine) RunCycles(n int) error {
	for i := 0; i < n && m.State == Running; i++ {
		if err := m.Tick(); err != nil {
			return err
		}
		if m.OnBreakpoint != nil && m.OnBreakpoint(m) {
			m.State = Breakpoint
		}
	}
	return nil
}
