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

package klaus2m5

import (
	"github.com/vic20emu/vic20/errors"
	"github.com/vic20emu/vic20/hardware/cpu"
	"github.com/vic20emu/vic20/hardware/instance"
)

// these addresses are specific to the functional test binary, per the
// upstream project's documented memory layout for a ROM_vectors=0 build.
const (
	programOrigin  = uint16(0x0400)
	loadAddress    = uint16(0x000a)
	successAddress = uint16(0x3469)
)

// flatMemory is the flat, fully-writable 64 KiB address space the
// functional test assumes; it implements cpu.Bus directly rather than
// going through hardware/memory/bus, since the test neither exercises
// MMIO nor cares about ROM write-protection.
type flatMemory struct {
	ram [0x10000]uint8
}

func (m *flatMemory) Read(address uint16) (uint8, error) {
	return m.ram[address], nil
}

func (m *flatMemory) Write(address uint16, data uint8) error {
	m.ram[address] = data
	return nil
}

// zeroCoords satisfies random.RasterCoords with a fixed point, since the
// test harness has no VIC to seed the instance's random source from.
type zeroCoords struct{}

func (zeroCoords) RasterCoords() (frame, line, cycle int) { return 0, 0, 0 }

// Result reports the outcome of a Run.
type Result struct {
	// Cycles is the total number of CPU cycles consumed before the
	// success loop was reached.
	Cycles int
}

// Run loads image (the assembled 6502_functional_test.bin) at
// loadAddress, arms TrapPC at successAddress, and drives the CPU until
// either the success loop is reached or a TrapLoop error is raised at
// some other address. A TrapLoop error at any address other than
// successAddress is the test's failure signal; the error text names both
// the actual and expected address, per the specification's trap-loop
// diagnostic.
func Run(image []byte) (Result, error) {
	mem := &flatMemory{}
	copy(mem.ram[loadAddress:], image)
	origin := programOrigin
	mem.ram[0xfffc] = uint8(origin)
	mem.ram[0xfffd] = uint8(origin >> 8)

	ins, err := instance.NewInstance(zeroCoords{}, nil)
	if err != nil {
		return Result{}, errors.Wrap(errors.Configuration, err, "klaus2m5 instance")
	}
	ins.Normalise()

	mc := cpu.NewCPU(ins, mem)
	trap := successAddress
	mc.TrapPC = &trap
	if err := mc.Reset(false, nil); err != nil {
		return Result{}, err
	}

	cycles := 0
	for !mc.Trapped {
		if err := mc.Cycle(); err != nil {
			return Result{Cycles: cycles}, err
		}
		cycles++
	}
	return Result{Cycles: cycles}, nil
}
