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

// Package bus implements the VIC-20's 64 KiB address space: a backing RAM
// array addressed through two parallel vectors of per-address read/write
// handlers, so that MMIO dispatch and ROM write-protection are both O(1)
// per access with no range checks on the hot path.
package bus

import (
	"reflect"

	"github.com/vic20emu/vic20/hardware/memory/memorymap"
	"github.com/vic20emu/vic20/hardware/preferences"
)

// Device is satisfied by anything the Bus can route MMIO reads and writes
// to: the VIC and the two VIAs.
type Device interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

type readFunc func(addr uint16) (uint8, error)
type writeFunc func(addr uint16, v uint8) error

// Memory is the VIC-20 system bus.
type Memory struct {
	ram [0x10000]uint8

	read  [0x10000]readFunc
	write [0x10000]writeFunc
}

// NewMemory is the preferred method of initialisation for the Memory type.
// Every cell defaults to reading/writing the backing array; model then
// write-protects (or un-protects) the blocks it governs.
func NewMemory(model preferences.MemoryModel) *Memory {
	mem := &Memory{}

	for addr := 0; addr < len(mem.ram); addr++ {
		a := uint16(addr)
		mem.read[a] = mem.readRAM
		mem.write[a] = mem.writeRAM
	}

	mem.applyMemoryModel(model)
	return mem
}

func (mem *Memory) readRAM(addr uint16) (uint8, error) {
	return mem.ram[addr], nil
}

func (mem *Memory) writeRAM(addr uint16, v uint8) error {
	mem.ram[addr] = v
	return nil
}

func (mem *Memory) writeNull(addr uint16, v uint8) error {
	return nil
}

// protect installs writeNull across every address in r, leaving the read
// handler (and therefore the ROM contents once loaded) untouched.
func (mem *Memory) protect(r memorymap.Region) {
	for addr := int(r.Start); addr <= int(r.End); addr++ {
		mem.write[addr] = mem.writeNull
	}
}

// unprotect restores the default RAM write handler across every address
// in r, turning an expansion block into writable RAM.
func (mem *Memory) unprotect(r memorymap.Region) {
	for addr := int(r.Start); addr <= int(r.End); addr++ {
		mem.write[addr] = mem.writeRAM
	}
}

// applyMemoryModel write-protects the two fixed system ROMs and the
// character ROM, write-protects the I/O-expansion range (permanently
// unpopulated on this core; no I/O expansion cartridges are modelled),
// and then turns on exactly the expansion blocks the named model wires
// in. The naming follows the real VIC-20 expansion cartridges: "+8K",
// "+16K" and "+24K" are cumulative over BLK1-BLK3; "+32K" adds BLK5
// (the cartridge/RAM block normally used for BASIC-accessible
// cartridges); "+35K" additionally wires in the 3 KiB block below
// MainRAM. "test" leaves the entire address space writable, matching
// the flat-RAM image the Klaus2m5 functional test ROM expects.
func (mem *Memory) applyMemoryModel(model preferences.MemoryModel) {
	mem.protect(memorymap.CharacterROM)
	mem.protect(memorymap.BasicROM)
	mem.protect(memorymap.KernalROM)
	mem.protect(memorymap.IOExpansion)

	mem.protect(memorymap.Expansion3K)
	mem.protect(memorymap.Block1)
	mem.protect(memorymap.Block2)
	mem.protect(memorymap.Block3)
	mem.protect(memorymap.Block5)

	switch model {
	case preferences.ModelUnexpanded:
		// nothing further writable

	case preferences.Model3K:
		mem.unprotect(memorymap.Expansion3K)

	case preferences.Model8K:
		mem.unprotect(memorymap.Block1)

	case preferences.Model16K:
		mem.unprotect(memorymap.Block1)
		mem.unprotect(memorymap.Block2)

	case preferences.Model24K:
		mem.unprotect(memorymap.Block1)
		mem.unprotect(memorymap.Block2)
		mem.unprotect(memorymap.Block3)

	case preferences.Model32K:
		mem.unprotect(memorymap.Block1)
		mem.unprotect(memorymap.Block2)
		mem.unprotect(memorymap.Block3)
		mem.unprotect(memorymap.Block5)

	case preferences.Model35K:
		mem.unprotect(memorymap.Expansion3K)
		mem.unprotect(memorymap.Block1)
		mem.unprotect(memorymap.Block2)
		mem.unprotect(memorymap.Block3)
		mem.unprotect(memorymap.Block5)

	case preferences.ModelTest:
		mem.unprotect(memorymap.CharacterROM)
		mem.unprotect(memorymap.BasicROM)
		mem.unprotect(memorymap.KernalROM)
		mem.unprotect(memorymap.IOExpansion)
		mem.unprotect(memorymap.Expansion3K)
		mem.unprotect(memorymap.Block1)
		mem.unprotect(memorymap.Block2)
		mem.unprotect(memorymap.Block3)
		mem.unprotect(memorymap.Block5)
	}
}

// InstallDevice routes every read and write in r to dev, overriding
// whatever handler the memory model installed. Called once per device at
// Machine construction, after NewMemory.
func (mem *Memory) InstallDevice(r memorymap.Region, dev Device) {
	for addr := int(r.Start); addr <= int(r.End); addr++ {
		a := uint16(addr)
		mem.read[a] = func(addr uint16) (uint8, error) { return dev.Read(addr) }
		mem.write[a] = func(addr uint16, v uint8) error { return dev.Write(addr, v) }
	}
}

// Read returns the byte at addr via its installed read handler.
func (mem *Memory) Read(addr uint16) (uint8, error) {
	return mem.read[addr](addr)
}

// Write stores v at addr via its installed write handler.
func (mem *Memory) Write(addr uint16, v uint8) error {
	return mem.write[addr](addr, v)
}

// ReadWord reads a little-endian word starting at addr. The high byte's
// address wraps modulo 0x10000, matching real 6502 zero-page/vector
// fetch behaviour at the top of the address space.
func (mem *Memory) ReadWord(addr uint16) (uint16, error) {
	lo, err := mem.Read(addr)
	if err != nil {
		return 0, err
	}
	hi, err := mem.Read(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// WriteWord stores v as a little-endian word starting at addr.
func (mem *Memory) WriteWord(addr uint16, v uint16) error {
	if err := mem.Write(addr, uint8(v)); err != nil {
		return err
	}
	return mem.Write(addr+1, uint8(v>>8))
}

// LoadBlock copies data into the backing array starting at offset,
// bypassing the installed write handler so that ROM images can be
// installed into write-protected regions.
func (mem *Memory) LoadBlock(offset uint16, data []byte) error {
	for i, b := range data {
		mem.ram[offset+uint16(i)] = b
	}
	return nil
}

// Peek returns the backing array's contents at addr directly, bypassing
// the installed read handler. Used by debug interfaces that want to dump
// a page of memory without triggering a device's read side effects (a
// VIA timer register read, for instance, clears an interrupt flag).
func (mem *Memory) Peek(addr uint16) uint8 {
	return mem.ram[addr]
}

// PeekPage returns the 256 bytes of the page addr belongs to (addr with
// its low byte cleared), via Peek.
func (mem *Memory) PeekPage(page uint8) [256]uint8 {
	var out [256]uint8
	base := uint16(page) << 8
	for i := range out {
		out[i] = mem.ram[base+uint16(i)]
	}
	return out
}

// HandlerKind classifies addr's installed write handler, for debug
// front-ends (cmd/busmap) that want to visualise which ranges are backing
// RAM, which are write-protected (ROM or unpopulated), and which are
// routed to device MMIO. Comparing the reflect.Value.Pointer of the
// installed closure against mem's own writeRAM/writeNull methods is the
// only way to recover this classification after the fact, since the
// dispatch table itself stores only opaque func values.
func (mem *Memory) HandlerKind(addr uint16) HandlerKind {
	fn := reflect.ValueOf(mem.write[addr]).Pointer()
	switch fn {
	case reflect.ValueOf(writeFunc(mem.writeRAM)).Pointer():
		return KindRAM
	case reflect.ValueOf(writeFunc(mem.writeNull)).Pointer():
		return KindProtected
	default:
		return KindDevice
	}
}

// HandlerKind names the three ways an address's write handler can be
// installed.
type HandlerKind int

// The three HandlerKind values.
const (
	KindRAM HandlerKind = iota
	KindProtected
	KindDevice
)

func (k HandlerKind) String() string {
	switch k {
	case KindRAM:
		return "ram"
	case KindProtected:
		return "protected"
	case KindDevice:
		return "device"
	}
	return ""
}
