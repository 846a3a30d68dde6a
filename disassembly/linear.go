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

package disassembly

import "github.com/vic20emu/vic20/hardware/cpu"

// Peeker gives read-only, side-effect-free access to raw memory bytes,
// for rendering operand bytes without going through a device's Read
// (which, for a VIA timer register, has a side effect of its own).
type Peeker interface {
	Peek(addr uint16) uint8
}

// Linear decodes every address from start to end inclusive, in strict
// address order, without following any jump, call or branch. Unlike a
// flow-following disassembly it can't miss a reachable instruction, but
// it will also happily decode the occasional byte of data as if it were
// one, and once it does, its operand bytes throw off the alignment of
// everything that follows until the next byte that resyncs by chance —
// exactly the tradeoff a linear disassembly always makes.
//
// Each instruction is actually run through mc with NoFlowControl set, so
// that operand length, addressing mode and cycle cost come from the CPU's
// own opcode table rather than a second copy of it kept here; mc.PC and
// mc.NoFlowControl are saved and restored before Linear returns. An
// opcode with no table entry is recorded as a single raw data byte and
// the walk resumes at the next address.
//
// Linear is side-effect free only when walked over write-protected ROM:
// a decoded instruction that happens to write through RAM, or read an
// I/O register with a side effect of its own, really does so.
func Linear(mc *cpu.CPU, mem Peeker, start, end uint16) ([]Entry, error) {
	savedPC := mc.PC
	savedFlow := mc.NoFlowControl
	defer func() {
		mc.PC = savedPC
		mc.NoFlowControl = savedFlow
	}()

	mc.NoFlowControl = true

	var entries []Entry
	addr := start
	for {
		opcode := mem.Peek(addr)
		def := cpu.Lookup(opcode)

		if def == nil {
			entries = append(entries, Entry{Address: addr, Opcode: opcode})
			if addr == end {
				break
			}
			addr++
			continue
		}

		mc.PC = addr
		if err := mc.Cycle(); err != nil {
			return entries, err
		}
		for !mc.InstructionComplete() {
			if err := mc.Cycle(); err != nil {
				return entries, err
			}
		}

		length := int(mc.PC - addr)
		if length < 1 {
			length = 1
		}
		operands := make([]uint8, length-1)
		for i := range operands {
			operands[i] = mem.Peek(addr + 1 + uint16(i))
		}

		entries = append(entries, Entry{
			Address:  addr,
			Opcode:   opcode,
			Operands: operands,
			Mnemonic: def.Mnemonic,
			Mode:     def.Mode,
			Valid:    true,
		})

		next := addr + uint16(length)
		if addr == end || next <= addr {
			break
		}
		addr = next
	}

	return entries, nil
}
