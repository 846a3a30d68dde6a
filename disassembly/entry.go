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

import (
	"fmt"

	"github.com/vic20emu/vic20/hardware/cpu"
)

// Entry is one decoded instruction (or, for a byte with no defined
// opcode, one raw data byte) at a fixed address.
type Entry struct {
	Address  uint16
	Opcode   uint8
	Operands []uint8
	Mnemonic string
	Mode     cpu.AddressingMode
	Valid    bool // false if Opcode has no defined behaviour on this CPU
}

// String renders addr, the raw bytes, and the assembler-style mnemonic
// and operand, in the compact single-line form the teacher's disassembly
// listings use.
func (e Entry) String() string {
	raw := fmt.Sprintf("%02X", e.Opcode)
	for _, b := range e.Operands {
		raw += fmt.Sprintf(" %02X", b)
	}

	if !e.Valid {
		return fmt.Sprintf("$%04X: %-8s .BYTE $%02X", e.Address, raw, e.Opcode)
	}

	return fmt.Sprintf("$%04X: %-8s %s %s", e.Address, raw, e.Mnemonic, e.operand())
}

func (e Entry) operand() string {
	switch e.Mode {
	case cpu.ModeImplied, cpu.ModeAccumulator:
		return ""
	case cpu.ModeImmediate:
		return fmt.Sprintf("#$%02X", e.Operands[0])
	case cpu.ModeZeroPage:
		return fmt.Sprintf("$%02X", e.Operands[0])
	case cpu.ModeZeroPageX:
		return fmt.Sprintf("$%02X,X", e.Operands[0])
	case cpu.ModeZeroPageY:
		return fmt.Sprintf("$%02X,Y", e.Operands[0])
	case cpu.ModeAbsolute:
		return fmt.Sprintf("$%04X", e.word())
	case cpu.ModeAbsoluteX:
		return fmt.Sprintf("$%04X,X", e.word())
	case cpu.ModeAbsoluteY:
		return fmt.Sprintf("$%04X,Y", e.word())
	case cpu.ModeIndirect:
		return fmt.Sprintf("($%04X)", e.word())
	case cpu.ModeIndexedIndirect:
		return fmt.Sprintf("($%02X,X)", e.Operands[0])
	case cpu.ModeIndirectIndexed:
		return fmt.Sprintf("($%02X),Y", e.Operands[0])
	case cpu.ModeRelative:
		target := e.Address + 2 + uint16(int8(e.Operands[0]))
		return fmt.Sprintf("$%04X", target)
	}
	return ""
}

func (e Entry) word() uint16 {
	return uint16(e.Operands[1])<<8 | uint16(e.Operands[0])
}
