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

package cpu

// resolve computes the effective address for mode, consuming whatever
// operand bytes the mode requires (advancing PC) and reporting whether a
// page boundary was crossed while doing so (which, for the handful of
// page-sensitive read instructions, costs an extra cycle).
func (cpu *CPU) resolve(mode AddressingMode) (addr uint16, pageCrossed bool, err error) {
	switch mode {
	case ModeImplied, ModeAccumulator:
		return 0, false, nil

	case ModeImmediate:
		addr = cpu.PC
		cpu.PC++
		return addr, false, nil

	case ModeZeroPage:
		zp, err := cpu.fetchOperand()
		if err != nil {
			return 0, false, err
		}
		return uint16(zp), false, nil

	case ModeZeroPageX:
		zp, err := cpu.fetchOperand()
		if err != nil {
			return 0, false, err
		}
		return uint16(zp + cpu.X), false, nil

	case ModeZeroPageY:
		zp, err := cpu.fetchOperand()
		if err != nil {
			return 0, false, err
		}
		return uint16(zp + cpu.Y), false, nil

	case ModeAbsolute:
		return cpu.fetchOperand16()

	case ModeAbsoluteX:
		base, _, err := cpu.fetchOperand16()
		if err != nil {
			return 0, false, err
		}
		addr = base + uint16(cpu.X)
		return addr, pageOf(base) != pageOf(addr), nil

	case ModeAbsoluteY:
		base, _, err := cpu.fetchOperand16()
		if err != nil {
			return 0, false, err
		}
		addr = base + uint16(cpu.Y)
		return addr, pageOf(base) != pageOf(addr), nil

	case ModeIndirect:
		ptr, _, err := cpu.fetchOperand16()
		if err != nil {
			return 0, false, err
		}
		return cpu.readIndirectBuggy(ptr)

	case ModeIndexedIndirect:
		zp, err := cpu.fetchOperand()
		if err != nil {
			return 0, false, err
		}
		zp += cpu.X
		lo, err := cpu.mem.Read(uint16(zp))
		if err != nil {
			return 0, false, err
		}
		hi, err := cpu.mem.Read(uint16(zp + 1))
		if err != nil {
			return 0, false, err
		}
		return uint16(hi)<<8 | uint16(lo), false, nil

	case ModeIndirectIndexed:
		zp, err := cpu.fetchOperand()
		if err != nil {
			return 0, false, err
		}
		lo, err := cpu.mem.Read(uint16(zp))
		if err != nil {
			return 0, false, err
		}
		hi, err := cpu.mem.Read(uint16(zp + 1))
		if err != nil {
			return 0, false, err
		}
		base := uint16(hi)<<8 | uint16(lo)
		addr = base + uint16(cpu.Y)
		return addr, pageOf(base) != pageOf(addr), nil

	case ModeRelative:
		offset, err := cpu.fetchOperand()
		if err != nil {
			return 0, false, err
		}
		addr = cpu.PC + uint16(int8(offset))
		return addr, pageOf(cpu.PC) != pageOf(addr), nil
	}

	return 0, false, nil
}

func (cpu *CPU) fetchOperand() (uint8, error) {
	v, err := cpu.mem.Read(cpu.PC)
	if err != nil {
		return 0, err
	}
	cpu.PC++
	return v, nil
}

func (cpu *CPU) fetchOperand16() (uint16, bool, error) {
	lo, err := cpu.fetchOperand()
	if err != nil {
		return 0, false, err
	}
	hi, err := cpu.fetchOperand()
	if err != nil {
		return 0, false, err
	}
	return uint16(hi)<<8 | uint16(lo), false, nil
}

// readIndirectBuggy reproduces the NMOS 6502's JMP (indirect) page-wrap
// bug: if the pointer's low byte is 0xff, the high byte of the target is
// fetched from the start of the same page rather than the next page.
func (cpu *CPU) readIndirectBuggy(ptr uint16) (uint16, bool, error) {
	lo, err := cpu.mem.Read(ptr)
	if err != nil {
		return 0, false, err
	}

	hiAddr := ptr + 1
	if uint8(ptr) == 0xff {
		hiAddr = ptr &^ 0x00ff
	}
	hi, err := cpu.mem.Read(hiAddr)
	if err != nil {
		return 0, false, err
	}
	return uint16(hi)<<8 | uint16(lo), false, nil
}

func pageOf(addr uint16) uint16 {
	return addr & 0xff00
}
