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

// execute runs the operation named by entry.Op, resolving its operand
// address first. It returns the number of cycles to add to entry.Cycles
// (a page-crossing or taken-branch penalty).
func (cpu *CPU) execute(entry *Entry) (int, error) {
	addr, pageCrossed, err := cpu.resolve(entry.Mode)
	if err != nil {
		return 0, err
	}

	extra := 0
	if entry.PageSensitive && pageCrossed {
		extra = 1
	}

	var operand uint8
	if entry.Effect == EffectRead || entry.Effect == EffectRMW {
		if entry.Mode == ModeAccumulator {
			operand = cpu.A
		} else {
			operand, err = cpu.mem.Read(addr)
			if err != nil {
				return 0, err
			}
		}
	}

	writeBack := func(v uint8) error {
		if entry.Mode == ModeAccumulator {
			cpu.A = v
			return nil
		}
		return cpu.mem.Write(addr, v)
	}

	switch entry.Op {
	case OpADC:
		cpu.adc(operand)
	case OpSBC:
		cpu.sbc(operand)
	case OpAND:
		cpu.A &= operand
		cpu.P.setNZ(cpu.A)
	case OpORA:
		cpu.A |= operand
		cpu.P.setNZ(cpu.A)
	case OpEOR:
		cpu.A ^= operand
		cpu.P.setNZ(cpu.A)
	case OpBIT:
		cpu.P.Zero = cpu.A&operand == 0
		cpu.P.Sign = operand&0x80 != 0
		cpu.P.Overflow = operand&0x40 != 0
	case OpCMP:
		cpu.compare(cpu.A, operand)
	case OpCPX:
		cpu.compare(cpu.X, operand)
	case OpCPY:
		cpu.compare(cpu.Y, operand)

	case OpASL:
		carry := operand&0x80 != 0
		operand <<= 1
		cpu.P.Carry = carry
		cpu.P.setNZ(operand)
		return extra, writeBack(operand)
	case OpLSR:
		carry := operand&0x01 != 0
		operand >>= 1
		cpu.P.Carry = carry
		cpu.P.setNZ(operand)
		return extra, writeBack(operand)
	case OpROL:
		carry := operand&0x80 != 0
		operand <<= 1
		if cpu.P.Carry {
			operand |= 0x01
		}
		cpu.P.Carry = carry
		cpu.P.setNZ(operand)
		return extra, writeBack(operand)
	case OpROR:
		carry := operand&0x01 != 0
		operand >>= 1
		if cpu.P.Carry {
			operand |= 0x80
		}
		cpu.P.Carry = carry
		cpu.P.setNZ(operand)
		return extra, writeBack(operand)
	case OpINC:
		operand++
		cpu.P.setNZ(operand)
		return extra, writeBack(operand)
	case OpDEC:
		operand--
		cpu.P.setNZ(operand)
		return extra, writeBack(operand)

	case OpLDA:
		cpu.A = operand
		cpu.P.setNZ(cpu.A)
	case OpLDX:
		cpu.X = operand
		cpu.P.setNZ(cpu.X)
	case OpLDY:
		cpu.Y = operand
		cpu.P.setNZ(cpu.Y)
	case OpSTA:
		return extra, cpu.mem.Write(addr, cpu.A)
	case OpSTX:
		return extra, cpu.mem.Write(addr, cpu.X)
	case OpSTY:
		return extra, cpu.mem.Write(addr, cpu.Y)

	case OpTAX:
		cpu.X = cpu.A
		cpu.P.setNZ(cpu.X)
	case OpTAY:
		cpu.Y = cpu.A
		cpu.P.setNZ(cpu.Y)
	case OpTXA:
		cpu.A = cpu.X
		cpu.P.setNZ(cpu.A)
	case OpTYA:
		cpu.A = cpu.Y
		cpu.P.setNZ(cpu.A)
	case OpTSX:
		cpu.X = cpu.SP
		cpu.P.setNZ(cpu.X)
	case OpTXS:
		cpu.SP = cpu.X

	case OpINX:
		cpu.X++
		cpu.P.setNZ(cpu.X)
	case OpINY:
		cpu.Y++
		cpu.P.setNZ(cpu.Y)
	case OpDEX:
		cpu.X--
		cpu.P.setNZ(cpu.X)
	case OpDEY:
		cpu.Y--
		cpu.P.setNZ(cpu.Y)

	case OpCLC:
		cpu.P.Carry = false
	case OpSEC:
		cpu.P.Carry = true
	case OpCLI:
		cpu.P.InterruptDisable = false
	case OpSEI:
		cpu.P.InterruptDisable = true
	case OpCLD:
		cpu.P.DecimalMode = false
	case OpSED:
		cpu.P.DecimalMode = true
	case OpCLV:
		cpu.P.Overflow = false

	case OpPHA:
		return extra, cpu.push(cpu.A)
	case OpPHP:
		return extra, cpu.push(cpu.P.Value(true))
	case OpPLA:
		v, err := cpu.pull()
		if err != nil {
			return 0, err
		}
		cpu.A = v
		cpu.P.setNZ(cpu.A)
	case OpPLP:
		v, err := cpu.pull()
		if err != nil {
			return 0, err
		}
		cpu.P.FromValue(v)

	case OpJMP:
		if !cpu.NoFlowControl {
			cpu.PC = addr
		}
	case OpJSR:
		if err := cpu.push16(cpu.PC - 1); err != nil {
			return 0, err
		}
		if !cpu.NoFlowControl {
			cpu.PC = addr
		}
	case OpRTS:
		ret, err := cpu.pull16()
		if err != nil {
			return 0, err
		}
		if !cpu.NoFlowControl {
			cpu.PC = ret + 1
		}
	case OpRTI:
		p, err := cpu.pull()
		if err != nil {
			return 0, err
		}
		ret, err := cpu.pull16()
		if err != nil {
			return 0, err
		}
		cpu.P.FromValue(p)
		if !cpu.NoFlowControl {
			cpu.PC = ret
		}
	case OpBRK:
		cpu.PC++ // the byte after BRK is a padding byte, conventionally a signature
		if err := cpu.push16(cpu.PC); err != nil {
			return 0, err
		}
		if err := cpu.push(cpu.P.Value(true)); err != nil {
			return 0, err
		}
		cpu.P.InterruptDisable = true
		lo, err := cpu.mem.Read(irqVector)
		if err != nil {
			return 0, err
		}
		hi, err := cpu.mem.Read(irqVector + 1)
		if err != nil {
			return 0, err
		}
		if !cpu.NoFlowControl {
			cpu.PC = uint16(hi)<<8 | uint16(lo)
		}

	case OpBCC:
		return cpu.branch(!cpu.P.Carry, addr, pageCrossed)
	case OpBCS:
		return cpu.branch(cpu.P.Carry, addr, pageCrossed)
	case OpBEQ:
		return cpu.branch(cpu.P.Zero, addr, pageCrossed)
	case OpBNE:
		return cpu.branch(!cpu.P.Zero, addr, pageCrossed)
	case OpBMI:
		return cpu.branch(cpu.P.Sign, addr, pageCrossed)
	case OpBPL:
		return cpu.branch(!cpu.P.Sign, addr, pageCrossed)
	case OpBVC:
		return cpu.branch(!cpu.P.Overflow, addr, pageCrossed)
	case OpBVS:
		return cpu.branch(cpu.P.Overflow, addr, pageCrossed)

	case OpNOP:
		// operand (if any) has already been read and is discarded; this
		// covers both the official NOP and the illegal read-and-discard
		// NOP variants a handful of real-world programs rely on.

	case OpJAM:
		cpu.Killed = true
	}

	return extra, nil
}

// branch applies a conditional branch's cycle penalties: one cycle if
// taken, a further one if the target is on a different page.
func (cpu *CPU) branch(taken bool, target uint16, pageCrossed bool) (int, error) {
	if !taken {
		return 0, nil
	}
	extra := 1
	if pageCrossed {
		extra++
	}
	if !cpu.NoFlowControl {
		cpu.PC = target
	}
	return extra, nil
}

func (cpu *CPU) compare(reg, val uint8) {
	result := reg - val
	cpu.P.Carry = reg >= val
	cpu.P.setNZ(result)
}

// adc adds val and the carry flag into A, in binary or BCD according to
// the decimal mode flag.
func (cpu *CPU) adc(val uint8) {
	if cpu.P.DecimalMode {
		result, carry, zero, overflow, sign := addDecimal(cpu.A, val, cpu.P.Carry)
		cpu.A = result
		cpu.P.Carry = carry
		cpu.P.Zero = zero
		cpu.P.Overflow = overflow
		cpu.P.Sign = sign
		return
	}

	result, carry, overflow := addBinary(cpu.A, val, cpu.P.Carry)
	cpu.A = result
	cpu.P.Carry = carry
	cpu.P.Overflow = overflow
	cpu.P.setNZ(cpu.A)
}

// sbc subtracts val (and the borrow implied by a clear carry) from A.
// Binary mode is symmetric with adc via one's-complement; decimal mode
// uses its own ten's-complement correction since the NMOS 6502 does not
// actually complement the BCD operand internally.
func (cpu *CPU) sbc(val uint8) {
	if cpu.P.DecimalMode {
		binResult, binCarry, binOverflow := addBinary(cpu.A, ^val, cpu.P.Carry)
		result, _ := subDecimal(cpu.A, val, cpu.P.Carry)
		cpu.A = result
		cpu.P.Carry = binCarry
		cpu.P.Overflow = binOverflow
		cpu.P.setNZ(binResult)
		return
	}

	result, carry, overflow := subBinary(cpu.A, val, cpu.P.Carry)
	cpu.A = result
	cpu.P.Carry = carry
	cpu.P.Overflow = overflow
	cpu.P.setNZ(cpu.A)
}
