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

// StatusRegister holds the six visible 6502 flags plus the two bits (5 and
// the Break flag) that only exist when the register is pushed to the stack.
// Bit 5 is unused and always reads back set.
type StatusRegister struct {
	Sign             bool // N
	Overflow         bool // V
	Break            bool // B, stack image only
	DecimalMode      bool // D
	InterruptDisable bool // I
	Zero             bool // Z
	Carry            bool // C
}

// Value packs the flags into the wire representation pushed by PHP/BRK and
// read back by PLP/RTI. brk selects whether the Break bit is set, which is
// true for PHP and BRK but false for the status snapshot taken when
// servicing a hardware IRQ or NMI.
func (s StatusRegister) Value(brk bool) uint8 {
	var v uint8
	if s.Sign {
		v |= 0b1000_0000
	}
	if s.Overflow {
		v |= 0b0100_0000
	}
	v |= 0b0010_0000 // bit 5, always set
	if brk {
		v |= 0b0001_0000
	}
	if s.DecimalMode {
		v |= 0b0000_1000
	}
	if s.InterruptDisable {
		v |= 0b0000_0100
	}
	if s.Zero {
		v |= 0b0000_0010
	}
	if s.Carry {
		v |= 0b0000_0001
	}
	return v
}

// FromValue unpacks a status byte read from the stack by PLP/RTI. The Break
// bit is not restored to the flag it decorates on the stack; there is no
// latched "B flag" in the running CPU, only its pushed image.
func (s *StatusRegister) FromValue(v uint8) {
	s.Sign = v&0b1000_0000 != 0
	s.Overflow = v&0b0100_0000 != 0
	s.DecimalMode = v&0b0000_1000 != 0
	s.InterruptDisable = v&0b0000_0100 != 0
	s.Zero = v&0b0000_0010 != 0
	s.Carry = v&0b0000_0001 != 0
}

// setNZ derives the Sign and Zero flags from a result value, as almost every
// load/transfer/arithmetic/logic operation does.
func (s *StatusRegister) setNZ(v uint8) {
	s.Sign = v&0x80 != 0
	s.Zero = v == 0
}

// Reset returns the flags to their power-on state: interrupts disabled,
// everything else clear.
func (s *StatusRegister) Reset() {
	*s = StatusRegister{InterruptDisable: true}
}
