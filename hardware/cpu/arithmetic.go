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

// addBinary adds val and the incoming carry to a, returning the result and
// the new carry/overflow state. Overflow detection follows Ken Shirriff's
// "The 6502 overflow flag explained mathematically".
func addBinary(a, val uint8, carry bool) (result uint8, rcarry, overflow bool) {
	v := a
	result = a + val
	if carry {
		result++
	}
	overflow = ((v ^ result) & (val ^ result) & 0x80) != 0
	if v == result {
		rcarry = carry
	} else {
		rcarry = result < v
	}
	return result, rcarry, overflow
}

// subBinary subtracts val (and the borrow implied by a clear carry) from a.
func subBinary(a, val uint8, carry bool) (result uint8, rcarry, overflow bool) {
	return addBinary(a, ^val, carry)
}

// decimalUnit adds two BCD nibbles (0-9, already isolated) and an incoming
// carry, returning the raw (possibly >9) sum and whether it overflowed a
// single decimal digit. Grounded on Jorge Cwik's "Flags on Decimal mode in
// the NMOS 6502".
func decimalUnit(a, b uint8, carry bool) (r uint8, rcarry bool) {
	r = a + b
	if carry {
		r++
	}
	return r, r > 9
}

// addDecimal adds val to a as though both were two-digit BCD values,
// returning the BCD result, new carry, and the zero/overflow/sign flags as
// the NMOS 6502 computes them mid-correction.
func addDecimal(a, val uint8, carry bool) (result uint8, rcarry, zero, overflow, sign bool) {
	units, ucarry := decimalUnit(a&0x0f, val&0x0f, carry)
	tens, tcarry := decimalUnit((a&0xf0)>>4, (val&0xf0)>>4, ucarry)

	// "The Z flag is computed before performing any decimal adjust."
	zero = units == 0x00 && tens == 0x00

	if ucarry {
		units -= 10
	}

	// "The N and V flags are computed after a decimal adjust of the low
	// nibble, but before adjusting the high nibble" (tens not yet shifted
	// into the upper nibble).
	overflow = tens&0x04 == 0x04
	sign = tens&0x08 == 0x08

	if tcarry {
		tens -= 10
	}

	result = (tens << 4) | units
	return result, tcarry, zero, overflow, sign
}

// subDecimal subtracts val from a as BCD values. The 6502 carry flag is the
// complement of borrow, so the incoming/outgoing carry sense is inverted
// around the shared subtractDecimal helper.
func subDecimal(a, val uint8, carry bool) (result uint8, rcarry bool) {
	carry = !carry

	units, ucarry := subtractDecimalUnit(a&0x0f, val&0x0f, carry)
	tens, tcarry := subtractDecimalUnit((a&0xf0)>>4, (val&0xf0)>>4, ucarry)

	if ucarry {
		units += 10
	}
	if tcarry {
		tens += 10
	}

	result = (tens << 4) | units
	return result, !tcarry
}

func subtractDecimalUnit(a, b uint8, carry bool) (r uint8, rcarry bool) {
	r = a - b
	if carry {
		r--
	}
	return r, b > a || (carry && b == a)
}
