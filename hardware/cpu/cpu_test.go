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

import (
	"testing"

	"github.com/vic20emu/vic20/hardware/instance"
	"github.com/vic20emu/vic20/internal/fluent"
)

// flatMemory is a fully-writable 64 KiB address space with no MMIO, for
// tests that only care about CPU semantics.
type flatMemory struct {
	ram [0x10000]uint8
}

func (m *flatMemory) Read(address uint16) (uint8, error) { return m.ram[address], nil }

func (m *flatMemory) Write(address uint16, data uint8) error {
	m.ram[address] = data
	return nil
}

type zeroCoords struct{}

func (zeroCoords) RasterCoords() (frame, line, cycle int) { return 0, 0, 0 }

// newTestCPU returns a CPU over a flat, fully-writable address space with
// PC at origin and SP at the given value. RandomState is never used, so
// reset is always deterministic.
func newTestCPU(t *testing.T, origin uint16, sp uint8) (*CPU, *flatMemory) {
	t.Helper()

	mem := &flatMemory{}
	mem.ram[resetVector] = uint8(origin)
	mem.ram[resetVector+1] = uint8(origin >> 8)

	ins, err := instance.NewInstance(zeroCoords{}, nil)
	if err != nil {
		t.Fatalf("instance.NewInstance: %v", err)
	}
	ins.Normalise()

	c := NewCPU(ins, mem)
	if err := c.Reset(false, nil); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	c.SP = sp

	return c, mem
}

// runOne executes exactly one instruction: the Cycle call that fetches and
// executes it, plus however many further Cycle calls are needed to drain
// its remaining cycle count, so the CPU is positioned to fetch the next
// instruction on the following call.
func runOne(t *testing.T, c *CPU) {
	t.Helper()
	if err := c.Cycle(); err != nil {
		t.Fatalf("Cycle: %v", err)
	}
	for !c.InstructionComplete() {
		if err := c.Cycle(); err != nil {
			t.Fatalf("Cycle: %v", err)
		}
	}
}

// TestADCDecimalMode is scenario S1: preloading D=1, C=0, A=0x19 and
// ADC #$28 must produce A=0x47, C=0, Z=0, N=0 — nibble-wise BCD addition
// with decimal correction, not binary 0x19+0x28=0x41.
func TestADCDecimalMode(t *testing.T) {
	c, mem := newTestCPU(t, 0x1000, 0xff)
	c.A = 0x19
	c.P.DecimalMode = true
	c.P.Carry = false

	mem.ram[0x1000] = 0x69 // ADC #
	mem.ram[0x1001] = 0x28

	runOne(t, c)

	fluent.Equal(t, c.A, uint8(0x47), "A")
	fluent.Equal(t, c.P.Carry, false, "C")
	fluent.Equal(t, c.P.Zero, false, "Z")
	fluent.Equal(t, c.P.Sign, false, "N")
}

// TestADCSignedOverflow is scenario S2: binary ADC of two positive operands
// whose sum overflows the signed 8-bit range must set V and N, and leave C
// clear (the unsigned sum doesn't carry out of bit 7 into bit 8... here it
// does not exceed 0xFF at all, only the signed interpretation overflows).
func TestADCSignedOverflow(t *testing.T) {
	c, mem := newTestCPU(t, 0x1000, 0xff)
	c.A = 0x50
	c.P.DecimalMode = false
	c.P.Carry = false

	mem.ram[0x1000] = 0x69 // ADC #
	mem.ram[0x1001] = 0x50

	runOne(t, c)

	fluent.Equal(t, c.A, uint8(0xa0), "A")
	fluent.Equal(t, c.P.Overflow, true, "V")
	fluent.Equal(t, c.P.Sign, true, "N")
	fluent.Equal(t, c.P.Carry, false, "C")
}

// TestSBCIsADCWithInvertedOperand checks the universal invariant that, in
// binary mode, SBC(x) == ADC(x XOR 0xFF).
func TestSBCIsADCWithInvertedOperand(t *testing.T) {
	run := func(adc bool, a, m, carry uint8) (result uint8, c, v, n, z bool) {
		cpu, mem := newTestCPU(t, 0x1000, 0xff)
		cpu.A = a
		cpu.P.Carry = carry != 0
		if adc {
			mem.ram[0x1000] = 0x69 // ADC #
			mem.ram[0x1001] = m
		} else {
			mem.ram[0x1000] = 0xe9 // SBC #
			mem.ram[0x1001] = m ^ 0xff
		}
		runOne(t, cpu)
		return cpu.A, cpu.P.Carry, cpu.P.Overflow, cpu.P.Sign, cpu.P.Zero
	}

	for _, tc := range []struct{ a, m, carry uint8 }{
		{0x10, 0x05, 1},
		{0x7f, 0x01, 1},
		{0x00, 0x00, 0},
		{0xff, 0xff, 1},
	} {
		wantA, wantC, wantV, wantN, wantZ := run(true, tc.a, tc.m^0xff, tc.carry)
		gotA, gotC, gotV, gotN, gotZ := run(false, tc.a, tc.m^0xff, tc.carry)
		fluent.Equal(t, gotA, wantA, "A")
		fluent.Equal(t, gotC, wantC, "C")
		fluent.Equal(t, gotV, wantV, "V")
		fluent.Equal(t, gotN, wantN, "N")
		fluent.Equal(t, gotZ, wantZ, "Z")
	}
}

// TestJSRRTSRoundTrip is scenario S3: from PC=0x1000, SP=0xFF, JSR $2000
// followed by RTS at $2000 must leave PC=0x1003 and SP unchanged at 0xFF.
func TestJSRRTSRoundTrip(t *testing.T) {
	c, mem := newTestCPU(t, 0x1000, 0xff)

	mem.ram[0x1000] = 0x20 // JSR $2000
	mem.ram[0x1001] = 0x00
	mem.ram[0x1002] = 0x20
	mem.ram[0x2000] = 0x60 // RTS

	runOne(t, c) // JSR
	fluent.Equal(t, c.PC, uint16(0x2000), "PC after JSR")
	fluent.Equal(t, c.SP, uint8(0xfd), "SP after JSR")

	runOne(t, c) // RTS
	fluent.Equal(t, c.PC, uint16(0x1003), "PC after RTS")
	fluent.Equal(t, c.SP, uint8(0xff), "SP after RTS")
}

// TestPHAPLARoundTrip checks the universal invariant that PHA followed by
// PLA restores both A and SP.
func TestPHAPLARoundTrip(t *testing.T) {
	c, mem := newTestCPU(t, 0x1000, 0xff)
	c.A = 0x42

	mem.ram[0x1000] = 0x48 // PHA
	mem.ram[0x1001] = 0x68 // PLA

	runOne(t, c)
	fluent.Equal(t, c.SP, uint8(0xfe), "SP after PHA")

	c.A = 0 // clobber so PLA has to actually restore it
	runOne(t, c)
	fluent.Equal(t, c.A, uint8(0x42), "A after PLA")
	fluent.Equal(t, c.SP, uint8(0xff), "SP after PLA")
}

// TestIRQServiceAndRTI checks that an IRQ acknowledged mid-program and
// matched with RTI restores A/X/Y/P and returns PC to the interrupted
// instruction.
func TestIRQServiceAndRTI(t *testing.T) {
	c, mem := newTestCPU(t, 0x1000, 0xff)
	c.A, c.X, c.Y = 0x11, 0x22, 0x33
	c.P.Carry = true

	mem.ram[0x1000] = 0xea // NOP (the instruction interrupted after)
	mem.ram[irqVector] = 0x00
	mem.ram[irqVector+1] = 0x30
	mem.ram[0x3000] = 0x40 // RTI

	c.RequestIRQ()
	runOne(t, c) // services the IRQ instead of executing NOP
	fluent.Equal(t, c.PC, uint16(0x3000), "PC after IRQ service")
	fluent.Equal(t, c.P.InterruptDisable, true, "I set during service")

	runOne(t, c) // RTI
	fluent.Equal(t, c.PC, uint16(0x1000), "PC after RTI")
	fluent.Equal(t, c.A, uint8(0x11), "A preserved across IRQ")
	fluent.Equal(t, c.P.Carry, true, "C preserved across IRQ")
	fluent.Equal(t, c.SP, uint8(0xff), "SP restored after RTI")
}

// TestAccumulatorShiftsAndRotates is a regression test: the accumulator
// addressing mode's operand comes from A rather than memory, and each of
// these four opcodes must actually read and rewrite A rather than
// operating on a phantom zero operand.
func TestAccumulatorShiftsAndRotates(t *testing.T) {
	c, mem := newTestCPU(t, 0x1000, 0xff)

	mem.ram[0x1000] = 0x0a // ASL A
	c.A = 0x81
	runOne(t, c)
	fluent.Equal(t, c.A, uint8(0x02), "A after ASL A")
	fluent.Equal(t, c.P.Carry, true, "C after ASL A shifts out bit 7")

	mem.ram[0x1001] = 0x4a // LSR A
	c.A = 0x03
	runOne(t, c)
	fluent.Equal(t, c.A, uint8(0x01), "A after LSR A")
	fluent.Equal(t, c.P.Carry, true, "C after LSR A shifts out bit 0")

	mem.ram[0x1002] = 0x2a // ROL A
	c.A = 0x80
	c.P.Carry = true
	runOne(t, c)
	fluent.Equal(t, c.A, uint8(0x01), "A after ROL A rotates in carry")
	fluent.Equal(t, c.P.Carry, true, "C after ROL A shifts out bit 7")

	mem.ram[0x1003] = 0x6a // ROR A
	c.A = 0x01
	c.P.Carry = true
	runOne(t, c)
	fluent.Equal(t, c.A, uint8(0x80), "A after ROR A rotates in carry")
	fluent.Equal(t, c.P.Carry, true, "C after ROR A shifts out bit 0")
}
