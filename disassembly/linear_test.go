package disassembly_test

import (
	"testing"

	"github.com/vic20emu/vic20/disassembly"
	"github.com/vic20emu/vic20/hardware/cpu"
	"github.com/vic20emu/vic20/hardware/instance"
	"github.com/vic20emu/vic20/internal/fluent"
)

type flatMemory struct {
	ram [0x10000]uint8
}

func (m *flatMemory) Read(address uint16) (uint8, error) { return m.ram[address], nil }
func (m *flatMemory) Write(address uint16, data uint8) error {
	m.ram[address] = data
	return nil
}
func (m *flatMemory) Peek(address uint16) uint8 { return m.ram[address] }

type zeroCoords struct{}

func (zeroCoords) RasterCoords() (frame, line, cycle int) { return 0, 0, 0 }

func newCPU(t *testing.T) (*cpu.CPU, *flatMemory) {
	t.Helper()
	mem := &flatMemory{}
	ins, err := instance.NewInstance(zeroCoords{}, nil)
	if err != nil {
		t.Fatalf("instance.NewInstance: %v", err)
	}
	ins.Normalise()
	c := cpu.NewCPU(ins, mem)
	if err := c.Reset(false, nil); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return c, mem
}

func TestLinearDecodesKnownSequence(t *testing.T) {
	c, mem := newCPU(t)

	mem.ram[0x1000] = 0xa9 // LDA #$05
	mem.ram[0x1001] = 0x05
	mem.ram[0x1002] = 0x20 // JSR $2000
	mem.ram[0x1003] = 0x00
	mem.ram[0x1004] = 0x20
	mem.ram[0x1005] = 0xea // NOP

	entries, err := disassembly.Linear(c, mem, 0x1000, 0x1005)
	if err != nil {
		t.Fatalf("Linear: %v", err)
	}

	fluent.Fatal(t, len(entries), 3, "entry count")
	fluent.Equal(t, entries[0].Mnemonic, "LDA", "entries[0].Mnemonic")
	fluent.Equal(t, entries[1].Mnemonic, "JSR", "entries[1].Mnemonic")
	fluent.Equal(t, entries[1].Address, uint16(0x1002), "entries[1].Address")
	fluent.Equal(t, entries[2].Mnemonic, "NOP", "entries[2].Mnemonic")
}

// TestLinearDoesNotRedirectFlow checks the whole reason the walker uses
// NoFlowControl: a JSR in the middle of the walked range must not divert
// the decode into the called subroutine. mc.PC and mc.NoFlowControl must
// also come back exactly as they were.
func TestLinearDoesNotRedirectFlow(t *testing.T) {
	c, mem := newCPU(t)
	c.PC = 0x4000
	c.NoFlowControl = false

	mem.ram[0x1000] = 0x20 // JSR $9000 — must not actually execute a JSR
	mem.ram[0x1001] = 0x00
	mem.ram[0x1002] = 0x90
	mem.ram[0x9000] = 0xea // if we'd really jumped here, decoding would desync

	entries, err := disassembly.Linear(c, mem, 0x1000, 0x1002)
	if err != nil {
		t.Fatalf("Linear: %v", err)
	}

	fluent.Fatal(t, len(entries), 1, "entry count")
	fluent.Equal(t, entries[0].Mnemonic, "JSR", "Mnemonic")
	fluent.Equal(t, entries[0].String(), "$1000: 20 00 90 JSR $9000", "String")

	fluent.Equal(t, c.PC, uint16(0x4000), "PC restored")
	fluent.Equal(t, c.NoFlowControl, false, "NoFlowControl restored")
}

// TestLinearTreatsUnknownOpcodeAsData checks that an opcode with no table
// entry doesn't abort the walk; it's recorded as one raw byte and
// decoding resumes at the next address.
func TestLinearTreatsUnknownOpcodeAsData(t *testing.T) {
	c, mem := newCPU(t)

	mem.ram[0x1000] = 0xff // undefined on this CPU
	mem.ram[0x1001] = 0xea // NOP

	entries, err := disassembly.Linear(c, mem, 0x1000, 0x1001)
	if err != nil {
		t.Fatalf("Linear: %v", err)
	}

	fluent.Fatal(t, len(entries), 2, "entry count")
	fluent.Equal(t, entries[0].Valid, false, "entries[0].Valid")
	fluent.Equal(t, entries[1].Mnemonic, "NOP", "entries[1].Mnemonic")
}
