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

// AddressingMode identifies how an instruction's operand is located.
type AddressingMode int

// The 6502's addressing modes.
const (
	ModeImplied AddressingMode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndexedIndirect // (zp,X)
	ModeIndirectIndexed // (zp),Y
	ModeRelative
)

// Effect classifies how an instruction touches memory, independent of its
// addressing mode. It tells the CPU whether to read an operand byte before
// calling the operation, write the operation's result back afterwards, or
// do a read-modify-write round trip (two bus writes, per NMOS 6502 silicon,
// which writes the unmodified value back before the modified one).
type Effect int

// The instruction memory-access effects.
const (
	EffectNone Effect = iota
	EffectRead
	EffectWrite
	EffectRMW
)

// Op tags the operation an opcode performs, used to dispatch to the
// matching case in execute.
type Op int

// Every operation implemented by the CPU, documented and otherwise.
const (
	OpADC Op = iota
	OpAND
	OpASL
	OpBCC
	OpBCS
	OpBEQ
	OpBIT
	OpBMI
	OpBNE
	OpBPL
	OpBRK
	OpBVC
	OpBVS
	OpCLC
	OpCLD
	OpCLI
	OpCLV
	OpCMP
	OpCPX
	OpCPY
	OpDEC
	OpDEX
	OpDEY
	OpEOR
	OpINC
	OpINX
	OpINY
	OpJAM
	OpJMP
	OpJSR
	OpLDA
	OpLDX
	OpLDY
	OpLSR
	OpNOP
	OpORA
	OpPHA
	OpPHP
	OpPLA
	OpPLP
	OpROL
	OpROR
	OpRTI
	OpRTS
	OpSBC
	OpSEC
	OpSED
	OpSEI
	OpSTA
	OpSTX
	OpSTY
	OpTAX
	OpTAY
	OpTSX
	OpTXA
	OpTXS
	OpTYA
)

// Entry describes one of the 256 possible opcode bytes.
type Entry struct {
	Mnemonic      string
	Mode          AddressingMode
	Cycles        int
	PageSensitive bool // conditional reads gain a cycle on a page crossing
	Effect        Effect
	Op            Op
}

// opcodeTable maps every opcode byte to its Entry. A nil entry is an
// opcode the real VIC-20 silicon never executes predictably; fetching one
// is a fatal error. 151 documented opcodes are implemented, along with the
// well-characterised illegal NOP and JAM ("kill") opcodes that real
// programs (and the Klaus2m5 and Tom Harte test suites) rely on; any other
// undocumented opcode falls into the InvalidOpcode error path.
var opcodeTable [256]*Entry

// Lookup returns opcode's table Entry, or nil if the byte has no defined
// behaviour on this CPU. Exported for disassembly tooling, which needs to
// know an instruction's mnemonic, addressing mode and operand length
// without executing it.
func Lookup(opcode uint8) *Entry {
	return opcodeTable[opcode]
}

func init() {
	def := func(op byte, mnemonic string, mode AddressingMode, cycles int, pageSensitive bool, effect Effect, fn Op) {
		opcodeTable[op] = &Entry{
			Mnemonic:      mnemonic,
			Mode:          mode,
			Cycles:        cycles,
			PageSensitive: pageSensitive,
			Effect:        effect,
			Op:            fn,
		}
	}

	def(0x00, "BRK", ModeImplied, 7, false, EffectNone, OpBRK)
	def(0x01, "ORA", ModeIndexedIndirect, 6, false, EffectRead, OpORA)
	def(0x02, "JAM", ModeImplied, 1, false, EffectNone, OpJAM)
	def(0x04, "NOP", ModeZeroPage, 3, false, EffectRead, OpNOP)
	def(0x05, "ORA", ModeZeroPage, 3, false, EffectRead, OpORA)
	def(0x06, "ASL", ModeZeroPage, 5, false, EffectRMW, OpASL)
	def(0x08, "PHP", ModeImplied, 3, false, EffectNone, OpPHP)
	def(0x09, "ORA", ModeImmediate, 2, false, EffectRead, OpORA)
	def(0x0A, "ASL", ModeAccumulator, 2, false, EffectRMW, OpASL)
	def(0x0C, "NOP", ModeAbsolute, 4, false, EffectRead, OpNOP)
	def(0x0D, "ORA", ModeAbsolute, 4, false, EffectRead, OpORA)
	def(0x0E, "ASL", ModeAbsolute, 6, false, EffectRMW, OpASL)
	def(0x10, "BPL", ModeRelative, 2, false, EffectNone, OpBPL)
	def(0x11, "ORA", ModeIndirectIndexed, 5, true, EffectRead, OpORA)
	def(0x12, "JAM", ModeImplied, 1, false, EffectNone, OpJAM)
	def(0x14, "NOP", ModeZeroPageX, 4, false, EffectRead, OpNOP)
	def(0x15, "ORA", ModeZeroPageX, 4, false, EffectRead, OpORA)
	def(0x16, "ASL", ModeZeroPageX, 6, false, EffectRMW, OpASL)
	def(0x18, "CLC", ModeImplied, 2, false, EffectNone, OpCLC)
	def(0x19, "ORA", ModeAbsoluteY, 4, true, EffectRead, OpORA)
	def(0x1A, "NOP", ModeImplied, 2, false, EffectNone, OpNOP)
	def(0x1C, "NOP", ModeAbsoluteX, 4, true, EffectRead, OpNOP)
	def(0x1D, "ORA", ModeAbsoluteX, 4, true, EffectRead, OpORA)
	def(0x1E, "ASL", ModeAbsoluteX, 7, false, EffectRMW, OpASL)
	def(0x20, "JSR", ModeAbsolute, 6, false, EffectNone, OpJSR)
	def(0x21, "AND", ModeIndexedIndirect, 6, false, EffectRead, OpAND)
	def(0x22, "JAM", ModeImplied, 1, false, EffectNone, OpJAM)
	def(0x24, "BIT", ModeZeroPage, 3, false, EffectRead, OpBIT)
	def(0x25, "AND", ModeZeroPage, 3, false, EffectRead, OpAND)
	def(0x26, "ROL", ModeZeroPage, 5, false, EffectRMW, OpROL)
	def(0x28, "PLP", ModeImplied, 4, false, EffectNone, OpPLP)
	def(0x29, "AND", ModeImmediate, 2, false, EffectRead, OpAND)
	def(0x2A, "ROL", ModeAccumulator, 2, false, EffectRMW, OpROL)
	def(0x2C, "BIT", ModeAbsolute, 4, false, EffectRead, OpBIT)
	def(0x2D, "AND", ModeAbsolute, 4, false, EffectRead, OpAND)
	def(0x2E, "ROL", ModeAbsolute, 6, false, EffectRMW, OpROL)
	def(0x30, "BMI", ModeRelative, 2, false, EffectNone, OpBMI)
	def(0x31, "AND", ModeIndirectIndexed, 5, true, EffectRead, OpAND)
	def(0x32, "JAM", ModeImplied, 1, false, EffectNone, OpJAM)
	def(0x34, "NOP", ModeZeroPageX, 4, false, EffectRead, OpNOP)
	def(0x35, "AND", ModeZeroPageX, 4, false, EffectRead, OpAND)
	def(0x36, "ROL", ModeZeroPageX, 6, false, EffectRMW, OpROL)
	def(0x38, "SEC", ModeImplied, 2, false, EffectNone, OpSEC)
	def(0x39, "AND", ModeAbsoluteY, 4, true, EffectRead, OpAND)
	def(0x3A, "NOP", ModeImplied, 2, false, EffectNone, OpNOP)
	def(0x3C, "NOP", ModeAbsoluteX, 4, true, EffectRead, OpNOP)
	def(0x3D, "AND", ModeAbsoluteX, 4, true, EffectRead, OpAND)
	def(0x3E, "ROL", ModeAbsoluteX, 7, false, EffectRMW, OpROL)
	def(0x40, "RTI", ModeImplied, 6, false, EffectNone, OpRTI)
	def(0x41, "EOR", ModeIndexedIndirect, 6, false, EffectRead, OpEOR)
	def(0x42, "JAM", ModeImplied, 1, false, EffectNone, OpJAM)
	def(0x44, "NOP", ModeZeroPage, 3, false, EffectRead, OpNOP)
	def(0x45, "EOR", ModeZeroPage, 3, false, EffectRead, OpEOR)
	def(0x46, "LSR", ModeZeroPage, 5, false, EffectRMW, OpLSR)
	def(0x48, "PHA", ModeImplied, 3, false, EffectNone, OpPHA)
	def(0x49, "EOR", ModeImmediate, 2, false, EffectRead, OpEOR)
	def(0x4A, "LSR", ModeAccumulator, 2, false, EffectRMW, OpLSR)
	def(0x4C, "JMP", ModeAbsolute, 3, false, EffectNone, OpJMP)
	def(0x4D, "EOR", ModeAbsolute, 4, false, EffectRead, OpEOR)
	def(0x4E, "LSR", ModeAbsolute, 6, false, EffectRMW, OpLSR)
	def(0x50, "BVC", ModeRelative, 2, false, EffectNone, OpBVC)
	def(0x51, "EOR", ModeIndirectIndexed, 5, true, EffectRead, OpEOR)
	def(0x52, "JAM", ModeImplied, 1, false, EffectNone, OpJAM)
	def(0x54, "NOP", ModeZeroPageX, 4, false, EffectRead, OpNOP)
	def(0x55, "EOR", ModeZeroPageX, 4, false, EffectRead, OpEOR)
	def(0x56, "LSR", ModeZeroPageX, 6, false, EffectRMW, OpLSR)
	def(0x58, "CLI", ModeImplied, 2, false, EffectNone, OpCLI)
	def(0x59, "EOR", ModeAbsoluteY, 4, true, EffectRead, OpEOR)
	def(0x5A, "NOP", ModeImplied, 2, false, EffectNone, OpNOP)
	def(0x5C, "NOP", ModeAbsoluteX, 4, true, EffectRead, OpNOP)
	def(0x5D, "EOR", ModeAbsoluteX, 4, true, EffectRead, OpEOR)
	def(0x5E, "LSR", ModeAbsoluteX, 7, false, EffectRMW, OpLSR)
	def(0x60, "RTS", ModeImplied, 6, false, EffectNone, OpRTS)
	def(0x61, "ADC", ModeIndexedIndirect, 6, false, EffectRead, OpADC)
	def(0x62, "JAM", ModeImplied, 1, false, EffectNone, OpJAM)
	def(0x64, "NOP", ModeZeroPage, 3, false, EffectRead, OpNOP)
	def(0x65, "ADC", ModeZeroPage, 3, false, EffectRead, OpADC)
	def(0x66, "ROR", ModeZeroPage, 5, false, EffectRMW, OpROR)
	def(0x68, "PLA", ModeImplied, 4, false, EffectNone, OpPLA)
	def(0x69, "ADC", ModeImmediate, 2, false, EffectRead, OpADC)
	def(0x6A, "ROR", ModeAccumulator, 2, false, EffectRMW, OpROR)
	def(0x6C, "JMP", ModeIndirect, 5, false, EffectNone, OpJMP)
	def(0x6D, "ADC", ModeAbsolute, 4, false, EffectRead, OpADC)
	def(0x6E, "ROR", ModeAbsolute, 6, false, EffectRMW, OpROR)
	def(0x70, "BVS", ModeRelative, 2, false, EffectNone, OpBVS)
	def(0x71, "ADC", ModeIndirectIndexed, 5, true, EffectRead, OpADC)
	def(0x72, "JAM", ModeImplied, 1, false, EffectNone, OpJAM)
	def(0x74, "NOP", ModeZeroPageX, 4, false, EffectRead, OpNOP)
	def(0x75, "ADC", ModeZeroPageX, 4, false, EffectRead, OpADC)
	def(0x76, "ROR", ModeZeroPageX, 6, false, EffectRMW, OpROR)
	def(0x78, "SEI", ModeImplied, 2, false, EffectNone, OpSEI)
	def(0x79, "ADC", ModeAbsoluteY, 4, true, EffectRead, OpADC)
	def(0x7A, "NOP", ModeImplied, 2, false, EffectNone, OpNOP)
	def(0x7C, "NOP", ModeAbsoluteX, 4, true, EffectRead, OpNOP)
	def(0x7D, "ADC", ModeAbsoluteX, 4, true, EffectRead, OpADC)
	def(0x7E, "ROR", ModeAbsoluteX, 7, false, EffectRMW, OpROR)
	def(0x80, "NOP", ModeImmediate, 2, false, EffectRead, OpNOP)
	def(0x81, "STA", ModeIndexedIndirect, 6, false, EffectWrite, OpSTA)
	def(0x82, "NOP", ModeImmediate, 2, false, EffectRead, OpNOP)
	def(0x84, "STY", ModeZeroPage, 3, false, EffectWrite, OpSTY)
	def(0x85, "STA", ModeZeroPage, 3, false, EffectWrite, OpSTA)
	def(0x86, "STX", ModeZeroPage, 3, false, EffectWrite, OpSTX)
	def(0x88, "DEY", ModeImplied, 2, false, EffectNone, OpDEY)
	def(0x89, "NOP", ModeImmediate, 2, false, EffectRead, OpNOP)
	def(0x8A, "TXA", ModeImplied, 2, false, EffectNone, OpTXA)
	def(0x8C, "STY", ModeAbsolute, 4, false, EffectWrite, OpSTY)
	def(0x8D, "STA", ModeAbsolute, 4, false, EffectWrite, OpSTA)
	def(0x8E, "STX", ModeAbsolute, 4, false, EffectWrite, OpSTX)
	def(0x90, "BCC", ModeRelative, 2, false, EffectNone, OpBCC)
	def(0x91, "STA", ModeIndirectIndexed, 6, false, EffectWrite, OpSTA)
	def(0x92, "JAM", ModeImplied, 1, false, EffectNone, OpJAM)
	def(0x94, "STY", ModeZeroPageX, 4, false, EffectWrite, OpSTY)
	def(0x95, "STA", ModeZeroPageX, 4, false, EffectWrite, OpSTA)
	def(0x96, "STX", ModeZeroPageY, 4, false, EffectWrite, OpSTX)
	def(0x98, "TYA", ModeImplied, 2, false, EffectNone, OpTYA)
	def(0x99, "STA", ModeAbsoluteY, 5, false, EffectWrite, OpSTA)
	def(0x9A, "TXS", ModeImplied, 2, false, EffectNone, OpTXS)
	def(0x9D, "STA", ModeAbsoluteX, 5, false, EffectWrite, OpSTA)
	def(0xA0, "LDY", ModeImmediate, 2, false, EffectRead, OpLDY)
	def(0xA1, "LDA", ModeIndexedIndirect, 6, false, EffectRead, OpLDA)
	def(0xA2, "LDX", ModeImmediate, 2, false, EffectRead, OpLDX)
	def(0xA4, "LDY", ModeZeroPage, 3, false, EffectRead, OpLDY)
	def(0xA5, "LDA", ModeZeroPage, 3, false, EffectRead, OpLDA)
	def(0xA6, "LDX", ModeZeroPage, 3, false, EffectRead, OpLDX)
	def(0xA8, "TAY", ModeImplied, 2, false, EffectNone, OpTAY)
	def(0xA9, "LDA", ModeImmediate, 2, false, EffectRead, OpLDA)
	def(0xAA, "TAX", ModeImplied, 2, false, EffectNone, OpTAX)
	def(0xAC, "LDY", ModeAbsolute, 4, false, EffectRead, OpLDY)
	def(0xAD, "LDA", ModeAbsolute, 4, false, EffectRead, OpLDA)
	def(0xAE, "LDX", ModeAbsolute, 4, false, EffectRead, OpLDX)
	def(0xB0, "BCS", ModeRelative, 2, false, EffectNone, OpBCS)
	def(0xB1, "LDA", ModeIndirectIndexed, 5, true, EffectRead, OpLDA)
	def(0xB2, "JAM", ModeImplied, 1, false, EffectNone, OpJAM)
	def(0xB4, "LDY", ModeZeroPageX, 4, false, EffectRead, OpLDY)
	def(0xB5, "LDA", ModeZeroPageX, 4, false, EffectRead, OpLDA)
	def(0xB6, "LDX", ModeZeroPageY, 4, false, EffectRead, OpLDX)
	def(0xB8, "CLV", ModeImplied, 2, false, EffectNone, OpCLV)
	def(0xB9, "LDA", ModeAbsoluteY, 4, true, EffectRead, OpLDA)
	def(0xBA, "TSX", ModeImplied, 2, false, EffectNone, OpTSX)
	def(0xBC, "LDY", ModeAbsoluteX, 4, true, EffectRead, OpLDY)
	def(0xBD, "LDA", ModeAbsoluteX, 4, true, EffectRead, OpLDA)
	def(0xBE, "LDX", ModeAbsoluteY, 4, true, EffectRead, OpLDX)
	def(0xC0, "CPY", ModeImmediate, 2, false, EffectRead, OpCPY)
	def(0xC1, "CMP", ModeIndexedIndirect, 6, false, EffectRead, OpCMP)
	def(0xC2, "NOP", ModeImmediate, 2, false, EffectRead, OpNOP)
	def(0xC4, "CPY", ModeZeroPage, 3, false, EffectRead, OpCPY)
	def(0xC5, "CMP", ModeZeroPage, 3, false, EffectRead, OpCMP)
	def(0xC6, "DEC", ModeZeroPage, 5, false, EffectRMW, OpDEC)
	def(0xC8, "INY", ModeImplied, 2, false, EffectNone, OpINY)
	def(0xC9, "CMP", ModeImmediate, 2, false, EffectRead, OpCMP)
	def(0xCA, "DEX", ModeImplied, 2, false, EffectNone, OpDEX)
	def(0xCC, "CPY", ModeAbsolute, 4, false, EffectRead, OpCPY)
	def(0xCD, "CMP", ModeAbsolute, 4, false, EffectRead, OpCMP)
	def(0xCE, "DEC", ModeAbsolute, 6, false, EffectRMW, OpDEC)
	def(0xD0, "BNE", ModeRelative, 2, false, EffectNone, OpBNE)
	def(0xD1, "CMP", ModeIndirectIndexed, 5, true, EffectRead, OpCMP)
	def(0xD2, "JAM", ModeImplied, 1, false, EffectNone, OpJAM)
	def(0xD4, "NOP", ModeZeroPageX, 4, false, EffectRead, OpNOP)
	def(0xD5, "CMP", ModeZeroPageX, 4, false, EffectRead, OpCMP)
	def(0xD6, "DEC", ModeZeroPageX, 6, false, EffectRMW, OpDEC)
	def(0xD8, "CLD", ModeImplied, 2, false, EffectNone, OpCLD)
	def(0xD9, "CMP", ModeAbsoluteY, 4, true, EffectRead, OpCMP)
	def(0xDA, "NOP", ModeImplied, 2, false, EffectNone, OpNOP)
	def(0xDC, "NOP", ModeAbsoluteX, 4, true, EffectRead, OpNOP)
	def(0xDD, "CMP", ModeAbsoluteX, 4, true, EffectRead, OpCMP)
	def(0xDE, "DEC", ModeAbsoluteX, 7, false, EffectRMW, OpDEC)
	def(0xE0, "CPX", ModeImmediate, 2, false, EffectRead, OpCPX)
	def(0xE1, "SBC", ModeIndexedIndirect, 6, false, EffectRead, OpSBC)
	def(0xE2, "NOP", ModeImmediate, 2, false, EffectRead, OpNOP)
	def(0xE4, "CPX", ModeZeroPage, 3, false, EffectRead, OpCPX)
	def(0xE5, "SBC", ModeZeroPage, 3, false, EffectRead, OpSBC)
	def(0xE6, "INC", ModeZeroPage, 5, false, EffectRMW, OpINC)
	def(0xE8, "INX", ModeImplied, 2, false, EffectNone, OpINX)
	def(0xE9, "SBC", ModeImmediate, 2, false, EffectRead, OpSBC)
	def(0xEA, "NOP", ModeImplied, 2, false, EffectNone, OpNOP)
	def(0xEC, "CPX", ModeAbsolute, 4, false, EffectRead, OpCPX)
	def(0xED, "SBC", ModeAbsolute, 4, false, EffectRead, OpSBC)
	def(0xEE, "INC", ModeAbsolute, 6, false, EffectRMW, OpINC)
	def(0xF0, "BEQ", ModeRelative, 2, false, EffectNone, OpBEQ)
	def(0xF1, "SBC", ModeIndirectIndexed, 5, true, EffectRead, OpSBC)
	def(0xF2, "JAM", ModeImplied, 1, false, EffectNone, OpJAM)
	def(0xF4, "NOP", ModeZeroPageX, 4, false, EffectRead, OpNOP)
	def(0xF5, "SBC", ModeZeroPageX, 4, false, EffectRead, OpSBC)
	def(0xF6, "INC", ModeZeroPageX, 6, false, EffectRMW, OpINC)
	def(0xF8, "SED", ModeImplied, 2, false, EffectNone, OpSED)
	def(0xF9, "SBC", ModeAbsoluteY, 4, true, EffectRead, OpSBC)
	def(0xFA, "NOP", ModeImplied, 2, false, EffectNone, OpNOP)
	def(0xFC, "NOP", ModeAbsoluteX, 4, true, EffectRead, OpNOP)
	def(0xFD, "SBC", ModeAbsoluteX, 4, true, EffectRead, OpSBC)
	def(0xFE, "INC", ModeAbsoluteX, 7, false, EffectRMW, OpINC)

}
