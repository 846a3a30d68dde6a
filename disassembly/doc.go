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

// Package disassembly walks a region of the VIC-20's address space and
// renders the instructions found there, without actually diverging the
// emulated program's control flow.
//
// It drives a real *cpu.CPU with NoFlowControl set, which decodes and
// "executes" each instruction (so operand length, addressing mode and
// cycle cost all come from the CPU's own opcode table rather than a
// second copy of that table kept here) but never lets a JMP, JSR, branch
// or return actually redirect the program counter. Linear walks the
// region strictly in address order; this misses nothing but will also
// decode the occasional data byte as if it were an instruction.
package disassembly
