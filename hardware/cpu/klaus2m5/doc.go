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

// Package klaus2m5 runs the 6502 functional test suite created and
// maintained by Klaus Dormann:
//
// https://github.com/Klaus2m5/6502_65C02_functional_tests
//
// The suite is an a65-assembled binary that exercises every documented
// opcode/addressing-mode combination and, on success, jumps to a tight
// self-loop at a known address; any other tight loop indicates a failed
// sub-test at that address. This is scenario S4 of the specification:
// running the compiled 6502_functional_test.bin with the CPU's TrapPC
// armed at the success address must reach it without a TrapLoop error.
//
// The compiled binary itself (6502_functional_test.bin, built with
// `as65 -pmnu 6502_functional_test.a65` with the ROM_vectors self-test
// disabled per the upstream project's own build instructions) is a large
// binary asset and is not part of this source tree. Place a copy at
// testdata/6502_functional_test.bin to exercise TestFunctional; without
// it the test is skipped, the same accommodation the teacher's own
// thomharte package makes for its (also not checked in) JSON test
// vectors.
package klaus2m5
