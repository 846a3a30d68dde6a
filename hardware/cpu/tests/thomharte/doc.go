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

// Package thomharte runs the 6502 single-step test vectors created and
// maintained by Thom Harte:
//
// https://github.com/SingleStepTests/65x02
//
// Each vector names a starting register/RAM state, the expected register/
// RAM state after executing exactly one instruction, and the per-cycle
// bus address/data/event trace an instruction-accurate interpreter must
// reproduce. The vectors are large (tens of megabytes per opcode) and are
// not part of this source tree; add the ones to check from the 6502/v1
// directory on GitHub to testdata/6502/v1 to exercise TestThomHarte.
package thomharte
