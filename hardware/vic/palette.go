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

package vic

// palette is the VIC-20's fixed 16-entry colour table, as 32-bit ARGB
// (alpha always opaque). Values are the commonly published approximation
// of the chip's analogue NTSC/PAL colour generator used by the wider
// emulation community, not a manufacturer-specified table.
var palette = [16]uint32{
	0xff000000, // 0 black
	0xffffffff, // 1 white
	0xff782922, // 2 red
	0xff87d6de, // 3 cyan
	0xffaa5fb6, // 4 purple
	0xff55a049, // 5 green
	0xff40318d, // 6 blue
	0xffbfce72, // 7 yellow
	0xff8b5429, // 8 orange
	0xffffa751, // 9 light orange
	0xffb86962, // a pink
	0xffc7ffff, // b light cyan
	0xffe9b1ff, // c light purple
	0xff9ae29b, // d light green
	0xff8071cc, // e light blue
	0xffdedede, // f light yellow/grey
}
