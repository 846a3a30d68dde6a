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

// Region selects which of the two VIC part numbers (and their distinct
// raster timing) this instance emulates.
type Region int

const (
	PAL Region = iota
	NTSC
)

// String satisfies fmt.Stringer.
func (r Region) String() string {
	if r == NTSC {
		return "NTSC"
	}
	return "PAL"
}

type timing struct {
	CyclesPerLine         int
	HorizontalBlankCycles int
	LeftBlankCycles       int
	LinesPerFrame         int
	VerticalBlankRows     int
	BusFrequency          int
}

var palTiming = timing{
	CyclesPerLine:         71,
	HorizontalBlankCycles: 15,
	LeftBlankCycles:       8,
	LinesPerFrame:         312,
	VerticalBlankRows:     27,
	BusFrequency:          1108404,
}

var ntscTiming = timing{
	CyclesPerLine:         65,
	HorizontalBlankCycles: 15,
	LeftBlankCycles:       2,
	LinesPerFrame:         261,
	VerticalBlankRows:     7,
	BusFrequency:          1022727,
}

func timingFor(region Region) timing {
	if region == NTSC {
		return ntscTiming
	}
	return palTiming
}

func (t timing) screenWidth() int  { return (t.CyclesPerLine - t.HorizontalBlankCycles) * 4 }
func (t timing) screenHeight() int { return t.LinesPerFrame - t.VerticalBlankRows }
func (t timing) cyclesPerFrame() int {
	return t.CyclesPerLine * t.LinesPerFrame
}
