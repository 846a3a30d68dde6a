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

// Package vic implements the VIC 6560 (NTSC) / 6561 (PAL) video-and-sound
// chip: sixteen control registers decoded into screen geometry, memory
// pointers and colours, and a per-cycle raster engine that paints four
// pixels of an ARGB framebuffer at a time.
package vic

// Bus is the system memory the VIC reads character data, the screen
// matrix and colour RAM through. The VIC never writes to system memory.
type Bus interface {
	Read(address uint16) (uint8, error)
}

// VIC is one chip instance, either region.
type VIC struct {
	region Region
	t      timing
	mem    Bus

	regs [16]uint8

	cycle    int
	lastLine int
	rowPixel int

	// Framebuffer holds one committed frame, row-major, screenWidth wide.
	Framebuffer []uint32

	// OnFrame, if set, is called with Framebuffer once per completed
	// frame, after the raster wraps back to the top.
	OnFrame func([]uint32)
}

// NewVIC is the preferred method of initialisation for the VIC type.
func NewVIC(region Region, mem Bus) *VIC {
	v := &VIC{region: region, t: timingFor(region), mem: mem}
	v.Framebuffer = make([]uint32, v.t.screenWidth()*v.t.screenHeight())
	v.Reset()
	return v
}

// ScreenWidth and ScreenHeight report the framebuffer's fixed dimensions
// for this region.
func (v *VIC) ScreenWidth() int  { return v.t.screenWidth() }
func (v *VIC) ScreenHeight() int { return v.t.screenHeight() }

// CyclesPerFrame is how many Cycle calls make up one complete frame at
// this region's timing.
func (v *VIC) CyclesPerFrame() int { return v.t.cyclesPerFrame() }

// Region reports which of the two VIC part numbers this instance
// emulates.
func (v *VIC) Region() Region { return v.region }

// BusFrequency is this region's system clock rate in Hz, the rate at
// which Cycle is called and the base clock the four sound voices'
// frequency registers divide down from.
func (v *VIC) BusFrequency() int { return v.t.BusFrequency }

// Reset seeds the well-known VIC-20 boot-time display: 22 columns by 23
// rows, origin (12, 38) for PAL / (12, 33) for NTSC, screen matrix and
// character generator at their unexpanded-memory locations, cyan border
// over a blue screen, white text, full volume. Register defaults beyond
// the visible screen geometry (light-pen, paddles, voices) reset to
// zero, matching the chip's own power-on behaviour for inputs it does
// not drive.
func (v *VIC) Reset() {
	for i := range v.regs {
		v.regs[i] = 0
	}

	originY := uint8(38)
	if v.region == NTSC {
		originY = 33
	}

	v.regs[0] = 12      // origin X, interlace off
	v.regs[1] = originY // origin Y
	v.regs[2] = 0x80 | 22
	v.regs[3] = 23 << 1 // rows=23, single-height, raster bit0=0
	v.regs[5] = 0xf0    // screen offset high nibble=0xf, char offset nibble=0
	v.regs[0xe] = 0x1f  // aux colour=1 (white), volume=15
	v.regs[0xf] = 0x63  // screen colour=6 (blue), reverse off, border=3 (cyan)

	v.cycle = 0
	v.lastLine = -1
	v.rowPixel = 0
	for i := range v.Framebuffer {
		v.Framebuffer[i] = palette[3]
	}
}

// Read returns the control register at address&0xf. R3 and R4 report the
// live raster position in their chip-driven bits alongside the
// host-configured fields they share a byte with.
func (v *VIC) Read(address uint16) (uint8, error) {
	return v.regs[address&0xf], nil
}

// Write decodes a control register update. R4 is chip-driven (the live
// raster line) and ignores host writes; R3's bit 7 is likewise
// chip-driven and is preserved across a write to its low 7 bits.
func (v *VIC) Write(address uint16, val uint8) error {
	switch address & 0xf {
	case 0x3:
		v.regs[0x3] = v.regs[0x3]&0x80 | val&0x7f
	case 0x4:
		// read-only raster register; ignored.
	default:
		v.regs[address&0xf] = val
	}
	return nil
}

// RasterCoords satisfies random.RasterCoords: frame is always reported
// as zero since the VIC does not itself count frames across a reset.
func (v *VIC) RasterCoords() (frame, line, cycle int) {
	return 0, v.cycle / v.t.CyclesPerLine, v.cycle % v.t.CyclesPerLine
}

func (v *VIC) interlace() bool      { return v.regs[0]&0x80 != 0 }
func (v *VIC) originX() int         { return int(v.regs[0] & 0x7f) }
func (v *VIC) originY() int         { return int(v.regs[1]) }
func (v *VIC) columns() int         { return int(v.regs[2] & 0x7f) }
func (v *VIC) screenMemHi() uint16  { return uint16(v.regs[2]>>7) & 1 }
func (v *VIC) doubleHeight() bool   { return v.regs[3]&0x01 != 0 }
func (v *VIC) rows() int            { return int((v.regs[3] >> 1) & 0x3f) }
func (v *VIC) charHeight() int {
	if v.doubleHeight() {
		return 16
	}
	return 8
}

func (v *VIC) screenMemoryOffset() uint16 {
	return uint16(v.regs[5]>>4&0x0f)<<10 | v.screenMemHi()<<9
}

func (v *VIC) characterMemoryOffset() uint16 {
	return uint16(v.regs[5]&0x0f) << 10
}

func (v *VIC) colorBaseOffset() uint16 {
	return 0x1400 | uint16(v.regs[2]&0x80)<<2
}

func (v *VIC) borderColorIdx() uint8 { return v.regs[0xf] & 0x07 }
func (v *VIC) reverse() bool         { return v.regs[0xf]&0x08 != 0 }
func (v *VIC) screenColorIdx() uint8 { return v.regs[0xf] >> 4 }
func (v *VIC) auxColorIdx() uint8    { return v.regs[0xe] >> 4 }

// VoiceEnabled and VoiceFrequency expose the four sound-voice registers
// (A-D) to the audio side of the machine; n is 0-3.
func (v *VIC) VoiceEnabled(n int) bool    { return v.regs[0xa+n]&0x80 != 0 }
func (v *VIC) VoiceFrequency(n int) uint8 { return v.regs[0xa+n] & 0x7f }

// Volume is the 4-bit master volume (register E, bits 0-3).
func (v *VIC) Volume() uint8 { return v.regs[0xe] & 0x0f }

// translate maps a 14-bit VIC-visible offset to a system bus address.
// The chip has only 14 address lines; bit 13 of the offset is inverted
// and relocated to bit 15 of the system address, per the VIC's known
// address-line wiring on the VIC-20.
func (v *VIC) translate(offset uint16) uint16 {
	hi := (offset & 0x2000) << 2
	return (offset & 0x1fff) | (^hi & 0x8000)
}

func (v *VIC) readVideo(offset uint16) (uint8, error) {
	return v.mem.Read(v.translate(offset))
}

// floorDiv and floorMod implement floor (not truncating) integer
// division; the raster geometry formulas below are defined in terms of
// floor division and can see negative intermediate values while in
// blanking.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - b*floorDiv(a, b)
}

// Cycle advances the raster by one system clock cycle, painting up to
// four pixels of the framebuffer, and committing the frame via OnFrame
// when the raster wraps.
func (v *VIC) Cycle() error {
	rowCycle := v.cycle % v.t.CyclesPerLine
	line := v.cycle / v.t.CyclesPerLine
	raster := line - v.t.VerticalBlankRows

	v.regs[0x3] = v.regs[0x3]&0x7f | uint8(raster&1)<<7
	v.regs[0x4] = uint8((raster >> 1) & 0xff)

	if line != v.lastLine {
		v.rowPixel = 0
		v.lastLine = line
	}

	if rowCycle < v.t.CyclesPerLine-v.t.HorizontalBlankCycles && raster >= 0 {
		if err := v.renderCycle(rowCycle, raster); err != nil {
			return err
		}
	}

	v.cycle++
	if v.cycle >= v.t.cyclesPerFrame() {
		v.cycle = 0
		v.lastLine = -1
		if v.OnFrame != nil {
			v.OnFrame(v.Framebuffer)
		}
	}
	return nil
}

// renderCycle paints the four pixels belonging to rowCycle of the
// current line, at raster row raster.
func (v *VIC) renderCycle(rowCycle, raster int) error {
	subCycle := 100 + rowCycle - v.originX() + v.t.LeftBlankCycles
	col := floorDiv(subCycle, 2) - 50
	half := floorMod(subCycle, 2)

	charH := v.charHeight()
	const round = 800
	rowOrigin := v.originY()*2 - v.t.VerticalBlankRows
	row := floorDiv(round+raster-rowOrigin, charH) - round/charH

	cols, rows := v.columns(), v.rows()

	var pixels [4]uint32
	if col < 0 || col >= cols || row < 0 || row >= rows {
		border := palette[v.borderColorIdx()]
		pixels = [4]uint32{border, border, border, border}
	} else {
		var err error
		pixels, err = v.textPixels(col, row, half, raster, rowOrigin, charH)
		if err != nil {
			return err
		}
	}

	base := raster*v.t.screenWidth() + v.rowPixel
	for i, p := range pixels {
		if base+i >= 0 && base+i < len(v.Framebuffer) {
			v.Framebuffer[base+i] = p
		}
	}
	v.rowPixel += 4
	return nil
}

func (v *VIC) textPixels(col, row, half, raster, rowOrigin, charH int) ([4]uint32, error) {
	var out [4]uint32

	cols := v.columns()
	cellOffset := uint16(row*cols + col)

	charPtr, err := v.readVideo(v.screenMemoryOffset() + cellOffset)
	if err != nil {
		return out, err
	}

	yOffset := floorMod(raster-rowOrigin, charH)
	charByte, err := v.readVideo(v.characterMemoryOffset() + uint16(int(charPtr)*charH+yOffset))
	if err != nil {
		return out, err
	}

	colorNibble, err := v.readVideo(v.colorBaseOffset() + cellOffset)
	if err != nil {
		return out, err
	}
	colorNibble &= 0x0f

	bg := palette[v.screenColorIdx()]
	border := palette[v.borderColorIdx()]
	fg := palette[colorNibble&0x07]
	aux := palette[v.auxColorIdx()]

	if colorNibble&0x08 != 0 {
		multicolorPixel := func(bits uint8) uint32 {
			switch bits {
			case 0:
				return bg
			case 1:
				return border
			case 2:
				return fg
			default:
				return aux
			}
		}

		var pairs [2]uint8
		if half == 0 {
			pairs[0] = (charByte >> 6) & 0x03
			pairs[1] = (charByte >> 4) & 0x03
		} else {
			pairs[0] = (charByte >> 2) & 0x03
			pairs[1] = charByte & 0x03
		}
		out[0], out[1] = multicolorPixel(pairs[0]), multicolorPixel(pairs[0])
		out[2], out[3] = multicolorPixel(pairs[1]), multicolorPixel(pairs[1])
		return out, nil
	}

	onColor, offColor := fg, bg
	if v.reverse() {
		onColor, offColor = offColor, onColor
	}

	var bits [4]uint8
	if half == 0 {
		bits = [4]uint8{charByte >> 7 & 1, charByte >> 6 & 1, charByte >> 5 & 1, charByte >> 4 & 1}
	} else {
		bits = [4]uint8{charByte >> 3 & 1, charByte >> 2 & 1, charByte >> 1 & 1, charByte & 1}
	}
	for i, b := range bits {
		if b != 0 {
			out[i] = onColor
		} else {
			out[i] = offColor
		}
	}
	return out, nil
}
