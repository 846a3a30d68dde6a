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

package imguidbg

import (
	"fmt"

	imgui "github.com/inkyblackness/imgui-go/v4"
)

// memoryPage is the 256-byte page currently shown by drawMemory; exported
// so a host can drive it from a "go to address" field.
var memoryPage uint8

// drawMemory shows a hex/ASCII dump of one 256-byte memory page, following
// the spec's "memory page as bytes" debug accessor.
func (w *Window) drawMemory() {
	imgui.SetNextWindowSizeV(imgui.Vec2{X: 520, Y: 340}, imgui.ConditionFirstUseEver)
	if imgui.Begin("memory") {
		page := int32(memoryPage)
		imgui.SliderInt("page", &page, 0, 0xff)
		memoryPage = uint8(page)

		data := w.machine.Mem.PeekPage(memoryPage)
		base := uint16(memoryPage) << 8
		for row := 0; row < 16; row++ {
			line := fmt.Sprintf("%#04x ", base+uint16(row*16))
			ascii := make([]byte, 16)
			for col := 0; col < 16; col++ {
				b := data[row*16+col]
				line += fmt.Sprintf("%02x ", b)
				if b >= 0x20 && b < 0x7f {
					ascii[col] = b
				} else {
					ascii[col] = '.'
				}
			}
			imgui.Text(line + " " + string(ascii))
		}
	}
	imgui.End()
}

// drawHistory shows the most recent instructions from the CPU's bounded
// ring buffer, following the spec's "CPU history as a ring-buffer slice"
// debug accessor.
func (w *Window) drawHistory() {
	imgui.SetNextWindowSizeV(imgui.Vec2{X: 260, Y: 400}, imgui.ConditionFirstUseEver)
	if imgui.Begin("history") {
		imgui.Text(fmt.Sprintf("A:%02x X:%02x Y:%02x SP:%02x P:%02x PC:%04x",
			w.machine.CPU.A, w.machine.CPU.X, w.machine.CPU.Y, w.machine.CPU.SP,
			w.machine.CPU.P.Value(false), w.machine.CPU.PC))
		imgui.Separator()
		for _, e := range w.machine.CPU.History.Recent(64) {
			imgui.Text(e.String())
		}
	}
	imgui.End()
}

// drawVIA shows both VIAs' register snapshots side by side, following the
// spec's "VIA register panel" debug accessor. Debug() is used rather than
// Read() so the panel never perturbs IFR by observing it.
func (w *Window) drawVIA() {
	imgui.SetNextWindowSizeV(imgui.Vec2{X: 420, Y: 220}, imgui.ConditionFirstUseEver)
	if imgui.Begin("via") {
		drawOneVIA("VIA1 (NMI)", w.machine.VIA1.Debug())
		imgui.Separator()
		drawOneVIA("VIA2 (IRQ)", w.machine.VIA2.Debug())
	}
	imgui.End()
}

func drawOneVIA(title string, d interface {
	String() string
}) {
	imgui.Text(title)
	imgui.Text(d.String())
}

// drawVIC shows the VIC's raster position and control-register-derived
// fields, following the spec's VIC raster-position debug accessor.
func (w *Window) drawVIC() {
	imgui.SetNextWindowSizeV(imgui.Vec2{X: 260, Y: 160}, imgui.ConditionFirstUseEver)
	if imgui.Begin("vic") {
		_, line, cycle := w.machine.VIC.RasterCoords()
		imgui.Text(fmt.Sprintf("region:   %s", w.machine.VIC.Region()))
		imgui.Text(fmt.Sprintf("line:     %d", line))
		imgui.Text(fmt.Sprintf("cycle:    %d", cycle))
		imgui.Text(fmt.Sprintf("volume:   %d", w.machine.VIC.Volume()))
		for v := 0; v < 4; v++ {
			imgui.Text(fmt.Sprintf("voice %d:  enabled=%-5v freq=%d", v,
				w.machine.VIC.VoiceEnabled(v), w.machine.VIC.VoiceFrequency(v)))
		}
	}
	imgui.End()
}
