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

// Package sdl is a host surface for hardware/machine.Machine built on
// go-sdl2: it presents the VIC's framebuffer in a window and turns SDL
// keyboard/joystick events into the (scan-down, scan-up) pairs the VIA
// chips' ports expect.
package sdl

import (
	"github.com/vic20emu/vic20/errors"
	"github.com/vic20emu/vic20/hardware/machine"
	"github.com/vic20emu/vic20/logger"

	"github.com/veandco/go-sdl2/sdl"
)

const pixelDepth = 4

// Display is an SDL window, renderer and texture sized to the Machine's
// VIC framebuffer, kept in sync with it via VIC.OnFrame.
type Display struct {
	machine *machine.Machine

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	pixels []byte

	Keyboard *Keyboard
	Joystick *Joystick

	quit chan struct{}
}

// NewDisplay opens a window sized to m's VIC framebuffer (scaled by
// scale), wires the framebuffer to the window via VIC.OnFrame, and wires
// a Keyboard and Joystick into m's two VIAs. The window starts hidden;
// call Show to present it.
func NewDisplay(m *machine.Machine, scale float32) (*Display, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_JOYSTICK); err != nil {
		return nil, errors.Wrap(errors.Configuration, err, "sdl init")
	}

	w := m.VIC.ScreenWidth()
	h := m.VIC.ScreenHeight()

	d := &Display{
		machine: m,
		pixels:  make([]byte, w*h*pixelDepth),
		quit:    make(chan struct{}),
	}

	var err error
	d.window, err = sdl.CreateWindow("vic20",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(float32(w)*scale), int32(float32(h)*scale),
		sdl.WINDOW_HIDDEN)
	if err != nil {
		return nil, errors.Wrap(errors.Configuration, err, "sdl create window")
	}

	d.renderer, err = sdl.CreateRenderer(d.window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return nil, errors.Wrap(errors.Configuration, err, "sdl create renderer")
	}

	d.texture, err = d.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		sdl.TEXTUREACCESS_STREAMING, int32(w), int32(h))
	if err != nil {
		return nil, errors.Wrap(errors.Configuration, err, "sdl create texture")
	}

	d.Keyboard = newKeyboard()
	d.Joystick = newJoystick()
	d.Keyboard.wire(m.VIA2)
	d.Joystick.wire(m.VIA1, m.VIA2)

	m.VIC.OnFrame = d.present

	go d.eventLoop()

	return d, nil
}

// Show shows or hides the window.
func (d *Display) Show(visible bool) {
	if visible {
		d.window.Show()
	} else {
		d.window.Hide()
	}
}

// Close tears down the SDL window and stops the event loop.
func (d *Display) Close() {
	close(d.quit)
	d.texture.Destroy()
	d.renderer.Destroy()
	d.window.Destroy()
}

// present copies frame (one ARGB uint32 per pixel, row-major) into the
// window's texture. It is installed as VIC.OnFrame.
func (d *Display) present(frame []uint32) {
	for i, p := range frame {
		o := i * pixelDepth
		if o+3 >= len(d.pixels) {
			break
		}
		d.pixels[o+0] = byte(p >> 16) // R
		d.pixels[o+1] = byte(p >> 8)  // G
		d.pixels[o+2] = byte(p)       // B
		d.pixels[o+3] = byte(p >> 24) // A
	}

	if err := d.texture.Update(nil, d.pixels, d.machine.VIC.ScreenWidth()*pixelDepth); err != nil {
		logger.Logf(logger.Allow, "sdl", "texture update: %v", err)
		return
	}
	if err := d.renderer.Copy(d.texture, nil, nil); err != nil {
		logger.Logf(logger.Allow, "sdl", "renderer copy: %v", err)
		return
	}
	d.renderer.Present()
}
