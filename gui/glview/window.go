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

// Package glview is an alternative host surface to gui/sdl: it presents
// the VIC's framebuffer as an OpenGL texture on a textured quad instead
// of through an SDL renderer, for hosts that want to composite the
// display alongside their own GL content.
package glview

import (
	"image"
	"image/draw"

	"github.com/vic20emu/vic20/errors"
	"github.com/vic20emu/vic20/hardware/machine"
	"github.com/vic20emu/vic20/logger"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/veandco/go-sdl2/sdl"
	xdraw "golang.org/x/image/draw"
)

// Window is an SDL-hosted OpenGL 2.1 context presenting the VIC
// framebuffer as a single textured quad, nearest-neighbour scaled to
// the window size via golang.org/x/image/draw.
type Window struct {
	machine *machine.Machine

	sdlWindow *sdl.Window
	glContext sdl.GLContext

	texture uint32

	src   *image.RGBA // one VIC-sized frame, refreshed every OnFrame
	scale *image.RGBA // src upscaled to the window's pixel size

	winW, winH int
}

// NewWindow opens an OpenGL window sized to the VIC framebuffer scaled
// by factor, and installs itself as VIC.OnFrame.
func NewWindow(m *machine.Machine, factor float32) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Wrap(errors.Configuration, err, "sdl init")
	}
	if err := sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 2); err != nil {
		return nil, errors.Wrap(errors.Configuration, err, "sdl gl attribute")
	}
	if err := sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1); err != nil {
		return nil, errors.Wrap(errors.Configuration, err, "sdl gl attribute")
	}

	w := m.VIC.ScreenWidth()
	h := m.VIC.ScreenHeight()
	winW := int(float32(w) * factor)
	winH := int(float32(h) * factor)

	win := &Window{
		machine: m,
		src:     image.NewRGBA(image.Rect(0, 0, w, h)),
		scale:   image.NewRGBA(image.Rect(0, 0, winW, winH)),
		winW:    winW,
		winH:    winH,
	}

	var err error
	win.sdlWindow, err = sdl.CreateWindow("vic20",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(winW), int32(winH),
		sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN)
	if err != nil {
		return nil, errors.Wrap(errors.Configuration, err, "sdl create window")
	}

	win.glContext, err = win.sdlWindow.GLCreateContext()
	if err != nil {
		return nil, errors.Wrap(errors.Configuration, err, "sdl gl create context")
	}
	if err := win.sdlWindow.GLMakeCurrent(win.glContext); err != nil {
		return nil, errors.Wrap(errors.Configuration, err, "sdl gl make current")
	}

	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(errors.Configuration, err, "gl init")
	}
	logger.Logf(logger.Allow, "glview", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))

	gl.GenTextures(1, &win.texture)
	gl.BindTexture(gl.TEXTURE_2D, win.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(winW), int32(winH), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, nil)

	m.VIC.OnFrame = win.present

	return win, nil
}

// Show shows or hides the window.
func (w *Window) Show(visible bool) {
	if visible {
		w.sdlWindow.Show()
	} else {
		w.sdlWindow.Hide()
	}
}

// Close destroys the GL context and window.
func (w *Window) Close() {
	sdl.GLDeleteContext(w.glContext)
	w.sdlWindow.Destroy()
}

// present converts frame into w.src, scales it to window size with
// nearest-neighbour sampling, uploads it to the texture and draws a
// single textured quad filling the viewport.
func (w *Window) present(frame []uint32) {
	for i, p := range frame {
		px := w.src.Pix[i*4 : i*4+4 : i*4+4]
		px[0] = byte(p >> 16) // R
		px[1] = byte(p >> 8)  // G
		px[2] = byte(p)       // B
		px[3] = byte(p >> 24) // A
	}

	xdraw.NearestNeighbor.Scale(w.scale, w.scale.Bounds(), w.src, w.src.Bounds(), draw.Src, nil)

	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w.winW), int32(w.winH),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(w.scale.Pix))

	gl.Viewport(0, 0, int32(w.winW), int32(w.winH))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Enable(gl.TEXTURE_2D)

	gl.Begin(gl.QUADS)
	gl.TexCoord2f(0, 1)
	gl.Vertex2f(-1, -1)
	gl.TexCoord2f(1, 1)
	gl.Vertex2f(1, -1)
	gl.TexCoord2f(1, 0)
	gl.Vertex2f(1, 1)
	gl.TexCoord2f(0, 0)
	gl.Vertex2f(-1, 1)
	gl.End()

	w.sdlWindow.GLSwap()
}
