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
	"time"

	"github.com/vic20emu/vic20/errors"
	"github.com/vic20emu/vic20/hardware/machine"
	"github.com/vic20emu/vic20/logger"

	"github.com/go-gl/gl/v2.1/gl"
	imgui "github.com/inkyblackness/imgui-go/v4"
	"github.com/veandco/go-sdl2/sdl"
)

// Window hosts an SDL2/OpenGL-2.1-backed Dear ImGui context showing the
// debug panels in panels.go. It is independent of the machine's own
// presentation window (gui/sdl or gui/glview) — closing it never affects
// the running emulation.
type Window struct {
	machine *machine.Machine

	sdlWindow *sdl.Window
	glContext sdl.GLContext

	imguiCtx imgui.Context
	io       imgui.IO

	rnd *glRenderer

	lastFrame time.Time

	// Panels toggled on/off from the menu bar drawn every frame.
	showMemory bool
	showHistory bool
	showVIA     bool
	showVIC     bool
}

// NewWindow opens the debugger window for m, sized w by h pixels. The
// window starts hidden; call Show(true) to display it.
func NewWindow(m *machine.Machine, w, h int) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Wrap(errors.Configuration, err, "sdl init")
	}
	if err := sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 2); err != nil {
		return nil, errors.Wrap(errors.Configuration, err, "sdl gl attribute")
	}
	if err := sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1); err != nil {
		return nil, errors.Wrap(errors.Configuration, err, "sdl gl attribute")
	}

	win := &Window{
		machine:     m,
		showMemory:  true,
		showHistory: true,
		showVIA:     true,
		showVIC:     true,
	}

	var err error
	win.sdlWindow, err = sdl.CreateWindow("vic20 debugger",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(w), int32(h),
		sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN|sdl.WINDOW_RESIZABLE)
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
	logger.Logf(logger.Allow, "imguidbg", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))

	win.imguiCtx = imgui.CreateContext(nil)
	win.io = imgui.CurrentIO()
	win.io.SetDisplaySize(imgui.Vec2{X: float32(w), Y: float32(h)})

	win.rnd, err = newGLRenderer(win.io.Fonts())
	if err != nil {
		win.imguiCtx.Destroy()
		return nil, err
	}

	win.lastFrame = time.Now()

	return win, nil
}

// Show shows or hides the debugger window.
func (w *Window) Show(visible bool) {
	if visible {
		w.sdlWindow.Show()
	} else {
		w.sdlWindow.Hide()
	}
}

// Close tears down the GL renderer, the imgui context and the SDL window.
func (w *Window) Close() {
	w.rnd.destroy()
	w.imguiCtx.Destroy()
	sdl.GLDeleteContext(w.glContext)
	w.sdlWindow.Destroy()
}

// PollEvents drains pending SDL events for this window, feeding mouse and
// keyboard state into imgui's IO. It is the caller's responsibility to
// call this once per host event-loop iteration.
func (w *Window) PollEvents() {
	x, y, state := sdl.GetMouseState()
	w.io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	w.io.SetMouseButtonDown(0, state&sdl.ButtonLMask() != 0)
	w.io.SetMouseButtonDown(1, state&sdl.ButtonRMask() != 0)
}

// Draw renders one frame of every enabled panel and presents it. Call
// once per host event-loop iteration while the window is shown.
func (w *Window) Draw() {
	now := time.Now()
	w.io.SetDeltaTime(float32(now.Sub(w.lastFrame).Seconds()))
	w.lastFrame = now

	winW, winH := w.sdlWindow.GetSize()
	w.io.SetDisplaySize(imgui.Vec2{X: float32(winW), Y: float32(winH)})

	imgui.NewFrame()
	w.drawMenuBar()
	if w.showMemory {
		w.drawMemory()
	}
	if w.showHistory {
		w.drawHistory()
	}
	if w.showVIA {
		w.drawVIA()
	}
	if w.showVIC {
		w.drawVIC()
	}
	imgui.Render()

	gl.Viewport(0, 0, winW, winH)
	gl.ClearColor(0.1, 0.1, 0.1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	w.rnd.render([2]float32{float32(winW), float32(winH)}, imgui.RenderedDrawData())

	w.sdlWindow.GLSwap()
}

func (w *Window) drawMenuBar() {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 0, Y: 0}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	if imgui.BeginV("panels", nil, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.Checkbox("memory", &w.showMemory)
		imgui.SameLine()
		imgui.Checkbox("history", &w.showHistory)
		imgui.SameLine()
		imgui.Checkbox("via", &w.showVIA)
		imgui.SameLine()
		imgui.Checkbox("vic", &w.showVIC)
	}
	imgui.End()
}
