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

package sdl

import (
	"github.com/vic20emu/vic20/logger"

	"github.com/veandco/go-sdl2/sdl"
)

// eventLoop polls SDL events and routes keyboard events to the Joystick
// first (it claims the arrow keys and left-ctrl) and the Keyboard
// matrix otherwise, until Close is called.
func (d *Display) eventLoop() {
	for {
		select {
		case <-d.quit:
			return
		default:
		}

		event := sdl.WaitEventTimeout(50)
		if event == nil {
			continue
		}

		switch event := event.(type) {
		case *sdl.QuitEvent:
			logger.Log(logger.Allow, "sdl", "quit requested")
			d.Show(false)
		case *sdl.KeyboardEvent:
			if event.Repeat != 0 {
				continue
			}
			if !d.Joystick.handle(event) {
				d.Keyboard.handle(event)
			}
		}
	}
}
