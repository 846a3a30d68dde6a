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
	"sync"

	"github.com/vic20emu/vic20/hardware/via"

	"github.com/veandco/go-sdl2/sdl"
)

// Keyboard holds the pressed/released state of the fixed 8x8 matrix and
// wires it into VIA2: the kernal drives the matrix by writing an
// active-low column-select byte to port B and reading back an
// active-low row byte on port A.
type Keyboard struct {
	mu     sync.Mutex
	matrix [8][8]bool // [row][col], true == pressed
	cols   uint8      // last value written to VIA2 port B (active-low)
}

func newKeyboard() *Keyboard {
	return &Keyboard{cols: 0xff}
}

// wire installs Keyboard as VIA2's port B sink and port A source.
func (k *Keyboard) wire(via2 *via.VIA) {
	via2.PortB.Set = func(v uint8) {
		k.mu.Lock()
		k.cols = v
		k.mu.Unlock()
	}
	via2.PortA.Get = k.rows
}

// rows computes the active-low row byte for whichever columns are
// currently selected low on port B: a bit is pulled low if any selected
// column has a pressed key in that row.
func (k *Keyboard) rows() uint8 {
	k.mu.Lock()
	defer k.mu.Unlock()

	var out uint8 = 0xff
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if k.cols&(1<<uint(col)) == 0 && k.matrix[row][col] {
				out &^= 1 << uint(row)
			}
		}
	}
	return out
}

// Down and Up record a key transition at the given matrix position.
func (k *Keyboard) Down(row, col int) { k.set(row, col, true) }
func (k *Keyboard) Up(row, col int)   { k.set(row, col, false) }

func (k *Keyboard) set(row, col int, pressed bool) {
	if row < 0 || row > 7 || col < 0 || col > 7 {
		return
	}
	k.mu.Lock()
	k.matrix[row][col] = pressed
	k.mu.Unlock()
}

// handle translates an SDL key event into a matrix Down/Up call, using
// keyMatrix to look up the scancode.
func (k *Keyboard) handle(event *sdl.KeyboardEvent) {
	pos, ok := keyMatrix[event.Keysym.Scancode]
	if !ok {
		return
	}
	switch event.Type {
	case sdl.KEYDOWN:
		k.Down(pos[0], pos[1])
	case sdl.KEYUP:
		k.Up(pos[0], pos[1])
	}
}

// keyMatrix maps host scancodes to [row, col] positions on the VIC-20
// keyboard matrix. Coverage is intentionally partial: the alphanumeric
// block, digits, return and space, enough to drive BASIC from a modern
// keyboard. The arrow keys are claimed by the Joystick instead (see
// joystick.go); the two never compete for the same scancode.
var keyMatrix = map[sdl.Scancode][2]int{
	sdl.SCANCODE_RETURN: {0, 1},
	sdl.SCANCODE_SPACE:  {0, 4},

	sdl.SCANCODE_A: {1, 2}, sdl.SCANCODE_B: {3, 4}, sdl.SCANCODE_C: {2, 4},
	sdl.SCANCODE_D: {2, 2}, sdl.SCANCODE_E: {1, 6}, sdl.SCANCODE_F: {2, 5},
	sdl.SCANCODE_G: {3, 2}, sdl.SCANCODE_H: {3, 5}, sdl.SCANCODE_I: {4, 1},
	sdl.SCANCODE_J: {4, 2}, sdl.SCANCODE_K: {4, 5}, sdl.SCANCODE_L: {5, 2},
	sdl.SCANCODE_M: {4, 4}, sdl.SCANCODE_N: {4, 7}, sdl.SCANCODE_O: {4, 6},
	sdl.SCANCODE_P: {5, 1}, sdl.SCANCODE_Q: {7, 6}, sdl.SCANCODE_R: {2, 1},
	sdl.SCANCODE_S: {1, 5}, sdl.SCANCODE_T: {2, 6}, sdl.SCANCODE_U: {3, 6},
	sdl.SCANCODE_V: {3, 7}, sdl.SCANCODE_W: {1, 1}, sdl.SCANCODE_X: {2, 7},
	sdl.SCANCODE_Y: {3, 1}, sdl.SCANCODE_Z: {1, 4},

	sdl.SCANCODE_0: {4, 3}, sdl.SCANCODE_1: {0, 0}, sdl.SCANCODE_2: {0, 7},
	sdl.SCANCODE_3: {0, 2}, sdl.SCANCODE_4: {0, 3}, sdl.SCANCODE_5: {0, 5},
	sdl.SCANCODE_6: {0, 6}, sdl.SCANCODE_7: {6, 0}, sdl.SCANCODE_8: {6, 3},
	sdl.SCANCODE_9: {6, 4},

	sdl.SCANCODE_BACKSPACE: {7, 0},
	sdl.SCANCODE_ESCAPE:    {7, 7},
}
