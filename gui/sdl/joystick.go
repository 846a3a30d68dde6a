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
	"sync/atomic"

	"github.com/vic20emu/vic20/hardware/via"

	"github.com/veandco/go-sdl2/sdl"
)

// Joystick bit positions on their respective VIA ports. Up, down, left
// and fire share VIA1 port A; right shares a bit of VIA2 port B with the
// keyboard matrix's column 7, exactly as on real hardware.
const (
	bitUp    = 1 << 2
	bitDown  = 1 << 3
	bitLeft  = 1 << 4
	bitFire  = 1 << 5
	bitRight = 1 << 7
)

// Joystick tracks the four directions and the fire button, active-low,
// and wires them into VIA1 port A (up/down/left/fire) and VIA2 port B
// (right).
type Joystick struct {
	state uint32 // atomic bitmask, bits set == pressed
}

func newJoystick() *Joystick {
	return &Joystick{}
}

// wire installs Joystick's bits as an extra source ORed into VIA1 port A
// and VIA2 port B reads, alongside whatever else drives those ports
// (VIA2 port A is wired to the Keyboard separately; this only touches
// VIA1 port A and the VIA2 port B bit the keyboard doesn't already
// drive).
func (j *Joystick) wire(via1, via2 *via.VIA) {
	via1.PortA.Get = func() uint8 {
		s := atomic.LoadUint32(&j.state)
		var out uint8 = 0xff
		if s&bitUp != 0 {
			out &^= bitUp
		}
		if s&bitDown != 0 {
			out &^= bitDown
		}
		if s&bitLeft != 0 {
			out &^= bitLeft
		}
		if s&bitFire != 0 {
			out &^= bitFire
		}
		return out
	}

	existingGet := via2.PortB.Get
	via2.PortB.Get = func() uint8 {
		var out uint8 = 0xff
		if existingGet != nil {
			out = existingGet()
		}
		if atomic.LoadUint32(&j.state)&bitRight != 0 {
			out &^= bitRight
		}
		return out
	}
}

func (j *Joystick) press(bit uint32)   { j.setBit(bit, true) }
func (j *Joystick) release(bit uint32) { j.setBit(bit, false) }

func (j *Joystick) setBit(bit uint32, pressed bool) {
	for {
		old := atomic.LoadUint32(&j.state)
		var next uint32
		if pressed {
			next = old | bit
		} else {
			next = old &^ bit
		}
		if atomic.CompareAndSwapUint32(&j.state, old, next) {
			return
		}
	}
}

// joystickKeys maps the arrow keys and left-ctrl to the four directions
// and the fire button, the usual keyboard-as-joystick convention.
var joystickKeys = map[sdl.Scancode]uint32{
	sdl.SCANCODE_UP:    bitUp,
	sdl.SCANCODE_DOWN:  bitDown,
	sdl.SCANCODE_LEFT:  bitLeft,
	sdl.SCANCODE_RIGHT: bitRight,
	sdl.SCANCODE_LCTRL: bitFire,
}

func (j *Joystick) handle(event *sdl.KeyboardEvent) bool {
	bit, ok := joystickKeys[event.Keysym.Scancode]
	if !ok {
		return false
	}
	switch event.Type {
	case sdl.KEYDOWN:
		j.press(bit)
	case sdl.KEYUP:
		j.release(bit)
	}
	return true
}
