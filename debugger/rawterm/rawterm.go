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

// Package rawterm is a keystroke-by-keystroke terminal console for the
// Breakpoint state: it puts the controlling terminal into cbreak mode
// (input available a character at a time, no local echo of control
// characters) so a debugger REPL can react to single keys without
// waiting for a newline.
package rawterm

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/vic20emu/vic20/errors"
)

// ASCII codes for the control keys the console recognises directly,
// without going through line-buffered command parsing.
const (
	KeyCtrlC     = 3
	KeyCtrlD     = 4
	KeyCarriage  = 13
	KeyBackspace = 127
)

// Console wraps a terminal's termios state, switching between the
// caller's original (canonical) mode and cbreak mode.
type Console struct {
	input  *os.File
	output *os.File

	canonAttr  unix.Termios
	cbreakAttr unix.Termios
}

// NewConsole captures input's current terminal attributes so they can
// be restored later, and derives the cbreak attributes Raw will switch
// to. input must refer to an actual terminal device.
func NewConsole(input, output *os.File) (*Console, error) {
	if input == nil || output == nil {
		return nil, errors.Errorf(errors.DebugArgument, "rawterm: console requires non-nil input and output files")
	}

	c := &Console{input: input, output: output}

	if err := termios.Tcgetattr(c.input.Fd(), &c.canonAttr); err != nil {
		return nil, errors.Wrap(errors.Configuration, err, "rawterm: reading terminal attributes")
	}
	c.cbreakAttr = c.canonAttr
	termios.Cfmakecbreak(&c.cbreakAttr)

	return c, nil
}

// Raw switches the terminal into cbreak mode: characters are available
// to Read as soon as they're typed, without waiting for Enter.
func (c *Console) Raw() error {
	return termios.Tcsetattr(c.input.Fd(), termios.TCIFLUSH, &c.cbreakAttr)
}

// Restore returns the terminal to the mode it was in when NewConsole
// was called.
func (c *Console) Restore() error {
	return termios.Tcsetattr(c.input.Fd(), termios.TCIFLUSH, &c.canonAttr)
}

// ReadKey reads a single byte from the terminal.
func (c *Console) ReadKey() (byte, error) {
	buf := make([]byte, 1)
	if _, err := c.input.Read(buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Printf writes a formatted string to the console's output.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.output, format, a...)
}
