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

package machine

// State indicates the Machine's current condition.
type State int

// The Machine's four states. A fresh Machine starts Stopped; Reset moves
// it to Loaded; Start moves it to Running; a CPU breakpoint moves it to
// Breakpoint, from which Start resumes Running.
const (
	Stopped State = iota
	Loaded
	Running
	Breakpoint
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Loaded:
		return "Loaded"
	case Running:
		return "Running"
	case Breakpoint:
		return "Breakpoint"
	}
	return ""
}
