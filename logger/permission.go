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

// Package logger implements a small central, ring-buffered log used by every
// emulation component instead of ad hoc fmt.Println calls.
package logger

// Permission implementations indicate whether the caller making a log
// request is allowed to create new log entries. Useful for silencing a
// secondary emulation instance (eg. a thumbnailer) that shares the binary
// with the main one.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (allow) AllowLogging() bool {
	return true
}

// Allow indicates that the logging request should always be made.
var Allow Permission = allow{}
