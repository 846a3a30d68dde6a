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

// Package paths resolves the on-disk location of preference files, ROM
// package caches, and captured audio/screen output.
package paths

import (
	"os"
	"path"
)

const baseResourcePath = ".vic20"

// ResourcePath returns the resource string prepended with the OS-specific
// base directory used for every on-disk artifact the emulation writes.
func ResourcePath(resource ...string) string {
	p := make([]string, 0, len(resource)+1)
	p = append(p, getBasePath())
	p = append(p, resource...)
	return path.Join(p...)
}

// getBasePath returns baseResourcePath with the user's config directory
// prepended, unless the unadorned directory already exists relative to the
// working directory (handy for running the emulator from a checkout).
func getBasePath() string {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath
	}

	home, err := os.UserConfigDir()
	if err != nil {
		return baseResourcePath
	}
	return path.Join(home, baseResourcePath[1:])
}
