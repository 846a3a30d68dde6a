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

// Package random supplies the "randomise hardware state on reset" preference
// used by the CPU when preferences.RandomState is set. Numbers are seeded
// from the VIC's current raster position rather than the wall clock so that
// a normalised instance (ZeroSeed true) produces identical runs across
// invocations, which the regression/comparison test harnesses rely on.
package random

import (
	"math/rand"
	"time"
)

// baseSeed is mixed into every non-normalised random source so that two
// emulations started at different wall-clock times diverge.
var baseSeed = int64(time.Now().UnixNano())

// RasterCoords identifies a point in the video raster; the VIC satisfies
// this interface.
type RasterCoords interface {
	RasterCoords() (frame, line, cycle int)
}

// Random is a random number generator whose seed tracks the emulation's own
// progress (frame/line/cycle) instead of the wall clock.
type Random struct {
	coords RasterCoords

	// ZeroSeed disables the wall-clock component of the seed. Used by
	// normalised/regression instances where a run must be reproducible.
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(coords RasterCoords) *Random {
	return &Random{coords: coords}
}

func (rnd *Random) seed() int64 {
	frame, line, cycle := rnd.coords.RasterCoords()
	sum := int64(frame)*1_000_000 + int64(line)*1_000 + int64(cycle)
	if rnd.ZeroSeed {
		return sum
	}
	return baseSeed + sum
}

// NoRewind returns a random number in [0,n) without recording the request
// anywhere that a rewind/history system would need to account for.
func (rnd *Random) NoRewind(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.New(rand.NewSource(rnd.seed())).Intn(n)
}
