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

// Package instance defines those parts of an emulation that may differ
// between concurrently running copies of the Machine (preferences, the
// random source) without being part of the Machine itself. Useful when
// running more than one Machine in the same process, eg. a thumbnailer
// alongside the main emulation.
package instance

import (
	"github.com/vic20emu/vic20/hardware/preferences"
	"github.com/vic20emu/vic20/random"
)

// Label identifies the role of an instance.
type Label string

// Valid Label values.
const (
	Main        Label = ""
	Thumbnailer Label = "thumbnailer"
	Regression  Label = "regression"
)

// Instance holds the per-run state shared by every component of a Machine.
type Instance struct {
	Label Label

	Random *random.Random
	Prefs  *preferences.Preferences
}

// NewInstance is the preferred method of initialisation for the Instance
// type. coords supplies the raster-position seed for Random; prefs may be
// nil, in which case a fresh Preferences is created (and loaded from disk).
func NewInstance(coords random.RasterCoords, prefs *preferences.Preferences) (*Instance, error) {
	ins := &Instance{Random: random.NewRandom(coords)}

	if prefs == nil {
		var err error
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}
	ins.Prefs = prefs

	return ins, nil
}

// AllowLogging satisfies logger.Permission: every instance but a
// Thumbnailer may write to the shared log.
func (ins *Instance) AllowLogging() bool {
	return ins.Label != Thumbnailer
}

// Normalise puts the instance into a known, reproducible state. Used by
// regression tests where every run must start identically.
func (ins *Instance) Normalise() {
	ins.Random.ZeroSeed = true
	ins.Prefs.SetDefaults()
}
