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

// Package preferences collates the preference values that steer the
// Machine's construction and runtime behaviour: which memory model to
// build, which video region to target, whether to randomise hardware state
// on reset, and the auto-speed pacing toggle.
package preferences

import (
	"github.com/vic20emu/vic20/paths"
	"github.com/vic20emu/vic20/prefs"
)

// Region selects the kernal ROM revision and VIC timing parameters.
type Region string

// Valid Region values, matching the ROM package "region" field.
const (
	RegionDefault Region = "default"
	RegionNTSC    Region = "ntsc"
	RegionPAL     Region = "pal"
	RegionJapan   Region = "japan"
	RegionDenmark Region = "denmark"
	RegionSweden  Region = "sweden"
)

// MemoryModel selects which 8 KiB blocks of the address space are writable
// RAM, per spec.md's "Memory model" concept.
type MemoryModel string

// Valid MemoryModel values.
const (
	ModelUnexpanded MemoryModel = "unexpanded"
	Model3K         MemoryModel = "3k"
	Model8K         MemoryModel = "8k"
	Model16K        MemoryModel = "16k"
	Model24K        MemoryModel = "24k"
	Model32K        MemoryModel = "32k"
	Model35K        MemoryModel = "35k"
	ModelTest       MemoryModel = "test"
)

// Preferences collates every preference value used by the emulation core.
type Preferences struct {
	dsk *prefs.Disk

	// RandomState initialises A/X/Y/SP/P/PC to random values on reset
	// rather than zero, as real silicon does on power-up.
	RandomState prefs.Bool

	// AutoSpeed enables the Machine's Running-state FPS recalibration.
	AutoSpeed prefs.Bool

	// TargetFPS is the frame rate the auto-speed pacer aims for. Left at
	// zero it is derived from the selected Region (50 PAL, 60 NTSC).
	TargetFPS prefs.Int

	Region      Region
	MemoryModel MemoryModel
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. It loads any saved values from disk, silently keeping
// defaults if no preferences file exists yet.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{
		Region:      RegionDefault,
		MemoryModel: ModelUnexpanded,
	}
	p.AutoSpeed.Set(true)

	pth := paths.ResourcePath("prefs")
	p.dsk = prefs.NewDisk(pth)
	p.dsk.Add("hardware.randomstate", &p.RandomState)
	p.dsk.Add("hardware.autospeed", &p.AutoSpeed)
	p.dsk.Add("hardware.targetfps", &p.TargetFPS)

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// Save writes every preference value to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// SetDefaults resets every preference to its default value. Used by
// regression/normalised test instances.
func (p *Preferences) SetDefaults() {
	p.RandomState.Set(false)
	p.AutoSpeed.Set(true)
	p.TargetFPS.Set(0)
	p.Region = RegionDefault
	p.MemoryModel = ModelUnexpanded
}
