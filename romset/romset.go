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

// Package romset loads a ROM package: a zip archive whose root holds an
// index.json describing every binary ROM file it contains, and the
// binaries themselves, each prefixed with a two-byte little-endian load
// address.
package romset

import (
	"archive/zip"
	"encoding/binary"
	"encoding/json"
	"io"

	"github.com/vic20emu/vic20/errors"
	"github.com/vic20emu/vic20/hardware/preferences"
)

// FileType names the role a binary plays.
type FileType string

// Valid FileType values.
const (
	Kernal    FileType = "kernal"
	Basic     FileType = "basic"
	Character FileType = "character"
	Cartridge FileType = "cartridge"
)

// entry mirrors one element of index.json.
type entry struct {
	Name      string               `json:"name"`
	FileNames []string             `json:"fileNames"`
	FileType  FileType             `json:"fileType"`
	Memory    preferences.MemoryModel `json:"memory"`
	Region    preferences.Region   `json:"region"`
	Publisher string               `json:"publisher,omitempty"`
	Year      string               `json:"year,omitempty"`
	Status    string               `json:"status,omitempty"`
	Comments  string               `json:"comments,omitempty"`
}

// ROM is one loaded binary: its load address (decoded from the binary's
// two-byte header) and the payload that follows it.
type ROM struct {
	Name      string
	FileType  FileType
	Memory    preferences.MemoryModel
	Region    preferences.Region
	LoadAddr  uint16
	Data      []byte
}

// Set is every ROM loaded from one package, indexed for the lookups the
// Machine needs: a kernal/BASIC/character ROM per region/memory model,
// plus zero or more cartridges.
type Set struct {
	roms []ROM
}

// Load reads a ROM package from r (the zip archive's full contents).
func Load(r io.ReaderAt, size int64) (*Set, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, errors.Wrap(errors.Configuration, err, "opening rom package")
	}

	idxFile, err := zr.Open("index.json")
	if err != nil {
		return nil, errors.Wrap(errors.Configuration, err, "rom package has no index.json")
	}
	defer idxFile.Close()

	idxBytes, err := io.ReadAll(idxFile)
	if err != nil {
		return nil, errors.Wrap(errors.Configuration, err, "reading index.json")
	}

	var entries []entry
	if err := json.Unmarshal(idxBytes, &entries); err != nil {
		return nil, errors.Wrap(errors.Configuration, err, "parsing index.json")
	}

	set := &Set{}
	for _, e := range entries {
		for _, fn := range e.FileNames {
			rom, err := loadBinary(zr, fn, e)
			if err != nil {
				return nil, err
			}
			set.roms = append(set.roms, rom)
		}
	}

	if err := set.validate(); err != nil {
		return nil, err
	}

	return set, nil
}

func loadBinary(zr *zip.Reader, name string, e entry) (ROM, error) {
	f, err := zr.Open(name)
	if err != nil {
		return ROM{}, errors.Wrap(errors.Configuration, err, "opening rom file %q", name)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return ROM{}, errors.Wrap(errors.Configuration, err, "reading rom file %q", name)
	}
	if len(raw) < 2 {
		return ROM{}, errors.Errorf(errors.Configuration, "rom file %q is shorter than its load-address header", name)
	}

	return ROM{
		Name:     e.Name,
		FileType: e.FileType,
		Memory:   e.Memory,
		Region:   e.Region,
		LoadAddr: binary.LittleEndian.Uint16(raw[:2]),
		Data:     raw[2:],
	}, nil
}

// validate enforces the package's minimum contents: at least a PAL
// kernal, an NTSC kernal, a default-region BASIC, and a default
// character ROM.
func (set *Set) validate() error {
	has := func(ft FileType, region preferences.Region) bool {
		for _, r := range set.roms {
			if r.FileType == ft && r.Region == region {
				return true
			}
		}
		return false
	}

	if !has(Kernal, preferences.RegionPAL) {
		return errors.Errorf(errors.Configuration, "rom package is missing a PAL kernal")
	}
	if !has(Kernal, preferences.RegionNTSC) {
		return errors.Errorf(errors.Configuration, "rom package is missing an NTSC kernal")
	}
	if !has(Basic, preferences.RegionDefault) {
		return errors.Errorf(errors.Configuration, "rom package is missing a default BASIC rom")
	}
	if !has(Character, preferences.RegionDefault) {
		return errors.Errorf(errors.Configuration, "rom package is missing a default character rom")
	}
	return nil
}

// Kernal returns the kernal ROM for region, falling back to the
// default-region kernal if no region-specific one was supplied.
func (set *Set) Kernal(region preferences.Region) (ROM, bool) {
	return set.find(Kernal, region)
}

// Basic returns the BASIC ROM for region.
func (set *Set) Basic(region preferences.Region) (ROM, bool) {
	return set.find(Basic, region)
}

// Character returns the character ROM for region.
func (set *Set) Character(region preferences.Region) (ROM, bool) {
	return set.find(Character, region)
}

// Cartridge returns the first cartridge image in the set, if any.
func (set *Set) Cartridge() (ROM, bool) {
	for _, r := range set.roms {
		if r.FileType == Cartridge {
			return r, true
		}
	}
	return ROM{}, false
}

func (set *Set) find(ft FileType, region preferences.Region) (ROM, bool) {
	for _, r := range set.roms {
		if r.FileType == ft && r.Region == region {
			return r, true
		}
	}
	for _, r := range set.roms {
		if r.FileType == ft && r.Region == preferences.RegionDefault {
			return r, true
		}
	}
	return ROM{}, false
}
