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

// Package fluent is a small testing helper used throughout hardware/...
// tests in place of a third-party assertion library. It exists for the
// same reason the teacher repo rolls its own rather than importing
// testify: the comparisons needed here are a handful of fixed shapes
// (byte/word equality, flag equality, a tagged error's category) and a
// generic helper plus a couple of typed ones cover all of them.
package fluent

import (
	"testing"

	"github.com/vic20emu/vic20/errors"
)

// Equal fails the test (without stopping it) if got != want.
func Equal[T comparable](t *testing.T, got, want T, what string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %v, want %v", what, got, want)
	}
}

// Fatal is Equal but stops the test immediately, for preconditions later
// assertions in the same test depend on.
func Fatal[T comparable](t *testing.T, got, want T, what string) {
	t.Helper()
	if got != want {
		t.Fatalf("%s: got %v, want %v", what, got, want)
	}
}

// Flags checks the six visible 6502 status flags against a human-written
// "NV-BDIZC"-order string such as "..-.1.1" where '.' means "don't care",
// matching the compact flag-trace notation used in the CPU's own test
// files.
func Flags(t *testing.T, got string, want string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("flags: got %q, want %q (length mismatch)", got, want)
	}
	for i := range want {
		if want[i] == '.' {
			continue
		}
		if got[i] != want[i] {
			t.Errorf("flags: got %q, want %q (differs at position %d)", got, want, i)
			return
		}
	}
}

// ErrorCategory fails the test unless err is a non-nil *errors.Error of
// the given category.
func ErrorCategory(t *testing.T, err error, category errors.Category) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a %s error, got nil", category)
	}
	if !errors.Is(err, category) {
		t.Errorf("expected a %s error, got %v", category, err)
	}
}
