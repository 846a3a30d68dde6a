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

// Command busmap is a development tool: it builds a bus for a named
// memory model, collapses its 0x10000-entry write-handler table into
// contiguous ranges by HandlerKind, and dumps a Graphviz visualisation of
// the result with memviz — so a reviewer can see at a glance which
// ranges are backing RAM, which are write-protected ROM/unpopulated
// space, and which are routed to device MMIO.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bradleyjkemp/memviz"

	"github.com/vic20emu/vic20/hardware/memory/bus"
	"github.com/vic20emu/vic20/hardware/preferences"
)

// Range is one contiguous span of addresses sharing the same HandlerKind.
type Range struct {
	Start, End uint32
	Kind       string
}

// Map is the value rendered by memviz: one Range per contiguous span,
// grouped under the memory model name that produced them.
type Map struct {
	Model  string
	Ranges []Range
}

func main() {
	model := flag.String("model", "unexpanded", "memory model: unexpanded, 3k, 8k, 16k, 24k, 32k, 35k, test")
	out := flag.String("out", "", "output .dot file (default: stdout)")
	flag.Parse()

	mem := bus.NewMemory(preferences.MemoryModel(*model))

	m := Map{Model: *model}
	var cur Range
	cur.Kind = mem.HandlerKind(0).String()
	for addr := 0; addr < 0x10000; addr++ {
		kind := mem.HandlerKind(uint16(addr)).String()
		if kind != cur.Kind {
			cur.End = uint32(addr - 1)
			m.Ranges = append(m.Ranges, cur)
			cur = Range{Start: uint32(addr), Kind: kind}
		}
	}
	cur.End = 0xffff
	m.Ranges = append(m.Ranges, cur)

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintln(os.Stderr, "busmap:", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	memviz.Map(w, &m)
}
