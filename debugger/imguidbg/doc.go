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

// Package imguidbg implements the "Dynamic debug handler" named in the
// core's design notes: a typed debug interface — memory page dump, CPU
// instruction history, VIA register panel, VIC raster position — rendered
// as a Dear ImGui window, replacing an ad hoc JSON-like callback with the
// explicit, typed accessors the notes call for.
//
// It hosts its own SDL2 window and OpenGL 2.1 context, independent of
// gui/sdl's or gui/glview's presentation windows, so the debugger can be
// shown or hidden without disturbing the machine's own display.
package imguidbg
