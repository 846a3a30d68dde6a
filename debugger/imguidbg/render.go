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

package imguidbg

import (
	"unsafe"

	"github.com/vic20emu/vic20/errors"

	"github.com/go-gl/gl/v2.1/gl"
	imgui "github.com/inkyblackness/imgui-go/v4"
)

// glRenderer draws imgui draw-list data with the fixed-function OpenGL 2.1
// pipeline (client-side vertex arrays + a single font texture), the same
// GL profile gui/glview already requests, rather than a GL3+ shader-based
// backend.
type glRenderer struct {
	fontTexture uint32
}

func newGLRenderer(fonts imgui.FontAtlas) (*glRenderer, error) {
	r := &glRenderer{}

	image := fonts.TextureDataAlpha8()
	gl.GenTextures(1, &r.fontTexture)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.ALPHA, int32(image.Width), int32(image.Height), 0,
		gl.ALPHA, gl.UNSIGNED_BYTE, image.Pixels)

	fonts.SetTextureID(imgui.TextureID(r.fontTexture))

	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		return nil, errors.Errorf(errors.Configuration, "imguidbg: gl error %d building font texture", errCode)
	}

	return r, nil
}

func (r *glRenderer) destroy() {
	if r.fontTexture != 0 {
		gl.DeleteTextures(1, &r.fontTexture)
		r.fontTexture = 0
	}
}

// render draws every command list in data using glBegin(GL_TRIANGLES):
// debug panels are small and short-lived, so the convenience of the
// immediate-mode path outweighs its lack of batching.
func (r *glRenderer) render(displaySize [2]float32, data imgui.DrawData) {
	data.ScaleClipRects(imgui.Vec2{X: 1, Y: 1})

	gl.Enable(gl.TEXTURE_2D)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.SCISSOR_TEST)

	gl.MatrixMode(gl.PROJECTION)
	gl.PushMatrix()
	gl.LoadIdentity()
	gl.Ortho(0, float64(displaySize[0]), float64(displaySize[1]), 0, -1, 1)
	gl.MatrixMode(gl.MODELVIEW)
	gl.PushMatrix()
	gl.LoadIdentity()

	for _, list := range data.CommandLists() {
		vbuf, _ := list.VertexBuffer()
		ibuf, _ := list.IndexBuffer()
		vertexSize := imgui.VertexSize
		indexSize := imgui.IndexBufferSize

		idxPos := 0
		for _, cmd := range list.Commands() {
			gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))

			gl.Begin(gl.TRIANGLES)
			for i := 0; i < cmd.ElementCount(); i++ {
				idxPtr := unsafe.Pointer(uintptr(ibuf) + uintptr(idxPos+i*indexSize))
				idx := *(*uint16)(idxPtr)

				vtxPtr := unsafe.Pointer(uintptr(vbuf) + uintptr(int(idx)*vertexSize))
				pos := (*[2]float32)(unsafe.Pointer(vtxPtr))
				uv := (*[2]float32)(unsafe.Pointer(uintptr(vtxPtr) + uintptr(imgui.VertexUVOffset)))
				col := (*uint32)(unsafe.Pointer(uintptr(vtxPtr) + uintptr(imgui.VertexColOffset)))

				c := *col
				gl.Color4ub(uint8(c), uint8(c>>8), uint8(c>>16), uint8(c>>24))
				gl.TexCoord2f(uv[0], uv[1])
				gl.Vertex2f(pos[0], pos[1])
			}
			gl.End()

			idxPos += cmd.ElementCount() * indexSize
		}
	}

	gl.MatrixMode(gl.MODELVIEW)
	gl.PopMatrix()
	gl.MatrixMode(gl.PROJECTION)
	gl.PopMatrix()
}
