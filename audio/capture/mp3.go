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

package capture

import (
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// DecodeReference decodes an MP3 recording of a real VIC-20's audio
// output into mono 16-bit samples, for comparing against a Renderer's
// synthesized output in regression tests. Only the left channel is
// kept; go-mp3 always produces interleaved 16-bit little-endian stereo
// regardless of the source's channel count.
func DecodeReference(r io.Reader) (samples []int16, sampleRate int, err error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, 0, err
	}

	chunk := make([]byte, 4096)
	for {
		n, rerr := dec.Read(chunk)
		for i := 0; i+4 <= n; i += 4 {
			s := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
			samples = append(samples, s)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, 0, rerr
		}
	}

	return samples, dec.SampleRate(), nil
}
