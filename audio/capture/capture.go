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

// Package capture renders the VIC's four sound voices into PCM and
// encodes it as a WAV file, for offline inspection or regression
// comparison of a run's audio output.
package capture

import (
	"io"
	"math"
	"math/rand"

	"github.com/vic20emu/vic20/hardware/vic"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth    = 16
	numChannels = 1
	wavFormat   = 1 // PCM
)

// voiceCount is the number of VIC sound-voice registers (0xa-0xd);
// voice 3 is wired as a noise source rather than a tone, matching the
// real VIC's fourth oscillator.
const voiceCount = 4

// Renderer samples a VIC's sound-voice registers at sampleRate and
// synthesizes PCM, advancing an independent phase accumulator per voice
// across calls to Render.
type Renderer struct {
	vic        *vic.VIC
	sampleRate int
	phase      [voiceCount]float64
	noise      *rand.Rand
}

// NewRenderer builds a Renderer sampling v's sound registers at
// sampleRate Hz.
func NewRenderer(v *vic.VIC, sampleRate int) *Renderer {
	return &Renderer{
		vic:        v,
		sampleRate: sampleRate,
		noise:      rand.New(rand.NewSource(1)),
	}
}

// voiceFrequency converts a voice's 7-bit register value into a tone
// frequency in Hz: higher register values divide the bus clock less,
// producing a higher pitch, bottoming out at 0Hz (silent) for a value
// of 0.
func (r *Renderer) voiceFrequency(reg uint8) float64 {
	if reg == 0 {
		return 0
	}
	return float64(r.vic.BusFrequency()) / (16 * float64(128-int(reg)))
}

// Render synthesizes n samples at the Renderer's sample rate, mixing
// the three tone voices as band-limited square waves and the fourth as
// white noise gated by its enable bit, scaled by the shared volume
// register.
func (r *Renderer) Render(n int) []int16 {
	out := make([]int16, n)
	volume := float64(r.vic.Volume()) / 15

	for i := 0; i < n; i++ {
		var mix float64

		for v := 0; v < voiceCount-1; v++ {
			if !r.vic.VoiceEnabled(v) {
				continue
			}
			freq := r.voiceFrequency(r.vic.VoiceFrequency(v))
			if freq <= 0 {
				continue
			}
			r.phase[v] += freq / float64(r.sampleRate)
			r.phase[v] -= math.Floor(r.phase[v])
			if r.phase[v] < 0.5 {
				mix += 1
			} else {
				mix -= 1
			}
		}

		if r.vic.VoiceEnabled(voiceCount - 1) {
			mix += r.noise.Float64()*2 - 1
		}

		mix *= volume / (voiceCount - 1)
		if mix > 1 {
			mix = 1
		} else if mix < -1 {
			mix = -1
		}
		out[i] = int16(mix * math.MaxInt16)
	}

	return out
}

// WriteWAV encodes samples (mono, 16-bit PCM at sampleRate Hz) to w.
func WriteWAV(w io.WriteSeeker, samples []int16, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, bitDepth, numChannels, wavFormat)

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChannels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}
