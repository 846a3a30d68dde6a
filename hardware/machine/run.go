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

package machine

import (
	"time"

	"github.com/vic20emu/vic20/hardware/vic"
)

// fpsSampleFrames is how often the auto-speed pacer recomputes actual FPS
// and, if enabled, nudges frame_delay toward the target.
const fpsSampleFrames = 50

// pacingSample, if set, is called every fpsSampleFrames frames with the
// just-measured FPS and the (possibly just-adjusted) frame delay. Left
// nil by default; the statsview-gated telemetry package points it at its
// own recorder when launched.
var pacingSample func(fps float64, frameDelay time.Duration)

// ContinueFunc is consulted once per frame while Running; returning false
// ends Run without raising an error (a quit request from the GUI, for
// instance).
type ContinueFunc func(m *Machine) bool

// Run drives the Machine at frame_delay-spaced intervals, each interval
// ticking CyclesPerFrame cycles, until continueCheck returns false, a
// breakpoint is hit, or an error occurs. The Machine must already be
// Running (see Start). frameDelay is the initial pacing interval;
// with AutoSpeed on it is adjusted every fpsSampleFrames frames to track
// TargetFPS.
func (m *Machine) Run(frameDelay time.Duration, continueCheck ContinueFunc) error {
	if continueCheck == nil {
		continueCheck = func(*Machine) bool { return true }
	}

	cyclesPerFrame := m.VIC.CyclesPerFrame()
	autoSpeed := m.instance.Prefs.AutoSpeed.Get()
	targetFPS := m.instance.Prefs.TargetFPS.Get()
	if targetFPS <= 0 {
		targetFPS = defaultTargetFPS(m.VIC.Region())
	}

	ticker := time.NewTicker(frameDelay)
	defer ticker.Stop()

	framesSinceSample := 0
	sampleStart := time.Now()

	for m.State == Running {
		<-ticker.C

		if err := m.RunCycles(cyclesPerFrame); err != nil {
			return err
		}
		if m.State != Running {
			break
		}

		framesSinceSample++
		if framesSinceSample >= fpsSampleFrames {
			elapsed := time.Since(sampleStart).Seconds()
			if elapsed > 0 {
				actualFPS := float64(fpsSampleFrames) / elapsed
				if autoSpeed {
					frameDelay = adjustFrameDelay(frameDelay, actualFPS, float64(targetFPS))
					ticker.Reset(frameDelay)
				}
				if pacingSample != nil {
					pacingSample(actualFPS, frameDelay)
				}
			}
			framesSinceSample = 0
			sampleStart = time.Now()
		}

		if !continueCheck(m) {
			return nil
		}
	}

	return nil
}

// adjustFrameDelay nudges delay multiplicatively so that actual tracks
// target: running too fast (actual > target) lengthens the delay;
// running too slow shortens it.
func adjustFrameDelay(delay time.Duration, actual, target float64) time.Duration {
	if actual <= 0 || target <= 0 {
		return delay
	}
	adjusted := time.Duration(float64(delay) * (actual / target))
	if adjusted <= 0 {
		return delay
	}
	return adjusted
}

func defaultTargetFPS(region vic.Region) int {
	if region == vic.NTSC {
		return 60
	}
	return 50
}
