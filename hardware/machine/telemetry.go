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

//go:build statsview
// +build statsview

package machine

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// TelemetryAddress is the local address the statsview dashboard is
// served from; PacingAddress carries the small JSON endpoint reporting
// the Machine's own auto-speed figures alongside it.
const (
	TelemetryAddress = "localhost:12620"
	PacingAddress    = "localhost:12621"
)

// telemetry tracks the Running-state pacing figures Run recomputes every
// fpsSampleFrames frames, for display on the statsview dashboard
// alongside Go's own runtime stats. It is package-level rather than a
// Machine field since this file only exists under the statsview build
// tag and machine.go must compile without it.
type telemetry struct {
	fps        atomic.Value // float64
	frameDelay atomic.Value // time.Duration
}

func newTelemetry() *telemetry {
	t := &telemetry{}
	t.fps.Store(float64(0))
	t.frameDelay.Store(time.Duration(0))
	return t
}

func (t *telemetry) record(fps float64, frameDelay time.Duration) {
	t.fps.Store(fps)
	t.frameDelay.Store(frameDelay)
}

func (t *telemetry) snapshot() (fps float64, frameDelay time.Duration) {
	return t.fps.Load().(float64), t.frameDelay.Load().(time.Duration)
}

func (t *telemetry) serveHTTP(w http.ResponseWriter, r *http.Request) {
	fps, frameDelay := t.snapshot()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		FPS             float64 `json:"fps"`
		FrameDelayMicro int64   `json:"frame_delay_us"`
	}{fps, frameDelay.Microseconds()})
}

// LaunchTelemetry starts the statsview dashboard (Go runtime stats and
// pprof) plus a small JSON endpoint reporting the Machine's current
// auto-speed pacing figures, and writes the dashboard URL to output.
// Every Machine's Run loop reports into the same dashboard, since the
// pacing hook it wires is package-level.
func (m *Machine) LaunchTelemetry(output io.Writer) {
	t := newTelemetry()
	pacingSample = t.record

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/vic20/pacing", t.serveHTTP)

	go func() {
		viewer.SetConfiguration(viewer.WithAddr(TelemetryAddress))
		statsview.New().Start()
	}()
	go func() {
		_ = http.ListenAndServe(PacingAddress, mux)
	}()

	fmt.Fprintf(output, "stats server available at %s/debug/statsview, pacing at %s/debug/vic20/pacing\n", TelemetryAddress, PacingAddress)
}
