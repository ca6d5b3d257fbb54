// This file is part of Vectrexy.
//
// Vectrexy is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Vectrexy is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Vectrexy.  If not, see <https://www.gnu.org/licenses/>.

// Package host declares the contracts the hardware emulation needs from
// whatever sits outside it: something to draw the vector beam, something
// to read controller state from, something to render audio samples to,
// and the top-level per-frame lifecycle a host application drives the
// whole console through. This package has no implementation of its own;
// the host shell (a windowing/SDL front end, a headless test harness, a
// web front end) supplies one and the Non-goals explicitly leave that
// collaborator out of scope here.
package host

import "time"

// RenderContext receives the beam's path for a single frame. Lines are
// reported in the order the VIA's shift register and DACs produced them,
// each with the brightness the beam intensity was at when it was drawn.
type RenderContext interface {
	// DrawLine draws a segment from (x0, y0) to (x1, y1) in normalised
	// device coordinates ([-1, 1] on both axes) at the given brightness
	// (0 fully dark, 255 fully lit).
	DrawLine(x0, y0, x1, y1 float32, brightness uint8)
}

// AxisID names one of the Vectrex controller's two analogue axes.
type AxisID int

// The two analogue axes a Vectrex joystick port exposes.
const (
	AxisX AxisID = iota
	AxisY
)

// Input is read by the VIA's port A/B mux logic to resolve the currently
// selected controller input, digital or analogue.
type Input interface {
	// ButtonPressed reports whether button index (0-3) on controller
	// index (0 or 1) is currently held.
	ButtonPressed(controller, button int) bool
	// AxisValue returns the given controller's analogue axis position in
	// [-1, 1], matching the range the VIA's comparator DAC covers.
	AxisValue(controller int, axis AxisID) float32
}

// AudioContext receives PCM samples produced by the BIOS's software
// sound driver, which the VIA's port A DAC and shift register both feed.
type AudioContext interface {
	// PushSample appends one mono sample in [-1, 1] to the output
	// stream.
	PushSample(value float32)
}

// IEngineClient is the per-frame lifecycle a host application drives the
// console through: one Init, then repeated Update/Render pairs timed by
// the host's own frame clock, then one Shutdown.
type IEngineClient interface {
	Init() error
	Update(delta time.Duration, input Input) error
	Render(render RenderContext) error
	Shutdown() error
}
