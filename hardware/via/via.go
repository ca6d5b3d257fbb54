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

// Package via emulates the 6522-class VIA that drives the vector beam:
// its two timers, 8-bit shift register, Port A/B with data-direction
// registers, and the peripheral control register fields that gate
// /ZERO and /BLANK. Every cycle it integrates the beam's position from
// velocity and offset DACs and reports completed, brightness-gated line
// segments to a host.RenderContext.
package via

import (
	"github.com/vectrexy/vectrexy/host"
	"github.com/vectrexy/vectrexy/vxerrors"
)

// Register identifies one of the sixteen memory-mapped VIA registers.
type Register uint8

// The sixteen VIA register offsets, in their standard 6522 order.
const (
	RegPortB Register = iota
	RegPortA
	RegDDRB
	RegDDRA
	RegTimer1CounterLo
	RegTimer1CounterHi
	RegTimer1LatchLo
	RegTimer1LatchHi
	RegTimer2CounterLo
	RegTimer2CounterHi
	RegShiftRegister
	RegAuxCntl
	RegPeriphCntl
	RegInterruptFlag
	RegInterruptEnable
	RegPortANoHandshake
)

// PortB bit layout (register $00).
const (
	pbMuxDisabled  = 1 << 0
	pbMuxSelMask   = 0x06 // bits 1,2
	pbMuxSelShift  = 1
	pbSoundBC1     = 1 << 3
	pbSoundBDir    = 1 << 4
	pbComparator   = 1 << 5
	pbRampDisabled = 1 << 7
)

// mux selector values: the same two bits of Port B steer both what Port
// A's DAC feeds on a write (an integrator or the brightness DAC) and,
// symmetrically, which cached analogue axis a Port B read compares Port
// A against.
const (
	muxVelocityY = 0
	muxXYOffset  = 1
	muxBrightness = 2
	muxSound      = 3
)

// AuxCntl bit layout (register $0B).
const (
	auxShiftModeMask  = 0x1C // bits 2,3,4
	auxShiftModeShift = 2
	auxShiftOutUnder02 = 0x06 // 0b110, the only mode this platform uses
	auxT2PulseCounting = 1 << 5
	auxT1FreeRunning   = 1 << 6
	auxPB7Flag         = 1 << 7
)

// PeriphCntl bit layout (register $0C). CA2 (bits 1-3) drives /ZERO and
// CB2 (bits 5-7) drives /BLANK; both fields are only ever legally 0b110
// (asserted) or 0b111 (deasserted).
const (
	pcrCA2Mask  = 0x0E
	pcrCA2Shift = 1
	pcrCB2Mask  = 0xE0
	pcrCB2Shift = 5

	pcrFieldAsserted   = 0x06 // 0b110
	pcrFieldDeasserted = 0x07 // 0b111
)

// InterruptFlag/InterruptEnable bit layout (registers $0D/$0E).
const (
	ifCA2 = 1 << 0
	ifCA1 = 1 << 1
	ifSR  = 1 << 2
	ifCB2 = 1 << 3
	ifCB1 = 1 << 4
	ifT2  = 1 << 5
	ifT1  = 1 << 6
	ifIRQ = 1 << 7
)

// beamState tracks the analogue integrators the BIOS drives through Port
// A (a velocity/offset/brightness DAC feeding the beam's deflection) and
// its current drawn position.
type beamState struct {
	x, y float32

	// velocityX/velocityY and xyOffset are the raw signed DAC values Port
	// A last latched for each integrator input; stepBeam divides
	// their sum by 128 once per cycle to form the position delta, per
	// spec.md §4.3 step 5.
	velocityX, velocityY int8
	xyOffset             int8
	brightness           uint8
}

// Via is the VIA peripheral.
type Via struct {
	portA, portB        uint8
	ddrA, ddrB          uint8
	auxCntl, periphCntl uint8
	interruptFlag       uint8
	interruptEnable     uint8

	shiftRegister uint8

	timer1, timer2 Timer

	beam beamState

	input host.Input

	// joystickButtonState and joystickAnalogState are the controller
	// readings cached at the start of each Update call, per spec.md
	// §4.3's "Update ... first caches input state" -- reads mid-frame
	// see a stable snapshot rather than a live, possibly-torn value.
	joystickButtonState uint8
	joystickAnalogState [4]int8
}

// New returns a VIA with every register zeroed, wired to read controller
// state from input.
func New(input host.Input) *Via {
	return &Via{input: input}
}

// Reset returns every register and the beam integrators to their
// power-on state. Port B's RampDisabled bit is set on reset, matching
// real hardware: the beam integrators stay off until the BIOS explicitly
// arms them.
func (v *Via) Reset() {
	*v = Via{input: v.input}
	v.portB = pbRampDisabled
}

// InterruptAsserted reports whether the VIA's combined, enabled
// interrupt flags would currently assert IRQ to the CPU.
func (v *Via) InterruptAsserted() bool {
	return v.interruptFlag&v.interruptEnable&0x7F != 0
}

func (v *Via) setFlag(bit uint8) {
	v.interruptFlag |= bit
}

func (v *Via) clearFlag(bit uint8) {
	v.interruptFlag &^= bit
}

func (v *Via) timer1Mode() TimerMode {
	if v.auxCntl&auxT1FreeRunning != 0 {
		return FreeRunning
	}
	return OneShot
}

func (v *Via) timer2Mode() TimerMode {
	if v.auxCntl&auxT2PulseCounting != 0 {
		return PulseCounting
	}
	return OneShot
}

// zeroEnabled reports whether PeriphCntl's CA2 field currently asserts
// /ZERO (0b110). Comparing against the full three-bit field, not just
// its top two bits, is what distinguishes 0b110 (asserted) from 0b111
// (deasserted) -- both are the only legal values Write(RegPeriphCntl)
// accepts, so a coarser mask would read every valid setting as asserted.
func (v *Via) zeroEnabled() bool {
	return v.periphCntl&pcrCA2Mask == pcrFieldAsserted<<pcrCA2Shift
}

// blankEnabled reports whether PeriphCntl's CB2 field currently asserts
// /BLANK (0b110), by the same full-field comparison as zeroEnabled.
func (v *Via) blankEnabled() bool {
	return v.periphCntl&pcrCB2Mask == pcrFieldAsserted<<pcrCB2Shift
}

// rampEnabled reports whether Port B's RampDisabled bit is currently
// clear, i.e. whether the beam integrators are allowed to run.
func (v *Via) rampEnabled() bool {
	return v.portB&pbRampDisabled == 0
}

func muxSelect(portB uint8) int {
	return int(portB&pbMuxSelMask) >> pbMuxSelShift
}

// Read returns the byte at the given VIA register.
func (v *Via) Read(reg Register) (uint8, error) {
	switch reg {
	case RegPortB:
		return v.readPortB(), nil
	case RegPortA, RegPortANoHandshake:
		return v.readPortA(), nil
	case RegDDRB:
		return v.ddrB, nil
	case RegDDRA:
		return v.ddrA, nil
	case RegTimer1CounterLo:
		v.clearFlag(ifT1)
		return uint8(v.timer1.Counter()), nil
	case RegTimer1CounterHi:
		return uint8(v.timer1.Counter() >> 8), nil
	case RegTimer1LatchLo:
		return uint8(v.timer1.Latch()), nil
	case RegTimer1LatchHi:
		return uint8(v.timer1.Latch() >> 8), nil
	case RegTimer2CounterLo:
		v.clearFlag(ifT2)
		return uint8(v.timer2.Counter()), nil
	case RegTimer2CounterHi:
		return uint8(v.timer2.Counter() >> 8), nil
	case RegShiftRegister:
		v.clearFlag(ifSR)
		return v.shiftRegister, nil
	case RegAuxCntl:
		return v.readAuxCntl(), nil
	case RegPeriphCntl:
		return v.periphCntl, nil
	case RegInterruptFlag:
		return v.readInterruptFlag(), nil
	case RegInterruptEnable:
		return v.interruptEnable | 0x80, nil
	default:
		return 0, nil
	}
}

// readAuxCntl reconstructs the register's byte from live timer state
// rather than an independently stored copy, per spec.md §4.3's AuxCntl
// row ("reconstruct from timer/shift state"). The shift-mode field is
// hardwired to ShiftOutUnder02 (0b110): it's the only mode this platform
// exercises, per DESIGN.md's decision to keep the shift register a plain
// byte register rather than a fully clocked one.
func (v *Via) readAuxCntl() uint8 {
	aux := uint8(auxShiftOutUnder02) << auxShiftModeShift
	if v.timer1Mode() == FreeRunning {
		aux |= auxT1FreeRunning
	}
	if v.timer2Mode() == PulseCounting {
		aux |= auxT2PulseCounting
	}
	if v.timer1.PB7Flag() {
		aux |= auxPB7Flag
	}
	return aux
}

func (v *Via) readInterruptFlag() uint8 {
	var flag uint8
	if v.timer1.FiredThisUpdate() || v.interruptFlag&ifT1 != 0 {
		flag |= ifT1
	}
	if v.timer2.FiredThisUpdate() || v.interruptFlag&ifT2 != 0 {
		flag |= ifT2
	}
	return flag
}

// Write stores value at the given VIA register.
func (v *Via) Write(reg Register, value uint8) error {
	switch reg {
	case RegPortB:
		v.portB = value
		v.updateIntegrators()
	case RegPortA, RegPortANoHandshake:
		v.portA = value
		if v.ddrA == 0xFF {
			v.updateIntegrators()
		}
	case RegDDRB:
		v.ddrB = value
	case RegDDRA:
		if value != 0x00 && value != 0xFF {
			return vxerrors.New(vxerrors.AssertViolation, "DDRA must be $00 or $FF, got $%02X", value)
		}
		v.ddrA = value
	case RegTimer1CounterLo:
		v.timer1.SetLatchLow(value)
	case RegTimer1CounterHi:
		v.timer1.SetLatchHigh(value)
		v.timer1.WriteStart()
		v.clearFlag(ifT1)
	case RegTimer1LatchLo:
		v.timer1.SetLatchLow(value)
	case RegTimer1LatchHi:
		v.timer1.SetLatchHigh(value)
		v.clearFlag(ifT1)
	case RegTimer2CounterLo:
		v.timer2.SetLatchLow(value)
	case RegTimer2CounterHi:
		v.timer2.SetLatchHigh(value)
		v.timer2.WriteStart()
		v.clearFlag(ifT2)
	case RegShiftRegister:
		v.shiftRegister = value
		v.clearFlag(ifSR)
	case RegAuxCntl:
		shiftMode := (value & auxShiftModeMask) >> auxShiftModeShift
		if shiftMode != auxShiftOutUnder02 {
			return vxerrors.New(vxerrors.AssertViolation, "AuxCntl shift mode $%02X unsupported, only ShiftOutUnder02 (0b110) is", shiftMode)
		}
		v.auxCntl = value
		v.timer1.SetMode(v.timer1Mode())
		v.timer2.SetMode(v.timer2Mode())
		v.timer1.SetPB7Flag(value&auxPB7Flag != 0)
	case RegPeriphCntl:
		ca2 := (value & pcrCA2Mask) >> pcrCA2Shift
		if ca2 != pcrFieldAsserted && ca2 != pcrFieldDeasserted {
			return vxerrors.New(vxerrors.AssertViolation, "PeriphCntl CA2 field $%02X must be 0b110 or 0b111", ca2)
		}
		cb2 := (value & pcrCB2Mask) >> pcrCB2Shift
		if cb2 != pcrFieldAsserted && cb2 != pcrFieldDeasserted {
			return vxerrors.New(vxerrors.AssertViolation, "PeriphCntl CB2 field $%02X must be 0b110 or 0b111", cb2)
		}
		v.periphCntl = value
	case RegInterruptFlag:
		v.interruptFlag &^= value
	case RegInterruptEnable:
		if value&0x80 != 0 {
			v.interruptEnable |= value & 0x7F
		} else {
			v.interruptEnable &^= value & 0x7F
		}
	}
	return nil
}

// updateIntegrators routes Port A's DAC output to whichever integrator
// or DAC Port B's mux-select bits currently name, per spec.md §4.3's
// UpdateIntegrators: MUX-gated when Port B bit 0 is clear, and always
// unconditionally driving the X-axis velocity integrator regardless of
// mux state.
func (v *Via) updateIntegrators() {
	if v.portB&pbMuxDisabled == 0 {
		switch muxSelect(v.portB) {
		case muxVelocityY:
			v.beam.velocityY = int8(v.portA)
		case muxXYOffset:
			v.beam.xyOffset = int8(v.portA)
		case muxBrightness:
			v.beam.brightness = v.portA
		case muxSound:
			// Connected to the sound output line via a divider network;
			// analogue audio synthesis is out of scope for this core.
		}
	}
	v.beam.velocityX = int8(v.portA)
}

func (v *Via) readPortB() uint8 {
	result := v.portB
	sel := muxSelect(v.portB)
	comparator := int8(v.portA) < v.joystickAnalogState[sel]
	if comparator {
		result |= pbComparator
	} else {
		result &^= pbComparator
	}
	return result
}

func (v *Via) readPortA() uint8 {
	// Digital joystick reads are routed through Port A only when the
	// sound-select lines pick that mode and DDRA is configured for
	// input; otherwise Port A reads back whatever was last latched.
	if v.portB&pbSoundBDir == 0 && v.portB&pbSoundBC1 != 0 && v.ddrA == 0x00 {
		return v.joystickButtonState
	}
	return v.portA
}

// Update advances the VIA by the given number of CPU cycles, ticking
// both timers, integrating the beam's position, and emitting completed
// line segments through render. This mirrors the per-cycle loop the
// original hardware effectively performs continuously; it must not be
// collapsed into a single bulk update; the beam integrator and timer
// edges only line up correctly one cycle at a time.
func (v *Via) Update(cycles int, render host.RenderContext) error {
	v.cacheInputState()

	for i := 0; i < cycles; i++ {
		v.timer1.Update(1, 0)
		if v.timer1.FiredThisUpdate() {
			v.setFlag(ifT1)
		}
		v.timer2.Update(1, 0)
		if v.timer2.FiredThisUpdate() {
			v.setFlag(ifT2)
		}

		// Timer 1's PB7 output, when enabled, is copied into RampDisabled:
		// PB7 stays high while the timer counts down, so the integrators
		// run for exactly as long as the countdown and stop once a one-shot
		// expiry drives PB7 low -- the mechanism the BIOS uses to draw
		// lines of a precisely timed length.
		if v.timer1.PB7Flag() {
			if v.timer1.PB7SignalLow() {
				v.portB |= pbRampDisabled
			} else {
				v.portB &^= pbRampDisabled
			}
		}

		v.stepBeam(render)
	}
	return nil
}

// cacheInputState snapshots the controller's button and analogue axis
// state once per Update call, per spec.md §4.3.
func (v *Via) cacheInputState() {
	if v.input == nil {
		v.joystickButtonState = 0
		v.joystickAnalogState = [4]int8{}
		return
	}

	var buttons uint8
	for controller := 0; controller < 2; controller++ {
		for button := 0; button < 4; button++ {
			if v.input.ButtonPressed(controller, button) {
				buttons |= 1 << (controller*4 + button)
			}
		}
	}
	v.joystickButtonState = buttons

	v.joystickAnalogState[0] = axisToInt8(v.input.AxisValue(0, host.AxisX))
	v.joystickAnalogState[1] = axisToInt8(v.input.AxisValue(0, host.AxisY))
	v.joystickAnalogState[2] = axisToInt8(v.input.AxisValue(1, host.AxisX))
	v.joystickAnalogState[3] = axisToInt8(v.input.AxisValue(1, host.AxisY))
}

func axisToInt8(v float32) int8 {
	return int8(v * 127)
}

// stepBeam performs one cycle's worth of VIA beam-drawing side effects,
// in the order spec.md §4.3 lists them: /ZERO snap, RAMP-gated
// integration, then a brightness- and /BLANK-gated line emission. /ZERO
// and RAMP are independent lines -- snapping to origin doesn't suppress
// integration or drawing that same cycle, and RAMP being disabled
// doesn't suppress drawing either, since the BIOS draws stationary dots
// by parking the beam with the integrators off.
func (v *Via) stepBeam(render host.RenderContext) {
	if v.zeroEnabled() {
		v.beam.x, v.beam.y = 0, 0
	}

	prevX, prevY := v.beam.x, v.beam.y
	if v.rampEnabled() {
		v.beam.x += (float32(v.beam.velocityX) + float32(v.beam.xyOffset)) / 128
		v.beam.y += (float32(v.beam.velocityY) + float32(v.beam.xyOffset)) / 128
	}

	if !v.blankEnabled() && v.beam.brightness > 0 && v.beam.brightness <= 128 && render != nil {
		render.DrawLine(prevX, prevY, v.beam.x, v.beam.y, v.beam.brightness)
	}
}
