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

package via

import (
	"testing"

	"github.com/vectrexy/vectrexy/host"
	"github.com/vectrexy/vectrexy/vxerrors"
)

func TestDDRAndPortRegisterRoundTrip(t *testing.T) {
	v := New(nil)

	if err := v.Write(RegDDRB, 0xFF); err != nil {
		t.Fatalf("Write(DDRB): %v", err)
	}
	// $1A has the Comparator bit (bit 5) clear, so its value survives a
	// read unchanged: with no input wired, the recomputed Comparator bit
	// is always false too.
	if err := v.Write(RegPortB, 0x1A); err != nil {
		t.Fatalf("Write(PortB): %v", err)
	}
	got, err := v.Read(RegPortB)
	if err != nil {
		t.Fatalf("Read(PortB): %v", err)
	}
	if got != 0x1A {
		t.Errorf("PortB readback = $%02X, want $1A", got)
	}

	gotDDR, err := v.Read(RegDDRB)
	if err != nil {
		t.Fatalf("Read(DDRB): %v", err)
	}
	if gotDDR != 0xFF {
		t.Errorf("DDRB readback = $%02X, want $FF", gotDDR)
	}
}

func TestTimer1InterruptFlagClearsOnCounterLowRead(t *testing.T) {
	v := New(nil)

	if err := v.Write(RegInterruptEnable, 0x80|ifT1); err != nil {
		t.Fatalf("Write(InterruptEnable): %v", err)
	}
	if err := v.Write(RegTimer1LatchLo, 0); err != nil {
		t.Fatalf("Write(Timer1LatchLo): %v", err)
	}
	if err := v.Write(RegTimer1CounterHi, 0); err != nil {
		t.Fatalf("Write(Timer1CounterHi): %v", err)
	}

	if err := v.Update(1, nil); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !v.InterruptAsserted() {
		t.Fatal("expected IRQ asserted after timer1 expiry")
	}

	if _, err := v.Read(RegTimer1CounterLo); err != nil {
		t.Fatalf("Read(Timer1CounterLo): %v", err)
	}
	if v.InterruptAsserted() {
		t.Fatal("expected IRQ cleared after reading Timer1CounterLo")
	}
}

func TestInterruptEnableWriteRespectsSetClearBit(t *testing.T) {
	v := New(nil)

	if err := v.Write(RegInterruptEnable, 0x80|ifT1|ifT2); err != nil {
		t.Fatalf("Write(InterruptEnable set): %v", err)
	}
	got, _ := v.Read(RegInterruptEnable)
	if got&(ifT1|ifT2) != ifT1|ifT2 {
		t.Errorf("InterruptEnable = $%02X, want T1 and T2 set", got)
	}

	if err := v.Write(RegInterruptEnable, ifT1); err != nil { // bit 7 clear: clears named bits
		t.Fatalf("Write(InterruptEnable clear): %v", err)
	}
	got, _ = v.Read(RegInterruptEnable)
	if got&ifT1 != 0 {
		t.Errorf("InterruptEnable T1 bit still set after clearing write")
	}
	if got&ifT2 == 0 {
		t.Errorf("InterruptEnable T2 bit cleared unexpectedly")
	}
}

// TestResetClearsRegistersButKeepsInput exercises Reset's one asymmetry:
// every register but Port B clears to zero, while Port B's RampDisabled
// bit comes back set, matching real hardware powering up with the beam
// integrators disabled.
func TestResetClearsRegistersButKeepsInput(t *testing.T) {
	v := New(fakeInputStub{})
	v.Write(RegPortB, 0x42)
	v.Reset()

	got, _ := v.Read(RegPortB)
	if got&pbRampDisabled == 0 {
		t.Errorf("PortB after Reset = $%02X, want RampDisabled bit set", got)
	}

	gotDDRA, _ := v.Read(RegDDRA)
	if gotDDRA != 0 {
		t.Errorf("DDRA after Reset = $%02X, want $00", gotDDRA)
	}

	if v.input == nil {
		t.Error("input source lost across Reset")
	}
}

func mustWrite(t *testing.T, v *Via, reg Register, value uint8) {
	t.Helper()
	if err := v.Write(reg, value); err != nil {
		t.Fatalf("Write(%v, $%02X): %v", reg, value, err)
	}
}

type recordingRenderContext struct {
	lines []drawnLine
}

type drawnLine struct {
	x0, y0, x1, y1 float32
	brightness     uint8
}

func (r *recordingRenderContext) DrawLine(x0, y0, x1, y1 float32, brightness uint8) {
	r.lines = append(r.lines, drawnLine{x0, y0, x1, y1, brightness})
}

// periphCntlValue builds a PeriphCntl byte from whether /ZERO and /BLANK
// should be asserted (0b110) or deasserted (0b111).
func periphCntlValue(zeroAsserted, blankAsserted bool) uint8 {
	ca2 := uint8(pcrFieldDeasserted)
	if zeroAsserted {
		ca2 = pcrFieldAsserted
	}
	cb2 := uint8(pcrFieldDeasserted)
	if blankAsserted {
		cb2 = pcrFieldAsserted
	}
	return ca2<<pcrCA2Shift | cb2<<pcrCB2Shift
}

// armRamp configures the VIA the way the BIOS does to draw a line:
// selects the brightness DAC, latches a brightness value, disables
// /ZERO and /BLANK, and clears RampDisabled so the integrators run.
func armRamp(t *testing.T, v *Via, velocityX, velocityY int8, brightness uint8) {
	t.Helper()
	mustWrite(t, v, RegPeriphCntl, periphCntlValue(false, false))
	mustWrite(t, v, RegDDRA, 0xFF)

	mustWrite(t, v, RegPortB, uint8(muxBrightness)<<pbMuxSelShift) // mux enabled, select brightness
	mustWrite(t, v, RegPortA, brightness)

	mustWrite(t, v, RegPortB, uint8(muxVelocityY)<<pbMuxSelShift)
	mustWrite(t, v, RegPortA, uint8(velocityY))

	// Disable the mux before the final write, so only the unconditional
	// X-axis integrator output latches -- leaving the mux on Y would
	// have this write clobber velocityY back to velocityX's value too.
	mustWrite(t, v, RegPortB, pbMuxDisabled)
	mustWrite(t, v, RegPortA, uint8(velocityX))
}

func TestBeamDrawsLineWhenRampEnabledAndNotBlanked(t *testing.T) {
	v := New(nil)
	armRamp(t, v, 64, 0, 100)

	render := &recordingRenderContext{}
	if err := v.Update(4, render); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(render.lines) == 0 {
		t.Fatal("expected DrawLine to be called while RAMP enabled and /BLANK deasserted")
	}
	for _, l := range render.lines {
		if l.brightness != 100 {
			t.Errorf("DrawLine brightness = %d, want 100", l.brightness)
		}
	}
	if render.lines[len(render.lines)-1].x1 <= render.lines[0].x0 {
		t.Error("expected beam X position to advance with a positive X velocity")
	}
}

func TestBlankSuppressesDrawing(t *testing.T) {
	v := New(nil)
	armRamp(t, v, 64, 0, 100)
	mustWrite(t, v, RegPeriphCntl, periphCntlValue(false, true)) // /BLANK asserted

	render := &recordingRenderContext{}
	if err := v.Update(4, render); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(render.lines) != 0 {
		t.Fatalf("expected no lines drawn while /BLANK asserted, got %d", len(render.lines))
	}
}

func TestZeroSnapsBeamToOrigin(t *testing.T) {
	v := New(nil)
	armRamp(t, v, 64, 64, 100)
	if err := v.Update(10, &recordingRenderContext{}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if v.beam.x == 0 && v.beam.y == 0 {
		t.Fatal("expected beam to have moved off origin before asserting /ZERO")
	}

	// The snap happens before the same cycle's integration, so stop the
	// integrators first to observe the beam resting at the origin.
	mustWrite(t, v, RegPortB, pbRampDisabled|pbMuxDisabled)
	mustWrite(t, v, RegPeriphCntl, periphCntlValue(true, false)) // /ZERO asserted
	if err := v.Update(1, &recordingRenderContext{}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if v.beam.x != 0 || v.beam.y != 0 {
		t.Errorf("beam position after /ZERO = (%v, %v), want (0, 0)", v.beam.x, v.beam.y)
	}
}

func TestRampDisabledStopsIntegrationButStillDraws(t *testing.T) {
	v := New(nil)
	armRamp(t, v, 64, 0, 100)
	mustWrite(t, v, RegPortB, pbRampDisabled|uint8(muxVelocityY)<<pbMuxSelShift)

	render := &recordingRenderContext{}
	if err := v.Update(4, render); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(render.lines) == 0 {
		t.Fatal("expected dots to still be drawn while RAMP is disabled")
	}
	for _, l := range render.lines {
		if l.x0 != l.x1 || l.y0 != l.y1 {
			t.Errorf("line %+v moved position while RAMP disabled", l)
		}
	}
}

func TestPB7DrivesRampWhileTimer1Runs(t *testing.T) {
	v := New(nil)
	v.Reset() // RampDisabled starts set
	mustWrite(t, v, RegAuxCntl, auxPB7Flag|auxShiftOutUnder02<<auxShiftModeShift)
	mustWrite(t, v, RegTimer1LatchLo, 3)
	mustWrite(t, v, RegTimer1LatchHi, 0)
	mustWrite(t, v, RegTimer1CounterHi, 0) // reload+start, PB7 goes high

	if err := v.Update(1, &recordingRenderContext{}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !v.rampEnabled() {
		t.Fatal("expected RAMP enabled once Timer1's PB7 output mirrors in as high")
	}

	if err := v.Update(4, &recordingRenderContext{}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if v.rampEnabled() {
		t.Fatal("expected RAMP disabled after Timer1's one-shot expiry pulled PB7 low")
	}
}

func TestAuxCntlReadReconstructsFromTimerState(t *testing.T) {
	v := New(nil)
	mustWrite(t, v, RegAuxCntl, auxT1FreeRunning|auxT2PulseCounting|auxShiftOutUnder02<<auxShiftModeShift)

	got, err := v.Read(RegAuxCntl)
	if err != nil {
		t.Fatalf("Read(AuxCntl): %v", err)
	}
	want := uint8(auxT1FreeRunning | auxT2PulseCounting | auxShiftOutUnder02<<auxShiftModeShift)
	if got != want {
		t.Errorf("Read(AuxCntl) = $%02X, want $%02X", got, want)
	}
}

func TestWriteInvalidDDRARaisesAssertViolation(t *testing.T) {
	v := New(nil)
	err := v.Write(RegDDRA, 0x0F)
	if err == nil {
		t.Fatal("expected an error for a non-$00/$FF DDRA write")
	}
	vxerr, ok := err.(*vxerrors.Error)
	if !ok || vxerr.Kind != vxerrors.AssertViolation {
		t.Errorf("Write(DDRA, $0F) error = %v, want AssertViolation", err)
	}
}

func TestWriteInvalidPeriphCntlRaisesAssertViolation(t *testing.T) {
	v := New(nil)
	err := v.Write(RegPeriphCntl, 0x00) // CA2 field 0b000, neither 0b110 nor 0b111
	if err == nil {
		t.Fatal("expected an error for an invalid PeriphCntl CA2 field")
	}
	vxerr, ok := err.(*vxerrors.Error)
	if !ok || vxerr.Kind != vxerrors.AssertViolation {
		t.Errorf("Write(PeriphCntl, $00) error = %v, want AssertViolation", err)
	}
}

// fakeInputStub satisfies host.Input minimally for the Reset test, which
// only cares that the reference survives Reset -- it never actually
// reads through it.
type fakeInputStub struct{}

func (fakeInputStub) ButtonPressed(controller, button int) bool          { return false }
func (fakeInputStub) AxisValue(controller int, axis host.AxisID) float32 { return 0 }
