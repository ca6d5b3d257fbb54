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

package registers

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDOverlaysAAndB(t *testing.T) {
	cases := []struct {
		a, b uint8
		d    uint16
	}{
		{0x00, 0x00, 0x0000},
		{0x42, 0x00, 0x4200},
		{0x00, 0x42, 0x0042},
		{0xFF, 0xFF, 0xFFFF},
		{0x12, 0x34, 0x1234},
	}
	for _, c := range cases {
		var r Registers
		r.A, r.B = c.a, c.b
		if got := r.D(); got != c.d {
			t.Errorf("A=$%02X B=$%02X: D()=$%04X, want $%04X", c.a, c.b, got, c.d)
		}
	}
}

func TestSetDOverlaysAAndB(t *testing.T) {
	var r Registers
	r.SetD(0xABCD)
	if r.A != 0xAB || r.B != 0xCD {
		t.Errorf("SetD($ABCD): A=$%02X B=$%02X, want A=$AB B=$CD", r.A, r.B)
	}
	if r.D() != 0xABCD {
		t.Errorf("D() after SetD($ABCD) = $%04X, want $ABCD", r.D())
	}
}

func TestCCFlags(t *testing.T) {
	var cc CC
	cc.Set(FlagC, true)
	cc.Set(FlagZ, true)
	if !cc.Get(FlagC) || !cc.Get(FlagZ) {
		t.Fatal("expected C and Z set")
	}
	if cc.Get(FlagN) || cc.Get(FlagV) {
		t.Fatal("expected N and V clear")
	}
	cc.Set(FlagC, false)
	if cc.Get(FlagC) {
		t.Fatal("expected C clear after Set(FlagC, false)")
	}
	if cc.Value() != uint8(FlagZ) {
		t.Errorf("Value() = $%02X, want $%02X", cc.Value(), uint8(FlagZ))
	}
}

func TestCCString(t *testing.T) {
	var cc CC
	cc.SetValue(0)
	if got, want := cc.String(), "efhinzvc"; got != want {
		t.Errorf("String() with no flags = %q, want %q", got, want)
	}
	cc.Set(FlagC, true)
	cc.Set(FlagN, true)
	if got, want := cc.String(), "efhiNzvC"; got != want {
		t.Errorf("String() with N,C set = %q, want %q", got, want)
	}
}

func TestProgramCounterOffset(t *testing.T) {
	var pc ProgramCounter
	pc.SetValue(0x1000)
	pc.Offset(10)
	if pc.Value() != 0x100A {
		t.Errorf("Offset(10) from $1000 = $%04X, want $100A", pc.Value())
	}
	pc.Offset(-20)
	if pc.Value() != 0x0FF6 {
		t.Errorf("Offset(-20) from $100A = $%04X, want $0FF6", pc.Value())
	}
}

func TestProgramCounterOffsetWrapsAround(t *testing.T) {
	var pc ProgramCounter
	pc.SetValue(0x0005)
	pc.Offset(-10)
	if pc.Value() != 0xFFFB {
		t.Errorf("Offset(-10) from $0005 = $%04X, want $FFFB", pc.Value())
	}
}

func TestGet16Set16RoundTrip(t *testing.T) {
	ids := []RegisterID{RegD, RegX, RegY, RegU, RegS, RegPC}
	for _, id := range ids {
		var r Registers
		r.Set16(id, 0x1234)
		if got := r.Get16(id); got != 0x1234 {
			t.Errorf("%s: Get16 after Set16($1234) = $%04X, want $1234", id.Name(), got)
		}
	}
}

func TestGet16ByteRegistersSignExtendBySplatting(t *testing.T) {
	var r Registers
	r.A = 0x7F
	if got, want := r.Get16(RegA), uint16(0x7F7F); got != want {
		t.Errorf("Get16(RegA) with A=$7F = $%04X, want $%04X", got, want)
	}
}

func TestSet16ByteRegistersTruncate(t *testing.T) {
	var r Registers
	r.Set16(RegA, 0x1299)
	if r.A != 0x99 {
		t.Errorf("Set16(RegA, $1299): A=$%02X, want $99", r.A)
	}
}

func TestIsByteSized(t *testing.T) {
	byteSized := []RegisterID{RegA, RegB, RegCC, RegDP}
	wordSized := []RegisterID{RegD, RegX, RegY, RegU, RegS, RegPC}
	for _, id := range byteSized {
		if !id.IsByteSized() {
			t.Errorf("%s: IsByteSized() = false, want true", id.Name())
		}
	}
	for _, id := range wordSized {
		if id.IsByteSized() {
			t.Errorf("%s: IsByteSized() = true, want false", id.Name())
		}
	}
}

func TestRegisterIDNameUnknownIsDoubleQuestionMark(t *testing.T) {
	if got := RegisterID(0x6).Name(); got != "??" {
		t.Errorf("Name() for reserved nibble 0x6 = %q, want \"??\"", got)
	}
}

// TestFullRegisterSnapshotAfterMixedWrites exercises A/B/D overlay, a
// 16-bit register write, and a CC flag write together, then diffs the
// whole Registers value against a hand-built expectation in one shot
// rather than field-by-field, so a future field addition to Registers
// that this test doesn't know about shows up as a diff instead of
// silently passing.
func TestFullRegisterSnapshotAfterMixedWrites(t *testing.T) {
	var r Registers
	r.SetD(0x1234)
	r.Set16(RegX, 0xBEEF)
	r.DP = 0x90
	r.CC.Set(FlagC, true)
	r.CC.Set(FlagZ, true)

	want := Registers{
		A:  0x12,
		B:  0x34,
		DP: 0x90,
		X:  0xBEEF,
	}
	want.CC.Set(FlagC, true)
	want.CC.Set(FlagZ, true)

	if diff := cmp.Diff(want, r, cmp.AllowUnexported(CC{}, ProgramCounter{})); diff != "" {
		t.Errorf("Registers snapshot mismatch (-want +got):\n%s", diff)
	}
}
