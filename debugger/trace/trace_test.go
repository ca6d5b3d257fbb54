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

package trace

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vectrexy/vectrexy/hardware/cpu/registers"
)

func TestRingNeverExceedsCapacityAndOverwritesOldest(t *testing.T) {
	r := &Ring{entries: make([]Info, 4)}
	for i := 0; i < 6; i++ {
		r.Record(Info{PC: uint16(i)})
	}
	if r.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 (bounded by capacity)", r.Len())
	}
	newest, ok := r.At(0)
	if !ok || newest.PC != 5 {
		t.Fatalf("At(0) = %+v, ok=%v; want PC=5", newest, ok)
	}
	oldest, ok := r.At(3)
	if !ok || oldest.PC != 2 {
		t.Fatalf("At(3) = %+v, ok=%v; want PC=2 (entries 0,1 overwritten)", oldest, ok)
	}
	if _, ok := r.At(4); ok {
		t.Fatal("At(4) should be unavailable, only 4 entries are live")
	}
}

func TestRingRecentReturnsOldestFirst(t *testing.T) {
	r := &Ring{entries: make([]Info, 8)}
	for i := 0; i < 3; i++ {
		info := Info{PC: uint16(i), Mnemonic: "LDA"}
		info.PostRegs.A = uint8(i)
		r.Record(info)
	}
	got := r.Recent(3)

	want := make([]Info, 3)
	for i := range want {
		want[i] = Info{PC: uint16(i), Mnemonic: "LDA"}
		want[i].PostRegs.A = uint8(i)
	}

	opts := cmp.AllowUnexported(registers.CC{}, registers.ProgramCounter{})
	if diff := cmp.Diff(want, got, opts); diff != "" {
		t.Errorf("Recent(3) mismatch (-want +got):\n%s", diff)
	}
}

func TestRingRecentClampsToLen(t *testing.T) {
	r := &Ring{entries: make([]Info, 8)}
	r.Record(Info{PC: 1})
	got := r.Recent(10)
	if len(got) != 1 {
		t.Fatalf("Recent(10) with only 1 entry recorded = %d entries, want 1", len(got))
	}
}

func TestHashStateEqualForIdenticalSequences(t *testing.T) {
	mk := func() Info {
		info := Info{PC: 0x1000, OpCode: 0x86, Mode: 0, Page: 0, Cycles: 2}
		info.AddAccess(0x1000, 0x86, false)
		info.PreRegs.A = 0
		info.PostRegs.A = 0x42
		return info
	}

	var h1, h2 HashState
	for i := 0; i < 5; i++ {
		h1.Add(mk())
		h2.Add(mk())
	}
	if h1.Value() != h2.Value() {
		t.Fatalf("identical instruction sequences produced different hashes: %08X vs %08X", h1.Value(), h2.Value())
	}
}

func TestHashStateDetectsSingleByteDivergence(t *testing.T) {
	base := Info{PC: 0x1000, OpCode: 0x86, Mode: 0, Page: 0, Cycles: 2}
	base.PostRegs.A = 0x42

	diverged := base
	diverged.PostRegs.A = 0x43

	var h1, h2 HashState
	h1.Add(base)
	h2.Add(diverged)
	if h1.Value() == h2.Value() {
		t.Fatal("a single-byte divergence in post-registers should change the hash")
	}
}

func TestAddAccessDropsPastMaxMemoryAccesses(t *testing.T) {
	var info Info
	for i := 0; i < maxMemoryAccesses+5; i++ {
		info.AddAccess(uint16(i), byte(i), false)
	}
	if len(info.Accesses) != maxMemoryAccesses {
		t.Fatalf("Accesses len = %d, want capped at %d", len(info.Accesses), maxMemoryAccesses)
	}
}
