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

package debugger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vectrexy/vectrexy/hardware/cpu"
	"github.com/vectrexy/vectrexy/hardware/memory"
	"github.com/vectrexy/vectrexy/hardware/via"
	"github.com/vectrexy/vectrexy/syncproto"
)

// newTestDebugger wires a real Bus/CPU/Via together over a single flat
// 64K RAM region, the way engine.Engine does for the real memory map but
// simplified to one device so tests can poke any address directly.
func newTestDebugger(t *testing.T) (*Debugger, *memory.Bus, *bytes.Buffer) {
	t.Helper()
	bus := memory.New()
	bus.Connect(memory.NewRAM(0x10000), memory.Range{Start: 0x0000, End: 0xFFFF})

	c := cpu.New(bus)
	v := via.New(nil)

	var out bytes.Buffer
	d := New(bus, c, v, syncproto.NewStandalone(), strings.NewReader(""), &out)
	return d, bus, &out
}

func TestAwatchBreaksOnWrite(t *testing.T) {
	d, bus, out := newTestDebugger(t)

	// STA $2000 at $C000: B7 20 00.
	bus.Write(0xC000, 0xB7)
	bus.Write(0xC001, 0x20)
	bus.Write(0xC002, 0x00)
	d.cpu.Registers().PC.SetValue(0xC000)
	d.cpu.Registers().A = 0x42

	d.dispatch("awatch $2000")

	if err := d.FrameUpdate(1.0, nil); err != nil {
		t.Fatalf("FrameUpdate: %v", err)
	}

	if !d.Broken() {
		t.Fatal("expected debugger to break on watchpoint hit")
	}
	if !strings.Contains(out.String(), "Watchpoint hit at $2000 (write value $42)") {
		t.Errorf("output = %q, want watchpoint-hit message", out.String())
	}
}

func TestBreakpointHaltsAtAddress(t *testing.T) {
	d, bus, out := newTestDebugger(t)

	// NOP at $C000, NOP at $C001, breakpoint at $C001.
	bus.Write(0xC000, 0x12) // NOP
	bus.Write(0xC001, 0x12) // NOP
	d.cpu.Registers().PC.SetValue(0xC000)

	d.dispatch("break $C001")
	if err := d.FrameUpdate(1.0, nil); err != nil {
		t.Fatalf("FrameUpdate: %v", err)
	}

	if !d.Broken() {
		t.Fatal("expected debugger to break at breakpoint")
	}
	if d.cpu.Registers().PC.Value() != 0xC001 {
		t.Errorf("PC = $%04X, want $C001", d.cpu.Registers().PC.Value())
	}
	if !strings.Contains(out.String(), "Breakpoint 1 hit at $C001") {
		t.Errorf("output = %q, want breakpoint-hit message", out.String())
	}
}

func TestUntilAutoDeletesAfterHit(t *testing.T) {
	d, bus, _ := newTestDebugger(t)
	bus.Write(0xC000, 0x12)
	bus.Write(0xC001, 0x12)
	d.cpu.Registers().PC.SetValue(0xC000)

	d.dispatch("until $C001")
	if err := d.FrameUpdate(1.0, nil); err != nil {
		t.Fatalf("FrameUpdate: %v", err)
	}
	if len(d.breakpoints.All()) != 0 {
		t.Errorf("expected auto-delete breakpoint to be removed after hit, have %d", len(d.breakpoints.All()))
	}
}

func TestPrintAndSetRoundTrip(t *testing.T) {
	d, _, out := newTestDebugger(t)

	d.dispatch("set $1000=$7A")
	out.Reset()
	d.dispatch("print $1000")
	if got := out.String(); got != "$1000: $7A\n" {
		t.Errorf("print output = %q, want %q", got, "$1000: $7A\n")
	}
}

func TestPrintInvalidAddressReportsInvalidRead(t *testing.T) {
	bus := memory.New() // no devices connected at all
	c := cpu.New(bus)
	v := via.New(nil)
	var out bytes.Buffer
	d := New(bus, c, v, syncproto.NewStandalone(), strings.NewReader(""), &out)

	d.dispatch("print $1000")
	if got := out.String(); got != "INVALID_READ\n" {
		t.Errorf("output = %q, want %q", got, "INVALID_READ\n")
	}
}

func TestStepAdvancesOneInstructionAndBreaks(t *testing.T) {
	d, bus, _ := newTestDebugger(t)
	bus.Write(0xC000, 0x86) // LDA #imm
	bus.Write(0xC001, 0x42)
	d.cpu.Registers().PC.SetValue(0xC000)
	d.broken = true

	d.dispatch("step")

	if !d.Broken() {
		t.Fatal("expected debugger to remain broken after a single step")
	}
	if d.cpu.Registers().A != 0x42 {
		t.Errorf("A = $%02X, want $42", d.cpu.Registers().A)
	}
	if d.cpu.Registers().PC.Value() != 0xC002 {
		t.Errorf("PC = $%04X, want $C002", d.cpu.Registers().PC.Value())
	}
}

func TestEmptyCommandRepeatsLastCommand(t *testing.T) {
	d, bus, _ := newTestDebugger(t)
	bus.Write(0xC000, 0x86)
	bus.Write(0xC001, 0x11)
	bus.Write(0xC002, 0x86)
	bus.Write(0xC003, 0x22)
	d.cpu.Registers().PC.SetValue(0xC000)
	d.broken = true

	d.dispatch("step")
	d.dispatch("") // repeats "step"

	if d.cpu.Registers().A != 0x22 {
		t.Errorf("A after repeated step = $%02X, want $22", d.cpu.Registers().A)
	}
}

func TestInvalidCommandReportsError(t *testing.T) {
	d, _, out := newTestDebugger(t)
	d.dispatch("frobnicate")
	if got := out.String(); got != "Invalid command: frobnicate\n" {
		t.Errorf("output = %q, want %q", got, "Invalid command: frobnicate\n")
	}
}

func TestLoadSymbolsMissingFileReportsIOError(t *testing.T) {
	d, _, out := newTestDebugger(t)
	d.dispatch("loadsymbols /nonexistent/path/to/symbols.txt")
	if !strings.Contains(out.String(), "IOError") {
		t.Errorf("output = %q, want an IOError report", out.String())
	}
}

func TestTraceDumpRendersRecordedInstructions(t *testing.T) {
	d, bus, out := newTestDebugger(t)
	bus.Write(0xC000, 0x86) // LDA #$42
	bus.Write(0xC001, 0x42)
	d.cpu.Registers().PC.SetValue(0xC000)
	d.dispatch("break $C002") // stop right after the LDA executes

	if err := d.FrameUpdate(1.0, nil); err != nil {
		t.Fatalf("FrameUpdate: %v", err)
	}

	out.Reset()
	d.dispatch("trace -n 1")
	if !strings.Contains(out.String(), "LDA #$42") {
		t.Errorf("trace output = %q, want it to contain the executed instruction", out.String())
	}
}

func TestOptionErrorsSetsPolicyAcrossKinds(t *testing.T) {
	d, _, out := newTestDebugger(t)
	d.dispatch("option errors fail")
	if out.Len() != 0 {
		t.Errorf("valid policy change produced unexpected output: %q", out.String())
	}

	d.dispatch("option errors bogus")
	if !strings.Contains(out.String(), "Invalid command") {
		t.Errorf("output = %q, want an invalid-command report for a bad policy name", out.String())
	}
}
