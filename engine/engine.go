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

// Package engine owns a single console instance -- the memory bus, CPU,
// VIA, and the debugger wrapped around them -- wired onto the fixed
// memory map a Vectrex-class console exposes, and adapts that instance
// to host.IEngineClient so any front end can drive it through
// Init/Update/Render/Shutdown without reaching into the hardware
// directly.
package engine

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vectrexy/vectrexy/debugger"
	"github.com/vectrexy/vectrexy/hardware/cpu"
	"github.com/vectrexy/vectrexy/hardware/memory"
	"github.com/vectrexy/vectrexy/hardware/via"
	"github.com/vectrexy/vectrexy/host"
	"github.com/vectrexy/vectrexy/symbols"
	"github.com/vectrexy/vectrexy/syncproto"
)

// The fixed memory map a Vectrex-class console exposes. These are a
// platform constant, not something a cartridge or BIOS image negotiates,
// so cartridges and BIOS images are padded or truncated to fit exactly
// rather than mapped at their own natural size.
const (
	cartridgeStart = 0x0000
	cartridgeSize  = 0x8000

	ramStart = 0xC800
	ramSize  = 0x0800

	viaStart = 0xD000
	viaSize  = 0x0800

	biosStart = 0xE000
	biosSize  = 0x2000
)

// Config collects everything needed to build an Engine. cmd/vectrexy
// populates one from command-line flags; tests can populate one
// directly.
type Config struct {
	CartridgePath string
	BiosPath      string
	SymbolsPath   string
	StartupPath   string

	// Sync is the determinism-hash transport the debugger should use.
	// Nil means syncproto.NewStandalone().
	Sync syncproto.Protocol

	// In/Out are the debugger REPL's command source and output sink.
	// Nil means os.Stdin/os.Stdout.
	In  io.Reader
	Out io.Writer
}

// inputLatch adapts host.Input for the VIA, which is wired to its input
// source once at construction time: each call to Update hands the
// engine a fresh host.Input (the host's current controller snapshot),
// and inputLatch simply remembers the most recent one so the VIA always
// reads through to this frame's state without needing to be rewired.
type inputLatch struct {
	current host.Input
}

func (l *inputLatch) ButtonPressed(controller, button int) bool {
	if l.current == nil {
		return false
	}
	return l.current.ButtonPressed(controller, button)
}

func (l *inputLatch) AxisValue(controller int, axis host.AxisID) float32 {
	if l.current == nil {
		return 0
	}
	return l.current.AxisValue(controller, axis)
}

// line is one segment the VIA's beam integrator produced during a
// frame's worth of Update calls.
type line struct {
	x0, y0, x1, y1 float32
	brightness     uint8
}

// frameBuffer is the host.RenderContext the debugger's instrumented
// step loop draws into during Update: the VIA emits one short segment
// for every unblanked cycle, many thousands within a single host frame,
// well before the host is ready to actually render anything. frameBuffer just accumulates those
// segments so Render can hand them to the host's real RenderContext in
// one batch, once per frame, the way a host frame callback expects.
type frameBuffer struct {
	lines []line
}

func (b *frameBuffer) DrawLine(x0, y0, x1, y1 float32, brightness uint8) {
	b.lines = append(b.lines, line{x0, y0, x1, y1, brightness})
}

func (b *frameBuffer) flushTo(render host.RenderContext) {
	for _, l := range b.lines {
		render.DrawLine(l.x0, l.y0, l.x1, l.y1, l.brightness)
	}
	b.lines = b.lines[:0]
}

// Engine is one console instance, satisfying host.IEngineClient.
type Engine struct {
	bus *memory.Bus
	cpu *cpu.CPU
	via *via.Via
	dbg *debugger.Debugger

	input *inputLatch
	frame *frameBuffer
}

// New loads the cartridge and BIOS images named in cfg, wires the fixed
// memory map, and builds the debugger around the result.
func New(cfg Config) (*Engine, error) {
	cart, err := memory.LoadCartridge(cfg.CartridgePath, cartridgeSize)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	biosData, err := os.ReadFile(cfg.BiosPath)
	if err != nil {
		return nil, fmt.Errorf("engine: reading bios %s: %w", cfg.BiosPath, err)
	}
	bios := memory.NewROM(padOrTruncate(biosData, biosSize))

	bus := memory.New()
	bus.Connect(cart, memory.Range{Start: cartridgeStart, End: cartridgeStart + cartridgeSize - 1})
	bus.Connect(memory.Unmapped{}, memory.Range{Start: cartridgeStart + cartridgeSize, End: ramStart - 1})
	bus.Connect(memory.NewRAM(ramSize), memory.Range{Start: ramStart, End: ramStart + ramSize - 1})
	bus.Connect(memory.Unmapped{}, memory.Range{Start: ramStart + ramSize, End: viaStart - 1})

	input := &inputLatch{}
	v := via.New(input)
	bus.Connect(via.NewBusDevice(v), memory.Range{Start: viaStart, End: viaStart + viaSize - 1})
	bus.Connect(memory.Unmapped{}, memory.Range{Start: viaStart + viaSize, End: biosStart - 1})
	bus.Connect(bios, memory.Range{Start: biosStart, End: biosStart + biosSize - 1})

	c := cpu.New(bus)
	if err := c.Reset(); err != nil {
		return nil, fmt.Errorf("engine: resetting cpu: %w", err)
	}

	sync := cfg.Sync
	if sync == nil {
		sync = syncproto.NewStandalone()
	}
	in, out := cfg.In, cfg.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	dbg := debugger.New(bus, c, v, sync, in, out)

	if cfg.SymbolsPath != "" {
		syms, err := symbols.LoadFile(cfg.SymbolsPath)
		if err != nil {
			return nil, fmt.Errorf("engine: loading symbols: %w", err)
		}
		dbg.SetSymbols(syms)
	}

	if cfg.StartupPath != "" {
		f, err := os.Open(cfg.StartupPath)
		if err != nil {
			return nil, fmt.Errorf("engine: opening startup commands %s: %w", cfg.StartupPath, err)
		}
		err = dbg.QueueStartupCommands(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("engine: reading startup commands %s: %w", cfg.StartupPath, err)
		}
	}

	return &Engine{bus: bus, cpu: c, via: v, dbg: dbg, input: input, frame: &frameBuffer{}}, nil
}

func padOrTruncate(data []byte, size int) []byte {
	out := make([]byte, size)
	n := len(data)
	if n > size {
		n = size
	}
	copy(out, data[:n])
	return out
}

// Debugger returns the Engine's debugger, so a caller can break into it,
// queue commands, or read the determinism hash without the Engine
// needing to proxy every such method itself.
func (e *Engine) Debugger() *debugger.Debugger { return e.dbg }

// Init satisfies host.IEngineClient. The console has nothing left to set
// up once New has already succeeded.
func (e *Engine) Init() error { return nil }

// Update advances the emulation by delta, the host's frame time, per
// spec.md §4.5's frame-time-budgeted cycle stepping. Any vector segments
// the VIA produces along the way accumulate in the Engine's frame
// buffer rather than reaching the host directly.
func (e *Engine) Update(delta time.Duration, input host.Input) error {
	e.input.current = input
	return e.dbg.FrameUpdate(delta.Seconds(), e.frame)
}

// Render flushes this frame's accumulated vector segments to render.
func (e *Engine) Render(render host.RenderContext) error {
	e.frame.flushTo(render)
	return nil
}

// Shutdown satisfies host.IEngineClient. There is no persistent state
// the Engine itself owns that needs flushing on exit; a front end that
// wants option persistence does that itself via the options package.
func (e *Engine) Shutdown() error { return nil }

// Quit reports whether the debugger's "quit" command has been issued.
func (e *Engine) Quit() bool { return e.dbg.Quit() }
