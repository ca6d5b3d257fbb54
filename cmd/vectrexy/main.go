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

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vectrexy/vectrexy/engine"
	"github.com/vectrexy/vectrexy/host"
	"github.com/vectrexy/vectrexy/modalflag"
)

// noInput is the host.Input a headless or bounded-frame run uses: no
// controller is ever actually attached, so every button reads unpressed
// and every axis reads centred.
type noInput struct{}

func (noInput) ButtonPressed(controller, button int) bool         { return false }
func (noInput) AxisValue(controller int, axis host.AxisID) float32 { return 0 }

// discardRender is the host.RenderContext a headless run hands the
// engine: the beam path is computed in full (so determinism hashing and
// any breakpoint/watchpoint logic still runs exactly as it would with a
// real display attached) but never actually drawn anywhere.
type discardRender struct{}

func (discardRender) DrawLine(x0, y0, x1, y1 float32, brightness uint8) {}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)

	romPath := md.AddString("rom", "", "cartridge ROM image (.vec/.bin)")
	biosPath := md.AddString("bios", "", "BIOS ROM image")
	symbolsPath := md.AddString("symbols", "", "symbol file to load at startup")
	startupPath := md.AddString("startup", "", "file of debugger commands to run before the first prompt")
	headless := md.AddBool("headless", false, "run without an interactive debugger prompt")
	frames := md.AddInt("frames", 0, "with -headless, stop after this many frames (0 runs until quit)")

	switch result, err := md.Parse(); result {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return fmt.Errorf("vectrexy: %w", err)
	}

	if *romPath == "" || *biosPath == "" {
		return fmt.Errorf("vectrexy: -rom and -bios are required")
	}

	cfg := engine.Config{
		CartridgePath: *romPath,
		BiosPath:      *biosPath,
		SymbolsPath:   *symbolsPath,
		StartupPath:   *startupPath,
	}
	if *headless {
		cfg.In = emptyReader{}
	}

	e, err := engine.New(cfg)
	if err != nil {
		return err
	}
	if err := e.Init(); err != nil {
		return err
	}
	defer e.Shutdown()

	const frameDuration = time.Second / 50

	render := host.RenderContext(discardRender{})
	input := host.Input(noInput{})

	frameCount := 0
	for {
		if e.Quit() {
			return nil
		}
		if *headless && *frames > 0 && frameCount >= *frames {
			return nil
		}

		if err := e.Update(frameDuration, input); err != nil {
			return err
		}
		if err := e.Render(render); err != nil {
			return err
		}
		frameCount++
	}
}

// emptyReader is an io.Reader that always reports EOF, used as the
// debugger's command source for a -headless run: any breakpoint it hits
// drops straight back out rather than blocking on a prompt no one is
// there to answer.
type emptyReader struct{}

func (emptyReader) Read(p []byte) (int, error) { return 0, io.EOF }
