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

package modalflag_test

import (
	"bytes"
	"testing"

	"github.com/vectrexy/vectrexy/modalflag"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{Output: &bytes.Buffer{}}
	md.NewArgs([]string{})

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		t.Error("expected ParseContinue")
	}
	if err != nil {
		t.Errorf("did not expect error: %s", err)
	}
	if md.Mode() != "" {
		t.Errorf("did not expect to see a mode as result of Parse()")
	}
	if md.Path() != "" {
		t.Errorf("did not expect to see modes in the mode path")
	}
}

func TestNoModesWithFlag(t *testing.T) {
	md := modalflag.Modes{Output: &bytes.Buffer{}}
	md.NewArgs([]string{"-test", "1", "2"})
	testFlag := md.AddBool("test", false, "test flag")

	if *testFlag != false {
		t.Error("expected *testFlag to be false before Parse()")
	}

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		t.Error("expected ParseContinue")
	}
	if err != nil {
		t.Errorf("did not expect error: %s", err)
	}
	if md.Mode() != "" {
		t.Errorf("did not expect to see a mode as result of Parse()")
	}

	if *testFlag != true {
		t.Error("expected *testFlag to be true after Parse()")
	}

	if len(md.RemainingArgs()) != 2 {
		t.Error("expected two RemainingArgs() after Parse()")
	}
}

func TestNoHelpAvailable(t *testing.T) {
	var buf bytes.Buffer
	md := modalflag.Modes{Output: &buf}
	md.NewArgs([]string{"-help"})

	p, _ := md.Parse()
	if p != modalflag.ParseHelp {
		t.Error("expected ParseHelp return value from Parse()")
	}
	if buf.String() != "No help available\n" {
		t.Errorf("unexpected help message: %q", buf.String())
	}
}

func TestHelpFlags(t *testing.T) {
	var buf bytes.Buffer
	md := modalflag.Modes{Output: &buf}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")

	p, _ := md.Parse()
	if p != modalflag.ParseHelp {
		t.Error("expected ParseHelp return value from Parse()")
	}

	want := "Usage:\n" +
		"  -test\n" +
		"    	test flag (default true)\n"
	if buf.String() != want {
		t.Errorf("unexpected help message: got %q want %q", buf.String(), want)
	}
}

func TestHelpModes(t *testing.T) {
	var buf bytes.Buffer
	md := modalflag.Modes{Output: &buf}
	md.NewArgs([]string{"-help"})
	md.AddSubModes("run", "debug", "verify")

	p, _ := md.Parse()
	if p != modalflag.ParseHelp {
		t.Error("expected ParseHelp return value from Parse()")
	}

	want := "Usage:\n" +
		"  available sub-modes: RUN, DEBUG, VERIFY\n" +
		"    default: RUN\n"
	if buf.String() != want {
		t.Errorf("unexpected help message: got %q want %q", buf.String(), want)
	}
}

func TestHelpFlagsAndModes(t *testing.T) {
	var buf bytes.Buffer
	md := modalflag.Modes{Output: &buf}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")
	md.AddSubModes("run", "debug")

	p, _ := md.Parse()
	if p != modalflag.ParseHelp {
		t.Error("expected ParseHelp return value from Parse()")
	}

	want := "Usage:\n" +
		"  -test\n" +
		"    	test flag (default true)\n" +
		"\n" +
		"  available sub-modes: RUN, DEBUG\n" +
		"    default: RUN\n"
	if buf.String() != want {
		t.Errorf("unexpected help message: got %q want %q", buf.String(), want)
	}
}

func TestSubModeSelection(t *testing.T) {
	md := modalflag.Modes{Output: &bytes.Buffer{}}
	md.NewArgs([]string{"debug", "extra"})
	md.AddSubModes("run", "debug")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		t.Fatalf("expected ParseContinue, got err=%v", err)
	}
	if md.Mode() != "DEBUG" {
		t.Errorf("expected mode DEBUG, got %q", md.Mode())
	}
	if got := md.RemainingArgs(); len(got) != 1 || got[0] != "extra" {
		t.Errorf("expected one remaining arg 'extra', got %v", got)
	}
}

func TestSubModeDefault(t *testing.T) {
	md := modalflag.Modes{Output: &bytes.Buffer{}}
	md.NewArgs([]string{"rom.vec"})
	md.AddSubModes("run", "debug")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		t.Fatalf("expected ParseContinue, got err=%v", err)
	}
	if md.Mode() != "RUN" {
		t.Errorf("expected default mode RUN, got %q", md.Mode())
	}
	if got := md.RemainingArgs(); len(got) != 1 || got[0] != "rom.vec" {
		t.Errorf("expected remaining arg 'rom.vec', got %v", got)
	}
}
