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

// Package modalflag wraps the standard library's flag package with support
// for chained command "modes", the way a single binary might expose
// `run`, `debug`, and `verify` sub-commands each with their own flags.
//
// The basic replacement for flag.Parse looks like this:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	romPath := md.AddString("rom", "", "cartridge image")
//	switch result, err := md.Parse(); result {
//	case modalflag.ParseHelp:
//		return nil
//	case modalflag.ParseError:
//		return err
//	}
//
// Positional arguments left over after flag parsing are available through
// RemainingArgs or GetArg.
//
// Sub-modes are declared with AddSubModes before calling Parse. The first
// name given is the default, selected whenever the next positional
// argument doesn't match any of the declared modes:
//
//	md.AddSubModes("run", "debug")
//	md.Parse()
//	switch md.Mode() {
//	case "DEBUG":
//		startDebugger()
//	default:
//		startPlayback()
//	}
//
// Mode names are matched case-insensitively. A mode may itself declare
// further sub-modes by calling NewMode and AddSubModes again before its
// own call to Parse, letting a CLI nest as deep as it needs to.
package modalflag
