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

package modalflag

import (
	"flag"
	"io"
	"strings"
	"time"
)

// pathSeparator joins the sequence of sub-modes accepted so far into the
// string returned by Path().
const pathSeparator = "/"

// Modes wraps the standard library's flag package with support for a chain
// of command "modes" the way `go build`/`go test`/`go doc` each accept a
// different flag set under one binary. vectrexy's own CLI only has one
// mode (there is no sub-command), but the wrapper is written generally so
// a future front end (record/replay, a batch-verify runner) can add one
// without touching this package.
//
// Output must be set before the first call to Parse or help text has
// nowhere to go.
type Modes struct {
	Output io.Writer

	set        *flag.FlagSet
	didParse   bool
	args       []string
	cursor     int
	subModes   []string
	resolved   []string
	extraHelp  string
}

// ParseResult reports what Parse decided to do.
type ParseResult int

const (
	// ParseContinue means flags were parsed successfully; consult Mode()
	// if AddSubModes was called beforehand.
	ParseContinue ParseResult = iota
	// ParseHelp means -h/-help was requested; the help text has already
	// been written to Output.
	ParseHelp
	// ParseError means flag parsing failed; the error is the second
	// return value of Parse.
	ParseError
)

func (md *Modes) String() string { return md.Path() }

// Mode returns the most recently resolved sub-mode, or "" if none has
// been resolved yet (either because AddSubModes was never called, or
// Parse hasn't run since the last NewMode).
func (md *Modes) Mode() string {
	if len(md.resolved) == 0 {
		return ""
	}
	return md.resolved[len(md.resolved)-1]
}

// Path returns every resolved mode so far, joined by "/".
func (md *Modes) Path() string {
	return strings.Join(md.resolved, pathSeparator)
}

// NewArgs begins parsing from a fresh argument list, typically os.Args[1:].
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.cursor = 0
	md.NewMode()
}

// NewMode starts a new flag set for the arguments remaining after the
// previous Parse call. Call this before adding flags for a sub-mode.
func (md *Modes) NewMode() {
	md.subModes = nil
	md.set = flag.NewFlagSet("", flag.ContinueOnError)
	md.didParse = false
}

// AdditionalHelp appends free-form text to the automatically generated
// help output for the current mode.
func (md *Modes) AdditionalHelp(text string) {
	md.extraHelp = text
}

// Parsed reports whether Parse has run since the last NewArgs or NewMode.
func (md *Modes) Parsed() bool {
	return md.didParse
}

// AddSubModes declares the sub-modes accepted after the current flag set.
// The first entry is the default chosen when the next argument doesn't
// name any of them. Comparisons are case-insensitive.
func (md *Modes) AddSubModes(names ...string) {
	for _, n := range names {
		md.subModes = append(md.subModes, strings.ToUpper(n))
	}
}

// AddDefaultSubMode prepends a sub-mode that is selected whenever no
// explicit mode argument is present.
func (md *Modes) AddDefaultSubMode(name string) {
	md.subModes = append([]string{strings.ToUpper(name)}, md.subModes...)
}

// Parse consumes flags (and, if AddSubModes was called, at most one mode
// selector) from the current position in the argument list.
func (md *Modes) Parse() (ParseResult, error) {
	md.didParse = true

	hw := &helpWriter{}
	md.set.SetOutput(hw)

	if err := md.set.Parse(md.args[md.cursor:]); err != nil {
		if err == flag.ErrHelp {
			hw.Help(md.Output, md.Path(), md.subModes, md.extraHelp)
			hw.Clear()
			return ParseHelp, nil
		}
		if len(md.subModes) == 0 {
			return ParseError, err
		}
		// unrecognised trailing input but a default sub-mode exists: fall
		// through to it rather than treating this as a hard error.
		md.resolved = append(md.resolved, md.subModes[0])
		return ParseContinue, nil
	}

	// move past the parsed flags to the first positional argument
	md.cursor = len(md.args) - md.set.NArg()
	if len(md.subModes) > 0 {
		md.resolved = append(md.resolved, md.selectSubMode())
	}
	return ParseContinue, nil
}

// selectSubMode consumes the next positional argument if it names one of
// the declared sub-modes, otherwise falls back to the default (first)
// entry without consuming anything.
func (md *Modes) selectSubMode() string {
	candidate := strings.ToUpper(md.set.Arg(0))
	for _, m := range md.subModes {
		if m == candidate {
			md.cursor++
			return m
		}
	}
	return md.subModes[0]
}

// RemainingArgs returns the positional arguments left after Parse
// consumed flags and any sub-mode selector.
func (md *Modes) RemainingArgs() []string {
	return md.args[md.cursor:]
}

// GetArg returns the i'th remaining positional argument.
func (md *Modes) GetArg(i int) string {
	rest := md.RemainingArgs()
	if i < 0 || i >= len(rest) {
		return ""
	}
	return rest[i]
}

// AddBool registers a boolean flag for the current mode.
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.set.Bool(name, value, usage)
}

// AddDuration registers a time.Duration flag for the current mode.
func (md *Modes) AddDuration(name string, value time.Duration, usage string) *time.Duration {
	return md.set.Duration(name, value, usage)
}

// AddFloat64 registers a float64 flag for the current mode.
func (md *Modes) AddFloat64(name string, value float64, usage string) *float64 {
	return md.set.Float64(name, value, usage)
}

// AddInt registers an int flag for the current mode.
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.set.Int(name, value, usage)
}

// AddInt64 registers an int64 flag for the current mode.
func (md *Modes) AddInt64(name string, value int64, usage string) *int64 {
	return md.set.Int64(name, value, usage)
}

// AddString registers a string flag for the current mode.
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.set.String(name, value, usage)
}

// AddUint registers a uint flag for the current mode.
func (md *Modes) AddUint(name string, value uint, usage string) *uint {
	return md.set.Uint(name, value, usage)
}

// AddUint64 registers a uint64 flag for the current mode.
func (md *Modes) AddUint64(name string, value uint64, usage string) *uint64 {
	return md.set.Uint64(name, value, usage)
}

// Visit calls fn for every flag that was explicitly set, in lexicographic
// order of flag name.
func (md *Modes) Visit(fn func(name string)) {
	md.set.Visit(func(f *flag.Flag) {
		fn(f.Name)
	})
}
