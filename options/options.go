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

// Package options holds user-settable runtime switches (debugger toggles,
// display preferences) and persists them to a TOML file between sessions.
package options

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Values is the persisted set of options. Fields are addressed by name
// through Get/Set so the debugger's "option" command can list and modify
// them generically, without a switch statement per field.
type Values struct {
	TraceEnabled      bool `toml:"trace_enabled"`
	BreakOnIllegalOp  bool `toml:"break_on_illegal_op"`
	ColorTerminal     bool `toml:"color_terminal"`
	SyncProtocolDebug bool `toml:"sync_protocol_debug"`
}

// Default returns the option set a fresh installation starts with.
func Default() Values {
	return Values{
		BreakOnIllegalOp: true,
		ColorTerminal:    true,
	}
}

// Options wraps a Values with the file path it was loaded from, so Save
// can write back to the same place without the caller repeating it.
type Options struct {
	path   string
	values Values
}

// Load reads options from path. If the file doesn't exist, Load returns a
// fresh Options holding Default() values, and the first Save call creates
// the file.
func Load(path string) (*Options, error) {
	o := &Options{path: path, values: Default()}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return o, nil
	}

	if _, err := toml.DecodeFile(path, &o.values); err != nil {
		return nil, fmt.Errorf("options: decoding %s: %w", path, err)
	}
	return o, nil
}

// Save writes the current values back to the path Options was loaded from.
func (o *Options) Save() error {
	f, err := os.Create(o.path)
	if err != nil {
		return fmt.Errorf("options: creating %s: %w", o.path, err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(o.values); err != nil {
		return fmt.Errorf("options: encoding %s: %w", o.path, err)
	}
	return nil
}

// Values returns a copy of the current option values.
func (o *Options) Values() Values {
	return o.values
}

// Get returns the named boolean option and whether the name was recognised.
func (o *Options) Get(name string) (bool, bool) {
	switch name {
	case "trace_enabled":
		return o.values.TraceEnabled, true
	case "break_on_illegal_op":
		return o.values.BreakOnIllegalOp, true
	case "color_terminal":
		return o.values.ColorTerminal, true
	case "sync_protocol_debug":
		return o.values.SyncProtocolDebug, true
	default:
		return false, false
	}
}

// Set assigns the named boolean option, returning false if name is unknown.
func (o *Options) Set(name string, value bool) bool {
	switch name {
	case "trace_enabled":
		o.values.TraceEnabled = value
	case "break_on_illegal_op":
		o.values.BreakOnIllegalOp = value
	case "color_terminal":
		o.values.ColorTerminal = value
	case "sync_protocol_debug":
		o.values.SyncProtocolDebug = value
	default:
		return false
	}
	return true
}

// Names lists every recognised option name, for help text and tab completion.
func (o *Options) Names() []string {
	return []string{"trace_enabled", "break_on_illegal_op", "color_terminal", "sync_protocol_debug"}
}
