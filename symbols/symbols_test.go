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

package symbols

import (
	"strings"
	"testing"
)

func TestLoadParsesEquDollarAndHexAndDecimalForms(t *testing.T) {
	src := `; a comment line
START EQU $1000
LOOP: 0x2000
COUNTER 42
# another comment
`
	tbl, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cases := []struct {
		name string
		addr uint16
	}{
		{"START", 0x1000},
		{"LOOP", 0x2000},
		{"COUNTER", 42},
	}
	for _, c := range cases {
		addr, ok := tbl.Address(c.name)
		if !ok {
			t.Errorf("Address(%q) not found", c.name)
			continue
		}
		if addr != c.addr {
			t.Errorf("Address(%q) = $%04X, want $%04X", c.name, addr, c.addr)
		}
	}
}

func TestNameReturnsFirstOfMultipleLabelsAtSameAddress(t *testing.T) {
	tbl := New()
	tbl.Add("FIRST", 0x4000)
	tbl.Add("SECOND", 0x4000)

	name, ok := tbl.Name(0x4000)
	if !ok || name != "FIRST" {
		t.Fatalf("Name(0x4000) = %q, %v; want FIRST, true", name, ok)
	}
	names := tbl.Names(0x4000)
	if len(names) != 2 || names[0] != "FIRST" || names[1] != "SECOND" {
		t.Fatalf("Names(0x4000) = %v, want [FIRST SECOND]", names)
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	src := "GOOD $1000\nBAD notanumber\n"
	tbl, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := tbl.Address("GOOD"); !ok {
		t.Error("GOOD should have been parsed")
	}
	if _, ok := tbl.Address("BAD"); ok {
		t.Error("BAD should have been skipped, its address field doesn't parse")
	}
}
