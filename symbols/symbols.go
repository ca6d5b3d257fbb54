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

// Package symbols loads and queries a user-supplied address-to-name
// table, the kind an assembler listing file provides, so the debugger
// and disassembler can show "Reset_Vector" instead of "$F000".
package symbols

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Table is a multimap from address to every name known for it. More than
// one label can legitimately share an address (a loop entry re-used as a
// fallthrough target, for instance).
type Table struct {
	byAddress map[uint16][]string
	byName    map[string]uint16
}

// New returns an empty Table.
func New() *Table {
	return &Table{byAddress: map[uint16][]string{}, byName: map[string]uint16{}}
}

// Names returns every name recorded for address, in the order they were
// added.
func (t *Table) Names(address uint16) []string {
	return t.byAddress[address]
}

// Name returns the first recorded name for address, and whether one
// exists at all.
func (t *Table) Name(address uint16) (string, bool) {
	names := t.byAddress[address]
	if len(names) == 0 {
		return "", false
	}
	return names[0], true
}

// Address returns the address recorded for name, and whether it exists.
func (t *Table) Address(name string) (uint16, bool) {
	addr, ok := t.byName[name]
	return addr, ok
}

// Add records a name for address.
func (t *Table) Add(name string, address uint16) {
	t.byAddress[address] = append(t.byAddress[address], name)
	t.byName[name] = address
}

// LoadFile parses a symbol file at path into a new Table. Each
// non-blank, non-comment line is expected to hold a label followed by
// an address, in one of:
//
//	NAME EQU $1234
//	NAME equ 4660
//	NAME: 0x1234
//
// Addresses may be decimal, or hex prefixed with "$", "0x", or "0X".
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("symbols: opening %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a symbol table from r, in the same format LoadFile reads
// from disk.
func Load(r io.Reader) (*Table, error) {
	t := New()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		name := strings.TrimSuffix(fields[0], ":")
		addrField := fields[len(fields)-1]
		if len(fields) >= 3 && strings.EqualFold(fields[1], "equ") {
			addrField = fields[2]
		}

		addr, err := parseAddress(addrField)
		if err != nil {
			continue
		}
		t.Add(name, addr)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("symbols: reading: %w", err)
	}
	return t, nil
}

func parseAddress(s string) (uint16, error) {
	switch {
	case strings.HasPrefix(s, "$"):
		v, err := strconv.ParseUint(s[1:], 16, 16)
		return uint16(v), err
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		v, err := strconv.ParseUint(s[2:], 16, 16)
		return uint16(v), err
	default:
		v, err := strconv.ParseUint(s, 10, 16)
		return uint16(v), err
	}
}
