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

// Package breakpoint holds the debugger's breakpoint and watchpoint
// table: instruction breakpoints keyed by PC, and read/write/read-write
// watchpoints keyed by the address they guard.
package breakpoint

// Kind distinguishes an instruction breakpoint from the three flavours
// of memory watchpoint.
type Kind int

// The breakpoint kinds the debugger supports.
const (
	Instruction Kind = iota
	Read
	Write
	ReadWrite
)

func (k Kind) String() string {
	switch k {
	case Read:
		return "read"
	case Write:
		return "write"
	case ReadWrite:
		return "read/write"
	default:
		return "instruction"
	}
}

// Breakpoint is one entry in the table.
type Breakpoint struct {
	ID      int
	Kind    Kind
	Address uint16
	Enabled bool
	// AutoDelete marks a breakpoint created by the debugger's "until"
	// command: it fires at most once, removing itself from the table the
	// instant it's hit rather than waiting for an explicit "delete".
	AutoDelete bool
	// Condition holds a debugger expression text. It is stored only:
	// AtAddress and the debugger never evaluate it, so a breakpoint stops
	// execution whatever Condition says.
	Condition string
}

// Table holds every breakpoint and watchpoint, indexed both by insertion
// order (for listing) and by address (for the fast-path check the
// instrumented execution loop makes on every single instruction).
type Table struct {
	ordered []*Breakpoint
	byAddr  map[uint16][]*Breakpoint
	nextID  int
}

// New returns an empty Table.
func New() *Table {
	return &Table{byAddr: map[uint16][]*Breakpoint{}, nextID: 1}
}

// Add inserts a new breakpoint and returns it, with a unique ID assigned
// in order of creation so the debugger's "delete N" command can refer
// back to it.
func (t *Table) Add(kind Kind, address uint16) *Breakpoint {
	return t.add(kind, address, false)
}

// AddAutoDelete inserts a new breakpoint that removes itself from the
// table the first time it's hit, as the debugger's "until ADDR" command
// requires.
func (t *Table) AddAutoDelete(kind Kind, address uint16) *Breakpoint {
	return t.add(kind, address, true)
}

func (t *Table) add(kind Kind, address uint16, autoDelete bool) *Breakpoint {
	// At most one breakpoint per (address, kind) pair.
	for _, bp := range t.byAddr[address] {
		if bp.Kind == kind {
			return bp
		}
	}
	bp := &Breakpoint{ID: t.nextID, Kind: kind, Address: address, Enabled: true, AutoDelete: autoDelete}
	t.nextID++
	t.ordered = append(t.ordered, bp)
	t.byAddr[address] = append(t.byAddr[address], bp)
	return bp
}

// Delete removes the breakpoint with the given ID, reporting whether one
// was found.
func (t *Table) Delete(id int) bool {
	for i, bp := range t.ordered {
		if bp.ID == id {
			t.ordered = append(t.ordered[:i], t.ordered[i+1:]...)
			addrList := t.byAddr[bp.Address]
			for j, b := range addrList {
				if b.ID == id {
					t.byAddr[bp.Address] = append(addrList[:j], addrList[j+1:]...)
					break
				}
			}
			return true
		}
	}
	return false
}

// Find returns the breakpoint with the given ID, if any.
func (t *Table) Find(id int) (*Breakpoint, bool) {
	for _, bp := range t.ordered {
		if bp.ID == id {
			return bp, true
		}
	}
	return nil, false
}

// SetEnabled toggles the enabled state of the breakpoint with the given
// ID, reporting whether one was found.
func (t *Table) SetEnabled(id int, enabled bool) bool {
	bp, ok := t.Find(id)
	if !ok {
		return false
	}
	bp.Enabled = enabled
	return true
}

// All returns every breakpoint, in insertion order.
func (t *Table) All() []*Breakpoint {
	return t.ordered
}

// AtAddress returns every enabled breakpoint of the given kind guarding
// address. For Read/Write/ReadWrite kinds, a ReadWrite watchpoint
// matches both a read and a write access.
func (t *Table) AtAddress(address uint16, accessKind Kind) []*Breakpoint {
	var hits []*Breakpoint
	for _, bp := range t.byAddr[address] {
		if !bp.Enabled {
			continue
		}
		if bp.Kind == accessKind || bp.Kind == ReadWrite && (accessKind == Read || accessKind == Write) {
			hits = append(hits, bp)
		}
	}
	return hits
}
