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

package cpu

import "github.com/vectrexy/vectrexy/hardware/cpu/instructions"

// Page identifies one of the 6809's three opcode pages.
type Page int

// The three opcode pages: unprefixed, 0x10-prefixed, and 0x11-prefixed.
const (
	Page0 Page = iota
	Page1
	Page2
)

// LookupDefinition returns the static Definition for opcode on the given
// page, for use by the disassembler, which needs the opcode table
// without driving any actual execution. ok is false for an
// illegal/unassigned opcode.
func LookupDefinition(page Page, opcode uint8) (instructions.Definition, bool) {
	var table *[256]*opcodeEntry
	switch page {
	case Page1:
		table = &page1Table
	case Page2:
		table = &page2Table
	default:
		table = &page0Table
	}

	entry := table[opcode]
	if entry == nil {
		return instructions.Definition{}, false
	}
	return entry.def, true
}
