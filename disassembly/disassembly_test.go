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

package disassembly

import (
	"testing"

	"github.com/vectrexy/vectrexy/symbols"
)

type flatReader struct {
	data [65536]uint8
}

func (r *flatReader) Read(address uint16) (uint8, error) { return r.data[address], nil }

func TestDisassembleLDAImmediate(t *testing.T) {
	r := &flatReader{}
	r.data[0x1000] = 0x86
	r.data[0x1001] = 0x42

	inst, err := Disassemble(r, 0x1000, nil)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if inst.Text != "LDA #$42" {
		t.Errorf("Text = %q, want %q", inst.Text, "LDA #$42")
	}
	if inst.Size != 2 {
		t.Errorf("Size = %d, want 2", inst.Size)
	}
}

func TestDisassembleIndexedAutoIncrement(t *testing.T) {
	r := &flatReader{}
	r.data[0x2000] = 0xA6 // LDA indexed
	r.data[0x2001] = 0x80 // ,X+

	inst, err := Disassemble(r, 0x2000, nil)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if inst.Text != "LDA ,X+" {
		t.Errorf("Text = %q, want %q", inst.Text, "LDA ,X+")
	}
}

func TestDisassemblePSHSRegisterList(t *testing.T) {
	r := &flatReader{}
	r.data[0x3000] = 0x34 // PSHS
	r.data[0x3001] = 0x16 // A | B | X

	inst, err := Disassemble(r, 0x3000, nil)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if inst.Text != "PSHS A,B,X" {
		t.Errorf("Text = %q, want %q", inst.Text, "PSHS A,B,X")
	}
}

func TestDisassembleEXGRegisterPair(t *testing.T) {
	r := &flatReader{}
	r.data[0x4000] = 0x1E // EXG
	r.data[0x4001] = 0x01 // D,X

	inst, err := Disassemble(r, 0x4000, nil)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if inst.Text != "EXG D,X" {
		t.Errorf("Text = %q, want %q", inst.Text, "EXG D,X")
	}
}

func TestDisassembleJMPExtendedSubstitutesSymbol(t *testing.T) {
	r := &flatReader{}
	r.data[0x5000] = 0x7E // JMP extended
	r.data[0x5001] = 0xC0
	r.data[0x5002] = 0x00

	syms := symbols.New()
	syms.Add("START", 0xC000)

	inst, err := Disassemble(r, 0x5000, syms)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if inst.Text != "JMP $c000{START}" {
		t.Errorf("Text = %q, want %q", inst.Text, "JMP $c000{START}")
	}
}

func TestDisassembleSubstitutesAllAliasesForAnAddress(t *testing.T) {
	r := &flatReader{}
	r.data[0x5000] = 0x7E // JMP extended
	r.data[0x5001] = 0xC0
	r.data[0x5002] = 0x00

	syms := symbols.New()
	syms.Add("START", 0xC000)
	syms.Add("ENTRY", 0xC000)

	inst, err := Disassemble(r, 0x5000, syms)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if inst.Text != "JMP $c000{START|ENTRY}" {
		t.Errorf("Text = %q, want %q", inst.Text, "JMP $c000{START|ENTRY}")
	}
}

func TestDisassembleJMPExtendedWithoutSymbolTableUsesRawHex(t *testing.T) {
	r := &flatReader{}
	r.data[0x5000] = 0x7E
	r.data[0x5001] = 0xC0
	r.data[0x5002] = 0x00

	inst, err := Disassemble(r, 0x5000, nil)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if inst.Text != "JMP $C000" {
		t.Errorf("Text = %q, want %q", inst.Text, "JMP $C000")
	}
}

func TestDisassembleIndexedUnassignedPostbyteNibbleIsIllegal(t *testing.T) {
	illegalNibbles := []uint8{0x7, 0xA, 0xE}
	for _, nibble := range illegalNibbles {
		r := &flatReader{}
		r.data[0x2000] = 0xA6 // LDA indexed
		r.data[0x2001] = 0x80 | nibble

		_, err := Disassemble(r, 0x2000, nil)
		if err == nil {
			t.Fatalf("postbyte $%02X: expected error, got nil", r.data[0x2001])
		}
	}
}

func TestDisassembleIllegalOpcode(t *testing.T) {
	r := &flatReader{}
	r.data[0x6000] = 0x01 // unassigned

	inst, err := Disassemble(r, 0x6000, nil)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if inst.Definition.Mnemonic != "???" {
		t.Errorf("Mnemonic = %q, want ???", inst.Definition.Mnemonic)
	}
}
