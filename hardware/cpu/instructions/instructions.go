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

// Package instructions describes the static shape of the 6809 instruction
// set: addressing modes, instruction categories, and the per-opcode
// Definition the CPU and disassembler both key off of. It holds no
// execution logic of its own; hardware/cpu supplies the opcode tables and
// the functions that actually run each instruction.
package instructions

// AddressingMode identifies how an instruction's operand is located.
type AddressingMode int

// The 6809's addressing modes, plus two bookkeeping values used by the
// opcode tables themselves.
const (
	// Illegal marks an opcode slot with no defined instruction.
	Illegal AddressingMode = iota
	// Inherent instructions carry their operand (if any) entirely in the
	// registers; there is no addressing byte.
	Inherent
	// Immediate instructions read their operand from the byte(s)
	// immediately following the opcode.
	Immediate
	// Direct instructions combine DP with a following byte to form the
	// effective address.
	Direct
	// Extended instructions read a full 16-bit effective address from
	// the two bytes following the opcode.
	Extended
	// Indexed instructions decode a postbyte describing one of X, Y, U,
	// S, or PC plus an offset or auto-increment/decrement, optionally
	// indirected through memory.
	Indexed
	// Relative instructions (branches) read a signed offset, 8-bit for
	// short branches and 16-bit for long branches, added to PC.
	Relative
	// Variant marks an opcode whose addressing is determined entirely by
	// its own postbyte rather than one of the fixed modes above: EXG,
	// TFR, PSHS/PULS/PSHU/PULU.
	Variant
)

func (m AddressingMode) String() string {
	switch m {
	case Inherent:
		return "Inherent"
	case Immediate:
		return "Immediate"
	case Direct:
		return "Direct"
	case Extended:
		return "Extended"
	case Indexed:
		return "Indexed"
	case Relative:
		return "Relative"
	case Variant:
		return "Variant"
	default:
		return "Illegal"
	}
}

// Category groups instructions by their effect. The opcode tables set it
// and the trace reports it; watchpoint checks do not consult it.
type Category int

// The categories an instruction definition can belong to.
const (
	CategoryOther Category = iota
	CategoryRead
	CategoryWrite
	CategoryReadModifyWrite
	CategoryFlow
	CategorySubroutine
	CategoryInterrupt
)

// Definition is the static description of one opcode, shared by every
// page's table.
type Definition struct {
	OpCode   uint16 // includes the 0x10/0x11 page prefix, if any
	Mnemonic string
	Mode     AddressingMode
	Cycles   int
	Category Category
}

// OperandSize returns how many bytes follow the opcode (and any page
// prefix byte) for this addressing mode. Immediate and Relative report
// the one-byte operand of the 8-bit forms; 16-bit immediates and long
// branches take two bytes, which this does not account for. Indexed
// mode's true size depends on the postbyte itself and is not reported
// here.
func (d Definition) OperandSize() int {
	switch d.Mode {
	case Immediate, Direct, Relative:
		return 1
	case Extended:
		return 2
	default:
		return 0
	}
}

// IsBranch reports whether this definition is a conditional or
// unconditional branch instruction.
func (d Definition) IsBranch() bool {
	return d.Mode == Relative
}
