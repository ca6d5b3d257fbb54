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

// Package disassembly renders a single 6809 instruction at a given
// address as text, the way the debugger's step-trace output does. It reads through the same Reader the CPU itself would, but never
// mutates any register, so disassembling an instruction never affects
// program behaviour.
package disassembly

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vectrexy/vectrexy/hardware/cpu"
	"github.com/vectrexy/vectrexy/hardware/cpu/instructions"
	"github.com/vectrexy/vectrexy/symbols"
	"github.com/vectrexy/vectrexy/vxerrors"
)

// Reader is the read-only memory access the disassembler needs.
type Reader interface {
	Read(address uint16) (uint8, error)
}

// Instruction is the result of disassembling one opcode: its rendered
// text, the definition it resolved to, and how many bytes it occupies.
type Instruction struct {
	Text       string
	Definition instructions.Definition
	Size       int
}

var registerNibbleNames = []string{
	"D", "X", "Y", "U", "S", "PC", "??", "??",
	"A", "B", "CC", "DP", "??", "??", "??", "??",
}

func registerName(nibble uint8) string {
	return registerNibbleNames[nibble&0x0F]
}

// pshPulRegisterNames lists PSHS/PULS/PSHU/PULU's eight bits from bit 0
// up to bit 7, where the second-to-last entry names whichever of U/S is
// not the stack the opcode itself operates on. The register list is
// rendered low-bit-first (CC,A,B,DP,X,Y,U/S,PC), not in hardware push
// order, matching the original tool's disassembly output.
var pshPulRegisterNames = []string{"CC", "A", "B", "DP", "X", "Y", "?", "PC"}

// Disassemble renders the instruction at address, returning its text and
// size in bytes. syms may be nil, in which case operands are rendered as
// raw hex with no symbol substitution.
func Disassemble(r Reader, address uint16, syms *symbols.Table) (Instruction, error) {
	d := &decoder{r: r, pc: address}

	opcode, err := d.fetch()
	if err != nil {
		return Instruction{}, err
	}

	page := cpu.Page0
	switch opcode {
	case 0x10:
		page = cpu.Page1
		opcode, err = d.fetch()
		if err != nil {
			return Instruction{}, err
		}
	case 0x11:
		page = cpu.Page2
		opcode, err = d.fetch()
		if err != nil {
			return Instruction{}, err
		}
	}

	def, ok := cpu.LookupDefinition(page, opcode)
	if !ok {
		return Instruction{
			Text:       fmt.Sprintf("??? ($%02X)", opcode),
			Definition: instructions.Definition{Mnemonic: "???", Mode: instructions.Illegal},
			Size:       int(d.pc - address),
		}, nil
	}

	operand, err := d.renderOperand(def)
	if err != nil {
		return Instruction{}, err
	}

	text := def.Mnemonic
	if operand != "" {
		text = text + " " + operand
	}
	if syms != nil {
		text = substituteSymbols(text, syms)
	}

	return Instruction{Text: text, Definition: def, Size: int(d.pc - address)}, nil
}

// decoder walks bytes from a Reader starting at pc, advancing pc as it
// goes, exactly as the CPU's own fetch loop does but without any
// observable side effect on hardware state.
type decoder struct {
	r  Reader
	pc uint16
}

func (d *decoder) fetch() (uint8, error) {
	v, err := d.r.Read(d.pc)
	if err != nil {
		return 0, err
	}
	d.pc++
	return v, nil
}

func (d *decoder) fetchWord() (uint16, error) {
	hi, err := d.fetch()
	if err != nil {
		return 0, err
	}
	lo, err := d.fetch()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (d *decoder) renderOperand(def instructions.Definition) (string, error) {
	switch def.Mode {
	case instructions.Inherent:
		return "", nil

	case instructions.Immediate:
		if def.OpCode == 0x1E || def.OpCode == 0x1F {
			return d.renderExgTfr()
		}
		if isWordOperand(def.Mnemonic) {
			v, err := d.fetchWord()
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("#$%04X", v), nil
		}
		v, err := d.fetch()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("#$%02X", v), nil

	case instructions.Direct:
		v, err := d.fetch()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("<$%02X", v), nil

	case instructions.Extended:
		v, err := d.fetchWord()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("$%04X", v), nil

	case instructions.Relative:
		if isLongBranch(def.Mnemonic) {
			offset, err := d.fetchWord()
			if err != nil {
				return "", err
			}
			target := d.pc + offset
			return fmt.Sprintf("$%04X", target), nil
		}
		offset, err := d.fetch()
		if err != nil {
			return "", err
		}
		target := d.pc + uint16(int16(int8(offset)))
		return fmt.Sprintf("$%04X", target), nil

	case instructions.Indexed:
		return d.renderIndexed()

	case instructions.Variant:
		switch def.Mnemonic {
		case "EXG", "TFR":
			return d.renderExgTfr()
		case "PSHS", "PULS", "PSHU", "PULU":
			return d.renderPshPul(def)
		}
		return "", nil

	default:
		return "", nil
	}
}

func isWordOperand(mnemonic string) bool {
	switch mnemonic {
	case "LDD", "LDX", "LDY", "LDU", "LDS", "ADDD", "SUBD", "CMPX", "CMPY", "CMPD", "CMPU", "CMPS":
		return true
	default:
		return false
	}
}

func isLongBranch(mnemonic string) bool {
	return strings.HasPrefix(mnemonic, "LB") || mnemonic == "LBRA" || mnemonic == "LBSR"
}

func (d *decoder) renderExgTfr() (string, error) {
	postbyte, err := d.fetch()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s,%s", registerName(postbyte>>4), registerName(postbyte)), nil
}

// renderPshPul renders the bitmask operand of a PSHS/PULS/PSHU/PULU
// instruction as a comma-separated register list, lowest mask bit first
// (CC, A, B, DP, X, Y, U/S, PC), which is pull order.
// The register named by bit 0x40 is U for PSHS/PULS and S for PSHU/PULU;
// opcodes below $36 (PSHS/PULS) use "U", and $36/$37 (PSHU/PULU) use
// "S" -- this mirrors the addressing quirk of the original debugger's
// disassembler exactly rather than "fixing" it, since existing trace
// logs and golden output depend on the original's phrasing.
func (d *decoder) renderPshPul(def instructions.Definition) (string, error) {
	mask, err := d.fetch()
	if err != nil {
		return "", err
	}

	names := make([]string, len(pshPulRegisterNames))
	copy(names, pshPulRegisterNames)
	if def.OpCode < 0x36 {
		names[6] = "U"
	} else {
		names[6] = "S"
	}

	var parts []string
	for i, name := range names {
		bit := uint8(1) << uint(i)
		if mask&bit != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, ","), nil
}

// renderIndexed mirrors the CPU's own postbyte decode table, but renders
// each variant as assembler-style text instead of computing an actual
// address, since the disassembler has no register file to read from.
func (d *decoder) renderIndexed() (string, error) {
	postbyte, err := d.fetch()
	if err != nil {
		return "", err
	}

	var regName string
	switch (postbyte >> 5) & 0x03 {
	case 0:
		regName = "X"
	case 1:
		regName = "Y"
	case 2:
		regName = "U"
	default:
		regName = "S"
	}

	if postbyte&0x80 == 0 {
		offset := int8(postbyte<<3) >> 3
		return fmt.Sprintf("%d,%s", offset, regName), nil
	}

	indirect := postbyte&0x10 != 0
	wrap := func(s string) string {
		if indirect {
			return "[" + s + "]"
		}
		return s
	}

	switch postbyte & 0x0F {
	case 0x0:
		return wrap("," + regName + "+"), nil
	case 0x1:
		return wrap("," + regName + "++"), nil
	case 0x2:
		return wrap(",-" + regName), nil
	case 0x3:
		return wrap(",--" + regName), nil
	case 0x4:
		return wrap("," + regName), nil
	case 0x5:
		return wrap("B," + regName), nil
	case 0x6:
		return wrap("A," + regName), nil
	case 0x8:
		n, err := d.fetch()
		if err != nil {
			return "", err
		}
		return wrap(fmt.Sprintf("%d,%s", int8(n), regName)), nil
	case 0x9:
		n, err := d.fetchWord()
		if err != nil {
			return "", err
		}
		return wrap(fmt.Sprintf("%d,%s", int16(n), regName)), nil
	case 0xB:
		return wrap("D," + regName), nil
	case 0xC:
		n, err := d.fetch()
		if err != nil {
			return "", err
		}
		return wrap(fmt.Sprintf("%d,PC", int8(n))), nil
	case 0xD:
		n, err := d.fetchWord()
		if err != nil {
			return "", err
		}
		return wrap(fmt.Sprintf("%d,PC", int16(n))), nil
	case 0xF:
		n, err := d.fetchWord()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("[$%04X]", n), nil
	default: // 0x7, 0xA, 0xE: unassigned postbyte patterns
		return "", vxerrors.New(vxerrors.InvalidOpcode, "indexed postbyte $%02X has no defined addressing form", postbyte)
	}
}

var symbolToken = regexp.MustCompile(`\$[0-9A-Fa-f]{2,4}`)

// substituteSymbols annotates every $XXXX-style address token in text
// with every known symbol name for that address, as `$xxxx{sym1|sym2}`,
// leaving tokens with no known symbol untouched.
func substituteSymbols(text string, syms *symbols.Table) string {
	return symbolToken.ReplaceAllStringFunc(text, func(tok string) string {
		addr, err := parseHexToken(tok[1:])
		if err != nil {
			return tok
		}
		names := syms.Names(addr)
		if len(names) == 0 {
			return tok
		}
		return fmt.Sprintf("$%04x{%s}", addr, strings.Join(names, "|"))
	})
}

func parseHexToken(s string) (uint16, error) {
	var v uint16
	for _, ch := range s {
		var digit uint16
		switch {
		case ch >= '0' && ch <= '9':
			digit = uint16(ch - '0')
		case ch >= 'a' && ch <= 'f':
			digit = uint16(ch-'a') + 10
		case ch >= 'A' && ch <= 'F':
			digit = uint16(ch-'A') + 10
		default:
			return 0, fmt.Errorf("disassembly: bad hex digit %q", ch)
		}
		v = v<<4 | digit
	}
	return v, nil
}
