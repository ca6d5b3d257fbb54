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

import (
	"github.com/vectrexy/vectrexy/hardware/cpu/instructions"
	"github.com/vectrexy/vectrexy/hardware/cpu/registers"
	"github.com/vectrexy/vectrexy/vxerrors"
)

// indexedRegister maps an indexed postbyte's 2-bit register field to the
// register it names.
func (c *CPU) indexedRegister(bits uint8) *uint16 {
	switch bits {
	case 0:
		return &c.regs.X
	case 1:
		return &c.regs.Y
	case 2:
		return &c.regs.U
	default:
		return &c.regs.S
	}
}

// resolveIndexed decodes a single indexed-addressing postbyte and returns
// the effective address it names, consuming any additional offset bytes
// from the instruction stream. This mirrors the full set of postbyte
// encodings defined by the 6809 ISA: 5-bit signed direct offset in the
// low bits when bit 7 is clear, and one of the sixteen extended forms
// (auto inc/dec, 8/16-bit offset, accumulator offset, PC-relative,
// indirect) when bit 7 is set.
func (c *CPU) resolveIndexed() (uint16, error) {
	postbyte, err := c.fetchByte()
	if err != nil {
		return 0, err
	}

	// Bit 7 clear: 5-bit constant offset direct form, never indirected.
	if postbyte&0x80 == 0 {
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		offset := int8(postbyte << 3) >> 3 // sign-extend the low 5 bits
		return *reg + uint16(int16(offset)), nil
	}

	indirect := postbyte&0x10 != 0
	variant := postbyte & 0x0F

	// ,R+ and ,-R have no indirect form: the ISA only defines indirection
	// for the double auto inc/dec variants (,R++ and ,--R), since a
	// single-byte auto inc/dec indirect would leave the pointer at a
	// half-consumed address.
	if indirect && (variant == 0x0 || variant == 0x2) {
		return 0, vxerrors.New(vxerrors.InvalidOpcode, "indirect indexed postbyte $%02X has no indirect form for ,R+/,-R", postbyte)
	}

	var addr uint16
	switch variant {
	case 0x0: // ,R+
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		addr = *reg
		*reg++
	case 0x1: // ,R++
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		addr = *reg
		*reg += 2
	case 0x2: // ,-R
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		*reg--
		addr = *reg
	case 0x3: // ,--R
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		*reg -= 2
		addr = *reg
	case 0x4: // ,R
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		addr = *reg
	case 0x5: // B,R
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		addr = *reg + uint16(int16(int8(c.regs.B)))
	case 0x6: // A,R
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		addr = *reg + uint16(int16(int8(c.regs.A)))
	case 0x8: // n8,R
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		n, err := c.fetchByte()
		if err != nil {
			return 0, err
		}
		addr = *reg + uint16(int16(int8(n)))
	case 0x9: // n16,R
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		n, err := c.fetchWord()
		if err != nil {
			return 0, err
		}
		addr = *reg + n
	case 0xB: // D,R
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		addr = *reg + c.regs.D()
	case 0xC: // n8,PC
		n, err := c.fetchByte()
		if err != nil {
			return 0, err
		}
		addr = c.regs.PC.Value() + uint16(int16(int8(n)))
	case 0xD: // n16,PC
		n, err := c.fetchWord()
		if err != nil {
			return 0, err
		}
		addr = c.regs.PC.Value() + n
	case 0xF: // [n16] -- extended indirect; only valid with indirect bit set
		n, err := c.fetchWord()
		if err != nil {
			return 0, err
		}
		addr = n
	default: // 0x7, 0xA, 0xE: unassigned postbyte patterns
		return 0, vxerrors.New(vxerrors.InvalidOpcode, "indexed postbyte $%02X has no defined addressing form", postbyte)
	}

	if indirect {
		return c.bus.ReadWord(addr)
	}
	return addr, nil
}

// resolveAddress computes the effective address for Direct, Extended, or
// Indexed addressing modes, consuming the operand bytes for the mode from
// the instruction stream as it does. It is not meaningful for Immediate,
// Inherent, Relative, or Variant modes.
func (c *CPU) resolveAddress(mode instructions.AddressingMode) (uint16, error) {
	switch mode {
	case instructions.Direct:
		lo, err := c.fetchByte()
		if err != nil {
			return 0, err
		}
		return uint16(c.regs.DP)<<8 | uint16(lo), nil
	case instructions.Extended:
		return c.fetchWord()
	case instructions.Indexed:
		return c.resolveIndexed()
	default:
		return 0, nil
	}
}

// readOperand8 fetches an 8-bit operand appropriate to mode: the
// immediate byte itself for Immediate mode, or the byte at the resolved
// effective address for every other non-inherent mode.
func (c *CPU) readOperand8(mode instructions.AddressingMode) (uint8, error) {
	if mode == instructions.Immediate {
		return c.fetchByte()
	}
	addr, err := c.resolveAddress(mode)
	if err != nil {
		return 0, err
	}
	return c.bus.Read(addr)
}

// readOperand16 fetches a 16-bit operand appropriate to mode.
func (c *CPU) readOperand16(mode instructions.AddressingMode) (uint16, error) {
	if mode == instructions.Immediate {
		return c.fetchWord()
	}
	addr, err := c.resolveAddress(mode)
	if err != nil {
		return 0, err
	}
	return c.bus.ReadWord(addr)
}

// registerIDFromNibble adapts a TFR/EXG/PSH/PUL-style 4-bit register
// field to the shared registers.RegisterID enumeration.
func registerIDFromNibble(n uint8) registers.RegisterID {
	return registers.RegisterID(n & 0x0F)
}
