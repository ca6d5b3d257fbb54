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

import "github.com/vectrexy/vectrexy/hardware/cpu/registers"

func (c *CPU) setNZ8(v uint8) {
	c.regs.CC.Set(registers.FlagZ, v == 0)
	c.regs.CC.Set(registers.FlagN, v&0x80 != 0)
}

func (c *CPU) setNZ16(v uint16) {
	c.regs.CC.Set(registers.FlagZ, v == 0)
	c.regs.CC.Set(registers.FlagN, v&0x8000 != 0)
}

func (c *CPU) add8(a, b uint8, carryIn bool) uint8 {
	var carry uint16
	if carryIn {
		carry = 1
	}
	sum := uint16(a) + uint16(b) + carry
	result := uint8(sum)

	c.regs.CC.Set(registers.FlagC, sum > 0xFF)
	c.regs.CC.Set(registers.FlagH, (a&0x0F)+(b&0x0F)+uint8(carry) > 0x0F)
	c.regs.CC.Set(registers.FlagV, (a^b^0x80)&(a^result)&0x80 != 0)
	c.setNZ8(result)
	return result
}

func (c *CPU) sub8(a, b uint8, borrowIn bool) uint8 {
	var borrow uint16
	if borrowIn {
		borrow = 1
	}
	diff := uint16(a) - uint16(b) - borrow
	result := uint8(diff)

	c.regs.CC.Set(registers.FlagC, diff > 0xFF)
	c.regs.CC.Set(registers.FlagV, (a^b)&(a^result)&0x80 != 0)
	c.setNZ8(result)
	return result
}

func (c *CPU) add16(a, b uint16) uint16 {
	sum := uint32(a) + uint32(b)
	result := uint16(sum)

	c.regs.CC.Set(registers.FlagC, sum > 0xFFFF)
	c.regs.CC.Set(registers.FlagV, (a^b^0x8000)&(a^result)&0x8000 != 0)
	c.setNZ16(result)
	return result
}

func (c *CPU) sub16(a, b uint16) uint16 {
	diff := uint32(a) - uint32(b)
	result := uint16(diff)

	c.regs.CC.Set(registers.FlagC, diff > 0xFFFF)
	c.regs.CC.Set(registers.FlagV, (a^b)&(a^result)&0x8000 != 0)
	c.setNZ16(result)
	return result
}

func (c *CPU) and8(a, b uint8) uint8 {
	r := a & b
	c.setNZ8(r)
	c.regs.CC.Set(registers.FlagV, false)
	return r
}

func (c *CPU) or8(a, b uint8) uint8 {
	r := a | b
	c.setNZ8(r)
	c.regs.CC.Set(registers.FlagV, false)
	return r
}

func (c *CPU) eor8(a, b uint8) uint8 {
	r := a ^ b
	c.setNZ8(r)
	c.regs.CC.Set(registers.FlagV, false)
	return r
}

func (c *CPU) com8(a uint8) uint8 {
	r := ^a
	c.setNZ8(r)
	c.regs.CC.Set(registers.FlagV, false)
	c.regs.CC.Set(registers.FlagC, true)
	return r
}

func (c *CPU) neg8(a uint8) uint8 {
	return c.sub8(0, a, false)
}

func (c *CPU) inc8(a uint8) uint8 {
	r := a + 1
	c.regs.CC.Set(registers.FlagV, a == 0x7F)
	c.setNZ8(r)
	return r
}

func (c *CPU) dec8(a uint8) uint8 {
	r := a - 1
	c.regs.CC.Set(registers.FlagV, a == 0x80)
	c.setNZ8(r)
	return r
}

func (c *CPU) asl8(a uint8) uint8 {
	r := a << 1
	c.regs.CC.Set(registers.FlagC, a&0x80 != 0)
	c.regs.CC.Set(registers.FlagV, (a^r)&0x80 != 0)
	c.setNZ8(r)
	return r
}

func (c *CPU) lsr8(a uint8) uint8 {
	r := a >> 1
	c.regs.CC.Set(registers.FlagC, a&0x01 != 0)
	c.setNZ8(r)
	return r
}

func (c *CPU) asr8(a uint8) uint8 {
	r := (a >> 1) | (a & 0x80)
	c.regs.CC.Set(registers.FlagC, a&0x01 != 0)
	c.setNZ8(r)
	return r
}

func (c *CPU) rol8(a uint8) uint8 {
	carryIn := uint8(0)
	if c.regs.CC.Get(registers.FlagC) {
		carryIn = 1
	}
	r := (a << 1) | carryIn
	c.regs.CC.Set(registers.FlagC, a&0x80 != 0)
	c.regs.CC.Set(registers.FlagV, (a^r)&0x80 != 0)
	c.setNZ8(r)
	return r
}

func (c *CPU) ror8(a uint8) uint8 {
	carryIn := uint8(0)
	if c.regs.CC.Get(registers.FlagC) {
		carryIn = 0x80
	}
	r := (a >> 1) | carryIn
	c.regs.CC.Set(registers.FlagC, a&0x01 != 0)
	c.setNZ8(r)
	return r
}

func (c *CPU) tst8(v uint8) uint8 {
	c.setNZ8(v)
	c.regs.CC.Set(registers.FlagV, false)
	return v
}

func (c *CPU) clr8(v uint8) uint8 {
	c.regs.CC.Set(registers.FlagZ, true)
	c.regs.CC.Set(registers.FlagN, false)
	c.regs.CC.Set(registers.FlagV, false)
	c.regs.CC.Set(registers.FlagC, false)
	return 0
}

// daa adjusts A after a BCD addition, following the half-carry and carry
// flags the way the real ALU's correction table does.
func (c *CPU) daa() {
	a := c.regs.A
	lowNibble := a & 0x0F
	carry := c.regs.CC.Get(registers.FlagC)
	halfCarry := c.regs.CC.Get(registers.FlagH)

	var correction uint8
	newCarry := carry

	if halfCarry || lowNibble > 9 {
		correction |= 0x06
	}
	if carry || a > 0x99 || (a > 0x8F && lowNibble > 9) {
		correction |= 0x60
		newCarry = true
	}

	result := a + correction
	c.regs.CC.Set(registers.FlagC, newCarry)
	c.setNZ8(result)
	c.regs.A = result
}
