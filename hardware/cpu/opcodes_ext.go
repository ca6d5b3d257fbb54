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
)

// registerPage1Opcodes wires the instructions reached through the 0x10
// prefix byte: the fifteen conditional long (16-bit relative) branches
// (LBRA sits on page 0), LDY/STY/
// CMPY/LDS/STS/CMPD, and SWI2.
func registerPage1Opcodes() {
	longConds := []struct {
		opcode uint8
		name   string
		cond   func(c *CPU) bool
	}{
		{0x21, "LBRN", func(c *CPU) bool { return false }},
		{0x22, "LBHI", func(c *CPU) bool { return !c.regs.CC.Get(registers.FlagC) && !c.regs.CC.Get(registers.FlagZ) }},
		{0x23, "LBLS", func(c *CPU) bool { return c.regs.CC.Get(registers.FlagC) || c.regs.CC.Get(registers.FlagZ) }},
		{0x24, "LBHS", func(c *CPU) bool { return !c.regs.CC.Get(registers.FlagC) }},
		{0x25, "LBLO", func(c *CPU) bool { return c.regs.CC.Get(registers.FlagC) }},
		{0x26, "LBNE", func(c *CPU) bool { return !c.regs.CC.Get(registers.FlagZ) }},
		{0x27, "LBEQ", func(c *CPU) bool { return c.regs.CC.Get(registers.FlagZ) }},
		{0x28, "LBVC", func(c *CPU) bool { return !c.regs.CC.Get(registers.FlagV) }},
		{0x29, "LBVS", func(c *CPU) bool { return c.regs.CC.Get(registers.FlagV) }},
		{0x2A, "LBPL", func(c *CPU) bool { return !c.regs.CC.Get(registers.FlagN) }},
		{0x2B, "LBMI", func(c *CPU) bool { return c.regs.CC.Get(registers.FlagN) }},
		{0x2C, "LBGE", func(c *CPU) bool { return c.regs.CC.Get(registers.FlagN) == c.regs.CC.Get(registers.FlagV) }},
		{0x2D, "LBLT", func(c *CPU) bool { return c.regs.CC.Get(registers.FlagN) != c.regs.CC.Get(registers.FlagV) }},
		{0x2E, "LBGT", func(c *CPU) bool {
			return c.regs.CC.Get(registers.FlagN) == c.regs.CC.Get(registers.FlagV) && !c.regs.CC.Get(registers.FlagZ)
		}},
		{0x2F, "LBLE", func(c *CPU) bool {
			return c.regs.CC.Get(registers.FlagN) != c.regs.CC.Get(registers.FlagV) || c.regs.CC.Get(registers.FlagZ)
		}},
	}
	for _, b := range longConds {
		reg1(b.opcode, b.name, instructions.Relative, 6, instructions.CategoryFlow, longBranchHandler(b.cond))
	}

	reg1(0x3F, "SWI2", instructions.Inherent, 20, instructions.CategoryInterrupt, func(c *CPU, mode instructions.AddressingMode) error {
		c.regs.CC.Set(registers.FlagE, true)
		if err := c.pushEntireState(); err != nil {
			return err
		}
		pc, err := c.bus.ReadWord(VectorSWI2)
		if err != nil {
			return err
		}
		c.regs.PC.SetValue(pc)
		return nil
	})

	reg1(0x83, "CMPD", instructions.Immediate, 5, instructions.CategoryRead, op16Cmp(regD16))
	reg1(0x93, "CMPD", instructions.Direct, 7, instructions.CategoryRead, op16Cmp(regD16))
	reg1(0xA3, "CMPD", instructions.Indexed, 7, instructions.CategoryRead, op16Cmp(regD16))
	reg1(0xB3, "CMPD", instructions.Extended, 8, instructions.CategoryRead, op16Cmp(regD16))

	reg1(0x8C, "CMPY", instructions.Immediate, 5, instructions.CategoryRead, op16Cmp(regY16))
	reg1(0x9C, "CMPY", instructions.Direct, 7, instructions.CategoryRead, op16Cmp(regY16))
	reg1(0xAC, "CMPY", instructions.Indexed, 7, instructions.CategoryRead, op16Cmp(regY16))
	reg1(0xBC, "CMPY", instructions.Extended, 8, instructions.CategoryRead, op16Cmp(regY16))

	reg1(0x8E, "LDY", instructions.Immediate, 4, instructions.CategoryReadModifyWrite, op16Load(regY16))
	reg1(0x9E, "LDY", instructions.Direct, 6, instructions.CategoryReadModifyWrite, op16Load(regY16))
	reg1(0x9F, "STY", instructions.Direct, 6, instructions.CategoryWrite, op16Store(regY16))
	reg1(0xAE, "LDY", instructions.Indexed, 6, instructions.CategoryReadModifyWrite, op16Load(regY16))
	reg1(0xAF, "STY", instructions.Indexed, 6, instructions.CategoryWrite, op16Store(regY16))
	reg1(0xBE, "LDY", instructions.Extended, 7, instructions.CategoryReadModifyWrite, op16Load(regY16))
	reg1(0xBF, "STY", instructions.Extended, 7, instructions.CategoryWrite, op16Store(regY16))

	reg1(0xCE, "LDS", instructions.Immediate, 4, instructions.CategoryReadModifyWrite, op16Load(regS16))
	reg1(0xDE, "LDS", instructions.Direct, 6, instructions.CategoryReadModifyWrite, op16Load(regS16))
	reg1(0xDF, "STS", instructions.Direct, 6, instructions.CategoryWrite, op16Store(regS16))
	reg1(0xEE, "LDS", instructions.Indexed, 6, instructions.CategoryReadModifyWrite, op16Load(regS16))
	reg1(0xEF, "STS", instructions.Indexed, 6, instructions.CategoryWrite, op16Store(regS16))
	reg1(0xFE, "LDS", instructions.Extended, 7, instructions.CategoryReadModifyWrite, op16Load(regS16))
	reg1(0xFF, "STS", instructions.Extended, 7, instructions.CategoryWrite, op16Store(regS16))
}

// registerPage2Opcodes wires the far smaller set of instructions reached
// through the 0x11 prefix byte: SWI3, CMPU, and CMPS.
func registerPage2Opcodes() {
	reg2(0x3F, "SWI3", instructions.Inherent, 20, instructions.CategoryInterrupt, func(c *CPU, mode instructions.AddressingMode) error {
		c.regs.CC.Set(registers.FlagE, true)
		if err := c.pushEntireState(); err != nil {
			return err
		}
		pc, err := c.bus.ReadWord(VectorSWI3)
		if err != nil {
			return err
		}
		c.regs.PC.SetValue(pc)
		return nil
	})

	reg2(0x83, "CMPU", instructions.Immediate, 5, instructions.CategoryRead, op16Cmp(regU16))
	reg2(0x93, "CMPU", instructions.Direct, 7, instructions.CategoryRead, op16Cmp(regU16))
	reg2(0xA3, "CMPU", instructions.Indexed, 7, instructions.CategoryRead, op16Cmp(regU16))
	reg2(0xB3, "CMPU", instructions.Extended, 8, instructions.CategoryRead, op16Cmp(regU16))

	reg2(0x8C, "CMPS", instructions.Immediate, 5, instructions.CategoryRead, op16Cmp(regS16))
	reg2(0x9C, "CMPS", instructions.Direct, 7, instructions.CategoryRead, op16Cmp(regS16))
	reg2(0xAC, "CMPS", instructions.Indexed, 7, instructions.CategoryRead, op16Cmp(regS16))
	reg2(0xBC, "CMPS", instructions.Extended, 8, instructions.CategoryRead, op16Cmp(regS16))
}
