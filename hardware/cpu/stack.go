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

// pshPulOrder, in PSHS/PULS/PSHU/PULU postbyte order from bit 7 down to
// bit 0: PC, U-or-S (the opposite of whichever stack is being used), Y,
// X, DP, B, A, CC.
var pshPulOrder = []struct {
	bit  uint8
	push func(c *CPU, useS bool) error
	pull func(c *CPU, useS bool) error
}{
	{0x80, func(c *CPU, useS bool) error { return c.pushOn(useS, false, 0, c.regs.PC.Value()) }, func(c *CPU, useS bool) error {
		v, err := c.pullFrom16(useS)
		if err != nil {
			return err
		}
		c.regs.PC.SetValue(v)
		return nil
	}},
	{0x40, func(c *CPU, useS bool) error { return c.pushOpposite(useS) }, func(c *CPU, useS bool) error { return c.pullOpposite(useS) }},
	{0x20, func(c *CPU, useS bool) error { return c.pushOn(useS, false, 0, c.regs.Y) }, func(c *CPU, useS bool) error {
		v, err := c.pullFrom16(useS)
		if err != nil {
			return err
		}
		c.regs.Y = v
		return nil
	}},
	{0x10, func(c *CPU, useS bool) error { return c.pushOn(useS, false, 0, c.regs.X) }, func(c *CPU, useS bool) error {
		v, err := c.pullFrom16(useS)
		if err != nil {
			return err
		}
		c.regs.X = v
		return nil
	}},
	{0x08, func(c *CPU, useS bool) error { return c.pushOn(useS, true, c.regs.DP, 0) }, func(c *CPU, useS bool) error {
		v, err := c.pullFrom8(useS)
		if err != nil {
			return err
		}
		c.regs.DP = v
		return nil
	}},
	{0x04, func(c *CPU, useS bool) error { return c.pushOn(useS, true, c.regs.B, 0) }, func(c *CPU, useS bool) error {
		v, err := c.pullFrom8(useS)
		if err != nil {
			return err
		}
		c.regs.B = v
		return nil
	}},
	{0x02, func(c *CPU, useS bool) error { return c.pushOn(useS, true, c.regs.A, 0) }, func(c *CPU, useS bool) error {
		v, err := c.pullFrom8(useS)
		if err != nil {
			return err
		}
		c.regs.A = v
		return nil
	}},
	{0x01, func(c *CPU, useS bool) error { return c.pushOn(useS, true, c.regs.CC.Value(), 0) }, func(c *CPU, useS bool) error {
		v, err := c.pullFrom8(useS)
		if err != nil {
			return err
		}
		c.regs.CC.SetValue(v)
		return nil
	}},
}

func (c *CPU) pushOn(useS, isByte bool, b uint8, w uint16) error {
	if useS {
		if isByte {
			return c.pushS8(b)
		}
		return c.pushS16(w)
	}
	if isByte {
		return c.pushU8(b)
	}
	return c.pushU16(w)
}

func (c *CPU) pullFrom8(useS bool) (uint8, error) {
	if useS {
		return c.pullS8()
	}
	return c.pullU8()
}

func (c *CPU) pullFrom16(useS bool) (uint16, error) {
	if useS {
		return c.pullS16()
	}
	return c.pullU16()
}

// pushOpposite pushes U when the active stack is S, or S when the active
// stack is U -- PSHS pushes U and PSHU pushes S, per the 6809 ISA.
func (c *CPU) pushOpposite(useS bool) error {
	if useS {
		return c.pushS16(c.regs.U)
	}
	return c.pushU16(c.regs.S)
}

func (c *CPU) pullOpposite(useS bool) error {
	if useS {
		v, err := c.pullS16()
		if err != nil {
			return err
		}
		c.regs.U = v
		return nil
	}
	v, err := c.pullU16()
	if err != nil {
		return err
	}
	c.regs.S = v
	return nil
}

func (c *CPU) pushU8(v uint8) error {
	c.regs.U--
	return c.bus.Write(c.regs.U, v)
}

func (c *CPU) pushU16(v uint16) error {
	if err := c.pushU8(uint8(v)); err != nil {
		return err
	}
	return c.pushU8(uint8(v >> 8))
}

func (c *CPU) pullU8() (uint8, error) {
	v, err := c.bus.Read(c.regs.U)
	if err != nil {
		return 0, err
	}
	c.regs.U++
	return v, nil
}

func (c *CPU) pullU16() (uint16, error) {
	hi, err := c.pullU8()
	if err != nil {
		return 0, err
	}
	lo, err := c.pullU8()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func pshPulHandler(useS, isPull bool) opFunc {
	return func(c *CPU, mode instructions.AddressingMode) error {
		mask, err := c.fetchByte()
		if err != nil {
			return err
		}
		if isPull {
			// Registers come off the stack in the reverse of push order:
			// CC first, PC last.
			for i := len(pshPulOrder) - 1; i >= 0; i-- {
				entry := pshPulOrder[i]
				if mask&entry.bit != 0 {
					if err := entry.pull(c, useS); err != nil {
						return err
					}
				}
			}
			return nil
		}
		for _, entry := range pshPulOrder {
			if mask&entry.bit != 0 {
				if err := entry.push(c, useS); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

func exgTfrHandler(isExchange bool) opFunc {
	return func(c *CPU, mode instructions.AddressingMode) error {
		postbyte, err := c.fetchByte()
		if err != nil {
			return err
		}
		src := registerIDFromNibble(postbyte >> 4)
		dst := registerIDFromNibble(postbyte)

		srcVal := c.regs.Get16(src)
		dstVal := c.regs.Get16(dst)

		c.regs.Set16(dst, srcVal)
		if isExchange {
			c.regs.Set16(src, dstVal)
		}
		return nil
	}
}

func registerStackAndMiscOpcodes() {
	reg0(0x34, "PSHS", instructions.Variant, 5, instructions.CategoryOther, pshPulHandler(true, false))
	reg0(0x35, "PULS", instructions.Variant, 5, instructions.CategoryOther, pshPulHandler(true, true))
	reg0(0x36, "PSHU", instructions.Variant, 5, instructions.CategoryOther, pshPulHandler(false, false))
	reg0(0x37, "PULU", instructions.Variant, 5, instructions.CategoryOther, pshPulHandler(false, true))

	reg0(0x1E, "EXG", instructions.Variant, 8, instructions.CategoryOther, exgTfrHandler(true))
	reg0(0x1F, "TFR", instructions.Variant, 6, instructions.CategoryOther, exgTfrHandler(false))

	reg0(0x12, "NOP", instructions.Inherent, 2, instructions.CategoryOther, func(c *CPU, mode instructions.AddressingMode) error { return nil })
	reg0(0x13, "SYNC", instructions.Inherent, 2, instructions.CategoryOther, func(c *CPU, mode instructions.AddressingMode) error {
		c.halt = waitingForInterruptSYNC
		return nil
	})
	reg0(0x19, "DAA", instructions.Inherent, 2, instructions.CategoryOther, func(c *CPU, mode instructions.AddressingMode) error {
		c.daa()
		return nil
	})
	reg0(0x1A, "ORCC", instructions.Immediate, 3, instructions.CategoryOther, func(c *CPU, mode instructions.AddressingMode) error {
		v, err := c.fetchByte()
		if err != nil {
			return err
		}
		c.regs.CC.SetValue(c.regs.CC.Value() | v)
		return nil
	})
	reg0(0x1C, "ANDCC", instructions.Immediate, 3, instructions.CategoryOther, func(c *CPU, mode instructions.AddressingMode) error {
		v, err := c.fetchByte()
		if err != nil {
			return err
		}
		c.regs.CC.SetValue(c.regs.CC.Value() & v)
		return nil
	})
	reg0(0x1D, "SEX", instructions.Inherent, 2, instructions.CategoryOther, func(c *CPU, mode instructions.AddressingMode) error {
		c.regs.A = 0
		if c.regs.B&0x80 != 0 {
			c.regs.A = 0xFF
		}
		c.setNZ16(c.regs.D())
		return nil
	})
	reg0(0x39, "RTS", instructions.Inherent, 5, instructions.CategoryFlow, func(c *CPU, mode instructions.AddressingMode) error {
		pc, err := c.pullS16()
		if err != nil {
			return err
		}
		c.regs.PC.SetValue(pc)
		return nil
	})
	reg0(0x3A, "ABX", instructions.Inherent, 3, instructions.CategoryOther, func(c *CPU, mode instructions.AddressingMode) error {
		c.regs.X += uint16(c.regs.B)
		return nil
	})
	reg0(0x3B, "RTI", instructions.Inherent, 6, instructions.CategoryInterrupt, func(c *CPU, mode instructions.AddressingMode) error {
		cc, err := c.pullS8()
		if err != nil {
			return err
		}
		c.regs.CC.SetValue(cc)
		if c.regs.CC.Get(registers.FlagE) {
			return c.pullEntireStateAfterCC()
		}
		pc, err := c.pullS16()
		if err != nil {
			return err
		}
		c.regs.PC.SetValue(pc)
		return nil
	})
	reg0(0x3C, "CWAI", instructions.Immediate, 20, instructions.CategoryInterrupt, func(c *CPU, mode instructions.AddressingMode) error {
		mask, err := c.fetchByte()
		if err != nil {
			return err
		}
		c.regs.CC.SetValue(c.regs.CC.Value() & mask)
		c.regs.CC.Set(registers.FlagE, true)
		if err := c.pushEntireState(); err != nil {
			return err
		}
		c.halt = waitingForInterruptCWAI
		return nil
	})
	reg0(0x3D, "MUL", instructions.Inherent, 11, instructions.CategoryOther, func(c *CPU, mode instructions.AddressingMode) error {
		product := uint16(c.regs.A) * uint16(c.regs.B)
		c.regs.SetD(product)
		c.regs.CC.Set(registers.FlagZ, product == 0)
		c.regs.CC.Set(registers.FlagC, product&0x80 != 0)
		return nil
	})
	reg0(0x3F, "SWI", instructions.Inherent, 19, instructions.CategoryInterrupt, func(c *CPU, mode instructions.AddressingMode) error {
		c.regs.CC.Set(registers.FlagE, true)
		if err := c.pushEntireState(); err != nil {
			return err
		}
		c.regs.CC.Set(registers.FlagI, true)
		c.regs.CC.Set(registers.FlagF, true)
		pc, err := c.bus.ReadWord(VectorSWI)
		if err != nil {
			return err
		}
		c.regs.PC.SetValue(pc)
		return nil
	})

	reg0(0x9D, "JSR", instructions.Direct, 7, instructions.CategorySubroutine, jsrHandler)
	reg0(0xAD, "JSR", instructions.Indexed, 7, instructions.CategorySubroutine, jsrHandler)
	reg0(0xBD, "JSR", instructions.Extended, 8, instructions.CategorySubroutine, jsrHandler)
}

func jsrHandler(c *CPU, mode instructions.AddressingMode) error {
	addr, err := c.resolveAddress(mode)
	if err != nil {
		return err
	}
	if err := c.pushS16(c.regs.PC.Value()); err != nil {
		return err
	}
	c.regs.PC.SetValue(addr)
	return nil
}

// pullEntireStateAfterCC completes an RTI's full-state restore once CC
// itself has already been pulled (RTI always pulls CC first to learn
// whether E is set).
func (c *CPU) pullEntireStateAfterCC() error {
	a, err := c.pullS8()
	if err != nil {
		return err
	}
	c.regs.A = a

	b, err := c.pullS8()
	if err != nil {
		return err
	}
	c.regs.B = b

	dp, err := c.pullS8()
	if err != nil {
		return err
	}
	c.regs.DP = dp

	x, err := c.pullS16()
	if err != nil {
		return err
	}
	c.regs.X = x

	y, err := c.pullS16()
	if err != nil {
		return err
	}
	c.regs.Y = y

	u, err := c.pullS16()
	if err != nil {
		return err
	}
	c.regs.U = u

	pc, err := c.pullS16()
	if err != nil {
		return err
	}
	c.regs.PC.SetValue(pc)
	return nil
}
