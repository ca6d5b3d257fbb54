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

// opFunc is the signature every opcode handler satisfies. mode is the
// addressing mode the Definition the handler was registered under
// declares; most handlers use it to decide how to read or write their
// operand via the CPU's resolveAddress/readOperand helpers.
type opFunc func(c *CPU, mode instructions.AddressingMode) error

type opcodeEntry struct {
	def instructions.Definition
	fn  opFunc
}

// page0Table, page1Table, and page2Table are indexed by the opcode byte
// following any page-select prefix (0x10 or 0x11). A nil entry is an
// illegal/unassigned opcode.
var (
	page0Table [256]*opcodeEntry
	page1Table [256]*opcodeEntry
	page2Table [256]*opcodeEntry
)

func reg0(opcode uint8, mnemonic string, mode instructions.AddressingMode, cycles int, cat instructions.Category, fn opFunc) {
	page0Table[opcode] = &opcodeEntry{
		def: instructions.Definition{OpCode: uint16(opcode), Mnemonic: mnemonic, Mode: mode, Cycles: cycles, Category: cat},
		fn:  fn,
	}
}

func reg1(opcode uint8, mnemonic string, mode instructions.AddressingMode, cycles int, cat instructions.Category, fn opFunc) {
	page1Table[opcode] = &opcodeEntry{
		def: instructions.Definition{OpCode: 0x1000 | uint16(opcode), Mnemonic: mnemonic, Mode: mode, Cycles: cycles, Category: cat},
		fn:  fn,
	}
}

func reg2(opcode uint8, mnemonic string, mode instructions.AddressingMode, cycles int, cat instructions.Category, fn opFunc) {
	page2Table[opcode] = &opcodeEntry{
		def: instructions.Definition{OpCode: 0x1100 | uint16(opcode), Mnemonic: mnemonic, Mode: mode, Cycles: cycles, Category: cat},
		fn:  fn,
	}
}

// reg16 is a pair of accessors over one of the 6809's 16-bit registers.
// D is synthesized from A:B rather than stored directly, so it needs its
// own get/set pair just like the real registers do.
type reg16 struct {
	get func(c *CPU) uint16
	set func(c *CPU, v uint16)
}

var (
	regD16 = reg16{get: func(c *CPU) uint16 { return c.regs.D() }, set: func(c *CPU, v uint16) { c.regs.SetD(v) }}
	regX16 = reg16{get: func(c *CPU) uint16 { return c.regs.X }, set: func(c *CPU, v uint16) { c.regs.X = v }}
	regY16 = reg16{get: func(c *CPU) uint16 { return c.regs.Y }, set: func(c *CPU, v uint16) { c.regs.Y = v }}
	regU16 = reg16{get: func(c *CPU) uint16 { return c.regs.U }, set: func(c *CPU, v uint16) { c.regs.U = v }}
	regS16 = reg16{get: func(c *CPU) uint16 { return c.regs.S }, set: func(c *CPU, v uint16) { c.regs.S = v }}
)

func regA8(c *CPU) *uint8 { return &c.regs.A }
func regB8(c *CPU) *uint8 { return &c.regs.B }

func rmwMemHandler(fn func(*CPU, uint8) uint8, readOnly bool) opFunc {
	return func(c *CPU, mode instructions.AddressingMode) error {
		addr, err := c.resolveAddress(mode)
		if err != nil {
			return err
		}
		v, err := c.bus.Read(addr)
		if err != nil {
			return err
		}
		result := fn(c, v)
		if readOnly {
			return nil
		}
		return c.bus.Write(addr, result)
	}
}

func rmwRegHandler(reg func(c *CPU) *uint8, fn func(*CPU, uint8) uint8, readOnly bool) opFunc {
	return func(c *CPU, mode instructions.AddressingMode) error {
		r := reg(c)
		result := fn(c, *r)
		if !readOnly {
			*r = result
		}
		return nil
	}
}

func jmpHandler(c *CPU, mode instructions.AddressingMode) error {
	addr, err := c.resolveAddress(mode)
	if err != nil {
		return err
	}
	c.regs.PC.SetValue(addr)
	return nil
}

func alu8Handler(reg func(c *CPU) *uint8, op func(c *CPU, a, b uint8) uint8, store bool) opFunc {
	return func(c *CPU, mode instructions.AddressingMode) error {
		operand, err := c.readOperand8(mode)
		if err != nil {
			return err
		}
		r := reg(c)
		result := op(c, *r, operand)
		if store {
			*r = result
		}
		return nil
	}
}

func storeHandler(reg func(c *CPU) *uint8) opFunc {
	return func(c *CPU, mode instructions.AddressingMode) error {
		addr, err := c.resolveAddress(mode)
		if err != nil {
			return err
		}
		v := *reg(c)
		if err := c.bus.Write(addr, v); err != nil {
			return err
		}
		c.setNZ8(v)
		c.regs.CC.Set(registers.FlagV, false)
		return nil
	}
}

func op16Load(r reg16) opFunc {
	return func(c *CPU, mode instructions.AddressingMode) error {
		v, err := c.readOperand16(mode)
		if err != nil {
			return err
		}
		r.set(c, v)
		c.setNZ16(v)
		c.regs.CC.Set(registers.FlagV, false)
		return nil
	}
}

func op16Store(r reg16) opFunc {
	return func(c *CPU, mode instructions.AddressingMode) error {
		addr, err := c.resolveAddress(mode)
		if err != nil {
			return err
		}
		v := r.get(c)
		if err := c.bus.WriteWord(addr, v); err != nil {
			return err
		}
		c.setNZ16(v)
		c.regs.CC.Set(registers.FlagV, false)
		return nil
	}
}

func op16Cmp(r reg16) opFunc {
	return func(c *CPU, mode instructions.AddressingMode) error {
		v, err := c.readOperand16(mode)
		if err != nil {
			return err
		}
		c.sub16(r.get(c), v)
		return nil
	}
}

func op16Add(r reg16) opFunc {
	return func(c *CPU, mode instructions.AddressingMode) error {
		v, err := c.readOperand16(mode)
		if err != nil {
			return err
		}
		r.set(c, c.add16(r.get(c), v))
		return nil
	}
}

func op16Sub(r reg16) opFunc {
	return func(c *CPU, mode instructions.AddressingMode) error {
		v, err := c.readOperand16(mode)
		if err != nil {
			return err
		}
		r.set(c, c.sub16(r.get(c), v))
		return nil
	}
}

func leaHandler(r reg16, affectsZ bool) opFunc {
	return func(c *CPU, mode instructions.AddressingMode) error {
		addr, err := c.resolveAddress(mode)
		if err != nil {
			return err
		}
		r.set(c, addr)
		if affectsZ {
			c.regs.CC.Set(registers.FlagZ, addr == 0)
		}
		return nil
	}
}

func branchHandler(cond func(c *CPU) bool) opFunc {
	return func(c *CPU, mode instructions.AddressingMode) error {
		offset, err := c.fetchByte()
		if err != nil {
			return err
		}
		if cond == nil || cond(c) {
			c.regs.PC.Offset(int16(int8(offset)))
		}
		return nil
	}
}

func longBranchHandler(cond func(c *CPU) bool) opFunc {
	return func(c *CPU, mode instructions.AddressingMode) error {
		offset, err := c.fetchWord()
		if err != nil {
			return err
		}
		if cond == nil || cond(c) {
			c.regs.PC.Offset(int16(offset))
		}
		return nil
	}
}

func init() {
	registerRMWOpcodes()
	register8BitALUOpcodes()
	register16BitOpcodes()
	registerBranchOpcodes()
	registerStackAndMiscOpcodes()
	registerPage1Opcodes()
	registerPage2Opcodes()
}

// registerRMWOpcodes wires the read-modify-write family (NEG, COM, LSR,
// ROR, ASR, ASL, ROL, DEC, INC, TST, CLR) across their Direct, inherent-A,
// inherent-B, Indexed, and Extended forms. Each mnemonic's five opcodes
// sit at a fixed offset from its Direct-mode base, the same layout the
// real 6809 opcode map uses, so one loop wires the whole family.
func registerRMWOpcodes() {
	type rmwDef struct {
		base     uint8
		name     string
		fn       func(*CPU, uint8) uint8
		readOnly bool
	}
	ops := []rmwDef{
		{0x00, "NEG", (*CPU).neg8, false},
		{0x03, "COM", (*CPU).com8, false},
		{0x04, "LSR", (*CPU).lsr8, false},
		{0x06, "ROR", (*CPU).ror8, false},
		{0x07, "ASR", (*CPU).asr8, false},
		{0x08, "ASL", (*CPU).asl8, false},
		{0x09, "ROL", (*CPU).rol8, false},
		{0x0A, "DEC", (*CPU).dec8, false},
		{0x0C, "INC", (*CPU).inc8, false},
		{0x0D, "TST", (*CPU).tst8, true},
		{0x0F, "CLR", (*CPU).clr8, false},
	}
	for _, op := range ops {
		cat := instructions.CategoryReadModifyWrite
		if op.readOnly {
			cat = instructions.CategoryRead
		}
		reg0(op.base, op.name, instructions.Direct, 6, cat, rmwMemHandler(op.fn, op.readOnly))
		reg0(op.base+0x40, op.name+"A", instructions.Inherent, 2, cat, rmwRegHandler(regA8, op.fn, op.readOnly))
		reg0(op.base+0x50, op.name+"B", instructions.Inherent, 2, cat, rmwRegHandler(regB8, op.fn, op.readOnly))
		reg0(op.base+0x60, op.name, instructions.Indexed, 6, cat, rmwMemHandler(op.fn, op.readOnly))
		reg0(op.base+0x70, op.name, instructions.Extended, 7, cat, rmwMemHandler(op.fn, op.readOnly))
	}

	reg0(0x0E, "JMP", instructions.Direct, 3, instructions.CategoryFlow, jmpHandler)
	reg0(0x6E, "JMP", instructions.Indexed, 3, instructions.CategoryFlow, jmpHandler)
	reg0(0x7E, "JMP", instructions.Extended, 3, instructions.CategoryFlow, jmpHandler)
}

// register8BitALUOpcodes wires SUBA/CMPA/SBCA/ANDA/BITA/LDA/STA/EORA/
// ADCA/ORA/ADDA and their B counterparts. Like the RMW family, the whole
// set sits at fixed offsets from each mnemonic's Immediate-mode base.
func register8BitALUOpcodes() {
	type aluDef struct {
		base  uint8
		name  string
		op    func(c *CPU, a, b uint8) uint8
		store bool
	}
	ops := []aluDef{
		{0x80, "SUB", func(c *CPU, a, b uint8) uint8 { return c.sub8(a, b, false) }, true},
		{0x81, "CMP", func(c *CPU, a, b uint8) uint8 { return c.sub8(a, b, false) }, false},
		{0x82, "SBC", func(c *CPU, a, b uint8) uint8 { return c.sub8(a, b, c.regs.CC.Get(registers.FlagC)) }, true},
		{0x84, "AND", func(c *CPU, a, b uint8) uint8 { return c.and8(a, b) }, true},
		{0x85, "BIT", func(c *CPU, a, b uint8) uint8 { return c.and8(a, b) }, false},
		{0x86, "LD", func(c *CPU, a, b uint8) uint8 { c.setNZ8(b); c.regs.CC.Set(registers.FlagV, false); return b }, true},
		{0x88, "EOR", func(c *CPU, a, b uint8) uint8 { return c.eor8(a, b) }, true},
		{0x89, "ADC", func(c *CPU, a, b uint8) uint8 { return c.add8(a, b, c.regs.CC.Get(registers.FlagC)) }, true},
		{0x8A, "OR", func(c *CPU, a, b uint8) uint8 { return c.or8(a, b) }, true},
		{0x8B, "ADD", func(c *CPU, a, b uint8) uint8 { return c.add8(a, b, false) }, true},
	}
	type modeOffset struct {
		offset uint8
		mode   instructions.AddressingMode
		cycles int
	}
	modes := []modeOffset{
		{0x00, instructions.Immediate, 2},
		{0x10, instructions.Direct, 4},
		{0x20, instructions.Indexed, 4},
		{0x30, instructions.Extended, 5},
	}
	for _, op := range ops {
		mnemonic := op.name + "A"
		cat := instructions.CategoryRead
		if op.store {
			cat = instructions.CategoryReadModifyWrite
		}
		for _, m := range modes {
			reg0(op.base+m.offset, mnemonic, m.mode, m.cycles, cat, alu8Handler(regA8, op.op, op.store))
			reg0(op.base+0x40+m.offset, op.name+"B", m.mode, m.cycles, cat, alu8Handler(regB8, op.op, op.store))
		}
	}

	stores := []struct {
		base uint8
		name string
		reg  func(c *CPU) *uint8
	}{
		{0x87, "STA", regA8},
		{0x87 + 0x40, "STB", regB8},
	}
	for _, s := range stores {
		reg0(s.base+0x10, s.name, instructions.Direct, 4, instructions.CategoryWrite, storeHandler(s.reg))
		reg0(s.base+0x20, s.name, instructions.Indexed, 4, instructions.CategoryWrite, storeHandler(s.reg))
		reg0(s.base+0x30, s.name, instructions.Extended, 5, instructions.CategoryWrite, storeHandler(s.reg))
	}
}

// register16BitOpcodes wires SUBD/ADDD/CMPX/LDX/STX/LDD/STD/LDU/STU.
func register16BitOpcodes() {
	type def16 struct {
		base uint8
		name string
		kind string // "load", "store", "cmp", "add", "sub"
		reg  reg16
	}
	ops := []def16{
		{0x83, "SUBD", "sub", regD16},
		{0x8C, "CMPX", "cmp", regX16},
		{0x8E, "LDX", "load", regX16},
		{0x8F, "STX", "store", regX16},
		{0xC3, "ADDD", "add", regD16},
		{0xCC, "LDD", "load", regD16},
		{0xCD, "STD", "store", regD16},
		{0xCE, "LDU", "load", regU16},
		{0xCF, "STU", "store", regU16},
	}
	for _, op := range ops {
		var fn func(reg16) opFunc
		switch op.kind {
		case "load":
			fn = op16Load
		case "store":
			fn = op16Store
		case "cmp":
			fn = op16Cmp
		case "add":
			fn = op16Add
		case "sub":
			fn = op16Sub
		}

		if op.kind != "store" {
			reg0(op.base, op.name, instructions.Immediate, 3, instructions.CategoryRead, fn(op.reg))
		}
		cat := instructions.CategoryRead
		if op.kind == "store" {
			cat = instructions.CategoryWrite
		} else if op.kind == "load" {
			cat = instructions.CategoryReadModifyWrite
		}
		reg0(op.base+0x10, op.name, instructions.Direct, 5, cat, fn(op.reg))
		reg0(op.base+0x20, op.name, instructions.Indexed, 5, cat, fn(op.reg))
		reg0(op.base+0x30, op.name, instructions.Extended, 6, cat, fn(op.reg))
	}

	reg0(0x30, "LEAX", instructions.Indexed, 4, instructions.CategoryOther, leaHandler(regX16, true))
	reg0(0x31, "LEAY", instructions.Indexed, 4, instructions.CategoryOther, leaHandler(regY16, true))
	reg0(0x32, "LEAS", instructions.Indexed, 4, instructions.CategoryOther, leaHandler(regS16, false))
	reg0(0x33, "LEAU", instructions.Indexed, 4, instructions.CategoryOther, leaHandler(regU16, false))
}

func registerBranchOpcodes() {
	type branchDef struct {
		opcode uint8
		name   string
		cond   func(c *CPU) bool
	}
	conds := []branchDef{
		{0x20, "BRA", nil},
		{0x21, "BRN", func(c *CPU) bool { return false }},
		{0x22, "BHI", func(c *CPU) bool { return !c.regs.CC.Get(registers.FlagC) && !c.regs.CC.Get(registers.FlagZ) }},
		{0x23, "BLS", func(c *CPU) bool { return c.regs.CC.Get(registers.FlagC) || c.regs.CC.Get(registers.FlagZ) }},
		{0x24, "BHS", func(c *CPU) bool { return !c.regs.CC.Get(registers.FlagC) }},
		{0x25, "BLO", func(c *CPU) bool { return c.regs.CC.Get(registers.FlagC) }},
		{0x26, "BNE", func(c *CPU) bool { return !c.regs.CC.Get(registers.FlagZ) }},
		{0x27, "BEQ", func(c *CPU) bool { return c.regs.CC.Get(registers.FlagZ) }},
		{0x28, "BVC", func(c *CPU) bool { return !c.regs.CC.Get(registers.FlagV) }},
		{0x29, "BVS", func(c *CPU) bool { return c.regs.CC.Get(registers.FlagV) }},
		{0x2A, "BPL", func(c *CPU) bool { return !c.regs.CC.Get(registers.FlagN) }},
		{0x2B, "BMI", func(c *CPU) bool { return c.regs.CC.Get(registers.FlagN) }},
		{0x2C, "BGE", func(c *CPU) bool { return c.regs.CC.Get(registers.FlagN) == c.regs.CC.Get(registers.FlagV) }},
		{0x2D, "BLT", func(c *CPU) bool { return c.regs.CC.Get(registers.FlagN) != c.regs.CC.Get(registers.FlagV) }},
		{0x2E, "BGT", func(c *CPU) bool {
			nv := c.regs.CC.Get(registers.FlagN) == c.regs.CC.Get(registers.FlagV)
			return nv && !c.regs.CC.Get(registers.FlagZ)
		}},
		{0x2F, "BLE", func(c *CPU) bool {
			nv := c.regs.CC.Get(registers.FlagN) != c.regs.CC.Get(registers.FlagV)
			return nv || c.regs.CC.Get(registers.FlagZ)
		}},
	}
	for _, b := range conds {
		reg0(b.opcode, b.name, instructions.Relative, 3, instructions.CategoryFlow, branchHandler(b.cond))
	}

	reg0(0x16, "LBRA", instructions.Relative, 5, instructions.CategoryFlow, longBranchHandler(nil))
	reg0(0x17, "LBSR", instructions.Relative, 9, instructions.CategorySubroutine, func(c *CPU, mode instructions.AddressingMode) error {
		offset, err := c.fetchWord()
		if err != nil {
			return err
		}
		if err := c.pushS16(c.regs.PC.Value()); err != nil {
			return err
		}
		c.regs.PC.Offset(int16(offset))
		return nil
	})
	reg0(0x8D, "BSR", instructions.Relative, 7, instructions.CategorySubroutine, func(c *CPU, mode instructions.AddressingMode) error {
		offset, err := c.fetchByte()
		if err != nil {
			return err
		}
		if err := c.pushS16(c.regs.PC.Value()); err != nil {
			return err
		}
		c.regs.PC.Offset(int16(int8(offset)))
		return nil
	})
}
