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

// Package cpu emulates the Motorola 6809E-class processor at the heart of
// the console: its register file, the three opcode pages (unprefixed,
// and the 0x10/0x11 prefixed pages), every addressing mode, and the
// NMI/FIRQ/IRQ interrupt priority scheme.
package cpu

import (
	"github.com/vectrexy/vectrexy/hardware/cpu/instructions"
	"github.com/vectrexy/vectrexy/hardware/cpu/registers"
	"github.com/vectrexy/vectrexy/vxerrors"
)

// Bus is the subset of the memory bus the CPU needs: byte and word
// access at arbitrary addresses.
type Bus interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, value uint8) error
	ReadWord(address uint16) (uint16, error)
	WriteWord(address uint16, value uint16) error
}

// Interrupt vector addresses, fixed by the 6809 hardware.
const (
	VectorReset uint16 = 0xFFFE
	VectorNMI   uint16 = 0xFFFC
	VectorSWI   uint16 = 0xFFFA
	VectorIRQ   uint16 = 0xFFF8
	VectorFIRQ  uint16 = 0xFFF6
	VectorSWI2  uint16 = 0xFFF4
	VectorSWI3  uint16 = 0xFFF2
)

// haltState distinguishes ordinary execution from the two zero-activity
// states CWAI and SYNC put the CPU into.
type haltState int

const (
	running haltState = iota
	waitingForInterruptCWAI
	waitingForInterruptSYNC
)

// CPU is the processor core. It holds no reference to the rest of the
// console beyond the Bus it reads and writes through; interrupts are
// requested by the caller (normally the VIA, by way of the top-level
// hardware loop) via RequestIRQ/RequestFIRQ/RequestNMI.
type CPU struct {
	regs registers.Registers
	bus  Bus

	halt haltState

	nmiPending, nmiArmed  bool
	firqPending           bool
	irqPending            bool

	// cyclesExecuted is incremented by every ExecuteInstruction call and
	// is what the VIA and the rest of the system step by.
	cyclesExecuted uint64
}

// New returns a CPU wired to bus. Callers should follow New with Reset
// once the bus has every device connected, so the reset vector reads the
// correct start address.
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// Registers exposes the register file, primarily for the debugger and
// disassembler; the CPU itself accesses it through the unexported field.
func (c *CPU) Registers() *registers.Registers {
	return &c.regs
}

// Reset loads PC from the reset vector and puts every status flag and
// pending-interrupt flag into its documented startup state.
func (c *CPU) Reset() error {
	pc, err := c.bus.ReadWord(VectorReset)
	if err != nil {
		return err
	}
	c.regs.PC.SetValue(pc)
	c.regs.CC.SetValue(0)
	c.regs.CC.Set(registers.FlagI, true)
	c.regs.CC.Set(registers.FlagF, true)
	c.halt = running
	c.nmiPending, c.nmiArmed = false, false
	c.firqPending, c.irqPending = false, false
	return nil
}

// RequestNMI latches a non-maskable interrupt, taken on the next
// instruction boundary regardless of CC's I/F masks. The CPU does not
// track whether S has been initialised: a pending NMI is taken even
// before the first write to S.
func (c *CPU) RequestNMI() {
	c.nmiPending = true
}

// RequestFIRQ latches a fast interrupt request, masked by CC's F flag.
func (c *CPU) RequestFIRQ() {
	c.firqPending = true
}

// RequestIRQ latches a normal interrupt request, masked by CC's I flag.
func (c *CPU) RequestIRQ() {
	c.irqPending = true
}

// CyclesExecuted returns the running total of cycles consumed since
// Reset, used by the VIA and the debugger's instruction trace to advance
// their own notion of time in step with the CPU.
func (c *CPU) CyclesExecuted() uint64 {
	return c.cyclesExecuted
}

func (c *CPU) fetchByte() (uint8, error) {
	v, err := c.bus.Read(c.regs.PC.Value())
	if err != nil {
		return 0, err
	}
	c.regs.PC.SetValue(c.regs.PC.Value() + 1)
	return v, nil
}

func (c *CPU) fetchWord() (uint16, error) {
	v, err := c.bus.ReadWord(c.regs.PC.Value())
	if err != nil {
		return 0, err
	}
	c.regs.PC.SetValue(c.regs.PC.Value() + 2)
	return v, nil
}

func (c *CPU) pushS8(v uint8) error {
	c.regs.S--
	return c.bus.Write(c.regs.S, v)
}

func (c *CPU) pushS16(v uint16) error {
	if err := c.pushS8(uint8(v)); err != nil {
		return err
	}
	return c.pushS8(uint8(v >> 8))
}

func (c *CPU) pullS8() (uint8, error) {
	v, err := c.bus.Read(c.regs.S)
	if err != nil {
		return 0, err
	}
	c.regs.S++
	return v, nil
}

func (c *CPU) pullS16() (uint16, error) {
	hi, err := c.pullS8()
	if err != nil {
		return 0, err
	}
	lo, err := c.pullS8()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// pushEntireState pushes every register onto S in the fixed order the
// 6809 uses for interrupt entry and for SWI/CWAI: PC, U, Y, X, DP, B, A,
// CC, CC pushed last (i.e. lowest address).
func (c *CPU) pushEntireState() error {
	if err := c.pushS16(c.regs.PC.Value()); err != nil {
		return err
	}
	if err := c.pushS16(c.regs.U); err != nil {
		return err
	}
	if err := c.pushS16(c.regs.Y); err != nil {
		return err
	}
	if err := c.pushS16(c.regs.X); err != nil {
		return err
	}
	if err := c.pushS8(c.regs.DP); err != nil {
		return err
	}
	if err := c.pushS8(c.regs.B); err != nil {
		return err
	}
	if err := c.pushS8(c.regs.A); err != nil {
		return err
	}
	return c.pushS8(c.regs.CC.Value())
}

func (c *CPU) pullEntireState() error {
	cc, err := c.pullS8()
	if err != nil {
		return err
	}
	c.regs.CC.SetValue(cc)

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

// serviceInterrupts checks pending interrupt latches in NMI > FIRQ > IRQ
// priority order and, if one is both pending and unmasked, vectors to its
// handler. It returns the number of cycles the interrupt entry itself
// consumed, or 0 if no interrupt was taken.
func (c *CPU) serviceInterrupts() (int, error) {
	if c.nmiPending {
		c.nmiPending = false
		c.halt = running
		c.regs.CC.Set(registers.FlagE, true)
		if err := c.pushEntireState(); err != nil {
			return 0, err
		}
		c.regs.CC.Set(registers.FlagI, true)
		c.regs.CC.Set(registers.FlagF, true)
		pc, err := c.bus.ReadWord(VectorNMI)
		if err != nil {
			return 0, err
		}
		c.regs.PC.SetValue(pc)
		return 19, nil
	}

	if c.firqPending && !c.regs.CC.Get(registers.FlagF) {
		c.firqPending = false
		c.halt = running
		c.regs.CC.Set(registers.FlagE, false)
		if err := c.pushS16(c.regs.PC.Value()); err != nil {
			return 0, err
		}
		if err := c.pushS8(c.regs.CC.Value()); err != nil {
			return 0, err
		}
		c.regs.CC.Set(registers.FlagI, true)
		c.regs.CC.Set(registers.FlagF, true)
		pc, err := c.bus.ReadWord(VectorFIRQ)
		if err != nil {
			return 0, err
		}
		c.regs.PC.SetValue(pc)
		return 10, nil
	}

	if c.irqPending && !c.regs.CC.Get(registers.FlagI) {
		c.irqPending = false
		c.halt = running
		c.regs.CC.Set(registers.FlagE, true)
		if err := c.pushEntireState(); err != nil {
			return 0, err
		}
		c.regs.CC.Set(registers.FlagI, true)
		pc, err := c.bus.ReadWord(VectorIRQ)
		if err != nil {
			return 0, err
		}
		c.regs.PC.SetValue(pc)
		return 19, nil
	}

	return 0, nil
}

// ExecuteInstruction runs exactly one instruction (or, if the CPU is
// halted by CWAI/SYNC with no qualifying interrupt pending, reports zero
// cycles consumed without advancing PC) and returns the Definition of
// whatever was executed along with the number of cycles it took. pc is
// the address the instruction was fetched from, for the debugger's trace.
func (c *CPU) ExecuteInstruction() (instructions.Definition, uint16, int, error) {
	startPC := c.regs.PC.Value()

	if cycles, err := c.serviceInterrupts(); err != nil {
		return instructions.Definition{}, startPC, 0, err
	} else if cycles > 0 {
		c.cyclesExecuted += uint64(cycles)
		return instructions.Definition{Mnemonic: "[interrupt]", Category: instructions.CategoryInterrupt}, startPC, cycles, nil
	}

	if c.halt == waitingForInterruptCWAI || c.halt == waitingForInterruptSYNC {
		// Per spec.md §4.2 step 2: idle with no interrupt pending returns
		// zero cycles, which the debugger's instrumented step treats as
		// "do not log, do not hash" rather than a real executed
		// instruction.
		return instructions.Definition{Mnemonic: "[idle]"}, startPC, 0, nil
	}

	opcode, err := c.fetchByte()
	if err != nil {
		return instructions.Definition{}, startPC, 0, err
	}

	var page *[256]*opcodeEntry
	var opcodeValue uint16 = uint16(opcode)
	switch opcode {
	case 0x10:
		page = &page1Table
		opcode, err = c.fetchByte()
		if err != nil {
			return instructions.Definition{}, startPC, 0, err
		}
		opcodeValue = 0x1000 | uint16(opcode)
	case 0x11:
		page = &page2Table
		opcode, err = c.fetchByte()
		if err != nil {
			return instructions.Definition{}, startPC, 0, err
		}
		opcodeValue = 0x1100 | uint16(opcode)
	default:
		page = &page0Table
	}

	entry := page[opcode]
	if entry == nil {
		err := vxerrors.New(vxerrors.InvalidOpcode, "illegal opcode $%04X at $%04X", opcodeValue, startPC)
		def := instructions.Definition{OpCode: opcodeValue, Mnemonic: "???", Mode: instructions.Illegal}
		return def, startPC, 0, err
	}

	if err := entry.fn(c, entry.def.Mode); err != nil {
		return entry.def, startPC, 0, err
	}

	c.cyclesExecuted += uint64(entry.def.Cycles)
	return entry.def, startPC, entry.def.Cycles, nil
}
