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

// Package trace records every instruction the debugger's instrumented
// execution loop steps through, in a fixed-size ring buffer, and
// computes the running CRC-32C hash two cooperating instances compare to
// confirm they're staying in lockstep.
package trace

import (
	"hash/crc32"

	"github.com/vectrexy/vectrexy/hardware/cpu/instructions"
	"github.com/vectrexy/vectrexy/hardware/cpu/registers"
)

// maxMemoryAccesses bounds how many accesses a single instruction's trace
// slot records; excess accesses are dropped rather than growing the slot
// without bound (an instruction can touch memory at most a handful of
// times, so this never legitimately truncates real traffic).
const maxMemoryAccesses = 16

// Access is one memory read or write observed while an instruction was
// executing, in the order the CPU performed it.
type Access struct {
	Address uint16
	Value   uint8
	IsRead  bool
}

// Info is one recorded instruction: where it was fetched from, what it
// was, the register file before and after it ran, and the memory traffic
// it produced. This is exactly the InstructionTraceInfo of spec.md §3.
type Info struct {
	PC       uint16
	OpCode   uint16
	Mnemonic string
	// Text is the fully disassembled, symbol-substituted mnemonic and
	// operand text (e.g. "LDA $c000{START}"), captured at the moment the
	// instruction was decoded so later trace dumps render identically to
	// how it looked live even if the bytes it was decoded from have
	// since changed.
	Text   string
	Page   int
	Mode   instructions.AddressingMode
	Cycles int

	PreRegs  registers.Registers
	PostRegs registers.Registers

	Accesses []Access
	// FetchSize is how many of Accesses's leading entries are the
	// instruction's own opcode/operand fetch rather than operand memory
	// traffic, per spec.md §4.4 step 3.
	FetchSize int
}

// addAccess appends one bus access to info's Accesses, silently dropping
// anything past maxMemoryAccesses the way spec.md §3 specifies for
// InstructionTraceInfo.memoryAccesses.
func (info *Info) addAccess(address uint16, value uint8, isWrite bool) {
	if len(info.Accesses) >= maxMemoryAccesses {
		return
	}
	info.Accesses = append(info.Accesses, Access{Address: address, Value: value, IsRead: !isWrite})
}

// AddAccess is the exported form of addAccess, called by the debugger's
// bus observer while a trace slot is the "current" one.
func (info *Info) AddAccess(address uint16, value uint8, isWrite bool) {
	info.addAccess(address, value, isWrite)
}

// capacity is the ring buffer's fixed size. A million entries is enough
// to scroll back through several seconds of execution at full speed
// without unbounded memory growth.
const capacity = 1_000_000

// Ring is a fixed-capacity circular buffer of Info records. Once full, a
// new Record overwrites the oldest entry.
type Ring struct {
	entries []Info
	cursor  int
	count   int
}

// NewRing returns an empty Ring at the standard capacity.
func NewRing() *Ring {
	return &Ring{entries: make([]Info, capacity)}
}

// Record appends info, overwriting the oldest entry once the ring is
// full.
func (r *Ring) Record(info Info) {
	r.entries[r.cursor] = info
	r.cursor = (r.cursor + 1) % len(r.entries)
	if r.count < len(r.entries) {
		r.count++
	}
}

// Len returns how many entries are currently recorded (at most
// capacity).
func (r *Ring) Len() int {
	return r.count
}

// At returns the entry n steps back from the most recently recorded one
// (0 is the most recent), and whether that far back is actually
// available.
func (r *Ring) At(n int) (Info, bool) {
	if n < 0 || n >= r.count {
		return Info{}, false
	}
	idx := (r.cursor - 1 - n + len(r.entries)) % len(r.entries)
	return r.entries[idx], true
}

// Recent returns the n most recently recorded entries, oldest first. If
// fewer than n have been recorded, it returns all of them.
func (r *Ring) Recent(n int) []Info {
	if n > r.count {
		n = r.count
	}
	out := make([]Info, n)
	for i := 0; i < n; i++ {
		info, _ := r.At(n - 1 - i)
		out[i] = info
	}
	return out
}

// crc32cTable is the Castagnoli polynomial table, the variant iSCSI and
// several sync-checksum protocols use because its error-detection
// properties are stronger than the IEEE polynomial's for short messages.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// HashState accumulates a running determinism hash across a sequence of
// instructions, for two debugger instances to compare over a
// syncproto.Protocol and detect the instant their executions diverge.
type HashState struct {
	crc uint32
}

func appendRegs(buf []byte, r *registers.Registers) []byte {
	buf = append(buf, r.A, r.B)
	buf = append(buf, byte(r.X>>8), byte(r.X), byte(r.Y>>8), byte(r.Y))
	buf = append(buf, byte(r.U>>8), byte(r.U), byte(r.S>>8), byte(r.S))
	buf = append(buf, r.DP, byte(r.PC.Value()>>8), byte(r.PC.Value()))
	buf = append(buf, r.CC.Value())
	return buf
}

// Add folds info into the running hash, per spec.md §4.6's HashTrace:
// opcode, addressing mode, page, elapsed cycles, every memory access (in
// order), then pre-regs and post-regs. The accumulation is additive
// rather than a true chained CRC (each step's checksum is added to the
// total rather than replacing it) -- this is deliberately kept
// consistent with the original tool's determinism hash ("crc +=
// crc32c(crc, x)") rather than "corrected" to a textbook chained CRC,
// since two sessions only need to agree with each other, not with an
// external CRC implementation.
func (h *HashState) Add(info Info) {
	buf := make([]byte, 0, 48)
	buf = append(buf, byte(info.OpCode>>8), byte(info.OpCode))
	buf = append(buf, byte(info.Mode), byte(info.Page))
	buf = append(buf, byte(info.Cycles>>8), byte(info.Cycles))
	for _, a := range info.Accesses {
		isRead := byte(0)
		if a.IsRead {
			isRead = 1
		}
		buf = append(buf, byte(a.Address>>8), byte(a.Address), isRead, a.Value)
	}
	buf = appendRegs(buf, &info.PreRegs)
	buf = appendRegs(buf, &info.PostRegs)

	h.crc += crc32.Update(h.crc, crc32cTable, buf)
}

// Value returns the current accumulated hash.
func (h *HashState) Value() uint32 {
	return h.crc
}

// Reset zeroes the accumulated hash, for starting a new sync session.
func (h *HashState) Reset() {
	h.crc = 0
}
