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

// Package memory implements the 16-bit address bus that routes CPU and VIA
// accesses to whichever device (RAM, BIOS ROM, cartridge ROM, VIA
// registers) owns the accessed range, and that lets the debugger observe
// every read and write without altering program behaviour.
package memory

import "github.com/vectrexy/vectrexy/vxerrors"

// Device is anything that can be mapped onto a range of the address bus.
type Device interface {
	// Read returns the byte at address, which is relative to the device's
	// own base (the Bus subtracts Range.Start before calling).
	Read(address uint16) (uint8, error)
	// Write stores value at address, relative to the device's own base.
	Write(address uint16, value uint8) error
}

// Range is an inclusive [Start, End] span of the 16-bit address space.
type Range struct {
	Start, End uint16
}

// Contains reports whether addr falls within r.
func (r Range) Contains(addr uint16) bool {
	return addr >= r.Start && addr <= r.End
}

type mapping struct {
	rng    Range
	device Device
}

// AccessObserver is notified of every bus access, after the access has
// been carried out. Observers are used by the debugger to evaluate
// watchpoints and by the tracer to annotate disassembly; they cannot veto
// or mutate an access.
type AccessObserver func(address uint16, value uint8, isWrite bool)

// Bus is the 16-bit address bus shared by the CPU and the VIA's direct
// memory-mapped registers.
type Bus struct {
	mappings  []mapping
	observers []AccessObserver
	// observersEnabled gates observer calls. The debugger disables this
	// while it disassembles the instruction about to execute, so that
	// decode traffic never triggers a watchpoint or gets folded into the
	// instruction trace.
	observersEnabled bool
}

// New returns an empty Bus with observers enabled.
func New() *Bus {
	return &Bus{observersEnabled: true}
}

// Connect maps device onto rng. Ranges must not overlap a previously
// connected range; Connect panics if they do, since this is a wiring
// mistake made once at startup, not a runtime condition to recover from.
func (b *Bus) Connect(device Device, rng Range) {
	for _, m := range b.mappings {
		if overlaps(m.rng, rng) {
			panic("memory: overlapping device ranges on bus")
		}
	}
	b.mappings = append(b.mappings, mapping{rng: rng, device: device})
}

func overlaps(a, b Range) bool {
	return a.Start <= b.End && b.Start <= a.End
}

// AddObserver registers fn to be called after every read and write. The
// parameter is written out as an unnamed function type (rather than
// AccessObserver) so that *Bus satisfies any interface declaring
// AddObserver with the literal signature -- such as debugger.Bus --
// without the named and unnamed func types failing Go's identical-type
// check for method-set satisfaction.
func (b *Bus) AddObserver(fn func(address uint16, value uint8, isWrite bool)) {
	b.observers = append(b.observers, fn)
}

// SetObserversEnabled toggles whether registered observers fire.
func (b *Bus) SetObserversEnabled(enabled bool) {
	b.observersEnabled = enabled
}

func (b *Bus) find(address uint16) *mapping {
	for i := range b.mappings {
		if b.mappings[i].rng.Contains(address) {
			return &b.mappings[i]
		}
	}
	return nil
}

// Read returns the byte at address, routing to the owning device. Reading
// an unmapped address is an InvalidMemoryAccess error, not a crash.
func (b *Bus) Read(address uint16) (uint8, error) {
	m := b.find(address)
	if m == nil {
		return 0, vxerrors.New(vxerrors.InvalidMemoryAccess, "read from unmapped address $%04X", address)
	}

	value, err := m.device.Read(address - m.rng.Start)
	if err != nil {
		return 0, err
	}

	if b.observersEnabled {
		for _, obs := range b.observers {
			obs(address, value, false)
		}
	}
	return value, nil
}

// Write stores value at address, routing to the owning device. Writing an
// unmapped address is an InvalidMemoryAccess error, not a crash.
func (b *Bus) Write(address uint16, value uint8) error {
	m := b.find(address)
	if m == nil {
		return vxerrors.New(vxerrors.InvalidMemoryAccess, "write of $%02X to unmapped address $%04X", value, address)
	}

	if err := m.device.Write(address-m.rng.Start, value); err != nil {
		return err
	}

	if b.observersEnabled {
		for _, obs := range b.observers {
			obs(address, value, true)
		}
	}
	return nil
}

// ReadWord returns the big-endian 16-bit value at address and address+1,
// the byte order used throughout the 6809's extended and indexed modes.
func (b *Bus) ReadWord(address uint16) (uint16, error) {
	hi, err := b.Read(address)
	if err != nil {
		return 0, err
	}
	lo, err := b.Read(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// WriteWord stores value as big-endian bytes at address and address+1.
func (b *Bus) WriteWord(address uint16, value uint16) error {
	if err := b.Write(address, uint8(value>>8)); err != nil {
		return err
	}
	return b.Write(address+1, uint8(value))
}
