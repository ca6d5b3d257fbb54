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

package memory

import (
	"github.com/vectrexy/vectrexy/logger"
	"github.com/vectrexy/vectrexy/vxerrors"
)

// RAM is a flat, read/write block of storage, used for the console's
// system RAM and for battery-backed cartridge RAM.
type RAM struct {
	data []uint8
}

// NewRAM returns a RAM device of the given size, zero-initialised.
func NewRAM(size int) *RAM {
	return &RAM{data: make([]uint8, size)}
}

func (r *RAM) Read(address uint16) (uint8, error) {
	if int(address) >= len(r.data) {
		return 0, vxerrors.New(vxerrors.InvalidMemoryAccess, "RAM read past end at offset $%04X", address)
	}
	return r.data[address], nil
}

func (r *RAM) Write(address uint16, value uint8) error {
	if int(address) >= len(r.data) {
		return vxerrors.New(vxerrors.InvalidMemoryAccess, "RAM write past end at offset $%04X", address)
	}
	r.data[address] = value
	return nil
}

// ROM is a flat, read-only block of storage, used for the BIOS and for a
// cartridge's program ROM. Writes are tolerated and ignored: real
// hardware simply doesn't connect the data bus for writes, and some
// programs write to ROM addresses by mistake without intending a fault.
type ROM struct {
	data []uint8
}

// NewROM returns a ROM device initialised from data. A copy of data is
// kept so that the caller's slice may be reused or mutated afterwards.
func NewROM(data []uint8) *ROM {
	rom := &ROM{data: make([]uint8, len(data))}
	copy(rom.data, data)
	return rom
}

func (r *ROM) Read(address uint16) (uint8, error) {
	if int(address) >= len(r.data) {
		return 0, vxerrors.New(vxerrors.InvalidMemoryAccess, "ROM read past end at offset $%04X", address)
	}
	return r.data[address], nil
}

func (r *ROM) Write(address uint16, value uint8) error {
	return nil
}

// Unmapped is connected to any address range that has no real device, so
// that Bus.find always resolves. Every access is logged and returns an
// InvalidMemoryAccess error, which fails the instruction that made it;
// the bus does not consult a vxerrors.Handler policy for these errors.
type Unmapped struct{}

func (u Unmapped) Read(address uint16) (uint8, error) {
	logger.Logf("MEM", "read from unmapped range at offset $%04X", address)
	return 0, vxerrors.New(vxerrors.InvalidMemoryAccess, "read from unmapped range at offset $%04X", address)
}

func (u Unmapped) Write(address uint16, value uint8) error {
	logger.Logf("MEM", "write of $%02X to unmapped range at offset $%04X", value, address)
	return vxerrors.New(vxerrors.InvalidMemoryAccess, "write of $%02X to unmapped range at offset $%04X", value, address)
}
