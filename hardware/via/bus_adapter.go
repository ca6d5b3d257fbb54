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

package via

// BusDevice adapts Via's sixteen-register interface onto the memory
// bus's flat byte-addressed Device interface: the low four bits of any
// address mapped to the VIA select the register, mirrored every sixteen
// bytes the way the real chip's incomplete address decoding does.
type BusDevice struct {
	*Via
}

// NewBusDevice wraps v for connection to a memory bus.
func NewBusDevice(v *Via) BusDevice {
	return BusDevice{Via: v}
}

func (d BusDevice) Read(address uint16) (uint8, error) {
	return d.Via.Read(Register(address & 0x0F))
}

func (d BusDevice) Write(address uint16, value uint8) error {
	return d.Via.Write(Register(address&0x0F), value)
}
