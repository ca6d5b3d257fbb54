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
	"fmt"
	"os"
)

// Cartridge is a cartridge ROM image mapped into the lower half of the
// address space. Vectrex cartridges are plain ROM dumps with no mapper
// hardware, so this is a thin wrapper over ROM that knows how to load
// itself from a .vec/.bin file.
type Cartridge struct {
	*ROM
	path string
}

// LoadCartridge reads the cartridge image at path into a new Cartridge,
// padded or truncated to size. Real cartridges are almost never exactly
// as large as the console's cartridge window (homebrew images in
// particular run from 4K up to the full 32K), but the connector always
// presents the full window to the address bus regardless of how much of
// it the physical ROM actually backs, so a short image is padded with
// zero bytes rather than leaving the upper part of the window unmapped.
func LoadCartridge(path string, size int) (*Cartridge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cartridge: reading %s: %w", path, err)
	}
	if len(data) > size {
		data = data[:size]
	}
	padded := make([]byte, size)
	copy(padded, data)
	return &Cartridge{ROM: NewROM(padded), path: path}, nil
}

// Path returns the filesystem path the cartridge was loaded from.
func (c *Cartridge) Path() string {
	return c.path
}
