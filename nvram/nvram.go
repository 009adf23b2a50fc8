// This file is part of Pinkernel.
//
// Pinkernel is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Pinkernel is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Pinkernel.  If not, see <https://www.gnu.org/licenses/>.

// Package nvram is the small battery backed memory region used for settings
// that must survive a power cycle. The kernel never interprets the contents.
//
// The region is persisted as YAML, sixteen bytes to a row in hex:
//
//	size: 64
//	rows:
//	  - 1975b900000000000000000000000000
//	  - ...
package nvram

import (
	"encoding/hex"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pinmachine/pinkernel/curated"
	"github.com/pinmachine/pinkernel/logger"
)

// DefaultSize of the region in bytes.
const DefaultSize = 64

const bytesPerRow = 16

// Sentinel error patterns.
const (
	OutOfRange = "nvram: address %#04x out of range"
	BadFile    = "nvram: %s: %v"
)

// NVRAM is a region of persistent memory.
type NVRAM struct {
	data  []byte
	dirty bool
}

// NewNVRAM is the preferred method of initialisation for the NVRAM type.
func NewNVRAM(size int) *NVRAM {
	if size <= 0 {
		size = DefaultSize
	}
	return &NVRAM{
		data: make([]byte, size),
	}
}

// Size returns the size of the region in bytes.
func (n *NVRAM) Size() int {
	return len(n.data)
}

// Read the byte at the address.
func (n *NVRAM) Read(addr int) (byte, error) {
	if addr < 0 || addr >= len(n.data) {
		return 0, curated.Errorf(OutOfRange, addr)
	}
	return n.data[addr], nil
}

// Write the byte to the address.
func (n *NVRAM) Write(addr int, v byte) error {
	if addr < 0 || addr >= len(n.data) {
		return curated.Errorf(OutOfRange, addr)
	}
	if n.data[addr] != v {
		n.data[addr] = v
		n.dirty = true
	}
	return nil
}

// Dirty returns true if the region has changed since the last Load() or
// Save().
func (n *NVRAM) Dirty() bool {
	return n.dirty
}

// Clear the region.
func (n *NVRAM) Clear() {
	clear(n.data)
	n.dirty = true
}

type file struct {
	Size int      `yaml:"size"`
	Rows []string `yaml:"rows"`
}

// Save the region to a file.
func (n *NVRAM) Save(path string) error {
	f := file{Size: len(n.data)}
	for i := 0; i < len(n.data); i += bytesPerRow {
		f.Rows = append(f.Rows, hex.EncodeToString(n.data[i:min(i+bytesPerRow, len(n.data))]))
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return curated.Errorf(BadFile, path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return curated.Errorf(BadFile, path, err)
	}

	n.dirty = false
	return nil
}

// Load the region from a file. A missing file leaves the region cleared. A
// file for a region of a different size is an error.
func (n *NVRAM) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Logf(logger.Allow, "nvram", "%s not found. starting with a clear region", path)
			clear(n.data)
			n.dirty = false
			return nil
		}
		return curated.Errorf(BadFile, path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return curated.Errorf(BadFile, path, err)
	}
	if f.Size != len(n.data) {
		return curated.Errorf(BadFile, path, curated.Errorf("size is %d, expected %d", f.Size, len(n.data)))
	}

	b, err := hex.DecodeString(strings.Join(f.Rows, ""))
	if err != nil {
		return curated.Errorf(BadFile, path, err)
	}
	if len(b) != len(n.data) {
		return curated.Errorf(BadFile, path, curated.Errorf("%d bytes of data, expected %d", len(b), len(n.data)))
	}

	copy(n.data, b)
	n.dirty = false
	return nil
}
