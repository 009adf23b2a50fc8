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

// Package rombank models the switchable memory window through which data
// tables, such as font glyphs, are read. Code that reads banked data pushes
// the bank it needs and restores the previous bank on every exit path:
//
//	defer banks.Push(rombank.Fonts)()
package rombank

import (
	"fmt"

	"github.com/pinmachine/pinkernel/curated"
)

// Bank identifies one window of banked data.
type Bank uint8

// Banks used by the kernel. Other values are free for consumers.
const (
	System Bank = iota
	Fonts
	Images
)

// Sentinel patterns raised as panics by Banks.
const (
	Overflow = "rombank: bank stack overflow pushing %d"
	Mismatch = "rombank: bank %d required, bank %d selected"
)

// DefaultDepth is the number of nested switches allowed.
const DefaultDepth = 8

// Banks records the selected bank and the banks to return to.
type Banks struct {
	current Bank
	saved   []Bank
	depth   int
}

// NewBanks is the preferred method of initialisation for the Banks type.
func NewBanks(depth int) *Banks {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Banks{
		saved: make([]Bank, 0, depth),
		depth: depth,
	}
}

// Current returns the selected bank.
func (b *Banks) Current() Bank {
	return b.current
}

// Depth returns the number of switches waiting to be restored.
func (b *Banks) Depth() int {
	return len(b.saved)
}

// Push selects a bank and returns the function that restores the previously
// selected bank. The restore function must be called exactly once.
func (b *Banks) Push(bank Bank) func() {
	if len(b.saved) >= b.depth {
		panic(curated.Errorf(Overflow, bank))
	}
	b.saved = append(b.saved, b.current)
	b.current = bank

	n := len(b.saved)
	return func() {
		if len(b.saved) != n {
			panic(fmt.Sprintf("rombank: restore out of order (depth %d, expected %d)", len(b.saved), n))
		}
		b.current = b.saved[n-1]
		b.saved = b.saved[:n-1]
	}
}

// Require panics if the given bank is not selected.
func (b *Banks) Require(bank Bank) {
	if b.current != bank {
		panic(curated.Errorf(Mismatch, bank, b.current))
	}
}
