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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function, which takes a formatting pattern and placeholder values
// in the same way as fmt.Errorf().
//
// The pattern is what identifies a curated error. Packages that raise errors
// declare their patterns as exported const strings and callers test for them
// with Is() and Has():
//
//	const NoFreeSlot = "task: no free slot for gid %d"
//
//	err := curated.Errorf(NoFreeSlot, gid)
//	if curated.Is(err, NoFreeSlot) {
//		// skip the effect
//	}
//
// Is() only matches the outermost pattern. Has() searches the whole chain,
// which is built by passing a curated error as a placeholder value:
//
//	f := curated.Errorf("deff: %v", err)
//	curated.Has(f, NoFreeSlot) // true
//	curated.Is(f, NoFreeSlot)  // false
//
// The Error() implementation normalises the chain so that duplicate adjacent
// parts are removed. Parts are separated by the sub-string ": ". For example,
// wrapping "task: no free slot" in the pattern "task: %v" prints as
//
//	task: no free slot
//
// and not "task: task: no free slot".
//
// Curated errors also implement Unwrap() so that the standard errors package
// can see any non-curated error stored as a placeholder value.
package curated
