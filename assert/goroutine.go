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

// Package assert contains checks that are only active when the program is
// built with the "assertions" build tag. They are used to catch misuse of the
// scheduler's single-task-at-a-time model during development.
package assert

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
)

// GetGoRoutineID returns an identifier for a goroutine. It returns a result
// that is (a) different between goroutines and (b) consistent for a given
// goroutine. It should only ever be used for debugging or testing purposes.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// SameGoroutine panics if the calling goroutine is not the goroutine with the
// given ID. Does nothing unless the assertions build tag is present.
func SameGoroutine(id uint64, context string) {
	if !Enabled {
		return
	}
	if g := GetGoRoutineID(); g != id {
		panic(fmt.Sprintf("assert: %s: called from goroutine %d, expected %d", context, g, id))
	}
}
