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

package callset_test

import (
	"testing"

	"github.com/pinmachine/pinkernel/callset"
	"github.com/pinmachine/pinkernel/curated"
	"github.com/pinmachine/pinkernel/test"
)

const (
	boot callset.Kind = iota
	startGame
	endGame
)

func TestOrder(t *testing.T) {
	r := callset.NewRegistry[*[]string]()
	r.Name(startGame, "start game")

	for _, n := range []string{"lamps", "score", "deff"} {
		err := r.Register(startGame, n, func(log *[]string) {
			*log = append(*log, n)
		})
		test.DemandSuccess(t, err)
	}

	var log []string
	test.ExpectEquality(t, r.Invoke(startGame, &log), 3)
	test.DemandEquality(t, len(log), 3)
	test.ExpectEquality(t, log[0], "lamps")
	test.ExpectEquality(t, log[1], "score")
	test.ExpectEquality(t, log[2], "deff")

	names := r.Handlers(startGame)
	test.DemandEquality(t, len(names), 3)
	test.ExpectEquality(t, names[1], "score")

	// no handlers for this kind
	test.ExpectEquality(t, r.Invoke(endGame, &log), 0)
	test.ExpectEquality(t, len(r.Handlers(endGame)), 0)
}

func TestDuplicate(t *testing.T) {
	r := callset.NewRegistry[int]()
	test.ExpectSuccess(t, r.Register(boot, "a", func(int) {}))
	err := r.Register(boot, "a", func(int) {})
	test.ExpectSuccess(t, curated.Is(err, callset.Duplicate))

	// the same name for a different kind is fine
	test.ExpectSuccess(t, r.Register(endGame, "a", func(int) {}))
}

func TestSealed(t *testing.T) {
	r := callset.NewRegistry[int]()
	test.ExpectSuccess(t, r.Register(boot, "a", func(int) {}))
	r.Seal()

	err := r.Register(boot, "b", func(int) {})
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, callset.Sealed))

	sum := 0
	r2 := callset.NewRegistry[*int]()
	test.DemandSuccess(t, r2.Register(boot, "inc", func(v *int) { *v++ }))
	r2.Seal()
	r2.Invoke(boot, &sum)
	r2.Invoke(boot, &sum)
	test.ExpectEquality(t, sum, 2)
}
