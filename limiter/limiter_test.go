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

package limiter_test

import (
	"testing"
	"time"

	"github.com/pinmachine/pinkernel/curated"
	"github.com/pinmachine/pinkernel/limiter"
	"github.com/pinmachine/pinkernel/test"
)

func TestRate(t *testing.T) {
	lim, err := limiter.NewFPSLimiter(100)
	test.DemandSuccess(t, err)
	defer lim.Stop()

	test.ExpectEquality(t, lim.Period(), 10*time.Millisecond)

	start := time.Now()
	for i := 0; i < 10; i++ {
		test.ExpectSuccess(t, lim.Wait())
	}

	// the first event is immediate
	elapsed := time.Since(start)
	test.ExpectSuccess(t, elapsed >= 50*time.Millisecond, elapsed)
}

func TestInvalidRate(t *testing.T) {
	_, err := limiter.NewFPSLimiter(0)
	test.ExpectSuccess(t, curated.Is(err, limiter.InvalidRate))

	lim, err := limiter.NewFPSLimiter(10)
	test.DemandSuccess(t, err)
	defer lim.Stop()
	test.ExpectSuccess(t, curated.Is(lim.SetLimit(-1), limiter.InvalidRate))
	test.ExpectEquality(t, lim.Period(), 100*time.Millisecond)
}

func TestStop(t *testing.T) {
	lim, err := limiter.NewFPSLimiter(1000)
	test.DemandSuccess(t, err)
	lim.Stop()
	lim.Stop()
	test.ExpectFailure(t, lim.Wait())
}

func TestHasWaited(t *testing.T) {
	lim, err := limiter.NewFPSLimiter(1)
	test.DemandSuccess(t, err)
	defer lim.Stop()

	// the first event is due straight away. the next is a second later
	test.DemandSuccess(t, lim.Wait())
	time.Sleep(10 * time.Millisecond)
	test.ExpectFailure(t, lim.HasWaited())
}
