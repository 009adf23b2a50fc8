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

// Package limiter produces events at a fixed rate. It is used as the tick
// source for the scheduler and the display driver when running in real time.
//
//	fps, _ := limiter.NewFPSLimiter(60)
//	defer fps.Stop()
//	for fps.Wait() {
//		sched.Tick()
//	}
//
// The rate is approximate. The sleep between events is adjusted to make up for
// drift but no attempt is made to catch up after a long stall.
package limiter

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pinmachine/pinkernel/curated"
)

// InvalidRate is the pattern for errors returned for rates of zero or less.
const InvalidRate = "limiter: invalid rate (%d)"

// FpsLimiter triggers a fixed number of times per second.
type FpsLimiter struct {
	// duration of one period in nanoseconds
	period atomic.Int64

	tick chan struct{}
	quit chan struct{}
	stop sync.Once
}

// NewFPSLimiter is the preferred method of initialisation for the FpsLimiter
// type.
func NewFPSLimiter(rate int) (*FpsLimiter, error) {
	lim := &FpsLimiter{
		tick: make(chan struct{}),
		quit: make(chan struct{}),
	}
	if err := lim.SetLimit(rate); err != nil {
		return nil, err
	}

	go lim.run()

	return lim, nil
}

func (lim *FpsLimiter) run() {
	adjusted := time.Duration(lim.period.Load())
	t := time.Now()
	for {
		select {
		case lim.tick <- struct{}{}:
		case <-lim.quit:
			return
		}

		time.Sleep(max(adjusted, 0))

		period := time.Duration(lim.period.Load())
		nt := time.Now()
		adjusted -= nt.Sub(t) - period

		// don't let the adjustment run away after a stall
		adjusted = min(adjusted, period)
		t = nt
	}
}

// SetLimit changes the rate.
func (lim *FpsLimiter) SetLimit(rate int) error {
	if rate <= 0 {
		return curated.Errorf(InvalidRate, rate)
	}
	lim.period.Store(int64(time.Second / time.Duration(rate)))
	return nil
}

// Period returns the time between events.
func (lim *FpsLimiter) Period() time.Duration {
	return time.Duration(lim.period.Load())
}

// Wait blocks until the next event. Returns false if the limiter has been
// stopped.
func (lim *FpsLimiter) Wait() bool {
	select {
	case <-lim.quit:
		return false
	default:
	}
	select {
	case <-lim.tick:
		return true
	case <-lim.quit:
		return false
	}
}

// HasWaited returns true if the next event is due, without blocking.
func (lim *FpsLimiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		return false
	}
}

// C returns the channel on which events are delivered.
func (lim *FpsLimiter) C() <-chan struct{} {
	return lim.tick
}

// Stop the limiter. Safe to call more than once.
func (lim *FpsLimiter) Stop() {
	lim.stop.Do(func() {
		close(lim.quit)
	})
}
