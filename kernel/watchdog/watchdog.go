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

// Package watchdog implements the liveness check that guards the scheduler.
// Long running work must call Heartbeat() periodically. If no heartbeat is
// seen for longer than the timeout the watchdog expires, which is fatal: the
// expiry handler is expected to reset the whole system.
package watchdog

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pinmachine/pinkernel/curated"
	"github.com/pinmachine/pinkernel/logger"
)

// Expired is the pattern for the error given to the expiry handler.
const Expired = "watchdog: no heartbeat for %v"

// Watchdog records the time of the most recent heartbeat.
type Watchdog struct {
	timeout time.Duration

	// unix nanoseconds of the most recent heartbeat
	beat atomic.Int64

	expired atomic.Bool

	// called once when the watchdog expires. the default handler panics
	onExpire func(error)

	now func() time.Time
}

// NewWatchdog is the preferred method of initialisation for the Watchdog
// type. A nil onExpire function means that expiry will panic.
func NewWatchdog(timeout time.Duration, onExpire func(error)) *Watchdog {
	wd := &Watchdog{
		timeout:  timeout,
		onExpire: onExpire,
		now:      time.Now,
	}
	if wd.onExpire == nil {
		wd.onExpire = func(err error) {
			panic(err)
		}
	}
	wd.Heartbeat()
	return wd
}

// Heartbeat signals that forward progress is being made. Safe to call from
// any goroutine.
func (wd *Watchdog) Heartbeat() {
	wd.beat.Store(wd.now().UnixNano())
}

// Check compares the time since the last heartbeat with the timeout and
// calls the expiry handler if it has been exceeded. Returns true if the
// watchdog has expired. Once expired the handler is not called again.
func (wd *Watchdog) Check() bool {
	if wd.expired.Load() {
		return true
	}

	since := wd.now().Sub(time.Unix(0, wd.beat.Load()))
	if since <= wd.timeout {
		return false
	}

	wd.expired.Store(true)
	err := curated.Errorf(Expired, since.Round(time.Millisecond))
	logger.Log(logger.Allow, "watchdog", err)
	wd.onExpire(err)
	return true
}

// Expired returns true if the watchdog has fired.
func (wd *Watchdog) Expired() bool {
	return wd.expired.Load()
}

// Run checks the watchdog at a quarter of the timeout until the context is
// cancelled or the watchdog expires.
func (wd *Watchdog) Run(ctx context.Context) {
	period := max(wd.timeout/4, time.Millisecond)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if wd.Check() {
				return
			}
		}
	}
}
