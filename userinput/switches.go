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

package userinput

import (
	"sync/atomic"

	"github.com/pinmachine/pinkernel/kernel/task"
)

// Switch identifies one of the switches that can be operated from the
// keyboard.
type Switch int

// List of valid Switch values. The coin door buttons are the ones used by
// the service menu and the acceptance screen.
const (
	SwEscape Switch = iota
	SwDown
	SwUp
	SwEnter
	SwStart
	SwLeftCoin
	SwRightCoin
	SwLeftFlipper
	SwRightFlipper
	SwTilt

	NumSwitches
)

func (sw Switch) String() string {
	switch sw {
	case SwEscape:
		return "escape"
	case SwDown:
		return "down"
	case SwUp:
		return "up"
	case SwEnter:
		return "enter"
	case SwStart:
		return "start"
	case SwLeftCoin:
		return "left coin"
	case SwRightCoin:
		return "right coin"
	case SwLeftFlipper:
		return "left flipper"
	case SwRightFlipper:
		return "right flipper"
	case SwTilt:
		return "tilt"
	}
	return "unknown"
}

// HandleInput conceptualises the switch matrix.
type HandleInput interface {
	HandleSwitch(sw Switch, closed bool) error
}

// Switches is a HandleInput implementation that records the state of every
// switch. It is safe to close switches from a sink goroutine and poll them
// from a task.
type Switches struct {
	closed [NumSwitches]atomic.Bool

	// number of times each switch has closed
	count [NumSwitches]atomic.Uint32
}

// HandleSwitch implements the HandleInput interface.
func (s *Switches) HandleSwitch(sw Switch, closed bool) error {
	if sw < 0 || sw >= NumSwitches {
		return nil
	}
	if closed && !s.closed[sw].Swap(true) {
		s.count[sw].Add(1)
	} else if !closed {
		s.closed[sw].Store(false)
	}
	return nil
}

// Poll returns true if the switch is closed.
func (s *Switches) Poll(sw Switch) bool {
	if sw < 0 || sw >= NumSwitches {
		return false
	}
	return s.closed[sw].Load()
}

// Count returns the number of times the switch has closed.
func (s *Switches) Count(sw Switch) int {
	if sw < 0 || sw >= NumSwitches {
		return 0
	}
	return int(s.count[sw].Load())
}

// WaitForButton sleeps the task until the switch has closed and opened
// again. The switch is polled every period ticks.
func (s *Switches) WaitForButton(t *task.Task, sw Switch, period task.Ticks) {
	for !s.Poll(sw) {
		t.Sleep(period)
	}
	for s.Poll(sw) {
		t.Sleep(period)
	}
}
