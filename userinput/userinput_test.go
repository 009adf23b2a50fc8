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

package userinput_test

import (
	"testing"

	"github.com/pinmachine/pinkernel/kernel/task"
	"github.com/pinmachine/pinkernel/test"
	"github.com/pinmachine/pinkernel/userinput"
)

func TestHandleUserInput(t *testing.T) {
	var sw userinput.Switches

	quit, err := userinput.HandleUserInput(userinput.EventKeyboard{Key: "Return", Down: true}, &sw)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, quit)
	test.ExpectSuccess(t, sw.Poll(userinput.SwEnter))
	test.ExpectEquality(t, sw.Count(userinput.SwEnter), 1)

	// repeated closure without an opening is not counted
	_, _ = userinput.HandleUserInput(userinput.EventKeyboard{Key: "Keypad Enter", Down: true}, &sw)
	test.ExpectEquality(t, sw.Count(userinput.SwEnter), 1)

	_, _ = userinput.HandleUserInput(userinput.EventKeyboard{Key: "Return", Down: false}, &sw)
	test.ExpectFailure(t, sw.Poll(userinput.SwEnter))

	// unmapped key
	quit, err = userinput.HandleUserInput(userinput.EventKeyboard{Key: "F12", Down: true}, &sw)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, quit)

	quit, _ = userinput.HandleUserInput(userinput.EventQuit{}, &sw)
	test.ExpectSuccess(t, quit)

	test.ExpectFailure(t, sw.Poll(userinput.NumSwitches))
	test.ExpectEquality(t, sw.Count(-1), 0)
}

func TestLookup(t *testing.T) {
	s, ok := userinput.Lookup(userinput.KeyEscape)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, s, userinput.SwEscape)
	test.ExpectEquality(t, s.String(), "escape")

	_, ok = userinput.Lookup("nothing")
	test.ExpectFailure(t, ok)
}

func TestWaitForButton(t *testing.T) {
	var sw userinput.Switches
	s := task.NewScheduler(2, 4, nil)
	s.SetLogging(false)
	defer s.Shutdown()

	var done bool
	_, err := s.Create(1, func(t *task.Task) {
		sw.WaitForButton(t, userinput.SwEnter, 2)
		done = true
	}, 0)
	test.DemandSuccess(t, err)

	for range 5 {
		s.Tick()
	}
	test.ExpectFailure(t, done)

	test.ExpectSuccess(t, sw.HandleSwitch(userinput.SwEnter, true))
	for range 5 {
		s.Tick()
	}
	test.ExpectFailure(t, done)

	test.ExpectSuccess(t, sw.HandleSwitch(userinput.SwEnter, false))
	for range 3 {
		s.Tick()
	}
	test.ExpectSuccess(t, done)
}
