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

package main

import (
	"testing"

	"github.com/pinmachine/pinkernel/config"
	"github.com/pinmachine/pinkernel/digest"
	"github.com/pinmachine/pinkernel/kernel/dmd"
	"github.com/pinmachine/pinkernel/nvram"
	"github.com/pinmachine/pinkernel/test"
	"github.com/pinmachine/pinkernel/userinput"
)

func newTestMachine(t *testing.T) *machine {
	t.Helper()
	m, err := newMachine(config.Default(), nvram.NewNVRAM(nvram.DefaultSize), nil)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, m.boot())
	t.Cleanup(m.shutdown)
	return m
}

func (m *machine) runTicks(n int) {
	for range n {
		m.tick()
	}
}

// press closes the switch for eight ticks and then opens it for eight ticks.
func (m *machine) press(sw userinput.Switch) {
	m.switches.HandleSwitch(sw, true)
	m.runTicks(8)
	m.switches.HandleSwitch(sw, false)
	m.runTicks(8)
}

func lit(f *dmd.Frame) int {
	n := 0
	for y := range dmd.Height {
		for x := range dmd.Width {
			if f[y][x] != dmd.Off {
				n++
			}
		}
	}
	return n
}

func TestHandlers(t *testing.T) {
	m := newTestMachine(t)
	test.ExpectEquality(t, len(m.calls.Handlers(kindInit)), 1)
	test.ExpectEquality(t, m.calls.Handlers(kindInit)[0], "reset screen")
	test.ExpectEquality(t, m.calls.Handlers(kindAttract)[0], "attract mode")
	test.ExpectEquality(t, m.calls.Handlers(kindStartButton)[0], "start game")
	test.ExpectEquality(t, m.ticks(66), 3)
	test.ExpectEquality(t, m.ticks(1), 1)
}

func TestBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Pages = 1
	_, err := newMachine(cfg, nvram.NewNVRAM(nvram.DefaultSize), nil)
	test.ExpectFailure(t, err)
}

func TestAcceptance(t *testing.T) {
	m := newTestMachine(t)

	m.runTicks(10)
	test.ExpectInequality(t, lit(m.display.Compose()), 0)
	test.ExpectFailure(t, m.accepted())
	test.ExpectFailure(t, m.deffs.Running())

	// the final screen needs two presses
	for range 3 {
		m.press(userinput.SwEnter)
	}
	m.runTicks(10)
	test.ExpectFailure(t, m.accepted())
	test.ExpectInequality(t, lit(m.display.Compose()), 0)

	m.press(userinput.SwEnter)
	m.runTicks(10)
	test.ExpectEquality(t, lit(m.display.Compose()), 0)
	test.ExpectFailure(t, m.accepted())

	m.runTicks(80)
	test.ExpectSuccess(t, m.accepted())
	test.ExpectSuccess(t, m.nvram.Dirty())
	test.ExpectSuccess(t, m.deffs.Running())
	test.ExpectEquality(t, m.deffs.Name(), "system reset")
}

func TestAttract(t *testing.T) {
	m := newTestMachine(t)
	test.DemandSuccess(t, m.accept())

	m.runTicks(5)
	test.ExpectEquality(t, m.deffs.Name(), "system reset")
	test.ExpectInequality(t, lit(m.display.Compose()), 0)

	// the reset screen is shown for two seconds
	m.runTicks(130)
	test.ExpectSuccess(t, m.deffs.Running())
	test.ExpectEquality(t, m.deffs.Name(), "message")
	test.ExpectSuccess(t, m.sched.FindGID(gidAttract).Valid())
	test.ExpectFailure(t, m.sched.FindGID(gidSystem).Valid())

	m.press(userinput.SwStart)
	test.ExpectEquality(t, m.deffs.Name(), "start game")
	test.ExpectSuccess(t, m.deffs.Running())

	// attract mode continues once the start game message has finished
	m.runTicks(130)
	test.ExpectEquality(t, m.deffs.Name(), "scroll up")
}

// two machines given the same input produce the same frames
func TestDeterminism(t *testing.T) {
	hash := func() string {
		m := newTestMachine(t)
		test.DemandSuccess(t, m.accept())
		dark, bright := m.display.Cadence()
		dig := digest.NewVideo()
		for range 400 {
			m.tick()
			test.DemandSuccess(t, dig.Draw(m.display.Compose(), dark, bright))
		}
		return dig.Hash()
	}
	test.ExpectEquality(t, hash(), hash())
}
