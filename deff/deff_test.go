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

package deff_test

import (
	"testing"

	"github.com/pinmachine/pinkernel/deff"
	"github.com/pinmachine/pinkernel/kernel/dmd"
	"github.com/pinmachine/pinkernel/kernel/font"
	"github.com/pinmachine/pinkernel/kernel/task"
	"github.com/pinmachine/pinkernel/test"
)

func newRunner() (*task.Scheduler, *dmd.Display, *deff.Runner) {
	s := task.NewScheduler(8, 8, nil)
	s.SetLogging(false)
	d := dmd.NewDisplay(0)
	r := deff.NewRunner(s, d, font.NewEngine(d, nil))
	return s, d, r
}

func ticks(s *task.Scheduler, n int) {
	for range n {
		s.Tick()
	}
}

func live(s *task.Scheduler, gid task.GID) int {
	n := 0
	for _, i := range s.Snapshot() {
		if i.State != task.Free.String() && i.GID == gid {
			n++
		}
	}
	return n
}

func TestLines(t *testing.T) {
	test.ExpectEquality(t, len(deff.Lines(0)), 0)
	test.ExpectEquality(t, deff.Lines(1)[0], 16)

	y := deff.Lines(2)
	test.ExpectEquality(t, y[0], 8)
	test.ExpectEquality(t, y[1], 24)

	y = deff.Lines(4)
	test.ExpectEquality(t, y[0], 4)
	test.ExpectEquality(t, y[3], 28)
}

func TestMessage(t *testing.T) {
	s, d, r := newRunner()
	defer s.Shutdown()

	_, err := r.Start(deff.Message(font.Mono5, 5, "HELLO"))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, r.Running())
	test.ExpectEquality(t, r.Name(), "message")

	ticks(s, 1)
	test.ExpectEquality(t, d.DarkPage(), d.LowPage())
	test.ExpectEquality(t, d.BrightPage(), d.LowPage())

	var expected dmd.Page
	font.Render(&expected, font.Mono5, 64, 16, font.Center, "HELLO")
	test.ExpectSuccess(t, *d.Low() == expected)

	ticks(s, 4)
	test.ExpectSuccess(t, r.Running())
	ticks(s, 1)
	test.ExpectFailure(t, r.Running())
}

func TestStartReplaces(t *testing.T) {
	s, _, r := newRunner()
	defer s.Shutdown()

	_, err := r.Start(deff.Message(font.Mono5, 100, "ONE"))
	test.DemandSuccess(t, err)
	ticks(s, 2)

	_, err = r.Start(deff.Grayscale(100))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, live(s, r.GID()), 1)
	test.ExpectEquality(t, r.Name(), "grayscale")

	test.ExpectSuccess(t, r.Stop())
	test.ExpectFailure(t, r.Running())
	test.ExpectFailure(t, r.Stop())
}

func TestStartFrom(t *testing.T) {
	s, _, r := newRunner()
	defer s.Shutdown()

	// the effect restarts itself. the caller is not killed and finishes
	// normally
	var restarted bool
	first := deff.Effect{
		Name: "first",
		Run: func(t *task.Task, r *deff.Runner) {
			_, err := r.StartFrom(t, deff.Message(font.Mono5, 3, "TWO"))
			restarted = err == nil
			t.Sleep(1)
		},
	}

	_, err := r.Start(first)
	test.DemandSuccess(t, err)
	ticks(s, 1)
	test.ExpectSuccess(t, restarted)
	test.ExpectEquality(t, live(s, r.GID()), 2)

	ticks(s, 1)
	test.ExpectEquality(t, live(s, r.GID()), 1)
	test.ExpectEquality(t, r.Name(), "message")

	// stopped by another task
	var stopped bool
	_, err = s.Create(1, func(t *task.Task) {
		stopped = r.StopFrom(t)
	}, 0)
	test.DemandSuccess(t, err)
	ticks(s, 1)
	test.ExpectSuccess(t, stopped)
	test.ExpectFailure(t, r.Running())
}

func TestFlash(t *testing.T) {
	s, d, r := newRunner()
	defer s.Shutdown()

	_, err := r.Start(deff.Flash(font.Mono5, 2, 1, "FLASH"))
	test.DemandSuccess(t, err)

	ticks(s, 1)
	test.ExpectEquality(t, d.DarkPage(), d.LowPage())
	ticks(s, 2)
	test.ExpectEquality(t, d.DarkPage(), d.HighPage())
	test.ExpectSuccess(t, *d.High() == dmd.Page{})
	ticks(s, 2)
	test.ExpectEquality(t, d.DarkPage(), d.LowPage())
	test.ExpectFailure(t, r.Running())
}

func TestScrollUp(t *testing.T) {
	s, d, r := newRunner()
	defer s.Shutdown()

	_, err := r.Start(deff.ScrollUp(font.Mono5, 1, 1, "SCROLL"))
	test.DemandSuccess(t, err)

	ticks(s, 1)
	test.ExpectSuccess(t, *d.Low() == dmd.Page{})
	test.ExpectSuccess(t, *d.High() != dmd.Page{})

	// half way
	ticks(s, 16)
	for y := range 16 {
		test.ExpectEquality(t, string(d.Low().Row(16+y)), string(d.High().Row(y)), y)
	}

	ticks(s, 16)
	test.ExpectSuccess(t, *d.Low() == *d.High())
	test.ExpectSuccess(t, r.Running())
	ticks(s, 1)
	test.ExpectFailure(t, r.Running())
}

func TestGrayscale(t *testing.T) {
	s, d, r := newRunner()
	defer s.Shutdown()

	_, err := r.Start(deff.Grayscale(10))
	test.DemandSuccess(t, err)
	ticks(s, 1)

	test.ExpectEquality(t, d.DarkPage(), d.LowPage())
	test.ExpectEquality(t, d.BrightPage(), d.HighPage())

	f := d.Compose()
	for y := range dmd.Height {
		test.ExpectEquality(t, f[y][0], dmd.Off)
		test.ExpectEquality(t, f[y][40], dmd.Dim)
		test.ExpectEquality(t, f[y][80], dmd.Flicker)
		test.ExpectEquality(t, f[y][127], dmd.Full)
	}
}
