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

package task_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pinmachine/pinkernel/curated"
	"github.com/pinmachine/pinkernel/kernel/task"
	"github.com/pinmachine/pinkernel/test"
)

// counts the number of ticks seen by the scheduler. tasks read it while they
// hold the cpu
type clock struct {
	ticks int
}

func newScheduler(numTasks int, stackSize int) (*task.Scheduler, *clock) {
	s := task.NewScheduler(numTasks, stackSize, nil)
	s.SetLogging(false)
	c := &clock{}
	s.AddTickHandler(func() { c.ticks++ })
	return s, c
}

func forever(t *task.Task) {
	for {
		t.Yield()
	}
}

func TestCreateUntilFull(t *testing.T) {
	const n = 4
	s, _ := newScheduler(n, 8)

	// every task records its gid each time it runs
	ran := make(map[task.GID]int)
	entry := func(t *task.Task) {
		for {
			ran[t.GID()]++
			t.Yield()
		}
	}

	for i := range n {
		h, err := s.Create(task.GID(i+1), entry, 0)
		test.ExpectSuccess(t, err)
		test.ExpectSuccess(t, h.Valid())
	}

	s.Tick()

	info := s.Snapshot()
	test.DemandEquality(t, len(info), n)
	for i, inf := range info {
		test.ExpectEquality(t, inf.GID, task.GID(i+1))
		test.ExpectEquality(t, inf.State, "runnable")
		test.ExpectEquality(t, ran[inf.GID], 1)
	}

	h, err := s.Create(n+1, forever, 0)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, task.NoFreeSlot))
	test.ExpectEquality(t, h, task.NoHandle)

	// the failed create does not disturb the running tasks
	s.Tick()
	for i := range n {
		test.ExpectEquality(t, ran[task.GID(i+1)], 2)
	}

	s.Shutdown()

	_, err = s.Create(n+1, forever, 0)
	test.ExpectSuccess(t, err)
	s.Shutdown()
}

func TestSleepTiming(t *testing.T) {
	s, c := newScheduler(4, 8)

	var seen []int
	_, err := s.Create(1, func(t *task.Task) {
		for i := 0; i < 3; i++ {
			seen = append(seen, c.ticks)
			t.Sleep(2)
		}
	}, 0)
	test.DemandSuccess(t, err)

	for i := 0; i < 8; i++ {
		s.Tick()
	}

	test.DemandEquality(t, len(seen), 3)
	test.ExpectEquality(t, seen[0], 1)
	test.ExpectEquality(t, seen[1], 3)
	test.ExpectEquality(t, seen[2], 5)

	// the task has returned so the slot is free
	test.ExpectEquality(t, s.FindGID(1), task.NoHandle)
}

func TestYield(t *testing.T) {
	s, _ := newScheduler(4, 8)

	n := 0
	_, err := s.Create(1, func(t *task.Task) {
		for {
			n++
			t.Yield()
		}
	}, 0)
	test.DemandSuccess(t, err)

	for i := 0; i < 10; i++ {
		s.Tick()
	}
	test.ExpectEquality(t, n, 10)
	s.Shutdown()
}

func TestSlotOrder(t *testing.T) {
	s, _ := newScheduler(4, 8)

	var order strings.Builder
	for _, c := range "abc" {
		_, err := s.Create(1, func(t *task.Task) {
			for {
				order.WriteRune(c)
				t.Yield()
			}
		}, 0)
		test.DemandSuccess(t, err)
	}

	s.Tick()
	s.Tick()
	test.ExpectEquality(t, order.String(), "abcabc")
	s.Shutdown()
}

func TestArg(t *testing.T) {
	s, _ := newScheduler(4, 8)

	var arg uint16
	_, err := s.Create(1, func(t *task.Task) {
		arg = t.Arg()
	}, 0x1234)
	test.DemandSuccess(t, err)

	s.Tick()
	test.ExpectEquality(t, arg, uint16(0x1234))
}

func TestCreateFromTaskRunsNextTick(t *testing.T) {
	s, c := newScheduler(4, 8)

	child := -1
	_, err := s.Create(1, func(t *task.Task) {
		_, err := t.Create(2, func(t *task.Task) {
			child = c.ticks
		}, 0)
		if err != nil {
			panic(err)
		}
	}, 0)
	test.DemandSuccess(t, err)

	s.Tick()
	test.ExpectEquality(t, child, -1)
	s.Tick()
	test.ExpectEquality(t, child, 2)
}

func TestKillGID(t *testing.T) {
	s, _ := newScheduler(4, 8)

	n := 0
	cleanup := false
	_, err := s.Create(5, func(t *task.Task) {
		defer func() { cleanup = true }()
		for {
			n++
			t.Yield()
		}
	}, 0)
	test.DemandSuccess(t, err)

	s.Tick()
	s.Tick()
	s.Tick()
	test.ExpectEquality(t, n, 3)

	test.ExpectEquality(t, s.KillGID(5), 1)
	test.ExpectSuccess(t, cleanup)
	test.ExpectEquality(t, s.FindGID(5), task.NoHandle)

	s.Tick()
	s.Tick()
	test.ExpectEquality(t, n, 3)

	// nothing left to kill
	test.ExpectEquality(t, s.KillGID(5), 0)
}

func TestKillUnstarted(t *testing.T) {
	s, _ := newScheduler(4, 8)

	ran := false
	h, err := s.Create(1, func(t *task.Task) { ran = true }, 0)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, s.Kill(h))
	s.Tick()
	test.ExpectFailure(t, ran)
	test.ExpectFailure(t, s.Kill(h))
}

func TestKillGIDFromTaskSkipsCaller(t *testing.T) {
	s, _ := newScheduler(4, 8)

	killed := -1
	survived := false
	_, err := s.Create(7, func(t *task.Task) {
		t.Yield()
		killed = t.KillGID(7)
		t.Yield()
		survived = true
	}, 0)
	test.DemandSuccess(t, err)

	other := 0
	_, err = s.Create(7, func(t *task.Task) {
		for {
			other++
			t.Yield()
		}
	}, 0)
	test.DemandSuccess(t, err)

	s.Tick()
	s.Tick()
	test.ExpectEquality(t, killed, 1)

	// the victim ran on the first tick only. it was killed before its turn on
	// the second tick
	test.ExpectEquality(t, other, 1)

	s.Tick()
	test.ExpectSuccess(t, survived)
	test.ExpectEquality(t, s.FindGID(7), task.NoHandle)
}

func TestFindGIDFromTaskFindsCaller(t *testing.T) {
	s, _ := newScheduler(4, 8)

	var self, found task.Handle
	_, err := s.Create(3, func(t *task.Task) {
		self = t.Handle()
		found = t.FindGID(3)
	}, 0)
	test.DemandSuccess(t, err)

	s.Tick()
	test.ExpectEquality(t, found, self)
}

func TestCreateGID1(t *testing.T) {
	s, _ := newScheduler(4, 8)

	a, err := s.CreateGID1(9, forever, 0)
	test.DemandSuccess(t, err)
	b, err := s.CreateGID1(9, forever, 0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, a, b)

	n := 0
	for _, i := range s.Snapshot() {
		if i.GID == 9 && i.State != task.Free.String() {
			n++
		}
	}
	test.ExpectEquality(t, n, 1)
	s.Shutdown()
}

func TestRecreate(t *testing.T) {
	s, _ := newScheduler(4, 8)

	a, err := s.Create(4, forever, 0)
	test.DemandSuccess(t, err)
	s.Tick()

	b, err := s.Recreate(4, forever, 0)
	test.DemandSuccess(t, err)
	test.ExpectInequality(t, a, b)

	// the old handle is stale even though the slot has been reused
	test.ExpectFailure(t, s.Kill(a))
	test.ExpectEquality(t, s.FindGID(4), b)
	test.ExpectEquality(t, s.KillGID(4), 1)
}

func TestBlockWake(t *testing.T) {
	s, c := newScheduler(4, 8)

	var woke int
	h, err := s.Create(1, func(t *task.Task) {
		t.Block()
		woke = c.ticks
	}, 0)
	test.DemandSuccess(t, err)

	s.Tick()
	s.Tick()
	s.Tick()
	test.ExpectEquality(t, woke, 0)

	test.ExpectSuccess(t, s.Wake(h))

	// waking twice is not possible
	test.ExpectFailure(t, s.Wake(h))

	s.Tick()
	test.ExpectEquality(t, woke, 4)
	test.ExpectFailure(t, s.Wake(h))
}

func TestWakeFromTask(t *testing.T) {
	s, _ := newScheduler(4, 8)

	woken := false
	h, err := s.Create(1, func(t *task.Task) {
		t.Block()
		woken = true
	}, 0)
	test.DemandSuccess(t, err)

	_, err = s.Create(2, func(t *task.Task) {
		t.Yield()
		t.Wake(h)
	}, 0)
	test.DemandSuccess(t, err)

	s.Tick()
	s.Tick()
	test.ExpectFailure(t, woken)
	s.Tick()
	test.ExpectSuccess(t, woken)
}

func TestExit(t *testing.T) {
	s, _ := newScheduler(4, 8)

	after := false
	_, err := s.Create(1, func(t *task.Task) {
		t.Exit()
		after = true
	}, 0)
	test.DemandSuccess(t, err)

	s.Tick()
	test.ExpectFailure(t, after)
	test.ExpectEquality(t, s.FindGID(1), task.NoHandle)
}

func TestPrivateStack(t *testing.T) {
	s, _ := newScheduler(4, 8)

	var popped []uint16
	_, err := s.Create(1, func(t *task.Task) {
		t.Push(1)
		t.Push(2)
		t.Yield()
		t.Push(3)
		t.Sleep(3)
		for t.Depth() > 0 {
			popped = append(popped, t.Pop())
		}
	}, 0)
	test.DemandSuccess(t, err)

	// a second task using its own stack in between
	_, err = s.Create(2, func(t *task.Task) {
		for {
			t.Push(99)
			t.Yield()
			t.Pop()
		}
	}, 0)
	test.DemandSuccess(t, err)

	for i := 0; i < 6; i++ {
		s.Tick()
	}

	test.DemandEquality(t, len(popped), 3)
	test.ExpectEquality(t, popped[0], uint16(3))
	test.ExpectEquality(t, popped[1], uint16(2))
	test.ExpectEquality(t, popped[2], uint16(1))
	s.Shutdown()
}

func TestStackOverflow(t *testing.T) {
	s, _ := newScheduler(4, 8)

	_, err := s.Create(6, func(t *task.Task) {
		for i := 0; i < 9; i++ {
			t.Push(uint16(i))
		}
	}, 0)
	test.DemandSuccess(t, err)

	r := test.ExpectPanic(t, func() { s.Tick() })
	err, ok := r.(error)
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, curated.Is(err, task.StackOverflow))

	// the faulting task has been removed and the scheduler still works
	test.ExpectEquality(t, s.FindGID(6), task.NoHandle)
	s.Tick()
}

func TestStackUnderflow(t *testing.T) {
	s, _ := newScheduler(4, 8)

	_, err := s.Create(6, func(t *task.Task) {
		t.Pop()
	}, 0)
	test.DemandSuccess(t, err)

	r := test.ExpectPanic(t, func() { s.Tick() })
	err, ok := r.(error)
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, curated.Is(err, task.StackUnderflow))
}

type beats struct {
	n int
}

func (b *beats) Heartbeat() {
	b.n++
}

func TestHeartbeat(t *testing.T) {
	b := &beats{}
	s := task.NewScheduler(4, 8, b)
	s.SetLogging(false)

	_, err := s.Create(1, func(t *task.Task) {
		t.Heartbeat()
		t.Heartbeat()
	}, 0)
	test.DemandSuccess(t, err)

	s.Tick()
	test.ExpectEquality(t, b.n, 3)
	s.Tick()
	test.ExpectEquality(t, b.n, 4)
}

func TestRun(t *testing.T) {
	s, c := newScheduler(4, 8)

	ticks := make(chan struct{})
	done := make(chan struct{})
	go func() {
		s.Run(context.Background(), ticks)
		close(done)
	}()

	for i := 0; i < 5; i++ {
		ticks <- struct{}{}
	}
	close(ticks)
	<-done

	test.ExpectEquality(t, c.ticks, 5)
	test.ExpectEquality(t, s.Ticks(), uint64(5))
}

func TestDump(t *testing.T) {
	s, _ := newScheduler(4, 8)

	_, err := s.Create(12, forever, 0xbeef)
	test.DemandSuccess(t, err)
	s.Tick()

	w := &strings.Builder{}
	s.Dump(w)
	test.ExpectSuccess(t, strings.Contains(w.String(), "gid=12"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "arg=beef"))
	test.ExpectEquality(t, strings.Count(w.String(), "\n"), 1)

	w.Reset()
	s.DumpGraph(w)
	test.ExpectSuccess(t, strings.Contains(w.String(), "digraph"))
	s.Shutdown()
}
