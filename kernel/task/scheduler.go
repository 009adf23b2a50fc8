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

package task

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/pinmachine/pinkernel/curated"
	"github.com/pinmachine/pinkernel/logger"
)

// NoFreeSlot is the pattern for the error returned by the create functions
// when the pool is full. Callers creating optional activities should skip
// the activity rather than treat this as fatal.
const NoFreeSlot = "task: no free slot for gid %d"

// Default pool geometry.
const (
	DefaultNumTasks  = 16
	DefaultStackSize = 43
)

// Heartbeater is implemented by the watchdog.
type Heartbeater interface {
	Heartbeat()
}

// Scheduler owns the task pool and decides which task runs.
type Scheduler struct {
	// held by Tick() for the whole of the dispatch pass and by every exported
	// Scheduler method
	crit sync.Mutex

	tasks []Task
	arena []uint16

	// the task that holds the CPU. nil between dispatches
	current *Task

	// task to dispatcher
	baton chan struct{}

	// panic value from a task goroutine, re-raised by the dispatcher
	fault any

	ticks    uint64
	handlers []func()

	watchdog Heartbeater
	logging  atomic.Bool
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type. The watchdog may be nil.
func NewScheduler(numTasks int, stackSize int, watchdog Heartbeater) *Scheduler {
	if numTasks <= 0 {
		numTasks = DefaultNumTasks
	}
	if stackSize <= 0 {
		stackSize = DefaultStackSize
	}

	s := &Scheduler{
		tasks:    make([]Task, numTasks),
		arena:    make([]uint16, numTasks*stackSize),
		baton:    make(chan struct{}),
		watchdog: watchdog,
	}
	s.logging.Store(true)

	for i := range s.tasks {
		t := &s.tasks[i]
		t.sched = s
		t.slot = i
		t.stack = s.arena[i*stackSize : (i+1)*stackSize : (i+1)*stackSize]
	}

	return s
}

// AllowLogging implements the logger.Permission interface.
func (s *Scheduler) AllowLogging() bool {
	return s.logging.Load()
}

// SetLogging turns scheduler logging on or off.
func (s *Scheduler) SetLogging(on bool) {
	s.logging.Store(on)
}

func (s *Scheduler) logf(detail string, args ...any) {
	logger.Logf(s, "task", detail, args...)
}

func (s *Scheduler) heartbeat() {
	if s.watchdog != nil {
		s.watchdog.Heartbeat()
	}
}

// Capacity returns the number of slots in the pool.
func (s *Scheduler) Capacity() int {
	return len(s.tasks)
}

// AddTickHandler registers a function to be called at the start of every
// tick, before any task is dispatched. Handlers run in registration order
// and must not block.
func (s *Scheduler) AddTickHandler(f func()) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.handlers = append(s.handlers, f)
}

// Ticks returns the number of ticks since the scheduler was created.
func (s *Scheduler) Ticks() uint64 {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.ticks
}

// Tick advances time by one tick and runs every eligible task once.
func (s *Scheduler) Tick() {
	s.crit.Lock()
	defer s.crit.Unlock()

	s.ticks++

	for _, f := range s.handlers {
		f()
	}

	for i := range s.tasks {
		t := &s.tasks[i]
		if t.state == Runnable && t.sleep > 0 {
			t.sleep--
		}
	}

	// eligibility is decided at the start of the pass. tasks created during
	// the pass first run on the next tick
	eligible := make([]Handle, 0, len(s.tasks))
	for i := range s.tasks {
		t := &s.tasks[i]
		if t.state == Runnable && t.sleep == 0 {
			eligible = append(eligible, t.Handle())
		}
	}

	for _, h := range eligible {
		t := s.lookup(h)
		if t == nil || t.state != Runnable {
			continue
		}
		s.dispatch(t)
	}

	s.heartbeat()
}

// Run calls Tick() every time a value is received on the ticks channel, until
// the context is cancelled or the channel is closed.
func (s *Scheduler) Run(ctx context.Context, ticks <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			s.Tick()
		}
	}
}

// dispatch gives the CPU to the task and waits for it to be handed back.
func (s *Scheduler) dispatch(t *Task) {
	s.current = t
	if !t.started {
		t.started = true
		go t.main()
	} else {
		t.resume <- struct{}{}
	}
	<-s.baton
	s.current = nil

	if s.fault != nil {
		f := s.fault
		s.fault = nil
		panic(f)
	}
}

// lookup returns the task for a handle or nil if the handle is stale.
func (s *Scheduler) lookup(h Handle) *Task {
	if h.slot < 0 || h.slot >= len(s.tasks) {
		return nil
	}
	t := &s.tasks[h.slot]
	if t.state == Free || t.gen != h.gen {
		return nil
	}
	return t
}

// Create claims the first free slot and starts a task that runs entry. The
// task first runs on the next tick.
func (s *Scheduler) Create(gid GID, entry Entry, arg uint16) (Handle, error) {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.create(gid, entry, arg)
}

// CreateGID1 starts a new task only if no task with the same GID exists. The
// handle of the existing task is returned if there is one.
func (s *Scheduler) CreateGID1(gid GID, entry Entry, arg uint16) (Handle, error) {
	s.crit.Lock()
	defer s.crit.Unlock()
	if h := s.findGID(gid); h.Valid() {
		return h, nil
	}
	return s.create(gid, entry, arg)
}

// Recreate kills any task with the GID and then creates a new one. Used when
// only one instance of an activity may be live at a time.
func (s *Scheduler) Recreate(gid GID, entry Entry, arg uint16) (Handle, error) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.killGID(gid, nil)
	return s.create(gid, entry, arg)
}

// FindGID returns the handle of the task with the GID in the lowest numbered
// slot, or NoHandle.
func (s *Scheduler) FindGID(gid GID) Handle {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.findGID(gid)
}

// KillGID kills every task with the GID. Returns the number of tasks killed.
func (s *Scheduler) KillGID(gid GID) int {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.killGID(gid, nil)
}

// Kill a single task instance. Returns false if the handle is stale.
func (s *Scheduler) Kill(h Handle) bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	t := s.lookup(h)
	if t == nil {
		return false
	}
	s.kill(t)
	return true
}

// Wake a blocked task. Returns false if the handle is stale or the task was
// not blocked.
func (s *Scheduler) Wake(h Handle) bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.wake(h)
}

// Shutdown kills every task.
func (s *Scheduler) Shutdown() {
	s.crit.Lock()
	defer s.crit.Unlock()
	for i := range s.tasks {
		if t := &s.tasks[i]; t.state != Free {
			s.kill(t)
		}
	}
}

func (s *Scheduler) create(gid GID, entry Entry, arg uint16) (Handle, error) {
	for i := range s.tasks {
		t := &s.tasks[i]
		if t.state != Free {
			continue
		}

		t.gen++
		t.gid = gid
		t.state = Runnable
		t.sleep = 0
		t.arg = arg
		t.sp = 0
		t.entry = entry
		t.started = false
		t.killed = false
		t.resume = make(chan struct{})
		t.quit = make(chan struct{})
		t.done = make(chan struct{})

		s.logf("create gid %d in slot %d", gid, i)
		return t.Handle(), nil
	}

	err := curated.Errorf(NoFreeSlot, gid)
	s.logf("%v", err)
	return NoHandle, err
}

func (s *Scheduler) findGID(gid GID) Handle {
	for i := range s.tasks {
		t := &s.tasks[i]
		if t.state != Free && t.gid == gid {
			return t.Handle()
		}
	}
	return NoHandle
}

// killGID kills all tasks with the GID other than the exempt task.
func (s *Scheduler) killGID(gid GID, exempt *Task) int {
	n := 0
	for i := range s.tasks {
		t := &s.tasks[i]
		if t.state != Free && t.gid == gid && t != exempt {
			s.kill(t)
			n++
		}
	}
	return n
}

// kill frees the slot immediately. If the task goroutine is parked it is made
// to exit and kill waits for it to finish.
func (s *Scheduler) kill(t *Task) {
	s.logf("kill gid %d in slot %d", t.gid, t.slot)

	if t == s.current {
		// a task cannot be killed by itself. the only way this can happen is
		// from a tick handler, which is a programming error
		panic("task: kill of the running task")
	}

	if t.started {
		t.killed = true
		close(t.quit)
		<-t.done
	}
	s.release(t)
}

func (s *Scheduler) wake(h Handle) bool {
	t := s.lookup(h)
	if t == nil || t.state != Blocked {
		return false
	}
	t.state = Runnable
	t.sleep = 0
	return true
}

func (s *Scheduler) release(t *Task) {
	t.state = Free
	t.entry = nil
	t.sp = 0
}
