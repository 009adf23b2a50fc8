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
	"fmt"
	"runtime"

	"github.com/pinmachine/pinkernel/assert"
	"github.com/pinmachine/pinkernel/curated"
)

// GID is the group identity of a task. Values are defined by the consumer.
type GID uint8

// Ticks is a count of scheduler ticks.
type Ticks uint16

// Entry is the function a task runs. Returning from the function is the same
// as calling Exit().
type Entry func(t *Task)

// State of a task slot.
type State int

// List of valid State values.
const (
	Free State = iota
	Runnable
	Blocked
)

func (s State) String() string {
	switch s {
	case Free:
		return "free"
	case Runnable:
		return "runnable"
	case Blocked:
		return "blocked"
	}
	return "unknown"
}

// Sentinel patterns for panics raised by the private stack.
const (
	StackOverflow  = "task: stack overflow (gid %d)"
	StackUnderflow = "task: stack underflow (gid %d)"
)

// Handle identifies one task instance. A handle becomes stale when the task
// exits or is killed, even if the slot is reused.
type Handle struct {
	slot int
	gen  uint32
}

// NoHandle is returned when no task could be created or found.
var NoHandle = Handle{slot: -1}

// Valid returns false for NoHandle.
func (h Handle) Valid() bool {
	return h.slot >= 0
}

func (h Handle) String() string {
	if !h.Valid() {
		return "none"
	}
	return fmt.Sprintf("%d.%d", h.slot, h.gen)
}

// Task is one slot in the task pool.
type Task struct {
	sched *Scheduler
	slot  int
	gen   uint32

	gid   GID
	state State
	sleep Ticks
	arg   uint16

	// private stack. a window onto the scheduler's arena
	stack []uint16
	sp    int

	entry   Entry
	started bool
	killed  bool

	// dispatcher to task
	resume chan struct{}

	// closed by the killer of a parked task
	quit chan struct{}

	// closed when the task goroutine has finished
	done chan struct{}

	// goroutine ID, only recorded when assertions are enabled
	goid uint64
}

// Handle returns the handle for this task instance.
func (t *Task) Handle() Handle {
	return Handle{slot: t.slot, gen: t.gen}
}

// GID returns the group ID of the task.
func (t *Task) GID() GID {
	t.check("GID")
	return t.gid
}

// SetGID relabels the task. Used when one entry function is parameterised to
// behave as several logical activities.
func (t *Task) SetGID(gid GID) {
	t.check("SetGID")
	t.gid = gid
}

// Arg returns the argument given when the task was created.
func (t *Task) Arg() uint16 {
	return t.arg
}

// Sleep suspends the task for the given number of ticks. Sleep(0) is the same
// as Yield().
func (t *Task) Sleep(ticks Ticks) {
	t.check("Sleep")
	t.sleep = ticks
	t.park()
}

// Yield gives up the remainder of this tick. The task runs again on the next
// tick.
func (t *Task) Yield() {
	t.Sleep(0)
}

// Block suspends the task until another task or an external caller wakes it
// with Wake().
func (t *Task) Block() {
	t.check("Block")
	t.state = Blocked
	t.park()
}

// Exit terminates the task. It never returns.
func (t *Task) Exit() {
	t.check("Exit")
	runtime.Goexit()
}

// Heartbeat tells the watchdog that the task is making progress. Must be
// called by any task that runs for a long time without sleeping.
func (t *Task) Heartbeat() {
	t.sched.heartbeat()
}

// Push a word onto the task's private stack.
func (t *Task) Push(v uint16) {
	if t.sp >= len(t.stack) {
		panic(curated.Errorf(StackOverflow, t.gid))
	}
	t.stack[t.sp] = v
	t.sp++
}

// Pop a word from the task's private stack.
func (t *Task) Pop() uint16 {
	if t.sp == 0 {
		panic(curated.Errorf(StackUnderflow, t.gid))
	}
	t.sp--
	return t.stack[t.sp]
}

// Depth returns the number of words on the private stack.
func (t *Task) Depth() int {
	return t.sp
}

// Create starts a new task. See Scheduler.Create().
func (t *Task) Create(gid GID, entry Entry, arg uint16) (Handle, error) {
	t.check("Create")
	return t.sched.create(gid, entry, arg)
}

// CreateGID1 starts a new task only if no task with the same GID exists.
func (t *Task) CreateGID1(gid GID, entry Entry, arg uint16) (Handle, error) {
	t.check("CreateGID1")
	if h := t.sched.findGID(gid); h.Valid() {
		return h, nil
	}
	return t.sched.create(gid, entry, arg)
}

// Recreate kills every other task with the GID and starts a new one.
func (t *Task) Recreate(gid GID, entry Entry, arg uint16) (Handle, error) {
	t.check("Recreate")
	t.sched.killGID(gid, t)
	return t.sched.create(gid, entry, arg)
}

// FindGID returns one task with the GID, which may be the calling task.
func (t *Task) FindGID(gid GID) Handle {
	return t.sched.findGID(gid)
}

// KillGID kills every task with the GID except the calling task. Returns the
// number of tasks killed.
func (t *Task) KillGID(gid GID) int {
	t.check("KillGID")
	return t.sched.killGID(gid, t)
}

// Wake a blocked task.
func (t *Task) Wake(h Handle) bool {
	t.check("Wake")
	return t.sched.wake(h)
}

// Logf adds an entry to the central log if logging is allowed by the
// scheduler.
func (t *Task) Logf(detail string, args ...any) {
	t.sched.logf("gid %d: "+detail, append([]any{t.gid}, args...)...)
}

// check that the task is being used from its own goroutine and that it holds
// the CPU.
func (t *Task) check(context string) {
	if !assert.Enabled {
		return
	}
	assert.SameGoroutine(t.goid, context)
	if t.sched.current != t {
		panic(fmt.Sprintf("assert: %s: task %v does not hold the cpu", context, t.Handle()))
	}
}

// main is the body of the task goroutine.
func (t *Task) main() {
	s := t.sched
	if assert.Enabled {
		t.goid = assert.GetGoRoutineID()
	}

	defer func() {
		r := recover()

		// a parked task that has been killed. the killer is waiting on done and
		// will release the slot
		if t.killed {
			close(t.done)
			return
		}

		if r != nil {
			s.fault = r
		}
		s.release(t)
		close(t.done)
		s.baton <- struct{}{}
	}()

	t.entry(t)
}

// park hands the CPU back to the dispatcher and waits to be resumed.
func (t *Task) park() {
	t.sched.baton <- struct{}{}
	select {
	case <-t.resume:
	case <-t.quit:
		runtime.Goexit()
	}
}
