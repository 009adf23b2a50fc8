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

package deff

import (
	"github.com/pinmachine/pinkernel/kernel/dmd"
	"github.com/pinmachine/pinkernel/kernel/font"
	"github.com/pinmachine/pinkernel/kernel/task"
	"github.com/pinmachine/pinkernel/logger"
)

// DefaultGID is the group ID used for display effect tasks if no other is
// given to NewRunner().
const DefaultGID task.GID = 0x10

// Effect is a named display effect.
type Effect struct {
	Name string
	Run  func(t *task.Task, r *Runner)
}

// Runner starts and stops display effects.
type Runner struct {
	sched   *task.Scheduler
	display *dmd.Display
	engine  *font.Engine
	gid     task.GID

	// name of the most recently started effect
	name string
}

// NewRunner is the preferred method of initialisation for the Runner type.
func NewRunner(sched *task.Scheduler, display *dmd.Display, engine *font.Engine) *Runner {
	return &Runner{
		sched:   sched,
		display: display,
		engine:  engine,
		gid:     DefaultGID,
	}
}

// SetGID changes the group ID used for effect tasks.
func (r *Runner) SetGID(gid task.GID) {
	r.gid = gid
}

// GID returns the group ID used for effect tasks.
func (r *Runner) GID() task.GID {
	return r.gid
}

// Display returns the display driver that effects draw with.
func (r *Runner) Display() *dmd.Display {
	return r.display
}

// Engine returns the font engine that effects draw with.
func (r *Runner) Engine() *font.Engine {
	return r.engine
}

// Name returns the name of the most recently started effect.
func (r *Runner) Name() string {
	return r.name
}

func (r *Runner) entry(e Effect) task.Entry {
	return func(t *task.Task) {
		e.Run(t, r)
	}
}

// Start an effect, killing the effect that is running. Must not be called
// from a task.
func (r *Runner) Start(e Effect) (task.Handle, error) {
	r.name = e.Name
	logger.Logf(logger.Allow, "deff", "start %s", e.Name)
	return r.sched.Recreate(r.gid, r.entry(e), 0)
}

// StartFrom starts an effect from a running task. If the calling task is
// itself the running effect then it continues to run alongside the new
// effect until it exits.
func (r *Runner) StartFrom(t *task.Task, e Effect) (task.Handle, error) {
	r.name = e.Name
	logger.Logf(logger.Allow, "deff", "start %s", e.Name)
	return t.Recreate(r.gid, r.entry(e), 0)
}

// Stop the running effect. Returns false if no effect was running. Must not
// be called from a task.
func (r *Runner) Stop() bool {
	return r.sched.KillGID(r.gid) > 0
}

// StopFrom stops the running effect from a running task.
func (r *Runner) StopFrom(t *task.Task) bool {
	return t.KillGID(r.gid) > 0
}

// Running returns true if an effect is running. Must not be called from a
// task.
func (r *Runner) Running() bool {
	return r.sched.FindGID(r.gid).Valid()
}
