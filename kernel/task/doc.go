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

// Package task is the cooperative scheduler. A fixed pool of task slots is
// allocated when the Scheduler is created and never grows. Each live task
// runs its entry function in its own goroutine but only one task ever holds
// the CPU: the dispatcher hands control to a task and waits until the task
// gives it back by calling Sleep(), Yield(), Block() or Exit(), or by
// returning from its entry function.
//
// Time is measured in scheduler ticks. Tick() is called by the periodic
// timer (see the limiter package) and runs, in slot order, every task that is
// Runnable and not sleeping. A task that sleeps for k ticks during tick n is
// next run during tick n+k.
//
// Tasks are addressed by group ID (GID). A GID names the purpose of a task
// and is not unique: FindGID() returns one matching task, KillGID() kills all
// matching tasks.
//
// Methods on Scheduler are for use by code outside of any task (timer
// handlers, input goroutines, tests). They take the scheduler lock and must
// not be called from inside a task, which should use the equivalent methods
// on its own *Task instead.
//
// Each task also owns a small fixed-size stack of words in a shared arena.
// Pushing beyond its capacity, or popping an empty stack, panics. The panic
// is re-raised by Tick() on the dispatching goroutine.
package task
