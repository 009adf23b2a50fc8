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

// Package deff runs display effects. A display effect is a task that owns the
// display for as long as it runs: it allocates pages, draws into them, shows
// them and then exits.
//
// Only one display effect runs at a time. Starting an effect kills the effect
// that is already running.
//
//	r := deff.NewRunner(sched, display, engine)
//	r.Start(deff.Message(font.Mono5, 2*60, "GAME OVER"))
//
// Tasks that start effects must use StartFrom() and StopFrom(), passing the
// calling task.
package deff
