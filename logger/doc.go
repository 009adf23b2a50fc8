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

// Package logger is the central log for the kernel and the simulator. Entries
// are tagged with the name of the area making the entry:
//
//	logger.Log(logger.Allow, "task", "no free slot")
//	logger.Logf(sched, "dmd", "page %d allocated while visible", page)
//
// Every call takes a Permission. The Allow value always permits logging;
// other implementations (the scheduler for example) can mute logging as a
// whole.
//
// Identical adjacent entries are folded into one entry with a repeat count.
// The log holds a fixed maximum number of entries; the oldest entries are
// dropped first.
package logger
