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
	"io"
	"strings"

	"github.com/bradleyjkemp/memviz"
)

// Info is a copy of the public state of one task slot.
type Info struct {
	Slot   int
	Handle string
	GID    GID
	State  string
	Sleep  Ticks
	Arg    uint16
	Depth  int
}

func (i Info) String() string {
	return fmt.Sprintf("%2d %-6s gid=%-3d %-8s sleep=%-5d arg=%04x depth=%d",
		i.Slot, i.Handle, i.GID, i.State, i.Sleep, i.Arg, i.Depth)
}

// Snapshot returns the state of every slot in the pool. Free slots are
// included.
func (s *Scheduler) Snapshot() []Info {
	s.crit.Lock()
	defer s.crit.Unlock()

	info := make([]Info, len(s.tasks))
	for i := range s.tasks {
		t := &s.tasks[i]
		info[i] = Info{
			Slot:   i,
			Handle: t.Handle().String(),
			GID:    t.gid,
			State:  t.state.String(),
			Sleep:  t.sleep,
			Arg:    t.arg,
			Depth:  t.sp,
		}
	}
	return info
}

// Dump writes a table of the non-free slots to w.
func (s *Scheduler) Dump(w io.Writer) {
	b := strings.Builder{}
	for _, i := range s.Snapshot() {
		if i.State == Free.String() {
			continue
		}
		b.WriteString(i.String())
		b.WriteString("\n")
	}
	io.WriteString(w, b.String())
}

// DumpGraph writes a graphviz description of the task pool to w.
func (s *Scheduler) DumpGraph(w io.Writer) {
	info := s.Snapshot()
	memviz.Map(w, &info)
}
