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

package recorder

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pinmachine/pinkernel/curated"
	"github.com/pinmachine/pinkernel/userinput"
)

const (
	fieldTick int = iota
	fieldSwitch
	fieldClosed
	fieldHash
	numFields
)

const fieldSep = ", "

const magic = "pinkernel recording"

const (
	lineMagic int = iota
	lineTickHz
	numHeaderLines
)

func writeHeader(w io.Writer, tickHz int) error {
	_, err := fmt.Fprintf(w, "%s\n%d\n", magic, tickHz)
	if err != nil {
		return curated.Errorf(RecordingError, err)
	}
	return nil
}

func (plb *Playback) readHeader(lines []string) error {
	if len(lines) < numHeaderLines {
		return curated.Errorf(PlaybackError, "not a recording")
	}
	if lines[lineMagic] != magic {
		return curated.Errorf(PlaybackError, "not a recording")
	}

	var err error
	plb.TickHz, err = strconv.Atoi(lines[lineTickHz])
	if err != nil {
		return curated.Errorf(PlaybackError, fmt.Sprintf("tick rate: %v", err))
	}

	return nil
}

// lookup a switch by its name.
func lookup(name string) (userinput.Switch, bool) {
	for sw := range userinput.NumSwitches {
		if sw.String() == name {
			return sw, true
		}
	}
	return userinput.NumSwitches, false
}

func formatEntry(tick uint64, sw userinput.Switch, closed bool, hash string) string {
	return strings.Join([]string{
		strconv.FormatUint(tick, 10),
		sw.String(),
		strconv.FormatBool(closed),
		hash,
	}, fieldSep) + "\n"
}
