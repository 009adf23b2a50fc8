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
	"os"
	"strconv"
	"strings"

	"github.com/pinmachine/pinkernel/curated"
	"github.com/pinmachine/pinkernel/digest"
	"github.com/pinmachine/pinkernel/kernel/dmd"
	"github.com/pinmachine/pinkernel/userinput"
)

// PlaybackHashError is returned when the output of the kernel differs from
// the output when the recording was made.
const PlaybackHashError = "playback: unexpected output before line %d (tick %d)"

type playbackEntry struct {
	tick   uint64
	sw     userinput.Switch
	closed bool
	hash   string

	// the line in the recording file the playback event appears
	line int
}

// Playback applies the events in a recording to a HandleInput implementation.
type Playback struct {
	TickHz int

	sequence []playbackEntry
	seqCt    int

	digest *digest.Video

	// the tick of the last event
	endTick uint64
}

func (plb *Playback) String() string {
	return fmt.Sprintf("%d/%d events", plb.seqCt, len(plb.sequence))
}

// NewPlayback reads a recording file.
func NewPlayback(transcript string) (*Playback, error) {
	f, err := os.Open(transcript)
	if err != nil {
		return nil, curated.Errorf(PlaybackError, err)
	}
	defer f.Close()
	return newPlayback(f)
}

func newPlayback(r io.Reader) (*Playback, error) {
	buffer, err := io.ReadAll(r)
	if err != nil {
		return nil, curated.Errorf(PlaybackError, err)
	}

	plb := &Playback{
		digest: digest.NewVideo(),
	}

	lines := strings.Split(strings.TrimRight(string(buffer), "\n"), "\n")
	if err := plb.readHeader(lines); err != nil {
		return nil, err
	}

	for i := numHeaderLines; i < len(lines); i++ {
		toks := strings.Split(lines[i], fieldSep)
		if len(toks) != numFields {
			return nil, curated.Errorf(PlaybackError, fmt.Sprintf("expected %d fields at line %d", numFields, i+1))
		}

		entry := playbackEntry{line: i + 1, hash: toks[fieldHash]}

		entry.tick, err = strconv.ParseUint(toks[fieldTick], 10, 64)
		if err != nil {
			return nil, curated.Errorf(PlaybackError, fmt.Sprintf("line %d: %v", i+1, err))
		}
		if entry.tick < plb.endTick {
			return nil, curated.Errorf(PlaybackError, fmt.Sprintf("line %d: ticks out of order", i+1))
		}
		plb.endTick = entry.tick

		var ok bool
		entry.sw, ok = lookup(toks[fieldSwitch])
		if !ok {
			return nil, curated.Errorf(PlaybackError, fmt.Sprintf("line %d: unknown switch %s", i+1, toks[fieldSwitch]))
		}

		entry.closed, err = strconv.ParseBool(toks[fieldClosed])
		if err != nil {
			return nil, curated.Errorf(PlaybackError, fmt.Sprintf("line %d: %v", i+1, err))
		}

		plb.sequence = append(plb.sequence, entry)
	}

	return plb, nil
}

// EndTick returns the tick of the last event in the recording.
func (plb *Playback) EndTick() uint64 {
	return plb.endTick
}

// Done returns true when every event has been applied.
func (plb *Playback) Done() bool {
	return plb.seqCt >= len(plb.sequence)
}

// Draw adds the frame to the digest. Must be called for every tick.
func (plb *Playback) Draw(f *dmd.Frame, dark int, bright int) error {
	return plb.digest.Draw(f, dark, bright)
}

// Step applies every event recorded for the tick. Must be called between
// scheduler ticks.
func (plb *Playback) Step(tick uint64, handle userinput.HandleInput) error {
	for plb.seqCt < len(plb.sequence) {
		entry := plb.sequence[plb.seqCt]
		if entry.tick != tick {
			return nil
		}
		plb.seqCt++

		if entry.hash != plb.digest.Hash() {
			return curated.Errorf(PlaybackHashError, entry.line, tick)
		}
		if err := handle.HandleSwitch(entry.sw, entry.closed); err != nil {
			return err
		}
	}
	return nil
}
