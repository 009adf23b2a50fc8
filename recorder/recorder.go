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
	"io"
	"os"

	"github.com/pinmachine/pinkernel/curated"
	"github.com/pinmachine/pinkernel/digest"
	"github.com/pinmachine/pinkernel/kernel/dmd"
	"github.com/pinmachine/pinkernel/userinput"
)

// Sentinel error patterns.
const (
	RecordingError = "recording: %v"
	PlaybackError  = "playback: %v"
)

// Ticker is implemented by the task scheduler.
type Ticker interface {
	Ticks() uint64
}

// Recorder implements the userinput.HandleInput interface. Every switch event
// is written to the recording and then passed on.
type Recorder struct {
	output io.WriteCloser
	handle userinput.HandleInput
	ticker Ticker
	digest *digest.Video
}

// NewRecorder creates a recording file and writes the header.
func NewRecorder(transcript string, tickHz int, ticker Ticker, handle userinput.HandleInput) (*Recorder, error) {
	f, err := os.Create(transcript)
	if err != nil {
		return nil, curated.Errorf(RecordingError, err)
	}
	return newRecorder(f, tickHz, ticker, handle)
}

func newRecorder(output io.WriteCloser, tickHz int, ticker Ticker, handle userinput.HandleInput) (*Recorder, error) {
	rec := &Recorder{
		output: output,
		handle: handle,
		ticker: ticker,
		digest: digest.NewVideo(),
	}

	if err := writeHeader(rec.output, tickHz); err != nil {
		rec.output.Close()
		return nil, err
	}

	return rec, nil
}

// Draw adds the frame to the digest. Must be called for every tick.
func (rec *Recorder) Draw(f *dmd.Frame, dark int, bright int) error {
	return rec.digest.Draw(f, dark, bright)
}

// HandleSwitch implements the userinput.HandleInput interface.
func (rec *Recorder) HandleSwitch(sw userinput.Switch, closed bool) error {
	line := formatEntry(rec.ticker.Ticks(), sw, closed, rec.digest.Hash())
	if _, err := io.WriteString(rec.output, line); err != nil {
		return curated.Errorf(RecordingError, err)
	}
	return rec.handle.HandleSwitch(sw, closed)
}

// End closes the recording.
func (rec *Recorder) End() error {
	if err := rec.output.Close(); err != nil {
		return curated.Errorf(RecordingError, err)
	}
	return nil
}
