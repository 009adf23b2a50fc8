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

// Package termdmd draws the display in a terminal that supports 24-bit
// colour. Each character cell shows two rows of dots using the upper half
// block character, so the display needs 128 columns and 16 rows.
//
// Keyboard input is read from the controlling terminal, which is put into
// cbreak mode while the display is open.
package termdmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/term"

	"github.com/pinmachine/pinkernel/curated"
	"github.com/pinmachine/pinkernel/kernel/dmd"
	"github.com/pinmachine/pinkernel/logger"
	"github.com/pinmachine/pinkernel/userinput"
)

// DefaultTTY is the terminal used for keyboard input.
const DefaultTTY = "/dev/tty"

// OpenFailed is the pattern for errors returned by Open().
const OpenFailed = "termdmd: cannot open %s: %v"

// ANSI sequences.
const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	resetColour = "\x1b[0m"
	upperHalf   = "▀"
)

// list of ASCII codes for keys with no printable character.
const (
	keyCtrlC = 3
	keyLF    = 10
	keyCR    = 13
	keyEsc   = 27
)

// how long a key is held down for. a terminal does not report releases
const keyHold = 150 * time.Millisecond

// Terminal is a display drawn in a terminal.
type Terminal struct {
	tty *term.Term
	out io.Writer

	// the previous frame as drawn. unchanged frames are not written
	prev string
}

// Open the terminal for input and prepare the output for drawing.
func Open(tty string, out io.Writer) (*Terminal, error) {
	if tty == "" {
		tty = DefaultTTY
	}

	t, err := term.Open(tty, term.CBreakMode)
	if err != nil {
		return nil, curated.Errorf(OpenFailed, tty, err)
	}

	io.WriteString(out, clearScreen+hideCursor)

	return &Terminal{
		tty: t,
		out: out,
	}, nil
}

// Close restores the terminal to the mode it was in when opened.
func (t *Terminal) Close() error {
	io.WriteString(t.out, resetColour+showCursor+"\n")
	if t.tty == nil {
		return nil
	}
	if err := t.tty.Restore(); err != nil {
		t.tty.Close()
		return err
	}
	return t.tty.Close()
}

// Draw a frame. The brightness of each dot is found from the flip cadence.
func (t *Terminal) Draw(f *dmd.Frame, dark int, bright int) error {
	s := Render(f, dark, bright)
	if s == t.prev {
		return nil
	}
	t.prev = s
	_, err := io.WriteString(t.out, cursorHome+s)
	return err
}

// Render the frame as text, one line for every two rows of dots.
func Render(f *dmd.Frame, dark int, bright int) string {
	var levels [4]uint8
	for s := range levels {
		levels[s] = dmd.Level(dmd.Shade(s), dark, bright)
	}

	b := strings.Builder{}
	for y := 0; y < dmd.Height; y += 2 {
		prevTop, prevBot := -1, -1
		for x := range dmd.Width {
			top := int(levels[f[y][x]&3])
			bot := int(levels[f[y+1][x]&3])
			if top != prevTop {
				r, g, b2 := dmd.Amber(uint8(top))
				fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm", r, g, b2)
				prevTop = top
			}
			if bot != prevBot {
				r, g, b2 := dmd.Amber(uint8(bot))
				fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm", r, g, b2)
				prevBot = bot
			}
			b.WriteString(upperHalf)
		}
		b.WriteString(resetColour)
		b.WriteString("\n")
	}
	return b.String()
}

// Service reads keys from the terminal and sends them as keyboard events
// until the context is cancelled. Ctrl-C is sent as a quit event.
func (t *Terminal) Service(ctx context.Context, events chan<- userinput.Event) {
	if t.tty == nil {
		return
	}

	t.tty.SetReadTimeout(100 * time.Millisecond)

	buf := make([]byte, 16)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, err := t.tty.Read(buf)
		if err != nil && err != io.EOF {
			logger.Log(logger.Allow, "termdmd", err)
			return
		}
		if n == 0 {
			continue
		}

		keys, quit := Decode(buf[:n])
		if quit {
			select {
			case events <- userinput.EventQuit{}:
			case <-ctx.Done():
			}
			return
		}
		for _, k := range keys {
			send(ctx, events, userinput.EventKeyboard{Key: k, Down: true})
			time.AfterFunc(keyHold, func() {
				send(ctx, events, userinput.EventKeyboard{Key: k, Down: false})
			})
		}
	}
}

// Decode the bytes read from a terminal into key names. Returns true if the
// input contains Ctrl-C.
func Decode(input []byte) ([]string, bool) {
	var keys []string
	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c == keyCtrlC:
			return keys, true

		case c == keyCR || c == keyLF:
			keys = append(keys, userinput.KeyReturn)

		case c == ' ':
			keys = append(keys, userinput.KeySpace)

		case c == keyEsc:
			// cursor keys are ESC [ followed by a letter. a lone ESC is the
			// escape key
			if i+2 < len(input) && input[i+1] == '[' {
				switch input[i+2] {
				case 'A':
					keys = append(keys, userinput.KeyUp)
				case 'B':
					keys = append(keys, userinput.KeyDown)
				case 'C':
					keys = append(keys, userinput.KeyRight)
				case 'D':
					keys = append(keys, userinput.KeyLeft)
				}
				i += 2
			} else {
				keys = append(keys, userinput.KeyEscape)
			}

		case c >= 'a' && c <= 'z':
			keys = append(keys, string(c-'a'+'A'))

		case c > ' ' && c < 0x7f:
			keys = append(keys, string(c))
		}
	}
	return keys, false
}

// send an event without blocking. the event is dropped if the context has
// been cancelled or the channel is full.
func send(ctx context.Context, events chan<- userinput.Event, ev userinput.Event) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case events <- ev:
		return true
	default:
		logger.Logf(logger.Allow, "termdmd", "dropped %T event", ev)
		return false
	}
}
