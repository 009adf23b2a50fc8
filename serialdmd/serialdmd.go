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

// Package serialdmd drives a 128x64 monochrome graphic LCD over a serial
// port. The 128x32 display is doubled vertically to fill the LCD.
//
// The LCD has only two levels. Dots brighter than half brightness are shown
// on both of the LCD rows they cover and dimmer dots are shown on the first
// row only, so that dim areas appear as horizontal stripes.
package serialdmd

import (
	"context"
	"io"
	"time"

	"go.bug.st/serial"

	"github.com/pinmachine/pinkernel/curated"
	"github.com/pinmachine/pinkernel/kernel/dmd"
	"github.com/pinmachine/pinkernel/logger"
	"github.com/pinmachine/pinkernel/userinput"
)

// Geometry of the LCD.
const (
	Width  = 128
	Height = 64

	// the LCD is addressed in bands of eight rows. each byte is one column
	// of a band with the top row in the least significant bit
	bandHeight = 8

	// number of bytes in a packed frame
	BufferSize = Width * Height / bandHeight

	// data is written in blocks of this size
	blockSize = 64
)

// DefaultDevice is the serial device used if no other is specified.
const DefaultDevice = "/dev/ttyS1"

// Sentinel error patterns.
const (
	OpenFailed  = "serialdmd: cannot open %s: %v"
	WriteFailed = "serialdmd: write: %v"
)

// LCD commands.
var (
	cmdReset    = []byte{0x1b, 0x40}
	cmdCursor   = []byte{0x0b}
	cmdClear    = []byte{0x0c}
	cmdGraphics = []byte{0x1b, 0x47}
)

// key codes sent by the LCD's keypad.
var keys = map[byte]string{
	0x41: userinput.KeyHelp,
	0x42: userinput.KeyLeft,
	0x43: userinput.KeyEscape,
	0x44: userinput.KeyUp,
	0x45: userinput.KeyReturn,
	0x46: userinput.KeyDown,
	0x47: userinput.KeyRight,
}

// how long a key is held down for. the keypad does not report releases
const keyHold = 150 * time.Millisecond

// delay after each of the initialisation commands
const settle = 5 * time.Millisecond

// LCD is a serial graphic LCD.
type LCD struct {
	port serial.Port
	out  io.Writer

	buffer [BufferSize]byte
	ready  bool
}

// Open the serial port and prepare the LCD.
func Open(device string) (*LCD, error) {
	if device == "" {
		device = DefaultDevice
	}

	mode := &serial.Mode{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, curated.Errorf(OpenFailed, device, err)
	}

	logger.Logf(logger.Allow, "serialdmd", "opened %s", device)

	return &LCD{
		port: port,
		out:  port,
	}, nil
}

// Close the serial port.
func (l *LCD) Close() error {
	if l.port == nil {
		return nil
	}
	return l.port.Close()
}

func (l *LCD) write(data []byte) error {
	n, err := l.out.Write(data)
	if err != nil {
		return curated.Errorf(WriteFailed, err)
	}
	if n < len(data) {
		return curated.Errorf(WriteFailed, curated.Errorf("wrote only %d of %d bytes", n, len(data)))
	}
	return nil
}

func (l *LCD) init() error {
	for _, cmd := range [][]byte{cmdReset, cmdCursor, cmdClear} {
		if err := l.write(cmd); err != nil {
			return err
		}
		if l.port != nil {
			time.Sleep(settle)
		}
	}
	l.ready = true
	return nil
}

// Draw a frame. The brightness of each dot is found from the flip cadence.
func (l *LCD) Draw(f *dmd.Frame, dark int, bright int) error {
	if !l.ready {
		if err := l.init(); err != nil {
			return err
		}
	}

	Pack(&l.buffer, f, dark, bright)

	if err := l.write(cmdGraphics); err != nil {
		return err
	}

	// even numbered blocks first and then odd numbered blocks
	for pass := range 2 {
		for i := pass * blockSize; i < len(l.buffer); i += 2 * blockSize {
			if err := l.write(l.buffer[i:min(i+blockSize, len(l.buffer))]); err != nil {
				return err
			}
		}
	}

	return nil
}

// Pack the frame into the LCD's band layout.
func Pack(buffer *[BufferSize]byte, f *dmd.Frame, dark int, bright int) {
	clear(buffer[:])
	for y := range dmd.Height {
		for x := range dmd.Width {
			lvl := dmd.Level(f[y][x], dark, bright)
			if lvl == 0 {
				continue
			}
			set(buffer, x, y*2)
			if lvl >= 128 {
				set(buffer, x, y*2+1)
			}
		}
	}
}

func set(buffer *[BufferSize]byte, x int, y int) {
	buffer[(y/bandHeight)*Width+x] |= 1 << (y % bandHeight)
}

// Service reads key codes from the LCD's keypad and sends them as keyboard
// events until the context is cancelled.
func (l *LCD) Service(ctx context.Context, events chan<- userinput.Event) {
	if l.port == nil {
		return
	}

	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		l.port.SetReadTimeout(100 * time.Millisecond)
		n, err := l.port.Read(buf)
		if err != nil {
			logger.Log(logger.Allow, "serialdmd", err)
			return
		}
		if n == 0 {
			continue
		}

		key, ok := keys[buf[0]]
		if !ok {
			logger.Logf(logger.Allow, "serialdmd", "unknown key code %#02x", buf[0])
			continue
		}

		send(ctx, events, userinput.EventKeyboard{Key: key, Down: true})
		time.AfterFunc(keyHold, func() {
			send(ctx, events, userinput.EventKeyboard{Key: key, Down: false})
		})
	}
}

// Key returns the key name for a key code from the keypad.
func Key(code byte) (string, bool) {
	k, ok := keys[code]
	return k, ok
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
		logger.Logf(logger.Allow, "serialdmd", "dropped %T event", ev)
		return false
	}
}
