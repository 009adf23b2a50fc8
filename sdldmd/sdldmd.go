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

// Package sdldmd draws the display in an SDL window. Each dot is one texel
// of a streaming texture which the renderer scales to the window size.
//
// SDL requires that all calls are made from the main thread. The simulator
// calls Draw() and Service() from its main loop.
package sdldmd

import (
	"runtime"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/pinmachine/pinkernel/curated"
	"github.com/pinmachine/pinkernel/kernel/dmd"
	"github.com/pinmachine/pinkernel/logger"
	"github.com/pinmachine/pinkernel/userinput"
)

// SDL is the pattern for errors from the SDL library.
const SDL = "sdldmd: %v"

const windowTitle = "Pinkernel"

// the number of bytes in each texel. red, green, blue and alpha
const depth = 4

// opacity of the grid drawn over the texture to separate the dots
const gridAlpha = 96

// Window is the SDL implementation of a display sink.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	scale float32

	pixels []byte
}

// NewWindow creates and shows a window scaled by the given amount.
func NewWindow(scale float32) (*Window, error) {
	// the SDL package calls LockOSThread() but we call it here too so that
	// the requirement is visible
	runtime.LockOSThread()

	if scale < 1 {
		scale = 1
	}

	w := &Window{
		scale:  scale,
		pixels: make([]byte, dmd.Width*dmd.Height*depth),
	}

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, curated.Errorf(SDL, err)
	}

	w.window, err = sdl.CreateWindow(windowTitle,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(float32(dmd.Width)*scale), int32(float32(dmd.Height)*scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, curated.Errorf(SDL, err)
	}

	w.renderer, err = sdl.CreateRenderer(w.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, curated.Errorf(SDL, err)
	}

	err = w.renderer.SetScale(scale, scale)
	if err != nil {
		return nil, curated.Errorf(SDL, err)
	}

	w.texture, err = w.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING), int32(dmd.Width), int32(dmd.Height))
	if err != nil {
		return nil, curated.Errorf(SDL, err)
	}

	logger.Logf(logger.Allow, "sdldmd", "window open at scale %.1f", scale)

	return w, nil
}

// Destroy the window and shut down SDL.
func (w *Window) Destroy() {
	if w.texture != nil {
		if err := w.texture.Destroy(); err != nil {
			logger.Log(logger.Allow, "sdldmd", err)
		}
	}
	if w.renderer != nil {
		if err := w.renderer.Destroy(); err != nil {
			logger.Log(logger.Allow, "sdldmd", err)
		}
	}
	if w.window != nil {
		if err := w.window.Destroy(); err != nil {
			logger.Log(logger.Allow, "sdldmd", err)
		}
	}
	sdl.Quit()
}

// Draw a frame. The brightness of each dot is found from the flip cadence.
func (w *Window) Draw(f *dmd.Frame, dark int, bright int) error {
	var colours [4][3]uint8
	for s := range colours {
		colours[s][0], colours[s][1], colours[s][2] = dmd.Amber(dmd.Level(dmd.Shade(s), dark, bright))
	}

	for y := range dmd.Height {
		for x := range dmd.Width {
			c := colours[f[y][x]&3]
			i := (y*dmd.Width + x) * depth
			w.pixels[i] = c[0]
			w.pixels[i+1] = c[1]
			w.pixels[i+2] = c[2]
			w.pixels[i+3] = 255
		}
	}

	texels, pitch, err := w.texture.Lock(nil)
	if err != nil {
		return curated.Errorf(SDL, err)
	}
	for y := range dmd.Height {
		copy(texels[y*pitch:], w.pixels[y*dmd.Width*depth:(y+1)*dmd.Width*depth])
	}
	w.texture.Unlock()

	err = w.renderer.SetDrawColor(0, 0, 0, 255)
	if err != nil {
		return curated.Errorf(SDL, err)
	}
	err = w.renderer.Clear()
	if err != nil {
		return curated.Errorf(SDL, err)
	}
	err = w.renderer.Copy(w.texture, nil, nil)
	if err != nil {
		return curated.Errorf(SDL, err)
	}

	w.grid()

	w.renderer.Present()

	return nil
}

// grid draws the gaps between dots. only worth drawing when the dots are
// large enough
func (w *Window) grid() {
	if w.scale < 3 {
		return
	}

	// lines are drawn in window coordinates
	w.renderer.SetScale(1, 1)
	defer w.renderer.SetScale(w.scale, w.scale)

	w.renderer.SetDrawBlendMode(sdl.BlendMode(sdl.BLENDMODE_BLEND))
	w.renderer.SetDrawColor(0, 0, 0, gridAlpha)

	width := int32(float32(dmd.Width) * w.scale)
	height := int32(float32(dmd.Height) * w.scale)
	for x := range dmd.Width {
		px := int32(float32(x) * w.scale)
		w.renderer.DrawLine(px, 0, px, height)
	}
	for y := range dmd.Height {
		py := int32(float32(y) * w.scale)
		w.renderer.DrawLine(0, py, width, py)
	}
}

// Service polls SDL events and sends keyboard and quit events. It must be
// called regularly from the main thread. Events are dropped if the channel is
// full.
func (w *Window) Service(events chan<- userinput.Event) {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			send(events, userinput.EventQuit{})

		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue
			}
			switch ev.Type {
			case sdl.KEYDOWN:
				send(events, userinput.EventKeyboard{
					Key:  sdl.GetKeyName(ev.Keysym.Sym),
					Down: true})
			case sdl.KEYUP:
				send(events, userinput.EventKeyboard{
					Key:  sdl.GetKeyName(ev.Keysym.Sym),
					Down: false})
			}
		}
	}
}

func send(events chan<- userinput.Event, ev userinput.Event) {
	select {
	case events <- ev:
	default:
		logger.Logf(logger.Allow, "sdldmd", "dropped %T event", ev)
	}
}
