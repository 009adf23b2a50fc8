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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/pinmachine/pinkernel/config"
	"github.com/pinmachine/pinkernel/digest"
	"github.com/pinmachine/pinkernel/kernel/dmd"
	"github.com/pinmachine/pinkernel/kernel/watchdog"
	"github.com/pinmachine/pinkernel/logger"
	"github.com/pinmachine/pinkernel/modalflag"
	"github.com/pinmachine/pinkernel/nvram"
	"github.com/pinmachine/pinkernel/paths"
	"github.com/pinmachine/pinkernel/prefs"
	"github.com/pinmachine/pinkernel/recorder"
	"github.com/pinmachine/pinkernel/sdldmd"
	"github.com/pinmachine/pinkernel/serialdmd"
	"github.com/pinmachine/pinkernel/snapshot"
	"github.com/pinmachine/pinkernel/statsview"
	"github.com/pinmachine/pinkernel/termdmd"
	"github.com/pinmachine/pinkernel/userinput"
	"github.com/pinmachine/pinkernel/version"
)

const (
	prefsFile  = "pinkernel.prefs"
	nvramFile  = "nvram.yaml"
	configFile = "kernel.yaml"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// stop the default interrupt signal handling. the mode will handle ctrl-c
	// itself.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args any
}

// GuiCreator facilitates the creation, servicing and destruction of windows
// that need to be run in the main thread.
type GuiCreator interface {
	// cleanup resources used by the window
	Destroy(io.Writer)

	// Service() should not pause or loop longer than necessary. It MUST ONLY
	// be called as part of a larger loop from the main thread.
	Service()
}

// communication between the main() function and the launch() function. SDL
// requires window creation and event handling to occur on the main thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two channels.
	creation      chan GuiCreator
	creationError chan error
}

// #mainthread
func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	exitVal := 0

	// #ctrlc default handler. can be turned off with reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync)

	done := false
	var gui GuiCreator
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case creator := <-sync.creator:
			var err error

			if gui != nil {
				gui.Destroy(os.Stderr)
			}

			gui, err = creator()
			if err != nil {
				sync.creationError <- err

				// creator() may return a typed nil
				gui = nil
			} else {
				sync.creation <- gui
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if gui != nil {
					gui.Destroy(os.Stderr)
				}

				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Stop(intChan)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}

		default:
			if gui != nil {
				gui.Service()
			} else {
				time.Sleep(time.Millisecond)
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate window creation and to quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AdditionalHelp(fmt.Sprintf("%s %s", version.ApplicationName, version.Label()))
	md.AddSubModes("RUN", "TERM", "SERIAL", "HEADLESS", "DUMP")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)
	case "TERM":
		err = runTerm(md, sync)
	case "SERIAL":
		err = runSerial(md, sync)
	case "HEADLESS":
		err = headless(md)
	case "DUMP":
		err = dump(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// flags and preferences shared by every mode.
type common struct {
	configPath *string
	log        *bool
	stats      *bool
	prefsArg   *string
	record     *bool

	rec    *recorder.Recorder
	dsk    *prefs.Disk
	scale  prefs.Float
	device prefs.String
	tty    prefs.String

	nvramPath string
}

// addCommon adds the flags for every mode. The realtime flags are only added
// for modes that draw to a display.
func addCommon(md *modalflag.Modes, realtime bool) *common {
	c := &common{}

	defConfig, err := paths.ResourcePath("", configFile)
	if err != nil {
		defConfig = ""
	}

	c.configPath = md.AddString("config", defConfig, "kernel configuration file")
	c.log = md.AddBool("log", false, "echo log to stdout")
	c.prefsArg = md.AddString("prefs", "", "preferences to override the preferences file. eg. sdldmd.scale::6")
	if realtime {
		c.record = md.AddBool("record", false, "record switch events to a file")
	}
	if statsview.Available() {
		c.stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}
	return c
}

// setup must be called after the mode flags have been parsed.
func (c *common) setup() (*machine, error) {
	if *c.log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	if c.stats != nil && *c.stats {
		statsview.Launch(os.Stdout)
	}

	if err := c.loadPrefs(); err != nil {
		return nil, err
	}

	cfg, err := config.Load(*c.configPath)
	if err != nil {
		return nil, err
	}

	c.nvramPath, err = paths.ResourcePath("", nvramFile)
	if err != nil {
		return nil, err
	}
	nv := nvram.NewNVRAM(nvram.DefaultSize)
	if err := nv.Load(c.nvramPath); err != nil {
		return nil, err
	}

	var wd *watchdog.Watchdog
	if cfg.WatchdogMS > 0 {
		wd = watchdog.NewWatchdog(cfg.Watchdog(), nil)
	}

	m, err := newMachine(cfg, nv, wd)
	if err != nil {
		return nil, err
	}
	if err := m.boot(); err != nil {
		return nil, err
	}

	if c.record != nil && *c.record {
		fn, err := paths.ResourcePath("recordings", paths.UniqueFilename("recording", version.Label()))
		if err != nil {
			return nil, err
		}
		c.rec, err = recorder.NewRecorder(fn, cfg.TickHz, m.sched, m.switches)
		if err != nil {
			return nil, err
		}
		m.input = c.rec
		m.observers = append(m.observers, c.rec)
		fmt.Printf("! recording to %s\n", fn)
	}

	return m, nil
}

func (c *common) loadPrefs() error {
	pth, err := paths.ResourcePath("", prefsFile)
	if err != nil {
		return err
	}

	c.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return err
	}

	if err := c.scale.Set(4.0); err != nil {
		return err
	}
	if err := c.device.Set(serialdmd.DefaultDevice); err != nil {
		return err
	}
	if err := c.tty.Set(termdmd.DefaultTTY); err != nil {
		return err
	}

	for _, p := range []struct {
		key  string
		pref interface {
			String() string
			Set(prefs.Value) error
			Get() prefs.Value
			Reset() error
		}
	}{
		{"sdldmd.scale", &c.scale},
		{"serialdmd.device", &c.device},
		{"termdmd.tty", &c.tty},
	} {
		if err := c.dsk.Add(p.key, p.pref); err != nil {
			return err
		}
	}

	if *c.prefsArg != "" {
		prefs.PushCommandLineStack(*c.prefsArg)
		defer prefs.PopCommandLineStack()
	}

	return c.dsk.Load()
}

// finish shuts the machine down and saves the NVRAM if it has changed.
func (c *common) finish(m *machine) error {
	m.shutdown()
	if c.rec != nil {
		if err := c.rec.End(); err != nil {
			return err
		}
	}
	if m.nvram.Dirty() {
		if err := m.nvram.Save(c.nvramPath); err != nil {
			return err
		}
	}
	return c.dsk.Save()
}

// run the machine in real time, sending every frame to the sink, until ctrl-c
// or a quit event.
func (c *common) run(m *machine, sync *mainSync, out sink, events <-chan userinput.Event) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	sync.state <- stateRequest{req: reqNoIntSig}

	err := m.run(ctx, out, events)
	if ferr := c.finish(m); err == nil {
		err = ferr
	}
	return err
}

// frame is one composed frame sent to the main thread.
type frame struct {
	f      *dmd.Frame
	dark   int
	bright int
}

// sdlSink forwards frames from the kernel goroutine to an SDL window on the
// main thread.
type sdlSink struct {
	win    *sdldmd.Window
	frames chan frame
	events chan userinput.Event
}

// Draw implements the sink interface. A frame is dropped if the main thread
// has not drawn the previous one.
func (s *sdlSink) Draw(f *dmd.Frame, dark int, bright int) error {
	select {
	case s.frames <- frame{f: f, dark: dark, bright: bright}:
	default:
	}
	return nil
}

// Service implements the GuiCreator interface.
func (s *sdlSink) Service() {
	s.win.Service(s.events)
	select {
	case fr := <-s.frames:
		if err := s.win.Draw(fr.f, fr.dark, fr.bright); err != nil {
			logger.Log(logger.Allow, "sdldmd", err)
		}
	case <-time.After(time.Millisecond):
	}
}

// Destroy implements the GuiCreator interface.
func (s *sdlSink) Destroy(_ io.Writer) {
	s.win.Destroy()
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	c := addCommon(md, true)
	scale := md.AddFloat64("scale", 0.0, "window scaling. overrides the sdldmd.scale preference")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := c.setup()
	if err != nil {
		return err
	}

	if *scale > 0.0 {
		if err := c.scale.Set(*scale); err != nil {
			return err
		}
	}

	sync.creator <- func() (GuiCreator, error) {
		win, err := sdldmd.NewWindow(float32(c.scale.Get().(float64)))
		if err != nil {
			return nil, err
		}
		return &sdlSink{
			win:    win,
			frames: make(chan frame, 1),
			events: make(chan userinput.Event, 16),
		}, nil
	}

	var s *sdlSink
	select {
	case g := <-sync.creation:
		s = g.(*sdlSink)
	case err := <-sync.creationError:
		return err
	}

	return c.run(m, sync, s, s.events)
}

func runTerm(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	c := addCommon(md, true)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := c.setup()
	if err != nil {
		return err
	}

	t, err := termdmd.Open(c.tty.String(), os.Stdout)
	if err != nil {
		return err
	}
	defer t.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan userinput.Event, 16)
	go t.Service(ctx, events)

	return c.run(m, sync, t, events)
}

func runSerial(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	c := addCommon(md, true)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := c.setup()
	if err != nil {
		return err
	}

	l, err := serialdmd.Open(c.device.String())
	if err != nil {
		return err
	}
	defer l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan userinput.Event, 16)
	go l.Service(ctx, events)

	return c.run(m, sync, l, events)
}

// headless runs the machine for a number of ticks as fast as possible,
// prints the digest of every frame and saves a snapshot of the final frame.
// If a recording is given the events in it are played back and the machine
// runs at least until the last event.
func headless(md *modalflag.Modes) error {
	md.NewMode()
	c := addCommon(md, false)
	ticks := md.AddInt("ticks", 300, "number of ticks to run")
	out := md.AddString("out", "", "snapshot filename. a unique name is chosen if empty")
	scale := md.AddInt("scale", 4, "snapshot scaling")
	accept := md.AddBool("accept", true, "skip the acceptance screens")
	playback := md.AddString("playback", "", "recording to play back")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := c.setup()
	if err != nil {
		return err
	}

	if *accept {
		if err := m.accept(); err != nil {
			return err
		}
	}

	n := *ticks

	var plb *recorder.Playback
	if *playback != "" {
		plb, err = recorder.NewPlayback(*playback)
		if err != nil {
			return err
		}
		if plb.TickHz != m.cfg.TickHz {
			return fmt.Errorf("recording was made at %d Hz. the kernel is running at %d Hz", plb.TickHz, m.cfg.TickHz)
		}
		m.observers = append(m.observers, plb)
		n = max(n, int(plb.EndTick())+1)
	}

	dig := digest.NewVideo()
	for range n {
		if plb != nil {
			if err := plb.Step(m.sched.Ticks(), m.input); err != nil {
				return err
			}
		}
		m.tick()
		if err := m.draw(dig); err != nil {
			return err
		}
	}
	if plb != nil {
		fmt.Printf("! playback: %s\n", plb)
	}
	fmt.Printf("! digest after %d frames: %s\n", dig.Frames(), dig.Hash())

	dark, bright := m.display.Cadence()
	fn := *out
	if fn == "" {
		fn, err = paths.ResourcePath("snapshots", paths.UniqueFilename("headless", version.Label())+".png")
		if err != nil {
			return err
		}
	}

	if err := snapshot.Save(fn, m.display.Compose(), dark, bright, *scale); err != nil {
		return err
	}
	fmt.Printf("! snapshot saved to %s\n", fn)

	return c.finish(m)
}

// dump runs the machine for a number of ticks and writes the state of the
// scheduler.
func dump(md *modalflag.Modes) error {
	md.NewMode()
	c := addCommon(md, false)
	ticks := md.AddInt("ticks", 120, "number of ticks to run before dumping")
	graph := md.AddBool("graph", false, "write the scheduler as a graphviz graph")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := c.setup()
	if err != nil {
		return err
	}

	for range *ticks {
		m.tick()
	}

	if *graph {
		m.sched.DumpGraph(os.Stdout)
	} else {
		m.sched.Dump(os.Stdout)
		fmt.Println(m.display.String())
	}

	m.shutdown()
	return nil
}
