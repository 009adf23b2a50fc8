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

	"github.com/pinmachine/pinkernel/callset"
	"github.com/pinmachine/pinkernel/config"
	"github.com/pinmachine/pinkernel/deff"
	"github.com/pinmachine/pinkernel/kernel/dmd"
	"github.com/pinmachine/pinkernel/kernel/font"
	"github.com/pinmachine/pinkernel/kernel/rombank"
	"github.com/pinmachine/pinkernel/kernel/task"
	"github.com/pinmachine/pinkernel/kernel/watchdog"
	"github.com/pinmachine/pinkernel/limiter"
	"github.com/pinmachine/pinkernel/logger"
	"github.com/pinmachine/pinkernel/nvram"
	"github.com/pinmachine/pinkernel/userinput"
	"github.com/pinmachine/pinkernel/version"
)

// task groups used by the simulator.
const (
	gidSystem task.GID = iota + 1
	gidAttract
)

// callset event kinds.
const (
	kindInit callset.Kind = iota
	kindAttract
	kindStartButton
)

// the three bytes stored in NVRAM once the user has accepted the software
var acceptance = [3]byte{0x19, 0x75, 0xb9}

// sink is implemented by the display sinks.
type sink interface {
	Draw(f *dmd.Frame, dark int, bright int) error
}

// machine is the kernel and the simulated machine built on top of it.
type machine struct {
	cfg config.Kernel

	wd       *watchdog.Watchdog
	sched    *task.Scheduler
	display  *dmd.Display
	banks    *rombank.Banks
	engine   *font.Engine
	deffs    *deff.Runner
	switches *userinput.Switches
	nvram    *nvram.NVRAM
	calls    *callset.Registry[*task.Task]

	// switch events from the sinks are sent to input. usually the same as
	// switches but may be a recorder
	input userinput.HandleInput

	// every frame drawn to the sink is also drawn to the observers
	observers []sink
}

// newMachine creates the kernel from the configuration. The watchdog may be
// nil.
func newMachine(cfg config.Kernel, nv *nvram.NVRAM, wd *watchdog.Watchdog) (*machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &machine{
		cfg:      cfg,
		wd:       wd,
		switches: &userinput.Switches{},
		nvram:    nv,
		banks:    rombank.NewBanks(0),
		calls:    callset.NewRegistry[*task.Task](),
	}

	// a nil watchdog must not become a non-nil interface
	var hb task.Heartbeater
	if wd != nil {
		hb = wd
	}

	m.sched = task.NewScheduler(cfg.Tasks, cfg.StackSize, hb)
	m.display = dmd.NewDisplay(cfg.Pages)
	if err := m.display.SetCadence(cfg.FlipDark, cfg.FlipBright); err != nil {
		return nil, err
	}
	m.display.TrackPages(cfg.TrackPages)

	m.engine = font.NewEngine(m.display, m.banks)
	if hb != nil {
		m.engine.SetHeartbeat(hb)
	}
	m.deffs = deff.NewRunner(m.sched, m.display, m.engine)

	m.calls.Name(kindInit, "init")
	m.calls.Name(kindAttract, "attract")
	m.calls.Name(kindStartButton, "start button")

	for _, r := range []struct {
		kind    callset.Kind
		name    string
		handler callset.Handler[*task.Task]
	}{
		{kindInit, "reset screen", m.resetScreen},
		{kindAttract, "attract mode", m.startAttract},
		{kindStartButton, "start game", m.startGame},
	} {
		if err := m.calls.Register(r.kind, r.name, r.handler); err != nil {
			return nil, err
		}
	}
	m.calls.Seal()
	m.input = m.switches

	return m, nil
}

// ticks converts milliseconds to scheduler ticks. never less than one tick.
func (m *machine) ticks(ms int) task.Ticks {
	return task.Ticks(max(ms*m.cfg.TickHz/1000, 1))
}

// boot creates the system task. it runs on the next tick.
func (m *machine) boot() error {
	_, err := m.sched.Create(gidSystem, m.system, 0)
	return err
}

// tick advances the scheduler and the display driver by one tick.
func (m *machine) tick() {
	m.sched.Tick()
	m.display.Tick()
}

// run ticks the machine in real time and draws every tick to the sink, until
// the context is cancelled or a quit event is received.
func (m *machine) run(ctx context.Context, out sink, events <-chan userinput.Event) error {
	lim, err := limiter.NewFPSLimiter(m.cfg.TickHz)
	if err != nil {
		return err
	}
	defer lim.Stop()

	if m.wd != nil {
		wctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go m.wd.Run(wctx)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			quit, err := userinput.HandleUserInput(ev, m.input)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}

		case <-lim.C():
			m.tick()
			if err := m.draw(out); err != nil {
				return err
			}
		}
	}
}

// draw composes the display and draws the frame to the sink and to every
// observer.
func (m *machine) draw(out sink) error {
	dark, bright := m.display.Cadence()
	f := m.display.Compose()
	if err := out.Draw(f, dark, bright); err != nil {
		return err
	}
	for _, o := range m.observers {
		if err := o.Draw(f, dark, bright); err != nil {
			return err
		}
	}
	return nil
}

// shutdown kills every task.
func (m *machine) shutdown() {
	m.sched.Shutdown()
}

func (m *machine) accepted() bool {
	for i, v := range acceptance {
		b, err := m.nvram.Read(i)
		if err != nil || b != v {
			return false
		}
	}
	return true
}

// accept marks the software as accepted without showing the acceptance
// screens.
func (m *machine) accept() error {
	for i, v := range acceptance {
		if err := m.nvram.Write(i, v); err != nil {
			return err
		}
	}
	return nil
}

// system is the first task. it runs the acceptance screens if required and
// then starts the reset screen and attract mode.
func (m *machine) system(t *task.Task) {
	if !m.accepted() {
		m.acceptanceScreens(t)
		if err := m.accept(); err != nil {
			t.Logf("%v", err)
		}
	}

	m.calls.Invoke(kindInit, t)

	for t.FindGID(m.deffs.GID()).Valid() {
		t.Sleep(m.ticks(66))
	}

	m.calls.Invoke(kindAttract, t)
}

func (m *machine) acceptanceScreens(t *task.Task) {
	screens := [][]string{
		{"PINKERNEL", "WARNING... THE MAKER", "OF THIS MACHINE DOES", "NOT SUPPORT THIS", "PRESS ENTER"},
		{"PINKERNEL", "NO WARRANTY EXISTS", "ROM MAY CAUSE DAMAGE", "TO REAL MACHINE", "PRESS ENTER"},
		{"PINKERNEL", "IF YOU ARE SURE YOU", "WANT TO CONTINUE", "PRESS ENTER TWICE"},
	}

	poll := m.ticks(66)
	for i, lines := range screens {
		m.display.AllocLowClean()
		for j, s := range lines {
			m.engine.Render(font.Mono5, dmd.Width/2, 3+6*j, font.Center, s)
		}
		m.display.Show(dmd.Low)

		m.switches.WaitForButton(t, userinput.SwEnter, poll)
		if i == len(screens)-1 {
			m.switches.WaitForButton(t, userinput.SwEnter, poll)
		}
	}

	m.display.AllocLowClean()
	m.display.Show(dmd.Low)
	t.Sleep(m.ticks(1000))
}

// resetScreen is the init handler that shows the name and version.
func (m *machine) resetScreen(t *task.Task) {
	e := deff.Effect{
		Name: "system reset",
		Run: func(t *task.Task, r *deff.Runner) {
			d := r.Display()
			e := r.Engine()
			d.AllocLowClean()
			e.Render(font.Mono5, 64, 4, font.Center, "PINKERNEL")
			e.Render(font.Mono5, 32, 12, font.Center, version.Label())
			e.Render(font.Mono5, 96, 12, font.Center, e.Sprintf("%d HZ", m.cfg.TickHz))
			e.Render(font.Mono5, 64, 20, font.Center, e.Sprintf("%d TASKS %d PAGES", m.sched.Capacity(), d.NumPages()))
			e.Render(font.Mono5, 64, 28, font.Center, "TESTING...")
			d.Show(dmd.Low)
			t.Sleep(m.ticks(2000))
		},
	}
	if _, err := m.deffs.StartFrom(t, e); err != nil {
		t.Logf("%v", err)
	}
}

// startAttract is the attract handler that creates the attract mode task.
func (m *machine) startAttract(t *task.Task) {
	if _, err := t.CreateGID1(gidAttract, m.attract, 0); err != nil {
		t.Logf("%v", err)
	}
}

// startGame is the start button handler.
func (m *machine) startGame(t *task.Task) {
	logger.Log(logger.Allow, "pinkernel", "start button")
	e := deff.Message(font.Mono5, m.ticks(2000), "PLAYER 1", "BALL 1")
	e.Name = "start game"
	if _, err := m.deffs.StartFrom(t, e); err != nil {
		t.Logf("%v", err)
	}
}

// highScore shows a two shade screen. the title is bright and the score is
// dim.
func (m *machine) highScore(ticks task.Ticks) deff.Effect {
	return deff.Effect{
		Name: "high score",
		Run: func(t *task.Task, r *deff.Runner) {
			d := r.Display()
			e := r.Engine()
			d.AllocLowClean()
			d.AllocHighClean()
			e.Render2(font.Mono5, 64, 8, font.Center, "HIGH SCORE")
			e.Render(font.Mono7x13, 64, 21, font.Center, "1,000,000")
			e.BitmapDraw(8, 16, font.SymbolBall)
			e.BitmapDraw(112, 16, font.SymbolBall)
			d.ShowGrayscale()
			t.Sleep(ticks)
		},
	}
}

// attract cycles through the attract mode effects. a press of the start
// button is passed to the start button handlers.
func (m *machine) attract(t *task.Task) {
	effects := []deff.Effect{
		deff.Message(font.Mono7x13, m.ticks(3000), "PINKERNEL"),
		deff.ScrollUp(font.Mono5, m.ticks(50), m.ticks(2000), "PRESS START"),
		m.highScore(m.ticks(3000)),
		deff.Flash(font.Mono5, m.ticks(250), 4, "FREE PLAY"),
		deff.Grayscale(m.ticks(2000)),
	}

	poll := m.ticks(66)
	start := m.switches.Count(userinput.SwStart)

	for i := 0; ; i++ {
		if _, err := m.deffs.StartFrom(t, effects[i%len(effects)]); err != nil {
			t.Logf("%v", err)
			t.Sleep(poll)
			continue
		}

		for t.FindGID(m.deffs.GID()).Valid() {
			t.Sleep(poll)
			if c := m.switches.Count(userinput.SwStart); c != start {
				start = c
				m.calls.Invoke(kindStartButton, t)
			}
		}
	}
}
