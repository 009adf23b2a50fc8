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

// Package config holds the kernel configuration: the sizes of the task and
// page pools, the tick rate, the display cadence and the watchdog timeout.
//
// The configuration is read from a YAML file. Fields missing from the file
// keep their default values.
//
//	tasks: 16
//	stack_size: 43
//	pages: 16
//	tick_hz: 60
//	flip_dark: 1
//	flip_bright: 2
//	watchdog_ms: 500
//	track_pages: false
package config

import (
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pinmachine/pinkernel/curated"
	"github.com/pinmachine/pinkernel/kernel/dmd"
	"github.com/pinmachine/pinkernel/kernel/task"
	"github.com/pinmachine/pinkernel/logger"
)

// Sentinel error patterns.
const (
	BadFile  = "config: %s: %v"
	BadValue = "config: %s: %v is not valid (%s)"
)

// Kernel is the kernel configuration.
type Kernel struct {
	Tasks      int  `yaml:"tasks"`
	StackSize  int  `yaml:"stack_size"`
	Pages      int  `yaml:"pages"`
	TickHz     int  `yaml:"tick_hz"`
	FlipDark   int  `yaml:"flip_dark"`
	FlipBright int  `yaml:"flip_bright"`
	WatchdogMS int  `yaml:"watchdog_ms"`
	TrackPages bool `yaml:"track_pages"`
}

// Default returns the default configuration.
func Default() Kernel {
	return Kernel{
		Tasks:      task.DefaultNumTasks,
		StackSize:  task.DefaultStackSize,
		Pages:      dmd.DefaultPages,
		TickHz:     60,
		FlipDark:   dmd.DefaultFlipDark,
		FlipBright: dmd.DefaultFlipBright,
		WatchdogMS: 500,
	}
}

// Load the configuration from a file. An empty path or a missing file gives
// the default configuration. The result has been validated.
func Load(path string) (Kernel, error) {
	k := Default()
	if path == "" {
		return k, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Logf(logger.Allow, "config", "%s not found. using defaults", path)
			return k, nil
		}
		return k, curated.Errorf(BadFile, path, err)
	}
	defer f.Close()

	k, err = Read(f)
	if err != nil {
		return k, curated.Errorf(BadFile, path, err)
	}
	return k, nil
}

// Read the configuration from an io.Reader. The result has been validated.
func Read(r io.Reader) (Kernel, error) {
	k := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&k); err != nil && err != io.EOF {
		return Default(), err
	}
	if err := k.Validate(); err != nil {
		return Default(), err
	}
	return k, nil
}

// Write the configuration to an io.Writer.
func (k Kernel) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(k); err != nil {
		return err
	}
	return enc.Close()
}

// Save the configuration to a file.
func (k Kernel) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf(BadFile, path, err)
	}
	defer f.Close()
	if err := k.Write(f); err != nil {
		return curated.Errorf(BadFile, path, err)
	}
	return nil
}

// Validate the configuration.
func (k Kernel) Validate() error {
	if k.Tasks < 1 || k.Tasks > 255 {
		return curated.Errorf(BadValue, "tasks", k.Tasks, "1 to 255")
	}
	if k.StackSize < 1 {
		return curated.Errorf(BadValue, "stack_size", k.StackSize, "at least 1")
	}
	if k.Pages < 2 || k.Pages > 256 {
		return curated.Errorf(BadValue, "pages", k.Pages, "2 to 256")
	}
	if k.TickHz < 1 || k.TickHz > 1000 {
		return curated.Errorf(BadValue, "tick_hz", k.TickHz, "1 to 1000")
	}
	if k.FlipDark < 1 {
		return curated.Errorf(BadValue, "flip_dark", k.FlipDark, "at least 1")
	}
	if k.FlipBright < 1 {
		return curated.Errorf(BadValue, "flip_bright", k.FlipBright, "at least 1")
	}
	if k.WatchdogMS < 0 {
		return curated.Errorf(BadValue, "watchdog_ms", k.WatchdogMS, "zero disables the watchdog")
	}
	return nil
}

// Watchdog returns the watchdog timeout. Zero means no watchdog.
func (k Kernel) Watchdog() time.Duration {
	return time.Duration(k.WatchdogMS) * time.Millisecond
}

// TickPeriod returns the duration of one scheduler tick.
func (k Kernel) TickPeriod() time.Duration {
	return time.Second / time.Duration(k.TickHz)
}
