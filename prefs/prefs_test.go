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

package prefs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pinmachine/pinkernel/curated"
	"github.com/pinmachine/pinkernel/prefs"
	"github.com/pinmachine/pinkernel/test"
)

func prefsFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "pinkernel.prefs")
}

func cmpFile(t *testing.T, fn string, expected string) {
	t.Helper()
	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected))
}

func TestBool(t *testing.T) {
	fn := prefsFile(t)
	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v, w, x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("TRUE"))
	test.ExpectFailure(t, x.Set(1))

	test.DemandSuccess(t, dsk.Save())
	cmpFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")
}

func TestInt(t *testing.T) {
	fn := prefsFile(t)
	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v, w prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, dsk.Add("numberB", &w))
	test.ExpectSuccess(t, v.Set(10))
	test.ExpectSuccess(t, w.Set("99"))

	test.DemandSuccess(t, dsk.Save())
	cmpFile(t, fn, "number :: 10\nnumberB :: 99\n")

	err = v.Set("---")
	test.ExpectSuccess(t, curated.Has(err, prefs.NoConversion))
	err = v.Set(1.0)
	test.ExpectSuccess(t, curated.Is(err, prefs.NoConversion))
	test.ExpectEquality(t, v.Get(), prefs.Value(10))
}

func TestFloat(t *testing.T) {
	var f prefs.Float
	test.ExpectEquality(t, f.String(), "0.000")
	test.ExpectSuccess(t, f.Set("2.5"))
	test.ExpectEquality(t, f.Get(), prefs.Value(2.5))
	test.ExpectSuccess(t, f.Set(3))
	test.ExpectEquality(t, f.String(), "3.000")
	test.ExpectFailure(t, f.Set("x"))
}

func TestHooks(t *testing.T) {
	var v prefs.Int
	var seen []int
	v.SetHookPre(func(nv prefs.Value) error {
		if nv.(int) < 0 {
			return fmt.Errorf("negative")
		}
		return nil
	})
	v.SetHookPost(func(nv prefs.Value) error {
		seen = append(seen, nv.(int))
		return nil
	})

	test.ExpectSuccess(t, v.Set(3))
	test.ExpectFailure(t, v.Set(-1))
	test.ExpectSuccess(t, v.Set(3))
	test.ExpectEquality(t, v.Get(), prefs.Value(3))
	test.DemandEquality(t, len(seen), 2)
}

func TestLoad(t *testing.T) {
	fn := prefsFile(t)
	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	// missing file is not an error
	test.ExpectSuccess(t, dsk.Load())

	var scale prefs.Float
	var device prefs.String
	test.ExpectSuccess(t, dsk.Add("sdldmd.scale", &scale))
	test.ExpectSuccess(t, dsk.Add("serialdmd.device", &device))
	test.ExpectSuccess(t, scale.Set(4.0))
	test.ExpectSuccess(t, device.Set("/dev/ttyUSB0"))
	test.DemandSuccess(t, dsk.Save())

	test.ExpectSuccess(t, dsk.Reset())
	test.ExpectEquality(t, device.String(), "")

	test.DemandSuccess(t, dsk.Load())
	test.ExpectEquality(t, scale.Get(), prefs.Value(4.0))
	test.ExpectEquality(t, device.String(), "/dev/ttyUSB0")

	// the command line takes precedence over the file
	prefs.PushCommandLineStack("sdldmd.scale::2")
	test.DemandSuccess(t, dsk.Load())
	test.ExpectEquality(t, scale.Get(), prefs.Value(2.0))
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}

// two disks sharing a file do not clobber each other's keys
func TestSharedFile(t *testing.T) {
	fn := prefsFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var v prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, v.Set(true))
	test.DemandSuccess(t, dsk.Save())

	dsk, err = prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &s))
	test.ExpectSuccess(t, s.Set("bar"))
	test.DemandSuccess(t, dsk.Save())

	cmpFile(t, fn, "foo :: bar\ntest :: true\n")
}

func TestKeys(t *testing.T) {
	dsk, err := prefs.NewDisk(prefsFile(t))
	test.DemandSuccess(t, err)

	var v prefs.Bool
	test.ExpectSuccess(t, curated.Is(dsk.Add("a key", &v), prefs.InvalidKey))
	test.ExpectSuccess(t, curated.Is(dsk.Add("a::b", &v), prefs.InvalidKey))
	test.ExpectSuccess(t, dsk.Add("key", &v))
	test.ExpectSuccess(t, curated.Is(dsk.Add("key", &v), prefs.DuplicateKey))

	_, err = prefs.NewDisk("")
	test.ExpectFailure(t, err)
}

func TestNotPrefsFile(t *testing.T) {
	fn := prefsFile(t)
	test.DemandSuccess(t, os.WriteFile(fn, []byte("hello\n"), 0o644))

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, curated.Is(dsk.Load(), prefs.NotPrefsFile))
}

func TestMaxStringLength(t *testing.T) {
	var s prefs.String
	test.ExpectSuccess(t, s.Set("123456789"))

	s.SetMaxLen(5)
	test.ExpectEquality(t, s.String(), "12345")

	s.SetMaxLen(0)
	test.ExpectEquality(t, s.String(), "12345")

	s.SetMaxLen(3)
	test.ExpectSuccess(t, s.Set("abcdefghi"))
	test.ExpectEquality(t, s.String(), "abc")
}
