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

package prefs

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/pinmachine/pinkernel/curated"
)

// NoConversion is the pattern for errors returned when a value cannot be
// converted to a preference type.
const NoConversion = "prefs: cannot convert %T to %s"

// Value is any value that can be given to Set().
type Value = any

// pref is implemented by every preference type.
type pref interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
	Reset() error
}

// hooks are called on every Set() even if the value has not changed. A non-nil
// error from the pre hook stops the value being stored.
type hooks struct {
	pre  func(value Value) error
	post func(value Value) error
}

// SetHookPre sets the function called just before the value is updated.
func (h *hooks) SetHookPre(f func(value Value) error) {
	h.pre = f
}

// SetHookPost sets the function called just after the value is updated.
func (h *hooks) SetHookPost(f func(value Value) error) {
	h.post = f
}

func (h *hooks) store(v Value, slot *atomic.Value) error {
	if h.pre != nil {
		if err := h.pre(v); err != nil {
			return err
		}
	}
	slot.Store(v)
	if h.post != nil {
		return h.post(v)
	}
	return nil
}

// load returns the stored value or the zero value of T.
func load[T any](slot *atomic.Value) T {
	if v := slot.Load(); v != nil {
		return v.(T)
	}
	var z T
	return z
}

// Bool is a boolean preference.
type Bool struct {
	hooks
	value atomic.Value
}

func (p *Bool) String() string {
	return strconv.FormatBool(load[bool](&p.value))
}

// Set accepts a bool or a string. Any string other than "true" (in any case)
// is false.
func (p *Bool) Set(v Value) error {
	var nv bool
	switch v := v.(type) {
	case bool:
		nv = v
	case string:
		nv = strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return curated.Errorf(NoConversion, v, "prefs.Bool")
	}
	return p.store(nv, &p.value)
}

// Get returns the value as a bool.
func (p *Bool) Get() Value {
	return load[bool](&p.value)
}

// Reset the value to false.
func (p *Bool) Reset() error {
	return p.Set(false)
}

// Int is an integer preference.
type Int struct {
	hooks
	value atomic.Value
}

func (p *Int) String() string {
	return strconv.Itoa(load[int](&p.value))
}

// Set accepts any integer type or a string.
func (p *Int) Set(v Value) error {
	var nv int
	switch v := v.(type) {
	case int:
		nv = v
	case int32:
		nv = int(v)
	case int64:
		nv = int(v)
	case uint8:
		nv = int(v)
	case uint16:
		nv = int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return curated.Errorf("%v: %v", curated.Errorf(NoConversion, v, "prefs.Int"), err)
		}
		nv = n
	default:
		return curated.Errorf(NoConversion, v, "prefs.Int")
	}
	return p.store(nv, &p.value)
}

// Get returns the value as an int.
func (p *Int) Get() Value {
	return load[int](&p.value)
}

// Reset the value to zero.
func (p *Int) Reset() error {
	return p.Set(0)
}

// Float is a floating point preference.
type Float struct {
	hooks
	value atomic.Value
}

func (p *Float) String() string {
	return strconv.FormatFloat(load[float64](&p.value), 'f', 3, 64)
}

// Set accepts a float, an int or a string.
func (p *Float) Set(v Value) error {
	var nv float64
	switch v := v.(type) {
	case float64:
		nv = v
	case float32:
		nv = float64(v)
	case int:
		nv = float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return curated.Errorf("%v: %v", curated.Errorf(NoConversion, v, "prefs.Float"), err)
		}
		nv = f
	default:
		return curated.Errorf(NoConversion, v, "prefs.Float")
	}
	return p.store(nv, &p.value)
}

// Get returns the value as a float64.
func (p *Float) Get() Value {
	return load[float64](&p.value)
}

// Reset the value to zero.
func (p *Float) Reset() error {
	return p.Set(0.0)
}

// String is a string preference with an optional maximum length.
type String struct {
	hooks
	value  atomic.Value
	maxLen int
}

func (p *String) String() string {
	return load[string](&p.value)
}

// SetMaxLen sets the maximum length of the string. A value of zero or less
// removes the limit. The current value is cropped if it is too long.
func (p *String) SetMaxLen(n int) {
	p.maxLen = n
	if s := p.String(); n > 0 && len(s) > n {
		p.value.Store(s[:n])
	}
}

// Set accepts any value and stores its string representation.
func (p *String) Set(v Value) error {
	nv := fmt.Sprint(v)
	if p.maxLen > 0 && len(nv) > p.maxLen {
		nv = nv[:p.maxLen]
	}
	return p.store(nv, &p.value)
}

// Get returns the value as a string.
func (p *String) Get() Value {
	return p.String()
}

// Reset the value to the empty string.
func (p *String) Reset() error {
	return p.Set("")
}
