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

package userinput

// keymap translates key names to switches.
var keymap = map[string]Switch{
	"Escape":       SwEscape,
	"Page Down":    SwDown,
	"Keypad -":     SwDown,
	"Page Up":      SwUp,
	"Keypad +":     SwUp,
	"Return":       SwEnter,
	"Keypad Enter": SwEnter,
	"1":            SwStart,
	"Help":         SwStart,
	"3":            SwLeftCoin,
	"4":            SwRightCoin,
	"Left":         SwLeftFlipper,
	"Right":        SwRightFlipper,
	"T":            SwTilt,

	// the serial LCD has up and down keys but no page up or page down
	"Up":   SwUp,
	"Down": SwDown,
}

// Lookup returns the switch for a key name.
func Lookup(key string) (Switch, bool) {
	sw, ok := keymap[key]
	return sw, ok
}

// HandleUserInput deciphers the Event and forwards it to the switch matrix.
// Returns true if the event is a quit event and false otherwise.
func HandleUserInput(ev Event, handle HandleInput) (bool, error) {
	switch ev := ev.(type) {
	case EventQuit:
		return true, nil
	case EventKeyboard:
		sw, ok := keymap[ev.Key]
		if !ok {
			return false, nil
		}
		return false, handle.HandleSwitch(sw, ev.Down)
	}
	return false, nil
}
