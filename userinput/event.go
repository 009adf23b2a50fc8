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

// Event represents all the different type of events that can occur in the
// sink.
type Event any

// EventQuit is sent when the sink wants the simulation to end.
type EventQuit struct{}

// EventKeyboard is sent on a keyboard press or release.
type EventKeyboard struct {
	Key  string
	Down bool
}

// List of key names produced by sinks other than SDL. They are the same as
// the names used by SDL.
const (
	KeyReturn = "Return"
	KeyEscape = "Escape"
	KeyUp     = "Up"
	KeyDown   = "Down"
	KeyLeft   = "Left"
	KeyRight  = "Right"
	KeySpace  = "Space"
	KeyHelp   = "Help"
)
