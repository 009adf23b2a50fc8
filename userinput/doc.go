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

// Package userinput translates input from the display sinks into switch
// closures.
//
// Each sink converts its native input (SDL keyboard events, bytes from a
// terminal in cbreak mode, key codes from a serial LCD) into an Event. The
// Event is then passed to HandleUserInput() which forwards it to a
// HandleInput implementation. The Switches type is the usual implementation
// and can be polled by tasks.
//
// Key names follow the names used by SDL.
package userinput
