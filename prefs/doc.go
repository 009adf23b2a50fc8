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

// Package prefs holds the simulator's user preferences. Each preference is a
// typed value that can be set from a Go value or from a string. A Disk
// collects preferences under keys and saves them to a plain text file, one
// "key :: value" pair per line.
//
// Preferences can also be given on the command line as a single string of
// "key::value" pairs separated by semicolons. PushCommandLineStack() makes the
// pairs available and Disk.Load() applies them after the values from the file,
// so that the command line takes precedence.
package prefs
