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

// Package statsview serves runtime statistics over HTTP while the simulator
// is running. The server is only built in when the statsview build tag is
// given. Without the tag Available() returns false and Launch() does nothing.
//
// Charts are served at localhost:12600/debug/statsview and the standard pprof
// pages at localhost:12600/debug/pprof/.
package statsview

// Address of the statistics server.
const Address = "localhost:12600"

const url = "/debug/statsview"
