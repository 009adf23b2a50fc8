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
	"sort"
	"strings"
	"sync"
)

// each group is the set of key/value pairs from one command line string
var commandLine struct {
	crit   sync.Mutex
	groups []map[string]string
}

// PushCommandLineStack parses a string of "key::value" pairs separated by
// semicolons and makes the pairs available to GetCommandLinePref(). Badly
// formed pairs are ignored.
func PushCommandLineStack(prefs string) {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	group := make(map[string]string)
	for _, p := range strings.Split(prefs, ";") {
		k, v, ok := strings.Cut(p, "::")
		if !ok {
			continue
		}
		group[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	commandLine.groups = append(commandLine.groups, group)
}

// PopCommandLineStack forgets the most recently pushed group. Returns the
// pairs in the group that were never used, sorted by key.
func PopCommandLineStack() string {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	n := len(commandLine.groups)
	if n == 0 {
		return ""
	}
	group := commandLine.groups[n-1]
	commandLine.groups = commandLine.groups[:n-1]

	pairs := make([]string, 0, len(group))
	for k, v := range group {
		pairs = append(pairs, fmt.Sprintf("%s::%s", k, v))
	}
	sort.Strings(pairs)

	return strings.Join(pairs, "; ")
}

// SizeCommandLineStack returns the number of groups on the stack.
func SizeCommandLineStack() int {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()
	return len(commandLine.groups)
}

// GetCommandLinePref returns the value for the key from the most recently
// pushed group. A value can only be got once.
func GetCommandLinePref(key string) (bool, Value) {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	n := len(commandLine.groups)
	if n == 0 {
		return false, nil
	}
	group := commandLine.groups[n-1]
	if v, ok := group[key]; ok {
		delete(group, key)
		return true, v
	}
	return false, nil
}
