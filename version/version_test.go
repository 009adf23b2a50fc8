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

package version_test

import (
	"strings"
	"testing"

	"github.com/pinmachine/pinkernel/version"
	"github.com/pinmachine/pinkernel/test"
)

func TestLabel(t *testing.T) {
	v, _, release := version.Version()
	l := version.Label()
	test.ExpectSuccess(t, len(l) <= 10)
	test.ExpectEquality(t, l, strings.ToUpper(l))
	if release {
		test.ExpectSuccess(t, strings.HasPrefix(l, "R"))
	} else {
		test.ExpectSuccess(t, strings.HasPrefix(strings.ToLower(v), strings.ToLower(l)))
	}
}
