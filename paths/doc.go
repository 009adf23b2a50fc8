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

// Package paths contains functions to prepare paths to pinkernel resources:
// the preferences file, the kernel configuration, the NVRAM file and
// snapshots.
//
// The ResourcePath() function joins the supplied resource path with the
// appropriate base directory. For example, the following returns the path to
// the NVRAM file.
//
//	p, err := paths.ResourcePath("", "nvram.yaml")
//
// The policy of ResourcePath() is simple: if the directory ".pinkernel" is
// present in the program's current directory then that is the base path.
// Otherwise the "pinkernel" directory in the user's config directory is used,
// as returned by os.UserConfigDir(). On a modern Linux system, the path
// returned in the example above will be:
//
//	/home/user/.config/pinkernel/nvram.yaml
//
// Directories are created as required. The resource itself is not.
package paths
