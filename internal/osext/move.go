// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package osext

import (
	"fmt"
	"io"
	"os"

	"github.com/rusq/fsadapter"
)

// MoveFile moves the local file src to dst on the filesystem fsys, and
// returns the number of bytes written.  The source file is removed only if
// the destination file was written and closed successfully.
func MoveFile(src string, fsys fsadapter.FS, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("unable to open source file: %w", err)
	}
	defer in.Close()

	out, err := fsys.Create(dst)
	if err != nil {
		return 0, &Error{File: dst, Err: fmt.Errorf("unable to open destination file: %w", err)}
	}
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, &Error{File: dst, Err: fmt.Errorf("error writing output: %w", err)}
	}

	in.Close()
	if err := os.Remove(src); err != nil {
		return n, fmt.Errorf("failed removing source: %w", err)
	}
	return n, nil
}
