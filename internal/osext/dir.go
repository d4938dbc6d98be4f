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
	"errors"
	"fmt"
	"os"
)

// ErrNotADir is returned when the path is not a directory.
var ErrNotADir = errors.New("not a directory")

// DirExists checks if the directory exists and is a directory.  It will return
// an error if the path does not exist, and if the path is not a directory,
// ErrNotADir will be returned.
func DirExists(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return ErrNotADir
	}
	return nil
}

// EnsureDir creates the directory dir with all parents.  If the directory
// already exists, it does nothing.  If dir exists, but is not a directory,
// it returns an *Error wrapping ErrNotADir.
func EnsureDir(dir string) error {
	if dir == "" {
		return errors.New("empty directory")
	}
	err := DirExists(dir)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotADir):
		return &Error{File: dir, Err: err}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &Error{File: dir, Err: err}
	}
	return nil
}
