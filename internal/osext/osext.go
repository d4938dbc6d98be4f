// Package osext provides some helpful os functions.
package osext

import "fmt"

// Error is a filesystem error bound to a path.
type Error struct {
	File string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.File)
}

func (e *Error) Unwrap() error {
	return e.Err
}
