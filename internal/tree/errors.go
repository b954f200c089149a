package tree

import "errors"

var (
	// ErrNotDir is returned when a root is not a directory.
	ErrNotDir = errors.New("not a directory")

	// ErrOutsideRoot is returned when a relative path escapes its root.
	ErrOutsideRoot = errors.New("path escapes root")
)
