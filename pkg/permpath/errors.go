package permpath

import "errors"

var (
	// ErrInvalidPath is returned when a permission path string is malformed.
	ErrInvalidPath = errors.New("permpath: invalid permission path")
)
