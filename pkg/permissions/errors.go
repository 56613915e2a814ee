package permissions

import "errors"

var (
	// ErrInvalidOperation is returned on caller contract violations,
	// such as constructing a registry with nil identity converters.
	ErrInvalidOperation = errors.New("permissions: invalid operation")
)
