package files

import "errors"

var (
	// ErrNotFound reports that a path vanished between operations.
	ErrNotFound = errors.New("path not found")

	// ErrPathExists reports a destination collision. Stores return it
	// instead of overwriting.
	ErrPathExists = errors.New("path already exists")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsPathExists(err error) bool {
	return errors.Is(err, ErrPathExists)
}
