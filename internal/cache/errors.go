package cache

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched by every error the cache returns.
var ErrInvalidArgument = errors.New("cache: invalid argument")

// InvalidArgumentError describes a rejected argument.
type InvalidArgumentError struct {
	Op     string // operation, e.g. "get"
	Arg    string // argument name, e.g. "key"
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("cache: %s: invalid %s: %s", e.Op, e.Arg, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidArgument) hold.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalid(op, arg, format string, args ...any) error {
	return &InvalidArgumentError{Op: op, Arg: arg, Reason: fmt.Sprintf(format, args...)}
}
