package combat

import (
	"errors"
	"fmt"
)

// ErrUnimplemented is returned when a session needs behavior that has not
// been written, such as an unknown relic or effect operation.
var ErrUnimplemented = errors.New("unimplemented combat behavior")

// InvariantError is the panic value raised when the engine detects a broken
// internal contract, such as a targeted effect resolving with no target.
// It is never recovered by Session.Run.
type InvariantError struct {
	Op     string
	Detail string
}

// Error implements error.
func (e InvariantError) Error() string {
	return fmt.Sprintf("combat invariant violated in %s: %s", e.Op, e.Detail)
}

func invariant(op, format string, args ...any) {
	panic(InvariantError{Op: op, Detail: fmt.Sprintf(format, args...)})
}
