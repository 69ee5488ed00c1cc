package state

import (
	"errors"
	"fmt"
)

// ErrClosed is returned when a notifier is mutated or subscribed to after
// Dispose.
var ErrClosed = errors.New("state: notifier is closed")

// RestrictedError reports a write attempted through a read-only view. Op
// names the blocked operation; Args holds the attempted arguments for
// diagnostics.
type RestrictedError struct {
	Op   string
	Args []any
}

func (e *RestrictedError) Error() string {
	if len(e.Args) == 0 {
		return fmt.Sprintf("state: restricted operation %s on read-only view", e.Op)
	}
	return fmt.Sprintf("state: restricted operation %s%v on read-only view", e.Op, e.Args)
}
