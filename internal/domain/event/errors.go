package event

import (
	"errors"
	"fmt"
)

// ErrNotResolvable is returned by resolvers for unknown dependency names.
var ErrNotResolvable = errors.New("dependency not resolvable")

// HandlerError reports a failed handler invocation. For pre-commit handlers
// it aborts the unit of work; for post-commit handlers it is logged only.
type HandlerError struct {
	EventName string
	Handler   string
	Err       error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %q failed for event %q: %v", e.Handler, e.EventName, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
