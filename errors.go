package bifid

import (
	"errors"
	"fmt"
)

// ErrInvariant matches every InvariantError with errors.Is.
var ErrInvariant = errors.New("bifid: invariant violated")

// InvariantError signals a broken internal precondition: a table that is not
// a permutation of the alphabet, or a normalized letter missing from the
// table. It is a defect, never a bad-input condition, and should not be
// retried.
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("bifid: internal error in %s: %s", e.Op, e.Detail)
}

func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}

func invariantf(op, format string, v ...interface{}) error {
	return &InvariantError{Op: op, Detail: fmt.Sprintf(format, v...)}
}
