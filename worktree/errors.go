package worktree

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a token resolved to no known worktree.
type NotFoundError struct {
	Token string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no worktree matches %q; run `graft list` to see what exists", e.Token)
}

// PreconditionError reports a refused operation: the repository state does
// not permit it without an explicit override (or at all).
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsPrecondition reports whether err is a PreconditionError.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}
