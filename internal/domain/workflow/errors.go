package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: referenced application/contract/user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition: action not permitted from the current status,
	// including the lost-race case under concurrent approvals.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrUnauthorizedRole: role outside the permitted set for the action, or
	// an assignment check failed.
	ErrUnauthorizedRole = errors.New("unauthorized role")
	// ErrDependencyFailure: a side effect (notification, document render)
	// failed. Post-commit occurrences are logged, never propagated.
	ErrDependencyFailure = errors.New("dependency failure")
)

// ValidationError carries the offending field so the presentation layer can
// explain the problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Message)
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// TransitionError is an ErrInvalidTransition with the expected-vs-actual
// detail the caller needs to re-fetch and explain.
type TransitionError struct {
	Role     Role
	Action   Action
	Expected string
	Actual   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s cannot %s while status is %q (expected %q)",
		e.Role, e.Action, e.Actual, e.Expected)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

func NewTransitionError(role Role, action Action, expected, actual string) *TransitionError {
	return &TransitionError{Role: role, Action: action, Expected: expected, Actual: actual}
}
