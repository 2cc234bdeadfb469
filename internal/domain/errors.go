package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmployeeNotFound is returned when no employee matches the given ID.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrEmployeeTerminated is returned when an operation is attempted on a
	// terminated employee.
	ErrEmployeeTerminated = errors.New("employee is terminated")

	// ErrInvalidEmployee is returned when employee attributes fail validation.
	ErrInvalidEmployee = errors.New("invalid employee")

	// ErrCommitFailed marks a storage-level failure during commit.
	ErrCommitFailed = errors.New("commit failed")
)

// RollbackError reports a failed rollback. It takes precedence over the
// failure that triggered the rollback, but keeps that failure discoverable
// through Unwrap.
type RollbackError struct {
	// Err is the rollback failure itself.
	Err error
	// Cause is the failure that triggered the rollback.
	Cause error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("rollback failed: %v (while handling: %v)", e.Err, e.Cause)
}

func (e *RollbackError) Unwrap() []error {
	return []error{e.Err, e.Cause}
}
