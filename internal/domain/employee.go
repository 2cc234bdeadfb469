package domain

import (
	"fmt"
	"strings"
	"time"

	"go-workforce/internal/domain/event"

	"github.com/google/uuid"
)

// Compile-time interface check
var _ event.Source = (*Employee)(nil)

// Employee is the aggregate root representing a member of the workforce.
// It raises domain events through its embedded event recorder.
type Employee struct {
	event.Recorder

	id         string
	name       string
	position   string
	salary     int64
	hiredAt    time.Time
	terminated bool
	updatedAt  time.Time
}

// NewEmployee hires a new employee and raises an EmployeeHired event.
func NewEmployee(name, position string, salary int64) (*Employee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidEmployee)
	}
	if position == "" {
		return nil, fmt.Errorf("%w: position must not be empty", ErrInvalidEmployee)
	}
	if salary < 0 {
		return nil, fmt.Errorf("%w: salary must not be negative", ErrInvalidEmployee)
	}

	now := time.Now().UTC()
	e := &Employee{
		id:        uuid.Must(uuid.NewV7()).String(),
		name:      name,
		position:  position,
		salary:    salary,
		hiredAt:   now,
		updatedAt: now,
	}
	e.Raise(event.NewEmployeeHired(e.id, e.name, e.position, e.salary))
	return e, nil
}

// ReconstructEmployee recreates an employee from persistence. No events are
// raised.
func ReconstructEmployee(
	id string,
	name string,
	position string,
	salary int64,
	hiredAt time.Time,
	terminated bool,
	updatedAt time.Time,
) *Employee {
	return &Employee{
		id:         id,
		name:       name,
		position:   position,
		salary:     salary,
		hiredAt:    hiredAt,
		terminated: terminated,
		updatedAt:  updatedAt,
	}
}

// ID returns the employee's unique identifier.
func (e *Employee) ID() string {
	return e.id
}

// Name returns the employee's name.
func (e *Employee) Name() string {
	return e.name
}

// Position returns the employee's current position.
func (e *Employee) Position() string {
	return e.position
}

// Salary returns the employee's current salary.
func (e *Employee) Salary() int64 {
	return e.salary
}

// HiredAt returns when the employee was hired.
func (e *Employee) HiredAt() time.Time {
	return e.hiredAt
}

// Terminated reports whether the employee has left the company.
func (e *Employee) Terminated() bool {
	return e.terminated
}

// UpdatedAt returns when the employee was last updated.
func (e *Employee) UpdatedAt() time.Time {
	return e.updatedAt
}

// Promote moves the employee to a new position with a salary raise and
// raises an EmployeePromoted event.
func (e *Employee) Promote(position string, raise int64) error {
	if e.terminated {
		return ErrEmployeeTerminated
	}
	if position == "" {
		return fmt.Errorf("%w: position must not be empty", ErrInvalidEmployee)
	}
	if raise < 0 {
		return fmt.Errorf("%w: raise must not be negative", ErrInvalidEmployee)
	}

	old := e.position
	e.position = position
	e.salary += raise
	e.updatedAt = time.Now().UTC()
	e.Raise(event.NewEmployeePromoted(e.id, old, e.position, e.salary))
	return nil
}

// Terminate marks the employee as having left the company and raises an
// EmployeeTerminated event.
func (e *Employee) Terminate(reason string) error {
	if e.terminated {
		return ErrEmployeeTerminated
	}
	e.terminated = true
	e.updatedAt = time.Now().UTC()
	e.Raise(event.NewEmployeeTerminated(e.id, reason))
	return nil
}
