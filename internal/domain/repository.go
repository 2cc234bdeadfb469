package domain

//go:generate mockery --name=EmployeeRepository --output=../mocks --outpkg=mocks --with-expecter

import (
	"context"
)

// EmployeeRepository defines the interface for employee persistence.
// This interface is defined in the domain layer and implemented in the data
// layer, following the Dependency Inversion Principle.
//
// Mutating methods write through the session carried by the context when
// running inside a unit of work, and register the aggregate with the
// session so its pending events are collected before commit.
type EmployeeRepository interface {
	// Save persists an employee, inserting or updating as needed.
	Save(ctx context.Context, e *Employee) error

	// FindByID retrieves an employee by ID. Returns nil if not found.
	FindByID(ctx context.Context, id string) (*Employee, error)

	// FindAll retrieves employees with pagination, newest hires first.
	// Returns the page of employees and the total count.
	FindAll(ctx context.Context, page, pageSize int) ([]*Employee, int, error)

	// Delete removes an employee. The aggregate is passed, not just its
	// ID, so the session can track the deletion and collect any events
	// the aggregate still holds.
	Delete(ctx context.Context, e *Employee) error

	// Exists checks whether an employee with the given ID exists.
	Exists(ctx context.Context, id string) (bool, error)
}
