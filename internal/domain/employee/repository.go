package employee

import (
	"context"
)

type EmployeeRepository interface {
	// Create inserts a new employee. Returns ErrEmailExists when the email
	// is already registered.
	Create(ctx context.Context, emp Employee) (Employee, error)

	// GetByID retrieves an employee by ID. Returns ErrEmployeeNotFound when
	// no row matches.
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByEmail retrieves an employee by email. Returns ErrEmployeeNotFound
	// when no row matches.
	GetByEmail(ctx context.Context, email string) (Employee, error)

	// List returns all employees ordered by name.
	List(ctx context.Context) ([]Employee, error)
}
