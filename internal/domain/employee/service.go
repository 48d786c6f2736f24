package employee

import (
	"context"
)

// EmployeeService serves the employee directory and the caller's own profile.
type EmployeeService interface {
	// ListEmployees returns all employees ordered by name (admin view).
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// GetMe returns the authenticated employee's own profile.
	GetMe(ctx context.Context) (EmployeeResponse, error)
}
