package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)

	// Deactivate sets is_active to false. Returns ErrEmployeeNotFound for unknown ids.
	Deactivate(ctx context.Context, id string) error

	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)

	// ListActive returns the whole active roster ordered by employee code.
	ListActive(ctx context.Context) ([]Employee, error)
}
