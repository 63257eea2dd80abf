package employee

import "context"

// Directory reads the employee roster for aggregation and filtering. The
// attendance core never mutates it.
type Directory interface {
	// GetByID retrieves one employee by internal identifier.
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByCode retrieves one employee by the human-facing employee code.
	GetByCode(ctx context.Context, code string) (Employee, error)

	// ListByRole returns all employees holding the given role.
	ListByRole(ctx context.Context, role Role) ([]Employee, error)

	// CountByRole counts employees holding the given role.
	CountByRole(ctx context.Context, role Role) (int, error)
}
