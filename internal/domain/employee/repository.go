package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// UpdateProfile persists the self-editable fields: full name, phone and address
	UpdateProfile(ctx context.Context, employee Employee) (Employee, error)
}
