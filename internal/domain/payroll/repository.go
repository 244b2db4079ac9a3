package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access methods for payroll.
// All methods include companyID parameter to prevent cross-company data access attacks.
type PayrollRepository interface {
	// Create returns ErrPayrollRecordAlreadyExists when the employee already has a record for the period
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id string, companyID string) (PayrollRecord, error)
	MarkPaid(ctx context.Context, id string, companyID string, paidBy string, paidAt time.Time) error

	// List returns records of the company, narrowed to one employee and/or period when set
	List(ctx context.Context, companyID string, employeeID *string, period *Period) ([]PayrollRecord, error)
}

type Period struct {
	Month int
	Year  int
}
