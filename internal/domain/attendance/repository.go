package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// All methods include companyID parameter to prevent cross-company data access attacks.
type AttendanceRepository interface {
	// Upsert creates the record or replaces the one for the same employee and date
	Upsert(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves attendance by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Record, error)

	Update(ctx context.Context, record Record) error
	Delete(ctx context.Context, id string, companyID string) error

	// ListRange retrieves records between from and to (inclusive, nil = open),
	// for one employee when employeeID is set. Filtering by status happens in
	// memory because status is derived.
	ListRange(ctx context.Context, companyID string, employeeID *string, from, to *time.Time) ([]Record, error)
}
