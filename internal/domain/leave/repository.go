package leave

import (
	"context"
)

// ApplicationRepository - interface for leave_applications table
type ApplicationRepository interface {
	Create(ctx context.Context, app Application) (Application, error)
	GetByID(ctx context.Context, id string, companyID string) (Application, error)

	// UpdateStatus persists Status, ProcessedBy, ProcessedAt and RejectionReason of an
	// application that is still Pending; otherwise it returns ErrApplicationAlreadyProcessed
	UpdateStatus(ctx context.Context, app Application) error

	// List returns every application of the company, or of one employee when employeeID is set
	List(ctx context.Context, companyID string, employeeID *string) ([]Application, error)
}

// EntitlementRepository - interface for leave_entitlements table
type EntitlementRepository interface {
	// ListByCompany returns the configured entitlements, empty when none are set
	ListByCompany(ctx context.Context, companyID string) ([]Balance, error)
}
