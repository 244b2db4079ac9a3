package leave

import (
	"context"
)

type LeaveService interface {
	Apply(ctx context.Context, req ApplyRequest) (ApplicationResponse, error)
	Approve(ctx context.Context, id string) (ApplicationResponse, error)
	Reject(ctx context.Context, req RejectRequest) (ApplicationResponse, error)
	Cancel(ctx context.Context, id string) (ApplicationResponse, error)
	Get(ctx context.Context, id string) (ApplicationResponse, error)

	// List returns company-wide applications (manager)
	List(ctx context.Context, filter Filter) (ListResponse, error)

	// ListMine returns the caller's applications
	ListMine(ctx context.Context, filter Filter) (ListResponse, error)

	// Balances returns leave balances for employeeID, or the caller when empty
	Balances(ctx context.Context, employeeID string) (BalancesResponse, error)
}
