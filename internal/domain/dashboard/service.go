package dashboard

import "context"

// LatestNotices is the number of notices shown on the dashboard
const LatestNotices = 5

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns the caller's current-month tally, leave balances and latest notices
	GetDashboard(ctx context.Context) (*DashboardResponse, error)
}
