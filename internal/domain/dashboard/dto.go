package dashboard

import (
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/notice"
)

// DashboardResponse is the combined response for the dashboard cards
type DashboardResponse struct {
	Month      string                          `json:"month"` // Format: "YYYY-MM"
	Attendance []attendance.StatusCountResponse `json:"attendance"`
	TotalDays  int                             `json:"total_days"`
	Balances   []leave.BalanceResponse         `json:"balances"`
	Notices    []notice.NoticeResponse         `json:"notices"`
}
