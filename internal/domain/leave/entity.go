package leave

import (
	"time"
)

// Type is the leave category attached to an application or an attendance day.
type Type string

const (
	TypeCasual Type = "Casual leave"
	TypeSick   Type = "Sick leave"
	TypeAnnual Type = "Annual Leave"
)

// Types lists the leave categories in display order.
var Types = []Type{TypeCasual, TypeSick, TypeAnnual}

func IsKnownType(s string) bool {
	for _, t := range Types {
		if string(t) == s {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
)

var Statuses = []string{string(StatusPending), string(StatusApproved), string(StatusRejected), string(StatusCancelled)}

// Application entity
type Application struct {
	ID         string
	CompanyID  string
	EmployeeID string
	LeaveType  string

	StartDate time.Time
	EndDate   time.Time
	TotalDays float64
	Reason    string

	Status          Status
	ProcessedBy     *string
	ProcessedAt     *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined
	EmployeeName *string
}

// Dates returns every calendar day covered by the application.
func (a Application) Dates() []time.Time {
	var days []time.Time
	for d := a.StartDate; !d.After(a.EndDate); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// MaxLeaveDays is the longest span one application may cover.
const MaxLeaveDays = 366

// CountDays counts calendar days from start to end, both inclusive.
func CountDays(start, end time.Time) float64 {
	days := dayNumber(end) - dayNumber(start)
	if days < 0 {
		return 0
	}
	return float64(days + 1)
}

// dayNumber is the number of days since the Unix epoch of t's calendar date.
func dayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// Balance is the entitlement of one leave type and how much of it approved
// applications have consumed.
type Balance struct {
	Type  string
	Total float64
	Used  float64
}

// Remaining is Total minus Used. It is not clamped and goes negative when
// more leave was approved than allocated.
func (b Balance) Remaining() float64 {
	return b.Total - b.Used
}

// DefaultBalances are the entitlements used when a company has not configured its own.
func DefaultBalances() []Balance {
	return []Balance{
		{Type: string(TypeCasual), Total: 12},
		{Type: string(TypeSick), Total: 8},
		{Type: string(TypeAnnual), Total: 14},
	}
}
