package leave

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
)

type ApplyRequest struct {
	EmployeeID string `json:"-"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD
	Reason     string `json:"reason"`

	start time.Time
	end   time.Time
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if !IsKnownType(r.LeaveType) {
		errs.Add("leave_type", "leave_type must be one of: Casual leave, Sick leave, Annual Leave")
	}

	var startOK, endOK bool
	if r.start, startOK = validator.IsValidDate(r.StartDate); !startOK {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	if r.end, endOK = validator.IsValidDate(r.EndDate); !endOK {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	} else if startOK && r.end.Before(r.start) {
		errs.Add("end_date", "end_date must not be before start_date")
	} else if startOK && CountDays(r.start, r.end) > MaxLeaveDays {
		errs.Add("end_date", fmt.Sprintf("leave must not span more than %d days", MaxLeaveDays))
	}

	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}
	if len(r.Reason) > 1000 {
		errs.Add("reason", "reason must not exceed 1000 characters")
	}

	return errs.Err()
}

// Dates returns the parsed range; valid only after Validate succeeded.
func (r *ApplyRequest) Dates() (time.Time, time.Time) {
	return r.start, r.end
}

type RejectRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r *RejectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "rejection reason is required")
	}

	return errs.Err()
}

type Filter struct {
	EmployeeID   *string `json:"employee_id,omitempty"`
	EmployeeName *string `json:"employee_name,omitempty"`
	LeaveType    *string `json:"leave_type,omitempty"`
	Status       *string `json:"status,omitempty"`
	StartDate    *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // start_date, employee_name, leave_type, status, total_days
	SortOrder string `json:"sort_order"` // asc, desc

	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

var sortFields = []string{"start_date", "employee_name", "leave_type", "status", "total_days"}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	validator.Paging(&errs, &f.Page, &f.Limit)

	if f.Status != nil && !validator.IsInSlice(*f.Status, Statuses) {
		errs.Add("status", "status must be one of: Pending, Approved, Rejected, Cancelled")
	}
	if f.LeaveType != nil && !IsKnownType(*f.LeaveType) {
		errs.Add("leave_type", "leave_type must be one of: Casual leave, Sick leave, Annual Leave")
	}

	f.From, f.To = validator.DateRange(&errs, f.StartDate, f.EndDate)
	validator.Sorting(&errs, &f.SortBy, sortFields, "start_date", &f.SortOrder)

	return errs.Err()
}

type ApplicationResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	LeaveType       string  `json:"leave_type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       float64 `json:"total_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	ProcessedBy     *string `json:"processed_by,omitempty"`
	ProcessedAt     *string `json:"processed_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type ListResponse struct {
	TotalCount   int                   `json:"total_count"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"total_pages"`
	HasPrev      bool                  `json:"has_prev"`
	HasNext      bool                  `json:"has_next"`
	Applications []ApplicationResponse `json:"applications"`
}

type BalanceResponse struct {
	Type      string  `json:"type"`
	Total     float64 `json:"total"`
	Used      float64 `json:"used"`
	Remaining float64 `json:"remaining"`
}

type BalancesResponse struct {
	EmployeeID string            `json:"employee_id"`
	Balances   []BalanceResponse `json:"balances"`
}
