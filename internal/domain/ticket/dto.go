package ticket

import (
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
)

type CreateTicketRequest struct {
	EmployeeID  string `json:"-"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

func (r *CreateTicketRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Subject) {
		errs.Add("subject", "subject is required")
	} else if len(r.Subject) > 200 {
		errs.Add("subject", "subject must not exceed 200 characters")
	}
	if validator.IsEmpty(r.Description) {
		errs.Add("description", "description is required")
	}
	if r.Priority == "" {
		r.Priority = string(PriorityMedium)
	}
	if !validator.IsInSlice(r.Priority, Priorities) {
		errs.Add("priority", "priority must be one of: low, medium, high")
	}

	return errs.Err()
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, Statuses) {
		errs.Add("status", "status must be one of: open, in_progress, resolved, closed")
	}

	return errs.Err()
}

type TicketFilter struct {
	Query     *string `json:"q,omitempty"`
	Status    *string `json:"status,omitempty"`
	Priority  *string `json:"priority,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`

	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	SortBy    string `json:"sort_by"`    // created_at, priority, status
	SortOrder string `json:"sort_order"` // asc, desc

	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

var sortFields = []string{"created_at", "priority", "status"}

func (f *TicketFilter) Validate() error {
	var errs validator.ValidationErrors

	validator.Paging(&errs, &f.Page, &f.Limit)
	if f.Status != nil && !validator.IsInSlice(*f.Status, Statuses) {
		errs.Add("status", "status must be one of: open, in_progress, resolved, closed")
	}
	if f.Priority != nil && !validator.IsInSlice(*f.Priority, Priorities) {
		errs.Add("priority", "priority must be one of: low, medium, high")
	}
	f.From, f.To = validator.DateRange(&errs, f.StartDate, f.EndDate)
	validator.Sorting(&errs, &f.SortBy, sortFields, "created_at", &f.SortOrder)

	return errs.Err()
}

type TicketResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Subject      string  `json:"subject"`
	Description  string  `json:"description"`
	Priority     string  `json:"priority"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type ListTicketResponse struct {
	TotalCount int              `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	HasPrev    bool             `json:"has_prev"`
	HasNext    bool             `json:"has_next"`
	Tickets    []TicketResponse `json:"tickets"`
}
