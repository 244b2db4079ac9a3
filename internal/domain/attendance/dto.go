package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// RecordRequest sets the clock times of an employee-day, or marks it as leave.
type RecordRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`               // YYYY-MM-DD
	TimeIn     *string `json:"time_in,omitempty"`  // HH:MM
	TimeOut    *string `json:"time_out,omitempty"` // HH:MM
	LeaveType  *string `json:"leave_type,omitempty"`
}

func (r *RecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	validateTimes(&errs, r.TimeIn, r.TimeOut, r.LeaveType)

	return errs.Err()
}

// UpdateAttendanceRequest for managers to fix wrong attendance data.
// A nil field is left unchanged; an empty string clears it.
type UpdateAttendanceRequest struct {
	ID        string  `json:"-"`
	Date      *string `json:"date,omitempty"`
	TimeIn    *string `json:"time_in,omitempty"`
	TimeOut   *string `json:"time_out,omitempty"`
	LeaveType *string `json:"leave_type,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}
	validateTimes(&errs, r.TimeIn, r.TimeOut, r.LeaveType)

	return errs.Err()
}

func validateTimes(errs *validator.ValidationErrors, timeIn, timeOut, leaveType *string) {
	if timeIn != nil && *timeIn != "" && !validator.IsValidClock(*timeIn) {
		errs.Add("time_in", "time_in must be in HH:MM format")
	}
	if timeOut != nil && *timeOut != "" && !validator.IsValidClock(*timeOut) {
		errs.Add("time_out", "time_out must be in HH:MM format")
	}
	if leaveType != nil && *leaveType != "" && !leave.IsKnownType(*leaveType) {
		errs.Add("leave_type", "leave_type must be one of: Casual leave, Sick leave, Annual Leave")
	}
}

type AttendanceResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name"`
	Date            string  `json:"date"`
	TimeIn          *string `json:"time_in,omitempty"`
	TimeOut         *string `json:"time_out,omitempty"`
	LeaveType       *string `json:"leave_type,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Status          string  `json:"status"`
	StatusRule      string  `json:"status_rule"`
	IsLateIn        bool    `json:"is_late_in"`
	IsEarlyOut      bool    `json:"is_early_out"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type AttendanceFilter struct {
	// Search & Filter
	EmployeeID   *string `json:"employee_id,omitempty"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Status       *string `json:"status,omitempty"`
	StartDate    *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, employee_name, time_in, time_out, status
	SortOrder string `json:"sort_order"` // asc, desc

	// Parsed by Validate
	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

var sortFields = []string{"date", "employee_name", "time_in", "time_out", "status"}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	validator.Paging(&errs, &f.Page, &f.Limit)

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	// Status validation
	if f.Status != nil && !validator.IsInSlice(*f.Status, KnownStatuses()) {
		errs.Add("status", "status must be a known attendance status or leave type")
	}

	f.From, f.To = validator.DateRange(&errs, f.StartDate, f.EndDate)
	validator.Sorting(&errs, &f.SortBy, sortFields, "date", &f.SortOrder)

	return errs.Err()
}

type ListAttendanceResponse struct {
	TotalCount  int                  `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	HasPrev     bool                 `json:"has_prev"`
	HasNext     bool                 `json:"has_next"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// ========================================
// SUMMARY DTOs
// ========================================

type SummaryRequest struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`

	From time.Time `json:"-"`
	To   time.Time `json:"-"`
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	from, to := validator.DateRange(&errs, &r.StartDate, &r.EndDate)
	if from == nil && r.StartDate == "" {
		errs.Add("start_date", "start_date is required")
	}
	if to == nil && r.EndDate == "" {
		errs.Add("end_date", "end_date is required")
	}
	if from != nil {
		r.From = *from
	}
	if to != nil {
		r.To = *to
	}

	return errs.Err()
}

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type SummaryResponse struct {
	EmployeeID *string               `json:"employee_id,omitempty"`
	StartDate  string                `json:"start_date"`
	EndDate    string                `json:"end_date"`
	TotalDays  int                   `json:"total_days"`
	Statuses   []StatusCountResponse `json:"statuses"`
}

// ExportFile is a rendered spreadsheet ready to be sent as a download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
