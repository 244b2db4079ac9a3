package attendance

import (
	"time"
)

// Record is one employee-day of attendance. Status is not stored; it is
// derived from the clock times and leave type on every read.
type Record struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Date       time.Time
	TimeIn     *string // HH:MM
	TimeOut    *string // HH:MM
	LeaveType  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}

func (r Record) Status() Status {
	return r.Explain().Status
}

func (r Record) Explain() Classification {
	return Explain(deref(r.TimeIn), deref(r.TimeOut), deref(r.LeaveType))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
