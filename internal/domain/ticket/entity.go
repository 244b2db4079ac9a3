package ticket

import "time"

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

var Statuses = []string{string(StatusOpen), string(StatusInProgress), string(StatusResolved), string(StatusClosed)}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []string{string(PriorityLow), string(PriorityMedium), string(PriorityHigh)}

// transitions lists the statuses each status may move to.
var transitions = map[Status][]Status{
	StatusOpen:       {StatusInProgress, StatusClosed},
	StatusInProgress: {StatusResolved, StatusClosed},
	StatusResolved:   {StatusClosed},
}

// CanTransition reports whether a ticket in from may move to to.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Ticket struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	Subject     string
	Description string
	Priority    Priority
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined
	EmployeeName *string
}
