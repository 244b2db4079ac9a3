package employee

import (
	"time"
)

// Employee is the profile shown on the profile page.
type Employee struct {
	ID           string
	CompanyID    string
	EmployeeCode string
	FullName     string
	Email        string
	PhoneNumber  *string
	Address      *string
	Position     *string
	HireDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
