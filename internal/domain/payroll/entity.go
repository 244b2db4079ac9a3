package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft PayrollStatus = "draft"
	PayrollStatusPaid  PayrollStatus = "paid"
)

// Line is one named allowance or deduction on a payslip.
type Line struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// PayrollRecord - payslip of one employee for one month
type PayrollRecord struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int
	BaseSalary  decimal.Decimal
	Allowances  []Line // stored as JSONB
	Deductions  []Line // stored as JSONB
	Status      PayrollStatus
	PaidAt      *time.Time
	PaidBy      *string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName *string
}

// Period formats the pay period as YYYY-MM.
func (r PayrollRecord) Period() string {
	return fmt.Sprintf("%04d-%02d", r.PeriodYear, r.PeriodMonth)
}

func (r PayrollRecord) Summary() Summary {
	return Summarize(r.BaseSalary, r.Allowances, r.Deductions)
}
