package payroll

import (
	"strconv"

	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== RECORD DTOs ==========

type CreatePayrollRequest struct {
	EmployeeID  string          `json:"employee_id"`
	PeriodMonth int             `json:"period_month"`
	PeriodYear  int             `json:"period_year"`
	BaseSalary  decimal.Decimal `json:"base_salary"`
	Allowances  []Line          `json:"allowances"`
	Deductions  []Line          `json:"deductions"`
	Notes       *string         `json:"notes,omitempty"`
}

func (r *CreatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs.Add("period_month", "must be between 1 and 12")
	}
	if r.PeriodYear < 2000 || r.PeriodYear > 2100 {
		errs.Add("period_year", "must be between 2000 and 2100")
	}
	if r.BaseSalary.IsNegative() {
		errs.Add("base_salary", "must be non-negative")
	}
	validateLines(&errs, "allowances", r.Allowances)
	validateLines(&errs, "deductions", r.Deductions)

	return errs.Err()
}

func validateLines(errs *validator.ValidationErrors, field string, lines []Line) {
	for i, l := range lines {
		prefix := field + "[" + strconv.Itoa(i) + "]"
		if validator.IsEmpty(l.Name) {
			errs.Add(prefix+".name", "is required")
		}
		if l.Amount.IsNegative() {
			errs.Add(prefix+".amount", "must be non-negative")
		}
	}
}

type PayrollFilter struct {
	EmployeeID   *string `json:"employee_id,omitempty"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Status       *string `json:"status,omitempty"` // draft, paid
	Period       *string `json:"period,omitempty"` // YYYY-MM

	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	SortBy    string `json:"sort_by"`    // period, employee_name, net_salary, status
	SortOrder string `json:"sort_order"` // asc, desc

	ParsedPeriod *Period `json:"-"`
}

var sortFields = []string{"period", "employee_name", "net_salary", "status"}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors

	validator.Paging(&errs, &f.Page, &f.Limit)

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if f.Status != nil && *f.Status != string(PayrollStatusDraft) && *f.Status != string(PayrollStatusPaid) {
		errs.Add("status", "must be 'draft' or 'paid'")
	}
	if f.Period != nil {
		if t, ok := validator.IsValidPeriod(*f.Period); ok {
			f.ParsedPeriod = &Period{Month: int(t.Month()), Year: t.Year()}
		} else {
			errs.Add("period", "period must be in YYYY-MM format")
		}
	}
	validator.Sorting(&errs, &f.SortBy, sortFields, "period", &f.SortOrder)

	return errs.Err()
}

type PayrollRecordResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    *string         `json:"employee_name,omitempty"`
	Period          string          `json:"period"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	Allowances      []Line          `json:"allowances"`
	Deductions      []Line          `json:"deductions"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	Status          string          `json:"status"`
	PaidAt          *string         `json:"paid_at,omitempty"`
	PaidBy          *string         `json:"paid_by,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

type ListPayrollResponse struct {
	TotalCount int                     `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"total_pages"`
	HasPrev    bool                    `json:"has_prev"`
	HasNext    bool                    `json:"has_next"`
	Records    []PayrollRecordResponse `json:"records"`
}

type PeriodSummaryResponse struct {
	Period          string          `json:"period"`
	TotalRecords    int             `json:"total_records"`
	DraftCount      int             `json:"draft_count"`
	PaidCount       int             `json:"paid_count"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
}
