package payroll

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/paginate"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
)

type PayrollServiceImpl struct {
	payroll.PayrollRepository
	now func() time.Time
}

func NewPayrollService(payrollRepo payroll.PayrollRepository) payroll.PayrollService {
	return &PayrollServiceImpl{
		PayrollRepository: payrollRepo,
		now:               time.Now,
	}
}

// Create implements payroll.PayrollService.
func (s *PayrollServiceImpl) Create(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollRecordResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if !claims.IsManager() {
		return payroll.PayrollRecordResponse{}, auth.ErrManagerAccessRequired
	}

	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.PayrollRepository.Create(ctx, payroll.PayrollRecord{
		CompanyID:   claims.CompanyID,
		EmployeeID:  req.EmployeeID,
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		BaseSalary:  req.BaseSalary,
		Allowances:  req.Allowances,
		Deductions:  req.Deductions,
		Status:      payroll.PayrollStatusDraft,
		Notes:       req.Notes,
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	slog.Info("payroll record created",
		"payroll_id", record.ID,
		"employee_id", record.EmployeeID,
		"period", record.Period(),
		"net_salary", record.Summary().NetSalary.String(),
	)

	return toRecordResponse(record), nil
}

// Process implements payroll.PayrollService.
func (s *PayrollServiceImpl) Process(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if !claims.IsManager() {
		return payroll.PayrollRecordResponse{}, auth.ErrManagerAccessRequired
	}

	record, err := s.PayrollRepository.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if record.Status == payroll.PayrollStatusPaid {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordAlreadyPaid
	}

	paidAt := s.now()
	if err := s.PayrollRepository.MarkPaid(ctx, id, claims.CompanyID, claims.UserID, paidAt); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	record.Status = payroll.PayrollStatusPaid
	record.PaidAt = &paidAt
	record.PaidBy = &claims.UserID

	slog.Info("payroll record paid", "payroll_id", record.ID, "period", record.Period(), "paid_by", claims.UserID)

	return toRecordResponse(record), nil
}

// Get implements payroll.PayrollService.
func (s *PayrollServiceImpl) Get(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.PayrollRepository.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	// Payslips of other employees look the same as missing ones
	if !claims.IsManager() && record.EmployeeID != claims.EmployeeID {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordNotFound
	}

	return toRecordResponse(record), nil
}

// List implements payroll.PayrollService.
func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}
	if !claims.IsManager() {
		return payroll.ListPayrollResponse{}, auth.ErrManagerAccessRequired
	}

	return s.listFor(ctx, claims.CompanyID, nil, filter)
}

// ListMine implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListMine(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}
	if claims.EmployeeID == "" {
		return payroll.ListPayrollResponse{}, auth.ErrEmployeeRequired
	}

	return s.listFor(ctx, claims.CompanyID, &claims.EmployeeID, filter)
}

// listFor lists payslips of employeeID, or of the filter's employee when nil.
func (s *PayrollServiceImpl) listFor(ctx context.Context, companyID string, employeeID *string, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPayrollResponse{}, err
	}
	if employeeID == nil {
		employeeID = filter.EmployeeID
	}

	records, err := s.PayrollRepository.List(ctx, companyID, employeeID, filter.ParsedPeriod)
	if err != nil {
		return payroll.ListPayrollResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	pred := paginate.All(
		paginate.Contains(employeeName, value(filter.EmployeeName)),
		paginate.Equals(func(r payroll.PayrollRecord) string { return string(r.Status) }, value(filter.Status)),
	)

	sorted := paginate.Sort(paginate.Filter(records, pred), sortBy(filter.SortBy), filter.SortOrder == "desc")
	page := paginate.Map(paginate.Apply(paginate.State{Page: filter.Page, PageSize: filter.Limit}, sorted, nil), toRecordResponse)

	return payroll.ListPayrollResponse{
		TotalCount: page.TotalItems,
		Page:       page.Page,
		Limit:      page.PageSize,
		TotalPages: page.TotalPages,
		HasPrev:    page.HasPrev,
		HasNext:    page.HasNext,
		Records:    page.Items,
	}, nil
}

// PeriodSummary implements payroll.PayrollService.
func (s *PayrollServiceImpl) PeriodSummary(ctx context.Context, period string) (payroll.PeriodSummaryResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return payroll.PeriodSummaryResponse{}, err
	}
	if !claims.IsManager() {
		return payroll.PeriodSummaryResponse{}, auth.ErrManagerAccessRequired
	}

	t, ok := validator.IsValidPeriod(period)
	if !ok {
		var errs validator.ValidationErrors
		errs.Add("period", "period must be in YYYY-MM format")
		return payroll.PeriodSummaryResponse{}, errs
	}

	records, err := s.PayrollRepository.List(ctx, claims.CompanyID, nil, &payroll.Period{Month: int(t.Month()), Year: t.Year()})
	if err != nil {
		return payroll.PeriodSummaryResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	totals := payroll.Totals(records)
	return payroll.PeriodSummaryResponse{
		Period:          t.Format("2006-01"),
		TotalRecords:    totals.Records,
		DraftCount:      totals.Draft,
		PaidCount:       totals.Paid,
		TotalGross:      totals.TotalGross,
		TotalDeductions: totals.TotalDeductions,
		TotalNet:        totals.TotalNet,
	}, nil
}

func sortBy(field string) func(a, b payroll.PayrollRecord) int {
	switch field {
	case "employee_name":
		return func(a, b payroll.PayrollRecord) int {
			return cmp.Compare(strings.ToLower(employeeName(a)), strings.ToLower(employeeName(b)))
		}
	case "net_salary":
		return func(a, b payroll.PayrollRecord) int {
			return a.Summary().NetSalary.Cmp(b.Summary().NetSalary)
		}
	case "status":
		return func(a, b payroll.PayrollRecord) int { return cmp.Compare(a.Status, b.Status) }
	default:
		return func(a, b payroll.PayrollRecord) int { return cmp.Compare(a.Period(), b.Period()) }
	}
}

func toRecordResponse(r payroll.PayrollRecord) payroll.PayrollRecordResponse {
	summary := r.Summary()

	resp := payroll.PayrollRecordResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		Period:          r.Period(),
		BaseSalary:      r.BaseSalary,
		Allowances:      lines(r.Allowances),
		Deductions:      lines(r.Deductions),
		TotalAllowances: summary.TotalAllowances,
		TotalDeductions: summary.TotalDeductions,
		GrossSalary:     summary.GrossSalary,
		NetSalary:       summary.NetSalary,
		Status:          string(r.Status),
		PaidBy:          r.PaidBy,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
	if r.PaidAt != nil {
		paidAt := r.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	return resp
}

func lines(l []payroll.Line) []payroll.Line {
	if l == nil {
		return []payroll.Line{}
	}
	return l
}

func employeeName(r payroll.PayrollRecord) string {
	return value(r.EmployeeName)
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
