package payroll

import "context"

type PayrollService interface {
	Create(ctx context.Context, req CreatePayrollRequest) (PayrollRecordResponse, error)

	// Process marks a draft payslip as paid
	Process(ctx context.Context, id string) (PayrollRecordResponse, error)

	Get(ctx context.Context, id string) (PayrollRecordResponse, error)
	List(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)
	ListMine(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)

	// PeriodSummary totals every payslip of a YYYY-MM period
	PeriodSummary(ctx context.Context, period string) (PeriodSummaryResponse, error)
}
