package payroll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	companyID = "company-1"
	budiID    = "0190a5b4-0000-7000-8000-0000000000b1"
	sariID    = "0190a5b4-0000-7000-8000-0000000000b2"
)

type fakeRepo struct {
	records []payroll.PayrollRecord
}

func (f *fakeRepo) Create(ctx context.Context, r payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	for _, existing := range f.records {
		if existing.EmployeeID == r.EmployeeID && existing.PeriodMonth == r.PeriodMonth && existing.PeriodYear == r.PeriodYear {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
	}
	r.ID = fmt.Sprintf("pay-%d", len(f.records)+1)
	name := map[string]string{budiID: "Budi", sariID: "Sari"}[r.EmployeeID]
	r.EmployeeName = &name
	f.records = append(f.records, r)
	return r, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string, company string) (payroll.PayrollRecord, error) {
	for _, r := range f.records {
		if r.ID == id && r.CompanyID == company {
			return r, nil
		}
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (f *fakeRepo) MarkPaid(ctx context.Context, id string, company string, paidBy string, paidAt time.Time) error {
	for i, r := range f.records {
		if r.ID == id {
			f.records[i].Status = payroll.PayrollStatusPaid
			f.records[i].PaidAt = &paidAt
			f.records[i].PaidBy = &paidBy
			return nil
		}
	}
	return payroll.ErrPayrollRecordNotFound
}

func (f *fakeRepo) List(ctx context.Context, company string, employeeID *string, period *payroll.Period) ([]payroll.PayrollRecord, error) {
	var out []payroll.PayrollRecord
	for _, r := range f.records {
		if employeeID != nil && r.EmployeeID != *employeeID {
			continue
		}
		if period != nil && (r.PeriodMonth != period.Month || r.PeriodYear != period.Year) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func as(t *testing.T, employeeID string, role auth.Role) context.Context {
	t.Helper()
	ctx, err := jwt.NewContext(context.Background(), auth.Claims{
		UserID: "user-" + employeeID, EmployeeID: employeeID, CompanyID: companyID, Role: role,
	})
	require.NoError(t, err)
	return ctx
}

func create(t *testing.T, svc payroll.PayrollService, employeeID string, month int, base, allowance, deduction string) payroll.PayrollRecordResponse {
	t.Helper()
	resp, err := svc.Create(as(t, "manager", auth.RoleManager), payroll.CreatePayrollRequest{
		EmployeeID: employeeID, PeriodMonth: month, PeriodYear: 2024, BaseSalary: d(base),
		Allowances: []payroll.Line{{Name: "Transport", Amount: d(allowance)}},
		Deductions: []payroll.Line{{Name: "BPJS", Amount: d(deduction)}},
	})
	require.NoError(t, err)
	return resp
}

func TestCreate_CarriesSummary(t *testing.T) {
	svc := NewPayrollService(&fakeRepo{})

	resp := create(t, svc, budiID, 5, "5000000", "750000", "250000")
	assert.Equal(t, "2024-05", resp.Period)
	assert.Equal(t, "draft", resp.Status)
	assert.True(t, resp.GrossSalary.Equal(d("5750000")))
	assert.True(t, resp.NetSalary.Equal(d("5500000")))
}

func TestCreate_DuplicatePeriod(t *testing.T) {
	svc := NewPayrollService(&fakeRepo{})
	create(t, svc, budiID, 5, "5000000", "0", "0")

	_, err := svc.Create(as(t, "manager", auth.RoleManager), payroll.CreatePayrollRequest{
		EmployeeID: budiID, PeriodMonth: 5, PeriodYear: 2024, BaseSalary: d("1"),
	})
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewPayrollService(&fakeRepo{})

	_, err := svc.Create(as(t, "manager", auth.RoleManager), payroll.CreatePayrollRequest{
		EmployeeID: "nope", PeriodMonth: 13, PeriodYear: 2024, BaseSalary: d("-1"),
		Deductions: []payroll.Line{{Name: "", Amount: d("10")}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "period_month")
	assert.Contains(t, err.Error(), "deductions[0].name")

	_, err = svc.Create(as(t, budiID, auth.RoleEmployee), payroll.CreatePayrollRequest{})
	assert.ErrorIs(t, err, auth.ErrManagerAccessRequired)
}

func TestProcess(t *testing.T) {
	svc := NewPayrollService(&fakeRepo{})
	rec := create(t, svc, budiID, 5, "5000000", "0", "0")
	manager := as(t, "manager", auth.RoleManager)

	resp, err := svc.Process(manager, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", resp.Status)
	require.NotNil(t, resp.PaidAt)

	_, err = svc.Process(manager, rec.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyPaid)
}

func TestGet_HidesOtherEmployees(t *testing.T) {
	svc := NewPayrollService(&fakeRepo{})
	rec := create(t, svc, budiID, 5, "5000000", "0", "0")

	_, err := svc.Get(as(t, budiID, auth.RoleEmployee), rec.ID)
	assert.NoError(t, err)

	_, err = svc.Get(as(t, sariID, auth.RoleEmployee), rec.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestList_FiltersAndSorts(t *testing.T) {
	svc := NewPayrollService(&fakeRepo{})
	create(t, svc, budiID, 4, "5000000", "0", "0")
	create(t, svc, budiID, 5, "5000000", "0", "0")
	create(t, svc, sariID, 5, "7000000", "0", "0")
	manager := as(t, "manager", auth.RoleManager)

	period := "2024-05"
	resp, err := svc.List(manager, payroll.PayrollFilter{Period: &period, SortBy: "net_salary"})
	require.NoError(t, err)
	require.Equal(t, 2, resp.TotalCount)
	assert.Equal(t, sariID, resp.Records[0].EmployeeID)

	name := "bud"
	resp, err = svc.List(manager, payroll.PayrollFilter{EmployeeName: &name, SortOrder: "asc"})
	require.NoError(t, err)
	require.Equal(t, 2, resp.TotalCount)
	assert.Equal(t, "2024-04", resp.Records[0].Period)

	mine, err := svc.ListMine(as(t, sariID, auth.RoleEmployee), payroll.PayrollFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, mine.TotalCount)
}

func TestPeriodSummary(t *testing.T) {
	svc := NewPayrollService(&fakeRepo{})
	create(t, svc, budiID, 5, "5000000", "500000", "100000")
	paid := create(t, svc, sariID, 5, "7000000", "0", "200000")
	create(t, svc, sariID, 6, "7000000", "0", "0")
	manager := as(t, "manager", auth.RoleManager)

	_, err := svc.Process(manager, paid.ID)
	require.NoError(t, err)

	resp, err := svc.PeriodSummary(manager, "2024-05")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalRecords)
	assert.Equal(t, 1, resp.PaidCount)
	assert.Equal(t, 1, resp.DraftCount)
	assert.True(t, resp.TotalGross.Equal(d("12500000")))
	assert.True(t, resp.TotalNet.Equal(d("12200000")))

	_, err = svc.PeriodSummary(manager, "May 2024")
	assert.Error(t, err)
}
