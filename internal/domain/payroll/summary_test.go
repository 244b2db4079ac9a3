package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSummarize(t *testing.T) {
	s := Summarize(d("5000000"),
		[]Line{{Name: "Transport", Amount: d("500000")}, {Name: "Meal", Amount: d("250000.50")}},
		[]Line{{Name: "BPJS", Amount: d("100000")}},
	)

	assert.True(t, s.TotalAllowances.Equal(d("750000.50")))
	assert.True(t, s.TotalDeductions.Equal(d("100000")))
	assert.True(t, s.GrossSalary.Equal(d("5750000.50")))
	assert.True(t, s.NetSalary.Equal(d("5650000.50")))
}

func TestSummarize_NoLinesAndNegativeNet(t *testing.T) {
	s := Summarize(decimal.Zero, nil, nil)
	assert.True(t, s.NetSalary.IsZero())

	s = Summarize(d("100"), nil, []Line{{Name: "Loan", Amount: d("150")}})
	assert.True(t, s.NetSalary.Equal(d("-50")))
}

func TestTotals(t *testing.T) {
	records := []PayrollRecord{
		{BaseSalary: d("1000"), Allowances: []Line{{Name: "A", Amount: d("100")}}, Status: PayrollStatusPaid},
		{BaseSalary: d("2000"), Deductions: []Line{{Name: "D", Amount: d("300")}}, Status: PayrollStatusDraft},
	}

	got := Totals(records)

	assert.Equal(t, 2, got.Records)
	assert.Equal(t, 1, got.Paid)
	assert.Equal(t, 1, got.Draft)
	assert.True(t, got.TotalGross.Equal(d("3100")))
	assert.True(t, got.TotalDeductions.Equal(d("300")))
	assert.True(t, got.TotalNet.Equal(d("2800")))
}

func TestPayrollRecord_Period(t *testing.T) {
	assert.Equal(t, "2024-03", PayrollRecord{PeriodMonth: 3, PeriodYear: 2024}.Period())
}

func TestCreatePayrollRequest_Validate(t *testing.T) {
	req := CreatePayrollRequest{
		EmployeeID:  "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		PeriodMonth: 3,
		PeriodYear:  2024,
		BaseSalary:  d("1000"),
		Allowances:  []Line{{Name: "Transport", Amount: d("10")}},
	}
	assert.NoError(t, req.Validate())

	bad := CreatePayrollRequest{PeriodMonth: 13, BaseSalary: d("-1"), Deductions: []Line{{Amount: d("-5")}}}
	err := bad.Validate()
	assert.Error(t, err)
	for _, field := range []string{"employee_id", "period_month", "period_year", "base_salary", "deductions[0].name", "deductions[0].amount"} {
		assert.Contains(t, err.Error(), field)
	}
}
