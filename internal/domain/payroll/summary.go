package payroll

import "github.com/shopspring/decimal"

// Summary is the arithmetic shown on a payslip.
type Summary struct {
	TotalAllowances decimal.Decimal
	TotalDeductions decimal.Decimal
	GrossSalary     decimal.Decimal // base + allowances
	NetSalary       decimal.Decimal // gross - deductions, may be negative
}

func Summarize(base decimal.Decimal, allowances, deductions []Line) Summary {
	totalAllowances := sumLines(allowances)
	totalDeductions := sumLines(deductions)
	gross := base.Add(totalAllowances)

	return Summary{
		TotalAllowances: totalAllowances,
		TotalDeductions: totalDeductions,
		GrossSalary:     gross,
		NetSalary:       gross.Sub(totalDeductions),
	}
}

func sumLines(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}

// PeriodTotals aggregates the payslips of one period.
type PeriodTotals struct {
	Records         int
	Draft           int
	Paid            int
	TotalGross      decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNet        decimal.Decimal
}

func Totals(records []PayrollRecord) PeriodTotals {
	t := PeriodTotals{
		TotalGross:      decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNet:        decimal.Zero,
	}
	for _, r := range records {
		s := r.Summary()
		t.Records++
		if r.Status == PayrollStatusPaid {
			t.Paid++
		} else {
			t.Draft++
		}
		t.TotalGross = t.TotalGross.Add(s.GrossSalary)
		t.TotalDeductions = t.TotalDeductions.Add(s.TotalDeductions)
		t.TotalNet = t.TotalNet.Add(s.NetSalary)
	}
	return t
}
