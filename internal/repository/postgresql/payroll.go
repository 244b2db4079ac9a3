package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

const payrollColumns = `
	pr.id, pr.company_id, pr.employee_id, pr.period_month, pr.period_year, pr.base_salary,
	pr.allowances, pr.deductions, pr.status, pr.paid_at, pr.paid_by, pr.notes,
	pr.created_at, pr.updated_at, e.full_name
`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	var allowancesBytes, deductionsBytes []byte
	err := row.Scan(
		&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.PeriodMonth, &rec.PeriodYear, &rec.BaseSalary,
		&allowancesBytes, &deductionsBytes, &rec.Status, &rec.PaidAt, &rec.PaidBy, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.EmployeeName,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	if err := json.Unmarshal(allowancesBytes, &rec.Allowances); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("decode allowances: %w", err)
	}
	if err := json.Unmarshal(deductionsBytes, &rec.Deductions); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("decode deductions: %w", err)
	}
	return rec, nil
}

func marshalLines(lines []payroll.Line) ([]byte, error) {
	if lines == nil {
		lines = []payroll.Line{}
	}
	return json.Marshal(lines)
}

// Create implements payroll.PayrollRepository.
func (r *payrollRepository) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to generate payroll id: %w", err)
	}

	allowancesJSON, err := marshalLines(record.Allowances)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("encode allowances: %w", err)
	}
	deductionsJSON, err := marshalLines(record.Deductions)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("encode deductions: %w", err)
	}

	query := `
		WITH inserted AS (
			INSERT INTO payroll_records (
				id, company_id, employee_id, period_month, period_year, base_salary,
				allowances, deductions, status, notes
			)
			SELECT $1::uuid, e.company_id, e.id, $4::smallint, $5::smallint, $6::numeric,
				$7::jsonb, $8::jsonb, $9::varchar, $10::text
			FROM employees e
			WHERE e.id = $3 AND e.company_id = $2
			RETURNING *
		)
		SELECT ` + payrollColumns + `
		FROM inserted pr
		JOIN employees e ON e.id = pr.employee_id
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query,
		id.String(), record.CompanyID, record.EmployeeID, record.PeriodMonth, record.PeriodYear, record.BaseSalary,
		allowancesJSON, deductionsJSON, record.Status, record.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrEmployeeNotFound
		}
		if isUniqueViolation(err, "uk_employee_period") {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return rec, nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + `
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.id = $1 AND pr.company_id = $2
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

// MarkPaid implements payroll.PayrollRepository.
func (r *payrollRepository) MarkPaid(ctx context.Context, id string, companyID string, paidBy string, paidAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = $3, paid_by = $4, paid_at = $5, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = $6
	`

	tag, err := q.Exec(ctx, query, id, companyID, payroll.PayrollStatusPaid, paidBy, paidAt, payroll.PayrollStatusDraft)
	if err != nil {
		return fmt.Errorf("failed to mark payroll record paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordAlreadyPaid
	}

	return nil
}

// List implements payroll.PayrollRepository.
func (r *payrollRepository) List(ctx context.Context, companyID string, employeeID *string, period *payroll.Period) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"pr.company_id = $1"}
	args := []any{companyID}

	if employeeID != nil {
		args = append(args, *employeeID)
		conditions = append(conditions, fmt.Sprintf("pr.employee_id = $%d", len(args)))
	}
	if period != nil {
		args = append(args, period.Month, period.Year)
		conditions = append(conditions, fmt.Sprintf("pr.period_month = $%d AND pr.period_year = $%d", len(args)-1, len(args)))
	}

	query := `SELECT ` + payrollColumns + `
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY pr.period_year DESC, pr.period_month DESC, e.full_name ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll records: %w", err)
	}

	return records, nil
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}
