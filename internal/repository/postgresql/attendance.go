package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	a.id, a.company_id, a.employee_id, a.date, a.time_in, a.time_out, a.leave_type,
	a.created_at, a.updated_at, e.full_name
`

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var r attendance.Record
	err := row.Scan(
		&r.ID, &r.CompanyID, &r.EmployeeID, &r.Date, &r.TimeIn, &r.TimeOut, &r.LeaveType,
		&r.CreatedAt, &r.UpdatedAt, &r.EmployeeName,
	)
	return r, err
}

// Upsert implements attendance.AttendanceRepository.
func (a *attendanceRepository) Upsert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	// The employee must belong to the company; the INSERT ... SELECT yields no row otherwise.
	query := `
		WITH upserted AS (
			INSERT INTO attendances (id, company_id, employee_id, date, time_in, time_out, leave_type)
			SELECT $1::uuid, e.company_id, e.id, $4::date, $5::varchar, $6::varchar, $7::varchar
			FROM employees e
			WHERE e.id = $3 AND e.company_id = $2
			ON CONFLICT (employee_id, date) DO UPDATE SET
				time_in = EXCLUDED.time_in,
				time_out = EXCLUDED.time_out,
				leave_type = EXCLUDED.leave_type,
				updated_at = NOW()
			RETURNING *
		)
		SELECT ` + attendanceColumns + `
		FROM upserted a
		JOIN employees e ON e.id = a.employee_id
	`

	saved, err := scanAttendance(q.QueryRow(ctx, query,
		id.String(), record.CompanyID, record.EmployeeID, record.Date,
		record.TimeIn, record.TimeOut, record.LeaveType,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrEmployeeNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return saved, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.company_id = $2
	`

	r, err := scanAttendance(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return r, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET date = $3, time_in = $4, time_out = $5, leave_type = $6, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query, record.ID, record.CompanyID, record.Date, record.TimeIn, record.TimeOut, record.LeaveType)
	if err != nil {
		if isUniqueViolation(err, "uk_attendance_employee_date") {
			return attendance.ErrAttendanceExists
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListRange(ctx context.Context, companyID string, employeeID *string, from, to *time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"a.company_id = $1"}
	args := []any{companyID}

	if employeeID != nil {
		args = append(args, *employeeID)
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", len(args)))
	}
	if from != nil {
		args = append(args, *from)
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", len(args)))
	}

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY a.date DESC, e.full_name ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		r, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return records, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
