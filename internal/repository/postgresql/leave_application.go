package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveApplicationRepository struct {
	db *database.DB
}

const leaveApplicationColumns = `
	la.id, la.company_id, la.employee_id, la.leave_type, la.start_date, la.end_date,
	la.total_days, la.reason, la.status, la.processed_by, la.processed_at, la.rejection_reason,
	la.created_at, la.updated_at, e.full_name
`

func scanLeaveApplication(row pgx.Row) (leave.Application, error) {
	var app leave.Application
	err := row.Scan(
		&app.ID, &app.CompanyID, &app.EmployeeID, &app.LeaveType, &app.StartDate, &app.EndDate,
		&app.TotalDays, &app.Reason, &app.Status, &app.ProcessedBy, &app.ProcessedAt, &app.RejectionReason,
		&app.CreatedAt, &app.UpdatedAt, &app.EmployeeName,
	)
	return app, err
}

// Create implements leave.ApplicationRepository.
func (r *leaveApplicationRepository) Create(ctx context.Context, app leave.Application) (leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.Application{}, fmt.Errorf("failed to generate leave application id: %w", err)
	}
	app.ID = id.String()

	query := `
		INSERT INTO leave_applications (
			id, company_id, employee_id, leave_type, start_date, end_date, total_days, reason, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		app.ID, app.CompanyID, app.EmployeeID, app.LeaveType, app.StartDate, app.EndDate,
		app.TotalDays, app.Reason, app.Status,
	).Scan(&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return leave.Application{}, fmt.Errorf("failed to create leave application: %w", err)
	}

	return app, nil
}

// GetByID implements leave.ApplicationRepository.
func (r *leaveApplicationRepository) GetByID(ctx context.Context, id string, companyID string) (leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveApplicationColumns + `
		FROM leave_applications la
		JOIN employees e ON e.id = la.employee_id
		WHERE la.id = $1 AND la.company_id = $2
	`

	app, err := scanLeaveApplication(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Application{}, leave.ErrApplicationNotFound
		}
		return leave.Application{}, fmt.Errorf("failed to get leave application: %w", err)
	}

	return app, nil
}

// UpdateStatus implements leave.ApplicationRepository.
func (r *leaveApplicationRepository) UpdateStatus(ctx context.Context, app leave.Application) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_applications
		SET status = $3, processed_by = $4, processed_at = $5, rejection_reason = $6, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = $7
	`

	tag, err := q.Exec(ctx, query, app.ID, app.CompanyID, app.Status, app.ProcessedBy, app.ProcessedAt, app.RejectionReason, leave.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to update leave application status: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	err = q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM leave_applications WHERE id = $1 AND company_id = $2)`,
		app.ID, app.CompanyID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check leave application: %w", err)
	}
	if !exists {
		return leave.ErrApplicationNotFound
	}

	return leave.ErrApplicationAlreadyProcessed
}

// List implements leave.ApplicationRepository.
func (r *leaveApplicationRepository) List(ctx context.Context, companyID string, employeeID *string) ([]leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveApplicationColumns + `
		FROM leave_applications la
		JOIN employees e ON e.id = la.employee_id
		WHERE la.company_id = $1 AND ($2::uuid IS NULL OR la.employee_id = $2::uuid)
		ORDER BY la.start_date DESC, la.created_at DESC
	`

	rows, err := q.Query(ctx, query, companyID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}
	defer rows.Close()

	var apps []leave.Application
	for rows.Next() {
		app, err := scanLeaveApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave applications: %w", err)
	}

	return apps, nil
}

func NewLeaveApplicationRepository(db *database.DB) leave.ApplicationRepository {
	return &leaveApplicationRepository{db: db}
}
