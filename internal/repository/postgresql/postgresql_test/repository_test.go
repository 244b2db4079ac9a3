package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/ticket"
	"github.com/cmlabs-hris/hris-portal-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestAttendanceRepository_UpsertAndList(t *testing.T) {
	db := setupDB(t)
	f := seedEmployee(t, db, "Budi Santoso")
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	first, err := repo.Upsert(ctx, attendance.Record{
		CompanyID: f.CompanyID, EmployeeID: f.EmployeeID, Date: day("2024-05-01"),
		TimeIn: strPtr("09:00"), TimeOut: strPtr("14:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", *first.EmployeeName)

	// Same employee-day replaces the clock times
	second, err := repo.Upsert(ctx, attendance.Record{
		CompanyID: f.CompanyID, EmployeeID: f.EmployeeID, Date: day("2024-05-01"),
		TimeIn: strPtr("09:00"), TimeOut: strPtr("18:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "18:00", *second.TimeOut)

	from, to := day("2024-05-01"), day("2024-05-31")
	records, err := repo.ListRange(ctx, f.CompanyID, &f.EmployeeID, &from, &to)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusHalfDay, records[0].Status())
}

func TestAttendanceRepository_UpsertUnknownEmployee(t *testing.T) {
	db := setupDB(t)
	f := seedEmployee(t, db, "Budi Santoso")
	other := seedEmployee(t, db, "Sari")
	repo := postgresql.NewAttendanceRepository(db)

	_, err := repo.Upsert(context.Background(), attendance.Record{
		CompanyID: f.CompanyID, EmployeeID: other.EmployeeID, Date: day("2024-05-01"),
	})
	assert.ErrorIs(t, err, attendance.ErrEmployeeNotFound)
}

func TestAttendanceRepository_DeleteNotFound(t *testing.T) {
	db := setupDB(t)
	f := seedEmployee(t, db, "Budi Santoso")
	repo := postgresql.NewAttendanceRepository(db)

	err := repo.Delete(context.Background(), f.EmployeeID, f.CompanyID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestLeaveApplicationRepository_CreateAndProcess(t *testing.T) {
	db := setupDB(t)
	f := seedEmployee(t, db, "Budi Santoso")
	repo := postgresql.NewLeaveApplicationRepository(db)
	ctx := context.Background()

	app, err := repo.Create(ctx, leave.Application{
		CompanyID: f.CompanyID, EmployeeID: f.EmployeeID, LeaveType: string(leave.TypeSick),
		StartDate: day("2024-05-06"), EndDate: day("2024-05-07"), TotalDays: 2,
		Reason: "flu", Status: leave.StatusPending,
	})
	require.NoError(t, err)

	now := time.Now()
	app.Status = leave.StatusApproved
	app.ProcessedBy = &f.EmployeeID
	app.ProcessedAt = &now
	require.NoError(t, repo.UpdateStatus(ctx, app))

	reason := "too late"
	app.Status = leave.StatusRejected
	app.RejectionReason = &reason
	assert.ErrorIs(t, repo.UpdateStatus(ctx, app), leave.ErrApplicationAlreadyProcessed)

	missing := app
	missing.ID = uuid.NewString()
	assert.ErrorIs(t, repo.UpdateStatus(ctx, missing), leave.ErrApplicationNotFound)

	got, err := repo.GetByID(ctx, app.ID, f.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, got.Status)
	assert.Nil(t, got.RejectionReason)
	assert.Equal(t, 2.0, got.TotalDays)

	all, err := repo.List(ctx, f.CompanyID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestWithTransaction_RollsBack(t *testing.T) {
	db := setupDB(t)
	f := seedEmployee(t, db, "Budi Santoso")
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	err := postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTx(ctx, tx)
		_, err := repo.Upsert(txCtx, attendance.Record{
			CompanyID: f.CompanyID, EmployeeID: f.EmployeeID, Date: day("2024-05-01"),
			LeaveType: strPtr(string(leave.TypeCasual)),
		})
		require.NoError(t, err)
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	records, err := repo.ListRange(ctx, f.CompanyID, nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestPayrollRepository_UniquePerPeriod(t *testing.T) {
	db := setupDB(t)
	f := seedEmployee(t, db, "Budi Santoso")
	repo := postgresql.NewPayrollRepository(db)
	ctx := context.Background()

	rec := payroll.PayrollRecord{
		CompanyID: f.CompanyID, EmployeeID: f.EmployeeID, PeriodMonth: 5, PeriodYear: 2024,
		BaseSalary: decimal.RequireFromString("5000000"),
		Allowances: []payroll.Line{{Name: "Transport", Amount: decimal.RequireFromString("500000")}},
		Status:     payroll.PayrollStatusDraft,
	}

	created, err := repo.Create(ctx, rec)
	require.NoError(t, err)
	assert.True(t, created.Summary().GrossSalary.Equal(decimal.RequireFromString("5500000")))
	assert.Empty(t, created.Deductions)

	_, err = repo.Create(ctx, rec)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)

	require.NoError(t, repo.MarkPaid(ctx, created.ID, f.CompanyID, f.EmployeeID, time.Now()))
	err = repo.MarkPaid(ctx, created.ID, f.CompanyID, f.EmployeeID, time.Now())
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyPaid)
}

func TestTicketRepository_StatusUpdate(t *testing.T) {
	db := setupDB(t)
	f := seedEmployee(t, db, "Budi Santoso")
	repo := postgresql.NewTicketRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, ticket.Ticket{
		CompanyID: f.CompanyID, EmployeeID: f.EmployeeID, Subject: "VPN", Description: "cannot connect",
		Priority: ticket.PriorityHigh, Status: ticket.StatusOpen,
	})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, created.ID, f.CompanyID, ticket.StatusOpen, ticket.StatusInProgress))

	err = repo.UpdateStatus(ctx, created.ID, f.CompanyID, ticket.StatusOpen, ticket.StatusClosed)
	assert.ErrorIs(t, err, ticket.ErrInvalidTicketTransition)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.NewString(), f.CompanyID, ticket.StatusOpen, ticket.StatusClosed), ticket.ErrTicketNotFound)

	got, err := repo.GetByID(ctx, created.ID, f.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusInProgress, got.Status)

	mine, err := repo.List(ctx, f.CompanyID, &f.EmployeeID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
