package leave

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/paginate"
)

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.ApplicationRepository
	leave.EntitlementRepository
	attendance.AttendanceRepository
	now func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	applicationRepo leave.ApplicationRepository,
	entitlementRepo leave.EntitlementRepository,
	attendanceRepo attendance.AttendanceRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                    tx,
		ApplicationRepository: applicationRepo,
		EntitlementRepository: entitlementRepo,
		AttendanceRepository:  attendanceRepo,
		now:                   time.Now,
	}
}

// Apply implements leave.LeaveService.
func (l *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyRequest) (leave.ApplicationResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if claims.EmployeeID == "" {
		return leave.ApplicationResponse{}, auth.ErrEmployeeRequired
	}

	if err := req.Validate(); err != nil {
		return leave.ApplicationResponse{}, err
	}

	start, end := req.Dates()
	app, err := l.ApplicationRepository.Create(ctx, leave.Application{
		CompanyID:  claims.CompanyID,
		EmployeeID: claims.EmployeeID,
		LeaveType:  req.LeaveType,
		StartDate:  start,
		EndDate:    end,
		TotalDays:  leave.CountDays(start, end),
		Reason:     strings.TrimSpace(req.Reason),
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.ApplicationResponse{}, fmt.Errorf("failed to create leave application: %w", err)
	}

	slog.Info("leave applied",
		"application_id", app.ID,
		"employee_id", app.EmployeeID,
		"leave_type", app.LeaveType,
		"total_days", app.TotalDays,
	)

	return toApplicationResponse(app), nil
}

// Approve implements leave.LeaveService.
// The application and one attendance day per date of its range are written in one transaction.
func (l *LeaveServiceImpl) Approve(ctx context.Context, id string) (leave.ApplicationResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if !claims.IsManager() {
		return leave.ApplicationResponse{}, auth.ErrManagerAccessRequired
	}

	var approved leave.Application
	err = l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		app, err := l.pending(txCtx, id, claims.CompanyID)
		if err != nil {
			return err
		}

		now := l.now()
		app.Status = leave.StatusApproved
		app.ProcessedBy = &claims.UserID
		app.ProcessedAt = &now
		if err := l.ApplicationRepository.UpdateStatus(txCtx, app); err != nil {
			return err
		}

		leaveType := app.LeaveType
		for _, date := range app.Dates() {
			_, err := l.AttendanceRepository.Upsert(txCtx, attendance.Record{
				CompanyID:  app.CompanyID,
				EmployeeID: app.EmployeeID,
				Date:       date,
				LeaveType:  &leaveType,
			})
			if err != nil {
				return fmt.Errorf("failed to record leave day %s: %w", date.Format("2006-01-02"), err)
			}
		}

		approved = app
		return nil
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	slog.Info("leave approved", "application_id", approved.ID, "approved_by", claims.UserID, "days", approved.TotalDays)

	return toApplicationResponse(approved), nil
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, req leave.RejectRequest) (leave.ApplicationResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if !claims.IsManager() {
		return leave.ApplicationResponse{}, auth.ErrManagerAccessRequired
	}

	if err := req.Validate(); err != nil {
		return leave.ApplicationResponse{}, err
	}

	app, err := l.pending(ctx, req.ID, claims.CompanyID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	now := l.now()
	reason := strings.TrimSpace(req.Reason)
	app.Status = leave.StatusRejected
	app.ProcessedBy = &claims.UserID
	app.ProcessedAt = &now
	app.RejectionReason = &reason
	if err := l.ApplicationRepository.UpdateStatus(ctx, app); err != nil {
		return leave.ApplicationResponse{}, err
	}

	slog.Info("leave rejected", "application_id", app.ID, "rejected_by", claims.UserID)

	return toApplicationResponse(app), nil
}

// Cancel implements leave.LeaveService.
func (l *LeaveServiceImpl) Cancel(ctx context.Context, id string) (leave.ApplicationResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	app, err := l.pending(ctx, id, claims.CompanyID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if app.EmployeeID != claims.EmployeeID {
		return leave.ApplicationResponse{}, leave.ErrNotApplicationOwner
	}

	now := l.now()
	app.Status = leave.StatusCancelled
	app.ProcessedBy = &claims.UserID
	app.ProcessedAt = &now
	if err := l.ApplicationRepository.UpdateStatus(ctx, app); err != nil {
		return leave.ApplicationResponse{}, err
	}

	slog.Info("leave cancelled", "application_id", app.ID, "employee_id", app.EmployeeID)

	return toApplicationResponse(app), nil
}

// pending loads an application that can still be processed.
func (l *LeaveServiceImpl) pending(ctx context.Context, id string, companyID string) (leave.Application, error) {
	app, err := l.ApplicationRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return leave.Application{}, err
	}
	if app.Status != leave.StatusPending {
		return leave.Application{}, leave.ErrApplicationAlreadyProcessed
	}
	return app, nil
}

// Get implements leave.LeaveService.
func (l *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.ApplicationResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	app, err := l.ApplicationRepository.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if !claims.IsManager() && app.EmployeeID != claims.EmployeeID {
		return leave.ApplicationResponse{}, leave.ErrNotApplicationOwner
	}

	return toApplicationResponse(app), nil
}

// List implements leave.LeaveService.
func (l *LeaveServiceImpl) List(ctx context.Context, filter leave.Filter) (leave.ListResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return leave.ListResponse{}, err
	}
	if !claims.IsManager() {
		return leave.ListResponse{}, auth.ErrManagerAccessRequired
	}

	return l.list(ctx, claims.CompanyID, filter)
}

// ListMine implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMine(ctx context.Context, filter leave.Filter) (leave.ListResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return leave.ListResponse{}, err
	}
	if claims.EmployeeID == "" {
		return leave.ListResponse{}, auth.ErrEmployeeRequired
	}

	filter.EmployeeID = &claims.EmployeeID
	return l.list(ctx, claims.CompanyID, filter)
}

func (l *LeaveServiceImpl) list(ctx context.Context, companyID string, filter leave.Filter) (leave.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListResponse{}, err
	}

	apps, err := l.ApplicationRepository.List(ctx, companyID, filter.EmployeeID)
	if err != nil {
		return leave.ListResponse{}, fmt.Errorf("failed to list leave applications: %w", err)
	}

	// The date range selects applications starting inside it
	pred := paginate.All(
		paginate.Contains(employeeName, value(filter.EmployeeName)),
		paginate.Equals(func(a leave.Application) string { return a.LeaveType }, value(filter.LeaveType)),
		paginate.Equals(func(a leave.Application) string { return string(a.Status) }, value(filter.Status)),
		paginate.Within(func(a leave.Application) time.Time { return a.StartDate }, filter.From, filter.To),
	)

	sorted := paginate.Sort(paginate.Filter(apps, pred), sortBy(filter.SortBy), filter.SortOrder == "desc")
	page := paginate.Map(paginate.Apply(paginate.State{Page: filter.Page, PageSize: filter.Limit}, sorted, nil), toApplicationResponse)

	return leave.ListResponse{
		TotalCount:   page.TotalItems,
		Page:         page.Page,
		Limit:        page.PageSize,
		TotalPages:   page.TotalPages,
		HasPrev:      page.HasPrev,
		HasNext:      page.HasNext,
		Applications: page.Items,
	}, nil
}

// Balances implements leave.LeaveService.
func (l *LeaveServiceImpl) Balances(ctx context.Context, employeeID string) (leave.BalancesResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return leave.BalancesResponse{}, err
	}

	if employeeID == "" {
		employeeID = claims.EmployeeID
	}
	if employeeID == "" {
		return leave.BalancesResponse{}, auth.ErrEmployeeRequired
	}
	if employeeID != claims.EmployeeID && !claims.IsManager() {
		return leave.BalancesResponse{}, auth.ErrManagerAccessRequired
	}

	balances, err := l.compute(ctx, claims.CompanyID, employeeID)
	if err != nil {
		return leave.BalancesResponse{}, err
	}

	resp := leave.BalancesResponse{EmployeeID: employeeID, Balances: make([]leave.BalanceResponse, 0, len(balances))}
	for _, b := range balances {
		resp.Balances = append(resp.Balances, leave.BalanceResponse{
			Type:      b.Type,
			Total:     b.Total,
			Used:      b.Used,
			Remaining: b.Remaining(),
		})
	}
	return resp, nil
}

func (l *LeaveServiceImpl) compute(ctx context.Context, companyID, employeeID string) ([]leave.Balance, error) {
	entitlements, err := l.EntitlementRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave entitlements: %w", err)
	}
	if len(entitlements) == 0 {
		entitlements = leave.DefaultBalances()
	}

	apps, err := l.ApplicationRepository.List(ctx, companyID, &employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}

	return leave.ComputeBalances(apps, entitlements), nil
}

func sortBy(field string) func(a, b leave.Application) int {
	switch field {
	case "employee_name":
		return func(a, b leave.Application) int {
			return cmp.Compare(strings.ToLower(employeeName(a)), strings.ToLower(employeeName(b)))
		}
	case "leave_type":
		return func(a, b leave.Application) int { return cmp.Compare(a.LeaveType, b.LeaveType) }
	case "status":
		return func(a, b leave.Application) int { return cmp.Compare(a.Status, b.Status) }
	case "total_days":
		return func(a, b leave.Application) int { return cmp.Compare(a.TotalDays, b.TotalDays) }
	default:
		return func(a, b leave.Application) int { return a.StartDate.Compare(b.StartDate) }
	}
}

func toApplicationResponse(app leave.Application) leave.ApplicationResponse {
	resp := leave.ApplicationResponse{
		ID:              app.ID,
		EmployeeID:      app.EmployeeID,
		EmployeeName:    app.EmployeeName,
		LeaveType:       app.LeaveType,
		StartDate:       app.StartDate.Format("2006-01-02"),
		EndDate:         app.EndDate.Format("2006-01-02"),
		TotalDays:       app.TotalDays,
		Reason:          app.Reason,
		Status:          string(app.Status),
		ProcessedBy:     app.ProcessedBy,
		RejectionReason: app.RejectionReason,
		CreatedAt:       app.CreatedAt.Format(time.RFC3339),
	}
	if app.ProcessedAt != nil {
		processedAt := app.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &processedAt
	}
	return resp
}

func employeeName(a leave.Application) string {
	return value(a.EmployeeName)
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
