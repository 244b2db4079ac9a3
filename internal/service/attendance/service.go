package attendance

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/paginate"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	now func() time.Time
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		now:                  time.Now,
	}
}

// Record implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Record(ctx context.Context, req attendance.RecordRequest) (attendance.AttendanceResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !claims.IsManager() {
		return attendance.AttendanceResponse{}, auth.ErrManagerAccessRequired
	}

	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	record, err := s.AttendanceRepository.Upsert(ctx, attendance.Record{
		CompanyID:  claims.CompanyID,
		EmployeeID: req.EmployeeID,
		Date:       date,
		TimeIn:     nonEmpty(req.TimeIn),
		TimeOut:    nonEmpty(req.TimeOut),
		LeaveType:  nonEmpty(req.LeaveType),
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("attendance recorded",
		"attendance_id", record.ID,
		"employee_id", record.EmployeeID,
		"date", req.Date,
		"status", record.Status(),
		"recorded_by", claims.UserID,
	)

	return toAttendanceResponse(record), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !claims.IsManager() {
		return attendance.AttendanceResponse{}, auth.ErrManagerAccessRequired
	}

	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, req.ID, claims.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.Date != nil {
		record.Date, _ = time.Parse("2006-01-02", *req.Date)
	}
	if req.TimeIn != nil {
		record.TimeIn = nonEmpty(req.TimeIn)
	}
	if req.TimeOut != nil {
		record.TimeOut = nonEmpty(req.TimeOut)
	}
	if req.LeaveType != nil {
		record.LeaveType = nonEmpty(req.LeaveType)
	}

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	record.UpdatedAt = s.now()

	slog.Info("attendance updated", "attendance_id", record.ID, "status", record.Status(), "updated_by", claims.UserID)

	return toAttendanceResponse(record), nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// Employees may only see their own days
	if !claims.IsManager() && record.EmployeeID != claims.EmployeeID {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	return toAttendanceResponse(record), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return err
	}
	if !claims.IsManager() {
		return auth.ErrManagerAccessRequired
	}

	if err := s.AttendanceRepository.Delete(ctx, id, claims.CompanyID); err != nil {
		return err
	}

	slog.Info("attendance deleted", "attendance_id", id, "deleted_by", claims.UserID)
	return nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if !claims.IsManager() {
		return attendance.ListAttendanceResponse{}, auth.ErrManagerAccessRequired
	}

	return s.list(ctx, claims.CompanyID, filter)
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if claims.EmployeeID == "" {
		return attendance.ListAttendanceResponse{}, auth.ErrEmployeeRequired
	}

	filter.EmployeeID = &claims.EmployeeID
	return s.list(ctx, claims.CompanyID, filter)
}

func (s *AttendanceServiceImpl) list(ctx context.Context, companyID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, err := s.filtered(ctx, companyID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	page := paginate.Map(paginate.Apply(paginate.State{Page: filter.Page, PageSize: filter.Limit}, records, nil), toAttendanceResponse)

	return attendance.ListAttendanceResponse{
		TotalCount:  page.TotalItems,
		Page:        page.Page,
		Limit:       page.PageSize,
		TotalPages:  page.TotalPages,
		HasPrev:     page.HasPrev,
		HasNext:     page.HasNext,
		Attendances: page.Items,
	}, nil
}

// filtered loads the date range and applies the text, status and sort options
// in memory, since status is derived from the clock times.
func (s *AttendanceServiceImpl) filtered(ctx context.Context, companyID string, filter attendance.AttendanceFilter) ([]attendance.Record, error) {
	records, err := s.AttendanceRepository.ListRange(ctx, companyID, filter.EmployeeID, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	pred := paginate.All(
		paginate.Contains(employeeName, value(filter.EmployeeName)),
		paginate.Equals(func(r attendance.Record) string { return string(r.Status()) }, value(filter.Status)),
	)

	return paginate.Sort(paginate.Filter(records, pred), sortBy(filter.SortBy), filter.SortOrder == "desc"), nil
}

// Summary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Summary(ctx context.Context, req attendance.SummaryRequest) (attendance.SummaryResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	// Employees always get their own summary
	if !claims.IsManager() {
		if claims.EmployeeID == "" {
			return attendance.SummaryResponse{}, auth.ErrEmployeeRequired
		}
		req.EmployeeID = &claims.EmployeeID
	}

	if err := req.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}

	records, err := s.AttendanceRepository.ListRange(ctx, claims.CompanyID, req.EmployeeID, &req.From, &req.To)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	tally := attendance.Summarize(records)

	return attendance.SummaryResponse{
		EmployeeID: req.EmployeeID,
		StartDate:  req.From.Format("2006-01-02"),
		EndDate:    req.To.Format("2006-01-02"),
		TotalDays:  tally.Total,
		Statuses:   ToStatusCounts(tally),
	}, nil
}

// ToStatusCounts converts a tally into its response form, keeping bucket order.
func ToStatusCounts(t attendance.Tally) []attendance.StatusCountResponse {
	out := make([]attendance.StatusCountResponse, 0, len(t.Counts))
	for _, c := range t.Counts {
		out = append(out, attendance.StatusCountResponse{Status: string(c.Status), Count: c.Count})
	}
	return out
}

func sortBy(field string) func(a, b attendance.Record) int {
	switch field {
	case "employee_name":
		return func(a, b attendance.Record) int {
			return cmp.Compare(strings.ToLower(employeeName(a)), strings.ToLower(employeeName(b)))
		}
	case "time_in":
		return func(a, b attendance.Record) int {
			return cmp.Compare(clock.ParseMinutes(value(a.TimeIn)), clock.ParseMinutes(value(b.TimeIn)))
		}
	case "time_out":
		return func(a, b attendance.Record) int {
			return cmp.Compare(clock.ParseMinutes(value(a.TimeOut)), clock.ParseMinutes(value(b.TimeOut)))
		}
	case "status":
		return func(a, b attendance.Record) int {
			return cmp.Compare(string(a.Status()), string(b.Status()))
		}
	default:
		return func(a, b attendance.Record) int {
			return a.Date.Compare(b.Date)
		}
	}
}

func toAttendanceResponse(r attendance.Record) attendance.AttendanceResponse {
	c := r.Explain()

	resp := attendance.AttendanceResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: employeeName(r),
		Date:         r.Date.Format("2006-01-02"),
		TimeIn:       r.TimeIn,
		TimeOut:      r.TimeOut,
		LeaveType:    r.LeaveType,
		Status:       string(c.Status),
		StatusRule:   string(c.Rule),
		IsLateIn:     c.LateIn,
		IsEarlyOut:   c.EarlyOut,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
	if r.TimeIn != nil && r.TimeOut != nil && r.LeaveType == nil {
		duration := c.DurationMinutes
		resp.DurationMinutes = &duration
	}
	return resp
}

func employeeName(r attendance.Record) string {
	return value(r.EmployeeName)
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nonEmpty maps an empty string to nil so the column is stored as NULL.
func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
