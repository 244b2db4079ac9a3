package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/notice"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	attendanceService attendance.AttendanceService
	leaveService      leave.LeaveService
	noticeService     notice.NoticeService
	now               func() time.Time
}

func NewDashboardService(
	attendanceService attendance.AttendanceService,
	leaveService leave.LeaveService,
	noticeService notice.NoticeService,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		attendanceService: attendanceService,
		leaveService:      leaveService,
		noticeService:     noticeService,
		now:               time.Now,
	}
}

// monthRange returns the first and last day of t's month
func monthRange(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// GetDashboard returns the cards in parallel goroutines, one per source
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if claims.EmployeeID == "" {
		return nil, auth.ErrEmployeeRequired
	}

	now := s.now()
	first, last := monthRange(now)

	var (
		summary  attendance.SummaryResponse
		balances leave.BalancesResponse
		notices  notice.ListNoticeResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Current-month attendance tally of the caller
	g.Go(func() error {
		var err error
		summary, err = s.attendanceService.Summary(gCtx, attendance.SummaryRequest{
			EmployeeID: &claims.EmployeeID,
			StartDate:  first.Format("2006-01-02"),
			EndDate:    last.Format("2006-01-02"),
		})
		return err
	})

	// 2. Leave balances
	g.Go(func() error {
		var err error
		balances, err = s.leaveService.Balances(gCtx, claims.EmployeeID)
		return err
	})

	// 3. Latest notices
	g.Go(func() error {
		var err error
		notices, err = s.noticeService.List(gCtx, notice.NoticeFilter{Page: 1, Limit: dashboard.LatestNotices})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard.DashboardResponse{
		Month:      now.Format("2006-01"),
		Attendance: summary.Statuses,
		TotalDays:  summary.TotalDays,
		Balances:   balances.Balances,
		Notices:    notices.Notices,
	}, nil
}
