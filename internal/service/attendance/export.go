package attendance

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/export"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
)

var exportHeaders = []string{"No", "Employee", "Date", "Time In", "Time Out", "Leave Type", "Status"}

// Export implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Export(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ExportFile, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return attendance.ExportFile{}, err
	}
	if !claims.IsManager() {
		return attendance.ExportFile{}, auth.ErrManagerAccessRequired
	}

	if err := filter.Validate(); err != nil {
		return attendance.ExportFile{}, err
	}

	records, err := s.filtered(ctx, claims.CompanyID, filter)
	if err != nil {
		return attendance.ExportFile{}, err
	}

	sheet := export.Sheet{Headers: exportHeaders}
	for i, r := range records {
		sheet.Rows = append(sheet.Rows, []any{
			i + 1,
			employeeName(r),
			r.Date.Format("2006-01-02"),
			value(r.TimeIn),
			value(r.TimeOut),
			value(r.LeaveType),
			string(r.Status()),
		})
	}

	content, err := export.XLSX(sheet)
	if err != nil {
		return attendance.ExportFile{}, fmt.Errorf("failed to export attendance: %w", err)
	}

	return attendance.ExportFile{
		Filename:    fmt.Sprintf("attendance-%s.xlsx", s.now().Format("2006-01-02")),
		ContentType: export.ContentTypeXLSX,
		Content:     content,
	}, nil
}
