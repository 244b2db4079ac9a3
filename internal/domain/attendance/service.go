package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Record stores the clock times or leave of an employee-day (manager)
	Record(ctx context.Context, req RecordRequest) (AttendanceResponse, error)

	// UpdateAttendance fixes an existing record (manager)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)
	DeleteAttendance(ctx context.Context, id string) error

	// ListAttendance retrieves company-wide records with filters (manager)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetMyAttendance retrieves records for the authenticated employee
	GetMyAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// Summary counts records per status
	Summary(ctx context.Context, req SummaryRequest) (SummaryResponse, error)

	// Export renders the filtered list as a spreadsheet (manager)
	Export(ctx context.Context, filter AttendanceFilter) (ExportFile, error)
}
