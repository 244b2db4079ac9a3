package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAttendanceExists   = errors.New("attendance already recorded for this employee and date")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")
	ErrEmployeeNotFound   = errors.New("employee not found in this company")
)
