package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// PunchIn records the first punch of the working day for a user
	PunchIn(ctx context.Context, req PunchInRequest) (AttendanceResponse, error)

	// PunchOut completes today's record and derives the working duration
	PunchOut(ctx context.Context, req PunchOutRequest) (AttendanceResponse, error)

	// GetMyAttendance retrieves attendance records for the authenticated user
	GetMyAttendance(ctx context.Context, userID string, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters (admin/manager)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetAttendance retrieves a single attendance record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// UpdateStatus sets the administrative day status (admin/manager),
	// creating the record when only (user_id, date) is given
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (AttendanceResponse, error)
}
