package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
//
// Create must be atomic per (UserID, Date): when a record for the pair
// already exists the insert is rejected with ErrAlreadyPunchedIn rather than
// overwritten, so two racing punch-ins resolve to exactly one record.
type AttendanceRepository interface {
	Create(ctx context.Context, record Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByUserAndDate returns ErrAttendanceNotFound when no record exists
	// for the pair.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (Attendance, error)

	Update(ctx context.Context, record Attendance) error

	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	ListByUser(ctx context.Context, userID string, filter AttendanceFilter) ([]Attendance, int64, error)
}
