package stats

import (
	"context"

	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/attendance"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/leave"
)

// StatsRepository loads the raw record collections a scope covers; the
// aggregation itself happens in the service so it stays pure and testable.
type StatsRepository interface {
	LeavesForScope(ctx context.Context, scope Scope) ([]leave.LeaveRequest, error)
	AttendanceForScope(ctx context.Context, scope Scope) ([]attendance.Attendance, error)
}
