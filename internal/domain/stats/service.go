package stats

import (
	"context"
)

// StatsService computes read-only dashboard projections. Safe to recompute
// on every read; nothing here mutates state.
type StatsService interface {
	GetLeaveStats(ctx context.Context, scope Scope) (LeaveStatsResponse, error)
	GetAttendanceStats(ctx context.Context, scope Scope) (AttendanceStatsResponse, error)
	GetDashboard(ctx context.Context, scope Scope) (DashboardResponse, error)
}
