package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/attendance"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/leave"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/stats"
)

func TestAggregateLeave(t *testing.T) {
	requests := []leave.LeaveRequest{
		{Type: leave.TypeAnnual, Status: leave.StatusApproved},
		{Type: leave.TypeAnnual, Status: leave.StatusApproved},
		{Type: leave.TypeSick, Status: leave.StatusPending},
		{Type: leave.TypePersonal, Status: leave.StatusRejected},
		{Type: leave.TypeAnnual, Status: leave.StatusCancelled},
	}

	resp := AggregateLeave(requests)

	assert.Equal(t, 5, resp.TotalCount)
	assert.Equal(t, 2, resp.ApprovedCount)
	assert.Equal(t, 1, resp.PendingCount)
	assert.Equal(t, 1, resp.RejectedCount)
	assert.Equal(t, 1, resp.CancelledCount)
	assert.Equal(t, 3, resp.CountByType["ANNUAL"])
	assert.Equal(t, 1, resp.CountByType["SICK"])
	assert.InDelta(t, 40.0, resp.ApprovalRate, 0.001)
}

func TestAggregateLeave_EmptyInput(t *testing.T) {
	resp := AggregateLeave(nil)

	assert.Equal(t, 0, resp.TotalCount)
	assert.Zero(t, resp.ApprovalRate, "no requests means no rate, not a division by zero")
	assert.NotNil(t, resp.CountByType)
}

func TestAggregateAttendance(t *testing.T) {
	records := []attendance.Attendance{
		{Status: attendance.StatusPresent},
		{Status: attendance.StatusPresent},
		{Status: attendance.StatusPresent},
		{Status: attendance.StatusAbsent},
		{Status: attendance.StatusHalfDay},
		{Status: attendance.StatusLeave},
		{Status: attendance.StatusHoliday},
		{Status: attendance.StatusWeekend},
	}

	resp := AggregateAttendance(records)

	assert.Equal(t, 8, resp.TotalRecords)
	assert.Equal(t, 3, resp.PresentCount)
	assert.Equal(t, 1, resp.AbsentCount)
	assert.Equal(t, 6, resp.ExpectedDays, "holidays and weekends are not expected days")
	assert.InDelta(t, 50.0, resp.AttendanceRate, 0.001)
}

func TestAggregateAttendance_OnlyFreeDays(t *testing.T) {
	records := []attendance.Attendance{
		{Status: attendance.StatusHoliday},
		{Status: attendance.StatusWeekend},
	}

	resp := AggregateAttendance(records)

	assert.Equal(t, 2, resp.TotalRecords)
	assert.Equal(t, 0, resp.ExpectedDays)
	assert.Zero(t, resp.AttendanceRate)
}

type fakeStatsRepo struct {
	leaves  []leave.LeaveRequest
	records []attendance.Attendance
}

func (f *fakeStatsRepo) LeavesForScope(ctx context.Context, scope stats.Scope) ([]leave.LeaveRequest, error) {
	return f.leaves, nil
}

func (f *fakeStatsRepo) AttendanceForScope(ctx context.Context, scope stats.Scope) ([]attendance.Attendance, error) {
	return f.records, nil
}

func TestStatsService_GetDashboard(t *testing.T) {
	svc := NewStatsService(&fakeStatsRepo{
		leaves: []leave.LeaveRequest{
			{Type: leave.TypeAnnual, Status: leave.StatusApproved},
			{Type: leave.TypeSick, Status: leave.StatusPending},
		},
		records: []attendance.Attendance{
			{Status: attendance.StatusPresent},
			{Status: attendance.StatusAbsent},
		},
	})

	resp, err := svc.GetDashboard(context.Background(), stats.Scope{UserID: "user-1"})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Leave.TotalCount)
	assert.Equal(t, 1, resp.Leave.ApprovedCount)
	assert.Equal(t, 2, resp.Attendance.TotalRecords)
	assert.InDelta(t, 50.0, resp.Attendance.AttendanceRate, 0.001)
}

func TestStatsService_InvalidScope(t *testing.T) {
	svc := NewStatsService(&fakeStatsRepo{})

	_, err := svc.GetDashboard(context.Background(), stats.Scope{Year: 15})
	assert.Error(t, err)
}
