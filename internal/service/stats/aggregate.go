package stats

import (
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/attendance"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/leave"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/stats"
)

// AggregateLeave rolls a request collection up into the dashboard counts.
// Pure projection over the slice; recomputed on every read.
func AggregateLeave(requests []leave.LeaveRequest) stats.LeaveStatsResponse {
	resp := stats.LeaveStatsResponse{
		CountByType: make(map[string]int),
	}

	for _, req := range requests {
		resp.TotalCount++
		resp.CountByType[string(req.Type)]++

		switch req.Status {
		case leave.StatusPending:
			resp.PendingCount++
		case leave.StatusApproved:
			resp.ApprovedCount++
		case leave.StatusRejected:
			resp.RejectedCount++
		case leave.StatusCancelled:
			resp.CancelledCount++
		}
	}

	if resp.TotalCount > 0 {
		resp.ApprovalRate = float64(resp.ApprovedCount) / float64(resp.TotalCount) * 100
	}

	return resp
}

// AggregateAttendance rolls an attendance collection up into counts and the
// attendance rate. Expected days exclude HOLIDAY and WEEKEND records, since
// nobody is expected to punch in on those.
func AggregateAttendance(records []attendance.Attendance) stats.AttendanceStatsResponse {
	resp := stats.AttendanceStatsResponse{
		CountByStatus: make(map[string]int),
	}

	for _, record := range records {
		resp.TotalRecords++
		resp.CountByStatus[string(record.Status)]++

		switch record.Status {
		case attendance.StatusPresent:
			resp.PresentCount++
			resp.ExpectedDays++
		case attendance.StatusAbsent:
			resp.AbsentCount++
			resp.ExpectedDays++
		case attendance.StatusHalfDay, attendance.StatusLeave:
			resp.ExpectedDays++
		}
	}

	if resp.ExpectedDays > 0 {
		resp.AttendanceRate = float64(resp.PresentCount) / float64(resp.ExpectedDays) * 100
	}

	return resp
}
