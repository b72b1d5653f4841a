package stats

import (
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/pkg/validator"
)

// Scope narrows an aggregation to one user or one department; empty fields
// mean "all".
type Scope struct {
	UserID     string
	Department string
	Year       int
}

func (s *Scope) Validate() error {
	var errs validator.ValidationErrors

	if s.Year < 0 || (s.Year > 0 && s.Year < 1970) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a four-digit year",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveStatsResponse struct {
	TotalCount     int            `json:"total_count"`
	PendingCount   int            `json:"pending_count"`
	ApprovedCount  int            `json:"approved_count"`
	RejectedCount  int            `json:"rejected_count"`
	CancelledCount int            `json:"cancelled_count"`
	CountByType    map[string]int `json:"count_by_type"`
	ApprovalRate   float64        `json:"approval_rate"`
}

type AttendanceStatsResponse struct {
	TotalRecords   int            `json:"total_records"`
	PresentCount   int            `json:"present_count"`
	AbsentCount    int            `json:"absent_count"`
	ExpectedDays   int            `json:"expected_days"`
	CountByStatus  map[string]int `json:"count_by_status"`
	AttendanceRate float64        `json:"attendance_rate"`
}

type DashboardResponse struct {
	Leave      LeaveStatsResponse      `json:"leave"`
	Attendance AttendanceStatsResponse `json:"attendance"`
}
