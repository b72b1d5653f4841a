package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/attendance"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/leave"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/stats"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/pkg/database"
)

type statsRepositoryImpl struct {
	db *database.DB
}

func NewStatsRepository(db *database.DB) stats.StatsRepository {
	return &statsRepositoryImpl{db: db}
}

func scopeConditions(scope stats.Scope, alias, dateColumn string) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if scope.UserID != "" {
		args = append(args, scope.UserID)
		conditions = append(conditions, fmt.Sprintf("%s.user_id = $%d", alias, len(args)))
	}
	if scope.Department != "" {
		args = append(args, scope.Department)
		conditions = append(conditions, fmt.Sprintf("u.department = $%d", len(args)))
	}
	if scope.Year > 0 {
		args = append(args, scope.Year)
		conditions = append(conditions, fmt.Sprintf("EXTRACT(YEAR FROM %s.%s) = $%d", alias, dateColumn, len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// LeavesForScope implements stats.StatsRepository.
func (r *statsRepositoryImpl) LeavesForScope(ctx context.Context, scope stats.Scope) ([]leave.LeaveRequest, error) {
	where, args := scopeConditions(scope, "lr", "start_date")
	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_requests lr
		LEFT JOIN users u ON lr.user_id = u.id
		%s
		ORDER BY lr.start_date DESC
	`, leaveRequestColumns, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests for scope: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}

// AttendanceForScope implements stats.StatsRepository.
func (r *statsRepositoryImpl) AttendanceForScope(ctx context.Context, scope stats.Scope) ([]attendance.Attendance, error) {
	where, args := scopeConditions(scope, "a", "date")
	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		LEFT JOIN users u ON a.user_id = u.id
		%s
		ORDER BY a.date DESC
	`, attendanceColumns, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances for scope: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}

	return records, rows.Err()
}
