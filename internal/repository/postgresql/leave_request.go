package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/leave"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.user_id, lr.leave_type, lr.start_date, lr.end_date, lr.total_days,
	lr.reason, lr.status,
	lr.approved_by, lr.approved_at, lr.rejection_reason,
	lr.cancelled_by, lr.cancelled_at,
	lr.created_at, lr.updated_at,
	u.full_name
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.UserID, &lr.Type, &lr.StartDate, &lr.EndDate, &lr.TotalDays,
		&lr.Reason, &lr.Status,
		&lr.ApprovedBy, &lr.ApprovedAt, &lr.RejectionReason,
		&lr.CancelledBy, &lr.CancelledAt,
		&lr.CreatedAt, &lr.UpdatedAt,
		&lr.UserName,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	request.ID = uuid.NewString()

	query := `
		INSERT INTO leave_requests (
			id, user_id, leave_type, start_date, end_date, total_days,
			reason, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		request.ID, request.UserID, request.Type,
		request.StartDate, request.EndDate, request.TotalDays,
		request.Reason, request.Status,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to insert leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		LEFT JOIN users u ON lr.user_id = u.id
		WHERE lr.id = $1
	`

	lr, err := scanLeaveRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return lr, nil
}

// ListByUser implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		LEFT JOIN users u ON lr.user_id = u.id
		WHERE lr.user_id = $1
		ORDER BY lr.start_date DESC, lr.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests by user: %w", err)
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

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conditions = append(conditions, fmt.Sprintf("lr.user_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("lr.leave_type = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM leave_requests lr %s`, where)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM leave_requests lr
		LEFT JOIN users u ON lr.user_id = u.id
		%s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveRequestColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, lr)
	}

	return requests, total, rows.Err()
}

// Update implements leave.LeaveRequestRepository. Editable fields only, and
// only while the request is still PENDING; a concurrent transition makes
// the conditional update miss and the edit fails instead of resurrecting a
// decided request.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.LeaveRequest) error {
	query := `
		UPDATE leave_requests
		SET leave_type = $2, start_date = $3, end_date = $4, total_days = $5,
			reason = $6, updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
	`

	commandTag, err := r.db.Exec(ctx, query,
		request.ID, request.Type, request.StartDate, request.EndDate,
		request.TotalDays, request.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrInvalidTransition
	}

	return nil
}

// UpdateStatus implements leave.LeaveRequestRepository. The update is
// conditional on the expected current status, so one of two racing
// transitions for the same id loses with ErrInvalidTransition.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to leave.RequestStatus, meta leave.TransitionMetadata) (leave.LeaveRequest, error) {
	query := `
		WITH updated AS (
			UPDATE leave_requests
			SET status = $3,
				approved_by = COALESCE($4, approved_by),
				approved_at = COALESCE($5, approved_at),
				rejection_reason = COALESCE($6, rejection_reason),
				cancelled_by = COALESCE($7, cancelled_by),
				cancelled_at = COALESCE($8, cancelled_at),
				updated_at = NOW()
			WHERE id = $1 AND status = $2
			RETURNING *
		)
		SELECT lr.id, lr.user_id, lr.leave_type, lr.start_date, lr.end_date, lr.total_days,
			   lr.reason, lr.status,
			   lr.approved_by, lr.approved_at, lr.rejection_reason,
			   lr.cancelled_by, lr.cancelled_at,
			   lr.created_at, lr.updated_at,
			   u.full_name
		FROM updated lr
		LEFT JOIN users u ON lr.user_id = u.id
	`

	lr, err := scanLeaveRequest(r.db.QueryRow(ctx, query,
		id, from, to,
		meta.ApprovedBy, meta.ApprovedAt, meta.RejectionReason,
		meta.CancelledBy, meta.CancelledAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the id does not exist or its status already moved on.
			return leave.LeaveRequest{}, leave.ErrInvalidTransition
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request status: %w", err)
	}

	return lr, nil
}

// Delete implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM leave_requests
		WHERE id = $1
	`
	commandTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}
