package leave

import (
	"context"
	"time"
)

// TransitionMetadata carries the actor stamp recorded on a status change.
// ApprovedBy/ApprovedAt are set on approve and reject, RejectionReason only
// on reject, CancelledBy/CancelledAt only on cancel.
type TransitionMetadata struct {
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CancelledBy     *string
	CancelledAt     *time.Time
}

// LeaveRequestRepository - interface for leave_requests storage.
//
// UpdateStatus must be conditional on the expected current status so that
// one of two racing transitions for the same id fails instead of
// double-applying; implementations return ErrInvalidTransition when no row
// matched (id, fromStatus).
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	Update(ctx context.Context, request LeaveRequest) error
	UpdateStatus(ctx context.Context, id string, from, to RequestStatus, meta TransitionMetadata) (LeaveRequest, error)
	Delete(ctx context.Context, id string) error
}
