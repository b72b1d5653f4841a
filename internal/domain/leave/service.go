package leave

import (
	"context"

	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/user"
)

type LeaveService interface {
	// Lifecycle
	Submit(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResult, error)
	Approve(ctx context.Context, requestID string, actor user.Actor) (LeaveRequestResponse, error)
	Reject(ctx context.Context, req RejectRequestRequest, actor user.Actor) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, requestID string, actor user.Actor) (LeaveRequestResponse, error)
	Edit(ctx context.Context, req EditLeaveRequestRequest, actor user.Actor) (LeaveRequestResult, error)
	Delete(ctx context.Context, requestID string, actor user.Actor) error

	// Queries
	Get(ctx context.Context, requestID string, actor user.Actor) (LeaveRequestResponse, error)
	ListMine(ctx context.Context, actor user.Actor, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	List(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	GetBalance(ctx context.Context, userID string, year int) (BalanceResponse, error)
}
