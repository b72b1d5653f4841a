package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/leave"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/user"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/pkg/validator"
)

// fakeLeaveRepo is an in-memory leave.LeaveRequestRepository with the same
// conditional-update contract as the real store.
type fakeLeaveRepo struct {
	requests map[string]leave.LeaveRequest
	nextID   int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: make(map[string]leave.LeaveRequest)}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.nextID++
	request.ID = fmt.Sprintf("req-%d", f.nextID)
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (f *fakeLeaveRepo) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if request.UserID == userID {
			out = append(out, request)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if filter.UserID != "" && request.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && string(request.Status) != filter.Status {
			continue
		}
		if filter.Type != "" && string(request.Type) != filter.Type {
			continue
		}
		out = append(out, request)
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRepo) Update(ctx context.Context, request leave.LeaveRequest) error {
	current, ok := f.requests[request.ID]
	if !ok || current.Status != leave.StatusPending {
		return leave.ErrInvalidTransition
	}
	request.Status = current.Status
	f.requests[request.ID] = request
	return nil
}

func (f *fakeLeaveRepo) UpdateStatus(ctx context.Context, id string, from, to leave.RequestStatus, meta leave.TransitionMetadata) (leave.LeaveRequest, error) {
	request, ok := f.requests[id]
	if !ok || request.Status != from {
		return leave.LeaveRequest{}, leave.ErrInvalidTransition
	}
	request.Status = to
	if meta.ApprovedBy != nil {
		request.ApprovedBy = meta.ApprovedBy
	}
	if meta.ApprovedAt != nil {
		request.ApprovedAt = meta.ApprovedAt
	}
	if meta.RejectionReason != nil {
		request.RejectionReason = meta.RejectionReason
	}
	if meta.CancelledBy != nil {
		request.CancelledBy = meta.CancelledBy
	}
	if meta.CancelledAt != nil {
		request.CancelledAt = meta.CancelledAt
	}
	f.requests[id] = request
	return request, nil
}

func (f *fakeLeaveRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.requests[id]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	delete(f.requests, id)
	return nil
}

// fakeUserRepo knows every user except the ids listed in unknown.
type fakeUserRepo struct {
	unknown map[string]bool
}

func (f fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	if f.unknown[id] {
		return user.User{}, user.ErrUserNotFound
	}
	return user.User{ID: id}, nil
}
func (f fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}
func (f fakeUserRepo) ListByDepartment(ctx context.Context, department string) ([]user.User, error) {
	return nil, nil
}

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestService() (*LeaveServiceImpl, *fakeLeaveRepo) {
	repo := newFakeLeaveRepo()
	svc := NewLeaveService(repo, fakeUserRepo{}, nil)
	svc.now = func() time.Time { return testNow }
	return svc, repo
}

func TestLeaveService_Submit_Success(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	resp, err := svc.Submit(ctx, leave.CreateLeaveRequestRequest{
		UserID:    "user-1",
		LeaveType: "ANNUAL",
		StartDate: "2025-03-10",
		EndDate:   "2025-03-12",
		Reason:    "family vacation trip",
	})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Request.TotalDays)
	assert.Equal(t, "PENDING", resp.Request.Status)
	assert.Empty(t, resp.Overlaps)
}

func TestLeaveService_Submit_OverlapIsAWarningNotAnError(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Submit(ctx, leave.CreateLeaveRequestRequest{
		UserID:    "user-1",
		LeaveType: "ANNUAL",
		StartDate: "2025-03-10",
		EndDate:   "2025-03-14",
		Reason:    "family vacation trip",
	})
	require.NoError(t, err)

	resp, err := svc.Submit(ctx, leave.CreateLeaveRequestRequest{
		UserID:    "user-1",
		LeaveType: "SICK",
		StartDate: "2025-03-12",
		EndDate:   "2025-03-13",
		Reason:    "medical appointment recovery",
	})

	require.NoError(t, err, "overlapping submission must still succeed")
	require.Len(t, resp.Overlaps, 1)
	assert.Equal(t, "ANNUAL", resp.Overlaps[0].LeaveType)
}

func TestLeaveService_Submit_ValidationFailures(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Submit(ctx, leave.CreateLeaveRequestRequest{
		UserID:    "user-1",
		LeaveType: "ANNUAL",
		StartDate: "2025-02-01", // before testNow
		EndDate:   "2025-02-03",
		Reason:    "family vacation trip",
	})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "start_date", errs[0].Field)
}

func submitPending(t *testing.T, svc *LeaveServiceImpl, userID string) string {
	t.Helper()
	resp, err := svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		UserID:    userID,
		LeaveType: "ANNUAL",
		StartDate: "2025-03-10",
		EndDate:   "2025-03-12",
		Reason:    "family vacation trip",
	})
	require.NoError(t, err)
	return resp.Request.ID
}

func TestLeaveService_Approve_Success(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	id := submitPending(t, svc, "user-1")

	resp, err := svc.Approve(ctx, id, manager)

	require.NoError(t, err)
	assert.Equal(t, "APPROVED", resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, manager.ID, *resp.ApprovedBy)
	assert.NotNil(t, resp.ApprovedAt)
}

func TestLeaveService_Approve_OwnRequestForbidden(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	id := submitPending(t, svc, manager.ID)

	_, err := svc.Approve(ctx, id, manager)

	assert.ErrorIs(t, err, leave.ErrUnauthorizedTransition)
}

func TestLeaveService_Approve_UnprivilegedForbidden(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	id := submitPending(t, svc, "user-1")

	for _, actor := range []user.Actor{otherUser, itSupport} {
		_, err := svc.Approve(ctx, id, actor)
		assert.ErrorIs(t, err, leave.ErrUnauthorizedTransition, "actor %s", actor.ID)
	}
}

// A terminal request fails with the transition error for everyone, including
// actors who could never act on it anyway.
func TestLeaveService_TerminalRequestsFailWithInvalidTransition(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()
	id := submitPending(t, svc, "user-1")

	_, err := svc.Reject(ctx, leave.RejectRequestRequest{RequestID: id, Reason: "headcount"}, manager)
	require.NoError(t, err)
	require.Equal(t, leave.StatusRejected, repo.requests[id].Status)

	for _, actor := range allActors {
		_, err := svc.Approve(ctx, id, actor)
		assert.ErrorIs(t, err, leave.ErrInvalidTransition, "approve by %s", actor.ID)

		_, err = svc.Cancel(ctx, id, actor)
		assert.ErrorIs(t, err, leave.ErrInvalidTransition, "cancel by %s", actor.ID)

		_, err = svc.Reject(ctx, leave.RejectRequestRequest{RequestID: id, Reason: "again"}, actor)
		assert.ErrorIs(t, err, leave.ErrInvalidTransition, "reject by %s", actor.ID)
	}
}

func TestLeaveService_Reject_RequiresReason(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	id := submitPending(t, svc, "user-1")

	_, err := svc.Reject(ctx, leave.RejectRequestRequest{RequestID: id, Reason: ""}, manager)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "reason", errs[0].Field)
}

func TestLeaveService_Cancel_ApprovedRequest(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	id := submitPending(t, svc, "user-1")

	_, err := svc.Approve(ctx, id, manager)
	require.NoError(t, err)

	resp, err := svc.Cancel(ctx, id, owner)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
}

func TestLeaveService_Edit_RecomputesTotalDays(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	id := submitPending(t, svc, "user-1")

	newEnd := "2025-03-16"
	resp, err := svc.Edit(ctx, leave.EditLeaveRequestRequest{ID: id, EndDate: &newEnd}, owner)

	require.NoError(t, err)
	assert.Equal(t, 7, resp.Request.TotalDays)
	assert.Equal(t, "PENDING", resp.Request.Status)
}

func TestLeaveService_Edit_ReportsOverlapWithOtherRequest(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	id := submitPending(t, svc, "user-1")

	_, err := svc.Submit(ctx, leave.CreateLeaveRequestRequest{
		UserID:    "user-1",
		LeaveType: "PERSONAL",
		StartDate: "2025-03-20",
		EndDate:   "2025-03-22",
		Reason:    "moving apartments this week",
	})
	require.NoError(t, err)

	// Shift the first request onto the second one's dates.
	newStart, newEnd := "2025-03-21", "2025-03-23"
	resp, err := svc.Edit(ctx, leave.EditLeaveRequestRequest{ID: id, StartDate: &newStart, EndDate: &newEnd}, owner)

	require.NoError(t, err)
	assert.Equal(t, "PENDING", resp.Request.Status)
	require.Len(t, resp.Overlaps, 1)
	assert.Equal(t, "PERSONAL", resp.Overlaps[0].LeaveType)
}

func TestLeaveService_Edit_DoesNotReportItselfAsOverlap(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	id := submitPending(t, svc, "user-1")

	// New dates still intersect the request's own old dates.
	newEnd := "2025-03-14"
	resp, err := svc.Edit(ctx, leave.EditLeaveRequestRequest{ID: id, EndDate: &newEnd}, owner)

	require.NoError(t, err)
	assert.Empty(t, resp.Overlaps)
}

func TestLeaveService_Edit_OnlyOwnerWhilePending(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	id := submitPending(t, svc, "user-1")

	newEnd := "2025-03-16"
	_, err := svc.Edit(ctx, leave.EditLeaveRequestRequest{ID: id, EndDate: &newEnd}, admin)
	assert.ErrorIs(t, err, leave.ErrUnauthorizedTransition)

	_, err = svc.Approve(ctx, id, manager)
	require.NoError(t, err)

	_, err = svc.Edit(ctx, leave.EditLeaveRequestRequest{ID: id, EndDate: &newEnd}, owner)
	assert.ErrorIs(t, err, leave.ErrInvalidTransition)
}

func TestLeaveService_Delete_Authorization(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	id := submitPending(t, svc, "user-1")
	assert.ErrorIs(t, svc.Delete(ctx, id, otherUser), leave.ErrUnauthorizedTransition)
	require.NoError(t, svc.Delete(ctx, id, owner))
	assert.NotContains(t, repo.requests, id)

	// Owner cannot delete once approved, but an admin can.
	id = submitPending(t, svc, "user-1")
	_, err := svc.Approve(ctx, id, manager)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Delete(ctx, id, owner), leave.ErrUnauthorizedTransition)
	require.NoError(t, svc.Delete(ctx, id, admin))
}

func TestLeaveService_Get_HidesOthersRequests(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	id := submitPending(t, svc, "user-1")

	_, err := svc.Get(ctx, id, otherUser)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	_, err = svc.Get(ctx, id, owner)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, id, manager)
	assert.NoError(t, err)
}

func TestLeaveService_GetBalance_DefaultsToCurrentYear(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()
	id := submitPending(t, svc, "user-1")
	_, err := svc.Approve(ctx, id, manager)
	require.NoError(t, err)
	require.Equal(t, leave.StatusApproved, repo.requests[id].Status)

	resp, err := svc.GetBalance(ctx, "user-1", 0)

	require.NoError(t, err)
	assert.Equal(t, testNow.Year(), resp.Year)
	assert.Equal(t, 3, resp.Balances[leave.TypeAnnual].Used)
	assert.Equal(t, 17, resp.Balances[leave.TypeAnnual].Remaining)
}

func TestLeaveService_GetBalance_UnknownUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLeaveRepo()
	svc := NewLeaveService(repo, fakeUserRepo{unknown: map[string]bool{"ghost": true}}, nil)
	svc.now = func() time.Time { return testNow }

	_, err := svc.GetBalance(ctx, "ghost", 2025)

	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
