package leave

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/leave"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/user"
)

var (
	owner      = user.Actor{ID: "user-1", Role: user.RoleEmployee}
	otherUser  = user.Actor{ID: "user-2", Role: user.RoleEmployee}
	manager    = user.Actor{ID: "mgr-1", Role: user.RoleManager}
	admin      = user.Actor{ID: "adm-1", Role: user.RoleAdmin}
	itSupport  = user.Actor{ID: "it-1", Role: user.RoleITSupport}
	allActors  = []user.Actor{owner, otherUser, manager, admin, itSupport}
	allStatus  = []leave.RequestStatus{leave.StatusPending, leave.StatusApproved, leave.StatusRejected, leave.StatusCancelled}
	allTargets = []leave.RequestStatus{leave.StatusPending, leave.StatusApproved, leave.StatusRejected, leave.StatusCancelled}
)

func pendingRequest() leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:     "req-1",
		UserID: owner.ID,
		Status: leave.StatusPending,
	}
}

func TestCanTransition_TerminalStatesAreFinal(t *testing.T) {
	for _, from := range []leave.RequestStatus{leave.StatusRejected, leave.StatusCancelled} {
		for _, to := range allTargets {
			assert.False(t, CanTransition(from, to), "expected %s -> %s to be illegal", from, to)
		}
	}
}

func TestCanTransition_Table(t *testing.T) {
	tests := []struct {
		from, to leave.RequestStatus
		want     bool
	}{
		{leave.StatusPending, leave.StatusApproved, true},
		{leave.StatusPending, leave.StatusRejected, true},
		{leave.StatusPending, leave.StatusCancelled, true},
		{leave.StatusPending, leave.StatusPending, true}, // edit
		{leave.StatusApproved, leave.StatusCancelled, true},
		{leave.StatusApproved, leave.StatusApproved, false},
		{leave.StatusApproved, leave.StatusRejected, false},
		{leave.StatusApproved, leave.StatusPending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestCanApprove(t *testing.T) {
	req := pendingRequest()

	assert.True(t, CanApprove(req, manager))
	assert.True(t, CanApprove(req, admin))

	// Requester cannot approve their own request, privileged or not.
	ownRequest := req
	ownRequest.UserID = manager.ID
	assert.False(t, CanApprove(ownRequest, manager))

	// Regular employees and IT support never approve.
	assert.False(t, CanApprove(req, owner))
	assert.False(t, CanApprove(req, otherUser))
	assert.False(t, CanApprove(req, itSupport))

	// Only pending requests are approvable.
	for _, status := range []leave.RequestStatus{leave.StatusApproved, leave.StatusRejected, leave.StatusCancelled} {
		r := req
		r.Status = status
		assert.False(t, CanApprove(r, manager), "status %s", status)
	}
}

func TestCanCancel(t *testing.T) {
	req := pendingRequest()

	assert.True(t, CanCancel(req, owner))
	assert.True(t, CanCancel(req, manager))
	assert.True(t, CanCancel(req, admin))
	assert.False(t, CanCancel(req, otherUser))
	assert.False(t, CanCancel(req, itSupport))

	// Approved requests can still be cancelled.
	approved := req
	approved.Status = leave.StatusApproved
	assert.True(t, CanCancel(approved, owner))
	assert.True(t, CanCancel(approved, manager))

	// Terminal requests cannot.
	for _, status := range []leave.RequestStatus{leave.StatusRejected, leave.StatusCancelled} {
		r := req
		r.Status = status
		for _, actor := range allActors {
			assert.False(t, CanCancel(r, actor), "status %s actor %s", status, actor.ID)
		}
	}
}

func TestCanEdit(t *testing.T) {
	req := pendingRequest()

	assert.True(t, CanEdit(req, owner))
	assert.False(t, CanEdit(req, manager), "editing is owner-only, privilege does not help")
	assert.False(t, CanEdit(req, admin))
	assert.False(t, CanEdit(req, otherUser))

	approved := req
	approved.Status = leave.StatusApproved
	assert.False(t, CanEdit(approved, owner))
}

func TestCanDelete(t *testing.T) {
	req := pendingRequest()

	assert.True(t, CanDelete(req, owner))
	assert.False(t, CanDelete(req, otherUser))
	assert.False(t, CanDelete(req, itSupport))

	// Privileged actors may delete from any status.
	for _, status := range allStatus {
		r := req
		r.Status = status
		assert.True(t, CanDelete(r, manager), "status %s", status)
		assert.True(t, CanDelete(r, admin), "status %s", status)
	}

	// Owners only while pending.
	approved := req
	approved.Status = leave.StatusApproved
	assert.False(t, CanDelete(approved, owner))
}

func TestValidateSubmission(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }

	t.Run("valid", func(t *testing.T) {
		errs := ValidateSubmission(day(10), day(12), "family vacation trip", now)
		assert.Empty(t, errs)
	})

	t.Run("starting today is allowed", func(t *testing.T) {
		errs := ValidateSubmission(day(1), day(1), "urgent personal matter", now)
		assert.Empty(t, errs)
	})

	t.Run("past start date", func(t *testing.T) {
		errs := ValidateSubmission(day(10).AddDate(0, -1, 0), day(12), "family vacation trip", now)
		assert.Len(t, errs, 1)
		assert.Equal(t, "start_date", errs[0].Field)
	})

	t.Run("reason too short", func(t *testing.T) {
		errs := ValidateSubmission(day(10), day(12), "short", now)
		assert.Len(t, errs, 1)
		assert.Equal(t, "reason", errs[0].Field)
	})

	t.Run("reason bounds count characters not bytes", func(t *testing.T) {
		// 200 CJK characters are 600 bytes but well under the 500-character cap.
		errs := ValidateSubmission(day(10), day(12), strings.Repeat("休", 200), now)
		assert.Empty(t, errs)

		// Five CJK characters are 15 bytes but still below the 10-character floor.
		errs = ValidateSubmission(day(10), day(12), strings.Repeat("休", 5), now)
		assert.Len(t, errs, 1)
		assert.Equal(t, "reason", errs[0].Field)

		errs = ValidateSubmission(day(10), day(12), strings.Repeat("休", 501), now)
		assert.Len(t, errs, 1)
		assert.Equal(t, "reason", errs[0].Field)
	})

	t.Run("collects every violation", func(t *testing.T) {
		// Short reason, reversed dates and a past start all at once.
		errs := ValidateSubmission(day(12).AddDate(-1, 0, 0), day(10).AddDate(-1, 0, 0), "nope", now)
		assert.GreaterOrEqual(t, len(errs), 3)
	})
}

func TestFindOverlaps(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC) }
	existing := []leave.LeaveRequest{
		{ID: "a", Status: leave.StatusApproved, StartDate: day(1), EndDate: day(5)},
		{ID: "b", Status: leave.StatusPending, StartDate: day(10), EndDate: day(12)},
		{ID: "c", Status: leave.StatusRejected, StartDate: day(1), EndDate: day(30)},
		{ID: "d", Status: leave.StatusCancelled, StartDate: day(1), EndDate: day(30)},
	}

	t.Run("intersecting approved request", func(t *testing.T) {
		got := FindOverlaps(day(4), day(6), existing, "")
		assert.Len(t, got, 1)
		assert.Equal(t, "a", got[0].ID)
	})

	t.Run("rejected and cancelled do not count", func(t *testing.T) {
		got := FindOverlaps(day(20), day(25), existing, "")
		assert.Empty(t, got)
	})

	t.Run("touching endpoints overlap", func(t *testing.T) {
		got := FindOverlaps(day(12), day(15), existing, "")
		assert.Len(t, got, 1)
		assert.Equal(t, "b", got[0].ID)
	})

	t.Run("excludes the request being edited", func(t *testing.T) {
		got := FindOverlaps(day(10), day(12), existing, "b")
		assert.Empty(t, got)
	})
}
