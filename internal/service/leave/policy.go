package leave

import (
	"time"
	"unicode/utf8"

	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/leave"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/user"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/pkg/dateinterval"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/pkg/validator"
)

// legalTransitions is the request status machine. APPROVED can still be
// cancelled; nothing leaves REJECTED or CANCELLED. PENDING -> PENDING is the
// edit transition.
var legalTransitions = map[leave.RequestStatus][]leave.RequestStatus{
	leave.StatusPending:  {leave.StatusPending, leave.StatusApproved, leave.StatusRejected, leave.StatusCancelled},
	leave.StatusApproved: {leave.StatusCancelled},
}

// CanTransition reports whether from -> to is defined by the state machine,
// independent of who is asking.
func CanTransition(from, to leave.RequestStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanEdit: only the owner, and only while the request is still reversible.
func CanEdit(request leave.LeaveRequest, actor user.Actor) bool {
	return request.Status == leave.StatusPending && actor.ID == request.UserID
}

// CanApprove: a privileged actor who is not the requester, on a pending request.
func CanApprove(request leave.LeaveRequest, actor user.Actor) bool {
	return request.Status == leave.StatusPending &&
		actor.ID != request.UserID &&
		actor.IsPrivileged()
}

// CanReject: same gate as approve.
func CanReject(request leave.LeaveRequest, actor user.Actor) bool {
	return CanApprove(request, actor)
}

// CanCancel: owner or privileged actor, before or after approval but never
// on a decided rejection or an earlier cancellation.
func CanCancel(request leave.LeaveRequest, actor user.Actor) bool {
	if request.Status != leave.StatusPending && request.Status != leave.StatusApproved {
		return false
	}
	return actor.ID == request.UserID || actor.IsPrivileged()
}

// CanDelete: owners may delete their own pending requests; privileged actors
// may delete from any status (the correction override).
func CanDelete(request leave.LeaveRequest, actor user.Actor) bool {
	if actor.IsPrivileged() {
		return true
	}
	return request.Status == leave.StatusPending && actor.ID == request.UserID
}

// ValidateSubmission applies the submission rules against the supplied "now"
// and collects every violation instead of stopping at the first, so the
// caller can show everything wrong at once.
func ValidateSubmission(start, end time.Time, reason string, now time.Time) validator.ValidationErrors {
	var errs validator.ValidationErrors

	// Bounds count characters, not bytes; multibyte reasons must not be
	// penalized for their encoding.
	if utf8.RuneCountInString(reason) < leave.MinReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must be at least 10 characters",
		})
	}
	if utf8.RuneCountInString(reason) > leave.MaxReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if start.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	}
	if end.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	}

	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if !start.IsZero() && startsInThePast(start, now) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must not be in the past",
		})
	}

	return errs
}

// startsInThePast compares calendar days: a request starting today is fine.
func startsInThePast(start, now time.Time) bool {
	if dateinterval.SameCalendarDate(start, now) {
		return false
	}
	return start.Before(now)
}

// FindOverlaps returns the active (non-rejected, non-cancelled) requests in
// existing whose day interval intersects [start, end]. A request being
// edited excludes itself via excludeID.
func FindOverlaps(start, end time.Time, existing []leave.LeaveRequest, excludeID string) []leave.LeaveRequest {
	var overlapping []leave.LeaveRequest
	for _, req := range existing {
		if req.ID != "" && req.ID == excludeID {
			continue
		}
		if req.Status == leave.StatusRejected || req.Status == leave.StatusCancelled {
			continue
		}
		if dateinterval.Overlaps(start, end, req.StartDate, req.EndDate) {
			overlapping = append(overlapping, req)
		}
	}
	return overlapping
}
