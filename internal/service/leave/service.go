package leave

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/leave"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/user"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/pkg/dateinterval"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	user.UserRepository
	allowances leave.AllowanceTable

	// now is the validation-time clock, swapped out in tests.
	now func() time.Time
}

func NewLeaveService(
	requestRepo leave.LeaveRequestRepository,
	userRepo user.UserRepository,
	allowances leave.AllowanceTable,
) *LeaveServiceImpl {
	if allowances == nil {
		allowances = leave.DefaultAllowances()
	}
	return &LeaveServiceImpl{
		LeaveRequestRepository: requestRepo,
		UserRepository:         userRepo,
		allowances:             allowances,
		now:                    time.Now,
	}
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResult, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResult{}, err
	}

	// Formats are valid past this point; parse errors cannot occur.
	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	if errs := ValidateSubmission(startDate, endDate, req.Reason, s.now()); len(errs) > 0 {
		return leave.LeaveRequestResult{}, errs
	}

	totalDays, err := dateinterval.DayCount(startDate, endDate)
	if err != nil {
		return leave.LeaveRequestResult{}, fmt.Errorf("failed to compute day count: %w", err)
	}

	existing, err := s.LeaveRequestRepository.ListByUser(ctx, req.UserID)
	if err != nil {
		return leave.LeaveRequestResult{}, fmt.Errorf("failed to load existing leave requests: %w", err)
	}

	overlaps := FindOverlaps(startDate, endDate, existing, "")

	request := leave.LeaveRequest{
		UserID:    req.UserID,
		Type:      leave.LeaveType(req.LeaveType),
		StartDate: startDate,
		EndDate:   endDate,
		TotalDays: totalDays,
		Reason:    req.Reason,
		Status:    leave.StatusPending,
	}

	created, err := s.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResult{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.LeaveRequestResult{
		Request:  mapRequestToResponse(created),
		Overlaps: mapOverlapWarnings(overlaps),
	}, nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, requestID string, actor user.Actor) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if !CanTransition(request.Status, leave.StatusApproved) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidTransition
	}
	if !CanApprove(request, actor) {
		return leave.LeaveRequestResponse{}, leave.ErrUnauthorizedTransition
	}

	approvedAt := s.now()
	approverID := actor.ID
	updated, err := s.LeaveRequestRepository.UpdateStatus(ctx, request.ID, leave.StatusPending, leave.StatusApproved, leave.TransitionMetadata{
		ApprovedBy: &approverID,
		ApprovedAt: &approvedAt,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return mapRequestToResponse(updated), nil
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.RejectRequestRequest, actor user.Actor) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if !CanTransition(request.Status, leave.StatusRejected) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidTransition
	}
	if !CanReject(request, actor) {
		return leave.LeaveRequestResponse{}, leave.ErrUnauthorizedTransition
	}

	rejectedAt := s.now()
	approverID := actor.ID
	reason := req.Reason
	updated, err := s.LeaveRequestRepository.UpdateStatus(ctx, request.ID, leave.StatusPending, leave.StatusRejected, leave.TransitionMetadata{
		ApprovedBy:      &approverID,
		ApprovedAt:      &rejectedAt,
		RejectionReason: &reason,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return mapRequestToResponse(updated), nil
}

// Cancel implements leave.LeaveService.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, requestID string, actor user.Actor) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if !CanTransition(request.Status, leave.StatusCancelled) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidTransition
	}
	if !CanCancel(request, actor) {
		return leave.LeaveRequestResponse{}, leave.ErrUnauthorizedTransition
	}

	cancelledAt := s.now()
	cancellerID := actor.ID
	updated, err := s.LeaveRequestRepository.UpdateStatus(ctx, request.ID, request.Status, leave.StatusCancelled, leave.TransitionMetadata{
		CancelledBy: &cancellerID,
		CancelledAt: &cancelledAt,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return mapRequestToResponse(updated), nil
}

// Edit implements leave.LeaveService. Only dates, type and reason may change,
// and only while the request is still PENDING and owned by the actor.
func (s *LeaveServiceImpl) Edit(ctx context.Context, req leave.EditLeaveRequestRequest, actor user.Actor) (leave.LeaveRequestResult, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResult{}, err
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResult{}, err
	}

	if !CanTransition(request.Status, leave.StatusPending) {
		return leave.LeaveRequestResult{}, leave.ErrInvalidTransition
	}
	if !CanEdit(request, actor) {
		return leave.LeaveRequestResult{}, leave.ErrUnauthorizedTransition
	}

	if req.LeaveType != nil {
		request.Type = leave.LeaveType(*req.LeaveType)
	}
	if req.StartDate != nil {
		start, _ := time.Parse("2006-01-02", *req.StartDate)
		request.StartDate = start
	}
	if req.EndDate != nil {
		end, _ := time.Parse("2006-01-02", *req.EndDate)
		request.EndDate = end
	}
	if req.Reason != nil {
		request.Reason = *req.Reason
	}

	if errs := ValidateSubmission(request.StartDate, request.EndDate, request.Reason, s.now()); len(errs) > 0 {
		return leave.LeaveRequestResult{}, errs
	}

	totalDays, err := dateinterval.DayCount(request.StartDate, request.EndDate)
	if err != nil {
		return leave.LeaveRequestResult{}, fmt.Errorf("failed to compute day count: %w", err)
	}
	request.TotalDays = totalDays

	existing, err := s.LeaveRequestRepository.ListByUser(ctx, request.UserID)
	if err != nil {
		return leave.LeaveRequestResult{}, fmt.Errorf("failed to load existing leave requests: %w", err)
	}

	// The request being edited is excluded so it never reports itself.
	overlaps := FindOverlaps(request.StartDate, request.EndDate, existing, request.ID)

	if err := s.LeaveRequestRepository.Update(ctx, request); err != nil {
		return leave.LeaveRequestResult{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return leave.LeaveRequestResult{
		Request:  mapRequestToResponse(request),
		Overlaps: mapOverlapWarnings(overlaps),
	}, nil
}

// Delete implements leave.LeaveService.
func (s *LeaveServiceImpl) Delete(ctx context.Context, requestID string, actor user.Actor) error {
	request, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	if !CanDelete(request, actor) {
		return leave.ErrUnauthorizedTransition
	}

	if err := s.LeaveRequestRepository.Delete(ctx, request.ID); err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}

	return nil
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, requestID string, actor user.Actor) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	// Non-privileged actors cannot observe other users' requests.
	if request.UserID != actor.ID && !actor.IsPrivileged() {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}

	return mapRequestToResponse(request), nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, actor user.Actor, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	filter.UserID = actor.ID
	return s.List(ctx, filter)
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, mapRequestToResponse(request))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return leave.ListLeaveRequestResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Requests:   responses,
	}, nil
}

// GetBalance implements leave.LeaveService.
func (s *LeaveServiceImpl) GetBalance(ctx context.Context, userID string, year int) (leave.BalanceResponse, error) {
	if year == 0 {
		year = s.now().Year()
	}

	// The user id comes from the URL, not the token; an unknown user is a
	// 404, not an empty balance sheet.
	if _, err := s.UserRepository.GetByID(ctx, userID); err != nil {
		return leave.BalanceResponse{}, err
	}

	leaves, err := s.LeaveRequestRepository.ListByUser(ctx, userID)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to load leave requests: %w", err)
	}

	return leave.BalanceResponse{
		UserID:   userID,
		Year:     year,
		Balances: ComputeBalance(year, leaves, s.allowances),
	}, nil
}

func mapOverlapWarnings(overlaps []leave.LeaveRequest) []leave.OverlapWarning {
	if len(overlaps) == 0 {
		return nil
	}
	warnings := make([]leave.OverlapWarning, 0, len(overlaps))
	for _, o := range overlaps {
		warnings = append(warnings, leave.OverlapWarning{
			RequestID: o.ID,
			LeaveType: string(o.Type),
			StartDate: o.StartDate.Format("2006-01-02"),
			EndDate:   o.EndDate.Format("2006-01-02"),
			Status:    string(o.Status),
		})
	}
	return warnings
}

func mapRequestToResponse(request leave.LeaveRequest) leave.LeaveRequestResponse {
	return leave.LeaveRequestResponse{
		ID:              request.ID,
		UserID:          request.UserID,
		UserName:        request.UserName,
		LeaveType:       string(request.Type),
		StartDate:       request.StartDate.Format("2006-01-02"),
		EndDate:         request.EndDate.Format("2006-01-02"),
		TotalDays:       request.TotalDays,
		Reason:          request.Reason,
		Status:          string(request.Status),
		ApprovedBy:      request.ApprovedBy,
		ApprovedAt:      request.ApprovedAt,
		RejectionReason: request.RejectionReason,
		CreatedAt:       request.CreatedAt,
		UpdatedAt:       request.UpdatedAt,
	}
}
