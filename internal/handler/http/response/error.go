package response

import (
	"errors"
	"net/http"

	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/attendance"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/leave"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/user"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/pkg/dateinterval"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidTransition):
		Conflict(w, "Leave request status does not allow this transition")
	case errors.Is(err, leave.ErrUnauthorizedTransition):
		Forbidden(w, "You are not allowed to perform this action on this leave request")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyPunchedIn):
		Conflict(w, "You have already punched in today")
	case errors.Is(err, attendance.ErrAlreadyPunchedOut):
		Conflict(w, "You have already punched out today")
	case errors.Is(err, attendance.ErrNoPunchIn):
		Conflict(w, "You have not punched in yet")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, err.Error())

	// Date interval errors
	case errors.Is(err, dateinterval.ErrInvalidRange):
		BadRequest(w, "End date must not be before start date", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
