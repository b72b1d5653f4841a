package leave

import "errors"

var (
	ErrLeaveRequestNotFound   = errors.New("leave request not found")
	ErrInvalidTransition      = errors.New("leave request status does not allow this transition")
	ErrUnauthorizedTransition = errors.New("actor is not allowed to perform this transition")
)
