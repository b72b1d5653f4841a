package attendance

import "errors"

// Attendance domain errors
var (
	// Punch sequencing errors
	ErrAlreadyPunchedIn  = errors.New("you have already punched in today")
	ErrAlreadyPunchedOut = errors.New("you have already punched out today")
	ErrNoPunchIn         = errors.New("you have not punched in yet")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
