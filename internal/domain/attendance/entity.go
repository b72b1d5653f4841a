package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusHalfDay Status = "HALF_DAY"
	StatusLeave   Status = "LEAVE"
	StatusHoliday Status = "HOLIDAY"
	StatusWeekend Status = "WEEKEND"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave, StatusHoliday, StatusWeekend:
		return true
	}
	return false
}

// Attendance entity. At most one record exists per (UserID, Date); the first
// punch-in of the day creates it and punch-out completes it. Non-punch
// statuses (LEAVE, HOLIDAY, WEEKEND, ...) are set administratively, never
// inferred from punches.
type Attendance struct {
	ID     string
	UserID string
	Date   time.Time

	PunchIn  *time.Time
	PunchOut *time.Time

	// Derived from the punch pair when both are present, zero otherwise.
	WorkingHours   int
	WorkingMinutes int

	Status Status

	Location  *string
	Latitude  *float64
	Longitude *float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join fields (for responses)
	UserName *string
}
