package attendance

import (
	"time"
)

// Standard working-day boundaries, overridable per service instance.
const (
	StandardWorkStart = "09:00:00"
	StandardWorkEnd   = "17:00:00"
)

// IsLate reports whether a punch-in happened after the standard start.
// Only the time-of-day matters; the calendar date is ignored.
func IsLate(punchIn time.Time, standard string) bool {
	return secondOfDay(punchIn) > standardSecond(standard, StandardWorkStart)
}

// IsEarlyDeparture reports whether a punch-out happened before the standard
// end. Only the time-of-day matters.
func IsEarlyDeparture(punchOut time.Time, standard string) bool {
	return secondOfDay(punchOut) < standardSecond(standard, StandardWorkEnd)
}

func secondOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

func standardSecond(standard, fallback string) int {
	parsed, err := time.Parse("15:04:05", standard)
	if err != nil {
		parsed, _ = time.Parse("15:04:05", fallback)
	}
	return secondOfDay(parsed)
}
