package dateinterval

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("end date is before start date")

// DayCount returns the inclusive number of calendar days between start and
// end, so DayCount(d, d) == 1. Time-of-day is ignored.
func DayCount(start, end time.Time) (int, error) {
	s := truncateToDay(start)
	e := truncateToDay(end)

	if e.Before(s) {
		return 0, ErrInvalidRange
	}

	return int(e.Sub(s).Hours()/24) + 1, nil
}

// Overlaps reports whether the closed day intervals [aStart, aEnd] and
// [bStart, bEnd] intersect. Touching endpoints count as an overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	as, ae := truncateToDay(aStart), truncateToDay(aEnd)
	bs, be := truncateToDay(bStart), truncateToDay(bEnd)

	return !as.After(be) && !bs.After(ae)
}

// SameCalendarDate reports year/month/day equality, ignoring time-of-day
// and normalizing both values to UTC first.
func SameCalendarDate(a, b time.Time) bool {
	au, bu := a.UTC(), b.UTC()
	return au.Year() == bu.Year() && au.Month() == bu.Month() && au.Day() == bu.Day()
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
