package domain

import "time"

// IsTimeInRange reports whether start <= t <= end.
func IsTimeInRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// AreTimesValid reports whether the slot interval lies inside the position interval
// and is non-empty (slotStart strictly before slotEnd).
func AreTimesValid(slotStart, slotEnd, positionStart, positionEnd time.Time) bool {
	return IsTimeInRange(slotStart, positionStart, positionEnd) &&
		IsTimeInRange(slotEnd, positionStart, positionEnd) &&
		slotStart.Before(slotEnd)
}
