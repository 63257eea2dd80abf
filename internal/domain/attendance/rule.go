package attendance

import (
	"math"
	"time"
)

// LateCutoff is the offset from the start of the working day after which a
// check-in derives StatusLate. Checking in at the cutoff exactly is still
// StatusPresent.
const LateCutoff = 9 * time.Hour

// DeriveOnCheckIn computes the status for a check-in at t. The comparison is
// strict: 09:00:00 is present, 09:00:01 is late.
func DeriveOnCheckIn(t time.Time, loc *time.Location) Status {
	local := t.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	if local.After(dayStart.Add(LateCutoff)) {
		return StatusLate
	}
	return StatusPresent
}

// DeriveHours returns the elapsed hours between check-in and check-out,
// rounded half-up to two decimal places. Either timestamp missing yields 0.
func DeriveHours(checkIn, checkOut *time.Time) float64 {
	if checkIn == nil || checkOut == nil {
		return 0
	}
	return RoundHours(checkOut.Sub(*checkIn).Hours())
}

// RoundHours rounds an hour total half-up to two decimal places.
func RoundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}
