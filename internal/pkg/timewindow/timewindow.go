// Package timewindow converts dates into the boundary pairs used to scope
// attendance queries to a calendar day or month. All functions are pure and
// take the zone explicitly; a record's calendar day must never shift across
// midnight because two callers disagreed on the zone.
package timewindow

import "time"

// DayBounds returns the first and last instant of the calendar day
// containing t in loc: 00:00:00.000 through 23:59:59.999.
func DayBounds(t time.Time, loc *time.Location) (start, end time.Time) {
	local := t.In(loc)
	start = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end = start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}

// MonthBounds returns the first and last instant of the given month:
// the 1st at 00:00:00.000 through the last day at 23:59:59.999. Out-of-range
// months normalize by calendar arithmetic, so month 0 is the prior December
// and month 13 the next January.
func MonthBounds(month, year int, loc *time.Location) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end = start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// DateOnly truncates t to midnight of its calendar day in loc. Records are
// partitioned by this value.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
