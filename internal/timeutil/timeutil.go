// Package timeutil provides the calendar-day and wall-clock helpers the
// reminder scheduler matches against.
package timeutil

import "time"

// DateLayout is the calendar date form used for target dates.
const DateLayout = "2006-01-02"

// ClockLayout is the time-of-day form used for notification times.
const ClockLayout = "15:04"

// DaysUntil parses target as a "YYYY-MM-DD" calendar date and returns the
// signed number of calendar days from today's date to it: 0 on the day
// itself, positive before, negative after. The second return is false when
// target does not parse, in which case the item is unschedulable.
//
// The arithmetic is calendar-exact: both dates are normalized to UTC
// midnight before subtracting, so the time of day at which the check runs
// (and DST shifts in the local zone) never move the result.
func DaysUntil(target string, today time.Time) (int, bool) {
	d, err := time.Parse(DateLayout, target)
	if err != nil {
		return 0, false
	}
	y, m, day := today.Date()
	t := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return int(d.Sub(t).Hours() / 24), true
}

// ClockTime formats t as a zero-padded "HH:MM" string. Seconds are
// dropped; matching is minute-exact.
func ClockTime(t time.Time) string {
	return t.Format(ClockLayout)
}
