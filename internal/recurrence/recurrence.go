// Package recurrence implements due-date advancement for bill reminders.
//
// Advancement is plain calendar arithmetic with day-clamping, not RFC 5545
// iteration: an RRULE with FREQ=MONTHLY;BYMONTHDAY=31 skips months that have
// no 31st, while a bill due on the 31st is due on Feb 28/29, Apr 30 and so
// on. The sweep schedule, which has no clamping concerns, uses rrule-go in
// the scheduler package.
package recurrence

import (
	"time"

	"github.com/famledger/famledger/internal/models"
)

// DateOnly truncates t to day granularity in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextDue returns the due date that follows from when a reminder with the
// given frequency is paid. For FrequencyOnce the date is returned unchanged.
// Each call recomputes from the date passed in, so repeated application
// walks occurrence by occurrence (Jan 31 -> Feb 28 -> Mar 28).
func NextDue(freq models.Frequency, from time.Time) time.Time {
	switch freq {
	case models.FrequencyMonthly:
		return addMonths(from, 1)
	case models.FrequencyYearly:
		return addYears(from, 1)
	default:
		return from
	}
}

// addMonths advances by n calendar months, clamping the day to the last
// valid day of the target month (Jan 31 + 1mo = Feb 28/29).
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if last := lastDay(first); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// addYears advances by n years keeping month and day, clamping Feb 29 to
// Feb 28 when the target year is not a leap year.
func addYears(t time.Time, n int) time.Time {
	first := time.Date(t.Year()+n, t.Month(), 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if last := lastDay(first); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// lastDay returns the number of days in the month containing t.
func lastDay(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location()).AddDate(0, 0, -1).Day()
}
