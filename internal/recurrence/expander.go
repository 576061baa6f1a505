// Package recurrence computes the calendar occurrences a recurrence implies.
// Expansion is pure: the same inputs always reproduce the same sequence.
package recurrence

import (
	"time"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
)

// Expand returns the ordered occurrence dates of a recurrence up to upperBound.
// The first occurrence is start; successive occurrences step by one frequency
// unit. If end is non-nil the effective ceiling is min(end, upperBound). The
// result is strictly ascending and empty when start already exceeds the
// ceiling.
//
// MONTHLY and YEARLY steps re-anchor to start's original day-of-month on every
// step: a Jan 31 start lands on Feb 29 in a leap year and back on Mar 31 the
// month after, never permanently shifted by the clamp.
func Expand(start time.Time, end *time.Time, freq ledger.Frequency, upperBound time.Time) []time.Time {
	ceiling := upperBound
	if end != nil && end.Before(ceiling) {
		ceiling = *end
	}

	var out []time.Time
	for i := 0; ; i++ {
		next := occurrence(start, freq, i)
		if next.After(ceiling) {
			return out
		}
		out = append(out, next)
	}
}

// occurrence computes the i-th occurrence (zero-based) directly from start, so
// the clamp never compounds across steps.
func occurrence(start time.Time, freq ledger.Frequency, i int) time.Time {
	switch freq {
	case ledger.FrequencyWeekly:
		return start.AddDate(0, 0, 7*i)
	case ledger.FrequencyMonthly:
		return addMonthsClamped(start, i)
	case ledger.FrequencyYearly:
		return addYearsClamped(start, i)
	default: // daily
		return start.AddDate(0, 0, i)
	}
}

func addMonthsClamped(start time.Time, months int) time.Time {
	year, month, day := start.Date()
	hour, min, sec := start.Clock()

	// Normalize the target month before clamping the day, otherwise Go's
	// date normalization would spill a short month into the next one.
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, start.Location())
	if last := daysIn(target.Year(), target.Month(), start.Location()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, hour, min, sec, start.Nanosecond(), start.Location())
}

func addYearsClamped(start time.Time, years int) time.Time {
	year, month, day := start.Date()
	hour, min, sec := start.Clock()

	if last := daysIn(year+years, month, start.Location()); day > last {
		day = last
	}
	return time.Date(year+years, month, day, hour, min, sec, start.Nanosecond(), start.Location())
}

// daysIn returns the number of days in the given month. Day zero of the next
// month normalizes to the last day of this one.
func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
