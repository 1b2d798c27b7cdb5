package util

import "time"

// AddMonths returns the date n calendar months after t, preserving the day of
// month where valid and clamping to the last day of shorter months
// (e.g. Jan 31 + 1 month = Feb 28/29). Time of day is dropped.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()

	total := int(month) - 1 + n
	y := year + total/12
	m := time.Month(total%12 + 1)

	// Last day of the target month: day 0 of the month after it
	lastDay := time.Date(y, m+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(y, m, day, 0, 0, 0, 0, t.Location())
}
