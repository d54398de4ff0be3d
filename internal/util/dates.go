package util

import "time"

// Date truncates t to its calendar day in UTC. Expense dates are always
// stored and compared at day granularity.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekRange returns the Monday-Sunday week containing today. The start
// is the most recent Monday on or before today, the end six days later,
// both inclusive.
func WeekRange(today time.Time) (time.Time, time.Time) {
	day := Date(today)

	// time.Weekday puts Sunday at 0, the week here starts on Monday.
	offset := (int(day.Weekday()) - int(time.Monday) + 7) % 7
	start := day.AddDate(0, 0, -offset)

	return start, start.AddDate(0, 0, 6)
}

// MonthRange returns the first and last calendar day of the month
// containing now. The last day is derived by stepping into the next
// month and backing off one day, so month lengths and leap years are
// handled by the time package.
func MonthRange(now time.Time) (time.Time, time.Time) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, 0).AddDate(0, 0, -1)

	return first, last
}

// LastDayOfMonth reports whether t falls on the final calendar day of
// its month.
func LastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Day() == 1
}
