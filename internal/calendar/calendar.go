// Package calendar holds the whole-day date arithmetic shared by the scheduling and
// analytics code. Every date it returns is midnight UTC of the input's calendar date.
package calendar

import "time"

// KeyLayout is the layout of day keys, e.g. "2024-03-01".
const KeyLayout = "2006-01-02"

// Day truncates t to midnight UTC of t's own calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// DaysBetween returns b-a in (possibly fractional) days.
func DaysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}

func Key(t time.Time) string {
	return Day(t).Format(KeyLayout)
}

func Parse(key string) (time.Time, error) {
	return time.ParseInLocation(KeyLayout, key, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}
