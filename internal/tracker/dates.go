package tracker

import "time"

// DateLayout renders dates without zero padding, e.g. 2024-3-7.
const DateLayout = "2006-1-2"

// StaleAfterDays is how long a job may go untouched before the sweep deactivates it.
const StaleAfterDays = 90

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DaysBetween returns the absolute number of calendar days between a and b.
func DaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	d := int(db.Sub(da).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}

// IsStale reports whether lastModified lies more than StaleAfterDays from today.
// Unparseable dates are never stale.
func IsStale(lastModified string, today time.Time) bool {
	t, err := ParseDate(lastModified)
	if err != nil {
		return false
	}
	return DaysBetween(t, today) > StaleAfterDays
}
