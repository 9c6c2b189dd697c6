// Package dates provides the calendar bucketing helpers shared by the
// reporting and inventory modules. All functions operate on zero-padded
// "YYYY-MM-DD" strings; feeding them malformed input is a precondition
// violation, not a checked error.
package dates

import (
	"fmt"
	"time"
)

// ISOLayout is the canonical calendar date layout used across the gateway.
const ISOLayout = "2006-01-02"

// ToISO formats t as a local-calendar ISO date.
func ToISO(t time.Time) string {
	return t.Format(ISOLayout)
}

// StartOfMonth returns the first day of the given month as an ISO date.
func StartOfMonth(year, month int) string {
	return fmt.Sprintf("%04d-%02d-01", year, month)
}

// EndOfMonth returns the last day of the given month as an ISO date. Day zero
// of the following month normalizes backwards, which handles every month
// length and leap years without a lookup table.
func EndOfMonth(year, month int) string {
	return ToISO(time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC))
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddDaysISO shifts an ISO date by delta days (delta may be negative). The
// input is interpreted as UTC midnight so daylight-saving transitions cannot
// skew the arithmetic.
func AddDaysISO(iso string, delta int) string {
	t, err := time.ParseInLocation(ISOLayout, iso, time.UTC)
	if err != nil {
		return iso
	}
	return ToISO(t.AddDate(0, 0, delta))
}

// AddMonths performs native calendar-month addition: overflowing days
// normalize into the following month (Jan 31 + 3 months lands on May 1).
func AddMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}

// Truncate drops the time-of-day portion, keeping t's location.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseISO parses an ISO date at UTC midnight.
func ParseISO(iso string) (time.Time, error) {
	return time.ParseInLocation(ISOLayout, iso, time.UTC)
}
