package clock

import (
	"fmt"
	"strconv"
	"time"
)

// MMDDYY returns the date part of a wire timestamp. at is rendered in its own
// location; callers convert it first.
func MMDDYY(at time.Time) string {
	return fmt.Sprintf("%02d%02d%02d", int(at.Month()), at.Day(), at.Year()%100)
}

// HHMMSS returns the 24-hour time part of a wire timestamp.
func HHMMSS(at time.Time) string {
	return fmt.Sprintf("%02d%02d%02d", at.Hour(), at.Minute(), at.Second())
}

// Stamp returns MMDDYY followed by HHMMSS.
func Stamp(at time.Time) string {
	return MMDDYY(at) + HHMMSS(at)
}

// ValidateMMDDYY checks that s is a six digit MMDDYY date with a real month and day.
func ValidateMMDDYY(s string) error {
	if len(s) != 6 {
		return fmt.Errorf("date must be MMDDYY (6 digits)")
	}
	for i := 0; i < 6; i++ {
		if s[i] < '0' || s[i] > '9' {
			return fmt.Errorf("date must be digits: MMDDYY")
		}
	}
	mm, _ := strconv.Atoi(s[:2])
	dd, _ := strconv.Atoi(s[2:4])
	yy, _ := strconv.Atoi(s[4:])
	if mm < 1 || mm > 12 {
		return fmt.Errorf("month must be 01..12")
	}
	// day 0 of the following month is the last day of mm
	last := time.Date(2000+yy, time.Month(mm)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if dd < 1 || dd > last {
		return fmt.Errorf("day must be 01..%02d", last)
	}
	return nil
}
