package services

import (
	"math"
	"time"
)

// dateOf truncates an instant to midnight in its own location.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole calendar days from one date to another, rounding
// so DST shifts cannot skew the count.
func daysBetween(from, to time.Time) int {
	return int(math.Round(dateOf(to).Sub(dateOf(from)).Hours() / 24))
}

// compactClockLabel renders an instant as e.g. "03:05PM" for prompt text.
func compactClockLabel(t time.Time) string {
	return t.Format("03:04PM")
}
