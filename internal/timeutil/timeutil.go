// Package timeutil provides utility functions for countdown formatting and
// calendar-day arithmetic.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

const DateFormat = "2006-01-02"

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// SecsToMinsAndSecs splits a seconds value into whole minutes and seconds.
func SecsToMinsAndSecs(seconds float64) (mins, secs int) {
	total := Round(seconds)
	mins = total / 60
	secs = total % 60

	return
}

// FormatCountdown renders a duration as "MM:SS" for the timer display.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	m, s := SecsToMinsAndSecs(d.Seconds())

	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatRemaining renders a duration the way the feed shows it: "12m 30s",
// or just "45s" under a minute.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	m, s := SecsToMinsAndSecs(d.Seconds())
	if m == 0 {
		return fmt.Sprintf("%ds", s)
	}

	return fmt.Sprintf("%dm %ds", m, s)
}

// DateOnly formats a time as its calendar date.
func DateOnly(t time.Time) string {
	return t.Format(DateFormat)
}

// DaysBetween returns the number of calendar days from the date string a
// to the date string b. Elapsed hours within a day do not count: starting
// at 23:59 and again at 00:01 the next day is one day apart.
func DaysBetween(a, b string) (int, error) {
	ta, err := time.Parse(DateFormat, a)
	if err != nil {
		return 0, err
	}

	tb, err := time.Parse(DateFormat, b)
	if err != nil {
		return 0, err
	}

	return int(tb.Sub(ta).Hours() / 24), nil
}
