package timeutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ogunleye/sprint/internal/timeutil"
)

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "consecutive days", a: "2024-01-01", b: "2024-01-02", want: 1},
		{name: "same day", a: "2024-01-01", b: "2024-01-01", want: 0},
		{name: "four day gap", a: "2024-01-01", b: "2024-01-05", want: 4},
		{name: "across month boundary", a: "2024-01-31", b: "2024-02-01", want: 1},
		{name: "across leap day", a: "2024-02-28", b: "2024-03-01", want: 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := timeutil.DaysBetween(tc.a, tc.b)
			if err != nil {
				t.Fatal(err)
			}

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDaysBetween_InvalidDate(t *testing.T) {
	_, err := timeutil.DaysBetween("not-a-date", "2024-01-01")
	assert.Error(t, err)
}

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{in: 45 * time.Second, want: "45s"},
		{in: 12*time.Minute + 30*time.Second, want: "12m 30s"},
		{in: 0, want: "0s"},
		{in: -5 * time.Second, want: "0s"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, timeutil.FormatRemaining(tc.in))
	}
}

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "25:00", timeutil.FormatCountdown(25*time.Minute))
	assert.Equal(t, "04:05", timeutil.FormatCountdown(4*time.Minute+5*time.Second))
	assert.Equal(t, "00:00", timeutil.FormatCountdown(-time.Second))
}
