package session

import (
	"github.com/ogunleye/sprint/internal/models"
	"github.com/ogunleye/sprint/internal/timeutil"
)

// Accrue applies the streak rule for a sprint started today. Streaks move
// on calendar days, not elapsed hours: the day after the last study date
// extends the run, a longer gap breaks it, and repeats within one day
// leave the run untouched while still counting toward the lifetime total.
func Accrue(s *models.Streak, today string) {
	if s.LastStudyDate == "" {
		s.Current = 1
	} else {
		days, err := timeutil.DaysBetween(s.LastStudyDate, today)

		switch {
		case err != nil:
			s.Current = 1
		case days == 1:
			s.Current++
		case days > 1:
			s.Current = 1
		}
	}

	if s.Current > s.Longest {
		s.Longest = s.Current
	}

	s.LastStudyDate = today
	s.TotalSprints++
}
