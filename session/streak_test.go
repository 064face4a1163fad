package session_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/ogunleye/sprint/internal/models"
	"github.com/ogunleye/sprint/session"
)

func TestAccrue(t *testing.T) {
	base := models.Streak{
		Current:       3,
		Longest:       5,
		LastStudyDate: "2024-01-01",
		TotalSprints:  10,
	}

	cases := []struct {
		name        string
		streak      models.Streak
		today       string
		wantCurrent int
		wantLongest int
		wantTotal   int
	}{
		{
			name:        "next day extends the run",
			streak:      base,
			today:       "2024-01-02",
			wantCurrent: 4,
			wantLongest: 5,
			wantTotal:   11,
		},
		{
			name:        "gap breaks the run",
			streak:      base,
			today:       "2024-01-05",
			wantCurrent: 1,
			wantLongest: 5,
			wantTotal:   11,
		},
		{
			name:        "same day repeat leaves the run untouched",
			streak:      base,
			today:       "2024-01-01",
			wantCurrent: 3,
			wantLongest: 5,
			wantTotal:   11,
		},
		{
			name:        "first sprint ever",
			streak:      models.Streak{},
			today:       "2024-01-01",
			wantCurrent: 1,
			wantLongest: 1,
			wantTotal:   1,
		},
		{
			name: "run overtaking the record lifts longest",
			streak: models.Streak{
				Current:       5,
				Longest:       5,
				LastStudyDate: "2024-01-01",
				TotalSprints:  20,
			},
			today:       "2024-01-02",
			wantCurrent: 6,
			wantLongest: 6,
			wantTotal:   21,
		},
		{
			name: "unparseable last date restarts the run",
			streak: models.Streak{
				Current:       4,
				Longest:       4,
				LastStudyDate: "garbage",
				TotalSprints:  7,
			},
			today:       "2024-01-02",
			wantCurrent: 1,
			wantLongest: 4,
			wantTotal:   8,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.streak

			session.Accrue(&s, tc.today)

			want := tc.streak
			want.Current = tc.wantCurrent
			want.Longest = tc.wantLongest
			want.TotalSprints = tc.wantTotal
			want.LastStudyDate = tc.today

			if diff := cmp.Diff(want, s); diff != "" {
				t.Errorf("streak mismatch (-want +got):\n%s", diff)
			}

			assert.GreaterOrEqual(t, s.Longest, s.Current)
		})
	}
}
