package app

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ogunleye/sprint/internal/models"
	"github.com/ogunleye/sprint/presence"
)

func tableEntry(
	subject, label string,
	remaining time.Duration,
	participants int,
	joined bool,
) presence.Entry {
	return presence.Entry{
		SprintWithCount: models.SprintWithCount{
			Sprint: models.Sprint{
				ID:      uuid.New(),
				Subject: subject,
			},
			Participants: participants,
		},
		Remaining:      remaining,
		RemainingLabel: label,
		Joined:         joined,
	}
}

func TestFeedTable(t *testing.T) {
	entries := []presence.Entry{
		tableEntry("Linear algebra", "45m 0s", 45*time.Minute, 3, true),
		tableEntry("Organic chemistry", "30s", 30*time.Second, 1, false),
	}

	out := feedTable(entries)

	assert.Contains(t, out, "SUBJECT")
	assert.Contains(t, out, "Linear algebra")
	assert.Contains(t, out, "Organic chemistry")
	assert.Contains(t, out, "45m 0s")
	assert.Contains(t, out, "30s")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, presence.ShortID(entries[0].ID))
}

func TestStreakTable(t *testing.T) {
	rows := streakTable(&models.Streak{
		Current:       4,
		Longest:       9,
		LastStudyDate: "2024-01-02",
		TotalSprints:  31,
	})

	assert.Len(t, rows, 2)
	assert.Contains(t, rows[1][0], "4 days")
	assert.Contains(t, rows[1][1], "9 days")
	assert.Equal(t, "31", rows[1][2])
	assert.Equal(t, "2024-01-02", rows[1][3])
}
