package presence

import (
	"testing"

	"github.com/ogunleye/sprint/internal/models"
	"github.com/ogunleye/sprint/internal/testutil"
)

type indexTestCase struct {
	Name       string
	GoldenFile string
	Snapshot   []byte
}

func (tc indexTestCase) Output() (out []byte, name string) {
	return tc.Snapshot, tc.GoldenFile
}

func feedEntry(subject, label string, participants int) Entry {
	return Entry{
		SprintWithCount: models.SprintWithCount{
			Sprint:       models.Sprint{Subject: subject},
			Participants: participants,
		},
		RemainingLabel: label,
	}
}

func TestIndexPage(t *testing.T) {
	tc := indexTestCase{
		Name:       "render the feed page",
		GoldenFile: "feed_index",
	}

	entries := []Entry{
		feedEntry("Linear algebra", "45m 0s", 3),
		feedEntry("Organic chemistry", "12m 30s", 1),
	}

	out, err := renderIndex(&templateData{
		Entries:     entries,
		GeneratedAt: "Sat, 24 Feb 2024 09:30:00 UTC",
	})
	if err != nil {
		t.Fatal(err)
	}

	tc.Snapshot = out

	testutil.CompareGoldenFile(t, tc)
}

func TestIndexPageEmpty(t *testing.T) {
	tc := indexTestCase{
		Name:       "render the feed page with no sprints",
		GoldenFile: "feed_index_empty",
	}

	out, err := renderIndex(&templateData{
		Entries:     nil,
		GeneratedAt: "Sat, 24 Feb 2024 09:30:00 UTC",
	})
	if err != nil {
		t.Fatal(err)
	}

	tc.Snapshot = out

	testutil.CompareGoldenFile(t, tc)
}
