package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/ogunleye/sprint/internal/models"
)

// Repository is the persistence boundary for sprints, participants, and
// streaks. The session manager and presence feed depend only on this
// contract, so a remote backend can replace the local Bolt client without
// touching the core.
type Repository interface {
	// ActiveSprintFor returns the most recently started active sprint the
	// user participates in, annotated with its participant count, or nil
	// when the user has none.
	ActiveSprintFor(userID uuid.UUID) (*models.SprintWithCount, error)
	// ActiveSprints returns every active sprint with participant counts,
	// most recently started first.
	ActiveSprints() ([]models.SprintWithCount, error)
	// FindSprint resolves a sprint by a unique id prefix.
	FindSprint(idPrefix string) (*models.Sprint, error)
	// CreateSprint stores a new active sprint ending at now plus the
	// duration, and joins the owner as its first participant.
	CreateSprint(
		ownerID uuid.UUID,
		subject string,
		minutes int,
		now time.Time,
	) (*models.Sprint, error)
	// UpdateSprintEnd moves a sprint's end time, compare-and-swap style:
	// the write is rejected with ErrConflict when the stored end time no
	// longer matches expectedEnd.
	UpdateSprintEnd(
		id uuid.UUID,
		newEnd time.Time,
		newMinutes int,
		expectedEnd time.Time,
	) error
	// SetSprintStatus transitions a sprint out of the active status. It
	// reports false without error when the sprint is already terminal,
	// which makes completion and cancellation commits idempotent.
	SetSprintStatus(id uuid.UUID, status models.Status) (bool, error)
	// AddParticipant joins a user to a sprint. It reports false when the
	// user is already a participant instead of failing on the duplicate.
	AddParticipant(sprintID, userID uuid.UUID, now time.Time) (bool, error)
	// RemoveParticipant deletes a user's membership and returns how many
	// participants remain.
	RemoveParticipant(sprintID, userID uuid.UUID) (int, error)
	CountParticipants(sprintID uuid.UUID) (int, error)
	IsParticipant(sprintID, userID uuid.UUID) (bool, error)
	// Streak returns the user's streak record, or nil when none exists.
	Streak(userID uuid.UUID) (*models.Streak, error)
	// UpsertStreak applies mutate to the user's streak record (a zero
	// record on first use) and persists the result in one transaction.
	UpsertStreak(
		userID uuid.UUID,
		now time.Time,
		mutate func(*models.Streak),
	) (*models.Streak, error)
	// Watch returns a channel of change notifications. Events carry no
	// payload beyond "something changed in this table": consumers re-read.
	Watch() <-chan Event
	Unwatch(<-chan Event)
	Close() error
}
