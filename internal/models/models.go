package models

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a sprint. Transitions are
// one-directional: active sprints become completed or cancelled, and
// neither terminal state can be left.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Sprint is a timed study session owned by one user and joinable by others.
type Sprint struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	Subject         string    `json:"subject"`
	DurationMinutes int       `json:"duration_minutes"`
	StartedAt       time.Time `json:"started_at"`
	// EndsAt is StartedAt plus the duration. It moves forward when the
	// sprint is extended or resumed after a pause.
	EndsAt    time.Time `json:"ends_at"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Terminal reports whether the sprint can no longer change status.
func (s *Sprint) Terminal() bool {
	return s.Status != StatusActive
}

// Participant records a user's membership in a sprint. The owner is a
// participant like any other.
type Participant struct {
	SprintID uuid.UUID `json:"sprint_id"`
	UserID   uuid.UUID `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

// SprintWithCount annotates a sprint with its live participant count for
// feed displays.
type SprintWithCount struct {
	Sprint
	Participants int `json:"participant_count"`
}

// Streak tracks per-user study consistency: consecutive days with at least
// one sprint, the best run ever observed, and a lifetime sprint count.
type Streak struct {
	UserID  uuid.UUID `json:"user_id"`
	Current int       `json:"current_streak"`
	Longest int       `json:"longest_streak"`
	// LastStudyDate is a calendar date in "2006-01-02" form, not a
	// timestamp. Empty until the first sprint is started.
	LastStudyDate string    `json:"last_study_date"`
	TotalSprints  int       `json:"total_sprints"`
	UpdatedAt     time.Time `json:"updated_at"`
}
