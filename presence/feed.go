// Package presence derives the read model of everyone's currently active
// sprints and handles joining them.
package presence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ogunleye/sprint/internal/models"
	"github.com/ogunleye/sprint/internal/timeutil"
	"github.com/ogunleye/sprint/session"
	"github.com/ogunleye/sprint/store"
)

// Entry is one feed row: a sprint, who is in it, and a countdown label
// derived from the wall clock alone. No store read is needed to keep the
// label ticking.
type Entry struct {
	models.SprintWithCount

	Remaining      time.Duration `json:"remaining_seconds"`
	RemainingLabel string        `json:"remaining"`
	Joined         bool          `json:"joined"`
}

// JoinResult distinguishes a fresh join from a repeat, which is an
// outcome to report rather than an error. The zero value means no
// outcome, which is what Join returns alongside an error.
type JoinResult int

const (
	Joined JoinResult = iota + 1
	AlreadyJoined
)

// Feed lists active sprints for display. It caches the last snapshot;
// Refresh re-reads from the store and Entries recomputes countdown labels
// without touching it.
type Feed struct {
	repo   store.Repository
	userID uuid.UUID
	now    func() time.Time

	sprints []models.SprintWithCount
	joined  map[uuid.UUID]bool
}

// Option configures a Feed.
type Option func(*Feed)

// WithClock substitutes the wall-clock source.
func WithClock(now func() time.Time) Option {
	return func(f *Feed) {
		f.now = now
	}
}

// NewFeed returns an empty feed for the given viewer.
func NewFeed(repo store.Repository, userID uuid.UUID, opts ...Option) *Feed {
	f := &Feed{
		repo:   repo,
		userID: userID,
		now:    time.Now,
		joined: make(map[uuid.UUID]bool),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Refresh re-reads the active sprint list and the viewer's memberships.
func (f *Feed) Refresh() error {
	sprints, err := f.repo.ActiveSprints()
	if err != nil {
		return err
	}

	joined := make(map[uuid.UUID]bool, len(sprints))

	for i := range sprints {
		in, err := f.repo.IsParticipant(sprints[i].ID, f.userID)
		if err != nil {
			return err
		}

		joined[sprints[i].ID] = in
	}

	f.sprints = sprints
	f.joined = joined

	return nil
}

// Entries returns the current snapshot with countdown labels computed
// from the wall clock at call time.
func (f *Feed) Entries() []Entry {
	now := f.now()

	entries := make([]Entry, 0, len(f.sprints))

	for _, s := range f.sprints {
		remaining := max(0, s.EndsAt.Sub(now))

		entries = append(entries, Entry{
			SprintWithCount: s,
			Remaining:       remaining,
			RemainingLabel:  timeutil.FormatRemaining(remaining),
			Joined:          f.joined[s.ID],
		})
	}

	return entries
}

// Join adds the viewer to a sprint. Joining a sprint twice reports
// AlreadyJoined instead of failing, so concurrent joins cannot trip over
// the uniqueness of the membership.
func (f *Feed) Join(sprintID uuid.UUID) (JoinResult, error) {
	joined, err := f.repo.AddParticipant(sprintID, f.userID, f.now())
	if err != nil {
		return 0, err
	}

	if !joined {
		return AlreadyJoined, nil
	}

	f.joined[sprintID] = true

	return Joined, nil
}

// Run keeps the feed fresh until the context is cancelled: push
// notifications trigger an immediate refresh and the poll interval covers
// anything push missed. The two paths are redundant on purpose.
func (f *Feed) Run(ctx context.Context, onUpdate func(error)) {
	events := f.repo.Watch()
	defer f.repo.Unwatch(events)

	ticker := time.NewTicker(session.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}

			onUpdate(f.Refresh())
		case <-ticker.C:
			onUpdate(f.Refresh())
		}
	}
}
