// Package session operates the sprint countdown lifecycle: starting,
// joining state from the store, pause/resume, extension, completion, and
// streak accrual. It owns the in-memory view of "my active sprint"; the
// store stays authoritative and the manager reconciles against it on
// every refresh.
package session

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ogunleye/sprint/internal/models"
	"github.com/ogunleye/sprint/internal/timeutil"
	"github.com/ogunleye/sprint/store"
)

// State is the manager's position in the sprint lifecycle.
type State int

const (
	// Idle means no active sprint is known.
	Idle State = iota
	// Active means a sprint is running (possibly paused locally).
	Active
	// ExtendPrompt means the countdown crossed zero and the user is being
	// asked to add time or finish.
	ExtendPrompt
	// Celebrating is the completion acknowledgment shown before the
	// authoritative commit.
	Celebrating
	// Completing means the commit is in flight.
	Completing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case ExtendPrompt:
		return "extend-prompt"
	case Celebrating:
		return "celebrating"
	case Completing:
		return "completing"
	}

	return "unknown"
}

const (
	// TickInterval is how often the remaining time is recomputed from the
	// wall clock.
	TickInterval = time.Second
	// PollInterval is the refresh fallback for changes that arrive while
	// push notifications are missed.
	PollInterval = 5 * time.Second
	// CelebrationDelay is how long the completion acknowledgment is shown
	// before the commit. Purely cosmetic; the commit itself is idempotent
	// and can be invoked directly.
	CelebrationDelay = 2200 * time.Millisecond
)

// Manager drives one user's sprint lifecycle. It is not safe for
// concurrent use: all operations are expected to run on a single event
// loop (the TUI update loop), with timers and push notifications
// delivering into that same loop.
type Manager struct {
	repo   store.Repository
	userID uuid.UUID
	now    func() time.Time
	cue    func()

	state        State
	sprint       *models.Sprint
	participants int
	remaining    time.Duration
	paused       bool
	pausedAt     time.Time
	cueFired     bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock substitutes the wall-clock source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithCue registers the end-of-sprint signal, fired exactly once per
// zero-crossing.
func WithCue(cue func()) Option {
	return func(m *Manager) {
		m.cue = cue
	}
}

// NewManager returns an idle manager for the given user.
func NewManager(
	repo store.Repository,
	userID uuid.UUID,
	opts ...Option,
) *Manager {
	m := &Manager{
		repo:   repo,
		userID: userID,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Manager) State() State { return m.state }

// Sprint returns the current sprint snapshot, or nil when idle.
func (m *Manager) Sprint() *models.Sprint { return m.sprint }

func (m *Manager) Participants() int { return m.participants }

// Remaining is the last computed time left on the countdown. While paused
// it stays frozen at the value seen when the pause began.
func (m *Manager) Remaining() time.Duration { return m.remaining }

func (m *Manager) Paused() bool { return m.paused }

// IsOwner reports whether the current user owns the tracked sprint.
func (m *Manager) IsOwner() bool {
	return m.sprint != nil && m.sprint.OwnerID == m.userID
}

func (m *Manager) reset() {
	m.state = Idle
	m.sprint = nil
	m.participants = 0
	m.remaining = 0
	m.paused = false
	m.pausedAt = time.Time{}
	m.cueFired = false
}

// Start validates and creates a new sprint, joins the caller as owner, and
// accrues the caller's streak. Validation failures happen before any
// store call.
func (m *Manager) Start(subject string, minutes int) (*models.Sprint, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, errEmptySubject
	}

	if minutes <= 0 {
		return nil, errInvalidDuration
	}

	now := m.now()

	sprint, err := m.repo.CreateSprint(m.userID, subject, minutes, now)
	if err != nil {
		return nil, err
	}

	// Streaks accrue on start, not completion. A failure here must not
	// undo a sprint that is already running, so it is logged and swallowed.
	_, err = m.repo.UpsertStreak(
		m.userID,
		now,
		func(s *models.Streak) {
			Accrue(s, timeutil.DateOnly(now))
		},
	)
	if err != nil {
		slog.Warn("streak update failed", slog.Any("error", err))
	}

	m.reset()
	m.state = Active
	m.sprint = sprint
	m.participants = 1
	m.remaining = sprint.EndsAt.Sub(now)

	return sprint, nil
}

// Refresh reconciles the local snapshot against the store. It is safe to
// call repeatedly and is driven both by the periodic poll and by push
// notifications; the two are deliberately redundant.
func (m *Manager) Refresh() error {
	// a commit in flight must not be clobbered by a poll
	if m.state == Celebrating || m.state == Completing {
		return nil
	}

	cur, err := m.repo.ActiveSprintFor(m.userID)
	if err != nil {
		return err
	}

	if cur == nil {
		m.reset()
		return nil
	}

	if m.sprint != nil && m.sprint.ID != cur.ID {
		// moved to a different sprint externally; pause bookkeeping from
		// the old one no longer applies
		m.reset()
	}

	m.sprint = &cur.Sprint
	m.participants = cur.Participants

	if m.state == Idle {
		m.state = Active
	}

	if !m.paused {
		m.remaining = max(0, cur.EndsAt.Sub(m.now()))
	}

	// another participant extending the sprint re-arms the end cue
	if m.state == ExtendPrompt && m.remaining > 0 {
		m.state = Active
		m.cueFired = false
	}

	return nil
}

// Tick recomputes the remaining time from the wall clock. On the first
// crossing to zero it enters the extend prompt and fires the end cue,
// once per sprint, never once per tick.
func (m *Manager) Tick() {
	if m.state != Active || m.paused {
		return
	}

	m.remaining = max(0, m.sprint.EndsAt.Sub(m.now()))

	if m.remaining > 0 || m.cueFired {
		return
	}

	m.cueFired = true
	m.state = ExtendPrompt

	if m.cue != nil {
		m.cue()
	}
}

// Extend adds minutes to the sprint's duration and end time. From the
// extend prompt the new end counts from now; from a running sprint it
// counts from the current end. A concurrent change to the sprint surfaces
// as a conflict: refresh and retry.
func (m *Manager) Extend(minutes int) error {
	if minutes <= 0 {
		return errInvalidDuration
	}

	if m.state != Active && m.state != ExtendPrompt {
		return errNoActiveSprint
	}

	now := m.now()

	newEnd := m.sprint.EndsAt.Add(time.Duration(minutes) * time.Minute)
	if m.state == ExtendPrompt {
		newEnd = now.Add(time.Duration(minutes) * time.Minute)
	}

	newMinutes := m.sprint.DurationMinutes + minutes

	err := m.repo.UpdateSprintEnd(m.sprint.ID, newEnd, newMinutes, m.sprint.EndsAt)
	if err != nil {
		return err
	}

	m.sprint.EndsAt = newEnd
	m.sprint.DurationMinutes = newMinutes
	m.remaining = max(0, newEnd.Sub(now))
	m.state = Active
	m.cueFired = false

	return nil
}

// Pause freezes the countdown locally. The stored end time is untouched,
// so other participants keep seeing the unfrozen countdown; Resume settles
// the difference.
func (m *Manager) Pause() error {
	if m.state != Active {
		return errNoActiveSprint
	}

	if !m.IsOwner() {
		return errNotOwner
	}

	if m.paused {
		return errAlreadyPaused
	}

	m.paused = true
	m.pausedAt = m.now()

	return nil
}

// Resume shifts the sprint's end time forward by the elapsed pause span
// and unfreezes the countdown. Like Extend it is a compare-and-swap
// against the end time this manager last saw.
func (m *Manager) Resume() error {
	if m.state != Active {
		return errNoActiveSprint
	}

	if !m.IsOwner() {
		return errNotOwner
	}

	if !m.paused {
		return errNotPaused
	}

	now := m.now()
	span := now.Sub(m.pausedAt)
	newEnd := m.sprint.EndsAt.Add(span)

	err := m.repo.UpdateSprintEnd(
		m.sprint.ID,
		newEnd,
		m.sprint.DurationMinutes,
		m.sprint.EndsAt,
	)
	if err != nil {
		return err
	}

	m.sprint.EndsAt = newEnd
	m.paused = false
	m.pausedAt = time.Time{}
	m.remaining = max(0, newEnd.Sub(now))

	return nil
}

// Complete enters the celebration acknowledgment. The caller shows it for
// CelebrationDelay and then invokes CommitComplete; non-interactive
// callers may skip straight to CommitComplete.
func (m *Manager) Complete() error {
	if m.state != Active && m.state != ExtendPrompt {
		return errNoActiveSprint
	}

	m.state = Celebrating

	return nil
}

// CommitComplete performs the authoritative completion: the sprint leaves
// the active status and local state clears. Committing a sprint that is
// already terminal is a no-op, so retries and double-fires are safe.
func (m *Manager) CommitComplete() error {
	if m.sprint == nil {
		m.reset()
		return nil
	}

	m.state = Completing

	_, err := m.repo.SetSprintStatus(m.sprint.ID, models.StatusCompleted)
	if err != nil {
		// leave the commit retryable
		m.state = Celebrating
		return err
	}

	m.reset()

	return nil
}

// LeaveEarly removes the caller from the sprint and cancels it when the
// participant set empties. Local state clears no matter what: the store
// is reconciled on the next refresh if any write failed.
func (m *Manager) LeaveEarly() error {
	if m.sprint == nil {
		m.reset()
		return nil
	}

	sprintID := m.sprint.ID

	remaining, err := m.repo.RemoveParticipant(sprintID, m.userID)
	if err != nil {
		m.reset()
		return err
	}

	if remaining == 0 {
		_, err = m.repo.SetSprintStatus(sprintID, models.StatusCancelled)
		if err != nil {
			m.reset()
			return err
		}
	}

	m.reset()

	return nil
}
