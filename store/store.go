// Package store connects to the data store and manages sprints,
// participants, and streaks
package store

import (
	"cmp"
	"encoding/json"
	"errors"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/ogunleye/sprint/internal/models"
)

const (
	sprintBucket      = "sprints"
	participantBucket = "participants"
	streakBucket      = "streaks"
)

// Client is a BoltDB-backed Repository.
type Client struct {
	*bolt.DB
	notifier *notifier
}

// participant membership is keyed "<sprint id>/<user id>" so that one
// prefix scan lists a sprint's participants and a suffix match finds a
// user's sprints.
func participantKey(sprintID, userID uuid.UUID) []byte {
	return []byte(sprintID.String() + "/" + userID.String())
}

func participantPrefix(sprintID uuid.UUID) []byte {
	return []byte(sprintID.String() + "/")
}

// bucket retrieves a named bucket, translating its absence into the
// provisioning error the UI treats as a setup problem.
func bucket(tx *bolt.Tx, name string) (*bolt.Bucket, error) {
	b := tx.Bucket([]byte(name))
	if b == nil {
		return nil, ErrNotProvisioned
	}

	return b, nil
}

func getSprint(tx *bolt.Tx, id uuid.UUID) (*models.Sprint, error) {
	b, err := bucket(tx, sprintBucket)
	if err != nil {
		return nil, err
	}

	raw := b.Get([]byte(id.String()))
	if raw == nil {
		return nil, ErrSprintNotFound
	}

	var sprint models.Sprint

	err = json.Unmarshal(raw, &sprint)
	if err != nil {
		return nil, err
	}

	return &sprint, nil
}

func putSprint(tx *bolt.Tx, sprint *models.Sprint) error {
	b, err := bucket(tx, sprintBucket)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(sprint)
	if err != nil {
		return err
	}

	return b.Put([]byte(sprint.ID.String()), raw)
}

func countParticipants(tx *bolt.Tx, sprintID uuid.UUID) (int, error) {
	b, err := bucket(tx, participantBucket)
	if err != nil {
		return 0, err
	}

	var count int

	prefix := participantPrefix(sprintID)
	cur := b.Cursor()

	for k, _ := cur.Seek(prefix); k != nil && strings.HasPrefix(string(k), string(prefix)); k, _ = cur.Next() {
		count++
	}

	return count, nil
}

// ActiveSprintFor returns the most recently started active sprint the user
// participates in, or nil when there is none.
func (c *Client) ActiveSprintFor(
	userID uuid.UUID,
) (*models.SprintWithCount, error) {
	var result *models.SprintWithCount

	suffix := "/" + userID.String()

	err := c.View(func(tx *bolt.Tx) error {
		pb, err := bucket(tx, participantBucket)
		if err != nil {
			return err
		}

		var latest *models.Sprint

		err = pb.ForEach(func(k, _ []byte) error {
			if !strings.HasSuffix(string(k), suffix) {
				return nil
			}

			sprintID, err := uuid.Parse(strings.TrimSuffix(string(k), suffix))
			if err != nil {
				return err
			}

			sprint, err := getSprint(tx, sprintID)
			if errors.Is(err, ErrSprintNotFound) {
				// membership can outlive the record during external cleanup
				return nil
			}

			if err != nil {
				return err
			}

			if sprint.Status != models.StatusActive {
				return nil
			}

			if latest == nil || sprint.StartedAt.After(latest.StartedAt) {
				latest = sprint
			}

			return nil
		})
		if err != nil {
			return err
		}

		if latest == nil {
			return nil
		}

		count, err := countParticipants(tx, latest.ID)
		if err != nil {
			return err
		}

		result = &models.SprintWithCount{
			Sprint:       *latest,
			Participants: count,
		}

		return nil
	})

	return result, err
}

// ActiveSprints returns every active sprint with participant counts, most
// recently started first.
func (c *Client) ActiveSprints() ([]models.SprintWithCount, error) {
	var sprints []models.SprintWithCount

	err := c.View(func(tx *bolt.Tx) error {
		b, err := bucket(tx, sprintBucket)
		if err != nil {
			return err
		}

		return b.ForEach(func(_, v []byte) error {
			var sprint models.Sprint

			err := json.Unmarshal(v, &sprint)
			if err != nil {
				return err
			}

			if sprint.Status != models.StatusActive {
				return nil
			}

			count, err := countParticipants(tx, sprint.ID)
			if err != nil {
				return err
			}

			sprints = append(sprints, models.SprintWithCount{
				Sprint:       sprint,
				Participants: count,
			})

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(sprints, func(a, b models.SprintWithCount) int {
		return cmp.Compare(b.StartedAt.UnixNano(), a.StartedAt.UnixNano())
	})

	return sprints, nil
}

// FindSprint resolves a sprint by a unique id prefix.
func (c *Client) FindSprint(idPrefix string) (*models.Sprint, error) {
	var found *models.Sprint

	err := c.View(func(tx *bolt.Tx) error {
		b, err := bucket(tx, sprintBucket)
		if err != nil {
			return err
		}

		return b.ForEach(func(k, v []byte) error {
			if !strings.HasPrefix(string(k), idPrefix) {
				return nil
			}

			if found != nil {
				return errAmbiguousPrefix.Fmt(idPrefix)
			}

			var sprint models.Sprint

			err := json.Unmarshal(v, &sprint)
			if err != nil {
				return err
			}

			found = &sprint

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if found == nil {
		return nil, ErrSprintNotFound
	}

	return found, nil
}

// CreateSprint stores a new active sprint and joins the owner as its first
// participant.
func (c *Client) CreateSprint(
	ownerID uuid.UUID,
	subject string,
	minutes int,
	now time.Time,
) (*models.Sprint, error) {
	sprint := &models.Sprint{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		Subject:         subject,
		DurationMinutes: minutes,
		StartedAt:       now,
		EndsAt:          now.Add(time.Duration(minutes) * time.Minute),
		Status:          models.StatusActive,
		CreatedAt:       now,
	}

	err := c.Update(func(tx *bolt.Tx) error {
		err := putSprint(tx, sprint)
		if err != nil {
			return err
		}

		return putParticipant(tx, &models.Participant{
			SprintID: sprint.ID,
			UserID:   ownerID,
			JoinedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	c.notifier.publish(
		Event{Table: TableSprints, Op: OpInsert},
		Event{Table: TableParticipants, Op: OpInsert},
	)

	return sprint, nil
}

// UpdateSprintEnd moves a sprint's end time. The write is rejected with
// ErrConflict when the stored end time no longer matches expectedEnd.
func (c *Client) UpdateSprintEnd(
	id uuid.UUID,
	newEnd time.Time,
	newMinutes int,
	expectedEnd time.Time,
) error {
	err := c.Update(func(tx *bolt.Tx) error {
		sprint, err := getSprint(tx, id)
		if err != nil {
			return err
		}

		if !sprint.EndsAt.Equal(expectedEnd) {
			return ErrConflict
		}

		if sprint.Status != models.StatusActive {
			return ErrConflict
		}

		sprint.EndsAt = newEnd
		sprint.DurationMinutes = newMinutes

		return putSprint(tx, sprint)
	})
	if err != nil {
		return err
	}

	c.notifier.publish(Event{Table: TableSprints, Op: OpUpdate})

	return nil
}

// SetSprintStatus transitions a sprint out of the active status. The
// second attempt on the same sprint is a no-op, which is what makes the
// completion commit idempotent.
func (c *Client) SetSprintStatus(
	id uuid.UUID,
	status models.Status,
) (bool, error) {
	var changed bool

	err := c.Update(func(tx *bolt.Tx) error {
		sprint, err := getSprint(tx, id)
		if err != nil {
			return err
		}

		if sprint.Terminal() {
			return nil
		}

		sprint.Status = status
		changed = true

		return putSprint(tx, sprint)
	})
	if err != nil {
		return false, err
	}

	if changed {
		c.notifier.publish(Event{Table: TableSprints, Op: OpUpdate})
	}

	return changed, nil
}

func putParticipant(tx *bolt.Tx, p *models.Participant) error {
	b, err := bucket(tx, participantBucket)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}

	return b.Put(participantKey(p.SprintID, p.UserID), raw)
}

// AddParticipant joins a user to a sprint. Joining twice is not an error:
// the second call reports false and writes nothing.
func (c *Client) AddParticipant(
	sprintID, userID uuid.UUID,
	now time.Time,
) (bool, error) {
	var joined bool

	err := c.Update(func(tx *bolt.Tx) error {
		b, err := bucket(tx, participantBucket)
		if err != nil {
			return err
		}

		if b.Get(participantKey(sprintID, userID)) != nil {
			return nil
		}

		joined = true

		return putParticipant(tx, &models.Participant{
			SprintID: sprintID,
			UserID:   userID,
			JoinedAt: now,
		})
	})
	if err != nil {
		return false, err
	}

	if joined {
		c.notifier.publish(Event{Table: TableParticipants, Op: OpInsert})
	}

	return joined, nil
}

// RemoveParticipant deletes a user's membership and returns how many
// participants remain on the sprint.
func (c *Client) RemoveParticipant(
	sprintID, userID uuid.UUID,
) (int, error) {
	var remaining int

	err := c.Update(func(tx *bolt.Tx) error {
		b, err := bucket(tx, participantBucket)
		if err != nil {
			return err
		}

		err = b.Delete(participantKey(sprintID, userID))
		if err != nil {
			return err
		}

		remaining, err = countParticipants(tx, sprintID)

		return err
	})
	if err != nil {
		return 0, err
	}

	c.notifier.publish(Event{Table: TableParticipants, Op: OpDelete})

	return remaining, nil
}

func (c *Client) CountParticipants(sprintID uuid.UUID) (int, error) {
	var count int

	err := c.View(func(tx *bolt.Tx) error {
		var err error

		count, err = countParticipants(tx, sprintID)

		return err
	})

	return count, err
}

func (c *Client) IsParticipant(sprintID, userID uuid.UUID) (bool, error) {
	var present bool

	err := c.View(func(tx *bolt.Tx) error {
		b, err := bucket(tx, participantBucket)
		if err != nil {
			return err
		}

		present = b.Get(participantKey(sprintID, userID)) != nil

		return nil
	})

	return present, err
}

// Streak returns the user's streak record, or nil when none exists yet.
func (c *Client) Streak(userID uuid.UUID) (*models.Streak, error) {
	var streak *models.Streak

	err := c.View(func(tx *bolt.Tx) error {
		b, err := bucket(tx, streakBucket)
		if err != nil {
			return err
		}

		raw := b.Get([]byte(userID.String()))
		if raw == nil {
			return nil
		}

		streak = &models.Streak{}

		return json.Unmarshal(raw, streak)
	})
	if err != nil {
		return nil, err
	}

	return streak, nil
}

// UpsertStreak applies mutate to the user's streak record inside a single
// update transaction. The read-modify-write therefore cannot interleave
// with a concurrent start against this store.
func (c *Client) UpsertStreak(
	userID uuid.UUID,
	now time.Time,
	mutate func(*models.Streak),
) (*models.Streak, error) {
	var streak models.Streak

	err := c.Update(func(tx *bolt.Tx) error {
		b, err := bucket(tx, streakBucket)
		if err != nil {
			return err
		}

		key := []byte(userID.String())

		if raw := b.Get(key); raw != nil {
			err = json.Unmarshal(raw, &streak)
			if err != nil {
				return err
			}
		} else {
			streak.UserID = userID
		}

		mutate(&streak)
		streak.UpdatedAt = now

		raw, err := json.Marshal(&streak)
		if err != nil {
			return err
		}

		return b.Put(key, raw)
	})
	if err != nil {
		return nil, err
	}

	c.notifier.publish(Event{Table: TableStreaks, Op: OpUpdate})

	return &streak, nil
}

// Watch subscribes to change notifications.
func (c *Client) Watch() <-chan Event {
	return c.notifier.subscribe()
}

func (c *Client) Unwatch(ch <-chan Event) {
	c.notifier.unsubscribe(ch)
}

// Setup creates the buckets the application expects. Every other
// operation reports ErrNotProvisioned until this has run once.
func (c *Client) Setup() error {
	return c.DB.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{
			sprintBucket,
			participantBucket,
			streakBucket,
		} {
			_, err := tx.CreateBucketIfNotExists([]byte(name))
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection. It does not
// provision the schema; see Setup.
func NewClient(pathToDB string) (*Client, error) {
	db, err := openDB(pathToDB)
	if err != nil {
		return nil, err
	}

	return &Client{
		DB:       db,
		notifier: newNotifier(),
	}, nil
}
