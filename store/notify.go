package store

import "sync"

// Table identifies the logical table an event originated from.
type Table string

const (
	TableSprints      Table = "sprints"
	TableParticipants Table = "sprint_participants"
	TableStreaks      Table = "user_streaks"
)

// Op is the kind of change that occurred.
type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// Event is a payload-free change notification: something changed in the
// named table, re-read to find out what. The periodic poll remains the
// authoritative fallback for subscribers that miss events.
type Event struct {
	Table Table
	Op    Op
}

// notifier fans change events out to subscribers. Sends never block: a
// subscriber with a full buffer misses the event and reconciles on its
// next poll instead.
type notifier struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func newNotifier() *notifier {
	return &notifier{
		subs: make(map[chan Event]struct{}),
	}
}

func (n *notifier) subscribe() chan Event {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(chan Event, 8)
	n.subs[ch] = struct{}{}

	return ch
}

func (n *notifier) unsubscribe(ch <-chan Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for sub := range n.subs {
		if sub == ch {
			delete(n.subs, sub)
			close(sub)

			return
		}
	}
}

func (n *notifier) publish(events ...Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for sub := range n.subs {
		for _, ev := range events {
			select {
			case sub <- ev:
			default:
			}
		}
	}
}
