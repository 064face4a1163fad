package timer

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ogunleye/sprint/internal/apperr"
	"github.com/ogunleye/sprint/session"
	"github.com/ogunleye/sprint/store"
)

type (
	tickMsg            time.Time
	pollMsg            time.Time
	storeMsg           store.Event
	eventsClosedMsg    struct{}
	celebrationOverMsg struct{}
)

func tick() tea.Cmd {
	return tea.Tick(session.TickInterval, func(ts time.Time) tea.Msg {
		return tickMsg(ts)
	})
}

func poll() tea.Cmd {
	return tea.Tick(session.PollInterval, func(ts time.Time) tea.Msg {
		return pollMsg(ts)
	})
}

func celebrate() tea.Cmd {
	return tea.Tick(session.CelebrationDelay, func(time.Time) tea.Msg {
		return celebrationOverMsg{}
	})
}

// waitForEvent blocks on the store's change feed and re-arms itself after
// every delivery.
func (t *Timer) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-t.events
		if !ok {
			return eventsClosedMsg{}
		}

		return storeMsg(ev)
	}
}

// refresh reconciles against the store and quits once the sprint is no
// longer active, which covers external cancellation as well as our own
// commit.
func (t *Timer) refresh() tea.Cmd {
	err := t.mgr.Refresh()
	if err != nil {
		t.notice = err.Error()
		return nil
	}

	if t.mgr.State() == session.Idle {
		return tea.Batch(tea.ClearScreen, tea.Quit)
	}

	return nil
}

func (t *Timer) extend(minutes int) tea.Cmd {
	err := t.mgr.Extend(minutes)
	if err == nil {
		t.notice = ""
		return nil
	}

	if apperr.KindOf(err) == apperr.Conflict {
		// someone else changed the sprint under us; take their version
		t.notice = "sprint changed elsewhere, try again"
		return t.refresh()
	}

	t.notice = err.Error()

	return nil
}

// commit performs the authoritative completion. On failure there is no
// automatic retry: the user is told and can press enter to try again or
// quit.
func (t *Timer) commit() tea.Cmd {
	err := t.mgr.CommitComplete()
	if err != nil {
		t.notice = "could not finish the sprint: " + err.Error() +
			" (enter to retry, q to quit)"

		return nil
	}

	return tea.Batch(tea.ClearScreen, tea.Quit)
}

func (t *Timer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if t.mgr.State() == session.Celebrating ||
		t.mgr.State() == session.Completing {
		switch {
		case key.Matches(msg, defaultKeymap.finish):
			return t, t.commit()
		case key.Matches(msg, defaultKeymap.quit):
			return t, tea.Batch(tea.ClearScreen, tea.Quit)
		}

		return t, nil
	}

	switch {
	case key.Matches(msg, defaultKeymap.togglePlay):
		var err error
		if t.mgr.Paused() {
			err = t.mgr.Resume()
		} else {
			err = t.mgr.Pause()
		}

		if err != nil {
			t.notice = err.Error()
		} else {
			t.notice = ""
		}

		return t, nil

	case key.Matches(msg, defaultKeymap.extendFive):
		return t, t.extend(5)

	case key.Matches(msg, defaultKeymap.extendTen):
		return t, t.extend(10)

	case key.Matches(msg, defaultKeymap.extendQuarter):
		return t, t.extend(15)

	case key.Matches(msg, defaultKeymap.finish):
		err := t.mgr.Complete()
		if err != nil {
			t.notice = err.Error()
			return t, nil
		}

		return t, celebrate()

	case key.Matches(msg, defaultKeymap.leave):
		err := t.mgr.LeaveEarly()
		if err != nil {
			t.notice = err.Error()
		}

		return t, tea.Batch(tea.ClearScreen, tea.Quit)

	case key.Matches(msg, defaultKeymap.quit):
		// the sprint stays active for the other participants
		return t, tea.Batch(tea.ClearScreen, tea.Quit)
	}

	return t, nil
}

func (t *Timer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		t.mgr.Tick()

		if t.mgr.State() == session.Idle {
			return t, tea.Batch(tea.ClearScreen, tea.Quit)
		}

		return t, tick()

	case pollMsg:
		cmd := t.refresh()
		if cmd != nil {
			return t, cmd
		}

		return t, poll()

	case storeMsg:
		if msg.Table == store.TableSprints ||
			msg.Table == store.TableParticipants {
			cmd := t.refresh()
			if cmd != nil {
				return t, cmd
			}
		}

		return t, t.waitForEvent()

	case eventsClosedMsg:
		// the poll keeps reconciling without the push feed
		return t, nil

	case celebrationOverMsg:
		return t, t.commit()

	case tea.KeyMsg:
		return t.handleKey(msg)

	case tea.WindowSizeMsg:
		t.progress.Width = msg.Width - padding*2 - 4
		if t.progress.Width > maxWidth {
			t.progress.Width = maxWidth
		}

		return t, nil
	}

	return t, nil
}
