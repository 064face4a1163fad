package timer

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogunleye/sprint/config"
	"github.com/ogunleye/sprint/session"
	"github.com/ogunleye/sprint/store"
)

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func (c *fakeClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTimer(
	t *testing.T,
) (*Timer, *session.Manager, *fakeClock, *store.Client) {
	t.Helper()

	client, err := store.NewClient(filepath.Join(t.TempDir(), "sprint.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	require.NoError(t, client.Setup())

	clock := &fakeClock{
		current: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}

	cfg := &config.Config{}
	cfg.User.ID = uuid.New()
	cfg.Sprint.DefaultMinutes = 25
	cfg.Display.DarkTheme = true

	mgr := session.NewManager(
		client,
		cfg.User.ID,
		session.WithClock(clock.now),
	)

	_, err = mgr.Start("Linear algebra", 25)
	require.NoError(t, err)

	model := New(client, cfg, mgr)
	t.Cleanup(model.Close)

	return model, mgr, clock, client
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewShowsCountdown(t *testing.T) {
	model, _, _, _ := newTimer(t)

	view := model.View()

	assert.True(t, strings.Contains(view, "Linear algebra"))
	assert.True(t, strings.Contains(view, "25:00"))
	assert.True(t, strings.Contains(view, "studying solo"))
}

func TestTickAdvancesCountdown(t *testing.T) {
	model, _, clock, _ := newTimer(t)

	clock.advance(10 * time.Minute)

	_, cmd := model.Update(tickMsg(clock.now()))
	assert.NotNil(t, cmd, "the tick must re-arm itself")

	assert.True(t, strings.Contains(model.View(), "15:00"))
}

func TestZeroCrossingShowsExtendPrompt(t *testing.T) {
	model, mgr, clock, _ := newTimer(t)

	clock.advance(26 * time.Minute)
	model.Update(tickMsg(clock.now()))

	assert.Equal(t, session.ExtendPrompt, mgr.State())
	assert.True(t, strings.Contains(model.View(), "Time's up!"))
}

func TestExtendKeyFromPrompt(t *testing.T) {
	model, mgr, clock, _ := newTimer(t)

	clock.advance(26 * time.Minute)
	model.Update(tickMsg(clock.now()))

	model.Update(keyMsg("1"))

	assert.Equal(t, session.Active, mgr.State())
	assert.Equal(t, 5*time.Minute, mgr.Remaining())
}

func TestFinishKeyEntersCelebration(t *testing.T) {
	model, mgr, _, _ := newTimer(t)

	_, cmd := model.Update(keyMsg("enter"))

	assert.Equal(t, session.Celebrating, mgr.State())
	assert.NotNil(t, cmd, "the celebration must schedule its own commit")
	assert.True(t, strings.Contains(model.View(), "Sprint complete!"))
}

func TestCelebrationCommitQuits(t *testing.T) {
	model, mgr, _, _ := newTimer(t)

	model.Update(keyMsg("enter"))

	_, cmd := model.Update(celebrationOverMsg{})

	assert.Equal(t, session.Idle, mgr.State())
	assert.NotNil(t, cmd)
}

func TestCommitFailureWaitsForUser(t *testing.T) {
	model, mgr, _, client := newTimer(t)

	model.Update(keyMsg("enter"))
	require.Equal(t, session.Celebrating, mgr.State())

	require.NoError(t, client.Close())

	// with the store gone the commit fails and nothing is rescheduled
	_, cmd := model.Update(celebrationOverMsg{})

	assert.Nil(t, cmd)
	assert.Equal(t, session.Celebrating, mgr.State())
	assert.True(t, strings.Contains(model.View(), "enter to retry"))

	// enter retries the commit by hand, quit always goes through
	_, cmd = model.Update(keyMsg("enter"))
	assert.Nil(t, cmd)

	_, cmd = model.Update(keyMsg("q"))
	assert.NotNil(t, cmd)
}

func TestCloseReleasesWatch(t *testing.T) {
	model, _, _, _ := newTimer(t)

	cmd := model.waitForEvent()

	model.Close()

	assert.Equal(t, eventsClosedMsg{}, cmd())
}

func TestLeaveKeyCancelsAndQuits(t *testing.T) {
	model, mgr, _, _ := newTimer(t)

	_, cmd := model.Update(keyMsg("x"))

	assert.Equal(t, session.Idle, mgr.State())
	assert.NotNil(t, cmd)
}

func TestPauseKeyFreezesView(t *testing.T) {
	model, mgr, clock, _ := newTimer(t)

	model.Update(keyMsg("p"))
	require.True(t, mgr.Paused())

	clock.advance(5 * time.Minute)
	model.Update(tickMsg(clock.now()))

	assert.True(t, strings.Contains(model.View(), "25:00"))
	assert.True(t, strings.Contains(model.View(), "[Paused]"))
}
