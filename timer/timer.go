// Package timer renders the sprint countdown and drives the session
// manager from the bubbletea event loop.
package timer

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/ogunleye/sprint/config"
	"github.com/ogunleye/sprint/session"
	"github.com/ogunleye/sprint/store"
)

const (
	padding  = 2
	maxWidth = 80
)

type keymap struct {
	togglePlay    key.Binding
	extendFive    key.Binding
	extendTen     key.Binding
	extendQuarter key.Binding
	finish        key.Binding
	leave         key.Binding
	quit          key.Binding
}

var defaultKeymap = keymap{
	togglePlay: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause/resume"),
	),
	extendFive: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "+5 min"),
	),
	extendTen: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "+10 min"),
	),
	extendQuarter: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "+15 min"),
	),
	finish: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "finish"),
	),
	leave: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "leave sprint"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit (sprint keeps running)"),
	),
}

// Timer is the bubbletea model for a running sprint.
type Timer struct {
	mgr      *session.Manager
	repo     store.Repository
	Opts     *config.Config
	progress progress.Model
	help     help.Model
	style    styles
	events   <-chan store.Event
	notice   string
}

// New creates the countdown model for an already started or joined
// sprint. The store watch is released when the program quits.
func New(
	repo store.Repository,
	cfg *config.Config,
	mgr *session.Manager,
) *Timer {
	return &Timer{
		mgr:      mgr,
		repo:     repo,
		Opts:     cfg,
		progress: progress.New(progress.WithDefaultGradient()),
		help:     help.New(),
		style:    newStyles(cfg.Display.DarkTheme),
		events:   repo.Watch(),
	}
}

func (t *Timer) Init() tea.Cmd {
	return tea.Batch(tick(), poll(), t.waitForEvent())
}

// Close releases the store watch. Call once the tea program returns.
func (t *Timer) Close() {
	t.repo.Unwatch(t.events)
}

// EndCue returns the end-of-sprint signal: a desktop notification and an
// audible beep, both best-effort.
func EndCue(cfg *config.Config) func() {
	return func() {
		if !cfg.Notifications.Enabled {
			return
		}

		go func() {
			err := beeep.Notify(
				"Sprint complete",
				"Add more time or finish up",
				"",
			)
			if err != nil {
				slog.Warn(
					"unable to display notification",
					slog.Any("error", err),
				)
			}

			_ = beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
		}()
	}
}
