package timer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/ogunleye/sprint/internal/timeutil"
	"github.com/ogunleye/sprint/session"
)

type styles struct {
	base      lipgloss.Style
	main      lipgloss.Style
	secondary lipgloss.Style
	hint      lipgloss.Style
	notice    lipgloss.Style
}

func newStyles(darkTheme bool) styles {
	fg := lipgloss.Color("#1F2937")
	if darkTheme {
		fg = lipgloss.Color("#FAFAFA")
	}

	return styles{
		base: lipgloss.NewStyle().Padding(1, padding),
		main: lipgloss.NewStyle().
			Foreground(fg).
			Bold(true),
		secondary: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22C55E")),
		hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")),
		notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EAB308")),
	}
}

func (t *Timer) endTimeLabel() string {
	timeFormat := "03:04 PM"
	if t.Opts.Display.TwentyFourHour {
		timeFormat = "15:04"
	}

	return t.mgr.Sprint().EndsAt.Format(timeFormat)
}

func (t *Timer) participantsLabel() string {
	others := t.mgr.Participants() - 1
	if others <= 0 {
		return "studying solo"
	}

	if others == 1 {
		return "studying with 1 other"
	}

	return fmt.Sprintf("studying with %d others", others)
}

func (t *Timer) countdownView() string {
	var s strings.Builder

	sprint := t.mgr.Sprint()

	s.WriteString(t.style.main.Render(sprint.Subject))
	s.WriteString("  ")

	if t.mgr.Paused() {
		s.WriteString(t.style.secondary.Render("[Paused]"))
	} else {
		s.WriteString(t.style.hint.Render("until " + t.endTimeLabel()))
	}

	s.WriteString("\n")
	s.WriteString(t.style.hint.Render(t.participantsLabel()))

	s.WriteString("\n\n")
	s.WriteString(
		t.style.main.Render(timeutil.FormatCountdown(t.mgr.Remaining())),
	)

	total := float64(sprint.DurationMinutes * 60)
	elapsed := total - t.mgr.Remaining().Seconds()
	if total > 0 {
		s.WriteString("\n\n")
		s.WriteString(t.progress.ViewAs(elapsed / total))
	}

	s.WriteString("\n\n")

	bindings := []key.Binding{
		defaultKeymap.extendFive,
		defaultKeymap.finish,
		defaultKeymap.leave,
		defaultKeymap.quit,
	}
	if t.mgr.IsOwner() {
		bindings = append(
			[]key.Binding{defaultKeymap.togglePlay},
			bindings...,
		)
	}

	s.WriteString(t.help.ShortHelpView(bindings))

	return s.String()
}

func (t *Timer) extendPromptView() string {
	var s strings.Builder

	s.WriteString(t.style.main.Render("Time's up!"))
	s.WriteString("\n\n")
	s.WriteString(
		t.style.secondary.Render("Keep going or finish up " + t.mgr.Sprint().Subject),
	)
	s.WriteString("\n\n")
	s.WriteString(t.help.ShortHelpView([]key.Binding{
		defaultKeymap.extendFive,
		defaultKeymap.extendTen,
		defaultKeymap.extendQuarter,
		defaultKeymap.finish,
	}))

	return s.String()
}

func (t *Timer) celebrationView() string {
	var s strings.Builder

	s.WriteString(t.style.main.Render("Sprint complete!"))
	s.WriteString("\n\n")
	s.WriteString(t.style.secondary.Render("Nice work. Wrapping up..."))

	return s.String()
}

func (t *Timer) View() string {
	var view string

	switch t.mgr.State() {
	case session.Idle:
		return ""
	case session.Active:
		view = t.countdownView()
	case session.ExtendPrompt:
		view = t.extendPromptView()
	case session.Celebrating, session.Completing:
		view = t.celebrationView()
	}

	if t.notice != "" {
		view += "\n\n" + t.style.notice.Render(t.notice)
	}

	return t.style.base.Render(view)
}
