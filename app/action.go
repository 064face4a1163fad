package app

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ogunleye/sprint/config"
	"github.com/ogunleye/sprint/internal/models"
	"github.com/ogunleye/sprint/internal/ui"
	"github.com/ogunleye/sprint/presence"
	"github.com/ogunleye/sprint/session"
	"github.com/ogunleye/sprint/store"
	"github.com/ogunleye/sprint/timer"
)

const (
	envNoColor       = "NO_COLOR"
	envSprintNoColor = "SPRINT_NO_COLOR"
	envSprintDebug   = "SPRINT_DEBUG"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// setupHelper loads the config and opens the local database. The caller
// owns the returned client.
func setupHelper(ctx *cli.Context) (*config.Config, *store.Client, error) {
	cfg, err := config.New(
		config.WithViperConfig(config.ConfigFilePath()),
	)
	if err != nil {
		return nil, nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	if ctx.Int("minutes") > 0 {
		cfg.Sprint.DefaultMinutes = ctx.Int("minutes")
	}

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return nil, nil, err
	}

	return cfg, db, nil
}

// promptForSprint collects the subject and duration interactively when
// they were not given on the command line.
func promptForSprint(cfg *config.Config, subject *string, minutes *int) error {
	options := make([]huh.Option[int], len(cfg.Sprint.Presets))
	for i, p := range cfg.Sprint.Presets {
		options[i] = huh.NewOption(fmt.Sprintf("%d minutes", p), p)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What are you studying?").
				Value(subject),
			huh.NewSelect[int]().
				Title("For how long?").
				Options(options...).
				Value(minutes),
		),
	)

	return form.Run()
}

// runTimer hands the sprint over to the countdown TUI.
func runTimer(
	cfg *config.Config,
	db *store.Client,
	mgr *session.Manager,
) error {
	t := timer.New(db, cfg, mgr)
	defer t.Close()

	p := tea.NewProgram(t)

	_, err := p.Run()

	return err
}

// defaultAction starts a sprint, or reattaches to the one the user is
// already in.
func defaultAction(ctx *cli.Context) error {
	cfg, db, err := setupHelper(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	mgr := session.NewManager(
		db,
		cfg.User.ID,
		session.WithCue(timer.EndCue(cfg)),
	)

	err = mgr.Refresh()
	if err != nil {
		return err
	}

	if mgr.State() == session.Idle {
		subject := firstNonEmptyString(
			strings.TrimSpace(ctx.String("subject")),
			strings.TrimSpace(strings.Join(ctx.Args().Slice(), " ")),
		)
		minutes := cfg.Sprint.DefaultMinutes

		if subject == "" {
			err = promptForSprint(cfg, &subject, &minutes)
			if err != nil {
				return err
			}
		}

		_, err = mgr.Start(subject, minutes)
		if err != nil {
			return err
		}
	} else {
		pterm.Info.Printfln(
			"reattaching to %s",
			ui.Highlight(mgr.Sprint().Subject),
		)
	}

	return runTimer(cfg, db, mgr)
}

// joinAction joins an active sprint by id prefix and attaches the
// countdown to it.
func joinAction(ctx *cli.Context) error {
	prefix := strings.TrimSpace(ctx.Args().First())
	if prefix == "" {
		return errSprintIDRequired
	}

	cfg, db, err := setupHelper(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	sprint, err := db.FindSprint(prefix)
	if err != nil {
		return err
	}

	if sprint.Terminal() {
		return errSprintOver
	}

	feed := presence.NewFeed(db, cfg.User.ID)

	res, err := feed.Join(sprint.ID)
	if err != nil {
		return err
	}

	if res == presence.AlreadyJoined {
		pterm.Info.Printfln(
			"you are already in %s",
			ui.Highlight(sprint.Subject),
		)
	} else {
		pterm.Success.Printfln("joined %s", ui.Highlight(sprint.Subject))
	}

	mgr := session.NewManager(
		db,
		cfg.User.ID,
		session.WithCue(timer.EndCue(cfg)),
	)

	err = mgr.Refresh()
	if err != nil {
		return err
	}

	return runTimer(cfg, db, mgr)
}

func feedTable(entries []presence.Entry) string {
	tableBody := make([][]string, len(entries))

	for i, e := range entries {
		joined := ""
		if e.Joined {
			joined = ui.Green("yes")
		}

		// sprints in their final minute show up red
		remaining := ui.Yellow(e.RemainingLabel)
		if e.Remaining < time.Minute {
			remaining = ui.Red(e.RemainingLabel)
		}

		tableBody[i] = []string{
			presence.ShortID(e.ID),
			e.Subject,
			remaining,
			strconv.Itoa(e.Participants),
			joined,
		}
	}

	tableBody = append([][]string{
		{"ID", "SUBJECT", "REMAINING", "STUDYING", "JOINED"},
	}, tableBody...)

	var b strings.Builder

	ui.PrintTable(tableBody, &b)

	return b.String()
}

// feedAction lists everyone's active sprints, once or continuously.
func feedAction(ctx *cli.Context) error {
	cfg, db, err := setupHelper(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	feed := presence.NewFeed(db, cfg.User.ID)

	err = feed.Refresh()
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		b, err := json.Marshal(feed.Entries())
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	if !ctx.Bool("watch") {
		fmt.Fprint(os.Stdout, feedTable(feed.Entries()))
		return nil
	}

	area, err := pterm.DefaultArea.Start(feedTable(feed.Entries()))
	if err != nil {
		return err
	}
	defer area.Stop()

	feed.Run(ctx.Context, func(err error) {
		if err != nil {
			slog.Warn("feed refresh failed", slog.Any("error", err))
			return
		}

		area.Update(feedTable(feed.Entries()))
	})

	return nil
}

// streakAction reports the user's study streak.
func streakAction(ctx *cli.Context) error {
	cfg, db, err := setupHelper(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	streak, err := db.Streak(cfg.User.ID)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		b, err := json.Marshal(streak)
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	if streak == nil {
		pterm.Info.Println("No sprints yet. Start one to begin a streak!")
		return nil
	}

	ui.PrintTable(streakTable(streak), os.Stdout)

	return nil
}

func streakTable(streak *models.Streak) [][]string {
	return [][]string{
		{"CURRENT", "LONGEST", "TOTAL SPRINTS", "LAST STUDY DATE"},
		{
			ui.Cyan(fmt.Sprintf("%d days", streak.Current)),
			fmt.Sprintf("%d days", streak.Longest),
			strconv.Itoa(streak.TotalSprints),
			streak.LastStudyDate,
		},
	}
}

// serveAction exposes the feed over HTTP.
func serveAction(ctx *cli.Context) error {
	cfg, db, err := setupHelper(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	feed := presence.NewFeed(db, cfg.User.ID)

	return presence.Serve(feed, ctx.Uint("port"))
}

// setupAction provisions the local database.
func setupAction(_ *cli.Context) error {
	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.Setup()
	if err != nil {
		return err
	}

	pterm.Success.Println("sprint is ready to go")

	return nil
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if SPRINT_NO_COLOR is set
	if _, exists := os.LookupEnv(envSprintNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	config.InitializePaths()

	_, debug := os.LookupEnv(envSprintDebug)
	config.InitLogger(debug)

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting sprint")

	return nil
}
