package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ogunleye/sprint/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the sprint app instance.
func Get() *cli.App {
	sprintApp := &cli.App{
		Name: "sprint",
		Usage: `
		Sprint is a social study timer for the command-line. Start a focused
		study sprint, see who else is studying right now, join them, and keep
		a daily streak going.`,
		UsageText:            "[SUBJECT] [COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:      "join",
				Usage:     "Join an active sprint by its id (a unique prefix is enough)",
				UsageText: "sprint join [ID]",
				Action:    joinAction,
			},
			{
				Name:   "feed",
				Usage:  "List everyone's active sprints",
				Action: feedAction,
				Flags: []cli.Flag{
					jsonFlag,
					watchFlag,
				},
			},
			{
				Name:   "streak",
				Usage:  "Show your study streak",
				Action: streakAction,
				Flags: []cli.Flag{
					jsonFlag,
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the sprint feed over HTTP",
				Action: serveAction,
				Flags: []cli.Flag{
					portFlag,
				},
			},
			{
				Name:   "setup",
				Usage:  "Provision the local database",
				Action: setupAction,
			},
		},
		Flags: []cli.Flag{
			subjectFlag,
			minutesFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return sprintApp
}
