package app

import "github.com/urfave/cli/v2"

var (
	subjectFlag = &cli.StringFlag{
		Name:    "subject",
		Aliases: []string{"s"},
		Usage:   "What the sprint is about",
	}

	minutesFlag = &cli.IntFlag{
		Name:    "minutes",
		Aliases: []string{"m"},
		Usage:   "Sprint duration in minutes (default: 25)",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output in JSON format",
	}

	watchFlag = &cli.BoolFlag{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "Keep the feed on screen and refresh it as sprints change",
	}

	portFlag = &cli.UintFlag{
		Name:  "port",
		Usage: "Specify the port for the feed server",
		Value: 2323,
	}
)
