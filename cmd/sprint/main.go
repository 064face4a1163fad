package main

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/ogunleye/sprint/app"
	"github.com/ogunleye/sprint/internal/apperr"
	"github.com/ogunleye/sprint/internal/ui"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	err := run(os.Args)
	if err == nil {
		return
	}

	if apperr.KindOf(err) == apperr.Config {
		ui.Banner("Setup required", err.Error())
	} else {
		pterm.Error.Println(err)
	}

	os.Exit(1)
}
