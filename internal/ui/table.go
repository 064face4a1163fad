package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// PrintTable renders rows as a boxed table. The first row is the header.
func PrintTable(data [][]string, writer io.Writer) {
	table := pterm.DefaultTable
	table.Boxed = true

	str, err := table.WithHasHeader().WithData(data).Srender()
	if err != nil {
		pterm.Error.Printfln("Failed to render table: %s", err.Error())
		return
	}

	fmt.Fprintln(writer, str)
}

// Banner prints a persistent, boxed notice for problems that will not go
// away on their own (e.g. the datastore has not been provisioned).
func Banner(title, body string) {
	pterm.DefaultBox.
		WithTitle(title).
		WithTitleTopCenter().
		Println(body)
}
