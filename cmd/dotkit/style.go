package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"dotkit/internal/syncer"
)

// Shared output styles. Color numbers follow the 256-color terminal
// palette.
var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func printPlan(plan *syncer.Plan) {
	if plan.Empty() {
		fmt.Println(okStyle.Render("Everything in sync.") + dimStyle.Render(fmt.Sprintf(" (%d files checked)", plan.Checked)))
		return
	}

	fmt.Println(headingStyle.Render(fmt.Sprintf("%d of %d files need syncing", len(plan.Actions), plan.Checked)))
	for _, a := range plan.Actions {
		fmt.Printf("  %s %s %s\n",
			pathStyle.Render(a.Rel),
			dimStyle.Render("["+string(a.Policy)+"]"),
			dimStyle.Render(string(a.Reason)))
	}
}

func printResult(res *syncer.Result) {
	printPlan(res.Plan)
	if res.Plan.Empty() {
		return
	}

	if res.DryRun {
		fmt.Println(warnStyle.Render("Dry run; nothing written."))
		return
	}

	for _, a := range res.Applied {
		fmt.Printf("%s %s\n", okStyle.Render("synced"), a.Rel)
	}
	for _, a := range res.Declined {
		fmt.Printf("%s %s %s\n", warnStyle.Render("skipped"), a.Rel, dimStyle.Render("(declined)"))
	}
}
