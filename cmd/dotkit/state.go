package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dotkit/internal/state"
)

var stateQuery string

// stateCmd inspects and clears the sync state file.
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect the sync state file",
	Long: `The sync state file records, per source file, the content hash at the
last sync, when it happened, why the file was picked up, and the run
that wrote it. Sync uses it to skip files that are still in sync.`,
}

// stateShowCmd prints the recorded state.
var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the recorded sync state",
	Args:  cobra.NoArgs,
	RunE:  runStateShow,
}

// stateClearCmd drops every recorded entry.
var stateClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all sync states",
	Args:  cobra.NoArgs,
	RunE:  runStateClear,
}

func init() {
	stateShowCmd.Flags().StringVar(&stateQuery, "query", "", "Show only the value at this dotted path (escape literal dots with \\)")
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateClearCmd)
}

func runStateShow(cmd *cobra.Command, args []string) error {
	store, err := state.Load(cfg.Paths().State)
	if err != nil {
		return err
	}

	if stateQuery != "" {
		value, ok := store.Query(stateQuery)
		if !ok {
			return fmt.Errorf("state: nothing recorded at %q", stateQuery)
		}
		fmt.Println(value)
		return nil
	}

	if store.Empty() {
		fmt.Println("There is no sync state available.")
		return nil
	}

	pretty, err := store.Pretty()
	if err != nil {
		return err
	}
	fmt.Println(headingStyle.Render("Current sync state") + dimStyle.Render(" ("+store.Path()+")"))
	fmt.Println(string(pretty))
	return nil
}

func runStateClear(cmd *cobra.Command, args []string) error {
	store, err := state.Load(cfg.Paths().State)
	if err != nil {
		return err
	}

	if store.Empty() {
		fmt.Println("There is no sync state to clear.")
		return nil
	}

	store.Clear()
	if err := store.Save(); err != nil {
		return err
	}
	fmt.Println("All sync states have been cleared.")
	return nil
}
