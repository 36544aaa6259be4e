package main

import (
	"os"

	"github.com/spf13/cobra"

	"dotkit/internal/envctx"
)

// clCmd changes the working directory and lists it, the CLI form of
// the shell initializer's cl function.
var clCmd = &cobra.Command{
	Use:   "cl PATH",
	Short: "Change to a directory and list its contents",
	Long: `Cl changes the working directory to PATH and lists the result with
the long-listing command. A failed directory change short-circuits:
nothing is listed, and the command exits non-zero with only the
underlying system error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := envctx.New()
		if err != nil {
			return err
		}
		return c.ChangeAndList(cmd.Context(), args[0], os.Stdout, os.Stderr)
	},
}
