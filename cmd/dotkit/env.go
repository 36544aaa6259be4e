package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dotkit/internal/envctx"
)

var envExport bool

// envCmd prints the environment context.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the session environment context",
	Long: `Env resolves the session identity (uid, gid, username, group list)
and the pinned editor, the same values the shell initializer exports,
and prints them. With --export the output is eval-able shell text.`,
	Args: cobra.NoArgs,
	RunE: runEnv,
}

func init() {
	envCmd.Flags().BoolVar(&envExport, "export", false, "Print export statements instead of name=value pairs")
}

func runEnv(cmd *cobra.Command, args []string) error {
	c, err := envctx.New()
	if err != nil {
		return err
	}

	for _, e := range c.Exports() {
		if envExport {
			fmt.Printf("export %s=%s\n", e.Name, shellQuote(e.Value))
			continue
		}
		fmt.Printf("%s=%s\n", e.Name, e.Value)
	}
	return nil
}

// shellQuote single-quotes a literal value for shell consumption.
func shellQuote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}
