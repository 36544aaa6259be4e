package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/spf13/cobra"

	"dotkit/internal/shellrc"
)

// chromaStyleName colors the highlighted script; falls back to the
// chroma default when the style is not compiled in.
const chromaStyleName = "tokyonight-night"

var renderColor bool

// renderCmd emits the shell initialization script.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Emit the shell initialization script",
	Long: `Render writes the managed shell initializer to stdout: the system
bashrc guard, the alias table, the cl function, and the identity
exports. The output is deterministic and contains only definitions,
so sourcing it repeatedly leaves the session unchanged.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderColor, "color", false, "Syntax-highlight the script for terminals")
}

func runRender(cmd *cobra.Command, args []string) error {
	var buf bytes.Buffer
	if err := shellrc.DefaultScript().Render(&buf); err != nil {
		return err
	}

	if !renderColor {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
	return highlightShell(os.Stdout, buf.String())
}

// highlightShell writes source through the bash lexer and a 256-color
// terminal formatter.
func highlightShell(w io.Writer, source string) error {
	lexer := lexers.Get("bash")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return fmt.Errorf("highlight script: %w", err)
	}
	return formatters.Get("terminal256").Format(w, styles.Get(chromaStyleName), it)
}
