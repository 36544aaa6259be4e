package envctx

import (
	"context"
	"io"
	"os"
)

// ChangeAndList changes the working directory to dir and lists the
// result. A failed change short-circuits: no listing runs, and the
// system error is returned as-is so the caller surfaces nothing beyond
// it. The listing subprocess runs with the context environment, writing
// to stdout and stderr.
func (c *Context) ChangeAndList(ctx context.Context, dir string, stdout, stderr io.Writer) error {
	if err := os.Chdir(dir); err != nil {
		return err
	}

	cmd := c.Command(ctx, c.listCommand[0], c.listCommand[1:]...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}
