package envctx

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"strings"

	"dotkit/internal/shellrc"
)

// Context is the session identity: the values the shell initializer
// exports, resolved in-process. Fields are set at construction and never
// mutated.
type Context struct {
	UID      string
	GID      string
	Username string
	Groups   []string
	Editor   string

	listCommand []string
}

// Option configures a Context during New.
type Option func(*Context)

// WithEditor overrides the pinned editor.
func WithEditor(editor string) Option {
	return func(c *Context) {
		c.Editor = editor
	}
}

// WithListCommand overrides the command ChangeAndList runs after a
// successful directory change.
func WithListCommand(argv ...string) Option {
	return func(c *Context) {
		c.listCommand = argv
	}
}

// New queries the system identity once and returns the immutable
// context. Group ids that do not resolve to a name keep their numeric
// form.
func New(opts ...Option) (*Context, error) {
	u, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("envctx: resolve current user: %w", err)
	}

	ids, err := u.GroupIds()
	if err != nil {
		return nil, fmt.Errorf("envctx: resolve group list: %w", err)
	}
	groups := make([]string, 0, len(ids))
	for _, id := range ids {
		g, err := user.LookupGroupId(id)
		if err != nil {
			groups = append(groups, id)
			continue
		}
		groups = append(groups, g.Name)
	}

	c := &Context{
		UID:      u.Uid,
		GID:      u.Gid,
		Username: u.Username,
		Groups:   groups,
		Editor:   shellrc.DefaultEditor,
	}

	if list, ok := shellrc.DefaultScript().AliasCommand(shellrc.ListAlias); ok {
		c.listCommand = strings.Fields(list)
	}

	for _, opt := range opts {
		opt(c)
	}

	if len(c.listCommand) == 0 {
		return nil, fmt.Errorf("envctx: empty list command")
	}

	return c, nil
}

// Exports returns the five exports in the order the shell initializer
// defines them, with values resolved from this context.
func (c *Context) Exports() []shellrc.Export {
	return []shellrc.Export{
		{Name: shellrc.EnvUID, Value: c.UID},
		{Name: shellrc.EnvGID, Value: c.GID},
		{Name: shellrc.EnvName, Value: c.Username},
		{Name: shellrc.EnvGroups, Value: strings.Join(c.Groups, " ")},
		{Name: shellrc.EnvEditor, Value: c.Editor},
	}
}

// Environ returns base with the context exports applied. Existing
// entries for the managed names are replaced, everything else passes
// through unchanged.
func (c *Context) Environ(base []string) []string {
	exports := c.Exports()
	managed := make(map[string]bool, len(exports))
	for _, e := range exports {
		managed[e.Name] = true
	}

	env := make([]string, 0, len(base)+len(exports))
	for _, kv := range base {
		if i := strings.IndexByte(kv, '='); i >= 0 && managed[kv[:i]] {
			continue
		}
		env = append(env, kv)
	}
	for _, e := range exports {
		env = append(env, e.Name+"="+e.Value)
	}
	return env
}

// Command builds an *exec.Cmd whose environment carries the context
// exports on top of the current process environment.
func (c *Context) Command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = c.Environ(os.Environ())
	return cmd
}
