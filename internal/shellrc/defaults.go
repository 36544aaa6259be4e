package shellrc

// Names of the identity exports the default script defines.
const (
	EnvUID    = "CURRENT_UID"
	EnvGID    = "CURRENT_GID"
	EnvName   = "CURRENT_NAME"
	EnvGroups = "CURRENT_GROUPS"
	EnvEditor = "EDITOR"
)

// DefaultEditor is exported as EDITOR regardless of any prior value.
const DefaultEditor = "vim"

// ListAlias names the long-listing alias; dotkit cl resolves it to run
// the listing step.
const ListAlias = "ll"

// DefaultScript returns the fixed session-start contract: the system
// bashrc guard, the alias table, the cl function, and the identity
// exports.
func DefaultScript() *Script {
	return &Script{
		SourceGuards: []string{"/etc/bashrc"},
		Aliases: []Alias{
			{Name: "ls", Command: "ls --color=auto"},
			{Name: "ll", Command: "ls -al"},
			{Name: "df", Command: "df -h"},
			{Name: "du", Command: "du -h"},
			{Name: "cls", Command: "clear"},
			{Name: "vi", Command: "vim"},
		},
		Functions: []Function{
			// cd failure short-circuits: no listing, the cd status and
			// message surface unchanged.
			{Name: "cl", Body: []string{`cd "$1" && ls -al`}},
		},
		Exports: []Export{
			{Name: EnvUID, Value: "$(id -u)"},
			{Name: EnvGID, Value: "$(id -g)"},
			{Name: EnvName, Value: "$(id -un)"},
			{Name: EnvGroups, Value: "$(id -Gn)"},
			{Name: EnvEditor, Value: DefaultEditor},
		},
	}
}
