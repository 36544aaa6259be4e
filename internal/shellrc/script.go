package shellrc

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors.
var (
	ErrEmptyName     = errors.New("shellrc: name is required")
	ErrInvalidName   = errors.New("shellrc: invalid shell identifier")
	ErrDuplicateName = errors.New("shellrc: duplicate definition")
	ErrEmptyCommand  = errors.New("shellrc: command is required")
	ErrSelfReference = errors.New("shellrc: export references its own value")
)

// namePattern validates alias, function, and variable names.
var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Alias is a shell text substitution invoked by a short name.
type Alias struct {
	Name    string
	Command string
}

// Export is an environment variable definition. The value may contain
// command substitutions; they run when the script is sourced.
type Export struct {
	Name  string
	Value string
}

// Function is a named shell procedure. Body statements render one per
// line inside the definition.
type Function struct {
	Name string
	Body []string
}

// Script is the declarative model of a shell initializer file.
type Script struct {
	// SourceGuards are files to source if they exist. A missing file is
	// a silent no-op, not an error.
	SourceGuards []string

	Aliases   []Alias
	Functions []Function
	Exports   []Export
}

// Validate checks that every record renders as a well-formed definition
// and that re-sourcing the script cannot accumulate state.
func (s *Script) Validate() error {
	seen := make(map[string]bool)

	for _, a := range s.Aliases {
		if a.Name == "" {
			return fmt.Errorf("%w (alias)", ErrEmptyName)
		}
		if !namePattern.MatchString(a.Name) {
			return fmt.Errorf("%w: alias %q", ErrInvalidName, a.Name)
		}
		if a.Command == "" {
			return fmt.Errorf("%w: alias %s", ErrEmptyCommand, a.Name)
		}
		if seen["alias/"+a.Name] {
			return fmt.Errorf("%w: alias %s", ErrDuplicateName, a.Name)
		}
		seen["alias/"+a.Name] = true
	}

	for _, f := range s.Functions {
		if f.Name == "" {
			return fmt.Errorf("%w (function)", ErrEmptyName)
		}
		if !namePattern.MatchString(f.Name) {
			return fmt.Errorf("%w: function %q", ErrInvalidName, f.Name)
		}
		if seen["func/"+f.Name] {
			return fmt.Errorf("%w: function %s", ErrDuplicateName, f.Name)
		}
		seen["func/"+f.Name] = true
	}

	for _, e := range s.Exports {
		if e.Name == "" {
			return fmt.Errorf("%w (export)", ErrEmptyName)
		}
		if !namePattern.MatchString(e.Name) {
			return fmt.Errorf("%w: export %q", ErrInvalidName, e.Name)
		}
		if seen["export/"+e.Name] {
			return fmt.Errorf("%w: export %s", ErrDuplicateName, e.Name)
		}
		seen["export/"+e.Name] = true

		// PATH="$PATH:..." style appends grow on every re-source.
		if referencesVariable(e.Value, e.Name) {
			return fmt.Errorf("%w: %s", ErrSelfReference, e.Name)
		}
	}

	return nil
}

// AliasCommand returns the command an alias name expands to.
func (s *Script) AliasCommand(name string) (string, bool) {
	for _, a := range s.Aliases {
		if a.Name == name {
			return a.Command, true
		}
	}
	return "", false
}

// ExportValue returns the value an export name is defined as.
func (s *Script) ExportValue(name string) (string, bool) {
	for _, e := range s.Exports {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// referencesVariable reports whether value expands the named variable,
// as $NAME or ${NAME}.
func referencesVariable(value, name string) bool {
	for i := 0; i < len(value); i++ {
		if value[i] != '$' {
			continue
		}
		rest := value[i+1:]
		if strings.HasPrefix(rest, name) {
			// $NAME must not continue into a longer identifier.
			tail := rest[len(name):]
			if tail == "" || !isNameByte(tail[0]) {
				return true
			}
		}
		if strings.HasPrefix(rest, "{"+name+"}") {
			return true
		}
	}
	return false
}

func isNameByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
