package shellrc

import (
	"fmt"
	"io"
	"strings"
)

// header opens every rendered script.
const header = "# Managed by dotkit. Definitions only; safe to source repeatedly."

// Render validates the script and writes its shell text. Output is
// deterministic: fixed section order, declaration order within sections.
func (s *Script) Render(w io.Writer) error {
	if err := s.Validate(); err != nil {
		return err
	}
	_, err := io.WriteString(w, s.text())
	return err
}

// String renders the script, ignoring writer errors. It panics on an
// invalid script; validate first when the records are not trusted.
func (s *Script) String() string {
	if err := s.Validate(); err != nil {
		panic(err)
	}
	return s.text()
}

func (s *Script) text() string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")

	for _, path := range s.SourceGuards {
		fmt.Fprintf(&b, "\nif [ -f %s ]; then\n\t. %s\nfi\n", path, path)
	}

	if len(s.Aliases) > 0 {
		b.WriteString("\n")
		for _, a := range s.Aliases {
			fmt.Fprintf(&b, "alias %s=%s\n", a.Name, singleQuote(a.Command))
		}
	}

	for _, f := range s.Functions {
		fmt.Fprintf(&b, "\n%s() {\n", f.Name)
		for _, line := range f.Body {
			fmt.Fprintf(&b, "\t%s\n", line)
		}
		b.WriteString("}\n")
	}

	if len(s.Exports) > 0 {
		b.WriteString("\n")
		for _, e := range s.Exports {
			fmt.Fprintf(&b, "export %s=%s\n", e.Name, exportValue(e.Value))
		}
	}

	return b.String()
}

// singleQuote quotes for alias definitions: no expansion at definition
// time. Embedded single quotes close, escape, and reopen the quoting.
func singleQuote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}

// exportValue quotes an export value. Values carrying expansions are
// double-quoted so they expand when sourced; plain words stay bare.
func exportValue(v string) string {
	if strings.ContainsAny(v, "$`") {
		return `"` + v + `"`
	}
	if isPlainWord(v) {
		return v
	}
	return singleQuote(v)
}

func isPlainWord(v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		b := v[i]
		switch {
		case b >= 'a' && b <= 'z':
		case b >= 'A' && b <= 'Z':
		case b >= '0' && b <= '9':
		case b == '_' || b == '-' || b == '.' || b == '/' || b == ':':
		default:
			return false
		}
	}
	return true
}
