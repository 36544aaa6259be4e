package manifest

import "fmt"

// ParseError reports a manifest file that could not be evaluated or
// decoded. It wraps the interpreter or decoder error.
type ParseError struct {
	Path   string
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("manifest: parse %s manifest: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("manifest: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
