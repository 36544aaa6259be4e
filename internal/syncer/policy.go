package syncer

import (
	"errors"
	"fmt"
	"strings"
)

// Policy controls how a source file is written into its target.
type Policy string

const (
	// PolicyOverwrite replaces the target with the source content.
	PolicyOverwrite Policy = "overwrite"

	// PolicyAppend keeps the target and adds the source content after a
	// blank line.
	PolicyAppend Policy = "append"

	// PolicyPrependSource keeps the target and ensures its second line
	// sources the managed copy, so local edits survive while the managed
	// file stays authoritative.
	PolicyPrependSource Policy = "prepend-source"
)

// ErrUnknownPolicy is returned when a policy name cannot be parsed.
var ErrUnknownPolicy = errors.New("syncer: unknown policy")

// ParsePolicy converts a config or flag value into a Policy. The
// spelling "prepend_source_statement" from older config files is
// accepted as an alias for prepend-source.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(PolicyOverwrite):
		return PolicyOverwrite, nil
	case string(PolicyAppend):
		return PolicyAppend, nil
	case string(PolicyPrependSource), "prepend_source_statement":
		return PolicyPrependSource, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}
