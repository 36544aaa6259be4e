package manifest

import "fmt"

// Problem is a manifest finding that does not fail validation.
type Problem struct {
	Identifier string
	Message    string
}

func (p Problem) String() string {
	if p.Identifier == "" {
		return p.Message
	}
	return p.Identifier + ": " + p.Message
}

// Lint reports findings a valid manifest can still carry: priorities that
// cannot take effect, competing activations, and profile overrides that
// target nothing.
func (m *Manifest) Lint() []Problem {
	var problems []Problem

	for _, d := range m.Plugins {
		if d.Lazy && d.Priority != DefaultPriority {
			problems = append(problems, Problem{
				Identifier: d.Identifier,
				Message:    "priority has no effect on a lazy plugin",
			})
		}
	}

	var activators []string
	for _, d := range m.Plugins {
		if !d.Lazy && d.Activate {
			activators = append(activators, d.Identifier)
		}
	}
	if len(activators) > 1 {
		problems = append(problems, Problem{
			Identifier: activators[len(activators)-1],
			Message:    fmt.Sprintf("%d descriptors activate; last declared wins", len(activators)),
		})
	}

	for _, name := range m.ProfileNames() {
		for _, o := range m.Profiles[name] {
			if _, ok := m.Lookup(o.Identifier); !ok {
				problems = append(problems, Problem{
					Identifier: o.Identifier,
					Message:    fmt.Sprintf("profile %q overrides an identifier not in the manifest", name),
				})
			}
		}
	}

	return problems
}
