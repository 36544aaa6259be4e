package manifest

import (
	"fmt"
	"reflect"
	"strconv"
)

// Divergence is one difference between two manifests for the same
// identifier.
type Divergence struct {
	Identifier string
	Field      string
	A, B       string
}

func (d Divergence) String() string {
	return fmt.Sprintf("%s: %s %s / %s", d.Identifier, d.Field, d.A, d.B)
}

// Diff reports per-identifier divergence between two manifests. It exists
// to reconcile drifted copies of the same plugin list back into one
// manifest with profiles: every flag, option, and position disagreement is
// listed so nothing is lost in the merge.
func Diff(a, b *Manifest) []Divergence {
	var divs []Divergence

	posB := make(map[string]int, len(b.Plugins))
	for i, d := range b.Plugins {
		posB[d.Identifier] = i
	}

	seen := make(map[string]bool, len(a.Plugins))
	for i, d := range a.Plugins {
		seen[d.Identifier] = true
		j, ok := posB[d.Identifier]
		if !ok {
			divs = append(divs, Divergence{d.Identifier, "presence", "present", "absent"})
			continue
		}
		other := b.Plugins[j]
		if d.Lazy != other.Lazy {
			divs = append(divs, Divergence{d.Identifier, "lazy", strconv.FormatBool(d.Lazy), strconv.FormatBool(other.Lazy)})
		}
		if d.Priority != other.Priority {
			divs = append(divs, Divergence{d.Identifier, "priority", strconv.Itoa(d.Priority), strconv.Itoa(other.Priority)})
		}
		if d.Activate != other.Activate {
			divs = append(divs, Divergence{d.Identifier, "activate", strconv.FormatBool(d.Activate), strconv.FormatBool(other.Activate)})
		}
		if !reflect.DeepEqual(d.Options, other.Options) {
			divs = append(divs, Divergence{d.Identifier, "options", renderOptions(d.Options), renderOptions(other.Options)})
		}
		if i != j {
			divs = append(divs, Divergence{d.Identifier, "position", strconv.Itoa(i + 1), strconv.Itoa(j + 1)})
		}
	}

	for _, d := range b.Plugins {
		if !seen[d.Identifier] {
			divs = append(divs, Divergence{d.Identifier, "presence", "absent", "present"})
		}
	}

	return divs
}

func renderOptions(opts map[string]any) string {
	if len(opts) == 0 {
		return "none"
	}
	// fmt prints map keys in sorted order, so the rendering is stable.
	return fmt.Sprintf("%v", opts)
}
