package wizard

import (
	"fmt"
)

// Step identifies one screen of a flow.
type Step string

// Guard reports why the form cannot leave its step yet. A nil result lets the
// wizard advance.
type Guard[F any] func(form *F) error

// Definition is the static shape of a flow: its ordered steps and the guard
// evaluated before leaving each of them. Steps without a guard always pass.
type Definition[F any] struct {
	Name   string
	Steps  []Step
	Guards map[Step]Guard[F]
}

// Validate checks that the definition has steps, that step names are unique,
// and that every guard belongs to a known step.
func (d Definition[F]) Validate() error {
	if len(d.Steps) == 0 {
		return fmt.Errorf("wizard %q: no steps", d.Name)
	}
	seen := make(map[Step]struct{}, len(d.Steps))
	for _, s := range d.Steps {
		if s == "" {
			return fmt.Errorf("wizard %q: blank step", d.Name)
		}
		if _, dup := seen[s]; dup {
			return fmt.Errorf("wizard %q: duplicate step %q", d.Name, s)
		}
		seen[s] = struct{}{}
	}
	for s := range d.Guards {
		if _, ok := seen[s]; !ok {
			return fmt.Errorf("wizard %q: guard for unknown step %q", d.Name, s)
		}
	}
	return nil
}

// IndexOf returns the position of s, or -1.
func (d Definition[F]) IndexOf(s Step) int {
	for i, step := range d.Steps {
		if step == s {
			return i
		}
	}
	return -1
}

// Terminal returns the last step of the flow.
func (d Definition[F]) Terminal() Step {
	if len(d.Steps) == 0 {
		return ""
	}
	return d.Steps[len(d.Steps)-1]
}
