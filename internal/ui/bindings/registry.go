package bindings

import (
	"fmt"
	"slices"
	"strings"
)

// Registry is the set of actions bindings may refer to.
type Registry struct {
	actions []Action
}

func NewRegistry(actions []Action) *Registry {
	known := make([]Action, 0, len(actions))
	for _, action := range actions {
		if action != "" && !slices.Contains(known, action) {
			known = append(known, action)
		}
	}
	slices.Sort(known)
	return &Registry{actions: known}
}

func (r *Registry) Has(action Action) bool {
	if r == nil {
		return false
	}
	_, found := slices.BinarySearch(r.actions, action)
	return found
}

func (r *Registry) ValidateAction(action Action) error {
	if r.Has(action) {
		return nil
	}
	names := make([]string, 0, len(r.actions))
	for _, a := range r.actions {
		names = append(names, string(a))
	}
	return fmt.Errorf("unknown action %q (known: %s)", action, strings.Join(names, ", "))
}
