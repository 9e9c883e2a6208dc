package bindings

import (
	"fmt"
)

type Action string

type Scope string

// Binding maps one or more keys to an action in a scope.
type Binding struct {
	Action Action
	Scope  Scope
	Key    []string
	Desc   string
}

func (b Binding) validate() error {
	if b.Action == "" {
		return fmt.Errorf("binding action is required")
	}
	if b.Scope == "" {
		return fmt.Errorf("binding scope is required")
	}
	if len(b.Key) == 0 {
		return fmt.Errorf("binding %q in scope %q must set at least one key", b.Action, b.Scope)
	}
	for _, key := range b.Key {
		if key == "" {
			return fmt.Errorf("binding %q in scope %q contains empty key", b.Action, b.Scope)
		}
	}
	return nil
}

func ValidateBindings(bindings []Binding) error {
	for i, binding := range bindings {
		if err := binding.validate(); err != nil {
			return fmt.Errorf("invalid binding at index %d: %w", i, err)
		}
	}
	return nil
}
