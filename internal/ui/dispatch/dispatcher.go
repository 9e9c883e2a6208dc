package dispatch

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	"github.com/phpdocbook/docbook/internal/ui/bindings"
)

// ResolveResult is the outcome of resolving a key press.
type ResolveResult struct {
	Action   bindings.Action
	Scope    bindings.Scope
	Consumed bool
}

type entry struct {
	binding bindings.Binding
	key     key.Binding
}

// Dispatcher resolves key presses against active scopes and bindings.
type Dispatcher struct {
	bindings map[bindings.Scope][]entry
}

func NewDispatcher(availableBindings []bindings.Binding) (*Dispatcher, error) {
	if err := bindings.ValidateBindings(availableBindings); err != nil {
		return nil, err
	}

	d := &Dispatcher{bindings: make(map[bindings.Scope][]entry)}
	for _, binding := range availableBindings {
		d.bindings[binding.Scope] = append(d.bindings[binding.Scope], entry{
			binding: binding,
			key:     bindings.ToKeyBinding(binding),
		})
	}
	return d, nil
}

// Resolve applies dispatch rules for a key in the provided scope chain.
// Scopes must be ordered from innermost to outermost.
func (d *Dispatcher) Resolve(msg tea.KeyPressMsg, scopes []bindings.Scope) ResolveResult {
	if msg.String() == "" {
		return ResolveResult{}
	}

	for _, scope := range scopes {
		scopeBindings := d.bindings[scope]
		for i := len(scopeBindings) - 1; i >= 0; i-- {
			if key.Matches(msg, scopeBindings[i].key) {
				return ResolveResult{Action: scopeBindings[i].binding.Action, Scope: scope, Consumed: true}
			}
		}
	}

	return ResolveResult{}
}

// KeyBindings returns the bindings visible from the scope chain, innermost
// first, for rendering help. Keys shadowed by an inner scope are dropped.
func (d *Dispatcher) KeyBindings(scopes []bindings.Scope) []key.Binding {
	seen := map[string]struct{}{}
	var out []key.Binding
	for _, scope := range scopes {
		scopeBindings := d.bindings[scope]
		for i := len(scopeBindings) - 1; i >= 0; i-- {
			e := scopeBindings[i]
			var visible []string
			for _, k := range e.binding.Key {
				if _, ok := seen[k]; ok {
					continue
				}
				seen[k] = struct{}{}
				visible = append(visible, k)
			}
			if len(visible) == 0 {
				continue
			}
			b := e.binding
			b.Key = visible
			out = append(out, bindings.ToKeyBinding(b))
		}
	}
	return out
}
