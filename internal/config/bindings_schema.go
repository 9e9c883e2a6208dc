package config

import (
	"fmt"
	"strings"

	keybindings "github.com/phpdocbook/docbook/internal/ui/bindings"
)

// StringList allows TOML values to be specified as a string or array of strings.
type StringList []string

func (l *StringList) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		*l = StringList{v}
		return nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("expected string in list, got %T", item)
			}
			out = append(out, s)
		}
		*l = StringList(out)
		return nil
	default:
		return fmt.Errorf("expected string or list of strings, got %T", value)
	}
}

type BindingConfig struct {
	Action string     `toml:"action"`
	Key    StringList `toml:"key"`
	Scope  string     `toml:"scope"`
	Desc   string     `toml:"desc"`
}

func (c *Config) ValidateBindings() error {
	for i, binding := range c.Bindings {
		if strings.TrimSpace(binding.Action) == "" {
			return fmt.Errorf("bindings[%d]: action is required", i)
		}
		if strings.TrimSpace(binding.Scope) == "" {
			return fmt.Errorf("bindings[%d]: scope is required", i)
		}
	}
	runtimeBindings := BindingsToRuntime(c.Bindings)
	if err := keybindings.ValidateBindings(runtimeBindings); err != nil {
		return fmt.Errorf("bindings: %w", err)
	}
	registry := keybindings.NewRegistry(keybindings.BuiltinActions())
	for i, binding := range runtimeBindings {
		if err := registry.ValidateAction(binding.Action); err != nil {
			return fmt.Errorf("bindings[%d]: %w", i, err)
		}
	}
	return nil
}

// BindingsToRuntime converts config bindings to runtime bindings,
// skipping entries with empty scope or action.
func BindingsToRuntime(bindings []BindingConfig) []keybindings.Binding {
	out := make([]keybindings.Binding, 0, len(bindings))
	for _, binding := range bindings {
		scope := keybindings.Scope(strings.TrimSpace(binding.Scope))
		action := keybindings.Action(strings.TrimSpace(binding.Action))
		if scope == "" || action == "" {
			continue
		}
		out = append(out, keybindings.Binding{
			Action: action,
			Scope:  scope,
			Key:    append([]string(nil), binding.Key...),
			Desc:   binding.Desc,
		})
	}
	return out
}
