package config

import (
	"slices"
	"strings"
)

// mergeBindings appends overlay to base. Each overlay binding first takes its
// keys away from earlier bindings in the same scope, dropping any binding it
// leaves without keys.
func mergeBindings(base []BindingConfig, overlay []BindingConfig) []BindingConfig {
	merged := slices.Clone(base)
	for _, user := range overlay {
		merged = shadowKeys(merged, user)
		merged = append(merged, user)
	}
	return merged
}

func shadowKeys(existing []BindingConfig, user BindingConfig) []BindingConfig {
	scope := strings.TrimSpace(user.Scope)
	if scope == "" || len(user.Key) == 0 {
		return existing
	}

	out := make([]BindingConfig, 0, len(existing))
	for _, binding := range existing {
		if strings.TrimSpace(binding.Scope) == scope && len(binding.Key) > 0 {
			binding.Key = slices.DeleteFunc(slices.Clone(binding.Key), func(key string) bool {
				return slices.Contains(user.Key, key)
			})
			if len(binding.Key) == 0 {
				continue
			}
		}
		out = append(out, binding)
	}
	return out
}
