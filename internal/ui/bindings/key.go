package bindings

import (
	"strings"

	"charm.land/bubbles/v2/key"
)

// ToKeyBinding converts b into a bubbles key binding used for matching and
// for the help line.
func ToKeyBinding(b Binding) key.Binding {
	keys := make([]string, 0, len(b.Key))
	for _, k := range b.Key {
		keys = append(keys, keyAliases(k)...)
	}
	desc := b.Desc
	if desc == "" {
		desc = string(b.Action)
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKeys(b.Key), desc),
	)
}

func helpKeys(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	// the help line only has room for the first two spellings
	if len(keys) > 2 {
		keys = keys[:2]
	}
	return strings.Join(keys, "/")
}

// keyAliases expands key into every keystroke string that should match it.
func keyAliases(key string) []string {
	if strings.EqualFold(key, "space") || key == " " {
		return []string{"space", " "}
	}
	return []string{key}
}
