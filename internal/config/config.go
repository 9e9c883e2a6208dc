package config

import (
	"embed"
	"fmt"
	"slices"
	"strings"
)

//go:embed default/*.toml
var configFS embed.FS

var validBorders = []string{"plain", "rounded", "thick", "double"}

type Config struct {
	UI       UIConfig        `toml:"ui"`
	Log      LogConfig       `toml:"log"`
	Bindings []BindingConfig `toml:"bindings"`
}

type UIConfig struct {
	Border string           `toml:"border"`
	Colors map[string]Color `toml:"colors"`
}

type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Color is either a bare color string or a table of style attributes.
// Unset attributes stay nil so an overlay does not reset them.
type Color struct {
	Fg            string `toml:"fg"`
	Bg            string `toml:"bg"`
	Bold          *bool  `toml:"bold"`
	Italic        *bool  `toml:"italic"`
	Underline     *bool  `toml:"underline"`
	Strikethrough *bool  `toml:"strikethrough"`
	Reverse       *bool  `toml:"reverse"`
}

func (c *Color) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		*c = Color{Fg: v}
		return nil
	case map[string]any:
		color := Color{}
		for key, raw := range v {
			switch key {
			case "fg", "bg":
				s, ok := raw.(string)
				if !ok {
					return fmt.Errorf("color %s: expected string, got %T", key, raw)
				}
				if key == "fg" {
					color.Fg = s
				} else {
					color.Bg = s
				}
			case "bold", "italic", "underline", "strikethrough", "reverse":
				b, ok := raw.(bool)
				if !ok {
					return fmt.Errorf("color %s: expected bool, got %T", key, raw)
				}
				switch key {
				case "bold":
					color.Bold = &b
				case "italic":
					color.Italic = &b
				case "underline":
					color.Underline = &b
				case "strikethrough":
					color.Strikethrough = &b
				case "reverse":
					color.Reverse = &b
				}
			default:
				return fmt.Errorf("color: unknown attribute %q", key)
			}
		}
		*c = color
		return nil
	default:
		return fmt.Errorf("color: expected string or table, got %T", value)
	}
}

func (c *Config) Validate() error {
	border := strings.TrimSpace(c.UI.Border)
	if border != "" && !slices.Contains(validBorders, border) {
		return fmt.Errorf("ui.border: unknown border %q (expected one of %s)", border, strings.Join(validBorders, ", "))
	}
	return c.ValidateBindings()
}
