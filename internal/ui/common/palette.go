package common

import (
	"image/color"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/phpdocbook/docbook/internal/config"
)

// Palette resolves space separated selectors such as "home heading" to
// styles. A selector inherits from every contiguous run of its words, more
// specific runs first, so "home heading" picks up "home" and "heading" too.
type Palette struct {
	styles map[string]lipgloss.Style
	cache  map[string]lipgloss.Style
}

func NewPalette() *Palette {
	return &Palette{
		styles: make(map[string]lipgloss.Style),
		cache:  make(map[string]lipgloss.Style),
	}
}

func (p *Palette) Update(colors map[string]config.Color) {
	for selector, c := range colors {
		p.styles[strings.Join(strings.Fields(selector), " ")] = styleFrom(c)
	}
	clear(p.cache)
}

func (p *Palette) Get(selector string) lipgloss.Style {
	fields := strings.Fields(selector)
	key := strings.Join(fields, " ")
	if style, ok := p.cache[key]; ok {
		return style
	}

	style := lipgloss.NewStyle()
	for start := range fields {
		for end := len(fields); end > start; end-- {
			if s, ok := p.styles[strings.Join(fields[start:end], " ")]; ok {
				style = style.Inherit(s)
			}
		}
	}
	p.cache[key] = style
	return style
}

type attrSetter func(lipgloss.Style, bool) lipgloss.Style

func styleFrom(c config.Color) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c.Fg != "" {
		style = style.Foreground(parseColor(c.Fg))
	}
	if c.Bg != "" {
		style = style.Background(parseColor(c.Bg))
	}

	attrs := []struct {
		value *bool
		set   attrSetter
	}{
		{c.Bold, lipgloss.Style.Bold},
		{c.Italic, lipgloss.Style.Italic},
		{c.Underline, lipgloss.Style.Underline},
		{c.Strikethrough, lipgloss.Style.Strikethrough},
		{c.Reverse, lipgloss.Style.Reverse},
	}
	for _, attr := range attrs {
		if attr.value != nil {
			style = attr.set(style, *attr.value)
		}
	}
	return style
}

var namedColors = map[string]string{
	"black":          "0",
	"red":            "1",
	"green":          "2",
	"yellow":         "3",
	"blue":           "4",
	"magenta":        "5",
	"cyan":           "6",
	"white":          "7",
	"bright black":   "8",
	"bright red":     "9",
	"bright green":   "10",
	"bright yellow":  "11",
	"bright blue":    "12",
	"bright magenta": "13",
	"bright cyan":    "14",
	"bright white":   "15",
}

// parseColor accepts "#rrggbb", an ANSI 256 index, "ansi-color-N" or one of
// the sixteen named colors. Anything else is no color.
func parseColor(c string) color.Color {
	if len(c) == 7 && c[0] == '#' {
		return lipgloss.Color(c)
	}
	if code, ok := namedColors[c]; ok {
		return lipgloss.Color(code)
	}
	code := strings.TrimPrefix(c, "ansi-color-")
	if v, err := strconv.Atoi(code); err == nil && v >= 0 && v <= 255 {
		return lipgloss.Color(code)
	}
	return lipgloss.NoColor{}
}
