package common

import "charm.land/lipgloss/v2"

// BorderFor maps a configured border name to its glyph set. Unknown names,
// including the empty string, fall back to the plain border.
func BorderFor(name string) lipgloss.Border {
	switch name {
	case "rounded":
		return lipgloss.RoundedBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	default:
		return lipgloss.NormalBorder()
	}
}
