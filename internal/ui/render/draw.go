package render

import (
	"github.com/phpdocbook/docbook/internal/ui/layout"
)

// Draw represents a content rendering operation.
type Draw struct {
	Rect    layout.Rectangle // The area to draw in
	Content string           // Rendered ANSI string (from lipgloss, etc.)
	Z       int              // Z-index for layering (lower = back, higher = front)
}
