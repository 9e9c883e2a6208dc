package render

import (
	"image/color"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/phpdocbook/docbook/internal/ui/layout"
)

// Effect is the interface that all effect operations must implement.
// Effects modify cells of the buffer directly instead of drawing a string.
type Effect interface {
	// Apply applies the effect to the buffer
	Apply(buf uv.Screen)
	// GetZ returns the Z-index for layering (higher Z renders later)
	GetZ() int
	// GetRect returns the rectangle this effect applies to
	GetRect() layout.Rectangle
}

// FillEffect overwrites every cell of Rect with Char.
type FillEffect struct {
	Rect  layout.Rectangle
	Char  rune
	Style uv.Style
	Z     int
}

func (e FillEffect) Apply(buf uv.Screen) {
	cell := &uv.Cell{
		Content: string(e.Char),
		Width:   1,
		Style:   e.Style,
	}
	bounds := buf.Bounds().Intersect(e.Rect)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			buf.SetCell(x, y, cell)
		}
	}
}

func (e FillEffect) GetZ() int                 { return e.Z }
func (e FillEffect) GetRect() layout.Rectangle { return e.Rect }

// BorderEffect strokes the outermost cells of Rect. A one-row or one-column
// rect gets a plain line without corners.
type BorderEffect struct {
	Rect   layout.Rectangle
	Border lipgloss.Border
	Style  uv.Style
	Z      int
}

func (e BorderEffect) Apply(buf uv.Screen) {
	r := buf.Bounds().Intersect(e.Rect)
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return
	}
	top, bottom := r.Min.Y, r.Max.Y-1
	left, right := r.Min.X, r.Max.X-1

	set := func(x, y int, glyph string) {
		if glyph == "" {
			glyph = " "
		}
		buf.SetCell(x, y, &uv.Cell{Content: glyph, Width: 1, Style: e.Style})
	}

	for x := left; x <= right; x++ {
		set(x, top, e.Border.Top)
		if bottom != top {
			set(x, bottom, e.Border.Bottom)
		}
	}
	if top == bottom {
		return
	}
	for y := top + 1; y < bottom; y++ {
		set(left, y, e.Border.Left)
		if right != left {
			set(right, y, e.Border.Right)
		}
	}
	if left == right {
		set(left, top, e.Border.Left)
		set(left, bottom, e.Border.Left)
		return
	}
	set(left, top, e.Border.TopLeft)
	set(right, top, e.Border.TopRight)
	set(left, bottom, e.Border.BottomLeft)
	set(right, bottom, e.Border.BottomRight)
}

func (e BorderEffect) GetZ() int                 { return e.Z }
func (e BorderEffect) GetRect() layout.Rectangle { return e.Rect }

// cellColor returns c as a cell color, or nil when lipgloss reports no color.
func cellColor(c color.Color) ansi.Color {
	if _, none := c.(lipgloss.NoColor); none {
		return nil
	}
	if ac, ok := c.(ansi.Color); ok {
		return ac
	}
	return nil
}

func lipglossToStyle(ls lipgloss.Style) uv.Style {
	cs := uv.Style{
		Fg: cellColor(ls.GetForeground()),
		Bg: cellColor(ls.GetBackground()),
	}
	for _, a := range []struct {
		on   bool
		attr uint8
	}{
		{ls.GetBold(), uv.AttrBold},
		{ls.GetFaint(), uv.AttrFaint},
		{ls.GetItalic(), uv.AttrItalic},
		{ls.GetStrikethrough(), uv.AttrStrikethrough},
		{ls.GetReverse(), uv.AttrReverse},
	} {
		if a.on {
			cs.Attrs |= a.attr
		}
	}
	if ls.GetUnderline() {
		cs.Underline = uv.UnderlineSingle
	}
	return cs
}
