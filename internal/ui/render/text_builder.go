package render

import (
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/phpdocbook/docbook/internal/ui/layout"
)

// TextBuilder lays out styled segments left to right on a single row.
type TextBuilder struct {
	dl       *DisplayContext
	segments []textSegment
	x        int
	y        int
	z        int
}

type textSegment struct {
	text  string
	style lipgloss.Style
}

func (dl *DisplayContext) Text(x, y, z int) *TextBuilder {
	return &TextBuilder{
		dl: dl,
		x:  x,
		y:  y,
		z:  z,
	}
}

// Write queues text that already carries its own styling.
func (tb *TextBuilder) Write(text string) *TextBuilder {
	tb.segments = append(tb.segments, textSegment{text: text})
	return tb
}

func (tb *TextBuilder) Styled(text string, style lipgloss.Style) *TextBuilder {
	tb.segments = append(tb.segments, textSegment{text: text, style: style})
	return tb
}

func (tb *TextBuilder) Done() {
	x := tb.x

	for _, seg := range tb.segments {
		width := ansi.StringWidth(seg.text)
		if width == 0 {
			continue
		}

		segRect := layout.Rect(x, tb.y, width, 1)
		tb.dl.AddDraw(segRect, seg.style.Render(seg.text), tb.z)
		x += width
	}
}
