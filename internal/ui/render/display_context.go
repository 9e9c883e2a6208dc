package render

import (
	"cmp"
	"slices"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/phpdocbook/docbook/internal/ui/layout"
)

// DisplayContext collects the draws and effects of one frame. Nothing touches
// the buffer until Render, which replays them by Z-index and then by the
// order they were added.
type DisplayContext struct {
	ops []op
}

// op is either a draw or an effect.
type op struct {
	z      int
	seq    int
	draw   *Draw
	effect Effect
}

func NewDisplayContext() *DisplayContext {
	return &DisplayContext{ops: make([]op, 0, 32)}
}

func (dl *DisplayContext) push(o op) {
	o.seq = len(dl.ops)
	dl.ops = append(dl.ops, o)
}

// AddDraw queues content, an ANSI string, to be drawn inside rect.
func (dl *DisplayContext) AddDraw(rect layout.Rectangle, content string, z int) {
	dl.push(op{z: z, draw: &Draw{Rect: rect, Content: content, Z: z}})
}

// AddFill fills a rectangle with the provided rune and style.
func (dl *DisplayContext) AddFill(rect layout.Rectangle, ch rune, style lipgloss.Style, z int) {
	if rect.Empty() {
		return
	}
	dl.AddEffect(FillEffect{Rect: rect, Char: ch, Style: lipglossToStyle(style), Z: z})
}

// AddBorder strokes the edge cells of rect with the glyphs of border.
func (dl *DisplayContext) AddBorder(rect layout.Rectangle, border lipgloss.Border, style lipgloss.Style, z int) {
	if rect.Empty() {
		return
	}
	dl.AddEffect(BorderEffect{Rect: rect, Border: border, Style: lipglossToStyle(style), Z: z})
}

func (dl *DisplayContext) AddEffect(effect Effect) {
	dl.push(op{z: effect.GetZ(), effect: effect})
}

// Clear drops every queued operation so the context can be reused.
func (dl *DisplayContext) Clear() {
	dl.ops = dl.ops[:0]
}

// Render replays the queued operations onto buf. A fill added before a draw
// on the same layer paints underneath it.
func (dl *DisplayContext) Render(buf uv.Screen) {
	ordered := slices.Clone(dl.ops)
	slices.SortStableFunc(ordered, func(a, b op) int {
		if c := cmp.Compare(a.z, b.z); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	for _, o := range ordered {
		if o.draw != nil {
			uv.NewStyledString(o.draw.Content).Draw(buf, o.draw.Rect)
			continue
		}
		o.effect.Apply(buf)
	}
}

// Len returns the number of queued operations.
func (dl *DisplayContext) Len() int {
	return len(dl.ops)
}
