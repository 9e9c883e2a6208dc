package layout

import uv "github.com/charmbracelet/ultraviolet"

// Rectangle is a region of the cell grid in absolute coordinates.
type Rectangle = uv.Rectangle

// Rect creates a rectangle from its origin and size.
func Rect(x, y, width, height int) Rectangle {
	return uv.Rect(x, y, width, height)
}

// Box is a rectangle that can be carved into child boxes.
type Box struct {
	R Rectangle
}

func NewBox(r Rectangle) Box {
	return Box{R: r}
}

// Empty reports whether the box has no drawable cells.
func (b Box) Empty() bool {
	return b.R.Dx() <= 0 || b.R.Dy() <= 0
}

// Inset shrinks the box by n cells on every side.
// A box too small to shrink collapses to an empty box at its center.
func (b Box) Inset(n int) Box {
	r := b.R
	if r.Dx() <= 2*n || r.Dy() <= 2*n {
		cx := r.Min.X + r.Dx()/2
		cy := r.Min.Y + r.Dy()/2
		return Box{R: Rect(cx, cy, 0, 0)}
	}
	return Box{R: Rect(r.Min.X+n, r.Min.Y+n, r.Dx()-2*n, r.Dy()-2*n)}
}

// CenterLine returns a one-row box of the given width horizontally centered
// on row y of the box. The width is clamped to the box width.
func (b Box) CenterLine(y, width int) Box {
	if width > b.R.Dx() {
		width = b.R.Dx()
	}
	if width < 0 {
		width = 0
	}
	x := b.R.Min.X + (b.R.Dx()-width)/2
	return Box{R: Rect(x, y, width, 1)}
}

// V splits the box into rows.
func (b Box) V(specs ...Spec) []Box {
	sizes := distribute(b.R.Dy(), specs)
	boxes := make([]Box, len(sizes))
	y := b.R.Min.Y
	for i, size := range sizes {
		boxes[i] = Box{R: Rect(b.R.Min.X, y, b.R.Dx(), size)}
		y += size
	}
	return boxes
}
