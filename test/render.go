package test

import (
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/phpdocbook/docbook/internal/ui/layout"
	"github.com/phpdocbook/docbook/internal/ui/render"
)

// RenderImmediate renders an immediate model into a fixed-size buffer.
func RenderImmediate(model interface {
	ViewRect(dl *render.DisplayContext, box layout.Box)
}, width, height int) string {
	dl := render.NewDisplayContext()
	box := layout.NewBox(layout.Rect(0, 0, width, height))
	model.ViewRect(dl, box)
	buf := uv.NewScreenBuffer(width, height)
	dl.Render(buf)
	return buf.Render()
}

// PlainLines strips styling from rendered output and splits it into rows.
func PlainLines(rendered string) []string {
	plain := strings.ReplaceAll(ansi.Strip(rendered), "\r", "")
	return strings.Split(plain, "\n")
}
