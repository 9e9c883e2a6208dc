package common

import (
	"github.com/phpdocbook/docbook/internal/ui/bindings"
	"github.com/phpdocbook/docbook/internal/ui/layout"
	"github.com/phpdocbook/docbook/internal/ui/render"
)

// Screen is one view the UI can show inside the frame border.
//
// ViewRect must paint every cell of box, must not block and must not mutate
// state shared with other screens. The whole frame is redrawn every cycle.
type Screen interface {
	ViewRect(dl *render.DisplayContext, box layout.Box)
	Scope() bindings.Scope
}
