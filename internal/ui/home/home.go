package home

import (
	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/phpdocbook/docbook/internal/ui/bindings"
	"github.com/phpdocbook/docbook/internal/ui/common"
	"github.com/phpdocbook/docbook/internal/ui/layout"
	"github.com/phpdocbook/docbook/internal/ui/render"
	"github.com/phpdocbook/docbook/internal/version"
)

const tagline = "Browse the PHP manual from your terminal"

// Model is the landing screen shown when the UI starts.
type Model struct {
	keys   []key.Binding
	help   help.Model
	styles styles
}

type styles struct {
	background lipgloss.Style
	heading    lipgloss.Style
	tagline    lipgloss.Style
}

var _ common.Screen = (*Model)(nil)

// New creates the home screen. keys are shown in the help footer.
func New(palette *common.Palette, keys []key.Binding) *Model {
	h := help.New()
	helpStyle := palette.Get("home help")
	h.Styles.ShortKey = helpStyle.Bold(true)
	h.Styles.ShortDesc = helpStyle
	h.Styles.ShortSeparator = helpStyle

	return &Model{
		keys: keys,
		help: h,
		styles: styles{
			background: palette.Get("home"),
			heading:    palette.Get("home heading"),
			tagline:    palette.Get("home tagline"),
		},
	}
}

func (m *Model) Scope() bindings.Scope {
	return bindings.ScopeHome
}

func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	if box.Empty() {
		return
	}

	dl.AddFill(box.R, ' ', m.styles.background, 0)

	rows := box.V(
		layout.Fill(1),
		layout.Fixed(1),
		layout.Fixed(1),
		layout.Fixed(1),
		layout.Fill(1),
		layout.Fixed(1),
	)
	if tb, text := centered(dl, rows[1], version.Product); tb != nil {
		tb.Styled(text, m.styles.heading).Done()
	}
	if tb, text := centered(dl, rows[3], tagline); tb != nil {
		tb.Styled(text, m.styles.tagline).Done()
	}
	// help output is already styled
	if tb, text := centered(dl, rows[5], m.help.ShortHelpView(m.keys)); tb != nil {
		tb.Write(text).Done()
	}
}

// centered truncates text to the width of row and returns a builder placed
// so it lands centred on the first line. It returns nil when nothing fits.
func centered(dl *render.DisplayContext, row layout.Box, text string) (*render.TextBuilder, string) {
	if row.Empty() || text == "" {
		return nil, ""
	}
	text = ansi.Truncate(text, row.R.Dx(), "…")
	line := row.CenterLine(row.R.Min.Y, ansi.StringWidth(text))
	return dl.Text(line.R.Min.X, line.R.Min.Y, 1), text
}
