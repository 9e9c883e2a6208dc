package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/phpdocbook/docbook/internal/config"
	"github.com/phpdocbook/docbook/internal/logging"
	"github.com/phpdocbook/docbook/internal/terminal"
	"github.com/phpdocbook/docbook/internal/ui/bindings"
	"github.com/phpdocbook/docbook/internal/ui/common"
	"github.com/phpdocbook/docbook/internal/ui/dispatch"
	"github.com/phpdocbook/docbook/internal/ui/home"
	"github.com/phpdocbook/docbook/internal/ui/layout"
	"github.com/phpdocbook/docbook/internal/ui/render"
	"github.com/phpdocbook/docbook/internal/version"
)

// tickInterval bounds how long a state change can wait before it is drawn.
const tickInterval = 100 * time.Millisecond

// Model is the application state driven by Run.
type Model struct {
	running    bool
	screen     common.Screen
	dispatcher *dispatch.Dispatcher
	palette    *common.Palette
	border     lipgloss.Border
	title      string
	tick       time.Duration
	dl         *render.DisplayContext
}

// New builds the UI from cfg with the home screen selected.
func New(cfg *config.Config) (*Model, error) {
	dispatcher, err := dispatch.NewDispatcher(config.BindingsToRuntime(cfg.Bindings))
	if err != nil {
		return nil, fmt.Errorf("building key bindings: %w", err)
	}

	palette := common.NewPalette()
	palette.Update(cfg.UI.Colors)

	m := &Model{
		dispatcher: dispatcher,
		palette:    palette,
		border:     common.BorderFor(cfg.UI.Border),
		title:      version.Current(),
		tick:       tickInterval,
		dl:         render.NewDisplayContext(),
	}
	m.screen = home.New(palette, dispatcher.KeyBindings(scopesFor(bindings.ScopeHome)))
	return m, nil
}

// Running reports whether the loop will draw another frame.
func (m *Model) Running() bool {
	return m.running
}

// Run draws and waits in turn until a quit is requested, the event stream
// ends or ctx is cancelled. A draw failure is fatal.
func (m *Model) Run(ctx context.Context, term terminal.Terminal) error {
	m.running = true
	logging.Infof("ui loop started")
	defer logging.Infof("ui loop stopped")

	for m.running {
		if err := term.Draw(m.draw); err != nil {
			if errors.Is(err, terminal.ErrClosed) {
				m.running = false
				return nil
			}
			return fmt.Errorf("drawing frame: %w", err)
		}
		if err := m.handleEvents(ctx, term); err != nil {
			return err
		}
	}
	return nil
}

// handleEvents blocks until an event arrives or the tick elapses, whichever
// comes first.
func (m *Model) handleEvents(ctx context.Context, term terminal.Terminal) error {
	timer := time.NewTimer(m.tick)
	defer timer.Stop()

	select {
	case msg, ok := <-term.Events():
		if !ok {
			logging.Infof("event stream closed, quitting")
			m.running = false
			return backendErr(term)
		}
		m.onEvent(msg)
	case <-timer.C:
	case <-ctx.Done():
		m.running = false
		if errors.Is(ctx.Err(), context.Canceled) {
			logging.Infof("context canceled, quitting")
			return nil
		}
		return ctx.Err()
	}
	return nil
}

func backendErr(term terminal.Terminal) error {
	if t, ok := term.(interface{ Err() error }); ok {
		if err := t.Err(); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
	}
	return nil
}

func (m *Model) onEvent(msg tea.Msg) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if msg.IsRepeat {
			return
		}
		m.onKeyEvent(msg)
	case tea.MouseMsg, tea.WindowSizeMsg:
		// the next frame picks up a new size on its own
	}
}

func (m *Model) onKeyEvent(msg tea.KeyPressMsg) {
	result := m.dispatcher.Resolve(msg, scopesFor(m.screen.Scope()))
	if !result.Consumed {
		return
	}
	switch result.Action {
	case bindings.ActionQuit:
		if m.running {
			logging.Infof("quit requested by %q", msg.String())
		}
		m.running = false
	}
}

func scopesFor(screen bindings.Scope) []bindings.Scope {
	return []bindings.Scope{screen, bindings.ScopeUi}
}

func (m *Model) draw(frame terminal.Frame) {
	m.dl.Clear()
	m.ViewRect(m.dl, layout.NewBox(frame.Area))
	m.dl.Render(frame.Buffer)
}

// ViewRect paints the bordered frame with the title on its top edge and
// hands the interior to the current screen.
func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	if box.Empty() {
		return
	}
	dl.AddBorder(box.R, m.border, m.palette.Get("border"), 0)
	m.drawTitle(dl, box)

	inner := box.Inset(1)
	if inner.Empty() {
		return
	}
	m.screen.ViewRect(dl, inner)
}

func (m *Model) drawTitle(dl *render.DisplayContext, box layout.Box) {
	available := box.R.Dx() - 2
	if available <= 0 {
		return
	}
	title := ansi.Truncate(m.title, available, "")
	edge := layout.NewBox(layout.Rect(box.R.Min.X+1, box.R.Min.Y, available, 1))
	line := edge.CenterLine(box.R.Min.Y, ansi.StringWidth(title))
	dl.Text(line.R.Min.X, line.R.Min.Y, 1).Styled(title, m.palette.Get("title")).Done()
}
