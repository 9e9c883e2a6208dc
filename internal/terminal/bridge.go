package terminal

import (
	tea "charm.land/bubbletea/v2"
)

// bridge is the bubbletea model. It owns no state: sizes and frames live on
// the Program and every input message is handed to the event stream.
type bridge struct {
	p *Program
}

func (b bridge) Init() tea.Cmd {
	return nil
}

func (b bridge) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case repaintMsg:
		return b, nil
	case tea.WindowSizeMsg:
		b.p.setSize(msg.Width, msg.Height)
	}
	b.p.forward(msg)
	return b, nil
}

func (b bridge) View() tea.View {
	v := tea.NewView(b.p.currentFrame())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}
