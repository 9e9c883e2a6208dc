package test

import (
	"strings"
	"sync"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/phpdocbook/docbook/internal/terminal"
	"github.com/phpdocbook/docbook/internal/ui/layout"
)

// FakeTerminal is an in-memory terminal.Terminal. Frames are recorded and
// events are fed by the test.
type FakeTerminal struct {
	width  int
	height int
	events chan tea.Msg

	mu      sync.Mutex
	frames  []string
	last    *uv.ScreenBuffer
	drawErr error
	err     error
	closed  bool
}

var _ terminal.Terminal = (*FakeTerminal)(nil)

func NewFakeTerminal(width, height int) *FakeTerminal {
	return &FakeTerminal{
		width:  width,
		height: height,
		events: make(chan tea.Msg, 16),
	}
}

func (f *FakeTerminal) Draw(fn func(terminal.Frame)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.drawErr != nil {
		return f.drawErr
	}
	buf := uv.NewScreenBuffer(f.width, f.height)
	fn(terminal.Frame{Area: layout.Rect(0, 0, f.width, f.height), Buffer: buf})
	f.frames = append(f.frames, strings.ReplaceAll(buf.Render(), "\r", ""))
	f.last = &buf
	return nil
}

func (f *FakeTerminal) Events() <-chan tea.Msg {
	return f.events
}

// Err mirrors terminal.Program.Err for exhaustion handling.
func (f *FakeTerminal) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Send queues msg on the event stream.
func (f *FakeTerminal) Send(msg tea.Msg) {
	f.events <- msg
}

// CloseEvents ends the event stream, recording err as the backend error.
func (f *FakeTerminal) CloseEvents(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.err = err
	close(f.events)
}

// FailDraws makes every following Draw return err.
func (f *FakeTerminal) FailDraws(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drawErr = err
}

func (f *FakeTerminal) Frames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.frames...)
}

func (f *FakeTerminal) DrawCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

// CellAt returns a cell of the last drawn frame.
func (f *FakeTerminal) CellAt(x, y int) *uv.Cell {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.last == nil {
		return nil
	}
	return f.last.CellAt(x, y)
}
