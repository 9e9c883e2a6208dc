// Package terminal adapts a bubbletea program into a drawable cell grid and
// a stream of input events, so the UI can drive its own loop.
package terminal

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/phpdocbook/docbook/internal/logging"
	"github.com/phpdocbook/docbook/internal/ui/layout"
)

// ErrClosed is returned by Draw once the backend has stopped cleanly.
var ErrClosed = errors.New("terminal: closed")

const eventBufferSize = 64

// Frame is the drawable area for one redraw and a buffer covering it.
type Frame struct {
	Area   layout.Rectangle
	Buffer uv.Screen
}

// Terminal is what the UI loop needs from a terminal backend.
type Terminal interface {
	// Draw hands fn an empty buffer covering the whole area and flushes
	// whatever fn painted into it.
	Draw(fn func(Frame)) error
	// Events yields input, mouse and resize messages. It is closed when the
	// backend stops.
	Events() <-chan tea.Msg
}

type options struct {
	input  io.Reader
	output io.Writer
}

type Option func(*options)

// WithInput reads input from r instead of the controlling terminal.
func WithInput(r io.Reader) Option {
	return func(o *options) { o.input = r }
}

// WithOutput writes frames to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

// Program is a Terminal backed by a bubbletea program running in its own
// goroutine. The terminal is put into raw mode and the alternate screen while
// it runs and restored when it stops.
type Program struct {
	program *tea.Program
	events  chan tea.Msg
	repaint chan struct{}
	done    chan struct{}

	mu     sync.Mutex
	width  int
	height int
	frame  string
	err    error

	closeOnce sync.Once
}

var _ Terminal = (*Program)(nil)

type repaintMsg struct{}

// Open starts the backend. It must be paired with Close so the terminal is
// restored on every exit path.
func Open(ctx context.Context, opts ...Option) *Program {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	p := newProgram()
	teaOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if o.input != nil {
		teaOpts = append(teaOpts, tea.WithInput(o.input))
	}
	if o.output != nil {
		teaOpts = append(teaOpts, tea.WithOutput(o.output))
	}
	p.program = tea.NewProgram(bridge{p: p}, teaOpts...)

	go p.run()
	go p.repaintLoop()
	logging.Debugf("terminal opened")
	return p
}

func newProgram() *Program {
	return &Program{
		events:  make(chan tea.Msg, eventBufferSize),
		repaint: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (p *Program) run() {
	_, err := p.program.Run()
	p.stop(err)
}

// stop records the exit error and closes the event stream. It runs once,
// after the bubbletea event loop has returned, so no Update can send on
// events afterwards.
func (p *Program) stop(err error) {
	if errors.Is(err, tea.ErrInterrupted) || errors.Is(err, context.Canceled) {
		err = nil
	}
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
	if err != nil {
		logging.Errorf("terminal stopped: %v", err)
	} else {
		logging.Debugf("terminal stopped")
	}
	close(p.events)
	close(p.done)
}

// repaintLoop turns coalesced repaint requests into messages so bubbletea
// calls View with the latest frame.
func (p *Program) repaintLoop() {
	for {
		select {
		case <-p.repaint:
			p.program.Send(repaintMsg{})
		case <-p.done:
			return
		}
	}
}

func (p *Program) Events() <-chan tea.Msg {
	return p.events
}

func (p *Program) Draw(fn func(Frame)) error {
	select {
	case <-p.done:
		if err := p.Err(); err != nil {
			return err
		}
		return ErrClosed
	default:
	}

	p.mu.Lock()
	width, height := p.width, p.height
	p.mu.Unlock()

	buf := uv.NewScreenBuffer(width, height)
	fn(Frame{Area: layout.Rect(0, 0, width, height), Buffer: buf})
	frame := strings.ReplaceAll(buf.Render(), "\r", "")

	p.mu.Lock()
	changed := frame != p.frame
	p.frame = frame
	p.mu.Unlock()

	if changed {
		select {
		case p.repaint <- struct{}{}:
		default:
		}
	}
	return nil
}

// Err returns the error the backend stopped with, if any.
func (p *Program) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Close stops the backend and blocks until the terminal is restored.
func (p *Program) Close() error {
	p.closeOnce.Do(func() {
		go p.program.Quit()
	})
	<-p.done
	logging.Debugf("terminal closed")
	return p.Err()
}

func (p *Program) setSize(width, height int) {
	p.mu.Lock()
	p.width, p.height = width, height
	p.mu.Unlock()
}

func (p *Program) currentFrame() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame
}

// forward delivers msg to the event stream without ever blocking bubbletea.
// When the stream is full a key press evicts the oldest queued event, so a
// burst of mouse motion cannot swallow a quit key. Anything else is dropped.
func (p *Program) forward(msg tea.Msg) {
	select {
	case p.events <- msg:
		return
	default:
	}
	if _, ok := msg.(tea.KeyPressMsg); !ok {
		logging.Warnf("event stream full, dropping %T", msg)
		return
	}
	select {
	case old := <-p.events:
		logging.Warnf("event stream full, dropping %T for a key press", old)
	default:
	}
	select {
	case p.events <- msg:
	default:
		logging.Warnf("event stream full, dropping %T", msg)
	}
}
