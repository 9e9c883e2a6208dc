package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/phpdocbook/docbook/internal/config"
	"github.com/phpdocbook/docbook/internal/terminal"
	"github.com/phpdocbook/docbook/internal/ui/layout"
	"github.com/phpdocbook/docbook/internal/ui/render"
	"github.com/phpdocbook/docbook/internal/version"
	"github.com/phpdocbook/docbook/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cfg, err := config.LoadDefault()
	require.NoError(t, err)
	m, err := New(cfg)
	require.NoError(t, err)
	return m
}

// start runs the loop in the background and returns its result channel.
func start(ctx context.Context, m *Model, term terminal.Terminal) <-chan error {
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx, term) }()
	return done
}

func waitResult(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
		return nil
	}
}

func assertStillRunning(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		t.Fatalf("loop stopped unexpectedly: %v", err)
	default:
	}
}

func runeKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Text: string(r), Code: r}
}

func TestRun_QuitKeys(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyPressMsg
	}{
		{"q", runeKey('q')},
		{"Q", tea.KeyPressMsg{Code: 'q', ShiftedCode: 'Q', Text: "Q", Mod: tea.ModShift}},
		{"esc", tea.KeyPressMsg{Code: tea.KeyEsc}},
		{"ctrl+c", tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}},
		{"ctrl+C", tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl | tea.ModShift}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(t)
			term := test.NewFakeTerminal(40, 10)
			done := start(context.Background(), m, term)

			term.Send(tc.msg)

			require.NoError(t, waitResult(t, done))
			assert.False(t, m.Running())
			assert.GreaterOrEqual(t, term.DrawCount(), 1)
		})
	}
}

func TestRun_NonQuitKeyKeepsRunning(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := newTestModel(t)
	term := test.NewFakeTerminal(40, 10)
	done := start(ctx, m, term)

	require.Eventually(t, func() bool { return term.DrawCount() >= 1 }, time.Second, 5*time.Millisecond)
	term.Send(runeKey('a'))
	require.Eventually(t, func() bool { return term.DrawCount() >= 2 }, time.Second, 5*time.Millisecond)
	assertStillRunning(t, done)

	frames := term.Frames()
	assert.Equal(t, frames[0], frames[1])

	cancel()
	require.NoError(t, waitResult(t, done))
}

func TestRun_IgnoresNonPressAndModifiedKeys(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := newTestModel(t)
	term := test.NewFakeTerminal(40, 10)
	done := start(ctx, m, term)

	term.Send(tea.KeyReleaseMsg{Code: 'q', Text: "q"})
	term.Send(tea.KeyPressMsg{Code: 'q', Text: "q", IsRepeat: true})
	term.Send(tea.KeyPressMsg{Code: 'q', Mod: tea.ModAlt})
	term.Send(tea.KeyPressMsg{Code: 'q', Mod: tea.ModCtrl})
	term.Send(tea.KeyPressMsg{Code: tea.KeyEsc, Mod: tea.ModAlt})
	term.Send(tea.MouseClickMsg{X: 3, Y: 3})
	term.Send(tea.WindowSizeMsg{Width: 80, Height: 24})

	require.Eventually(t, func() bool { return term.DrawCount() >= 8 }, 2*time.Second, 5*time.Millisecond)
	assertStillRunning(t, done)

	cancel()
	require.NoError(t, waitResult(t, done))
}

func TestRun_TicksWhileIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := newTestModel(t)
	term := test.NewFakeTerminal(40, 10)

	began := time.Now()
	done := start(ctx, m, term)

	// one initial frame plus at least two tick-driven redraws
	require.Eventually(t, func() bool { return term.DrawCount() >= 3 }, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(began), 2*tickInterval-10*time.Millisecond)
	assertStillRunning(t, done)

	cancel()
	require.NoError(t, waitResult(t, done))
}

func TestRun_ClosedEventStreamQuits(t *testing.T) {
	m := newTestModel(t)
	term := test.NewFakeTerminal(40, 10)
	done := start(context.Background(), m, term)

	term.CloseEvents(nil)

	require.NoError(t, waitResult(t, done))
	assert.False(t, m.Running())
}

func TestRun_ClosedEventStreamReportsBackendError(t *testing.T) {
	boom := errors.New("tty detached")
	m := newTestModel(t)
	term := test.NewFakeTerminal(40, 10)
	done := start(context.Background(), m, term)

	term.CloseEvents(boom)

	assert.ErrorIs(t, waitResult(t, done), boom)
}

func TestRun_DrawErrorIsFatal(t *testing.T) {
	boom := errors.New("write failed")
	m := newTestModel(t)
	term := test.NewFakeTerminal(40, 10)
	term.FailDraws(boom)

	err := m.Run(context.Background(), term)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, term.DrawCount())
}

func TestRun_DrawOnClosedTerminalQuits(t *testing.T) {
	m := newTestModel(t)
	term := test.NewFakeTerminal(40, 10)
	term.FailDraws(terminal.ErrClosed)

	require.NoError(t, m.Run(context.Background(), term))
	assert.False(t, m.Running())
}

func TestOnKeyEvent(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyPressMsg
		wantQuit bool
	}{
		{"q", runeKey('q'), true},
		{"esc", tea.KeyPressMsg{Code: tea.KeyEsc}, true},
		{"ctrl+c", tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}, true},
		{"a", runeKey('a'), false},
		{"c", runeKey('c'), false},
		{"enter", tea.KeyPressMsg{Code: tea.KeyEnter}, false},
		{"alt+q", tea.KeyPressMsg{Code: 'q', Mod: tea.ModAlt}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(t)
			m.running = true
			m.onKeyEvent(tc.msg)
			assert.Equal(t, !tc.wantQuit, m.Running())
		})
	}
}

func TestOnKeyEvent_QuitStaysQuit(t *testing.T) {
	m := newTestModel(t)
	m.running = true
	m.onKeyEvent(runeKey('q'))
	m.onKeyEvent(runeKey('a'))
	m.onKeyEvent(runeKey('q'))
	assert.False(t, m.Running())
}

func TestOnKeyEvent_UsesScreenScope(t *testing.T) {
	cfg, err := config.LoadDefault()
	require.NoError(t, err)
	require.NoError(t, cfg.Load(`
[[bindings]]
action = "ui.quit"
scope = "home"
key = "x"
`))
	m, err := New(cfg)
	require.NoError(t, err)
	m.running = true

	m.onKeyEvent(runeKey('x'))
	assert.False(t, m.Running())
}

func TestNew_RejectsInvalidBindings(t *testing.T) {
	cfg := &config.Config{Bindings: []config.BindingConfig{{Action: "ui.quit", Scope: "ui"}}}
	_, err := New(cfg)
	require.Error(t, err)
}

func renderFrame(m *Model, width, height int) *uv.ScreenBuffer {
	buf := uv.NewScreenBuffer(width, height)
	m.draw(terminal.Frame{Area: layout.Rect(0, 0, width, height), Buffer: buf})
	return &buf
}

func TestDraw_TitleCenteredBoldAccent(t *testing.T) {
	prev := version.Version
	version.Version = "1.2.3"
	defer func() { version.Version = prev }()

	m := newTestModel(t)
	buf := renderFrame(m, 41, 10)
	lines := test.PlainLines(buf.Render())

	title := "PHP DocBook 1.2.3"
	top := lines[0]
	start := strings.Index(top, title)
	require.NotEqual(t, -1, start, "title missing from %q", top)

	runes := []rune(top)
	assert.Equal(t, "┌", string(runes[0]))
	assert.Equal(t, "┐", string(runes[40]))
	titleStart := len([]rune(top[:start]))
	assert.Equal(t, (41-2-len(title))/2+1, titleStart)

	for x := titleStart; x < titleStart+len(title); x++ {
		cell := buf.CellAt(x, 0)
		require.NotNil(t, cell)
		assert.NotZero(t, cell.Style.Attrs&uv.AttrBold, "cell %d not bold", x)
		assert.NotNil(t, cell.Style.Fg, "cell %d has no accent color", x)
	}
	assert.Zero(t, buf.CellAt(0, 0).Style.Attrs&uv.AttrBold)
}

func TestDraw_TitleTruncatedWhenNarrow(t *testing.T) {
	m := newTestModel(t)
	buf := renderFrame(m, 8, 4)
	top := []rune(test.PlainLines(buf.Render())[0])

	require.Len(t, top, 8)
	assert.Equal(t, "┌PHP Do┐", string(top))
}

func TestDraw_BorderSurroundsScreen(t *testing.T) {
	m := newTestModel(t)
	buf := renderFrame(m, 30, 8)
	lines := test.PlainLines(buf.Render())
	require.Len(t, lines, 8)

	bottom := []rune(lines[7])
	assert.Equal(t, "└", string(bottom[0]))
	assert.Equal(t, "┘", string(bottom[29]))
	for y := 1; y < 7; y++ {
		row := []rune(lines[y])
		assert.Equal(t, "│", string(row[0]), "row %d", y)
	}
	assert.Contains(t, strings.Join(lines[1:7], "\n"), "PHP DocBook")
}

func TestDraw_IsIdempotent(t *testing.T) {
	m := newTestModel(t)
	first := renderFrame(m, 50, 12).Render()
	second := renderFrame(m, 50, 12).Render()
	assert.Equal(t, first, second)
}

func TestDraw_TinyAreas(t *testing.T) {
	m := newTestModel(t)
	for _, size := range [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 1}, {1, 3}} {
		assert.NotPanics(t, func() { renderFrame(m, size[0], size[1]) }, "size %v", size)
	}

	dl := render.NewDisplayContext()
	m.ViewRect(dl, layout.NewBox(layout.Rect(0, 0, 2, 2)))
	assert.Equal(t, 1, dl.Len(), "a 2x2 area holds only the border")
}

func TestDraw_ConfiguredBorder(t *testing.T) {
	cfg, err := config.LoadDefault()
	require.NoError(t, err)
	require.NoError(t, cfg.Load("[ui]\nborder = \"rounded\"\n"))
	m, err := New(cfg)
	require.NoError(t, err)

	top := []rune(test.PlainLines(renderFrame(m, 30, 5).Render())[0])
	assert.Equal(t, "╭", string(top[0]))
	assert.Equal(t, "╮", string(top[29]))
}

func TestRun_CancelIsCleanQuit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := newTestModel(t)
	term := test.NewFakeTerminal(40, 10)
	done := start(ctx, m, term)

	require.Eventually(t, func() bool { return term.DrawCount() >= 1 }, time.Second, 5*time.Millisecond)
	cancel()

	require.NoError(t, waitResult(t, done))
	assert.False(t, m.Running())
}

func TestRun_DeadlineIsReported(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	m := newTestModel(t)
	term := test.NewFakeTerminal(40, 10)

	err := waitResult(t, start(ctx, m, term))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, m.Running())
}

// openPiped starts a real terminal program reading keystrokes from the
// returned writer.
func openPiped(ctx context.Context, t *testing.T) (*terminal.Program, *io.PipeWriter) {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	term := terminal.Open(ctx, terminal.WithInput(pr), terminal.WithOutput(&bytes.Buffer{}))
	return term, pw
}

func TestRun_QuitKeyThroughTerminalProgram(t *testing.T) {
	ctx := context.Background()
	term, input := openPiped(ctx, t)
	m := newTestModel(t)
	done := start(ctx, m, term)

	go func() { _, _ = input.Write([]byte("q")) }()

	require.NoError(t, waitResult(t, done))
	assert.False(t, m.Running())
	assert.NoError(t, term.Close())
}

func TestRun_CancelThroughTerminalProgram(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	term, _ := openPiped(ctx, t)
	m := newTestModel(t)
	done := start(ctx, m, term)

	time.Sleep(2 * tickInterval)
	cancel()

	require.NoError(t, waitResult(t, done))
	assert.NoError(t, term.Close())
}
