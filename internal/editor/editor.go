// Package editor is the viewer's controller. It owns the terminal for the
// lifetime of an Editor, runs the event loop, moves the caret and drives the
// hide, render, position, show, flush cycle once per event.
package editor

import (
	"fmt"
	"io"
	"sync"

	"github.com/Iron-Ham/peek/internal/config"
	perrors "github.com/Iron-Ham/peek/internal/errors"
	"github.com/Iron-Ham/peek/internal/keymap"
	"github.com/Iron-Ham/peek/internal/logging"
	"github.com/Iron-Ham/peek/internal/terminal"
	"github.com/Iron-Ham/peek/internal/view"
	tea "github.com/charmbracelet/bubbletea"
)

// goodbye is printed after the terminal is restored on a requested quit.
const goodbye = "Goodbye.\r\n"

// Terminal is the terminal facade the editor drives.
type Terminal interface {
	view.Screen
	Initialise() error
	Terminate() error
	HideCursor() error
	ShowCursor() error
	Execute() error
	ReadEvent() (tea.Msg, error)
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger used by the editor and its view.
func WithLogger(logger *logging.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithConfig sets the editor behaviour options.
func WithConfig(cfg config.EditorConfig) Option {
	return func(e *Editor) {
		e.cfg = cfg
	}
}

// WithKeymap replaces the default key bindings.
func WithKeymap(km *keymap.Keymap) Option {
	return func(e *Editor) {
		e.keymap = km
	}
}

// Editor holds the caret, the view and the quit flag.
type Editor struct {
	term       Terminal
	view       *view.View
	keymap     *keymap.Keymap
	caret      terminal.Position
	shouldQuit bool
	cfg        config.EditorConfig
	logger     *logging.Logger

	removeHook func()
	closeOnce  sync.Once
}

// New takes ownership of term: it registers a panic restore hook and then
// switches the terminal into raw mode. The caller must Close the Editor.
func New(term Terminal, opts ...Option) (*Editor, error) {
	e := &Editor{
		term:   term,
		keymap: keymap.DefaultKeymap(),
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.view = view.New(term, view.WithLogger(e.logger))
	e.logger = e.logger.WithComponent("editor")

	e.removeHook = registerRestoreHook(func() {
		_ = term.Terminate()
	})

	if err := term.Initialise(); err != nil {
		_ = term.Terminate()
		e.removeHook()
		return nil, err
	}

	size := e.view.Size()
	e.logger.Info("editor started", "width", size.Width, "height", size.Height)
	return e, nil
}

// Open loads the file at path into the view. It is meant to be called once,
// before Run.
func (e *Editor) Open(path string) error {
	if err := e.view.Load(path); err != nil {
		e.logger.Error("failed to load file", "path", path, "error", err.Error())
		return err
	}
	return nil
}

// Run processes events until a quit is requested. It returns nil after a
// quit, or an error matching io.EOF or errors.ErrTerminalClosed when the
// input stream ends first.
//
// Other read errors are logged and the loop continues, unless
// PanicOnReadError is set, in which case Run panics after restoring the
// terminal.
func (e *Editor) Run() error {
	defer RestoreOnPanic()

	for {
		e.refreshScreen()
		if e.shouldQuit {
			return nil
		}

		msg, err := e.term.ReadEvent()
		if err != nil {
			if perrors.Is(err, io.EOF) || perrors.Is(err, perrors.ErrTerminalClosed) {
				e.logger.Warn("event stream ended", "error", err.Error())
				return err
			}
			if e.cfg.PanicOnReadError {
				panic(fmt.Sprintf("could not read event: %v", err))
			}
			e.logger.Debug("event read failed",
				"error", err.Error(),
				"severity", perrors.GetSeverity(err).String())
			continue
		}
		e.evaluateEvent(msg)
	}
}

// refreshScreen draws one frame. Drawing errors are not fatal: the view
// stays dirty and the next iteration redraws.
func (e *Editor) refreshScreen() {
	_ = e.term.HideCursor()
	if err := e.view.Render(); err != nil {
		e.logger.Debug("render failed", "error", err.Error())
	}
	_ = e.term.MoveCursorTo(e.caret)
	_ = e.term.ShowCursor()
	if err := e.term.Execute(); err != nil {
		e.logger.Debug("flush failed", "error", err.Error())
	}
}

func (e *Editor) evaluateEvent(msg tea.Msg) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, ok := e.keymap.Lookup(msg)
		if !ok {
			return
		}
		if cmd == keymap.CmdQuit {
			e.logger.Info("quit requested")
			e.shouldQuit = true
			return
		}
		e.moveCaret(cmd)
	case tea.WindowSizeMsg:
		size := terminal.Size{
			Width:  max(msg.Width, 0),
			Height: max(msg.Height, 0),
		}
		e.view.Resize(size)
		e.clampCaret(size)
	case terminal.SignalMsg:
		e.logger.Info("quitting on signal", "signal", fmt.Sprint(msg.Signal))
		e.shouldQuit = true
	}
}

// moveCaret applies a caret command against the live terminal size. Every
// step saturates at the screen edges.
func (e *Editor) moveCaret(cmd keymap.Command) {
	size := e.term.SizeOrDefault()
	x, y := e.caret.X, e.caret.Y

	switch cmd {
	case keymap.CmdCaretUp:
		y = max(y-1, 0)
	case keymap.CmdCaretDown:
		y = min(y+1, lastIndex(size.Height))
	case keymap.CmdCaretLeft:
		x = max(x-1, 0)
	case keymap.CmdCaretRight:
		x = min(x+1, lastIndex(size.Width))
	case keymap.CmdCaretLineStart:
		x = 0
	case keymap.CmdCaretLineEnd:
		x = lastIndex(size.Width)
	case keymap.CmdCaretTop:
		y = 0
	case keymap.CmdCaretBottom:
		y = lastIndex(size.Height)
	}

	e.caret = terminal.Position{X: x, Y: y}
}

// clampCaret keeps the caret inside a screen of the given size.
func (e *Editor) clampCaret(size terminal.Size) {
	e.caret = terminal.Position{
		X: min(e.caret.X, lastIndex(size.Width)),
		Y: min(e.caret.Y, lastIndex(size.Height)),
	}
}

// lastIndex is n-1 saturated at 0.
func lastIndex(n int) int {
	return max(n-1, 0)
}

// Caret returns the caret position.
func (e *Editor) Caret() terminal.Position {
	return e.caret
}

// ShouldQuit reports whether a quit has been requested.
func (e *Editor) ShouldQuit() bool {
	return e.shouldQuit
}

// View returns the editor's view.
func (e *Editor) View() *view.View {
	return e.view
}

// Close restores the terminal and, after a requested quit, prints a goodbye
// line on the restored terminal. Failures are ignored because the process is
// leaving; Close is safe to call more than once.
func (e *Editor) Close() {
	e.closeOnce.Do(func() {
		e.removeHook()
		_ = e.term.Terminate()
		if e.shouldQuit {
			_ = e.term.Print(goodbye)
			_ = e.term.Execute()
		}
		e.logger.Info("editor closed", "quit", e.shouldQuit)
	})
}
