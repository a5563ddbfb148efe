// Package terminal is a thin facade over the host terminal. It switches the
// terminal between raw and cooked mode, queues control sequences and text
// into a single frame buffer, and commits that frame with one write on
// Execute. Nothing reaches the terminal until Execute is called.
//
// The package also turns the terminal's input stream and window signals into
// events (see ReadEvent).
package terminal

import (
	"bytes"
	"io"
	"math"
	"os"
	"sync"

	perrors "github.com/Iron-Ham/peek/internal/errors"
	"github.com/Iron-Ham/peek/internal/logging"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// maxCoordinate is the largest coordinate a terminal can address; cursor
// moves and reported sizes saturate at this value.
const maxCoordinate = math.MaxUint16

// Position is a cell coordinate with the origin at the top-left corner.
type Position struct {
	X int
	Y int
}

// Size is a terminal size in cells. A zero dimension means "do not render".
type Size struct {
	Width  int
	Height int
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithOutput queues frames for w instead of the output file.
func WithOutput(w io.Writer) Option {
	return func(t *Terminal) {
		t.out = w
	}
}

// WithInput reads events from r instead of the input file. Raw mode is still
// applied to the input file.
func WithInput(r io.Reader) Option {
	return func(t *Terminal) {
		t.input = r
	}
}

// WithSizeFunc overrides how the terminal dimensions are queried.
func WithSizeFunc(fn func() (width, height int, err error)) Option {
	return func(t *Terminal) {
		t.sizeFn = fn
	}
}

// WithLogger sets the logger used for event source diagnostics.
func WithLogger(logger *logging.Logger) Option {
	return func(t *Terminal) {
		t.logger = logger.WithComponent("terminal")
	}
}

// Terminal controls one host terminal. Only one Terminal may hold raw mode
// at a time.
type Terminal struct {
	in     *os.File
	input  io.Reader // event source, the input file unless overridden
	out    io.Writer
	queue  bytes.Buffer
	sizeFn func() (int, int, error)
	logger *logging.Logger

	mu    sync.Mutex
	state *term.State // saved cooked-mode state while raw

	eventsOnce sync.Once
	events     *eventSource
}

// New creates a Terminal reading keys from in and writing frames to out.
// Typical use is New(os.Stdin, os.Stdout).
func New(in, out *os.File, opts ...Option) *Terminal {
	t := &Terminal{
		in:     in,
		logger: logging.NopLogger(),
	}
	if in != nil {
		t.input = in
	}
	if out != nil {
		t.out = out
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.sizeFn == nil {
		t.sizeFn = t.querySize
	}
	return t
}

// querySize asks the output device for its size, falling back to the input
// device when output is not a file.
func (t *Terminal) querySize() (int, int, error) {
	if f, ok := t.out.(*os.File); ok && f != nil {
		return term.GetSize(int(f.Fd()))
	}
	if t.in != nil {
		return term.GetSize(int(t.in.Fd()))
	}
	return 0, 0, perrors.NewTerminalError("query size", nil).WithSentinel(perrors.ErrNotATerminal)
}

// Initialise enables raw mode, clears the screen, homes the cursor and
// flushes.
func (t *Terminal) Initialise() error {
	if err := t.enableRawMode(); err != nil {
		return err
	}
	if err := t.ClearScreen(); err != nil {
		return err
	}
	if err := t.MoveCursorTo(Position{}); err != nil {
		return err
	}
	return t.Execute()
}

func (t *Terminal) enableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != nil {
		return nil
	}
	if t.in == nil {
		return perrors.NewTerminalError("enable raw mode", nil).WithSentinel(perrors.ErrNotATerminal)
	}
	state, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return perrors.NewTerminalError("enable raw mode", err).WithSentinel(perrors.ErrRawMode)
	}
	t.state = state
	return nil
}

// Terminate restores cooked mode and stops the event source. It is
// idempotent and safe to call after a partial Initialise.
func (t *Terminal) Terminate() error {
	t.stopEvents()

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == nil {
		return nil
	}
	if err := term.Restore(int(t.in.Fd()), t.state); err != nil {
		return perrors.NewTerminalError("disable raw mode", err).WithSentinel(perrors.ErrRawMode)
	}
	t.state = nil
	return nil
}

// IsRaw reports whether the terminal is currently in raw mode.
func (t *Terminal) IsRaw() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state != nil
}

// Print queues s.
func (t *Terminal) Print(s string) error {
	return t.queueCommand(s)
}

// ClearScreen queues a full-screen clear.
func (t *Terminal) ClearScreen() error {
	return t.queueCommand(ansi.EraseEntireScreen)
}

// ClearLine queues a clear of the line under the cursor.
func (t *Terminal) ClearLine() error {
	return t.queueCommand(ansi.EraseEntireLine)
}

// HideCursor queues hiding the hardware cursor.
func (t *Terminal) HideCursor() error {
	return t.queueCommand(ansi.HideCursor)
}

// ShowCursor queues showing the hardware cursor.
func (t *Terminal) ShowCursor() error {
	return t.queueCommand(ansi.ShowCursor)
}

// MoveCursorTo queues a cursor move. Coordinates outside the terminal's
// 16-bit address space are saturated, never rejected.
func (t *Terminal) MoveCursorTo(p Position) error {
	x := saturate(p.X)
	y := saturate(p.Y)
	return t.queueCommand(ansi.CursorPosition(x+1, y+1))
}

// Size queries the current terminal dimensions. Negative values clamp to 0
// and values beyond the 16-bit range saturate.
func (t *Terminal) Size() (Size, error) {
	width, height, err := t.sizeFn()
	if err != nil {
		return Size{}, perrors.NewTerminalError("query size", err)
	}
	return Size{Width: saturate(width), Height: saturate(height)}, nil
}

// SizeOrDefault returns Size, or a zero Size when the host cannot report one.
func (t *Terminal) SizeOrDefault() Size {
	size, err := t.Size()
	if err != nil {
		return Size{}
	}
	return size
}

// Execute flushes the queued frame to the output with a single write.
func (t *Terminal) Execute() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.queue.Len() == 0 {
		return nil
	}
	if t.out == nil {
		t.queue.Reset()
		return perrors.NewTerminalError("flush", nil).WithSentinel(perrors.ErrTerminalClosed)
	}
	_, err := t.out.Write(t.queue.Bytes())
	t.queue.Reset()
	if err != nil {
		return perrors.NewTerminalError("flush", err)
	}
	return nil
}

// Pending returns the number of queued bytes not yet flushed.
func (t *Terminal) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.queue.Len()
}

func (t *Terminal) queueCommand(s string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.queue.WriteString(s); err != nil {
		return perrors.NewTerminalError("queue", err)
	}
	return nil
}

func saturate(v int) int {
	if v < 0 {
		return 0
	}
	if v > maxCoordinate {
		return maxCoordinate
	}
	return v
}
