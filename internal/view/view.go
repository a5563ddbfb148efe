// Package view turns a text buffer and the last known terminal size into a
// screen frame. Drawing is gated by a dirty flag so that a frame is only
// produced when something visible changed.
package view

import (
	"io"
	"os"
	"strings"

	"github.com/Iron-Ham/peek/internal/buffer"
	perrors "github.com/Iron-Ham/peek/internal/errors"
	"github.com/Iron-Ham/peek/internal/logging"
	"github.com/Iron-Ham/peek/internal/terminal"
)

// emptyRow is drawn on rows past the end of the buffer.
const emptyRow = "~"

// Screen is the subset of the terminal facade the view draws through.
type Screen interface {
	MoveCursorTo(terminal.Position) error
	ClearLine() error
	Print(string) error
	SizeOrDefault() terminal.Size
}

// Option configures a View.
type Option func(*View)

// WithLogger sets the logger for load and render diagnostics.
func WithLogger(logger *logging.Logger) Option {
	return func(v *View) {
		v.logger = logger.WithComponent("view")
	}
}

// View owns the buffer being displayed, the cached screen size and the
// redraw flag. A new View starts dirty with the screen's current size.
type View struct {
	buffer      *buffer.Buffer
	screen      Screen
	size        terminal.Size
	needsRedraw bool
	logger      *logging.Logger
}

// New creates an empty View drawing on screen.
func New(screen Screen, opts ...Option) *View {
	v := &View{
		buffer:      buffer.New(),
		screen:      screen,
		size:        screen.SizeOrDefault(),
		needsRedraw: true,
		logger:      logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Load reads the file at path and appends its lines to the buffer.
func (v *View) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return perrors.NewLoadError(path, err)
	}
	defer f.Close()

	if err := v.LoadFrom(f); err != nil {
		return perrors.NewLoadError(path, err)
	}
	v.logger.Info("file loaded", "path", path, "lines", v.buffer.Len())
	return nil
}

// LoadFrom reads r to the end and appends its lines to the buffer. Lines may
// end in "\n", "\r\n" or a lone "\r"; terminators are not kept and a final
// terminator does not start an extra empty line.
func (v *View) LoadFrom(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	for _, line := range splitLines(string(data)) {
		v.buffer.Append(line)
	}
	v.needsRedraw = true
	return nil
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// Resize records the new screen size and marks the view dirty. Nothing is
// drawn until the next Render.
func (v *View) Resize(size terminal.Size) {
	v.size = size
	v.needsRedraw = true
	v.logger.Debug("resized", "width", size.Width, "height", size.Height)
}

// Size returns the cached screen size.
func (v *View) Size() terminal.Size {
	return v.size
}

// NeedsRedraw reports whether the next Render will draw.
func (v *View) NeedsRedraw() bool {
	return v.needsRedraw
}

// Buffer returns the buffer being displayed.
func (v *View) Buffer() *buffer.Buffer {
	return v.buffer
}

// Render queues a full frame when the view is dirty. It does nothing when the
// view is clean or either dimension is zero; in the latter case the view
// stays dirty so the next usable size still draws. On error the view also
// stays dirty and the frame is retried on the next call.
func (v *View) Render() error {
	if !v.needsRedraw {
		return nil
	}
	width, height := v.size.Width, v.size.Height
	if width == 0 || height == 0 {
		return nil
	}

	welcomeRow := height / 3
	for row := 0; row < height; row++ {
		var text string
		if line, ok := v.buffer.Get(row); ok {
			text = truncate(line, width)
		} else if row == welcomeRow && v.buffer.IsEmpty() {
			text = Welcome(width)
		} else {
			text = emptyRow
		}
		if err := v.renderLine(row, text); err != nil {
			return err
		}
	}

	v.needsRedraw = false
	return nil
}

func (v *View) renderLine(row int, text string) error {
	if err := v.screen.MoveCursorTo(terminal.Position{X: 0, Y: row}); err != nil {
		return err
	}
	if err := v.screen.ClearLine(); err != nil {
		return err
	}
	return v.screen.Print(text)
}

// truncate shortens s to at most width characters.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}
