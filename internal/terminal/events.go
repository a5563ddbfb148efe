package terminal

import (
	"io"
	"os"
	"sync"
	"time"

	perrors "github.com/Iron-Ham/peek/internal/errors"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/cancelreader"
)

const (
	readBufferSize = 256
	readRetryDelay = 10 * time.Millisecond
	maxReadErrors  = 100
)

// SignalMsg reports a termination signal (SIGTERM, SIGHUP) delivered to the
// process while events were being read.
type SignalMsg struct {
	Signal os.Signal
}

// eventSource multiplexes decoded keys and window signals onto channels the
// caller drains through ReadEvent.
type eventSource struct {
	reader  cancelreader.CancelReader
	decoder *Decoder

	msgs      chan tea.Msg
	errs      chan error
	inputDone chan struct{} // closed once the input goroutine exits
	done      chan struct{} // closed by stop

	stopOnce    sync.Once
	stopSignals func()
	wg          sync.WaitGroup
}

// ReadEvent blocks until the next event is available. It returns a
// tea.KeyMsg for key presses, a tea.WindowSizeMsg when the window is resized,
// a SignalMsg on SIGTERM or SIGHUP and an UnknownSequenceMsg for input it
// could not decode.
//
// A failed read is reported as a warning matching ErrEventRead and reading
// continues. Once the input stream ends, ReadEvent returns an error matching
// ErrTerminalClosed and wrapping io.EOF; after Terminate it returns an error
// matching ErrTerminalClosed.
func (t *Terminal) ReadEvent() (tea.Msg, error) {
	src, err := t.eventSource()
	if err != nil {
		return nil, err
	}

	select {
	case msg := <-src.msgs:
		return msg, nil
	case err := <-src.errs:
		return nil, perrors.NewTerminalError("read event", err).
			WithSentinel(perrors.ErrEventRead).
			WithSeverity(perrors.SeverityWarning)
	case <-src.inputDone:
		return nil, perrors.NewTerminalError("read event", io.EOF).WithSentinel(perrors.ErrTerminalClosed)
	case <-src.done:
		return nil, perrors.NewTerminalError("read event", nil).WithSentinel(perrors.ErrTerminalClosed)
	}
}

func (t *Terminal) eventSource() (*eventSource, error) {
	var startErr error
	t.eventsOnce.Do(func() {
		if t.input == nil {
			startErr = perrors.NewTerminalError("read event", nil).WithSentinel(perrors.ErrNotATerminal)
			return
		}
		reader, err := cancelreader.NewReader(t.input)
		if err != nil {
			startErr = perrors.NewTerminalError("open input", err).WithSentinel(perrors.ErrEventRead)
			return
		}

		src := &eventSource{
			reader:    reader,
			decoder:   &Decoder{},
			msgs:      make(chan tea.Msg),
			errs:      make(chan error),
			inputDone: make(chan struct{}),
			done:      make(chan struct{}),
		}
		src.stopSignals = listenForSignals(src, t.SizeOrDefault)

		src.wg.Add(1)
		go t.readInput(src)

		t.mu.Lock()
		t.events = src
		t.mu.Unlock()
	})
	if startErr != nil {
		return nil, startErr
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.events == nil {
		return nil, perrors.NewTerminalError("read event", nil).WithSentinel(perrors.ErrTerminalClosed)
	}
	return t.events, nil
}

// readInput decodes keys until the input ends or the reader is cancelled.
// Other read errors are reported and reading resumes after a short pause;
// after maxReadErrors consecutive failures the input is treated as closed.
func (t *Terminal) readInput(src *eventSource) {
	defer src.wg.Done()
	defer close(src.inputDone)

	buf := make([]byte, readBufferSize)
	failures := 0
	for {
		n, err := src.reader.Read(buf)
		if n > 0 {
			failures = 0
			for _, msg := range src.decoder.Decode(buf[:n]) {
				if seq, ok := msg.(UnknownSequenceMsg); ok {
					t.logger.Debug("unknown input sequence", "sequence", string(seq))
				}
				if !src.send(msg) {
					return
				}
			}
		}
		if err == nil {
			continue
		}
		if perrors.Is(err, cancelreader.ErrCanceled) || perrors.Is(err, io.EOF) {
			return
		}

		failures++
		t.logger.Warn("input read failed", "error", err.Error(), "failures", failures)
		select {
		case src.errs <- err:
		case <-src.done:
			return
		}
		if failures >= maxReadErrors {
			return
		}
		select {
		case <-time.After(readRetryDelay):
		case <-src.done:
			return
		}
	}
}

// send delivers msg unless the source is shutting down.
func (src *eventSource) send(msg tea.Msg) bool {
	select {
	case src.msgs <- msg:
		return true
	case <-src.done:
		return false
	}
}

func (src *eventSource) stop() {
	src.stopOnce.Do(func() {
		close(src.done)
		if src.stopSignals != nil {
			src.stopSignals()
		}
		// Readers that cannot be cancelled stay blocked in Read; the
		// goroutine is abandoned rather than waited on.
		if src.reader.Cancel() {
			src.wg.Wait()
		}
		_ = src.reader.Close()
	})
}

// stopEvents shuts the event source down if it was ever started.
func (t *Terminal) stopEvents() {
	t.mu.Lock()
	src := t.events
	t.mu.Unlock()

	if src != nil {
		src.stop()
	}
}
