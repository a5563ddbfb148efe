//go:build !windows

package terminal

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
)

// listenForSignals forwards SIGWINCH as a tea.WindowSizeMsg carrying the
// freshly queried size, and SIGTERM/SIGHUP as a SignalMsg. The returned
// function stops the listener.
func listenForSignals(src *eventSource, size func() Size) func() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGWINCH, syscall.SIGTERM, syscall.SIGHUP)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for {
			select {
			case <-src.done:
				return
			case s := <-sig:
				var msg tea.Msg
				if s == syscall.SIGWINCH {
					sz := size()
					msg = tea.WindowSizeMsg{Width: sz.Width, Height: sz.Height}
				} else {
					msg = SignalMsg{Signal: s}
				}
				if !src.send(msg) {
					return
				}
			}
		}
	}()

	return func() {
		signal.Stop(sig)
		<-stopped
	}
}
