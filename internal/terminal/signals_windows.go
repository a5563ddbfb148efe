//go:build windows

package terminal

import (
	"os"
	"os/signal"
	"syscall"
)

// listenForSignals forwards termination signals as a SignalMsg. Windows
// consoles do not deliver resize signals.
func listenForSignals(src *eventSource, _ func() Size) func() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM, syscall.SIGHUP)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for {
			select {
			case <-src.done:
				return
			case s := <-sig:
				if !src.send(SignalMsg{Signal: s}) {
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
