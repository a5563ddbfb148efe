package editor

import "sync"

// Restore hooks run when a panic unwinds through RestoreOnPanic. Each
// running Editor registers one that returns the terminal to cooked mode.
var (
	hooksMu      sync.Mutex
	restoreHooks []*restoreHook
)

type restoreHook struct {
	once sync.Once
	fn   func()
}

// registerRestoreHook adds fn to the chain and returns a function that
// removes it again.
func registerRestoreHook(fn func()) func() {
	hook := &restoreHook{fn: fn}

	hooksMu.Lock()
	restoreHooks = append(restoreHooks, hook)
	hooksMu.Unlock()

	return func() {
		hooksMu.Lock()
		defer hooksMu.Unlock()
		for i, h := range restoreHooks {
			if h == hook {
				restoreHooks = append(restoreHooks[:i], restoreHooks[i+1:]...)
				return
			}
		}
	}
}

// runRestoreHooks runs every registered hook once, newest first.
func runRestoreHooks() {
	hooksMu.Lock()
	hooks := make([]*restoreHook, len(restoreHooks))
	copy(hooks, restoreHooks)
	hooksMu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		h.once.Do(h.fn)
	}
}

// RestoreOnPanic must be deferred directly. If the surrounding function is
// panicking it restores the terminal through the registered hooks and then
// re-panics with the original value, so the usual panic report is printed
// on a usable terminal.
//
//	defer editor.RestoreOnPanic()
func RestoreOnPanic() {
	if r := recover(); r != nil {
		runRestoreHooks()
		panic(r)
	}
}
