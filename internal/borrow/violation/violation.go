// Package violation implements the fatal-violation handler for the borrow
// checker runtime.
//
// Every violation this library detects (dangling borrow, corrupted count,
// mismatched condition) indicates that the program's invariants are already
// broken: continuing risks operating on a value that is about to be, or
// already is, torn down while aliases observe it. The only sanctioned
// response is to report and terminate. A Handler carries the reporting
// action; the default action prints to stderr and exits the process.
//
// Tests replace the action to collect diagnostics instead of dying, which is
// why Trigger records its state before invoking the action: once a violation
// is in flight, the tracking machinery short-circuits (see Active) so that
// cleanup running underneath a captured violation does not corrupt counters
// that the report is about to describe.
package violation

import (
	"fmt"
	"os"
	"sync"
)

// Action is invoked with a human-readable message when a violation triggers.
//
// The library does not inspect the action's behavior; if it returns, the
// violation is still considered terminal and bookkeeping stays frozen until
// Clear is called (tests only).
type Action func(msg string)

// Handler is a fatal-violation sink.
//
// A single process-wide Handler (see Default) serves most programs. Owner
// cells accept an injected Handler for embedders that want to scope
// diagnostics, e.g. one handler per subsystem under test.
type Handler struct {
	mu        sync.Mutex
	triggered bool
	message   string
	action    Action
}

// NewHandler returns a Handler with the default action (stderr + exit).
func NewHandler() *Handler {
	return &Handler{}
}

// SetAction replaces the handler's action. A nil action restores the default.
func (h *Handler) SetAction(a Action) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.action = a
}

// Trigger reports a violation.
//
// The triggered flag and message are recorded before the action runs, so an
// action that inspects the handler (or panics) observes consistent state.
// The action is invoked outside the handler lock: actions are allowed to
// call back into the handler.
func (h *Handler) Trigger(msg string) {
	h.mu.Lock()
	h.triggered = true
	h.message = msg
	a := h.action
	h.mu.Unlock()

	if a == nil {
		a = defaultAction
	}
	a(msg)
}

// Active reports whether a violation has been triggered and not cleared.
//
// The tracker implementations consult this before unregistering: once the
// process is dying, handle teardown must not mutate the very state the
// violation report describes.
func (h *Handler) Active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.triggered
}

// Message returns the most recent violation message, or "".
func (h *Handler) Message() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.message
}

// Clear resets the handler. Only tests should call this; production code has
// no business surviving a violation.
func (h *Handler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.triggered = false
	h.message = ""
}

// defaultAction reports to stderr and terminates the process.
//
// Exit code 66 matches the convention of "detected unsafe state" used by the
// race report path; any nonzero code would do, but a dedicated one makes the
// failure greppable in CI logs.
func defaultAction(msg string) {
	fmt.Fprintf(os.Stderr, "==================\n")
	fmt.Fprintf(os.Stderr, "FATAL: BORROW VIOLATION\n")
	fmt.Fprintf(os.Stderr, "%s\n", msg)
	fmt.Fprintf(os.Stderr, "==================\n")
	os.Exit(66)
}

// global is the process-wide handler used when no handler is injected.
var global = NewHandler()

// Default returns the process-wide handler.
func Default() *Handler {
	return global
}

// Assert triggers a violation on the Default handler if pred is false.
func Assert(pred bool, msg string) {
	if !pred {
		global.Trigger(msg)
	}
}
