package tracker

import "github.com/kolkov/borrowguard/internal/borrow/violation"

// UncheckedTracker is the zero-overhead strategy: no storage, no checks.
// Selected once a program has been proven clean under the counted or tracked
// strategy.
type UncheckedTracker struct{}

// Init is a no-op; unchecked owners never report.
func (t *UncheckedTracker) Init(*violation.Handler, string) {}

// SetStackCapture is a no-op.
func (t *UncheckedTracker) SetStackCapture(bool) {}

// VerifyNoLiveHandles is a no-op: in unchecked mode a dangling reference has
// exactly the semantics of a dangling raw pointer.
func (t *UncheckedTracker) VerifyNoLiveHandles() {}

// UncheckedHandle carries no state beyond the tracker back-link, which is
// kept only so that Clone and the cast helpers can re-attach to the same
// owner uniformly across strategies.
type UncheckedHandle struct {
	t *UncheckedTracker
}

// Attach records the back-link; nothing is registered.
func (h *UncheckedHandle) Attach(t *UncheckedTracker) {
	h.t = t
}

// Release makes the handle inert.
func (h *UncheckedHandle) Release() {
	h.t = nil
}

// Managed always reports false: unchecked references are indistinguishable
// from raw pointers.
func (h *UncheckedHandle) Managed() bool {
	return false
}

// Tracker returns the tracker back-link, or nil.
func (h *UncheckedHandle) Tracker() *UncheckedTracker {
	return h.t
}
