package tracker

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/kolkov/borrowguard/internal/borrow/violation"
)

// closedCount is the sentinel the counter is swapped to when the owner is
// torn down. It is deeply negative so that any registration racing against
// the close leaves the counter negative and is detected as a violation
// rather than silently succeeding against a dying owner.
const closedCount = math.MinInt64 / 2

// CountedTracker counts outstanding references with a single atomic integer.
//
// Counter protocol:
//
//	0            free, owner destructible
//	> 0          number of live references
//	closedCount  counting closed, owner destruction in progress
//
// Register and Unregister are lock-free. VerifyNoLiveHandles performs one
// compare-and-swap from 0 to closedCount; that close-and-check step is the
// only thing standing between destruction and a torn read, because a
// registration that sneaks in after a plain load-and-compare would alias a
// value mid-teardown.
type CountedTracker struct {
	counter  atomic.Int64
	vh       *violation.Handler
	typeName string
}

// Init binds the tracker to its owner's violation handler and reported type
// name. Called once by the owner cell before the first registration.
func (t *CountedTracker) Init(vh *violation.Handler, typeName string) {
	t.vh = vh
	t.typeName = typeName
}

// SetStackCapture is accepted for interface uniformity; the counted strategy
// stores no per-reference state to snapshot.
func (t *CountedTracker) SetStackCapture(bool) {}

// handler returns the bound violation handler, falling back to the
// process-wide one for trackers inside zero-value owners.
func (t *CountedTracker) handler() *violation.Handler {
	if t.vh == nil {
		return violation.Default()
	}
	return t.vh
}

// register records one new live reference.
func (t *CountedTracker) register() {
	if v := t.counter.Add(1); v <= 0 {
		// Only reachable when counting was already closed: the owner is
		// concurrently being destroyed, so this registration would alias a
		// dying value.
		t.handler().Trigger(fmt.Sprintf(
			"borrow checked variable of type <%s>: reference created while the owner is being destroyed", t.typeName))
	}
}

// unregister records one reference death. A counter that was not positive
// beforehand means double release or memory corruption.
func (t *CountedTracker) unregister() {
	if v := t.counter.Add(-1); v < 0 {
		t.handler().Trigger(fmt.Sprintf(
			"borrow checked variable of type <%s>: corrupted reference count", t.typeName))
	}
}

// VerifyNoLiveHandles atomically closes counting and reports a violation if
// any references were outstanding at the instant of the swap.
func (t *CountedTracker) VerifyNoLiveHandles() {
	if t.counter.CompareAndSwap(0, closedCount) {
		return
	}

	n := t.counter.Load()
	if n > 0 {
		t.handler().Trigger(fmt.Sprintf(
			"borrow checked variable of type <%s> destroyed with %d active reference(s)", t.typeName, n))
		return
	}
	t.handler().Trigger(fmt.Sprintf(
		"borrow checked variable of type <%s>: corrupted reference count at destruction", t.typeName))
}

// Count returns the current number of live references. Reporting only; the
// value may be stale by the time the caller looks at it.
func (t *CountedTracker) Count() int64 {
	return t.counter.Load()
}

// CountedHandle is the per-reference bookkeeping for the counted strategy:
// just the back-link to the owner's tracker.
type CountedHandle struct {
	t *CountedTracker
}

// Attach registers this handle with the tracker. A nil tracker leaves the
// handle unmanaged (legacy interop references).
func (h *CountedHandle) Attach(t *CountedTracker) {
	h.t = t
	if t != nil {
		t.register()
	}
}

// Release unregisters the handle and leaves it inert. Idempotent. While a
// violation is in flight the counter is left untouched: the report describes
// that state, and teardown running underneath it must not mutate it.
func (h *CountedHandle) Release() {
	if h.t == nil {
		return
	}
	if !h.t.handler().Active() {
		h.t.unregister()
	}
	h.t = nil
}

// Managed reports whether the handle participates in tracking.
func (h *CountedHandle) Managed() bool {
	return h.t != nil
}

// Tracker returns the tracker this handle is registered with, or nil.
func (h *CountedHandle) Tracker() *CountedTracker {
	return h.t
}
