package tracker

import (
	"fmt"
	"strings"
	"sync"

	"github.com/kolkov/borrowguard/internal/borrow/stacksnap"
	"github.com/kolkov/borrowguard/internal/borrow/violation"
)

// typeCapture holds the per-type stack-snapshot toggle: type name → bool.
// Consulted once per tracker at Init; per-instance SetStackCapture overrides
// it afterwards.
var typeCapture sync.Map

// SetTypeStackCapture enables or disables registration snapshots for every
// future tracker whose owner holds a value of the named type. Snapshot
// capture is expensive, so the default is off.
func SetTypeStackCapture(typeName string, enabled bool) {
	typeCapture.Store(typeName, enabled)
}

// TypeStackCapture reports the per-type toggle for typeName.
func TypeStackCapture(typeName string) bool {
	v, ok := typeCapture.Load(typeName)
	return ok && v.(bool)
}

// TrackedTracker records every live reference as a node in an intrusive
// singly-linked list rooted at the tracker.
//
// Registration pushes at the head: O(1), and the common pattern is that
// newer references die before older ones, so the release walk usually stops
// immediately. Unregistration locates the predecessor by walking from the
// head — an O(n) cost accepted deliberately: outstanding borrows per owner
// are expected to number a handful, and a forward-only node is half the size
// of a doubly-linked one. All list mutation is serialized by one mutex per
// tracker.
type TrackedTracker struct {
	mu       sync.Mutex
	head     *TrackedHandle
	capture  bool
	vh       *violation.Handler
	typeName string
}

// Init binds the tracker to its owner's violation handler and type name, and
// seeds the snapshot toggle from the per-type registry.
func (t *TrackedTracker) Init(vh *violation.Handler, typeName string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.vh = vh
	t.typeName = typeName
	t.capture = TypeStackCapture(typeName)
}

// SetStackCapture toggles registration snapshots for this tracker instance,
// overriding the per-type default. Affects only future registrations.
func (t *TrackedTracker) SetStackCapture(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.capture = enabled
}

func (t *TrackedTracker) handler() *violation.Handler {
	if t.vh == nil {
		return violation.Default()
	}
	return t.vh
}

// register links the node at the head of the chain and, when enabled,
// records where the reference was created.
func (t *TrackedTracker) register(h *TrackedHandle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	h.next = t.head
	t.head = h
	if t.capture {
		h.snap = stacksnap.Capture(0)
	}
}

// unregister unlinks the node. A node that is not on the chain means the
// reference bookkeeping has been corrupted (typically a handle copied by
// plain assignment instead of Clone).
func (t *TrackedTracker) unregister(h *TrackedHandle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := &t.head
	for *prev != nil {
		if *prev == h {
			*prev = h.next
			h.next = nil
			return
		}
		prev = &(*prev).next
	}

	t.handler().Trigger(fmt.Sprintf(
		"borrow checked variable of type <%s>: reference not found, chain is corrupted", t.typeName))
}

// VerifyNoLiveHandles walks the chain and triggers the violation handler
// once per surviving reference, pairing each reference's creation snapshot
// (when captured) with the destruction site. The state is already unsafe to
// continue from; with the default handler action the first entry terminates
// the process.
func (t *TrackedTracker) VerifyNoLiveHandles() {
	t.mu.Lock()
	var survivors []*TrackedHandle
	for h := t.head; h != nil; h = h.next {
		survivors = append(survivors, h)
	}
	t.mu.Unlock()

	if len(survivors) == 0 {
		return
	}

	destructionSite := stacksnap.Get(stacksnap.Capture(1)).Format()

	for _, h := range survivors {
		var msg strings.Builder
		fmt.Fprintf(&msg, "borrow checked variable of type <%s> destroyed with an active reference\n", t.typeName)
		msg.WriteString("reference created at:\n")
		msg.WriteString(stacksnap.Get(h.snap).Format())
		msg.WriteString("owner destroyed at:\n")
		msg.WriteString(destructionSite)
		t.handler().Trigger(msg.String())
	}
}

// LiveHandles returns the current chain length. Reporting and tests only.
func (t *TrackedTracker) LiveHandles() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for h := t.head; h != nil; h = h.next {
		n++
	}
	return n
}

// TrackedHandle is one intrusive chain node: forward link, optional creation
// snapshot, back-link to the tracker.
type TrackedHandle struct {
	next *TrackedHandle
	snap uint64
	t    *TrackedTracker
}

// Attach registers this handle with the tracker. A nil tracker leaves the
// handle unmanaged.
func (h *TrackedHandle) Attach(t *TrackedTracker) {
	h.t = t
	if t != nil {
		t.register(h)
	}
}

// Release unlinks the handle and leaves it inert. Idempotent; a no-op while
// a violation is in flight so that teardown does not rewrite the chain the
// report is describing.
func (h *TrackedHandle) Release() {
	if h.t == nil {
		return
	}
	if !h.t.handler().Active() {
		h.t.unregister(h)
	}
	h.t = nil
	h.snap = 0
}

// Managed reports whether the handle participates in tracking.
func (h *TrackedHandle) Managed() bool {
	return h.t != nil
}

// Tracker returns the tracker this handle is registered with, or nil.
func (h *TrackedHandle) Tracker() *TrackedTracker {
	return h.t
}
