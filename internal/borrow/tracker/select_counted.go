// Selects the counted strategy. This is the default build: one atomic word
// per owner buys leak detection without per-reference storage.

//go:build !borrow_unchecked && !borrow_tracked

package tracker

// Mode names the strategy compiled into this binary.
const Mode = "counted"

type (
	// Tracker is the strategy selected at build time.
	Tracker = CountedTracker
	// Handle is the per-reference bookkeeping matching Tracker.
	Handle = CountedHandle
)
