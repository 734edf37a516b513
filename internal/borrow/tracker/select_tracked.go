// Selects the tracked strategy: per-reference chain nodes and optional
// creation snapshots. Build with -tags borrow_tracked.

//go:build borrow_tracked && !borrow_unchecked

package tracker

// Mode names the strategy compiled into this binary.
const Mode = "tracked"

type (
	// Tracker is the strategy selected at build time.
	Tracker = TrackedTracker
	// Handle is the per-reference bookkeeping matching Tracker.
	Handle = TrackedHandle
)
