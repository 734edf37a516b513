// Selects the unchecked strategy: all tracking compiled out. Build with
// -tags borrow_unchecked. Takes precedence over borrow_tracked if both tags
// are set, matching the intuition that "unchecked" means "off".

//go:build borrow_unchecked

package tracker

// Mode names the strategy compiled into this binary.
const Mode = "unchecked"

type (
	// Tracker is the strategy selected at build time.
	Tracker = UncheckedTracker
	// Handle is the per-reference bookkeeping matching Tracker.
	Handle = UncheckedHandle
)
