package borrow

import "github.com/kolkov/borrowguard/internal/borrow/tracker"

// TrackerMode reports the lifetime-tracking strategy compiled into this
// binary: "unchecked", "counted" or "tracked". The strategy is a build-time
// choice (build tags borrow_unchecked / borrow_tracked; counted is the
// default) because the owner cell's storage layout differs per strategy.
func TrackerMode() string {
	return tracker.Mode
}

// CaptureStacksForType enables or disables creation-site stack snapshots for
// every future owner cell holding a value of type T. Tracked mode only; a
// recorded preference under the other strategies has no effect. Snapshot
// capture is expensive, hence off by default; [Var.EnableStackCapture]
// overrides the type-wide setting per instance.
func CaptureStacksForType[T any](enabled bool) {
	tracker.SetTypeStackCapture(typeName[T](), enabled)
}
