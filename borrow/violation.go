package borrow

import (
	"github.com/kolkov/borrowguard/internal/borrow/violation"
)

// ViolationHandler is the fatal-violation sink. The default action prints
// the report to stderr and terminates the process; embedding code may
// replace the action (tests do, to collect diagnostics), but a triggered
// violation is terminal from the library's point of view either way —
// tracking bookkeeping freezes until the handler is cleared.
type ViolationHandler = violation.Handler

// NewViolationHandler creates a handler with the default action, for
// injection into owner cells via [WithHandler].
func NewViolationHandler() *ViolationHandler {
	return violation.NewHandler()
}

// DefaultViolationHandler returns the process-wide handler used by every
// owner cell that was not given its own.
func DefaultViolationHandler() *ViolationHandler {
	return violation.Default()
}

// SetViolationAction replaces the process-wide handler's action. Passing nil
// restores the default (report to stderr, terminate).
func SetViolationAction(a func(msg string)) {
	violation.Default().SetAction(a)
}
