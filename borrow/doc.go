// Package borrow provides runtime-checked ownership for Go values: owner
// cells that uniquely hold a value, and borrowed references that are
// guaranteed — at run time — not to outlive the owner.
//
// Go's garbage collector keeps memory alive, but it does not keep *meaning*
// alive: a callback that holds a pointer into a subsystem that has been shut
// down will happily dereference a value whose invariants are gone. This
// package retrofits the missing guarantee. A [Var] owns a value; [Var.Borrow]
// hands out a [Ref]; closing the Var while any Ref is still registered is a
// fatal violation, reported through a pluggable handler before the process
// terminates.
//
// # Tracking strategies
//
// How much the bookkeeping costs is a build-time choice:
//
//   - counted (default): one atomic counter per owner. Detects leaks and
//     reports how many references survived.
//   - tracked (-tags borrow_tracked): a per-owner chain of reference nodes,
//     optionally recording the stack of every registration. Reports each
//     surviving reference individually, with its creation site.
//   - unchecked (-tags borrow_unchecked): all checks compiled out; a Ref
//     costs exactly what a raw pointer costs.
//
// [TrackerMode] reports the strategy compiled into the binary. The usual
// progression is tracked during bring-up, counted in CI, unchecked once the
// program has earned it.
//
// # Violations are fatal
//
// Every violation this package detects means the program's invariants are
// already broken — undefined behavior would otherwise already be underway.
// Nothing here is designed to be recovered from: the handler reports and the
// process terminates. Tests may replace the handler action to observe
// reports (see [SetViolationAction]).
//
// # Lifecycle hooks
//
// A value stored in a Var may implement [PostConstructed] and
// [PreDestroyed]. The post-construction hook runs once the owner is
// attached, so it is the first moment [Self.RefFromThis] works; the
// pre-destruction hook runs before the tracker check, which makes it the
// idiomatic place to revoke callbacks that hold self-references.
package borrow
