// Package synced provides synchronized cells: owner cells whose value is
// reachable only while a matching lock is held, with the lock itself tied to
// the protected value's lifetime.
//
// A [Cell] composes a borrow.Var holding the protected value with a second
// borrow.Var holding a [RecursiveRWMutex]. Access goes through lock handles:
// [Cell.LockMut] returns an exclusive [Guard], [Cell.RLock] a shared
// [RGuard]. Each handle bundles a borrowed reference to the value with a
// borrowed reference to the lock, so destroying the cell while any handle is
// outstanding is detected as a dangling borrow exactly like a plain Var.
//
// A [Condition] binds wait/notify to a cell: waiting releases the caller's
// lock for the duration of the wait and reacquires it before re-evaluating
// the predicate. A [Blindfold] temporarily releases the lock underneath an
// already-constructed handle, for long-running callbacks that must not hold
// the cell locked.
package synced
