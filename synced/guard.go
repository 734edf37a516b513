package synced

import (
	"github.com/kolkov/borrowguard/borrow"
)

// Guard is the exclusive lock handle: a borrowed reference to the protected
// value bundled with a borrowed reference to the lock, acquired exclusively.
// At most one goroutine holds exclusive access at a time (re-entry from the
// owning goroutine excepted).
//
// Guards are move-only: duplicate access is what shared handles are for.
// Dereferencing a released, moved-from or blindfolded Guard is misuse and
// fails as a nil-pointer dereference.
type Guard[T any] struct {
	ref  *borrow.Ref[T]
	lock *borrow.Ref[RecursiveRWMutex]
}

// Get returns the protected value. The pointer must not escape the guard's
// locked scope.
func (g *Guard[T]) Get() *T {
	return g.ref.Get()
}

// Set replaces the protected value.
func (g *Guard[T]) Set(v T) {
	*g.ref.Get() = v
}

// Move transfers the handle to a returned new Guard and degrades the source
// to a null, inert state. The lock is not released or reacquired.
func (g *Guard[T]) Move() *Guard[T] {
	n := &Guard[T]{ref: g.ref, lock: g.lock}
	g.ref, g.lock = nil, nil
	return n
}

// Release unlocks and drops both references. Idempotent.
func (g *Guard[T]) Release() {
	if g.lock == nil {
		return
	}
	g.lock.Get().Unlock()
	g.ref.Release()
	g.lock.Release()
	g.ref, g.lock = nil, nil
}

// Blindfold releases the lock underneath this guard for a scoped duration,
// moving the guard's state into the returned Blindfold. The guard itself
// becomes inert until the blindfold closes; using it meanwhile is moved-from
// misuse. Both borrowed references stay registered throughout, so the cell
// still cannot be destroyed while the blindfold is open.
func (g *Guard[T]) Blindfold() *Blindfold {
	ref, lock := g.ref, g.lock
	g.ref, g.lock = nil, nil
	lock.Get().Unlock()
	return &Blindfold{restore: func() {
		lock.Get().Lock()
		g.ref, g.lock = ref, lock
	}}
}

func (g *Guard[T]) valuePtr() *T { return g.ref.Get() }

func (g *Guard[T]) suspend() { g.lock.Get().Unlock() }
func (g *Guard[T]) resume()  { g.lock.Get().Lock() }

// RGuard is the shared lock handle. Any number of RGuards on the same cell
// may be held concurrently from different goroutines; the protected value is
// read-only through them by convention (the lock enforces exclusion, not
// const-ness).
type RGuard[T any] struct {
	ref  *borrow.Ref[T]
	lock *borrow.Ref[RecursiveRWMutex]
}

// Get returns the protected value.
func (g *RGuard[T]) Get() *T {
	return g.ref.Get()
}

// Clone acquires an additional shared hold and returns an independent
// handle. Never blocks: the lock is already shared.
func (g *RGuard[T]) Clone() *RGuard[T] {
	n := &RGuard[T]{ref: g.ref.Clone(), lock: g.lock.Clone()}
	n.lock.Get().RLock()
	return n
}

// Move transfers the handle to a returned new RGuard and degrades the source
// to a null, inert state.
func (g *RGuard[T]) Move() *RGuard[T] {
	n := &RGuard[T]{ref: g.ref, lock: g.lock}
	g.ref, g.lock = nil, nil
	return n
}

// Release drops the shared hold and both references. Idempotent.
func (g *RGuard[T]) Release() {
	if g.lock == nil {
		return
	}
	g.lock.Get().RUnlock()
	g.ref.Release()
	g.lock.Release()
	g.ref, g.lock = nil, nil
}

// Blindfold releases the shared hold underneath this guard for a scoped
// duration; see [Guard.Blindfold].
func (g *RGuard[T]) Blindfold() *Blindfold {
	ref, lock := g.ref, g.lock
	g.ref, g.lock = nil, nil
	lock.Get().RUnlock()
	return &Blindfold{restore: func() {
		lock.Get().RLock()
		g.ref, g.lock = ref, lock
	}}
}

func (g *RGuard[T]) valuePtr() *T { return g.ref.Get() }

func (g *RGuard[T]) suspend() { g.lock.Get().RUnlock() }
func (g *RGuard[T]) resume()  { g.lock.Get().RLock() }

// Blindfold is the scoped temporary release of a lock handle's underlying
// lock. Closing it reacquires the lock and restores the originating handle.
type Blindfold struct {
	restore func()
}

// Close reacquires the lock and restores the originating handle. Idempotent.
// Blocks until the lock can be reacquired in the handle's original mode.
func (b *Blindfold) Close() {
	if b.restore == nil {
		return
	}
	b.restore()
	b.restore = nil
}
