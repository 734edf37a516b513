package borrow

import "github.com/kolkov/borrowguard/internal/borrow/tracker"

// Ref is a non-owning reference to a value held by a [Var].
//
// A Ref is either managed (created from a Var; registered with the owner's
// tracker until released) or unmanaged (created by [Unmanaged] from a plain
// pointer; never tracked, for interop with call sites that predate the
// borrow checker).
//
// Refs are handle objects: duplicate them with [Ref.Clone], transfer them
// with [Ref.Move], end them with [Ref.Release]. Plain struct assignment of a
// Ref value is not supported — it would alias one registration under two
// names. Dereferencing a released or moved-from Ref is misuse and is not
// specially guarded (it fails as a nil-pointer dereference), mirroring the
// rule for moved-from raw references.
type Ref[T any] struct {
	ptr *T
	h   tracker.Handle
}

// Unmanaged wraps a plain pointer in a Ref without any tracking. Intended
// only for passing legacy values into APIs that take Refs; the caller keeps
// full responsibility for the pointee's lifetime.
func Unmanaged[T any](v *T) *Ref[T] {
	return &Ref[T]{ptr: v}
}

// Get returns the referenced value. The pointer must not be stored beyond
// the Ref's lifetime — doing so recreates exactly the dangling-pointer
// problem this package exists to catch.
func (r *Ref[T]) Get() *T {
	return r.ptr
}

// Clone creates an additional reference to the same owner. The clone
// registers independently: both the original and the clone must be released.
func (r *Ref[T]) Clone() *Ref[T] {
	n := &Ref[T]{ptr: r.ptr}
	n.h.Attach(r.h.Tracker())
	return n
}

// Move transfers the reference to a returned new Ref and degrades the source
// to a null, inert state.
func (r *Ref[T]) Move() *Ref[T] {
	n := &Ref[T]{ptr: r.ptr}
	n.h.Attach(r.h.Tracker())
	r.Release()
	return n
}

// Release unregisters the reference and makes it inert. Idempotent.
func (r *Ref[T]) Release() {
	r.h.Release()
	r.ptr = nil
}

// Managed reports whether this Ref participates in lifetime tracking.
// Unmanaged, released, and moved-from Refs report false, as does every Ref
// in an unchecked build.
func (r *Ref[T]) Managed() bool {
	return r.h.Managed()
}

// Same reports whether two Refs reference the same value. Identity of the
// references, not equality of the values — the smart-pointer convention.
func (r *Ref[T]) Same(other *Ref[T]) bool {
	return r.ptr == other.ptr
}
