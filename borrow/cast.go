package borrow

import "unsafe"

// Cast re-views a reference through a different type, registering a fresh
// reference on the same owner. conv must return a pointer derived from its
// argument — typically the address of an embedded field:
//
//	type Animal struct{ Name string }
//	type Dog struct {
//		Animal // embedded first: Downcast can reverse this
//		Breed  string
//	}
//
//	dog := borrow.NewVar(Dog{...})
//	d := dog.Borrow()
//	a := borrow.Cast(d, func(d *Dog) *Animal { return &d.Animal })
//
// The cast reference tracks the same owner as the original; both must be
// released before the owner closes.
func Cast[U, T any](r *Ref[T], conv func(*T) *U) *Ref[U] {
	n := &Ref[U]{ptr: conv(r.ptr)}
	n.h.Attach(r.h.Tracker())
	return n
}

// Downcast statically reverses an embedded-first-field upcast: it reinterprets
// a reference to T as a reference to D, valid only when the referenced T is
// the first (embedded) field of a D. No type check is performed — this is
// the static downcast, and misusing it is undefined behavior exactly as a
// wrong pointer cast is.
//
// The returned reference registers on the same owner as the original.
func Downcast[D, T any](r *Ref[T]) *Ref[D] {
	//nolint:gosec // deliberate static downcast; contract documented above
	n := &Ref[D]{ptr: (*D)(unsafe.Pointer(r.ptr))}
	n.h.Attach(r.h.Tracker())
	return n
}
