package borrow

import "fmt"

// Self lets a value create references to itself before any external
// reference exists. Embed it in the value type stored in a [Var]:
//
//	type Service struct {
//		borrow.Self[Service]
//		...
//	}
//
// The owning Var attaches itself during construction, before the
// post-construction hook runs. Self stores only the back-pointer to the
// owner, never a reference: a cached self-reference would count as
// permanently live and make the owner un-closable. Each RefFromThis call
// materializes a fresh reference instead.
type Self[T any] struct {
	owner *Var[T]
}

// attachTo is called by the owning Var during construction. The assertion in
// NewVar finds this method on *T through embedding.
func (s *Self[T]) attachTo(o *Var[T]) {
	s.owner = o
}

// RefFromThis returns a fresh managed reference to the embedding value.
// Calling it before the owner has attached — that is, from the value's
// constructor rather than its post-construction hook — is a fatal violation.
func (s *Self[T]) RefFromThis() *Ref[T] {
	if s.owner == nil {
		s.ownerlessViolation()
		return &Ref[T]{}
	}
	return s.owner.Borrow()
}

// Attached reports whether the owning Var has attached itself yet.
func (s *Self[T]) Attached() bool {
	return s.owner != nil
}

func (s *Self[T]) ownerlessViolation() {
	DefaultViolationHandler().Trigger(fmt.Sprintf(
		"RefFromThis on <%s> before an owner cell attached (call it from PostConstruct, not the constructor)",
		typeName[T]()))
}
