package borrow

import (
	"fmt"
	"reflect"

	"github.com/kolkov/borrowguard/internal/borrow/tracker"
	"github.com/kolkov/borrowguard/internal/borrow/violation"
)

// PostConstructed is implemented by values that want a hook once their owner
// cell has attached itself. At that point, and not before, the value can
// produce references to itself (see [Self]). Re-running the hook after a
// copy into a new owner is deliberate: the value's identity changed.
type PostConstructed interface {
	PostConstruct()
}

// PreDestroyed is implemented by values that want a hook immediately before
// the owner's dangling check. The hook is the place to revoke callbacks and
// registrations holding self-references; it runs before the tracker check,
// and the check runs before the value is torn down, so a concurrent reader
// through a wrongly surviving reference can never race the teardown.
type PreDestroyed interface {
	PreDestroy()
}

// noCopy makes `go vet -copylocks` flag value copies of Var. A Var must stay
// at one address: its tracker is registered state.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Var uniquely owns a value of type T together with one lifetime tracker.
//
// The value is never exposed by value or raw pointer; [Var.Borrow] is the
// only way in. Var is created by [NewVar] (or its variants) and destroyed by
// [Var.Close]; closing while any managed [Ref] is still alive is a fatal
// dangling-borrow violation.
type Var[T any] struct {
	noCopy  noCopy
	value   T
	tracker tracker.Tracker
	vh      *violation.Handler
	closed  bool
}

// Option configures owner-cell construction.
type Option func(*varConfig)

type varConfig struct {
	handler *violation.Handler
}

// WithHandler routes this owner's violations to h instead of the
// process-wide handler.
func WithHandler(h *ViolationHandler) Option {
	return func(c *varConfig) { c.handler = h }
}

// NewVar creates an owner cell holding value.
//
// Construction order: the tracker is bound, the value's [Self] mixin (if
// embedded) is attached, then the value's [PostConstructed] hook (if
// implemented) runs. After NewVar returns, the value is reachable only
// through [Var.Borrow].
func NewVar[T any](value T, opts ...Option) *Var[T] {
	cfg := varConfig{handler: violation.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	v := &Var[T]{value: value, vh: cfg.handler}
	v.tracker.Init(cfg.handler, typeName[T]())

	if s, ok := any(&v.value).(interface{ attachTo(*Var[T]) }); ok {
		s.attachTo(v)
	}
	if pc, ok := any(&v.value).(PostConstructed); ok {
		pc.PostConstruct()
	}
	return v
}

// NewVarFromRef creates an independent owner cell holding a copy of the
// value behind r. The source's tracker state is not copied — each owner
// tracks only its own references.
func NewVarFromRef[T any](r *Ref[T], opts ...Option) *Var[T] {
	return NewVar(*r.Get(), opts...)
}

// Clone creates an independent owner cell holding a copy of this owner's
// value. The copy is taken through a fresh borrow, and the new cell re-runs
// the post-construction hook: the value's identity changed.
func (v *Var[T]) Clone(opts ...Option) *Var[T] {
	r := v.Borrow()
	defer r.Release()
	return NewVar(*r.Get(), opts...)
}

// Borrow creates a new managed reference to the owned value.
//
// Borrowing is logically read-only on the owner: it creates a reference,
// it never transfers or mutates ownership.
func (v *Var[T]) Borrow() *Ref[T] {
	r := &Ref[T]{ptr: &v.value}
	r.h.Attach(&v.tracker)
	return r
}

// Set replaces the owned value. Existing references observe the new value;
// the replacement itself is not synchronized (wrap the Var in a
// synchronized cell if concurrent writers exist).
func (v *Var[T]) Set(value T) {
	v.value = value
}

// EnableStackCapture toggles per-registration stack snapshots for this owner
// (tracked mode only; a no-op under the other strategies). Returns the Var
// for chaining at construction sites.
func (v *Var[T]) EnableStackCapture(enabled bool) *Var[T] {
	v.tracker.SetStackCapture(enabled)
	return v
}

// Close destroys the owner cell.
//
// Order is load-bearing: the pre-destruction hook runs first (revoking
// callbacks that hold self-references), then the tracker is asked to verify
// that no references survive, then the value is torn down. A reference still
// alive at the check is a fatal dangling-borrow violation.
func (v *Var[T]) Close() {
	if v.closed {
		v.handler().Trigger(fmt.Sprintf("owner cell of type <%s> closed twice", typeName[T]()))
		return
	}
	v.closed = true

	if pd, ok := any(&v.value).(PreDestroyed); ok {
		pd.PreDestroy()
	}

	v.tracker.VerifyNoLiveHandles()

	// Teardown: drop the owned value so anything it references can be
	// collected even if the Var itself is still reachable.
	var zero T
	v.value = zero
}

func (v *Var[T]) handler() *violation.Handler {
	if v.vh == nil {
		return violation.Default()
	}
	return v.vh
}

// typeName reports T's name the way violation reports spell it.
func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
