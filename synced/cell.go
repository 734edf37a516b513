package synced

import (
	"github.com/kolkov/borrowguard/borrow"
)

// Cell owns a value of type T and a [RecursiveRWMutex], and exposes the
// value only through lock handles. Both the value and the lock live in owner
// cells, and the Cell keeps one borrowed reference to the lock for its whole
// lifetime: the lock participates in dangling detection symmetrically with
// the protected value.
type Cell[T any] struct {
	value   *borrow.Var[T]
	lock    *borrow.Var[RecursiveRWMutex]
	lockRef *borrow.Ref[RecursiveRWMutex]
	vh      *borrow.ViolationHandler
}

// CellOption configures synchronized-cell construction.
type CellOption func(*cellConfig)

type cellConfig struct {
	handler *borrow.ViolationHandler
}

// WithHandler routes violations from this cell, its lock and its conditions
// to h instead of the process-wide handler.
func WithHandler(h *borrow.ViolationHandler) CellOption {
	return func(c *cellConfig) { c.handler = h }
}

// NewCell creates a synchronized cell protecting value.
func NewCell[T any](value T, opts ...CellOption) *Cell[T] {
	cfg := cellConfig{handler: borrow.DefaultViolationHandler()}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Cell[T]{
		value: borrow.NewVar(value, borrow.WithHandler(cfg.handler)),
		lock:  borrow.NewVar(RecursiveRWMutex{}, borrow.WithHandler(cfg.handler)),
		vh:    cfg.handler,
	}
	c.lockRef = c.lock.Borrow()
	c.lockRef.Get().setHandler(cfg.handler)
	return c
}

// LockMut acquires the lock exclusively and returns the exclusive handle.
// Blocks until no other goroutine holds the lock; re-entry from a goroutine
// already holding it exclusively succeeds immediately.
func (c *Cell[T]) LockMut() *Guard[T] {
	g := &Guard[T]{ref: c.value.Borrow(), lock: c.lockRef.Clone()}
	g.lock.Get().Lock()
	return g
}

// RLock acquires the lock shared and returns the shared handle. Any number
// of shared handles may coexist.
func (c *Cell[T]) RLock() *RGuard[T] {
	g := &RGuard[T]{ref: c.value.Borrow(), lock: c.lockRef.Clone()}
	g.lock.Get().RLock()
	return g
}

// Clone copies the protected value, under the source's shared lock, into an
// independent new cell with a fresh lock.
func (c *Cell[T]) Clone(opts ...CellOption) *Cell[T] {
	g := c.RLock()
	defer g.Release()
	return NewCell(*g.Get(), opts...)
}

// Close destroys the cell. The value cell is closed first so an outstanding
// lock handle is reported against the protected value, then the cell's own
// lock reference is dropped, then the lock cell is closed, which catches
// handles that survived with only their lock reference intact.
func (c *Cell[T]) Close() {
	c.value.Close()
	c.lockRef.Release()
	c.lock.Close()
}

func (c *Cell[T]) handler() *borrow.ViolationHandler {
	if c.vh == nil {
		return borrow.DefaultViolationHandler()
	}
	return c.vh
}
