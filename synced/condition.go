package synced

import (
	"sync"
	"time"

	"github.com/kolkov/borrowguard/borrow"
)

// WaitResult reports how a condition wait ended.
type WaitResult int

const (
	// CriteriaMet means the predicate held when the wait returned.
	CriteriaMet WaitResult = iota
	// TimedOut means the timeout elapsed with the predicate still false.
	TimedOut
)

func (r WaitResult) String() string {
	if r == CriteriaMet {
		return "criteria met"
	}
	return "timeout"
}

// Locked is a lock handle usable with a [Condition]: both [Guard] and
// [RGuard] satisfy it. Only handles created by this package implement it.
type Locked[T any] interface {
	// Get returns the protected value.
	Get() *T

	valuePtr() *T
	suspend()
	resume()
}

// Condition binds wait/notify to one synchronized cell. It holds a borrowed
// reference to the cell's protected value, so the condition cannot silently
// outlive the cell: closing the cell with a live condition is a dangling
// borrow.
//
// Waiting releases the caller's lock hold for the duration of the park and
// reacquires it before the predicate is re-evaluated, so the predicate
// always runs under the lock. Notifiers must hold the matching lock while
// mutating state the predicate observes; the notify calls themselves may be
// made without it.
type Condition[T any] struct {
	ref *borrow.Ref[T]
	vh  *borrow.ViolationHandler

	mu      sync.Mutex // protects waiters only
	waiters []chan struct{}
}

// NewCondition creates a condition bound to cell. Release it with
// [Condition.Close] before closing the cell.
func NewCondition[T any](cell *Cell[T]) *Condition[T] {
	return &Condition[T]{ref: cell.value.Borrow(), vh: cell.handler()}
}

// Close drops the condition's reference to the cell. Waiters must have
// returned; waiting on a closed condition is a mismatched-condition
// violation.
func (c *Condition[T]) Close() {
	c.ref.Release()
}

// Wait blocks the calling goroutine until pred holds. g must be a lock
// handle on the same cell this condition is bound to; anything else is a
// fatal mismatched-condition violation. pred is evaluated with the lock
// held, first immediately and then after every notification.
func (c *Condition[T]) Wait(g Locked[T], pred func(*T) bool) WaitResult {
	return c.wait(g, pred, 0, false)
}

// WaitTimeout is Wait with an upper bound on the total blocking time.
// Returns [CriteriaMet] or [TimedOut]; on timeout the lock is reacquired and
// the predicate gets one final evaluation before the verdict.
func (c *Condition[T]) WaitTimeout(g Locked[T], pred func(*T) bool, d time.Duration) WaitResult {
	return c.wait(g, pred, d, true)
}

func (c *Condition[T]) wait(g Locked[T], pred func(*T) bool, d time.Duration, timed bool) WaitResult {
	if c.ref.Get() == nil || c.ref.Get() != g.valuePtr() {
		c.handler().Trigger("condition: wait with a lock handle not bound to this condition's cell")
		return TimedOut
	}

	var deadline time.Time
	if timed {
		deadline = time.Now().Add(d)
	}

	for {
		if pred(g.Get()) {
			return CriteriaMet
		}

		// Register before suspending: a notify that lands between the
		// predicate check and the park must not be lost.
		ch := make(chan struct{})
		c.mu.Lock()
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()

		if !timed {
			g.suspend()
			<-ch
			g.resume()
			continue
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			c.abandon(ch)
			return c.verdict(g, pred)
		}

		timer := time.NewTimer(remaining)
		g.suspend()
		select {
		case <-ch:
			timer.Stop()
			g.resume()
		case <-timer.C:
			g.resume()
			c.abandon(ch)
			return c.verdict(g, pred)
		}
	}
}

// verdict gives the predicate one final look under the lock after a timeout.
// A notification may have raced the timer; the caller deserves the truth at
// return time, not at expiry time.
func (c *Condition[T]) verdict(g Locked[T], pred func(*T) bool) WaitResult {
	if pred(g.Get()) {
		return CriteriaMet
	}
	return TimedOut
}

// abandon removes a waiter registration that timed out before being
// notified. If a notification already consumed the slot, the wakeup is
// simply absorbed here.
func (c *Condition[T]) abandon(ch chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, w := range c.waiters {
		if w == ch {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			return
		}
	}
}

// NotifyOne wakes one waiter, if any are parked.
func (c *Condition[T]) NotifyOne() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.waiters) == 0 {
		return
	}
	close(c.waiters[0])
	c.waiters = c.waiters[1:]
}

// NotifyAll wakes every parked waiter.
func (c *Condition[T]) NotifyAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range c.waiters {
		close(w)
	}
	c.waiters = nil
}

func (c *Condition[T]) handler() *borrow.ViolationHandler {
	if c.vh == nil {
		return borrow.DefaultViolationHandler()
	}
	return c.vh
}
