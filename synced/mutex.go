package synced

import (
	"sync"

	"github.com/kolkov/borrowguard/borrow"
	"github.com/kolkov/borrowguard/internal/borrow/goid"
)

// RecursiveRWMutex is a shared-exclusive lock whose exclusive side is
// recursive: the goroutine holding it exclusively may lock it again without
// deadlocking itself.
//
// State is one signed counter:
//
//	count == 0   free
//	count > 0    count shared holders, any goroutines
//	count < 0    exclusive, held -count times by the recorded owner goroutine
//
// There is no fairness guarantee beyond what the internal condition variable
// provides: when the lock frees up, any waiter (shared or exclusive) may win.
//
// Unlike sync.RWMutex, unlock operations are checked: unlocking from a
// goroutine that does not hold the lock in the matching mode is a fatal
// violation, not silent corruption.
//
// The zero value is an unlocked mutex.
type RecursiveRWMutex struct {
	mu    sync.Mutex
	cond  *sync.Cond
	count int64
	owner int64
	vh    *borrow.ViolationHandler
}

// waitCond returns the condition variable, creating it on first use.
// Callers hold m.mu. Lazy creation keeps the zero value usable and lets the
// mutex be copied into an owner cell before its first lock operation.
func (m *RecursiveRWMutex) waitCond() *sync.Cond {
	if m.cond == nil {
		m.cond = sync.NewCond(&m.mu)
	}
	return m.cond
}

func (m *RecursiveRWMutex) handler() *borrow.ViolationHandler {
	if m.vh == nil {
		return borrow.DefaultViolationHandler()
	}
	return m.vh
}

// setHandler routes this mutex's violations to h. Called by Cell during
// construction, before the mutex is shared.
func (m *RecursiveRWMutex) setHandler(h *borrow.ViolationHandler) {
	m.vh = h
}

// Lock acquires the lock exclusively, blocking until it is free or already
// exclusively held by the calling goroutine (recursive re-entry).
func (m *RecursiveRWMutex) Lock() {
	me := goid.Get()
	m.mu.Lock()
	defer m.mu.Unlock()
	for !m.tryLockLocked(me) {
		m.waitCond().Wait()
	}
}

// TryLock acquires the lock exclusively without blocking, reporting whether
// it succeeded. Recursive re-entry by the current exclusive owner succeeds.
func (m *RecursiveRWMutex) TryLock() bool {
	me := goid.Get()
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tryLockLocked(me)
}

// tryLockLocked attempts one exclusive acquisition. Callers hold m.mu.
func (m *RecursiveRWMutex) tryLockLocked(me int64) bool {
	switch {
	case m.count == 0:
		m.count = -1
		m.owner = me
		return true
	case m.count < 0 && m.owner == me:
		m.count--
		return true
	}
	return false
}

// Unlock releases one level of exclusive ownership. When the outermost level
// is released the lock becomes free and all waiters are woken: both shared
// and exclusive candidates may be parked, and either kind may proceed.
//
// Unlocking from a goroutine that is not the exclusive owner is a fatal
// violation.
func (m *RecursiveRWMutex) Unlock() {
	me := goid.Get()
	m.mu.Lock()
	if m.count >= 0 || m.owner != me {
		m.mu.Unlock()
		m.handler().Trigger("shared-exclusive lock: Unlock by a goroutine that does not hold it exclusively")
		return
	}
	m.count++
	if m.count == 0 {
		m.owner = 0
		m.waitCond().Broadcast()
	}
	m.mu.Unlock()
}

// RLock acquires the lock shared, blocking while an exclusive holder exists.
// Any number of goroutines may hold the lock shared simultaneously.
func (m *RecursiveRWMutex) RLock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for m.count < 0 {
		m.waitCond().Wait()
	}
	m.count++
}

// TryRLock acquires the lock shared without blocking, reporting whether it
// succeeded.
func (m *RecursiveRWMutex) TryRLock() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.count < 0 {
		return false
	}
	m.count++
	return true
}

// RUnlock releases one shared hold. The last shared holder wakes a single
// waiter: shared waiters never park behind other shared holders, so anyone
// still parked is an exclusive candidate and waking one is enough.
//
// RUnlock of a lock not held shared is a fatal violation.
func (m *RecursiveRWMutex) RUnlock() {
	m.mu.Lock()
	if m.count <= 0 {
		m.mu.Unlock()
		m.handler().Trigger("shared-exclusive lock: RUnlock of a lock not held shared")
		return
	}
	m.count--
	if m.count == 0 {
		m.waitCond().Signal()
	}
	m.mu.Unlock()
}
