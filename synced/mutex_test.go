package synced_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/borrowguard/borrow"
	"github.com/kolkov/borrowguard/synced"
)

// capturing returns a handler whose violations are collected instead of
// terminating the test process.
func capturing() (*borrow.ViolationHandler, *[]string) {
	var msgs []string
	h := borrow.NewViolationHandler()
	h.SetAction(func(msg string) { msgs = append(msgs, msg) })
	return h, &msgs
}

// captureDefault swaps the process-wide handler's action for the duration of
// one test, for code paths that cannot be given an injected handler.
func captureDefault(t *testing.T) *[]string {
	t.Helper()
	var msgs []string
	borrow.SetViolationAction(func(msg string) { msgs = append(msgs, msg) })
	t.Cleanup(func() {
		borrow.SetViolationAction(nil)
		borrow.DefaultViolationHandler().Clear()
	})
	return &msgs
}

func TestRecursiveExclusiveReentry(t *testing.T) {
	var m synced.RecursiveRWMutex

	m.Lock()
	m.Lock() // same goroutine, recursion
	assert.True(t, m.TryLock())

	m.Unlock()
	m.Unlock()
	assert.False(t, m.TryRLock()) // still exclusively held
	m.Unlock()                    // outermost

	assert.True(t, m.TryRLock()) // free now
	m.RUnlock()
}

func TestExclusiveExcludesShared(t *testing.T) {
	var m synced.RecursiveRWMutex

	m.Lock()
	assert.False(t, m.TryRLock())
	m.Unlock()

	m.RLock()
	assert.False(t, m.TryLock())
	m.RUnlock()
}

func TestSharedCoexistence(t *testing.T) {
	const readers = 8
	var m synced.RecursiveRWMutex
	var concurrent atomic.Int32
	var peak atomic.Int32

	var start, locked, done sync.WaitGroup
	start.Add(1)
	locked.Add(readers)
	done.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer done.Done()
			start.Wait()
			m.RLock()
			n := concurrent.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			locked.Done()
			locked.Wait() // hold until every reader has entered
			concurrent.Add(-1)
			m.RUnlock()
		}()
	}
	start.Done()
	done.Wait()

	assert.Equal(t, int32(readers), peak.Load())
}

func TestExclusiveUniquenessAcrossGoroutines(t *testing.T) {
	var m synced.RecursiveRWMutex
	var order []string
	var mu sync.Mutex
	note := func(s string) { mu.Lock(); order = append(order, s); mu.Unlock() }

	m.Lock()
	note("first acquired")

	acquired := make(chan struct{})
	go func() {
		m.Lock() // must block until the first holder releases
		note("second acquired")
		m.Unlock()
		close(acquired)
	}()

	// The second locker cannot have acquired yet.
	assert.False(t, m.TryRLock())
	note("first releasing")
	m.Unlock()
	<-acquired

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"first acquired", "first releasing", "second acquired"}, order)
}

func TestUnlockByNonOwnerViolates(t *testing.T) {
	msgs := captureDefault(t)
	var m synced.RecursiveRWMutex

	m.Lock()
	done := make(chan struct{})
	go func() {
		m.Unlock() // wrong goroutine
		close(done)
	}()
	<-done

	require.Len(t, *msgs, 1)
	assert.Contains(t, (*msgs)[0], "does not hold it exclusively")

	borrow.DefaultViolationHandler().Clear()
	m.Unlock()
}

func TestRUnlockWithoutHoldViolates(t *testing.T) {
	msgs := captureDefault(t)
	var m synced.RecursiveRWMutex

	m.RUnlock()

	require.Len(t, *msgs, 1)
	assert.Contains(t, (*msgs)[0], "not held shared")
}
