package tracker

import (
	"strings"
	"sync"
	"testing"
)

// TestTrackedChainOrder tests registration and release across orders: head,
// tail, middle. The chain stores only forward links, so release must find
// the predecessor from the head in every case.
func TestTrackedChainOrder(t *testing.T) {
	orders := map[string][]int{
		"lifo":   {2, 1, 0},
		"fifo":   {0, 1, 2},
		"middle": {1, 0, 2},
	}

	for name, order := range orders {
		t.Run(name, func(t *testing.T) {
			vh, msgs := capturingHandler()

			var tr TrackedTracker
			tr.Init(vh, "ordered")

			var handles [3]TrackedHandle
			for i := range handles {
				handles[i].Attach(&tr)
			}
			if got := tr.LiveHandles(); got != 3 {
				t.Fatalf("LiveHandles() = %d, want 3", got)
			}

			for _, i := range order {
				handles[i].Release()
			}

			tr.VerifyNoLiveHandles()
			if len(*msgs) != 0 {
				t.Fatalf("balanced release in %s order triggered: %v", name, *msgs)
			}
		})
	}
}

// TestTrackedVerifyReportsPerHandle tests completeness: N live references
// produce exactly N violation entries, regardless of creation order.
func TestTrackedVerifyReportsPerHandle(t *testing.T) {
	vh, msgs := capturingHandler()

	var tr TrackedTracker
	tr.Init(vh, "leaky")

	const n = 5
	var handles [n]TrackedHandle
	for i := range handles {
		handles[i].Attach(&tr)
	}
	handles[2].Release() // one legitimate release in the middle

	tr.VerifyNoLiveHandles()

	if len(*msgs) != n-1 {
		t.Fatalf("verify produced %d entries for %d live references", len(*msgs), n-1)
	}
	for _, m := range *msgs {
		if !strings.Contains(m, "<leaky>") {
			t.Errorf("entry does not name the type: %q", m)
		}
		if !strings.Contains(m, "owner destroyed at:") {
			t.Errorf("entry missing the destruction site: %q", m)
		}
	}
}

// TestTrackedForeignHandleIsCorruption tests releasing a handle that was
// never chained.
func TestTrackedForeignHandleIsCorruption(t *testing.T) {
	vh, msgs := capturingHandler()

	var tr TrackedTracker
	tr.Init(vh, "foreign")

	var h TrackedHandle
	h.t = &tr // bypass Attach: simulates a handle copied by assignment
	h.Release()

	if len(*msgs) != 1 || !strings.Contains((*msgs)[0], "chain is corrupted") {
		t.Fatalf("foreign release not detected: %v", *msgs)
	}
}

// TestTrackedConcurrentChurn tests that the per-tracker mutex serializes
// concurrent chain mutation.
func TestTrackedConcurrentChurn(t *testing.T) {
	vh, msgs := capturingHandler()

	var tr TrackedTracker
	tr.Init(vh, "churn")

	const workers = 8
	const rounds = 300

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				var h TrackedHandle
				h.Attach(&tr)
				h.Release()
			}
		}()
	}
	wg.Wait()

	if got := tr.LiveHandles(); got != 0 {
		t.Fatalf("LiveHandles() = %d after churn, want 0", got)
	}
	tr.VerifyNoLiveHandles()
	if len(*msgs) != 0 {
		t.Fatalf("concurrent churn left the chain dirty: %v", *msgs)
	}
}

// TestTrackedReleaseFrozenDuringViolation tests that teardown under a
// triggered violation leaves the chain untouched.
func TestTrackedReleaseFrozenDuringViolation(t *testing.T) {
	vh, _ := capturingHandler()

	var tr TrackedTracker
	tr.Init(vh, "frozen")

	var h TrackedHandle
	h.Attach(&tr)

	vh.Trigger("simulated violation")
	h.Release()

	if got := tr.LiveHandles(); got != 1 {
		t.Errorf("LiveHandles() = %d after release under violation, want 1 (frozen)", got)
	}
}
