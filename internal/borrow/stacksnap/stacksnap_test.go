package stacksnap

import (
	"strings"
	"testing"
)

// TestCaptureAndGet tests basic snapshot capture and retrieval.
func TestCaptureAndGet(t *testing.T) {
	Reset()

	hash := Capture(0)
	if hash == 0 {
		t.Fatal("Capture returned zero hash")
	}

	snap := Get(hash)
	if snap == nil {
		t.Fatal("Get returned nil for a freshly captured hash")
	}

	hasPC := false
	for _, pc := range snap.PC {
		if pc != 0 {
			hasPC = true
			break
		}
	}
	if !hasPC {
		t.Error("snapshot has no program counters")
	}
}

// TestDeduplication tests that the same call site yields one depot entry.
func TestDeduplication(t *testing.T) {
	Reset()

	var first, second uint64
	for i := 0; i < 2; i++ {
		h := Capture(0)
		if i == 0 {
			first = h
		} else {
			second = h
		}
	}

	if first != second {
		t.Errorf("same call site produced different hashes: %x != %x", first, second)
	}
	if Get(first) != Get(second) {
		t.Error("expected the same *Snapshot for deduplicated captures")
	}
	if n := Stats(); n != 1 {
		t.Errorf("depot holds %d snapshots, want 1", n)
	}
}

// TestGetUnknownHash tests lookups that must fail.
func TestGetUnknownHash(t *testing.T) {
	Reset()

	if Get(0) != nil {
		t.Error("Get(0) must return nil")
	}
	if Get(0xdeadbeefcafe) != nil {
		t.Error("Get of an unknown hash must return nil")
	}
}

// TestFormatNil tests the nil-snapshot placeholder.
func TestFormatNil(t *testing.T) {
	var snap *Snapshot
	if got := snap.Format(); !strings.Contains(got, "no snapshot") {
		t.Errorf("nil snapshot formatted as %q", got)
	}
}
