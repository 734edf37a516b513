// Package stacksnap stores deduplicated stack snapshots for borrow tracking.
//
// Tracked-mode registration optionally records where each live reference was
// created. Identical creation sites are common (the same Borrow call in a
// loop), so snapshots are stored once in a global depot and referenced by a
// 64-bit hash: the per-handle cost of an enabled snapshot is the capture
// itself plus one uint64.
//
// Design:
//   - Fixed-size snapshots (16 frames, 128 bytes per snapshot)
//   - FNV-1a hash deduplication
//   - Global sync.Map storage (lock-free reads, snapshots are never mutated)
//
// Capture is the expensive part (runtime.Callers plus hashing), which is why
// snapshot recording is opt-in per type or per instance; formatting only
// happens while a violation report is being produced.
package stacksnap

import (
	"fmt"
	"hash/fnv"
	"runtime"
	"strings"
	"sync"
	"unsafe"
)

// MaxFrames is the number of frames kept per snapshot. Borrow sites tend to
// sit deeper in application code than race sites do, so this is wider than a
// race detector would use.
const MaxFrames = 16

// Snapshot is a fixed-size captured call stack.
type Snapshot struct {
	PC [MaxFrames]uintptr
}

// depot deduplicates snapshots: uint64 hash → *Snapshot.
var depot sync.Map

// Capture records the current call stack and returns its depot hash.
//
// skip counts frames to drop before the interesting caller, not including
// runtime.Callers and Capture themselves. Returns 0 when no stack is
// available (never in practice).
//
// Safe for concurrent use.
func Capture(skip int) uint64 {
	var pcs [MaxFrames]uintptr
	n := runtime.Callers(2+skip, pcs[:])
	if n == 0 {
		return 0
	}

	hash := hashFrames(pcs[:n])
	if _, exists := depot.Load(hash); exists {
		return hash
	}

	depot.Store(hash, &Snapshot{PC: pcs})
	return hash
}

// Get retrieves a snapshot by hash. Returns nil for hash 0 or an unknown
// hash.
func Get(hash uint64) *Snapshot {
	if hash == 0 {
		return nil
	}
	v, ok := depot.Load(hash)
	if !ok {
		return nil
	}
	return v.(*Snapshot)
}

// hashFrames computes the FNV-1a hash of the program counters. Fast and
// collision-resistant enough for stack identity.
func hashFrames(pcs []uintptr) uint64 {
	h := fnv.New64a()
	for _, pc := range pcs {
		//nolint:gosec // reading the PC value as bytes for hashing only
		b := (*[8]byte)(unsafe.Pointer(&pc))[:]
		_, _ = h.Write(b)
	}
	return h.Sum64()
}

// Format renders a snapshot for a violation report:
//
//	main.worker()
//	    /path/to/file.go:45
//	main.main()
//	    /path/to/file.go:30
//
// Runtime frames and this library's own tracking frames are filtered so the
// report starts at embedder code.
func (s *Snapshot) Format() string {
	if s == nil {
		return "  <no snapshot captured>\n"
	}

	frames := runtime.CallersFrames(s.PC[:])

	var buf strings.Builder
	for {
		frame, more := frames.Next()
		if frame.PC == 0 {
			break
		}

		if skipFrame(frame.Function) {
			if !more {
				break
			}
			continue
		}

		fmt.Fprintf(&buf, "  %s()\n", frame.Function)
		fmt.Fprintf(&buf, "      %s:%d\n", frame.File, frame.Line)

		if !more {
			break
		}
	}

	out := buf.String()
	if out == "" {
		return "  <runtime internal>\n"
	}
	return out
}

// skipFrame filters frames that never help locate a leaked borrow.
func skipFrame(fn string) bool {
	return strings.HasPrefix(fn, "runtime.") ||
		strings.Contains(fn, "/internal/borrow/tracker.") ||
		strings.Contains(fn, "/internal/borrow/stacksnap.")
}

// Reset clears the depot. Test use only; not safe against concurrent Capture.
func Reset() {
	depot = sync.Map{}
}

// Stats returns the number of unique snapshots stored. Not on any hot path.
func Stats() (uniqueSnapshots int) {
	depot.Range(func(_, _ any) bool {
		uniqueSnapshots++
		return true
	})
	return uniqueSnapshots
}
