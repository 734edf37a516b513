// Package goid extracts the current goroutine's ID.
//
// The recursive shared-exclusive lock records which goroutine holds it
// exclusively so that the same goroutine can re-enter while others block.
// Go deliberately hides goroutine identity, so the ID is parsed from the
// header line of runtime.Stack output:
//
//	goroutine 123 [running]:
//
// The parse costs roughly a microsecond. That is acceptable here because it
// is paid only on lock transitions (never on handle dereference), and always
// underneath the lock's internal mutex, where a contended path is already
// parking goroutines.
package goid

import "runtime"

// Get returns the current goroutine's ID, or 0 if the stack header cannot be
// parsed (which would indicate a runtime format change).
func Get() int64 {
	// Only the header line is needed; 64 bytes always covers it.
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parse(buf[:n])
}

// parse extracts the numeric ID from "goroutine <id> [state]:...".
// Direct byte parsing, no allocations.
func parse(buf []byte) int64 {
	const prefix = "goroutine "
	if len(buf) < len(prefix) || string(buf[:len(prefix)]) != prefix {
		return 0
	}

	var id int64
	for _, b := range buf[len(prefix):] {
		if b < '0' || b > '9' {
			break
		}
		id = id*10 + int64(b-'0')
	}
	return id
}
