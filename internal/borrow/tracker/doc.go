// Package tracker records outstanding borrowed references against one owner.
//
// A tracker answers exactly one question at owner destruction time: "are any
// references still alive?". Three interchangeable strategies exist:
//
//   - unchecked: every operation is a no-op; zero storage, zero time. Used
//     once a program is proven clean.
//   - counted: one atomic counter. Detects that references leaked and how
//     many, but not where they came from.
//   - tracked: an intrusive singly-linked list of live handle nodes behind a
//     per-tracker mutex, optionally recording a stack snapshot per
//     registration. Detects exactly which references leaked and where they
//     were created.
//
// The strategy is a build-time choice, selected by build tag
// (borrow_unchecked, borrow_tracked; counted is the default) through the
// Tracker and Handle type aliases in the select_* files. The choice cannot be
// a runtime switch: the owner cell embeds the tracker by value, and the three
// strategies have different storage layouts (zero bytes, one atomic word, a
// list head plus mutex).
//
// All three implementations compile under every tag so each strategy can be
// tested directly regardless of the selected mode.
package tracker
