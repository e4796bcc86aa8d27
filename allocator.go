package zint

import "zint/internal/alloc"

// Allocator supplies digit buffers for values and scratch space.
// Implementations must be safe for concurrent use; Free receives the word
// count that was allocated so accounting implementations can balance.
type Allocator = alloc.Allocator

// SetAllocator installs a process-wide allocator for all subsequent
// allocations; nil restores the default. Values created under the old
// allocator should be Cleared before switching, since their release is
// routed to the new one.
func SetAllocator(a Allocator) {
	alloc.Install(a)
}

// NewBudgetAllocator returns an allocator that fails once more than limit
// words are live. It exists for out-of-memory fault injection in tests.
func NewBudgetAllocator(limit int64) Allocator {
	return alloc.NewBudget(limit)
}

// LedgerDepth reports the number of scratch buffers currently outstanding
// across all in-flight operations. It is zero whenever no operation is
// running; a nonzero value at rest indicates a leak.
func LedgerDepth() int {
	return alloc.LedgerDepth()
}
