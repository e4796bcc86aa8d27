// Package alloc provides the pluggable word-buffer allocator used by the
// arbitrary-precision engine, together with a per-operation scratch ledger
// that guarantees rollback of temporary buffers when an allocation fails
// midway through a compound operation.
package alloc

import (
	"errors"
	"sync/atomic"
)

// ErrNoMem is returned when the installed allocator cannot satisfy a
// request. Callers translate it into their own out-of-memory sentinel.
var ErrNoMem = errors.New("alloc: out of memory")

// Allocator hands out and reclaims word buffers. Implementations must be
// safe for concurrent use. Free is called with the capacity that was
// originally requested, so accounting allocators can balance their books.
type Allocator interface {
	Alloc(words int) ([]uint64, error)
	Free(words int)
}

// systemAllocator is the default: plain Go allocations, never fails.
type systemAllocator struct{}

func (systemAllocator) Alloc(words int) ([]uint64, error) {
	return make([]uint64, words), nil
}

func (systemAllocator) Free(int) {}

// holder gives every stored allocator the same concrete type, which
// atomic.Value requires across stores.
type holder struct {
	a Allocator
}

var current atomic.Value // holder

func init() {
	current.Store(holder{systemAllocator{}})
}

// Install makes a the process-wide allocator. Passing nil restores the
// default system allocator. Values allocated under a previous allocator
// must be cleared before switching, as their Free calls will be routed to
// the new one.
func Install(a Allocator) {
	if a == nil {
		a = systemAllocator{}
	}
	current.Store(holder{a})
}

// Current returns the installed allocator.
func Current() Allocator {
	return current.Load().(holder).a
}

// Alloc requests a buffer of exactly words words from the installed
// allocator.
func Alloc(words int) ([]uint64, error) {
	if words <= 0 {
		return nil, nil
	}
	return Current().Alloc(words)
}

// Free returns the accounting for a buffer of the given capacity.
func Free(words int) {
	if words > 0 {
		Current().Free(words)
	}
}
