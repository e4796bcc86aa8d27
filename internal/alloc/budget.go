package alloc

import "sync/atomic"

// Budget is an Allocator with a fixed word budget. Once the live total
// would exceed the budget, Alloc fails with ErrNoMem. It exists for
// out-of-memory fault injection: install it, drive an operation into the
// limit, and verify that the engine reports failure cleanly and releases
// every scratch buffer it took.
type Budget struct {
	limit int64
	live  atomic.Int64
}

// NewBudget returns a Budget allowing at most limit live words.
func NewBudget(limit int64) *Budget {
	return &Budget{limit: limit}
}

func (b *Budget) Alloc(words int) ([]uint64, error) {
	n := int64(words)
	if b.live.Add(n) > b.limit {
		b.live.Add(-n)
		return nil, ErrNoMem
	}
	return make([]uint64, words), nil
}

func (b *Budget) Free(words int) {
	b.live.Add(-int64(words))
}

// Live reports the number of words currently accounted as allocated.
func (b *Budget) Live() int64 {
	return b.live.Load()
}
