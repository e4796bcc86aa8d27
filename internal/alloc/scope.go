package alloc

import "sync/atomic"

// ledgerDepth counts scratch buffers currently live across all scopes.
// After every public operation returns it must be zero again; tests use it
// to prove that failure paths roll back completely.
var ledgerDepth atomic.Int64

// LedgerDepth reports the number of scratch buffers currently outstanding.
func LedgerDepth() int {
	return int(ledgerDepth.Load())
}

// Scope tracks the scratch buffers of one compound operation. When any
// allocation inside the operation fails, the scope has already freed
// everything it handed out, so the caller only has to propagate the error.
// A Scope is single-goroutine; operations running concurrently each use
// their own.
//
// Usage:
//
//	sc := alloc.NewScope()
//	defer sc.Close()
type Scope struct {
	ledger [][]uint64
}

// NewScope returns an empty scratch scope.
func NewScope() *Scope {
	return &Scope{}
}

// Alloc obtains a scratch buffer of exactly words words and records it in
// the ledger. If the installed allocator refuses, every buffer already in
// the ledger is released before the error is returned, leaving no scratch
// behind.
func (s *Scope) Alloc(words int) ([]uint64, error) {
	if words <= 0 {
		return nil, nil
	}
	buf, err := Current().Alloc(words)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.ledger = append(s.ledger, buf)
	ledgerDepth.Add(1)
	return buf, nil
}

// Release returns one scratch buffer early. The buffer must have come from
// this scope's Alloc. Searching starts at the newest entry, matching the
// stack-like lifetime of scratch space.
func (s *Scope) Release(buf []uint64) {
	if len(buf) == 0 {
		return
	}
	for i := len(s.ledger) - 1; i >= 0; i-- {
		b := s.ledger[i]
		if len(b) > 0 && &b[0] == &buf[0] {
			s.ledger = append(s.ledger[:i], s.ledger[i+1:]...)
			Free(cap(b))
			ledgerDepth.Add(-1)
			return
		}
	}
}

// Close releases all remaining scratch buffers, newest first. Safe to call
// more than once.
func (s *Scope) Close() {
	for i := len(s.ledger) - 1; i >= 0; i-- {
		Free(cap(s.ledger[i]))
		ledgerDepth.Add(-1)
	}
	s.ledger = s.ledger[:0]
}

// Depth reports the number of buffers this scope currently holds.
func (s *Scope) Depth() int {
	return len(s.ledger)
}
