// Package metrics reads Go runtime memory statistics for the REPL stats
// view. Process-level Prometheus metrics live in internal/server.
package metrics

import "runtime"

// MemorySnapshot is a point-in-time reading of the Go heap.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by the process
	HeapSys      uint64 // bytes obtained from the OS for the heap
	Sys          uint64 // total bytes obtained from the OS
	NumGC        uint32 // completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // live heap objects
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads the current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}
