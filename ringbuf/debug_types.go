// ringbuf/debug_types.go

//go:build ringbufdebug

package ringbuf

import "sync/atomic"

// Stats holds counters since Init or the last DebugReset.
type Stats struct {
	Puts      uint32 // records added
	Drops     uint32 // records refused because the buffer was full
	Gets      uint32 // records removed
	Underruns uint32 // records requested while the buffer was empty
	Rollovers uint32 // counter normalizations
	MaxUsed   uint32 // high-water mark of occupancy
}

// DebugReset zeroes the counters.
func (b *Buffer) DebugReset() {
	atomic.StoreUint32(&b.stats.Puts, 0)
	atomic.StoreUint32(&b.stats.Drops, 0)
	atomic.StoreUint32(&b.stats.Gets, 0)
	atomic.StoreUint32(&b.stats.Underruns, 0)
	atomic.StoreUint32(&b.stats.Rollovers, 0)
	atomic.StoreUint32(&b.stats.MaxUsed, 0)
}

// DebugStats returns a copy of the counters. Each field is loaded
// atomically; the set as a whole is not a single snapshot.
func (b *Buffer) DebugStats() Stats {
	if b == nil {
		return Stats{}
	}
	return Stats{
		Puts:      atomic.LoadUint32(&b.stats.Puts),
		Drops:     atomic.LoadUint32(&b.stats.Drops),
		Gets:      atomic.LoadUint32(&b.stats.Gets),
		Underruns: atomic.LoadUint32(&b.stats.Underruns),
		Rollovers: atomic.LoadUint32(&b.stats.Rollovers),
		MaxUsed:   atomic.LoadUint32(&b.stats.MaxUsed),
	}
}
