// ringbuf/debug_hooks.go

//go:build ringbufdebug

package ringbuf

import "sync/atomic"

// Hooks run inside the critical section, so only DebugStats races them.

func (b *Buffer) dbgPut(added, dropped, used uint) {
	atomic.AddUint32(&b.stats.Puts, uint32(added))
	atomic.AddUint32(&b.stats.Drops, uint32(dropped))
	if uint32(used) > atomic.LoadUint32(&b.stats.MaxUsed) {
		atomic.StoreUint32(&b.stats.MaxUsed, uint32(used))
	}
}

func (b *Buffer) dbgGet(removed, missing uint) {
	atomic.AddUint32(&b.stats.Gets, uint32(removed))
	atomic.AddUint32(&b.stats.Underruns, uint32(missing))
}

func (b *Buffer) dbgRollover() {
	atomic.AddUint32(&b.stats.Rollovers, 1)
}
