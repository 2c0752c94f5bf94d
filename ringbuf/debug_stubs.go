// ringbuf/debug_stubs.go

//go:build !ringbufdebug

package ringbuf

type Stats struct{}

func (b *Buffer) DebugReset()       {}
func (b *Buffer) DebugStats() Stats { return Stats{} }

func (b *Buffer) dbgPut(uint, uint, uint) {}
func (b *Buffer) dbgGet(uint, uint)       {}
func (b *Buffer) dbgRollover()            {}
