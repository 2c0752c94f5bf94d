//go:build ringbufdebug

package ringbuf

import "testing"

func TestDebugStats(t *testing.T) {
	b := newTestBuffer(t, 2, 3)

	b.PutMany(make([]byte, 10), 5) // 3 added, 2 dropped
	b.Put([]byte{1, 2})            // dropped
	out := make([]byte, 8)
	b.GetMany(out, 4) // 3 removed, 1 missing, one rollover
	b.Get(out)        // missing

	want := Stats{Puts: 3, Drops: 3, Gets: 3, Underruns: 2, Rollovers: 1, MaxUsed: 3}
	if got := b.DebugStats(); got != want {
		t.Fatalf("DebugStats = %+v; want %+v", got, want)
	}

	b.DebugReset()
	if got := b.DebugStats(); got != (Stats{}) {
		t.Fatalf("after DebugReset: %+v", got)
	}
}
