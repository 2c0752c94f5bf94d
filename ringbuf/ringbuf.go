// ringbuf/ringbuf.go

// Package ringbuf provides a fixed-capacity ring of fixed-size records for
// passing data between an interrupt handler and the foreground, in either
// direction. The buffer never allocates: it borrows caller-owned storage for
// its whole lifetime. Every mutation runs inside a critical Section; Full,
// Empty, Len and Free are unguarded snapshots that may be stale by the time
// the caller acts on them.
//
// Roles are a caller convention: at most one producer and one consumer may
// be active on a buffer at a time.
package ringbuf

import "sync/atomic"

// MaxItems is the largest capacity Init accepts. Counters stay below
// 2*capacity, so they always fit in 32 bits.
const MaxItems = 1<<31 - 1

// Buffer is a ring of Cap() records of ItemSize() bytes each.
// The zero value is unusable until Init succeeds. A Buffer must not be
// copied after Init.
type Buffer struct {
	// cnt holds the write count in the high half and the read count in
	// the low half. It is only stored inside the critical section.
	cnt atomic.Uint64
	_   pad

	size uint // bytes per record
	n    uint // capacity in records
	data []byte

	cs    Section
	local localSection

	stats Stats
}

// Init binds storage to b and resets it to empty, guarding mutations with
// the platform default section: interrupt masking on bare-metal targets, a
// per-buffer mutex elsewhere. It returns false and leaves b untouched if b
// is nil, itemSize or numItems is zero, numItems exceeds MaxItems, or
// storage is shorter than itemSize*numItems bytes.
func (b *Buffer) Init(itemSize, numItems uint, storage []byte) bool {
	return b.InitSection(itemSize, numItems, storage, nil)
}

// InitSection is Init with an explicit critical section. A nil cs selects
// the platform default.
func (b *Buffer) InitSection(itemSize, numItems uint, storage []byte, cs Section) bool {
	if b == nil || storage == nil || itemSize == 0 || numItems == 0 || numItems > MaxItems {
		return false
	}
	if uint(len(storage))/itemSize < numItems {
		return false
	}
	if cs == nil {
		cs = &b.local
	}
	b.size = itemSize
	b.n = numItems
	b.data = storage[:itemSize*numItems]
	b.cs = cs
	b.cnt.Store(0)
	b.DebugReset()
	return true
}

func pack(wr, rd uint32) uint64 { return uint64(wr)<<32 | uint64(rd) }

func unpack(c uint64) (wr, rd uint32) { return uint32(c >> 32), uint32(c) }

func (b *Buffer) ready() bool { return b != nil && b.n != 0 }

// used returns the occupancy for one published counter pair.
func (b *Buffer) used() uint {
	wr, rd := unpack(b.cnt.Load())
	return uint(wr - rd)
}

// Cap returns the capacity in records.
func (b *Buffer) Cap() uint {
	if b == nil {
		return 0
	}
	return b.n
}

// ItemSize returns the record size in bytes.
func (b *Buffer) ItemSize() uint {
	if b == nil {
		return 0
	}
	return b.size
}

// Len returns how many records are stored.
func (b *Buffer) Len() uint {
	if !b.ready() {
		return 0
	}
	return b.used()
}

// Free returns how many records can be added before the buffer is full.
func (b *Buffer) Free() uint {
	if !b.ready() {
		return 0
	}
	return b.n - b.used()
}

// Full reports whether no record can be added. An absent or uninitialised
// buffer is full.
func (b *Buffer) Full() bool {
	if !b.ready() {
		return true
	}
	return b.used() >= b.n
}

// Empty reports whether no record can be removed. An absent or
// uninitialised buffer is empty.
func (b *Buffer) Empty() bool {
	if !b.ready() {
		return true
	}
	return b.used() == 0
}

// Put copies one record from rec into the next free slot. It returns false
// with no mutation if rec holds fewer than ItemSize bytes or the buffer is
// full. The fullness check and the copy form one critical section.
func (b *Buffer) Put(rec []byte) bool {
	if !b.ready() || uint(len(rec)) < b.size {
		return false
	}
	defer b.cs.Exit(b.cs.Enter())

	wr, rd := unpack(b.cnt.Load())
	if uint(wr-rd) >= b.n {
		b.dbgPut(0, 1, uint(wr-rd))
		return false
	}
	b.store(wr, rec)
	b.cnt.Store(pack(wr+1, rd))
	b.dbgPut(1, 0, uint(wr-rd)+1)
	return true
}

// PutMany adds up to n records laid out back to back in recs and returns
// how many were added. The count is clamped to the free space and to the
// whole records present in recs; 0 means nothing was added. The space
// check, every copy and the counter update form one critical section.
func (b *Buffer) PutMany(recs []byte, n uint) uint {
	if !b.ready() || recs == nil || n == 0 {
		return 0
	}
	if avail := uint(len(recs)) / b.size; n > avail {
		n = avail
	}
	defer b.cs.Exit(b.cs.Enter())

	wr, rd := unpack(b.cnt.Load())
	used := uint(wr - rd)
	want := n
	if free := b.n - used; n > free {
		n = free
	}
	for i := uint(0); i < n; i++ {
		b.store(wr+uint32(i), recs[i*b.size:])
	}
	b.cnt.Store(pack(wr+uint32(n), rd))
	b.dbgPut(n, want-n, used+n)
	return n
}

// Get copies the oldest record into out and removes it. It returns false
// with no mutation if out holds fewer than ItemSize bytes or the buffer is
// empty.
func (b *Buffer) Get(out []byte) bool {
	if !b.ready() || uint(len(out)) < b.size {
		return false
	}
	defer b.cs.Exit(b.cs.Enter())

	wr, rd := unpack(b.cnt.Load())
	if rd >= wr {
		b.dbgGet(0, 1)
		return false
	}
	b.load(rd, out)
	b.commitRead(wr, rd+1)
	b.dbgGet(1, 0)
	return true
}

// GetMany removes up to n records into successive ItemSize slots of out
// and returns how many were removed, oldest first. The count is clamped to
// the stored records and to the whole records that fit in out.
func (b *Buffer) GetMany(out []byte, n uint) uint {
	if !b.ready() || out == nil || n == 0 {
		return 0
	}
	if room := uint(len(out)) / b.size; n > room {
		n = room
	}
	defer b.cs.Exit(b.cs.Enter())

	wr, rd := unpack(b.cnt.Load())
	want := n
	if used := uint(wr - rd); n > used {
		n = used
	}
	for i := uint(0); i < n; i++ {
		b.load(rd+uint32(i), out[i*b.size:])
	}
	if n > 0 {
		b.commitRead(wr, rd+uint32(n))
	}
	b.dbgGet(n, want-n)
	return n
}

// Clear discards every stored record.
func (b *Buffer) Clear() {
	if !b.ready() {
		return
	}
	defer b.cs.Exit(b.cs.Enter())
	b.cnt.Store(0)
}

// commitRead publishes a new read count. Once the read count reaches the
// capacity both counters drop by one capacity: occupancy and the slot
// mapping are unchanged and neither counter ever reaches 2*capacity.
// Must be called inside the critical section.
func (b *Buffer) commitRead(wr, rd uint32) {
	if n := uint32(b.n); rd >= n {
		rd -= n
		wr -= n
		b.dbgRollover()
	}
	b.cnt.Store(pack(wr, rd))
}
