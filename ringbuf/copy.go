// ringbuf/copy.go

package ringbuf

import "encoding/binary"

// slot returns the storage bytes of the record at logical position pos.
// Slots are record-aligned, so a record never straddles the end of storage.
func (b *Buffer) slot(pos uint32) []byte {
	off := uint(pos) % b.n * b.size
	return b.data[off : off+b.size : off+b.size]
}

// store copies one record from src into the slot for pos.
func (b *Buffer) store(pos uint32, src []byte) {
	copyRecord(b.slot(pos), src[:b.size])
}

// load copies the record at pos into dst.
func (b *Buffer) load(pos uint32, dst []byte) {
	copyRecord(dst[:b.size], b.slot(pos))
}

// copyRecord copies len(dst) bytes from src. Records of 1, 2, 4 or 8 bytes
// move as a single native-endian word; any other size moves in 8-byte
// chunks followed by a byte-wise tail.
func copyRecord(dst, src []byte) {
	ne := binary.NativeEndian
	switch len(dst) {
	case 1:
		dst[0] = src[0]
	case 2:
		ne.PutUint16(dst, ne.Uint16(src))
	case 4:
		ne.PutUint32(dst, ne.Uint32(src))
	case 8:
		ne.PutUint64(dst, ne.Uint64(src))
	default:
		copyChunked(dst, src)
	}
}

func copyChunked(dst, src []byte) {
	ne := binary.NativeEndian
	i := 0
	for ; len(dst)-i >= 8; i += 8 {
		ne.PutUint64(dst[i:], ne.Uint64(src[i:]))
	}
	for ; i < len(dst); i++ {
		dst[i] = src[i]
	}
}
