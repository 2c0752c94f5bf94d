// uart/uart.go

// Package uart moves bytes between a UART interrupt handler and the
// foreground through two ringbuf byte rings. The interrupt handler is the
// RX producer and the TX consumer; foreground code is the other side of
// each ring. Handler-side methods never block and never allocate. The
// foreground gets non-blocking Try* methods plus blocking helpers driven by
// coalesced readiness channels.
package uart

import (
	"context"
	"errors"
	"time"

	"github.com/jangala-dev/tinygo-ringbuf/ringbuf"
)

// Software ring sizes in bytes.
const (
	RxBufferSize = 256
	TxBufferSize = 256
)

var (
	ErrBufferEmpty = errors.New("uart: buffer empty")
	ErrClosed      = errors.New("uart: port closed")
)

// Port is one UART's software side. It must not be copied after New.
type Port struct {
	rx      ringbuf.Buffer
	rxStore [RxBufferSize]byte
	tx      ringbuf.Buffer
	txStore [TxBufferSize]byte

	notify   chan struct{} // coalesced RX readiness
	txNotify chan struct{} // coalesced TX progress
	closed   chan struct{}
}

// New returns a Port whose rings use the platform default critical section.
func New() *Port { return NewSection(nil) }

// NewSection returns a Port whose rings both use cs. A nil cs gives each
// ring its own default section.
func NewSection(cs ringbuf.Section) *Port {
	p := &Port{
		notify:   make(chan struct{}, 1),
		txNotify: make(chan struct{}, 1),
		closed:   make(chan struct{}),
	}
	p.rx.InitSection(1, RxBufferSize, p.rxStore[:], cs)
	p.tx.InitSection(1, TxBufferSize, p.txStore[:], cs)
	// TX starts with space available.
	signal(p.txNotify)
	return p
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// ---------------- Interrupt side ----------------

// Receive stores one byte read from the hardware FIFO. It returns false and
// drops the byte if the RX ring is full.
func (p *Port) Receive(c byte) bool {
	b := [1]byte{c}
	if !p.rx.Put(b[:]) {
		return false
	}
	signal(p.notify)
	return true
}

// ReceiveFIFO stores a burst drained from the hardware FIFO and returns how
// many bytes fit. The rest are dropped.
func (p *Port) ReceiveFIFO(data []byte) int {
	n := p.rx.PutMany(data, uint(len(data)))
	if n > 0 {
		signal(p.notify)
	}
	return int(n)
}

// Transmit moves up to len(fifo) queued bytes into fifo for the hardware
// and returns the count.
func (p *Port) Transmit(fifo []byte) int {
	n := p.tx.GetMany(fifo, uint(len(fifo)))
	if n > 0 {
		signal(p.txNotify)
	}
	return int(n)
}

// ---------------- Foreground RX ----------------

// Readable returns the coalesced RX notification channel. Callers must
// re-check Buffered after waking.
func (p *Port) Readable() <-chan struct{} { return p.notify }

// Buffered returns the number of bytes waiting in the RX ring.
func (p *Port) Buffered() int { return int(p.rx.Len()) }

// TryRead copies up to len(b) buffered bytes into b and never blocks.
func (p *Port) TryRead(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	return int(p.rx.GetMany(b, uint(len(b))))
}

// Read is non-blocking, like machine.UART.Read: it returns 0, nil when
// nothing is buffered.
func (p *Port) Read(b []byte) (int, error) {
	return p.TryRead(b), nil
}

// ReadByte returns one buffered byte or ErrBufferEmpty.
func (p *Port) ReadByte() (byte, error) {
	var b [1]byte
	if !p.rx.Get(b[:]) {
		return 0, ErrBufferEmpty
	}
	return b[0], nil
}

// WaitReadable blocks until data is buffered, the port is closed or ctx is
// done.
func (p *Port) WaitReadable(ctx context.Context) error {
	for {
		if p.Buffered() > 0 {
			return nil
		}
		select {
		case <-p.notify:
		case <-p.closed:
			return ErrClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ReadBlocking waits for at least one byte, then reads up to len(b).
func (p *Port) ReadBlocking(ctx context.Context, b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	for {
		if n := p.TryRead(b); n > 0 {
			return n, nil
		}
		if err := p.WaitReadable(ctx); err != nil {
			return 0, err
		}
	}
}

// ReadFullBlocking reads exactly len(b) bytes unless ctx ends or the port
// closes first, returning what was read.
func (p *Port) ReadFullBlocking(ctx context.Context, b []byte) (int, error) {
	read := 0
	for read < len(b) {
		if n := p.TryRead(b[read:]); n > 0 {
			read += n
			continue
		}
		if err := p.WaitReadable(ctx); err != nil {
			return read, err
		}
	}
	return read, nil
}

func (p *Port) ReadByteBlocking(ctx context.Context) (byte, error) {
	for {
		if c, err := p.ReadByte(); err == nil {
			return c, nil
		}
		if err := p.WaitReadable(ctx); err != nil {
			return 0, err
		}
	}
}

func (p *Port) ReadWithTimeout(b []byte, d time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return p.ReadBlocking(ctx, b)
}

// ---------------- Foreground TX ----------------

// Writable returns the coalesced TX progress channel. Callers must re-check
// TxFree after waking.
func (p *Port) Writable() <-chan struct{} { return p.txNotify }

// TxFree returns the free space in the TX ring in bytes.
func (p *Port) TxFree() int { return int(p.tx.Free()) }

// TxPending returns the bytes queued for the interrupt handler.
func (p *Port) TxPending() int { return int(p.tx.Len()) }

// TryWrite queues as much of b as fits and never blocks. A return of 0
// means no space now.
func (p *Port) TryWrite(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	return int(p.tx.PutMany(b, uint(len(b))))
}

// WriteContext blocks until all of b is queued, the port closes or ctx is
// done. It returns the number of bytes queued.
func (p *Port) WriteContext(ctx context.Context, b []byte) (int, error) {
	sent := 0
	for sent < len(b) {
		if n := p.TryWrite(b[sent:]); n > 0 {
			sent += n
			continue
		}
		select {
		case <-p.txNotify:
		case <-p.closed:
			return sent, ErrClosed
		case <-ctx.Done():
			return sent, ctx.Err()
		}
	}
	return sent, nil
}

// Write implements io.Writer. It blocks until b is queued, not until it is
// on the wire.
func (p *Port) Write(b []byte) (int, error) {
	return p.WriteContext(context.Background(), b)
}

func (p *Port) WriteByte(c byte) error {
	_, err := p.Write([]byte{c})
	return err
}

// Close unblocks every waiter with ErrClosed. Buffered data stays readable
// through the non-blocking methods.
func (p *Port) Close() error {
	select {
	case <-p.closed:
	default:
		close(p.closed)
	}
	return nil
}
