// cmd/ringbuf_selftest/main.go
// Host stress test for github.com/jangala-dev/tinygo-ringbuf/ringbuf.
// A producer pinned to its own CPU stands in for an interrupt handler and
// streams sequence-tagged records through a small ring while the consumer,
// pinned to another CPU, drains it in bursts of varying size. Every record
// is checked for order and content; records of 16 bytes or more also carry
// an xxhash64 trailer so a torn copy is caught even if the sequence matches.

package main

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/jangala-dev/tinygo-ringbuf/ringbuf"
)

/*** Tunables ***/
const (
	capacity      = 32      // records per ring
	recordsPerRun = 200_000 // records streamed per item size
	maxBurst      = 9       // largest PutMany/GetMany request
	producerCPU   = 0
	consumerCPU   = 1
	timeoutPerRun = 20 * time.Second
	seed          = 0x5eed

	trailer    = 8  // xxhash64 trailer bytes
	minHashed  = 16 // smallest record that carries a trailer
	seqTagSize = 8
)

var itemSizes = []uint{1, 2, 3, 4, 8, 13, 29}

func main() {
	println("ringbuf self-test (host)")
	println("capacity =", capacity, "  records/run =", recordsPerRun, "  cpus =", runtime.NumCPU())

	pass, fail := 0, 0
	for _, size := range itemSizes {
		name := "item size " + strconv.Itoa(int(size))
		stats, err := run(size)
		if err != nil {
			println("[FAIL]", name, ":", err.Error())
			fail++
			continue
		}
		println("[PASS]", name)
		if stats != (ringbuf.Stats{}) {
			fmt.Printf("       %+v\n", stats)
		}
		pass++
	}

	println("")
	println("Summary")
	println("  passed =", pass)
	println("  failed =", fail)
	if fail != 0 {
		os.Exit(1)
	}
}

/*** Test runner ***/

func run(size uint) (ringbuf.Stats, error) {
	storage := make([]byte, size*capacity)
	var rb ringbuf.Buffer
	if !rb.Init(size, capacity, storage) {
		return ringbuf.Stats{}, errors.New("Init rejected geometry")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeoutPerRun)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return produce(ctx, &rb, size) })
	g.Go(func() error { return consume(ctx, &rb, size) })
	if err := g.Wait(); err != nil {
		return rb.DebugStats(), err
	}
	if !rb.Empty() {
		return rb.DebugStats(), fmt.Errorf("%d records left after drain", rb.Len())
	}
	return rb.DebugStats(), nil
}

// produce plays the interrupt handler: it never waits on the consumer, it
// just retries when the ring is full.
func produce(ctx context.Context, rb *ringbuf.Buffer, size uint) error {
	if err := pinThread(producerCPU); err != nil {
		println("  producer: cpu pin failed:", err.Error())
	}
	defer runtime.UnlockOSThread()

	rng := rand.New(rand.NewPCG(seed, uint64(size)))
	burst := make([]byte, size*maxBurst)
	var seq uint64
	for seq < recordsPerRun {
		k := min(uint64(1+rng.IntN(maxBurst)), recordsPerRun-seq)
		for i := uint64(0); i < k; i++ {
			encode(burst[uint64(size)*i:uint64(size)*(i+1)], seq+i)
		}

		var added uint64
		if k == 1 {
			if rb.Put(burst[:size]) {
				added = 1
			}
		} else {
			added = uint64(rb.PutMany(burst, uint(k)))
		}
		seq += added

		if added == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("producer stopped at record %d: %w", seq, err)
			}
			runtime.Gosched()
		}
	}
	return nil
}

func consume(ctx context.Context, rb *ringbuf.Buffer, size uint) error {
	if err := pinThread(consumerCPU); err != nil {
		println("  consumer: cpu pin failed:", err.Error())
	}
	defer runtime.UnlockOSThread()

	rng := rand.New(rand.NewPCG(seed, ^uint64(size)))
	out := make([]byte, size*maxBurst)
	scratch := make([]byte, size)
	var seq uint64
	for seq < recordsPerRun {
		k := uint(1 + rng.IntN(maxBurst))

		var got uint
		if k == 1 {
			if rb.Get(out[:size]) {
				got = 1
			}
		} else {
			got = rb.GetMany(out, k)
		}
		for i := uint(0); i < got; i++ {
			if err := check(out[size*i:size*(i+1)], seq, scratch); err != nil {
				return err
			}
			seq++
		}

		if got == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("consumer stopped at record %d: %w", seq, err)
			}
			runtime.Gosched()
		}
	}
	return nil
}

/*** Records ***/

// encode fills rec with the deterministic content of record seq: the
// sequence number (truncated to the record), a pattern, and for larger
// records an xxhash64 of everything before the trailer.
func encode(rec []byte, seq uint64) {
	var tag [seqTagSize]byte
	binary.LittleEndian.PutUint64(tag[:], seq)
	n := copy(rec, tag[:])
	for i := n; i < len(rec); i++ {
		rec[i] = byte(seq*131 + uint64(i)*17)
	}
	if len(rec) >= minHashed {
		body := rec[:len(rec)-trailer]
		binary.LittleEndian.PutUint64(rec[len(body):], xxhash.Sum64(body))
	}
}

func check(rec []byte, seq uint64, scratch []byte) error {
	if len(rec) >= minHashed {
		body := rec[:len(rec)-trailer]
		if got, want := binary.LittleEndian.Uint64(rec[len(body):]), xxhash.Sum64(body); got != want {
			return fmt.Errorf("record %d: torn (checksum %016x, want %016x)", seq, got, want)
		}
	}
	encode(scratch, seq)
	for i := range rec {
		if rec[i] != scratch[i] {
			return fmt.Errorf("record %d: byte %d = %#02x, want %#02x (out of order or corrupt)", seq, i, rec[i], scratch[i])
		}
	}
	return nil
}
