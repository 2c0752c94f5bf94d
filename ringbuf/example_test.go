package ringbuf_test

import (
	"fmt"

	"github.com/jangala-dev/tinygo-ringbuf/ringbuf"
)

func ExampleBuffer() {
	// Storage for four 3-byte records, owned by the caller.
	var storage [4 * 3]byte

	var rb ringbuf.Buffer
	if !rb.Init(3, 4, storage[:]) {
		panic("bad geometry")
	}

	rb.Put([]byte("abc"))
	n := rb.PutMany([]byte("defghijklmno"), 4)
	fmt.Println("added", 1+n, "full", rb.Full())

	out := make([]byte, 3*4)
	n = rb.GetMany(out, 4)
	fmt.Printf("%d %s\n", n, out[:n*3])
	// Output:
	// added 4 full true
	// 4 abcdefghijkl
}
