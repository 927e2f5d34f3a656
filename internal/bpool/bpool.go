// Package bpool manages a set of reusable byte buffers, byte-for-byte the
// same size-bucketing strategy as buffers/buffers.go (small buffers and
// large buffers in separate bounded channels, with a make() fallback when
// the pool is empty). The GFF encoder borrows scratch buffers from it
// (through xdr.NewWriterSize) while assembling its sections so that
// repeated encodes in one process don't keep re-allocating.
package bpool

const largeMin = 1024

var (
	smallBuffers = make(chan []byte, 32)
	largeBuffers = make(chan []byte, 32)
)

// Get returns a buffer of at least size bytes, reused from the pool when
// possible.
func Get(size int) []byte {
	ch := largeBuffers
	if size < largeMin {
		ch = smallBuffers
	}

	var buf []byte
	select {
	case buf = <-ch:
	default:
	}

	if cap(buf) < size {
		return make([]byte, size)
	}
	return buf[:size]
}

// Put returns buf to the pool for reuse.
func Put(buf []byte) {
	buf = buf[:cap(buf)]
	if len(buf) == 0 {
		return
	}

	ch := largeBuffers
	if len(buf) < largeMin {
		ch = smallBuffers
	}

	select {
	case ch <- buf:
	default:
	}
}
