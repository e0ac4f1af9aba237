package buffer

import (
	"errors"
	"sync"
)

// ErrFull is returned by Ingest once every slot is written. It is the
// buffer's normal termination signal for consumer workers.
var ErrFull = errors.New("buffer: full")

// Buffer is a fixed-capacity ordered sequence of integers with a
// next-write index. The write index never exceeds the capacity and every
// index is written exactly once.
type Buffer struct {
	mu   sync.Mutex
	data []int32
	next int
}

// New creates a Buffer with the given capacity.
func New(capacity int) *Buffer {
	return &Buffer{data: make([]int32, capacity)}
}

// Ingest claims the next write slot and fills it with the result of recv.
//
// The whole step runs under the buffer lock: the capacity check, the recv
// call (the network read), and the append with its index bump. Receives are
// therefore serialized across all workers. If the buffer is full, recv is
// never called and ErrFull is returned. Errors from recv — including io.EOF
// for a cleanly closed stream — are returned unwrapped with no slot
// consumed.
func (b *Buffer) Ingest(recv func() (int32, error)) (v int32, index int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.next >= len(b.data) {
		return 0, 0, ErrFull
	}

	v, err = recv()
	if err != nil {
		return 0, 0, err
	}

	index = b.next
	b.data[index] = v
	b.next++
	return v, index, nil
}

// Len returns the number of slots written so far.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.next
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// Values returns a copy of the written portion of the buffer, in insertion
// order.
func (b *Buffer) Values() []int32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]int32, b.next)
	copy(out, b.data[:b.next])
	return out
}
