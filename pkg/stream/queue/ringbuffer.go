package queue

import (
	"context"
	"sync/atomic"
)

// RingBuffer is a lock-free Single-Producer Single-Consumer (SPSC) queue.
// It is optimized for high-throughput passing of pointers between two goroutines.
// It is NOT safe for multiple producers or multiple consumers.
type RingBuffer[T any] struct {
	// Cache line padding to prevent false sharing
	_padding0 [8]uint64
	head      uint64
	_padding1 [8]uint64
	tail      uint64
	_padding2 [8]uint64
	mask      uint64
	buffer    []T
	closed    int32

	// Wake-up signals for the blocking variants. Buffered with capacity 1 so
	// a signal is never lost and never blocks the signalling side.
	notEmpty chan struct{}
	notFull  chan struct{}
}

// NewRingBuffer creates a new SPSC RingBuffer with the given capacity.
// Capacity is rounded up to the next power of 2.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity < 2 {
		capacity = 2
	}
	// Round up to power of 2
	// See: https://graphics.stanford.edu/~seander/bithacks.html#RoundUpPowerOf2
	capacity--
	capacity |= capacity >> 1
	capacity |= capacity >> 2
	capacity |= capacity >> 4
	capacity |= capacity >> 8
	capacity |= capacity >> 16
	capacity++

	return &RingBuffer[T]{
		buffer:   make([]T, capacity),
		mask:     uint64(capacity - 1),
		notEmpty: make(chan struct{}, 1),
		notFull:  make(chan struct{}, 1),
	}
}

// Offer adds an item to the queue.
// Returns false if the queue is full.
// Only safe for a single producer.
func (rb *RingBuffer[T]) Offer(item T) bool {
	tail := atomic.LoadUint64(&rb.tail)
	head := atomic.LoadUint64(&rb.head)

	if tail-head > rb.mask {
		return false // Full
	}

	rb.buffer[tail&rb.mask] = item
	atomic.StoreUint64(&rb.tail, tail+1)
	signal(rb.notEmpty)
	return true
}

// Poll removes an item from the queue.
// Returns false if the queue is empty.
// Only safe for a single consumer.
func (rb *RingBuffer[T]) Poll() (T, bool) {
	head := atomic.LoadUint64(&rb.head)
	tail := atomic.LoadUint64(&rb.tail)

	if head == tail {
		var zero T
		return zero, false // Empty
	}

	item := rb.buffer[head&rb.mask]
	// Help GC by nil-ing out the slot if T is a pointer
	var zero T
	rb.buffer[head&rb.mask] = zero

	atomic.StoreUint64(&rb.head, head+1)
	signal(rb.notFull)
	return item, true
}

// OfferWait adds an item, blocking while the queue is full.
// It returns ctx.Err() if ctx is done before space frees up.
func (rb *RingBuffer[T]) OfferWait(ctx context.Context, item T) error {
	for !rb.Offer(item) {
		select {
		case <-rb.notFull:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// PollWait removes an item, blocking while the queue is empty.
// It returns false once the queue is closed and drained, or when ctx is done.
func (rb *RingBuffer[T]) PollWait(ctx context.Context) (T, bool) {
	for {
		if item, ok := rb.Poll(); ok {
			return item, true
		}
		if atomic.LoadInt32(&rb.closed) == 1 {
			// Close happens after the final Offer, so one more Poll is conclusive.
			return rb.Poll()
		}
		select {
		case <-rb.notEmpty:
		case <-ctx.Done():
			var zero T
			return zero, false
		}
	}
}

// Close marks the queue as closed and wakes a blocked consumer.
func (rb *RingBuffer[T]) Close() {
	atomic.StoreInt32(&rb.closed, 1)
	signal(rb.notEmpty)
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
