// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aring

import (
	"code.hybscloud.com/atomix"
)

// Ring is the wait-free storage contract consumed by the coordination
// layer. A Ring never suspends and never blocks: every operation completes
// in a bounded number of steps and reports "cannot proceed right now" with
// ErrWouldBlock.
//
// Caller synchronization contract (SPSC): at any moment at most one
// goroutine calls the write-side operations (TryPush, PushSlice) and at
// most one goroutine calls the read-side operations (TryPop, PopSlice),
// concurrently with each other. Observers (Len, Cap, IsFull, IsEmpty) may
// be called from either side. Violating this contract causes undefined
// behavior including data corruption.
//
// [Buffer] is the default implementation. Any type satisfying this
// contract can be adopted via [Split], for example [BytesRing].
type Ring[T any] interface {
	// TryPush appends one element. The element is copied into the ring's
	// internal storage. Returns ErrWouldBlock if the ring is full.
	TryPush(elem *T) error

	// TryPop removes and returns the oldest element.
	// Returns (zero-value, ErrWouldBlock) if the ring is empty.
	TryPop() (T, error)

	// PushSlice appends a prefix of elems, as many as currently fit,
	// and returns the number appended. Returns 0 if the ring is full.
	PushSlice(elems []T) int

	// PopSlice removes up to len(buf) of the oldest elements into buf
	// and returns the number removed. Returns 0 if the ring is empty.
	PopSlice(buf []T) int

	// Len returns the number of occupied slots at the moment of the call.
	// The value may be stale by the time it is observed.
	Len() int

	// Cap returns the fixed slot capacity.
	Cap() int

	// IsFull reports whether no vacant slot exists at the moment of the
	// call. The result is relevant until the consumer removes an element.
	IsFull() bool

	// IsEmpty reports whether no occupied slot exists at the moment of
	// the call. The result is relevant until the producer adds an element.
	IsEmpty() bool
}

// Buffer is the default Ring implementation: a bounded SPSC ring based on
// Lamport's ring buffer with cached index optimization. The producer
// caches the consumer's read index, and vice versa, reducing cross-core
// cache line traffic.
//
// Memory: O(capacity) with minimal per-slot overhead.
type Buffer[T any] struct {
	_          pad
	head       atomix.Uint64 // Consumer reads from here
	_          pad
	cachedTail uint64 // Consumer's cached view of tail
	_          pad
	tail       atomix.Uint64 // Producer writes here
	_          pad
	cachedHead uint64 // Producer's cached view of head
	_          pad
	buffer     []T
	mask       uint64
}

// NewBuffer creates a new SPSC ring buffer.
// Capacity rounds up to the next power of 2.
// Panics if capacity < 1.
func NewBuffer[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		panic("aring: capacity must be >= 1")
	}

	n := uint64(roundToPow2(capacity))
	return &Buffer[T]{
		buffer: make([]T, n),
		mask:   n - 1,
	}
}

// TryPush appends an element to the ring (producer only).
// Returns ErrWouldBlock if the ring is full.
func (b *Buffer[T]) TryPush(elem *T) error {
	tail := b.tail.LoadRelaxed()
	if tail-b.cachedHead > b.mask {
		b.cachedHead = b.head.LoadAcquire()
		if tail-b.cachedHead > b.mask {
			return ErrWouldBlock
		}
	}

	b.buffer[tail&b.mask] = *elem
	b.tail.StoreRelease(tail + 1)
	return nil
}

// TryPop removes and returns the oldest element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the ring is empty.
func (b *Buffer[T]) TryPop() (T, error) {
	head := b.head.LoadRelaxed()
	if head >= b.cachedTail {
		b.cachedTail = b.tail.LoadAcquire()
		if head >= b.cachedTail {
			var zero T
			return zero, ErrWouldBlock
		}
	}

	elem := b.buffer[head&b.mask]
	var zero T
	b.buffer[head&b.mask] = zero
	b.head.StoreRelease(head + 1)
	return elem, nil
}

// Peek returns the oldest element without removing it (consumer only).
// Returns (zero-value, ErrWouldBlock) if the ring is empty.
//
// Safe because only the consumer moves the read index; the returned
// element stays valid until the consumer's own next TryPop or PopSlice.
func (b *Buffer[T]) Peek() (T, error) {
	head := b.head.LoadRelaxed()
	if head >= b.cachedTail {
		b.cachedTail = b.tail.LoadAcquire()
		if head >= b.cachedTail {
			var zero T
			return zero, ErrWouldBlock
		}
	}

	return b.buffer[head&b.mask], nil
}

// PushSlice appends a prefix of elems, as many as currently fit
// (producer only). Returns the number of elements appended.
//
// Elements are committed with a single index store, so the consumer
// observes the whole batch at once.
func (b *Buffer[T]) PushSlice(elems []T) int {
	tail := b.tail.LoadRelaxed()
	b.cachedHead = b.head.LoadAcquire()

	vacant := b.mask + 1 - (tail - b.cachedHead)
	n := min(uint64(len(elems)), vacant)
	if n == 0 {
		return 0
	}

	// At most two copies around the wrap point.
	idx := tail & b.mask
	first := min(n, b.mask+1-idx)
	copy(b.buffer[idx : idx+first], elems[:first])
	copy(b.buffer[:n-first], elems[first:n])

	b.tail.StoreRelease(tail + n)
	return int(n)
}

// PopSlice removes up to len(buf) of the oldest elements into buf
// (consumer only). Returns the number of elements removed.
// Vacated slots are cleared to allow garbage collection.
func (b *Buffer[T]) PopSlice(buf []T) int {
	head := b.head.LoadRelaxed()
	b.cachedTail = b.tail.LoadAcquire()

	occupied := b.cachedTail - head
	n := min(uint64(len(buf)), occupied)
	if n == 0 {
		return 0
	}

	idx := head & b.mask
	first := min(n, b.mask+1-idx)
	copy(buf[:first], b.buffer[idx : idx+first])
	copy(buf[first:n], b.buffer[:n-first])
	clear(b.buffer[idx : idx+first])
	clear(b.buffer[:n-first])

	b.head.StoreRelease(head + n)
	return int(n)
}

// Len returns the number of occupied slots.
// The value may be stale by the time it is observed.
func (b *Buffer[T]) Len() int {
	head := b.head.LoadAcquire()
	tail := b.tail.LoadAcquire()
	return int(tail - head)
}

// Cap returns the ring capacity.
func (b *Buffer[T]) Cap() int {
	return int(b.mask + 1)
}

// IsFull reports whether the ring has no vacant slot.
// The result is relevant until the consumer removes an element.
func (b *Buffer[T]) IsFull() bool {
	return uint64(b.Len()) > b.mask
}

// IsEmpty reports whether the ring has no occupied slot.
// The result is relevant until the producer adds an element.
func (b *Buffer[T]) IsEmpty() bool {
	return b.Len() == 0
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte
