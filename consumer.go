// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aring

import (
	"context"
	"errors"
	"io"
	"iter"

	"code.hybscloud.com/spin"
)

// Consumer is the read half of a split ring. It is the only handle
// permitted to call the ring's read-side operations.
//
// A Consumer is owned by one goroutine at a time. All suspension happens
// inside Pop, PopSlice and All; the Try variant never suspends.
//
// End-of-stream (producer closed and the ring drained) is reported as
// io.EOF, not as a failure. Close the Consumer to release a producer
// suspended on a full ring: its pushes then fail fast with ErrClosed
// instead of waiting forever.
type Consumer[T any] struct {
	s *shared[T]
}

// TryPop removes and returns the oldest element without suspending.
//
// Returns ErrWouldBlock if the ring is transiently empty, io.EOF if the
// producer closed and the ring is drained (terminal, expected), or
// ErrClosed if this handle itself was closed.
func (c *Consumer[T]) TryPop() (T, error) {
	var zero T
	if c.s.readClosed.Load() {
		return zero, ErrClosed
	}

	// Load the flag before the pop attempt: the producer's final push
	// happens-before its close, so observing the flag first guarantees
	// that an empty pop really means the stream is drained.
	closed := c.s.writeClosed.Load()

	elem, err := c.s.ring.TryPop()
	if err == nil {
		c.s.notifyProducer()
		return elem, nil
	}
	if closed {
		return zero, io.EOF
	}
	return zero, err
}

// Pop removes and returns the oldest element, suspending while the ring
// is empty.
//
// Returns io.EOF at end-of-stream, ErrClosed if this handle was closed,
// or ctx.Err() if ctx is done first. Cancellation at the suspension
// point never mutates the ring.
func (c *Consumer[T]) Pop(ctx context.Context) (T, error) {
	sw := spin.Wait{}
	for spins := 0; ; {
		elem, err := c.TryPop()
		if !IsWouldBlock(err) {
			return elem, err
		}
		if spins < spinTries {
			spins++
			sw.Once()
			continue
		}
		select {
		case <-c.s.consWake:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// Peek returns the oldest element without removing it and without
// suspending. The element stays in the ring and will be returned again
// by the next pop.
//
// Returns errors.ErrUnsupported if the underlying Ring does not provide
// peeking (the default [Buffer] does). Other errors as in TryPop.
func (c *Consumer[T]) Peek() (T, error) {
	var zero T
	if c.s.readClosed.Load() {
		return zero, ErrClosed
	}
	pr, ok := c.s.ring.(interface{ Peek() (T, error) })
	if !ok {
		return zero, errors.ErrUnsupported
	}

	closed := c.s.writeClosed.Load()
	elem, err := pr.Peek()
	if err == nil {
		return elem, nil
	}
	if closed && IsWouldBlock(err) {
		return zero, io.EOF
	}
	return zero, err
}

// popSome removes at least one and at most len(buf) elements into buf,
// suspending while the ring is empty. Shared slow path of PopSlice and
// the byte Reader.
func (c *Consumer[T]) popSome(ctx context.Context, buf []T) (int, error) {
	sw := spin.Wait{}
	for spins := 0; ; {
		if c.s.readClosed.Load() {
			return 0, ErrClosed
		}
		closed := c.s.writeClosed.Load()

		n := c.s.ring.PopSlice(buf)
		if n > 0 {
			c.s.notifyProducer()
			return n, nil
		}
		if closed {
			return 0, io.EOF
		}
		if spins < spinTries {
			spins++
			sw.Once()
			continue
		}
		select {
		case <-c.s.consWake:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

// PopSlice fills buf with the oldest elements, suspending across wake
// cycles until either buf is full or the stream ends.
//
// Returns the number of elements filled. The count equals len(buf)
// unless the returned error is non-nil: io.EOF if the stream ended
// first, ErrClosed if this handle was closed, or ctx.Err() if ctx is
// done first.
func (c *Consumer[T]) PopSlice(ctx context.Context, buf []T) (int, error) {
	filled := 0
	for filled < len(buf) {
		n, err := c.popSome(ctx, buf[filled:])
		filled += n
		if err != nil {
			return filled, err
		}
	}
	return filled, nil
}

// All returns the remaining elements as a lazy sequence, suspending
// between elements while the ring is empty. The sequence stops at
// end-of-stream, when a handle is closed, or when ctx is done.
//
// The sequence is single-use: consuming it advances the ring
// irreversibly, and breaking out of the range loop leaves the remaining
// elements in the ring.
//
// Example:
//
//	for v := range c.All(ctx) {
//	    process(v)
//	}
func (c *Consumer[T]) All(ctx context.Context) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			elem, err := c.Pop(ctx)
			if err != nil {
				return
			}
			if !yield(elem) {
				return
			}
		}
	}
}

// Skip removes and discards up to n of the oldest elements without
// suspending. Returns the number of elements discarded.
func (c *Consumer[T]) Skip(n int) int {
	if c.s.readClosed.Load() {
		return 0
	}
	var scratch [32]T
	skipped := 0
	for skipped < n {
		k := c.s.ring.PopSlice(scratch[:min(n-skipped, len(scratch))])
		if k == 0 {
			break
		}
		skipped += k
	}
	if skipped > 0 {
		c.s.notifyProducer()
	}
	return skipped
}

// Clear removes and discards all elements currently in the ring.
// Returns the number of elements discarded.
func (c *Consumer[T]) Clear() int {
	return c.Skip(c.s.ring.Len())
}

// Close marks the read side closed: no further pop will succeed, and a
// producer suspended on a full ring wakes up and fails fast with
// ErrClosed instead of waiting forever. Elements still in the ring are
// left unread.
//
// Close is idempotent and always returns nil. Every Consumer must be
// closed on every exit path (typically with defer) if it stops reading
// before end-of-stream, otherwise the producer blocks forever on a full
// ring.
func (c *Consumer[T]) Close() error {
	c.s.closeRead()
	return nil
}

// IsClosed reports whether this handle was closed.
func (c *Consumer[T]) IsClosed() bool {
	return c.s.readClosed.Load()
}

// Cap returns the ring capacity.
func (c *Consumer[T]) Cap() int {
	return c.s.ring.Cap()
}

// Len returns the number of occupied slots.
// The actual number may be greater by the time it is observed.
func (c *Consumer[T]) Len() int {
	return c.s.ring.Len()
}

// IsEmpty reports whether the ring has no occupied slot.
// The result is relevant until the producer adds an element.
func (c *Consumer[T]) IsEmpty() bool {
	return c.s.ring.IsEmpty()
}
