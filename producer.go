// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aring

import (
	"context"

	"code.hybscloud.com/spin"
)

// Producer is the write half of a split ring. It is the only handle
// permitted to call the ring's write-side operations; the type split
// makes the SPSC single-writer contract structurally unbreakable.
//
// A Producer is owned by one goroutine at a time. All suspension happens
// inside Push and PushSlice; the Try variant never suspends.
//
// Close the Producer when no further elements will be pushed; until
// then a consumer draining the ring cannot distinguish "empty for now"
// from "ended".
type Producer[T any] struct {
	s *shared[T]
}

// TryPush appends an element without suspending. The element is copied
// into the ring, so the original can be modified after TryPush returns.
//
// Returns ErrWouldBlock if the ring is currently full (transient),
// ErrClosed if this handle or the consumer handle was closed (terminal).
func (p *Producer[T]) TryPush(elem *T) error {
	if p.s.writeClosed.Load() || p.s.readClosed.Load() {
		return ErrClosed
	}
	if err := p.s.ring.TryPush(elem); err != nil {
		return err
	}
	p.s.notifyConsumer()
	return nil
}

// Push appends an element, suspending while the ring is full.
//
// Returns nil on success, ErrClosed if this handle or the consumer
// handle was closed, or ctx.Err() if ctx is done first. Cancellation at
// the suspension point never mutates the ring.
func (p *Producer[T]) Push(ctx context.Context, elem *T) error {
	sw := spin.Wait{}
	for spins := 0; ; {
		err := p.TryPush(elem)
		if !IsWouldBlock(err) {
			return err
		}
		if spins < spinTries {
			spins++
			sw.Once()
			continue
		}
		select {
		case <-p.s.prodWake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// PushSlice appends all of elems, suspending whenever the ring is full.
// Per wake cycle it transfers as many contiguous elements as fit; an
// already transferred element is never re-sent.
//
// Returns the number of elements appended. The count equals len(elems)
// unless the returned error is non-nil: ErrClosed if a handle was
// closed, or ctx.Err() if ctx is done first.
func (p *Producer[T]) PushSlice(ctx context.Context, elems []T) (int, error) {
	sw := spin.Wait{}
	pushed := 0
	for spins := 0; pushed < len(elems); {
		if p.s.writeClosed.Load() || p.s.readClosed.Load() {
			return pushed, ErrClosed
		}
		n := p.s.ring.PushSlice(elems[pushed:])
		if n > 0 {
			pushed += n
			p.s.notifyConsumer()
			spins = 0
			continue
		}
		if spins < spinTries {
			spins++
			sw.Once()
			continue
		}
		select {
		case <-p.s.prodWake:
		case <-ctx.Done():
			return pushed, ctx.Err()
		}
	}
	return pushed, nil
}

// Close marks the write side closed: no further push will succeed, and
// a consumer suspended on an empty ring wakes up and observes
// end-of-stream once the remaining elements are drained.
//
// Close is idempotent and always returns nil. Every Producer must be
// closed on every exit path (typically with defer), otherwise the
// consumer blocks forever waiting for more data.
func (p *Producer[T]) Close() error {
	p.s.closeWrite()
	return nil
}

// IsClosed reports whether further pushes can ever succeed: true once
// either handle of the pair has been closed.
func (p *Producer[T]) IsClosed() bool {
	return p.s.writeClosed.Load() || p.s.readClosed.Load()
}

// Cap returns the ring capacity.
func (p *Producer[T]) Cap() int {
	return p.s.ring.Cap()
}

// Len returns the number of occupied slots.
// The actual number may be less by the time it is observed.
func (p *Producer[T]) Len() int {
	return p.s.ring.Len()
}

// Free returns the number of vacant slots.
// The actual number may be greater by the time it is observed.
func (p *Producer[T]) Free() int {
	return p.s.ring.Cap() - p.s.ring.Len()
}

// IsFull reports whether the ring has no vacant slot.
// The result is relevant until the consumer removes an element.
func (p *Producer[T]) IsFull() bool {
	return p.s.ring.IsFull()
}
