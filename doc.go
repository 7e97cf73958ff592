// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package aring provides an asynchronous coordination layer over a
// bounded single-producer single-consumer (SPSC) ring buffer.
//
// One goroutine writes elements through a [Producer] handle, another
// reads them through a [Consumer] handle. When the ring is full or
// empty, the suspending operations park the calling goroutine instead
// of spinning or failing, and resume it promptly when the peer makes
// progress. Coordination uses atomic cursors, two monotonic closed
// flags, and one coalescing wake slot per direction — no mutex, no
// condition variable.
//
// # Quick Start
//
//	p, c := aring.New[Event](1024)
//
//	// Producer goroutine
//	go func() {
//	    defer p.Close()
//	    for ev := range events {
//	        if err := p.Push(ctx, &ev); err != nil {
//	            return // consumer gone or ctx done
//	        }
//	    }
//	}()
//
//	// Consumer goroutine
//	for ev := range c.All(ctx) {
//	    handle(ev)
//	}
//
// # Handles
//
// [New] builds the default [Buffer] ring and splits it into exactly one
// Producer and one Consumer. [Split] does the same for a caller-supplied
// [Ring]. The write capability lives only on the Producer and the read
// capability only on the Consumer, so the ring's single-writer
// single-reader contract is enforced by the type system rather than by
// runtime checks.
//
// Each handle is owned by one goroutine at a time; the pair may be
// driven from two different goroutines.
//
// # Suspension Model
//
// Push and Pop (and the slice variants) first retry optimistically with
// a short CPU-relax spin, then park on the direction's wake slot. The
// peer deposits a wake token after every operation that changes the
// occupancy or a closed flag. Tokens coalesce: a slot holds at most one
// token and the woken side re-checks its actual condition, so spurious
// or merged wakeups are harmless.
//
// Suspended operations are cancelled through their context. Abandoning
// a suspension never touches the ring: the only shared mutation points
// are the non-suspending try-operations and close, all of which
// complete before any suspension point.
//
// # Close Protocol
//
// Producer.Close means "no further elements". A consumer drains the
// remaining elements and then observes io.EOF instead of suspending
// forever. Consumer.Close means "no further reads". A producer
// suspended on a full ring wakes and fails fast with [ErrClosed]
// instead of suspending forever. Both closes are idempotent and
// monotonic. Always close handles on every exit path, typically with
// defer; as a safety net, a handle that goes unreachable without Close
// is closed by a garbage collector cleanup, so an abandoned handle
// cannot leave its peer suspended forever.
//
// # Error Handling
//
// Transient conditions (ring full, ring empty) surface only from the
// Try variants as [ErrWouldBlock], sourced from [code.hybscloud.com/iox]
// for ecosystem consistency; the suspending variants retry internally.
// Terminal conditions are [ErrClosed] (peer departed or handle closed)
// and io.EOF (normal end-of-stream, not a failure).
//
//	v, err := c.TryPop()
//	switch {
//	case err == nil:
//	    handle(v)
//	case aring.IsWouldBlock(err):
//	    // empty right now, retry later
//	case errors.Is(err, io.EOF):
//	    // stream ended
//	}
//
// # Bulk Transfer
//
// PushSlice and PopSlice move batches with at most two copies per wake
// cycle and commit each batch with a single index store. Slice
// operations make partial progress: the transferred prefix advances
// monotonically and is never re-sent, even across suspensions.
//
// # Byte Streams
//
// For element type byte the ring composes with the standard stream
// abstractions: [NewWriter] exposes a Producer as an io.WriteCloser and
// [NewReader] exposes a Consumer as an io.Reader, so payloads can be
// pumped with io.Copy. [WrapBytes] adopts an existing
// [github.com/smallnest/ringbuffer.RingBuffer] as the storage ring.
//
// # Race Detection
//
// Go's race detector cannot observe happens-before relationships
// established through atomic memory orderings on the ring cursors.
// Cross-goroutine tests of this package are therefore excluded from
// race builds via //go:build !race; the algorithms are correct, the
// detector just cannot track acquire-release synchronization on
// separate variables.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause
// instructions in the pre-park spin phase.
package aring
