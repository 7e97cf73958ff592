// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aring

import "runtime"

// New creates a ring buffer with the given capacity and splits it into
// its producer and consumer halves.
//
// Capacity rounds up to the next power of 2. Panics if capacity < 1.
//
// Example:
//
//	p, c := aring.New[int](1024)
//
//	go func() {
//	    defer p.Close()
//	    for i := range 100 {
//	        p.Push(ctx, &i)
//	    }
//	}()
//
//	for v, err := c.Pop(ctx); err == nil; v, err = c.Pop(ctx) {
//	    process(v)
//	}
func New[T any](capacity int) (*Producer[T], *Consumer[T]) {
	return Split[T](NewBuffer[T](capacity))
}

// Split adopts a caller-supplied Ring and returns its producer and
// consumer halves.
//
// Split takes over the ring's SPSC contract: after Split, the ring must
// be driven exclusively through the returned handles. Exactly one
// Producer and one Consumer exist per coordination block; the handles
// are not safe for concurrent use by multiple goroutines, but the pair
// may be driven from two different goroutines.
//
// A handle that becomes unreachable without an explicit Close is closed
// by a garbage collector cleanup, so an abandoned handle cannot leave
// its peer suspended forever. Explicit Close remains the primary path:
// cleanup timing is up to the collector.
func Split[T any](r Ring[T]) (*Producer[T], *Consumer[T]) {
	s := newShared(r)
	p := &Producer[T]{s: s}
	c := &Consumer[T]{s: s}
	runtime.AddCleanup(p, func(s *shared[T]) { s.closeWrite() }, s)
	runtime.AddCleanup(c, func(s *shared[T]) { s.closeRead() }, s)
	return p, c
}
