// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aring

import (
	"errors"

	"github.com/smallnest/ringbuffer"
)

// BytesRing adapts a [ringbuffer.RingBuffer] to the [Ring] contract,
// so an existing byte ring can be driven through the coordination layer:
//
//	rb := ringbuffer.New(4096)
//	p, c := aring.Split[byte](aring.WrapBytes(rb))
//
// The adapter only forwards the non-blocking operations; suspension and
// the close protocol stay with the Producer/Consumer handles. The usual
// contract applies: after Split, the underlying ring must not be driven
// directly anymore.
//
// The wrapped ring rejects Try operations while its internal lock is
// briefly held by the peer. The adapter retries those, so ErrWouldBlock
// keeps its strict meaning of full/empty; a spurious would-block here
// could park a handle with no wake token pending.
type BytesRing struct {
	rb *ringbuffer.RingBuffer
}

// WrapBytes wraps rb into a Ring[byte] suitable for [Split].
func WrapBytes(rb *ringbuffer.RingBuffer) *BytesRing {
	return &BytesRing{rb: rb}
}

// TryPush appends one byte. Returns ErrWouldBlock if the ring is full.
func (r *BytesRing) TryPush(elem *byte) error {
	for {
		err := r.rb.TryWriteByte(*elem)
		if err == nil {
			return nil
		}
		if errors.Is(err, ringbuffer.ErrAcquireLock) {
			continue
		}
		return ErrWouldBlock
	}
}

// TryPop removes and returns the oldest byte.
// Returns (0, ErrWouldBlock) if the ring is empty.
func (r *BytesRing) TryPop() (byte, error) {
	for {
		var b [1]byte
		_, err := r.rb.TryRead(b[:])
		if err == nil {
			return b[0], nil
		}
		if errors.Is(err, ringbuffer.ErrAcquireLock) {
			continue
		}
		return 0, ErrWouldBlock
	}
}

// PushSlice appends a prefix of elems, as many as currently fit.
func (r *BytesRing) PushSlice(elems []byte) int {
	for {
		// Clamp to the free space: under the single-producer contract
		// the free space cannot shrink between the two calls.
		k := min(len(elems), r.rb.Free())
		if k == 0 {
			return 0
		}
		n, err := r.rb.TryWrite(elems[:k])
		if n > 0 || err == nil {
			return n
		}
		if !errors.Is(err, ringbuffer.ErrAcquireLock) {
			return 0
		}
	}
}

// PopSlice removes up to len(buf) of the oldest bytes into buf.
func (r *BytesRing) PopSlice(buf []byte) int {
	for {
		k := min(len(buf), r.rb.Length())
		if k == 0 {
			return 0
		}
		n, err := r.rb.TryRead(buf[:k])
		if n > 0 || err == nil {
			return n
		}
		if !errors.Is(err, ringbuffer.ErrAcquireLock) {
			return 0
		}
	}
}

// Len returns the number of occupied bytes.
func (r *BytesRing) Len() int {
	return r.rb.Length()
}

// Cap returns the ring capacity.
func (r *BytesRing) Cap() int {
	return r.rb.Capacity()
}

// IsFull reports whether the ring has no free byte.
func (r *BytesRing) IsFull() bool {
	return r.rb.IsFull()
}

// IsEmpty reports whether the ring holds no byte.
func (r *BytesRing) IsEmpty() bool {
	return r.rb.IsEmpty()
}
