// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aring

import (
	"code.hybscloud.com/atomix"
)

// spinTries is the number of optimistic retries a suspending operation
// performs before parking on its wake slot. Short spinning wins when the
// peer is actively running on another core; parking wins when it is not.
const spinTries = 8

// shared is the coordination block between exactly one Producer and one
// Consumer: the ring, one wake slot per direction, and the two monotonic
// closed flags.
//
// A wake slot is a capacity-1 channel holding at most one pending wake
// token. Depositing into a slot that already holds a token is dropped:
// the woken side re-checks its actual condition, not the token count, so
// coalescing multiple progress events into one token is correct. A stale
// token left by an abandoned suspension costs at most one extra re-check
// by the next suspension in that direction.
type shared[T any] struct {
	ring Ring[T]

	// prodWake parks the producer when the ring is full;
	// consWake parks the consumer when the ring is empty.
	prodWake chan struct{}
	consWake chan struct{}

	writeClosed atomix.Bool // producer will never push again
	readClosed  atomix.Bool // consumer will never pop again
}

func newShared[T any](r Ring[T]) *shared[T] {
	return &shared[T]{
		ring:     r,
		prodWake: make(chan struct{}, 1),
		consWake: make(chan struct{}, 1),
	}
}

// notifyProducer deposits a wake token for a producer suspended on a
// full ring. Must be called after every operation that vacates slots or
// sets a closed flag; that is the only way the producer learns progress
// occurred. Never blocks.
func (s *shared[T]) notifyProducer() {
	select {
	case s.prodWake <- struct{}{}:
	default:
	}
}

// notifyConsumer deposits a wake token for a consumer suspended on an
// empty ring. Must be called after every operation that fills slots or
// sets a closed flag. Never blocks.
func (s *shared[T]) notifyConsumer() {
	select {
	case s.consWake <- struct{}{}:
	default:
	}
}

// closeWrite marks the write side closed and wakes a consumer possibly
// suspended on an empty ring, so it observes end-of-stream instead of
// waiting forever. Idempotent.
func (s *shared[T]) closeWrite() {
	s.writeClosed.Store(true)
	s.notifyConsumer()
}

// closeRead marks the read side closed and wakes a producer possibly
// suspended on a full ring, so it observes the departed peer instead of
// waiting forever. Idempotent.
func (s *shared[T]) closeRead() {
	s.readClosed.Store(true)
	s.notifyProducer()
}
