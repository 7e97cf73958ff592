// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// This file contains stress tests with concurrent producer/consumer
// goroutines. These trigger false positives with Go's race detector
// because the ring synchronizes through atomic sequences that the
// detector cannot see. The tests are correct; they're excluded from
// race testing.

package aring_test

import (
	"errors"
	"io"
	"testing"
	"time"

	"code.hybscloud.com/aring"
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"github.com/valyala/fastrand"
)

// TestStressRandomBatches transfers a long sequence through a small ring
// using randomly sized PushSlice/PopSlice batches and verifies order and
// completeness.
func TestStressRandomBatches(t *testing.T) {
	const count = 200000
	ctx := testCtx(t)
	p, c := aring.New[int](128)

	src := make([]int, count)
	for i := range src {
		src[i] = i
	}

	go func() {
		defer p.Close()
		off := 0
		for off < count {
			k := int(fastrand.Uint32n(256)) + 1
			if off+k > count {
				k = count - off
			}
			n, err := p.PushSlice(ctx, src[off:off+k])
			off += n
			if err != nil {
				return
			}
		}
	}()

	next := 0
	buf := make([]int, 512)
	for {
		k := int(fastrand.Uint32n(uint32(len(buf)))) + 1
		n, err := c.PopSlice(ctx, buf[:k])
		for i := range n {
			if buf[i] != next {
				t.Fatalf("sequence: got %d, want %d", buf[i], next)
			}
			next++
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("PopSlice at %d: %v", next, err)
		}
	}
	if next != count {
		t.Fatalf("received %d elements, want %d", next, count)
	}
}

// TestStressTryBackoff drives the non-suspending variants from two
// goroutines with adaptive backoff, the way embedding code that opted
// out of suspension is expected to retry.
func TestStressTryBackoff(t *testing.T) {
	const count = 100000
	p, c := aring.New[uint64](64)

	var producerDone atomix.Bool
	go func() {
		backoff := iox.Backoff{}
		for i := uint64(0); i < count; {
			v := i
			if err := p.TryPush(&v); err != nil {
				backoff.Wait()
				continue
			}
			backoff.Reset()
			i++
		}
		producerDone.Store(true)
	}()

	deadline := time.Now().Add(30 * time.Second)
	backoff := iox.Backoff{}
	next := uint64(0)
	for next < count {
		if time.Now().After(deadline) {
			t.Fatalf("stalled at %d of %d elements", next, count)
		}
		v, err := c.TryPop()
		if err != nil {
			backoff.Wait()
			continue
		}
		backoff.Reset()
		if v != next {
			t.Fatalf("sequence: got %d, want %d", v, next)
		}
		next++
	}

	waitBackoff := iox.Backoff{}
	for !producerDone.Load() {
		if time.Now().After(deadline) {
			t.Fatal("producer never finished")
		}
		waitBackoff.Wait()
	}
	if _, err := c.TryPop(); !errors.Is(err, aring.ErrWouldBlock) {
		t.Fatalf("TryPop after transfer: got %v, want ErrWouldBlock", err)
	}
}
