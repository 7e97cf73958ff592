// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// This file contains tests with concurrent producer/consumer goroutines.
// These trigger false positives with Go's race detector because the ring
// synchronizes through atomic sequences that the detector cannot see.
// The tests are correct; they're excluded from race testing.

package aring_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"code.hybscloud.com/aring"
)

// TestWriterReaderCopy pumps a payload much larger than the ring through
// the io adapters with io.Copy and verifies a byte-exact round trip.
func TestWriterReaderCopy(t *testing.T) {
	ctx := testCtx(t)
	p, c := aring.New[byte](8)

	payload := bytes.Repeat([]byte("the quick brown fox "), 64)

	done := make(chan error, 1)
	go func() {
		w := aring.NewWriter(ctx, p)
		if _, err := io.Copy(w, bytes.NewReader(payload)); err != nil {
			done <- err
			return
		}
		done <- w.Close()
	}()

	got, err := io.ReadAll(aring.NewReader(ctx, c))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("write side: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(payload))
	}
}

// TestReaderDrainThenEOF verifies that the Reader returns buffered bytes
// after the producer closed, then io.EOF.
func TestReaderDrainThenEOF(t *testing.T) {
	p, c := aring.New[byte](16)

	w := aring.NewWriter(context.Background(), p)
	if _, err := w.Write([]byte("tail")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r := aring.NewReader(context.Background(), c)
	buf := make([]byte, 16)
	n, err := r.Read(buf)
	if err != nil || string(buf[:n]) != "tail" {
		t.Fatalf("Read: got (%q, %v), want (tail, nil)", buf[:n], err)
	}
	if _, err := r.Read(buf); !errors.Is(err, io.EOF) {
		t.Fatalf("Read after drain: got %v, want io.EOF", err)
	}
}

// TestWriterConsumerGone verifies that writes fail once the reading side
// departed.
func TestWriterConsumerGone(t *testing.T) {
	p, c := aring.New[byte](4)
	c.Close()

	w := aring.NewWriter(context.Background(), p)
	if _, err := w.Write([]byte("x")); !errors.Is(err, aring.ErrClosed) {
		t.Fatalf("Write: got %v, want ErrClosed", err)
	}
}

// TestReaderEmptySlice verifies the zero-length read contract.
func TestReaderEmptySlice(t *testing.T) {
	_, c := aring.New[byte](4)

	r := aring.NewReader(context.Background(), c)
	if n, err := r.Read(nil); n != 0 || err != nil {
		t.Fatalf("Read(nil): got (%d, %v), want (0, nil)", n, err)
	}
}
