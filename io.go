// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aring

import (
	"context"
	"io"
)

// NewWriter adapts the write half of a byte ring into an io.WriteCloser,
// so the ring composes with io.Copy and other stream pipelines.
//
// Write suspends while the ring is full and returns a short count only
// together with an error, as the io.Writer contract requires. Closing
// the Writer closes the Producer, which the reading side observes as
// end-of-stream.
//
// The returned Writer assumes the Producer's single-writer contract;
// it must not be used concurrently with direct Producer calls.
func NewWriter(ctx context.Context, p *Producer[byte]) io.WriteCloser {
	return &ringWriter{ctx: ctx, p: p}
}

type ringWriter struct {
	ctx context.Context
	p   *Producer[byte]
}

func (w *ringWriter) Write(b []byte) (int, error) {
	n, err := w.p.PushSlice(w.ctx, b)
	if err == nil && n < len(b) {
		return n, io.ErrShortWrite
	}
	return n, err
}

func (w *ringWriter) Close() error {
	return w.p.Close()
}

// NewReader adapts the read half of a byte ring into an io.Reader.
//
// Read suspends while the ring is empty and returns as soon as at least
// one byte is available; it does not wait to fill the whole slice. At
// end-of-stream Read returns io.EOF, after which the stream is
// exhausted permanently.
//
// The returned Reader assumes the Consumer's single-reader contract;
// it must not be used concurrently with direct Consumer calls.
func NewReader(ctx context.Context, c *Consumer[byte]) io.Reader {
	return &ringReader{ctx: ctx, c: c}
}

type ringReader struct {
	ctx context.Context
	c   *Consumer[byte]
}

func (r *ringReader) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	return r.c.popSome(r.ctx, b)
}
