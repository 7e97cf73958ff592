// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aring

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For TryPush: the ring is full (backpressure)
// For TryPop: the ring is empty (no data available)
//
// ErrWouldBlock is a control flow signal, not a failure, and it never
// escapes the suspending operations (Push, Pop and the slice variants
// retry internally). Only the Try variants surface it, because their
// callers explicitly opted out of suspension.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrClosed indicates a terminal condition: the operation can never
// succeed no matter how often it is retried.
//
// For push operations: the consumer closed its handle and will never
// read again, or the producer handle itself was closed.
// For pop operations: the consumer handle itself was closed.
//
// Normal end-of-stream (producer closed and the ring is drained) is not
// an error; pop operations report it with [io.EOF].
var ErrClosed = errors.New("aring: closed")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or ErrMore.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
