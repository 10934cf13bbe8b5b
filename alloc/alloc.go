// Copyright (C) 2025 Daniel Stokic. All Rights Reserved.

// Package alloc defines the memory resource abstraction the decoder draws
// owned byte storage from.
//
// A single parse call receives one Resource and routes every byte buffer it
// allocates through it: string payloads and object keys. The caller owns the
// resource, and its lifetime must outlive the value tree returned by the
// parse. Each buffer is either handed off into the returned tree or freed on
// the error path before the parse returns; a tracking resource can therefore
// verify that a failed parse leaves nothing outstanding.
package alloc

import "errors"

// ErrExhausted is reported by a Resource whose capacity has been exceeded.
var ErrExhausted = errors.New("memory resource exhausted")

// A Resource allocates and releases byte storage on behalf of a parse.
//
// Free must be called exactly once for each buffer obtained from Alloc, by
// whoever owns the buffer at the time. Implementations are not required to
// be safe for concurrent use; a parse is fully synchronous and uses its
// resource from a single goroutine.
type Resource interface {
	// Alloc returns a zeroed buffer of length n, or ErrExhausted if the
	// resource cannot satisfy the request.
	Alloc(n int) ([]byte, error)

	// Free releases a buffer previously returned by Alloc.
	Free(p []byte)
}

// Heap returns the default Resource, which allocates from the Go heap. Its
// Free drops the reference and leaves reclamation to the garbage collector.
func Heap() Resource { return heap{} }

type heap struct{}

func (heap) Alloc(n int) ([]byte, error) { return make([]byte, n), nil }

func (heap) Free([]byte) {}

// A Tracking resource counts outstanding allocations, for leak verification
// in tests and for exercising allocation-failure paths.
type Tracking struct {
	limit int // maximum outstanding bytes, 0 for unlimited
	live  int
	bytes int
}

// NewTracking constructs a Tracking resource that fails with ErrExhausted
// once more than limit bytes are outstanding. If limit <= 0 the resource is
// unlimited.
func NewTracking(limit int) *Tracking { return &Tracking{limit: limit} }

// Alloc implements part of the Resource interface.
func (t *Tracking) Alloc(n int) ([]byte, error) {
	if t.limit > 0 && t.bytes+n > t.limit {
		return nil, ErrExhausted
	}
	t.live++
	t.bytes += n
	return make([]byte, n), nil
}

// Free implements part of the Resource interface. Freeing a buffer that was
// not allocated from t, or freeing one twice, violates the Resource contract;
// Free panics if the books no longer balance.
func (t *Tracking) Free(p []byte) {
	if t.live == 0 {
		panic("alloc: Free with no outstanding allocations")
	}
	t.live--
	t.bytes -= len(p)
	if t.bytes < 0 {
		panic("alloc: freed more bytes than were allocated")
	}
}

// Live reports the number of outstanding allocations.
func (t *Tracking) Live() int { return t.live }

// Bytes reports the number of outstanding allocated bytes.
func (t *Tracking) Bytes() int { return t.bytes }
