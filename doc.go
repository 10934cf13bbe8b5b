// Copyright (C) 2025 Daniel Stokic. All Rights Reserved.

// Package jval implements the stream layer of an incremental JSON decoder.
//
// # Reading
//
// The Reader type wraps an arbitrary io.Reader with a one-byte pushback
// buffer, giving the parser uniform one-byte lookahead over any byte source:
//
//	r := jval.NewReader(input)
//	b, err := r.ReadByte()
//	...
//	r.UnreadByte(b) // b is delivered again by the next ReadByte
//
// ReadByte returns io.EOF at the end of the input; this is an ordinary
// condition, not a failure. A second UnreadByte without an intervening read
// is a contract violation and reports ErrUnreadByte.
//
// The Reader tracks the byte offset and line/column position of the input as
// it is consumed, so errors produced by higher layers can report where in the
// source they occurred.
//
// # Decoding
//
// The ast subpackage builds JSON value trees on top of Reader:
//
//	v, err := ast.Parse(input, alloc.Heap())
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//	defer v.Release(alloc.Heap())
//
// In case of a syntax error, the returned error has concrete type
// [*SyntaxError] and records the position of the offending input.
package jval
