// Copyright (C) 2025 Daniel Stokic. All Rights Reserved.

package jval

import (
	"bufio"
	"io"
)

// A Reader delivers bytes from an input stream with one byte of pushback.
// Every component of the decoder consumes input exclusively through a Reader,
// which gives the parser uniform one-byte lookahead regardless of the
// underlying source.
type Reader struct {
	r  *bufio.Reader
	un int // pending pushback byte, or -1 if none

	off         int // offset of the next byte, 0-based
	line, col   int // position of the next byte
	pline, pcol int // position before the most recent read, for UnreadByte
}

// NewReader constructs a Reader that consumes input from r.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br, un: -1, line: 1}
}

// ReadByte returns the next byte of the input, consuming a pending pushback
// byte first if one exists. At the end of the input it returns io.EOF, which
// is an ordinary condition rather than a failure.
func (r *Reader) ReadByte() (byte, error) {
	var b byte
	if r.un >= 0 {
		b, r.un = byte(r.un), -1
	} else {
		var err error
		b, err = r.r.ReadByte()
		if err != nil {
			return 0, err
		}
	}
	r.pline, r.pcol = r.line, r.col
	r.off++
	if b == '\n' {
		r.line++
		r.col = 0
	} else {
		r.col++
	}
	return b, nil
}

// UnreadByte stores b to be delivered by the next call to ReadByte. It
// reports ErrUnreadByte if a pushback byte is already pending; at most one
// byte can be un-read at a time.
func (r *Reader) UnreadByte(b byte) error {
	if r.un >= 0 {
		return ErrUnreadByte
	}
	r.un = int(b)
	r.off--
	r.line, r.col = r.pline, r.pcol
	return nil
}

// Peek returns the next byte of the input without consuming it.
func (r *Reader) Peek() (byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	if err := r.UnreadByte(b); err != nil {
		return 0, err
	}
	return b, nil
}

// SkipSpace consumes a run of whitespace (space, tab, CR, LF) and pushes back
// the first non-matching byte. Reaching the end of the input while skipping
// is not an error.
func (r *Reader) SkipSpace() error {
	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if !isSpace(b) {
			return r.UnreadByte(b)
		}
	}
}

// Offset returns the byte offset of the next unconsumed byte.
func (r *Reader) Offset() int { return r.off }

// Pos returns the line/column position of the next unconsumed byte.
func (r *Reader) Pos() LineCol { return LineCol{Line: r.line, Column: r.col} }

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
