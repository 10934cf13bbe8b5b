// Copyright (C) 2025 Daniel Stokic. All Rights Reserved.

package jval_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stokic/jval"
)

func TestReader(t *testing.T) {
	const input = "a\nbc"

	r := jval.NewReader(strings.NewReader(input))
	var got []byte
	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("ReadByte failed: %v", err)
		}
		got = append(got, b)
	}
	if diff := cmp.Diff([]byte(input), got); diff != "" {
		t.Errorf("Wrong bytes: (-want, +got)\n%s", diff)
	}
	if off := r.Offset(); off != len(input) {
		t.Errorf("Offset: got %d, want %d", off, len(input))
	}
	if _, err := r.ReadByte(); err != io.EOF {
		t.Errorf("ReadByte at end: got %v, want io.EOF", err)
	}
}

func TestReader_unread(t *testing.T) {
	r := jval.NewReader(strings.NewReader("xy"))

	b, err := r.ReadByte()
	if err != nil {
		t.Fatalf("ReadByte failed: %v", err)
	}
	if err := r.UnreadByte(b); err != nil {
		t.Fatalf("UnreadByte failed: %v", err)
	}

	// A second pushback without an intervening read is a contract violation.
	if err := r.UnreadByte('z'); !errors.Is(err, jval.ErrUnreadByte) {
		t.Errorf("Second UnreadByte: got %v, want %v", err, jval.ErrUnreadByte)
	}

	// The pushback byte is delivered before the rest of the stream.
	got, err := r.ReadByte()
	if err != nil || got != 'x' {
		t.Errorf("ReadByte: got %q, %v; want 'x', nil", got, err)
	}
	got, err = r.ReadByte()
	if err != nil || got != 'y' {
		t.Errorf("ReadByte: got %q, %v; want 'y', nil", got, err)
	}
}

func TestReader_unreadAtEOF(t *testing.T) {
	r := jval.NewReader(strings.NewReader("q"))
	b, err := r.ReadByte()
	if err != nil {
		t.Fatalf("ReadByte failed: %v", err)
	}
	if err := r.UnreadByte(b); err != nil {
		t.Fatalf("UnreadByte failed: %v", err)
	}
	if got, err := r.ReadByte(); err != nil || got != 'q' {
		t.Errorf("ReadByte: got %q, %v; want 'q', nil", got, err)
	}
	if _, err := r.ReadByte(); err != io.EOF {
		t.Errorf("ReadByte at end: got %v, want io.EOF", err)
	}
}

func TestReader_peek(t *testing.T) {
	r := jval.NewReader(strings.NewReader("ab"))
	for range 3 {
		b, err := r.Peek()
		if err != nil || b != 'a' {
			t.Fatalf("Peek: got %q, %v; want 'a', nil", b, err)
		}
	}
	if off := r.Offset(); off != 0 {
		t.Errorf("Offset after Peek: got %d, want 0", off)
	}
	if b, err := r.ReadByte(); err != nil || b != 'a' {
		t.Errorf("ReadByte: got %q, %v; want 'a', nil", b, err)
	}
}

func TestReader_skipSpace(t *testing.T) {
	tests := []struct {
		input string
		next  byte // 0 means end of input
	}{
		{"", 0},
		{"   ", 0},
		{" \t\r\n ", 0},
		{"x", 'x'},
		{" \t\r\n x", 'x'},
		{"\n\n{", '{'},
	}
	for _, test := range tests {
		r := jval.NewReader(strings.NewReader(test.input))
		if err := r.SkipSpace(); err != nil {
			t.Errorf("Input %#q: SkipSpace failed: %v", test.input, err)
			continue
		}
		b, err := r.ReadByte()
		if test.next == 0 {
			if err != io.EOF {
				t.Errorf("Input %#q: got %q, %v; want io.EOF", test.input, b, err)
			}
		} else if err != nil || b != test.next {
			t.Errorf("Input %#q: got %q, %v; want %q", test.input, b, err, test.next)
		}
	}
}

func TestReader_pos(t *testing.T) {
	r := jval.NewReader(strings.NewReader("ab\ncd"))
	want := []jval.LineCol{
		{Line: 1, Column: 0},
		{Line: 1, Column: 1},
		{Line: 1, Column: 2},
		{Line: 2, Column: 0},
		{Line: 2, Column: 1},
		{Line: 2, Column: 2},
	}
	var got []jval.LineCol
	got = append(got, r.Pos())
	for {
		if _, err := r.ReadByte(); err != nil {
			break
		}
		got = append(got, r.Pos())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Positions: (-want, +got)\n%s", diff)
	}
}

func TestReader_posUnread(t *testing.T) {
	r := jval.NewReader(strings.NewReader("a\nb"))
	for range 2 {
		if _, err := r.ReadByte(); err != nil {
			t.Fatalf("ReadByte failed: %v", err)
		}
	}
	after := r.Pos()
	if err := r.UnreadByte('\n'); err != nil {
		t.Fatalf("UnreadByte failed: %v", err)
	}
	if got := r.Pos(); got != (jval.LineCol{Line: 1, Column: 1}) {
		t.Errorf("Pos after unread: got %v, want 1:1", got)
	}
	if _, err := r.ReadByte(); err != nil {
		t.Fatalf("ReadByte failed: %v", err)
	}
	if got := r.Pos(); got != after {
		t.Errorf("Pos after re-read: got %v, want %v", got, after)
	}
}
