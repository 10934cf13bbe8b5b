// Copyright (C) 2025 Daniel Stokic. All Rights Reserved.

package jval

import (
	"errors"
	"fmt"
)

// ErrUnreadByte is reported by Reader.UnreadByte when a pushback byte is
// already pending.
var ErrUnreadByte = errors.New("pushback byte already pending")

// SyntaxError is the concrete type of errors reported by the decoder for
// malformed input. It records the position of the offending input and may
// wrap an underlying cause, such as io.ErrUnexpectedEOF when the input ended
// where the grammar required more bytes, or a *strconv.NumError when an
// accumulated numeral did not parse.
type SyntaxError struct {
	Pos     LineCol // position of the error in the input
	Offset  int     // byte offset of the error, 0-based
	Message string

	err error
}

// NewSyntaxError constructs a SyntaxError at the given position wrapping an
// optional underlying cause.
func NewSyntaxError(off int, pos LineCol, cause error, msg string, args ...any) *SyntaxError {
	return &SyntaxError{
		Pos:     pos,
		Offset:  off,
		Message: fmt.Sprintf(msg, args...),
		err:     cause,
	}
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Pos, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
