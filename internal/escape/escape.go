// Copyright (C) 2025 Daniel Stokic. All Rights Reserved.

// Package escape handles unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
//
// Exactly five escape sequences are recognized: \n, \r, \t, \" and \\. Any
// other byte after a backslash is an error, as is a backslash at the end of
// the input. All other bytes are copied verbatim with no UTF-8 validation.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	for src.Len() != 0 {
		dec = mem.Append(dec, src.SliceTo(i))

		// Substitute for the byte following the escape.
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		b := src.At(0)
		src = src.SliceFrom(1)
		switch b {
		case '"', '\\':
			dec = append(dec, b)
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		default:
			return nil, fmt.Errorf("unsupported escape %q", b)
		}

		// Look for the next escape sequence, and if one is not found we can
		// blit the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return dec, nil
}
