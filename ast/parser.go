// Copyright (C) 2025 Daniel Stokic. All Rights Reserved.

package ast

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	"go4.org/mem"

	"github.com/stokic/jval"
	"github.com/stokic/jval/alloc"
	"github.com/stokic/jval/internal/escape"
)

// DefaultMaxDepth is the nesting depth limit of a Parser unless overridden
// with SetMaxDepth.
const DefaultMaxDepth = 1024

// ErrDepth is reported (wrapped in a *jval.SyntaxError) when the input nests
// containers more deeply than the parser's depth limit.
var ErrDepth = errors.New("maximum nesting depth exceeded")

// Parse decodes a single JSON value from r, drawing owned storage from res.
// The caller becomes the exclusive owner of the returned value and must
// release it exactly once with the same resource. Parse consumes the value
// and any whitespace around it, and leaves the rest of the input unread.
//
// In case of a syntax error, the returned error has concrete type
// [*jval.SyntaxError]. Whatever the parse had partially constructed is
// released before the error is returned; the caller never cleans up after a
// failed parse.
func Parse(r io.Reader, res alloc.Resource) (Value, error) {
	return NewParser(r, res).Parse()
}

// A Parser decodes JSON values from an input stream. Each call to Parse
// consumes one value. A Parser is not safe for concurrent use.
type Parser struct {
	rd  *jval.Reader
	res alloc.Resource
	buf bytes.Buffer // scratch accumulator for the current token

	depth, maxDepth int
}

// NewParser constructs a Parser that consumes input from r and draws owned
// storage from res.
func NewParser(r io.Reader, res alloc.Resource) *Parser {
	return &Parser{rd: jval.NewReader(r), res: res, maxDepth: DefaultMaxDepth}
}

// SetMaxDepth sets the container nesting depth at which the parser gives up
// with ErrDepth, bounding stack use on adversarial input. Values n <= 0
// reset the limit to DefaultMaxDepth.
func (p *Parser) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
}

// Parse decodes the next value from the input. See the Parse function for
// the ownership and error contract.
func (p *Parser) Parse() (Value, error) { return p.parseValue() }

// parseValue dispatches on one byte of lookahead and is re-entered
// recursively for every array element and object value.
func (p *Parser) parseValue() (Value, error) {
	if err := p.rd.SkipSpace(); err != nil {
		return nil, err
	}
	b, err := p.rd.Peek()
	if err == io.EOF {
		return nil, p.unexpectedEOF("value")
	} else if err != nil {
		return nil, err
	}

	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		return nil, p.syntaxErr(ErrDepth, "nesting exceeds %d levels", p.maxDepth)
	}

	var v Value
	switch {
	case b == 'n':
		v, err = p.scanNull()
	case b == 't' || b == 'f':
		v, err = p.scanBool()
	case b == '"':
		v, err = p.scanString()
	case b == '{':
		v, err = p.parseObject()
	case b == '[':
		v, err = p.parseArray()
	case isNumByte(b):
		v, err = p.scanNumber()
	default:
		return nil, p.syntaxf("unexpected %q", b)
	}
	if err != nil {
		return nil, err
	}
	if err := p.rd.SkipSpace(); err != nil {
		v.Release(p.res)
		return nil, err
	}
	return v, nil
}

// scanNull recognizes the null constant.
func (p *Parser) scanNull() (Value, error) {
	if err := p.scanName(4, isNullByte); err != nil {
		return nil, err
	}
	if !mem.B(p.buf.Bytes()).EqualString("null") {
		return nil, p.syntaxf("unknown constant %q", p.buf.String())
	}
	return Null{}, nil
}

// scanBool recognizes the true and false constants.
func (p *Parser) scanBool() (Value, error) {
	if err := p.scanName(5, isBoolByte); err != nil {
		return nil, err
	}
	got := mem.B(p.buf.Bytes())
	if got.EqualString("true") {
		return Bool(true), nil
	} else if got.EqualString("false") {
		return Bool(false), nil
	}
	return nil, p.syntaxf("unknown constant %q", p.buf.String())
}

// scanName accumulates at most max bytes matching f into the scratch buffer,
// pushing back the first non-matching byte. End of input merely stops the
// accumulation; the caller judges what was collected.
func (p *Parser) scanName(max int, f func(byte) bool) error {
	p.buf.Reset()
	for p.buf.Len() < max {
		b, err := p.rd.ReadByte()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if !f(b) {
			return p.rd.UnreadByte(b)
		}
		p.buf.WriteByte(b)
	}
	return nil
}

// scanNumber accumulates an unbounded run over the number alphabet and
// parses it as a 64-bit float. The alphabet is deliberately looser than the
// JSON number grammar; strconv has the final word on what the run means.
func (p *Parser) scanNumber() (Value, error) {
	p.buf.Reset()
	for {
		b, err := p.rd.ReadByte()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if !isNumByte(b) {
			if err := p.rd.UnreadByte(b); err != nil {
				return nil, err
			}
			break
		}
		p.buf.WriteByte(b)
	}
	v, err := strconv.ParseFloat(p.buf.String(), 64)
	if err != nil {
		return nil, p.syntaxErr(err, "invalid number %q", p.buf.String())
	}
	return Number(v), nil
}

// scanString recognizes a quoted string and copies its decoded contents into
// resource-owned storage.
func (p *Parser) scanString() (Value, error) {
	text, err := p.internQuoted()
	if err != nil {
		return nil, err
	}
	return &String{text: text}, nil
}

// internQuoted consumes a quoted string, decodes its escapes, and returns a
// copy of the decoded bytes drawn from the parser's memory resource. On
// failure nothing remains allocated.
func (p *Parser) internQuoted() ([]byte, error) {
	raw, err := p.scanQuoted()
	if err != nil {
		return nil, err
	}
	dec, err := escape.Unquote(mem.B(raw))
	if err != nil {
		return nil, p.syntaxErr(err, "invalid string: %v", err)
	}
	buf, err := p.res.Alloc(len(dec))
	if err != nil {
		return nil, err
	}
	copy(buf, dec)
	return buf, nil
}

// scanQuoted consumes a quoted string and leaves its raw (undecoded) text,
// without the enclosing quotes, in the scratch buffer.
func (p *Parser) scanQuoted() ([]byte, error) {
	b, err := p.rd.ReadByte()
	if err == io.EOF {
		return nil, p.unexpectedEOF("string")
	} else if err != nil {
		return nil, err
	}
	if b != '"' {
		return nil, p.syntaxf("got %q, want string", b)
	}
	p.buf.Reset()
	var esc bool
	for {
		b, err := p.rd.ReadByte()
		if err == io.EOF {
			return nil, p.unexpectedEOF("string")
		} else if err != nil {
			return nil, err
		}
		if b == '"' && !esc {
			return p.buf.Bytes(), nil
		}
		p.buf.WriteByte(b)
		esc = b == '\\' && !esc
	}
}

// parseArray consumes "[" elements "]". Ownership of each element transfers
// to the array the moment it is appended, so a failure at any point releases
// the array and with it everything parsed so far.
func (p *Parser) parseArray() (_ Value, err error) {
	arr := new(Array)
	defer func() {
		if err != nil {
			arr.Release(p.res)
		}
	}()

	if _, err = p.rd.ReadByte(); err != nil { // consume "[", already peeked
		return nil, err
	}
	if err = p.rd.SkipSpace(); err != nil {
		return nil, err
	}
	b, err := p.rd.Peek()
	if err == io.EOF {
		return nil, p.unexpectedEOF("array")
	} else if err != nil {
		return nil, err
	}
	if b == ']' {
		if _, err = p.rd.ReadByte(); err != nil {
			return nil, err
		}
		return arr, nil
	}

	for {
		var v Value
		v, err = p.parseValue()
		if err != nil {
			return nil, err
		}
		arr.Values = append(arr.Values, v)

		b, err = p.rd.ReadByte()
		if err == io.EOF {
			return nil, p.unexpectedEOF("array")
		} else if err != nil {
			return nil, err
		}
		switch b {
		case ']':
			return arr, nil
		case ',':
			// next element
		default:
			return nil, p.syntaxf(`got %q, want "," or "]"`, b)
		}
	}
}

// parseObject consumes "{" members "}". As with arrays, appended members are
// owned by the object, so failure-path cleanup is one cascading release. A
// key that has not yet been inserted is freed by hand on the error paths
// between its allocation and its insertion.
func (p *Parser) parseObject() (_ Value, err error) {
	obj := new(Object)
	defer func() {
		if err != nil {
			obj.Release(p.res)
		}
	}()

	if _, err = p.rd.ReadByte(); err != nil { // consume "{", already peeked
		return nil, err
	}
	if err = p.rd.SkipSpace(); err != nil {
		return nil, err
	}
	b, err := p.rd.Peek()
	if err == io.EOF {
		return nil, p.unexpectedEOF("object")
	} else if err != nil {
		return nil, err
	}
	if b == '}' {
		if _, err = p.rd.ReadByte(); err != nil {
			return nil, err
		}
		return obj, nil
	}

	for {
		if err = p.rd.SkipSpace(); err != nil {
			return nil, err
		}
		var key []byte
		key, err = p.internQuoted()
		if err != nil {
			return nil, err
		}
		if err = p.requireColon(key); err != nil {
			return nil, err
		}
		var v Value
		v, err = p.parseValue()
		if err != nil {
			p.res.Free(key)
			return nil, err
		}
		obj.set(p.res, key, v)

		b, err = p.rd.ReadByte()
		if err == io.EOF {
			return nil, p.unexpectedEOF("object")
		} else if err != nil {
			return nil, err
		}
		switch b {
		case '}':
			return obj, nil
		case ',':
			// next member
		default:
			return nil, p.syntaxf(`got %q, want "," or "}"`, b)
		}
	}
}

// requireColon consumes the ":" between a member key and its value, freeing
// the pending key if it fails.
func (p *Parser) requireColon(key []byte) error {
	if err := p.rd.SkipSpace(); err != nil {
		p.res.Free(key)
		return err
	}
	b, err := p.rd.ReadByte()
	if err == io.EOF {
		p.res.Free(key)
		return p.unexpectedEOF("object")
	} else if err != nil {
		p.res.Free(key)
		return err
	}
	if b != ':' {
		p.res.Free(key)
		return p.syntaxf(`got %q, want ":"`, b)
	}
	return nil
}

func (p *Parser) unexpectedEOF(label string) error {
	return p.syntaxErr(io.ErrUnexpectedEOF, "unexpected end of input in %s", label)
}

func (p *Parser) syntaxf(msg string, args ...any) error {
	return p.syntaxErr(nil, msg, args...)
}

func (p *Parser) syntaxErr(cause error, msg string, args ...any) error {
	return jval.NewSyntaxError(p.rd.Offset(), p.rd.Pos(), cause, msg, args...)
}

func isNullByte(b byte) bool { return b == 'n' || b == 'u' || b == 'l' }

func isBoolByte(b byte) bool {
	switch b {
	case 't', 'r', 'u', 'e', 'f', 'a', 'l', 's':
		return true
	}
	return false
}

func isNumByte(b byte) bool {
	return b == '-' || b == '.' || b == 'e' || ('0' <= b && b <= '9')
}
