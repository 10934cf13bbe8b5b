// Copyright (C) 2025 Daniel Stokic. All Rights Reserved.

// Package ast defines an abstract syntax tree for JSON values, and a parser
// that constructs syntax trees from JSON source.
//
// Values form an owning tree: each container exclusively owns its children,
// and the tree is acyclic by construction since a container is built only
// from already-complete children. The owner of a value must call its Release
// method exactly once, with the same memory resource the parse used, to
// return its owned storage. Release recurses depth-first into every child
// before the container's own storage, mirroring construction in reverse.
package ast

import (
	"fmt"
	"strconv"

	"go4.org/mem"

	"github.com/stokic/jval/alloc"
)

// A Value is a single JSON value: exactly one of Null, Bool, Number,
// *String, *Array, or *Object. Distinguish variants with a type switch.
type Value interface {
	// Release returns the value's owned storage to res. It must be called
	// exactly once, by the value's current owner. Releasing a container
	// cascades into every child it owns.
	Release(res alloc.Resource)
}

// Null represents the JSON null constant.
type Null struct{}

// Release satisfies the Value interface. Null owns no storage.
func (Null) Release(alloc.Resource) {}

func (Null) String() string { return "null" }

// A Bool is a Boolean constant, true or false.
type Bool bool

// Release satisfies the Value interface. Bool owns no storage.
func (Bool) Release(alloc.Resource) {}

// Value reports the truth value of b.
func (b Bool) Value() bool { return bool(b) }

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// A Number is a numeric value, stored as a 64-bit float.
type Number float64

// Release satisfies the Value interface. Number owns no storage.
func (Number) Release(alloc.Resource) {}

// Float64 reports the value of n as a float64.
func (n Number) Float64() float64 { return float64(n) }

func (n Number) String() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }

// A String is a string value. Its text is owned storage drawn from the
// memory resource of the parse that built it.
type String struct {
	text []byte
}

// Text returns the decoded bytes of s. The slice remains owned by s and is
// only valid until s is released.
func (s *String) Text() []byte { return s.text }

// Release satisfies the Value interface.
func (s *String) Release(res alloc.Resource) {
	res.Free(s.text)
	s.text = nil
}

func (s *String) String() string { return fmt.Sprintf("String(%q)", s.text) }

// An Array is an ordered sequence of values. The array exclusively owns its
// elements.
type Array struct {
	Values []Value
}

// Len reports the number of elements in a.
func (a *Array) Len() int { return len(a.Values) }

// Index returns the value at offset i. Negative offsets index backward from
// the end of the array. Index panics if i is out of range.
func (a *Array) Index(i int) Value {
	if i < 0 {
		i += len(a.Values)
	}
	return a.Values[i]
}

// Release satisfies the Value interface. It releases every element of a in
// order before the array's own storage.
func (a *Array) Release(res alloc.Resource) {
	for _, v := range a.Values {
		v.Release(res)
	}
	a.Values = nil
}

func (a *Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a.Values)) }

// A Member is a single key-value pair belonging to an Object. The key is
// owned storage drawn from the memory resource of the parse.
type Member struct {
	key []byte

	Value Value
}

// Key reports the key of m.
func (m *Member) Key() string { return string(m.key) }

func (m *Member) String() string { return fmt.Sprintf("Member(key=%q)", m.key) }

// An Object is a collection of key-value members. Keys are unique; member
// order records insertion order but is not semantically significant.
type Object struct {
	Members []*Member
}

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.Members) }

// Find returns the member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if mem.B(m.key).EqualString(key) {
			return m
		}
	}
	return nil
}

// set inserts an owned (key, value) pair into o. A duplicate key overwrites:
// the previously stored value is released, the member keeps its position, and
// the redundant key copy is freed.
func (o *Object) set(res alloc.Resource, key []byte, v Value) {
	for _, m := range o.Members {
		if mem.B(m.key).Equal(mem.B(key)) {
			m.Value.Release(res)
			m.Value = v
			res.Free(key)
			return
		}
	}
	o.Members = append(o.Members, &Member{key: key, Value: v})
}

// Release satisfies the Value interface. It releases every member's value,
// then its key, before the object's own storage.
func (o *Object) Release(res alloc.Resource) {
	for _, m := range o.Members {
		if m.Value != nil {
			m.Value.Release(res)
		}
		res.Free(m.key)
		m.key = nil
		m.Value = nil
	}
	o.Members = nil
}

func (o *Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o.Members)) }

// ToValue converts a plain Go value of string, []byte, int, int64, float64,
// bool, or nil type into the corresponding Value, drawing owned storage from
// res. A Value is returned unmodified. ToValue panics for values of any
// other type, or if res fails.
func ToValue(res alloc.Resource, v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case bool:
		return Bool(t)
	case int:
		return Number(t)
	case int64:
		return Number(t)
	case float64:
		return Number(t)
	case string:
		return &String{text: mustAlloc(res, []byte(t))}
	case []byte:
		return &String{text: mustAlloc(res, t)}
	case Value:
		return t
	default:
		panic(fmt.Sprintf("cannot convert %T to a Value", v))
	}
}

func mustAlloc(res alloc.Resource, text []byte) []byte {
	buf, err := res.Alloc(len(text))
	if err != nil {
		panic(fmt.Sprintf("alloc %d bytes: %v", len(text), err))
	}
	copy(buf, text)
	return buf
}
