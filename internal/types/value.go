// Package types defines the JSON value model and error types shared by
// exifmeta and its internal packages.
package types

import (
	"encoding/json"
	"iter"
	"slices"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a dynamically typed JSON value.
//
// Exactly one variant is meaningful, selected by Kind. The zero Value is
// JSON null. Objects keep the key order they were decoded or built with.
type Value struct {
	kind Kind
	b    bool
	n    json.Number
	s    string
	arr  []Value
	obj  *Object
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// NumberValue wraps a number literal. The literal is kept verbatim so
// integers wider than float64 survive a round trip.
func NumberValue(n json.Number) Value { return Value{kind: KindNumber, n: n} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// ArrayValue wraps a sequence of values.
func ArrayValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// ObjectValue wraps an ordered object. A nil object becomes an empty one.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload, false for other kinds.
func (v Value) Bool() bool { return v.b }

// Number returns the number literal, "" for other kinds.
func (v Value) Number() json.Number { return v.n }

// Str returns the string payload, "" for other kinds.
func (v Value) Str() string { return v.s }

// AsArray returns the elements of an array value.
//
// The returned slice aliases v; do not modify it.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsObject returns the object payload of an object value.
func (v Value) AsObject() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// String renders v as compact JSON. It is meant for messages and debugging.
func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return "<invalid: " + err.Error() + ">"
	}
	return string(b)
}

// Object is a JSON object that remembers insertion order.
type Object struct {
	keys  []string
	vals  []Value
	index map[string]int
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.vals[i], true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set stores val under key. An existing key keeps its position.
func (o *Object) Set(key string, val Value) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.vals[i] = val
		return
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, val)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

// All iterates over key/value pairs in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}
		for i, k := range o.keys {
			if !yield(k, o.vals[i]) {
				return
			}
		}
	}
}

// RawTag implements tag lookup for a single file's record.
func (o *Object) RawTag(name string) (Value, bool) {
	return o.Get(name)
}
