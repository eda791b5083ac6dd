package exifmeta

import (
	"encoding/json"

	"github.com/simonhull/exifmeta/internal/types"
)

// Value is a dynamically typed JSON value as produced by exiftool.
//
// Inspect the variant with Kind, then use AsArray, AsObject, Str, Number
// or Bool. Objects keep exiftool's key order.
type Value = types.Value

// TagValue is one tag's content for one file.
type TagValue = Value

// Object is an insertion-ordered JSON object.
//
// A single file's output (a PerFileRecord) and the result of Combine (a
// CombinedRecord) are both Objects.
type Object = types.Object

// Kind identifies the variant held by a Value.
type Kind = types.Kind

const (
	KindNull   = types.KindNull
	KindBool   = types.KindBool
	KindNumber = types.KindNumber
	KindString = types.KindString
	KindArray  = types.KindArray
	KindObject = types.KindObject
)

// ParseJSON decodes a JSON document into a Value, preserving key order.
func ParseJSON(data []byte) (Value, error) {
	return types.ParseJSON(data)
}

// MarshalIndent encodes v with indentation, preserving key order.
func MarshalIndent(v Value, prefix, indent string) ([]byte, error) {
	return types.MarshalIndent(v, prefix, indent)
}

// Equal reports whether two values are structurally equal.
func Equal(a, b Value) bool {
	return types.Equal(a, b)
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return types.NewObject()
}

// StringValue wraps a string.
func StringValue(s string) Value { return types.StringValue(s) }

// NumberValue wraps a number literal such as "2688" or "2.8".
func NumberValue(n json.Number) Value { return types.NumberValue(n) }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return types.BoolValue(b) }

// ArrayValue wraps a sequence of values.
func ArrayValue(items ...Value) Value { return types.ArrayValue(items...) }

// ObjectValue wraps an ordered object.
func ObjectValue(o *Object) Value { return types.ObjectValue(o) }

// Null returns the JSON null value.
func Null() Value { return types.Null() }
