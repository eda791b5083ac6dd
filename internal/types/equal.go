package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Equal reports whether a and b are structurally equal JSON values.
//
// Object key order is ignored. Numbers compare by value within their class:
// integer literals against integers, fractional or exponent literals against
// floats. An integer never equals a float, so 1 and 1.0 are distinct.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return numbersEqual(a.n, b.n)
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for key, av := range a.obj.All() {
			bv, ok := b.obj.Get(key)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

// Contains reports whether any element of items equals v.
func Contains(items []Value, v Value) bool {
	for _, item := range items {
		if Equal(item, v) {
			return true
		}
	}
	return false
}

func isFloatLiteral(n json.Number) bool {
	return strings.ContainsAny(string(n), ".eE")
}

func numbersEqual(a, b json.Number) bool {
	if a == b {
		return true
	}
	af, bf := isFloatLiteral(a), isFloatLiteral(b)
	if af != bf {
		return false
	}
	if af {
		x, errA := strconv.ParseFloat(string(a), 64)
		y, errB := strconv.ParseFloat(string(b), 64)
		return errA == nil && errB == nil && x == y
	}

	if x, err := strconv.ParseInt(string(a), 10, 64); err == nil {
		y, err := strconv.ParseInt(string(b), 10, 64)
		return err == nil && x == y
	}
	if x, err := strconv.ParseUint(string(a), 10, 64); err == nil {
		y, err := strconv.ParseUint(string(b), 10, 64)
		return err == nil && x == y
	}
	return false
}
