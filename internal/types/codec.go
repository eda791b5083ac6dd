package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ParseJSON decodes a single JSON document, keeping object key order.
//
// Numbers are kept as literals. Trailing non-whitespace data is an error.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			return Value{}, errors.New("parse json: trailing data after top-level value")
		}
		return Value{}, fmt.Errorf("parse json: %w", err)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, fmt.Errorf("parse json: %w", io.ErrUnexpectedEOF)
		}
		return Value{}, fmt.Errorf("parse json: %w", err)
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		return NumberValue(t), nil
	case string:
		return StringValue(t), nil
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("parse json: %w", err)
			}
			return ArrayValue(items...), nil
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, fmt.Errorf("parse json: %w", err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("parse json: object key is %T, not string", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("parse json: %w", err)
			}
			return ObjectValue(obj), nil
		}
	}
	return Value{}, fmt.Errorf("parse json: unexpected token %v", tok)
}

// UnmarshalJSON lets a Value be used as a decoding target.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON encodes v, writing object keys in insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSON encodes o in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	return ObjectValue(o).MarshalJSON()
}

// UnmarshalJSON decodes a JSON object into o, replacing its contents.
func (o *Object) UnmarshalJSON(data []byte) error {
	v, err := ParseJSON(data)
	if err != nil {
		return err
	}
	parsed, ok := v.AsObject()
	if !ok {
		return fmt.Errorf("parse json: expected object, found %s", v.Kind())
	}
	*o = *parsed
	return nil
}

// MarshalIndent is like json.MarshalIndent but keeps key order.
func MarshalIndent(v Value, prefix, indent string) ([]byte, error) {
	compact, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, prefix, indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		if !json.Valid([]byte(v.n)) {
			return fmt.Errorf("encode json: invalid number literal %q", string(v.n))
		}
		buf.WriteString(string(v.n))
	case KindString:
		if err := encodeString(buf, v.s); err != nil {
			return err
		}
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		i := 0
		for key, val := range v.obj.All() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := val.encode(buf); err != nil {
				return err
			}
			i++
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("encode json: unknown kind %d", v.kind)
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encoder terminates each value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
