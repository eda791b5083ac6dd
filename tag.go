package exifmeta

import (
	"bytes"
	"encoding/json"
	"errors"
)

// errNullValue is the decode cause when a tag is present but null and the
// target type cannot represent absence.
var errNullValue = errors.New("tag value is null")

// TagSource exposes one file's raw tag values by name.
//
// *Object satisfies TagSource, so any record returned by ExifTool.Extract
// can be passed directly to ReadTag.
type TagSource interface {
	RawTag(name string) (Value, bool)
}

// Optional holds a tag value that may be absent.
//
// Use Optional as the type argument of ReadTag to read tags that a file
// may not carry:
//
//	comment, err := exifmeta.ReadTag[exifmeta.Optional[string]](rec, "UserComment")
//	if err != nil {
//		return err
//	}
//	if c, ok := comment.Get(); ok {
//		fmt.Println(c)
//	}
type Optional[T any] struct {
	Value   T
	Present bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Present: true}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Present
}

// OrElse returns the value if present, def otherwise.
func (o Optional[T]) OrElse(def T) T {
	if o.Present {
		return o.Value
	}
	return def
}

// UnmarshalJSON decodes the inner type and marks the value present.
// JSON null decodes as absent.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Optional[T]{Value: v, Present: true}
	return nil
}

func (o *Optional[T]) markAbsent() {
	*o = Optional[T]{}
}

// optional is implemented by *Optional[T] for every T.
type optional interface {
	markAbsent()
}

// ReadTag reads tag from src and decodes it into T.
//
// Outcomes:
//   - tag absent, T is Optional[X]: absent Optional, nil error
//   - tag absent, any other T: *TagNotFoundError
//   - tag present: decoded value, or *DecodeError wrapping the conversion
//     failure (for example a string where T is a number)
//
// Decoding follows encoding/json rules. A null tag decodes as absent into
// Optional and as null into Value; other targets reject it.
//
// Example:
//
//	model, err := exifmeta.ReadTag[string](rec, "Model")
//	width, err := exifmeta.ReadTag[exifmeta.Optional[uint32]](rec, "ImageWidth")
func ReadTag[T any](src TagSource, tag string) (T, error) {
	var out T

	raw, ok := src.RawTag(tag)
	if !ok {
		if opt, isOptional := any(&out).(optional); isOptional {
			opt.markAbsent()
			return out, nil
		}
		return out, &TagNotFoundError{Path: sourcePath(src), Tag: tag}
	}

	if err := decodeTag(raw, &out); err != nil {
		var zero T
		return zero, &DecodeError{Path: sourcePath(src), Tag: tag, Err: err}
	}
	return out, nil
}

// JSONTag returns the raw value of tag without decoding.
func JSONTag(src TagSource, tag string) (Value, error) {
	raw, ok := src.RawTag(tag)
	if !ok {
		return Value{}, &TagNotFoundError{Path: sourcePath(src), Tag: tag}
	}
	return raw, nil
}

func decodeTag(raw Value, target any) error {
	if raw.IsNull() {
		switch t := target.(type) {
		case optional:
			t.markAbsent()
			return nil
		case *Value:
			*t = raw
			return nil
		default:
			return errNullValue
		}
	}

	data, err := raw.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// sourcePath returns the SourceFile exiftool records in every JSON object,
// or "" if src does not carry one.
func sourcePath(src TagSource) string {
	v, ok := src.RawTag("SourceFile")
	if !ok || v.Kind() != KindString {
		return ""
	}
	return v.Str()
}
