package exifmeta

import (
	"fmt"

	"github.com/simonhull/exifmeta/internal/types"
)

// Combine merges per-file grouped records into one combined record.
//
// Each record maps a group name to an object of tags, as produced by
// exiftool -g<family> -json. The result maps every group to every tag
// seen under it, and every tag to the distinct values observed across all
// records, in first-seen order:
//
//	[{"Camera":{"Make":"Canon"}}, {"Camera":{"Make":"Nikon"}}, {"Camera":{"Make":"Canon"}}]
//	=> {"Camera":{"Make":["Canon","Nikon"]}}
//
// A top-level key whose value is not an object is treated as an ungrouped
// tag and collects its values directly: {"SourceFile":["a.jpg","b.jpg"]}.
//
// Combine fails with *InvalidInputError if a record is not an object, and
// with *TypeMismatchError if records disagree about whether a key holds a
// group or a plain tag. On error no partial result is returned.
func Combine(records []Value) (*Object, error) {
	c := NewCombiner()
	for _, rec := range records {
		if err := c.Add(rec); err != nil {
			return nil, err
		}
	}
	return c.Result()
}

// CombineJSON is like Combine but takes exiftool's raw JSON array.
func CombineJSON(input Value) (*Object, error) {
	records, ok := input.AsArray()
	if !ok {
		return nil, &InvalidInputError{
			Index:  -1,
			Reason: fmt.Sprintf("expected array, found %s", input.Kind()),
		}
	}
	return Combine(records)
}

// Combiner builds a combined record one file at a time.
//
// A Combiner is not safe for concurrent use. Once Add fails the Combiner
// keeps returning that error; a failed combine has no usable output.
type Combiner struct {
	out   *Object
	count int
	err   error
}

// NewCombiner returns an empty Combiner.
func NewCombiner() *Combiner {
	return &Combiner{out: types.NewObject()}
}

// Len returns the number of records added so far.
func (c *Combiner) Len() int { return c.count }

// Add merges one per-file record into the accumulator.
func (c *Combiner) Add(record Value) error {
	if c.err != nil {
		return c.err
	}
	obj, ok := record.AsObject()
	if !ok {
		c.err = &InvalidInputError{
			Index:  c.count,
			Reason: fmt.Sprintf("expected object, found %s", record.Kind()),
		}
		return c.err
	}

	for group, value := range obj.All() {
		if err := c.merge(group, value); err != nil {
			c.err = err
			return err
		}
	}
	c.count++
	return nil
}

// Result returns the combined record.
//
// The returned object is owned by the Combiner; further calls to Add
// modify it.
func (c *Combiner) Result() (*Object, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.out, nil
}

func (c *Combiner) merge(group string, value Value) error {
	existing, occupied := c.out.Get(group)
	nested, isGroup := value.AsObject()

	if !occupied {
		if isGroup {
			tags := types.NewObject()
			for tag, v := range nested.All() {
				tags.Set(tag, types.ArrayValue(v))
			}
			c.out.Set(group, types.ObjectValue(tags))
		} else {
			c.out.Set(group, types.ArrayValue(value))
		}
		return nil
	}

	if isGroup {
		tags, ok := existing.AsObject()
		if !ok {
			return &TypeMismatchError{Group: group, Expected: KindObject, Found: existing.Kind()}
		}
		for tag, v := range nested.All() {
			seen, ok := tags.Get(tag)
			if !ok {
				tags.Set(tag, types.ArrayValue(v))
				continue
			}
			values, ok := seen.AsArray()
			if !ok {
				return &TypeMismatchError{Group: group, Tag: tag, Expected: KindArray, Found: seen.Kind()}
			}
			if !types.Contains(values, v) {
				tags.Set(tag, appendValue(values, v))
			}
		}
		return nil
	}

	values, ok := existing.AsArray()
	if !ok {
		return &TypeMismatchError{Group: group, Expected: KindArray, Found: existing.Kind()}
	}
	if !types.Contains(values, value) {
		c.out.Set(group, appendValue(values, value))
	}
	return nil
}

// appendValue returns a new array value; values may alias a stored array.
func appendValue(values []Value, v Value) Value {
	out := make([]Value, len(values), len(values)+1)
	copy(out, values)
	return types.ArrayValue(append(out, v)...)
}
