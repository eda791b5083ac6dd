package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrClosed is returned when a command is sent to an exiftool process that
// has been closed or killed.
var ErrClosed = errors.New("exiftool: process closed")

// TagNotFoundError is returned when a required tag is absent from a record.
type TagNotFoundError struct {
	Path string // File the record was read from, empty if unknown
	Tag  string
}

func (e *TagNotFoundError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: tag %q not found", e.Path, e.Tag)
	}
	return fmt.Sprintf("tag %q not found", e.Tag)
}

// DecodeError is returned when a tag is present but cannot be converted to
// the requested type.
type DecodeError struct {
	Path string
	Tag  string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: decode tag %q: %v", e.Path, e.Tag, e.Err)
	}
	return fmt.Sprintf("decode tag %q: %v", e.Tag, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidInputError is returned when combiner input is not an array of
// objects. Index is the offending element, or -1 for the input itself.
type InvalidInputError struct {
	Index  int
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input at index %d: %s", e.Index, e.Reason)
}

// TypeMismatchError is returned when two records disagree about the shape
// stored under the same key. Tag is empty when the conflict is at group level.
type TypeMismatchError struct {
	Group    string
	Tag      string
	Expected Kind
	Found    Kind
}

// KeyPath returns "group" or "group/tag".
func (e *TypeMismatchError) KeyPath() string {
	if e.Tag == "" {
		return e.Group
	}
	return e.Group + "/" + e.Tag
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch for key %q: expected %s, found %s",
		e.KeyPath(), e.Expected, e.Found)
}

// ExecError is returned when exiftool reports an error for a command and
// produces no usable output.
type ExecError struct {
	Args   []string
	Stderr string
}

func (e *ExecError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = "no output"
	}
	return fmt.Sprintf("exiftool %s: %s", strings.Join(e.Args, " "), msg)
}

// NotInstalledError is returned when the exiftool binary cannot be found.
type NotInstalledError struct {
	Binary string
	Err    error
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("exiftool binary %q not found: %v", e.Binary, e.Err)
}

func (e *NotInstalledError) Unwrap() error { return e.Err }
