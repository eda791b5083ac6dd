package exifmeta

import (
	"errors"
	"strings"
	"testing"
)

func TestTagNotFoundError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *TagNotFoundError
		contains []string
	}{
		{
			name:     "with path",
			err:      &TagNotFoundError{Path: "IMG_0001.jpg", Tag: "Model"},
			contains: []string{"IMG_0001.jpg", `tag "Model"`, "not found"},
		},
		{
			name:     "without path",
			err:      &TagNotFoundError{Tag: "UserComment"},
			contains: []string{`tag "UserComment" not found`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(msg, substr) {
					t.Errorf("error message %q should contain %q", msg, substr)
				}
			}
		})
	}
}

func TestDecodeError_Error(t *testing.T) {
	cause := errors.New("cannot unmarshal string into uint32")
	err := &DecodeError{Path: "a.jpg", Tag: "ImageWidth", Err: cause}

	msg := err.Error()
	if !strings.Contains(msg, "a.jpg") {
		t.Errorf("error should contain path, got: %s", msg)
	}
	if !strings.Contains(msg, `"ImageWidth"`) {
		t.Errorf("error should contain tag, got: %s", msg)
	}
	if !strings.Contains(msg, "cannot unmarshal") {
		t.Errorf("error should contain cause, got: %s", msg)
	}
	if !errors.Is(err, cause) {
		t.Error("DecodeError should unwrap to its cause")
	}
}

func TestInvalidInputError_Error(t *testing.T) {
	whole := &InvalidInputError{Index: -1, Reason: "expected array, found object"}
	if msg := whole.Error(); msg != "invalid input: expected array, found object" {
		t.Errorf("unexpected message: %s", msg)
	}

	elem := &InvalidInputError{Index: 3, Reason: "expected object, found string"}
	if msg := elem.Error(); !strings.Contains(msg, "index 3") {
		t.Errorf("error should contain index, got: %s", msg)
	}
}

func TestTypeMismatchError_Error(t *testing.T) {
	groupLevel := &TypeMismatchError{Group: "Camera", Expected: KindArray, Found: KindObject}
	msg := groupLevel.Error()
	if !strings.Contains(msg, `"Camera"`) {
		t.Errorf("error should contain group, got: %s", msg)
	}
	if !strings.Contains(msg, "expected array, found object") {
		t.Errorf("error should contain kinds, got: %s", msg)
	}

	tagLevel := &TypeMismatchError{Group: "Camera", Tag: "Make", Expected: KindArray, Found: KindString}
	if path := tagLevel.KeyPath(); path != "Camera/Make" {
		t.Errorf("KeyPath() = %q, want %q", path, "Camera/Make")
	}
	if !strings.Contains(tagLevel.Error(), `"Camera/Make"`) {
		t.Errorf("error should contain key path, got: %s", tagLevel.Error())
	}
}

func TestExecError_Error(t *testing.T) {
	err := &ExecError{Args: []string{"-json", "missing.jpg"}, Stderr: "Error: File not found - missing.jpg\n"}

	msg := err.Error()
	if !strings.Contains(msg, "-json missing.jpg") {
		t.Errorf("error should contain args, got: %s", msg)
	}
	if strings.HasSuffix(msg, "\n") {
		t.Errorf("error should be trimmed, got: %q", msg)
	}

	empty := &ExecError{Args: []string{"x.jpg"}}
	if !strings.Contains(empty.Error(), "no output") {
		t.Errorf("empty stderr should say no output, got: %s", empty.Error())
	}
}

func TestNotInstalledError_Unwrap(t *testing.T) {
	cause := errors.New("executable file not found in $PATH")
	err := &NotInstalledError{Binary: "exiftool", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("NotInstalledError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), `"exiftool"`) {
		t.Errorf("error should contain binary, got: %s", err.Error())
	}
}
