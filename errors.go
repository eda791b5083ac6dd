package exifmeta

import (
	"github.com/simonhull/exifmeta/internal/types"
)

// ErrClosed is returned by an ExifTool whose process has exited.
var ErrClosed = types.ErrClosed

// TagNotFoundError is an alias to types.TagNotFoundError.
// Re-exporting from internal/types to maintain public API.
type TagNotFoundError = types.TagNotFoundError

// DecodeError is an alias to types.DecodeError.
// Re-exporting from internal/types to maintain public API.
type DecodeError = types.DecodeError

// InvalidInputError is an alias to types.InvalidInputError.
// Re-exporting from internal/types to maintain public API.
type InvalidInputError = types.InvalidInputError

// TypeMismatchError is an alias to types.TypeMismatchError.
// Re-exporting from internal/types to maintain public API.
type TypeMismatchError = types.TypeMismatchError

// ExecError is an alias to types.ExecError.
type ExecError = types.ExecError

// NotInstalledError is an alias to types.NotInstalledError.
type NotInstalledError = types.NotInstalledError
