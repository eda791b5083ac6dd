package exifmeta

import (
	"slices"

	"go.uber.org/zap"
)

// DefaultBinary is the exiftool executable looked up on PATH.
const DefaultBinary = "exiftool"

// DefaultChunkSize is the number of files a Pool sends per command.
const DefaultChunkSize = 64

// Option configures an ExifTool or Pool.
//
// Example:
//
//	et, err := exifmeta.New(
//	    exifmeta.WithBinaryPath("/opt/exiftool/exiftool"),
//	    exifmeta.WithCommonArgs("-n"),
//	)
type Option func(*options)

type options struct {
	binary     string      // Executable name or path
	binaryArgs []string    // Arguments before -stay_open
	commonArgs []string    // Arguments added to every command
	logger     *zap.Logger // Never nil after defaultOptions
	chunkSize  int         // Files per command in a Pool
}

func defaultOptions() *options {
	return &options{
		binary:    DefaultBinary,
		logger:    zap.NewNop(),
		chunkSize: DefaultChunkSize,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithBinaryPath runs the given executable instead of "exiftool" from PATH.
//
// Useful when exiftool is bundled with an application or installed in a
// non-standard location.
func WithBinaryPath(path string) Option {
	return func(o *options) {
		o.binary = path
	}
}

// WithBinaryArgs passes args to the executable before the stay_open flags.
//
// This is for wrappers such as "perl /path/to/exiftool", where the binary
// is the interpreter:
//
//	exifmeta.New(
//	    exifmeta.WithBinaryPath("perl"),
//	    exifmeta.WithBinaryArgs("/usr/share/exiftool/exiftool"),
//	)
func WithBinaryArgs(args ...string) Option {
	return func(o *options) {
		o.binaryArgs = slices.Clone(args)
	}
}

// WithCommonArgs adds arguments to every command, ahead of the per-call
// arguments. For example "-n" disables print conversion so numeric tags
// come back as numbers.
func WithCommonArgs(args ...string) Option {
	return func(o *options) {
		o.commonArgs = slices.Clone(args)
	}
}

// WithLogger sets the logger used for process lifecycle, commands (debug)
// and exiftool warnings. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithChunkSize sets how many files a Pool sends to one process per
// command. Values below 1 are ignored.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}
