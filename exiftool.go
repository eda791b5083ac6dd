package exifmeta

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"github.com/simonhull/exifmeta/internal/process"
)

// ExifTool is a running exiftool process in -stay_open mode.
//
// Starting exiftool costs hundreds of milliseconds; keeping one process
// alive makes each subsequent command cheap. Commands on one ExifTool are
// serialised, so it is safe for concurrent use but not parallel. Use a
// Pool to run several processes.
//
// Always call Close() when done to stop the process:
//
//	et, err := exifmeta.New()
//	if err != nil {
//		return err
//	}
//	defer et.Close()
type ExifTool struct {
	conn   *process.Conn
	opts   *options
	logger *zap.Logger
}

// New starts an exiftool process.
//
// Returns *NotInstalledError if the binary cannot be found.
func New(opts ...Option) (*ExifTool, error) {
	o := applyOptions(opts)

	bin, err := exec.LookPath(o.binary)
	if err != nil {
		return nil, &NotInstalledError{Binary: o.binary, Err: err}
	}

	conn, err := process.Start(bin, o.binaryArgs, o.logger)
	if err != nil {
		return nil, err
	}

	return &ExifTool{conn: conn, opts: o, logger: o.logger}, nil
}

// Close stops the process. Calling Close more than once is harmless.
func (et *ExifTool) Close() error {
	return et.conn.Close()
}

// Execute runs exiftool with args and returns its stdout.
//
// Stderr output is logged as a warning when the command produced output,
// and returned as *ExecError when it did not.
func (et *ExifTool) Execute(ctx context.Context, args ...string) ([]byte, error) {
	full := append(slices.Clone(et.opts.commonArgs), args...)

	res, err := et.conn.Run(ctx, full)
	if err != nil {
		return nil, err
	}

	stderr := bytes.TrimSpace(res.Stderr)
	if len(stderr) > 0 {
		if len(bytes.TrimSpace(res.Stdout)) == 0 {
			return nil, &ExecError{Args: full, Stderr: string(stderr)}
		}
		et.logger.Warn("exiftool stderr", zap.Strings("args", full), zap.ByteString("stderr", stderr))
	}
	return res.Stdout, nil
}

// ExecuteJSON runs exiftool with -json and parses the output.
//
// Empty output (no files matched) is returned as an empty array.
func (et *ExifTool) ExecuteJSON(ctx context.Context, args ...string) (Value, error) {
	out, err := et.Execute(ctx, append([]string{"-json"}, args...)...)
	if err != nil {
		return Value{}, err
	}
	if len(bytes.TrimSpace(out)) == 0 {
		return ArrayValue(), nil
	}
	v, err := ParseJSON(out)
	if err != nil {
		return Value{}, fmt.Errorf("exiftool output: %w", err)
	}
	return v, nil
}

// Extract reads all tags of the given files, one record per file in the
// order exiftool reports them (the order of paths).
func (et *ExifTool) Extract(ctx context.Context, paths ...string) ([]*Object, error) {
	return et.extract(ctx, nil, paths)
}

// ExtractGrouped reads all tags grouped by the given exiftool group
// family (-g0 … -g7). Family 2 groups by category: Camera, Image, Time,
// Location and so on. The records are suitable input for Combine.
func (et *ExifTool) ExtractGrouped(ctx context.Context, family int, paths ...string) ([]*Object, error) {
	return et.extract(ctx, []string{groupFlag(family)}, paths)
}

// ReadMetadata reads all tags of one file. Extra exiftool args such as
// "-n" or a tag selection like "-Make" may be given.
func (et *ExifTool) ReadMetadata(ctx context.Context, path string, args ...string) (*Object, error) {
	recs, err := et.extract(ctx, args, []string{path})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, &ExecError{Args: append(slices.Clone(args), path)}
	}
	return recs[0], nil
}

// JSONTag returns the raw JSON value of tag for the file at path.
func (et *ExifTool) JSONTag(ctx context.Context, path, tag string) (Value, error) {
	rec, err := et.ReadMetadata(ctx, path)
	if err != nil {
		return Value{}, err
	}
	return JSONTag(rec, tag)
}

// ReadFileTag reads tag from the file at path and decodes it into T.
//
// It is ReadTag applied to et.ReadMetadata(ctx, path):
//
//	model, err := exifmeta.ReadFileTag[string](ctx, et, "IMG_0001.jpg", "Model")
//	width, err := exifmeta.ReadFileTag[exifmeta.Optional[uint32]](ctx, et, "IMG_0001.jpg", "ImageWidth")
func ReadFileTag[T any](ctx context.Context, et *ExifTool, path, tag string) (T, error) {
	rec, err := et.ReadMetadata(ctx, path)
	if err != nil {
		var zero T
		return zero, err
	}
	return ReadTag[T](rec, tag)
}

func (et *ExifTool) extract(ctx context.Context, flags, paths []string) ([]*Object, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	out, err := et.ExecuteJSON(ctx, append(slices.Clone(flags), paths...)...)
	if err != nil {
		return nil, err
	}
	recs, err := toRecords(out)
	if err != nil {
		return nil, err
	}
	if len(recs) != len(paths) {
		et.logger.Warn("exiftool returned fewer records than files",
			zap.Int("files", len(paths)), zap.Int("records", len(recs)))
	}
	return recs, nil
}

func toRecords(v Value) ([]*Object, error) {
	items, ok := v.AsArray()
	if !ok {
		return nil, &InvalidInputError{Index: -1, Reason: fmt.Sprintf("expected array, found %s", v.Kind())}
	}
	recs := make([]*Object, len(items))
	for i, item := range items {
		obj, ok := item.AsObject()
		if !ok {
			return nil, &InvalidInputError{Index: i, Reason: fmt.Sprintf("expected object, found %s", item.Kind())}
		}
		recs[i] = obj
	}
	return recs, nil
}

func groupFlag(family int) string {
	return "-g" + strconv.Itoa(family)
}

// Records converts extracted objects to values for Combine.
func Records(objs []*Object) []Value {
	out := make([]Value, len(objs))
	for i, o := range objs {
		out[i] = ObjectValue(o)
	}
	return out
}
