package exifmeta

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pool runs several exiftool processes and spreads files across them.
//
// A single exiftool process handles one command at a time. Pool splits a
// large file list into chunks and runs the chunks in parallel, returning
// records in the same order as the input paths.
type Pool struct {
	tools  []*ExifTool
	free   chan *ExifTool
	opts   *options
	logger *zap.Logger
}

// NewPool starts size exiftool processes. A size below 1 means
// runtime.NumCPU().
//
// If any process fails to start, the ones already started are closed.
func NewPool(size int, opts ...Option) (*Pool, error) {
	if size < 1 {
		size = runtime.NumCPU()
	}
	o := applyOptions(opts)

	p := &Pool{
		free:   make(chan *ExifTool, size),
		opts:   o,
		logger: o.logger,
	}
	for range size {
		et, err := New(opts...)
		if err != nil {
			p.Close()
			return nil, err
		}
		p.tools = append(p.tools, et)
		p.free <- et
	}
	p.logger.Info("exiftool pool started", zap.Int("size", size), zap.Int("chunk_size", o.chunkSize))
	return p, nil
}

// Size returns the number of processes.
func (p *Pool) Size() int { return len(p.tools) }

// Close stops every process and returns all errors joined.
func (p *Pool) Close() error {
	var errs []error
	for _, et := range p.tools {
		if err := et.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Extract reads all tags of the given files using every process.
func (p *Pool) Extract(ctx context.Context, paths ...string) ([]*Object, error) {
	return p.extractMany(ctx, nil, paths)
}

// ExtractGrouped is the Pool counterpart of ExifTool.ExtractGrouped.
//
// Example:
//
//	recs, err := pool.ExtractGrouped(ctx, 2, paths...)
//	if err != nil {
//		return err
//	}
//	combined, err := exifmeta.Combine(exifmeta.Records(recs))
func (p *Pool) ExtractGrouped(ctx context.Context, family int, paths ...string) ([]*Object, error) {
	return p.extractMany(ctx, []string{groupFlag(family)}, paths)
}

func (p *Pool) extractMany(ctx context.Context, flags, paths []string) ([]*Object, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	chunks := chunk(paths, p.opts.chunkSize)
	results := make([][]*Object, len(chunks))

	// Only the wait for a free process observes gctx. A running command
	// is not killed when another chunk fails.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(p.tools))

	for i, files := range chunks {
		g.Go(func() error {
			et, err := p.acquire(gctx)
			if err != nil {
				return err
			}
			defer p.release(et)

			recs, err := et.extract(ctx, flags, files)
			if err != nil {
				return fmt.Errorf("chunk %d (%s…): %w", i, files[0], err)
			}
			results[i] = recs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*Object, 0, len(paths))
	for _, recs := range results {
		out = append(out, recs...)
	}
	return out, nil
}

func (p *Pool) acquire(ctx context.Context) (*ExifTool, error) {
	select {
	case et := <-p.free:
		return et, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *Pool) release(et *ExifTool) {
	p.free <- et
}

func chunk(paths []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(paths); start += size {
		end := min(start+size, len(paths))
		out = append(out, paths[start:end])
	}
	return out
}
