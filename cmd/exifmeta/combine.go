package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/simonhull/exifmeta"
)

func newCombineCmd(a *app) *cobra.Command {
	var (
		output  string
		format  string
		family  int
		workers int
	)

	cmd := &cobra.Command{
		Use:   "combine <file|dir>...",
		Short: "Merge grouped metadata of many files into one JSON document",
		Long: `Reads every file (directories are walked recursively) with
exiftool -g<family> -json, then merges the per-file records: for each
group and tag the output lists every distinct value seen, in first-seen
order. The result is written as indented JSON, or as MessagePack with
--format msgpack.

Example:
  exifmeta combine -o combined.json test_data/other_images`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("output") {
				a.cfg.Output = output
			}
			if cmd.Flags().Changed("format") {
				a.cfg.Format = format
			}
			if cmd.Flags().Changed("group") {
				a.cfg.GroupFamily = family
			}
			if cmd.Flags().Changed("workers") {
				a.cfg.Workers = workers
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return runCombine(cmd, a, args)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to this file instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output encoding: json or msgpack")
	cmd.Flags().IntVarP(&family, "group", "g", 2, "exiftool group family (0-7)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "exiftool processes (0 = one per CPU)")
	return cmd
}

func runCombine(cmd *cobra.Command, a *app, args []string) error {
	ctx := cmd.Context()
	log := a.logger

	files, err := collectFiles(args, log)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "No files found in: %v\n", args)
		return nil
	}
	log.Info("collected files", zap.Int("count", len(files)))

	pool, err := exifmeta.NewPool(a.cfg.Workers, a.cfg.Options(log)...)
	if err != nil {
		return err
	}
	defer pool.Close()

	recs, err := pool.ExtractGrouped(ctx, a.cfg.GroupFamily, files...)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	combined, err := exifmeta.Combine(exifmeta.Records(recs))
	if err != nil {
		return fmt.Errorf("combine: %w", err)
	}

	data, err := encodeCombined(exifmeta.ObjectValue(combined), a.cfg.Format)
	if err != nil {
		return err
	}

	if a.cfg.Output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(a.cfg.Output, data, 0o644); err != nil {
		return err
	}
	log.Info("wrote combined metadata", zap.String("path", a.cfg.Output), zap.Int("groups", combined.Len()))
	fmt.Fprintf(cmd.ErrOrStderr(), "Combined %d files into %s\n", len(recs), a.cfg.Output)
	return nil
}

func encodeCombined(v exifmeta.Value, format string) ([]byte, error) {
	if format == "msgpack" {
		return msgpack.Marshal(v)
	}
	data, err := exifmeta.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// collectFiles expands directories into the regular files beneath them.
// Unreadable entries inside a directory are logged and skipped.
func collectFiles(args []string, log *zap.Logger) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Warn("skipping unreadable entry", zap.String("path", path), zap.Error(err))
				return nil
			}
			if d.Type().IsRegular() {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
