package main

import (
	"fmt"
	"io"

	goexiftool "github.com/barasher/go-exiftool"
	"github.com/spf13/cobra"

	"github.com/simonhull/exifmeta"
)

const absentMarker = "(absent)"

func newTagCmd(a *app) *cobra.Command {
	var (
		kind     string
		optional bool
		engine   string
	)

	cmd := &cobra.Command{
		Use:   "tag <file> <tag>",
		Short: "Read a single tag with typed decoding",
		Long: `Reads one tag from one file and decodes it as the requested type.

A missing tag is an error unless --optional is given, in which case
"(absent)" is printed. A tag that cannot be decoded as --type is an error.

Types: json (raw value), string, int, uint, float, binary (size of an
unextracted binary tag).

Example:
  exifmeta tag IMG_20170801_162043.jpg ImageWidth --type uint
  exifmeta tag IMG_20170801_162043.jpg UserComment --optional`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadSource(cmd, a, engine, args[0])
			if err != nil {
				return err
			}
			return printTag(cmd.OutOrStdout(), src, args[1], kind, optional)
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "json", "decode type: json, string, int, uint, float, binary")
	cmd.Flags().BoolVar(&optional, "optional", false, "print (absent) instead of failing when the tag is missing")
	cmd.Flags().StringVar(&engine, "engine", "native", "exiftool driver: native or go-exiftool")
	return cmd
}

func loadSource(cmd *cobra.Command, a *app, engine, path string) (exifmeta.TagSource, error) {
	switch engine {
	case "native":
		et, err := exifmeta.New(a.cfg.Options(a.logger)...)
		if err != nil {
			return nil, err
		}
		defer et.Close()
		return et.ReadMetadata(cmd.Context(), path)

	case "go-exiftool":
		et, err := goexiftool.NewExiftool(goexiftool.SetExiftoolBinaryPath(a.cfg.Binary))
		if err != nil {
			return nil, fmt.Errorf("start go-exiftool: %w", err)
		}
		defer et.Close()
		results := et.ExtractMetadata(path)
		if len(results) == 0 {
			return nil, &exifmeta.ExecError{Args: []string{path}}
		}
		return exifmeta.FromFileMetadata(results[0])

	default:
		return nil, fmt.Errorf("unknown engine %q (want native or go-exiftool)", engine)
	}
}

func printTag(w io.Writer, src exifmeta.TagSource, tag, kind string, optional bool) error {
	switch kind {
	case "json":
		v, err := exifmeta.JSONTag(src, tag)
		if err != nil {
			return absentOr(w, err, optional)
		}
		_, err = fmt.Fprintln(w, v.String())
		return err
	case "string":
		return printTyped[string](w, src, tag, optional)
	case "int":
		return printTyped[int64](w, src, tag, optional)
	case "uint":
		return printTyped[uint64](w, src, tag, optional)
	case "float":
		return printTyped[float64](w, src, tag, optional)
	case "binary":
		return printTyped[exifmeta.BinaryData](w, src, tag, optional)
	default:
		return fmt.Errorf("unknown type %q", kind)
	}
}

func printTyped[T any](w io.Writer, src exifmeta.TagSource, tag string, optional bool) error {
	if optional {
		v, err := exifmeta.ReadTag[exifmeta.Optional[T]](src, tag)
		if err != nil {
			return err
		}
		if x, ok := v.Get(); ok {
			return printValue(w, x)
		}
		_, err = fmt.Fprintln(w, absentMarker)
		return err
	}

	v, err := exifmeta.ReadTag[T](src, tag)
	if err != nil {
		return err
	}
	return printValue(w, v)
}

func printValue(w io.Writer, v any) error {
	var err error
	switch x := v.(type) {
	case exifmeta.BinaryData:
		if x.Present {
			_, err = fmt.Fprintf(w, "%d bytes\n", x.Size)
		} else {
			_, err = fmt.Fprintln(w, "not binary")
		}
	default:
		_, err = fmt.Fprintln(w, x)
	}
	return err
}

// absentOr prints the absent marker for a missing optional tag and
// returns err otherwise.
func absentOr(w io.Writer, err error, optional bool) error {
	if _, ok := err.(*exifmeta.TagNotFoundError); ok && optional {
		_, werr := fmt.Fprintln(w, absentMarker)
		return werr
	}
	return err
}
