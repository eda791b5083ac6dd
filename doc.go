// Package exifmeta reads image metadata through a long-running exiftool
// process and merges the results of many files.
//
// exifmeta does not parse image formats itself. It keeps one exiftool
// running in -stay_open mode, sends it commands over stdin, and decodes
// the -json output into an order-preserving [Value] tree.
//
// # Quick Start
//
// Reading tags from an image:
//
//	et, err := exifmeta.New()
//	if err != nil {
//		log.Fatal(err) // *NotInstalledError if exiftool is not on PATH
//	}
//	defer et.Close()
//
//	rec, err := et.ReadMetadata(ctx, "IMG_20170801_162043.jpg")
//	if err != nil {
//		log.Fatal(err)
//	}
//	model, err := exifmeta.ReadTag[string](rec, "Model")
//	width, err := exifmeta.ReadTag[exifmeta.Optional[uint32]](rec, "ImageWidth")
//
// # Typed Tags
//
// [ReadTag] decodes one tag into any type encoding/json can decode into.
// A missing tag is a *TagNotFoundError, unless the target is an
// [Optional], which comes back absent. A tag that does not fit the target
// is a *DecodeError. [JSONTag] returns the raw value instead.
//
// Binary tags that exiftool did not extract read as [BinaryData]:
//
//	thumb, _ := exifmeta.ReadTag[exifmeta.BinaryData](rec, "ThumbnailImage")
//	fmt.Println(thumb.Size) // 4399
//
// # Combining Metadata
//
// [Combine] folds grouped records (exiftool -g<family> -json) into one
// record that lists, for every group and tag, each distinct value seen:
//
//	recs, err := et.ExtractGrouped(ctx, 2, paths...)
//	combined, err := exifmeta.Combine(exifmeta.Records(recs))
//	data, err := exifmeta.MarshalIndent(exifmeta.ObjectValue(combined), "", "  ")
//
// Values are compared structurally and kept in first-seen order. Numbers
// keep their literal form, so 1 and 1.0 stay distinct values.
//
// # Concurrency
//
// An [ExifTool] serializes its commands; it is safe for concurrent use but
// runs one command at a time. A [Pool] runs several exiftool processes and
// spreads large batches across them in chunks, returning records in input
// order:
//
//	pool, err := exifmeta.NewPool(0) // one process per CPU
//	defer pool.Close()
//	recs, err := pool.ExtractGrouped(ctx, 2, paths...)
//
// Cancelling a context kills the process running that command. The killed
// ExifTool then returns ErrClosed; create a new one to continue.
//
// # Error Handling
//
// Errors are typed and work with errors.As:
//
//   - *NotInstalledError: the exiftool binary could not be found
//   - *ExecError: exiftool reported an error and produced no output
//   - *TagNotFoundError, *DecodeError: ReadTag failures
//   - *InvalidInputError, *TypeMismatchError: Combine failures
//
// exiftool warnings printed alongside useful output are logged through
// the configured zap logger (see [WithLogger]) rather than returned.
package exifmeta
