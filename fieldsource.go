package exifmeta

import (
	"encoding/json"

	goexiftool "github.com/barasher/go-exiftool"
)

// FileMetadataSource exposes a github.com/barasher/go-exiftool result as a
// TagSource, so code built on that package can use ReadTag and JSONTag.
type FileMetadataSource struct {
	fm goexiftool.FileMetadata
}

// FromFileMetadata wraps fm. If go-exiftool reported an error for the file,
// it is returned as *ExecError.
func FromFileMetadata(fm goexiftool.FileMetadata) (*FileMetadataSource, error) {
	if fm.Err != nil {
		return nil, &ExecError{Args: []string{fm.File}, Stderr: fm.Err.Error()}
	}
	return &FileMetadataSource{fm: fm}, nil
}

// RawTag implements TagSource.
//
// go-exiftool decodes fields with encoding/json, so numbers arrive as
// float64 and nested objects lose their key order (keys come back sorted).
func (s *FileMetadataSource) RawTag(name string) (Value, bool) {
	raw, ok := s.fm.Fields[name]
	if !ok {
		if name == "SourceFile" && s.fm.File != "" {
			return StringValue(s.fm.File), true
		}
		return Value{}, false
	}
	v, err := FromAny(raw)
	if err != nil {
		return Value{}, false
	}
	return v, true
}

// FromAny converts a value produced by encoding/json (or anything it can
// marshal) into a Value.
func FromAny(v any) (Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Value{}, err
	}
	return ParseJSON(data)
}
