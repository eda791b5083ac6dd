package exifmeta

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

var binaryPlaceholder = regexp.MustCompile(`\(Binary data (\d+) bytes, use -b option to extract\)`)

// BinaryData describes a binary tag that exiftool did not inline.
//
// Without -b, exiftool prints binary payloads (thumbnails, ICC profiles)
// as "(Binary data 12345 bytes, use -b option to extract)". Decoding such a
// tag into BinaryData recovers the size. Any other string leaves Present
// false.
type BinaryData struct {
	Size    int
	Present bool
}

// ParseBinaryPlaceholder parses exiftool's binary placeholder text.
func ParseBinaryPlaceholder(s string) (BinaryData, error) {
	m := binaryPlaceholder.FindStringSubmatch(s)
	if m == nil {
		return BinaryData{}, nil
	}
	size, err := strconv.Atoi(m[1])
	if err != nil {
		return BinaryData{}, fmt.Errorf("binary data size: %w", err)
	}
	return BinaryData{Size: size, Present: true}, nil
}

// UnmarshalJSON decodes a placeholder string.
func (b *BinaryData) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseBinaryPlaceholder(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
