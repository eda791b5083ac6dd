package exifmeta_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/exifmeta"
)

func TestParseBinaryPlaceholder(t *testing.T) {
	tests := []struct {
		input string
		want  exifmeta.BinaryData
	}{
		{"(Binary data 4399 bytes, use -b option to extract)", exifmeta.BinaryData{Size: 4399, Present: true}},
		{"(Binary data 0 bytes, use -b option to extract)", exifmeta.BinaryData{Size: 0, Present: true}},
		{"Nexus 6P", exifmeta.BinaryData{}},
		{"(Binary data many bytes, use -b option to extract)", exifmeta.BinaryData{}},
		{"", exifmeta.BinaryData{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := exifmeta.ParseBinaryPlaceholder(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBinaryPlaceholder_Overflow(t *testing.T) {
	_, err := exifmeta.ParseBinaryPlaceholder("(Binary data 99999999999999999999999 bytes, use -b option to extract)")
	assert.Error(t, err)
}

func TestReadTag_BinaryData(t *testing.T) {
	rec := record(t, `{"ThumbnailImage":"(Binary data 4399 bytes, use -b option to extract)","ImageWidth":2688}`)

	thumb, err := exifmeta.ReadTag[exifmeta.BinaryData](rec, "ThumbnailImage")
	require.NoError(t, err)
	assert.Equal(t, 4399, thumb.Size)
	assert.True(t, thumb.Present)

	preview, err := exifmeta.ReadTag[exifmeta.Optional[exifmeta.BinaryData]](rec, "PreviewImage")
	require.NoError(t, err)
	assert.False(t, preview.Present)

	_, err = exifmeta.ReadTag[exifmeta.BinaryData](rec, "ImageWidth")
	var decodeErr *exifmeta.DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}
