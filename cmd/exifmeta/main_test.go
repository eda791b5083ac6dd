package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/goleak"

	"github.com/simonhull/exifmeta"
	"github.com/simonhull/exifmeta/internal/testutil"
)

func TestMain(m *testing.M) {
	testutil.MaybeRunFakeExifTool()
	os.Setenv(testutil.EnvFakeExifTool, "1")
	goleak.VerifyTestMain(m)
}

// run executes the CLI against the fake exiftool and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--binary", os.Args[0], "--log-level", "error"}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func writeImages(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "b.jpg", filepath.Join("sub", "c.jpg")} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}
	return dir
}

const combinedImages = `{"SourceFile":["a.jpg","b.jpg","c.jpg"],` +
	`"Camera":{"Make":["Huawei","Canon"],"Model":["Nexus 6P","EOS 5D"]},` +
	`"Image":{"ImageWidth":[2688,4000],"ThumbnailImage":["(Binary data 4399 bytes, use -b option to extract)"]},` +
	`"Other":{"UserComment":["holiday"]}}`

func TestCombine_Stdout(t *testing.T) {
	out, err := run(t, "combine", writeImages(t))
	require.NoError(t, err)

	got, err := exifmeta.ParseJSON([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, combinedImages, got.String())
	assert.Contains(t, out, "\n  \"Camera\": {", "output is indented")
}

func TestCombine_OutputFile(t *testing.T) {
	dir := writeImages(t)
	dest := filepath.Join(t.TempDir(), "combined.json")

	out, err := run(t, "combine", "-o", dest, "-w", "2", dir)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	got, err := exifmeta.ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, combinedImages, got.String())
}

func TestCombine_Msgpack(t *testing.T) {
	out, err := run(t, "combine", "--format", "msgpack", writeImages(t))
	require.NoError(t, err)

	dec := msgpack.NewDecoder(bytes.NewReader([]byte(out)))
	n, err := dec.DecodeMapLen()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	key, err := dec.DecodeString()
	require.NoError(t, err)
	assert.Equal(t, "SourceFile", key)
	files, err := dec.DecodeInterfaceLoose()
	require.NoError(t, err)
	assert.Equal(t, []any{"a.jpg", "b.jpg", "c.jpg"}, files)
}

func TestCombine_EmptyDir(t *testing.T) {
	out, err := run(t, "combine", t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCombine_MissingPath(t *testing.T) {
	_, err := run(t, "combine", filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCombine_BadGroupFamily(t *testing.T) {
	_, err := run(t, "combine", "-g", "9", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "group_family 9")
}

func TestTag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"json default", []string{"a.jpg", "ImageWidth"}, "2688\n"},
		{"string", []string{"a.jpg", "Model", "--type", "string"}, "Nexus 6P\n"},
		{"uint", []string{"b.jpg", "ImageWidth", "-t", "uint"}, "4000\n"},
		{"binary", []string{"a.jpg", "ThumbnailImage", "-t", "binary"}, "4399 bytes\n"},
		{"optional present", []string{"b.jpg", "UserComment", "-t", "string", "--optional"}, "holiday\n"},
		{"optional absent", []string{"a.jpg", "UserComment", "-t", "string", "--optional"}, "(absent)\n"},
		{"optional absent json", []string{"a.jpg", "UserComment", "--optional"}, "(absent)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"tag"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestTag_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"not found", []string{"a.jpg", "NonExistentTag"}, `a.jpg: tag "NonExistentTag" not found`},
		{"wrong type", []string{"a.jpg", "Model", "-t", "int"}, `decode tag "Model"`},
		{"unknown type", []string{"a.jpg", "Model", "-t", "date"}, `unknown type "date"`},
		{"unknown engine", []string{"a.jpg", "Model", "--engine", "perl"}, `unknown engine "perl"`},
		{"missing file", []string{testutil.MissingFile, "Model"}, "File not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"tag"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "exifmeta "+exifmeta.Version)
	assert.Contains(t, out, testutil.FakeVersion)
}

func TestVersion_NoExifTool(t *testing.T) {
	out, err := run(t, "version", "--no-exiftool")
	require.NoError(t, err)
	assert.NotContains(t, out, testutil.FakeVersion)
}

func TestRoot_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exifmeta.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: -2\n"), 0o644))

	_, err := run(t, "--config", path, "version", "--no-exiftool")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers -2")
}
