package exifmeta_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/simonhull/exifmeta"
	"github.com/simonhull/exifmeta/internal/testutil"
)

func newFakePool(t *testing.T, size, chunkSize int) *exifmeta.Pool {
	t.Helper()
	p, err := exifmeta.NewPool(size,
		exifmeta.WithBinaryPath(os.Args[0]),
		exifmeta.WithChunkSize(chunkSize),
		exifmeta.WithLogger(zaptest.NewLogger(t)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

func sourceFiles(t *testing.T, recs []*exifmeta.Object) []string {
	t.Helper()
	out := make([]string, len(recs))
	for i, rec := range recs {
		src, err := exifmeta.ReadTag[string](rec, "SourceFile")
		require.NoError(t, err)
		out[i] = src
	}
	return out
}

func TestPool_ExtractPreservesOrder(t *testing.T) {
	p := newFakePool(t, 3, 2)
	assert.Equal(t, 3, p.Size())

	paths := make([]string, 11)
	for i := range paths {
		paths[i] = fmt.Sprintf("img%02d.jpg", i)
	}

	recs, err := p.Extract(context.Background(), paths...)
	require.NoError(t, err)
	if diff := cmp.Diff(paths, sourceFiles(t, recs)); diff != "" {
		t.Errorf("record order mismatch (-want +got):\n%s", diff)
	}
}

func TestPool_ExtractGroupedCombines(t *testing.T) {
	p := newFakePool(t, 2, 1)

	recs, err := p.ExtractGrouped(context.Background(), 2, "a.jpg", "b.jpg", "c.jpg")
	require.NoError(t, err)
	require.Len(t, recs, 3)

	combined, err := exifmeta.Combine(exifmeta.Records(recs))
	require.NoError(t, err)

	makes, err := exifmeta.JSONTag(mustGroup(t, combined, "Camera"), "Make")
	require.NoError(t, err)
	assert.Equal(t, `["Huawei","Canon"]`, makes.String())
}

func mustGroup(t *testing.T, obj *exifmeta.Object, group string) *exifmeta.Object {
	t.Helper()
	v, ok := obj.Get(group)
	require.True(t, ok, "group %q missing", group)
	g, ok := v.AsObject()
	require.True(t, ok)
	return g
}

func TestPool_EmptyInput(t *testing.T) {
	p := newFakePool(t, 1, 4)

	recs, err := p.Extract(context.Background())
	require.NoError(t, err)
	assert.Nil(t, recs)
}

func TestPool_ErrorAbortsBatch(t *testing.T) {
	p := newFakePool(t, 2, 1)

	recs, err := p.Extract(context.Background(), "a.jpg", testutil.MissingFile, "b.jpg")
	require.Error(t, err)
	assert.Nil(t, recs)
	assert.Contains(t, err.Error(), "missing.jpg")
}

func TestPool_CancelledContext(t *testing.T) {
	p := newFakePool(t, 2, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recs, err := p.Extract(ctx, "a.jpg", "b.jpg")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, recs)
}

func TestNewPool_NotInstalled(t *testing.T) {
	_, err := exifmeta.NewPool(2, exifmeta.WithBinaryPath("exifmeta-no-such-binary"))
	var notInstalled *exifmeta.NotInstalledError
	assert.ErrorAs(t, err, &notInstalled)
}
