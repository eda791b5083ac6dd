package exifmeta_test

import (
	"os"
	"testing"

	"go.uber.org/goleak"

	"github.com/simonhull/exifmeta/internal/testutil"
)

func TestMain(m *testing.M) {
	testutil.MaybeRunFakeExifTool()
	os.Setenv(testutil.EnvFakeExifTool, "1")
	goleak.VerifyTestMain(m)
}
