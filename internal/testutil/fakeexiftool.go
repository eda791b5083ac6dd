// Package testutil provides a fake exiftool for tests.
//
// Test binaries re-execute themselves as the fake: TestMain calls
// MaybeRunFakeExifTool first, then the tests point the library at
// os.Args[0].
//
//	func TestMain(m *testing.M) {
//		testutil.MaybeRunFakeExifTool()
//		os.Setenv(testutil.EnvFakeExifTool, "1")
//		os.Exit(m.Run())
//	}
package testutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// EnvFakeExifTool makes a test binary behave as exiftool when set to "1".
const EnvFakeExifTool = "EXIFMETA_FAKE_EXIFTOOL"

// FakeVersion is what the fake prints for -ver.
const FakeVersion = "12.76"

// Special file names understood by the fake.
const (
	MissingFile = "missing.jpg" // reported on stderr, no record
	SlowFile    = "slow.jpg"    // blocks for a minute
	CrashFile   = "crash.jpg"   // process exits mid-command
)

type fixture struct {
	flat    string
	grouped string
}

// fixtures are keyed by base name and mirror exiftool 12.x output for a
// few phone and camera images.
var fixtures = map[string]fixture{
	"a.jpg": {
		flat:    `{"SourceFile":"a.jpg","Make":"Huawei","Model":"Nexus 6P","ImageWidth":2688,"ThumbnailImage":"(Binary data 4399 bytes, use -b option to extract)"}`,
		grouped: `{"SourceFile":"a.jpg","Camera":{"Make":"Huawei","Model":"Nexus 6P"},"Image":{"ImageWidth":2688,"ThumbnailImage":"(Binary data 4399 bytes, use -b option to extract)"}}`,
	},
	"b.jpg": {
		flat:    `{"SourceFile":"b.jpg","Make":"Canon","Model":"EOS 5D","ImageWidth":4000,"UserComment":"holiday"}`,
		grouped: `{"SourceFile":"b.jpg","Camera":{"Make":"Canon","Model":"EOS 5D"},"Image":{"ImageWidth":4000},"Other":{"UserComment":"holiday"}}`,
	},
	"c.jpg": {
		flat:    `{"SourceFile":"c.jpg","Make":"Huawei","Model":"Nexus 6P","ImageWidth":2688}`,
		grouped: `{"SourceFile":"c.jpg","Camera":{"Make":"Huawei","Model":"Nexus 6P"},"Image":{"ImageWidth":2688}}`,
	},
}

// MaybeRunFakeExifTool runs the fake and exits if EnvFakeExifTool is set.
func MaybeRunFakeExifTool() {
	if os.Getenv(EnvFakeExifTool) != "1" {
		return
	}
	os.Exit(RunFakeExifTool(os.Stdin, os.Stdout, os.Stderr))
}

// RunFakeExifTool speaks the -stay_open protocol on the given streams and
// returns the exit code.
func RunFakeExifTool(in io.Reader, out, errOut io.Writer) int {
	scanner := bufio.NewScanner(in)
	var args []string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "-stay_open":
			if scanner.Scan() && scanner.Text() == "False" {
				return 0
			}
		case strings.HasPrefix(line, "-execute"):
			if code, exit := runCommand(args, strings.TrimPrefix(line, "-execute"), out, errOut); exit {
				return code
			}
			args = nil
		default:
			args = append(args, line)
		}
	}
	return 0
}

func runCommand(args []string, seq string, out, errOut io.Writer) (int, bool) {
	var (
		jsonOut bool
		grouped bool
		version bool
		echo    string
		files   []string
	)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-json" || arg == "-j":
			jsonOut = true
		case arg == "-ver":
			version = true
		case arg == "-echo4" && i+1 < len(args):
			echo = args[i+1]
			i++
		case strings.HasPrefix(arg, "-g"):
			grouped = true
		case strings.HasPrefix(arg, "-"):
		default:
			files = append(files, arg)
		}
	}

	var records []string
	for _, f := range files {
		name := filepath.Base(f)
		switch name {
		case MissingFile:
			fmt.Fprintf(errOut, "Error: File not found - %s\n", f)
			continue
		case SlowFile:
			time.Sleep(time.Minute)
		case CrashFile:
			return 3, true
		}
		fx, ok := fixtures[name]
		if !ok {
			fx = fixture{
				flat:    fmt.Sprintf(`{"SourceFile":%q,"FileName":%q}`, f, f),
				grouped: fmt.Sprintf(`{"SourceFile":%q,"Other":{"FileName":%q}}`, f, f),
			}
		}
		if grouped {
			records = append(records, fx.grouped)
		} else {
			records = append(records, fx.flat)
		}
	}

	switch {
	case version:
		fmt.Fprintln(out, FakeVersion)
	case len(records) == 0:
	case jsonOut:
		fmt.Fprintf(out, "[%s]\n", strings.Join(records, ",\n"))
	default:
		fmt.Fprintf(out, "======== %d image files read\n", len(records))
	}

	if echo != "" {
		fmt.Fprintln(errOut, echo)
	}
	fmt.Fprintf(out, "{ready%s}\n", seq)
	return 0, false
}
