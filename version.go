package exifmeta

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
)

// Version is the semantic version of the exifmeta library.
const Version = "0.1.0"

// VersionInfo describes the library build and, when known, the exiftool
// it talks to.
type VersionInfo struct {
	Version   string
	GitCommit string // set via -ldflags
	BuildTime string // set via -ldflags
	GoVersion string
	ExifTool  string // empty unless filled by ExifTool.VersionInfo
}

// String formats the info on one line.
func (v VersionInfo) String() string {
	s := fmt.Sprintf("exifmeta %s (commit %s, built %s, %s)", v.Version, v.GitCommit, v.BuildTime, v.GoVersion)
	if v.ExifTool != "" {
		s += ", exiftool " + v.ExifTool
	}
	return s
}

// GetVersionInfo returns the library's build information.
//
// Example build command:
//
//	go build -ldflags="-X github.com/simonhull/exifmeta.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/exifmeta.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
func GetVersionInfo() VersionInfo {
	goVer := goVersion
	if goVer == "unknown" {
		goVer = runtime.Version()
	}
	return VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: goVer,
	}
}

// VersionInfo returns the library build information together with the
// version reported by the running exiftool (exiftool -ver).
func (et *ExifTool) VersionInfo(ctx context.Context) (VersionInfo, error) {
	info := GetVersionInfo()
	out, err := et.Execute(ctx, "-ver")
	if err != nil {
		return info, fmt.Errorf("exiftool version: %w", err)
	}
	info.ExifTool = string(bytes.TrimSpace(out))
	return info, nil
}

var (
	gitCommit = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)
