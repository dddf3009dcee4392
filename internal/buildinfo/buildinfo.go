// Package buildinfo exposes version data injected at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/gamedeals/internal/buildinfo.Version=v1.0.0 \
//	  -X 'github.com/dmitrijs2005/gamedeals/internal/buildinfo.Date=$(date)' \
//	  -X github.com/dmitrijs2005/gamedeals/internal/buildinfo.Commit=$(git rev-parse --short HEAD)" ./cmd/cli
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version string
	Date    string
	Commit  string
)

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// PrintBuildData writes version, date and commit to w, "N/A" for unset ones.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", valueOrNA(Version))
	fmt.Fprintf(w, "Build date: %s\n", valueOrNA(Date))
	fmt.Fprintf(w, "Build commit: %s\n", valueOrNA(Commit))
}
