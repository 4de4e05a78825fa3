// Package buildinfo carries the release stamp printed by chanroute --version.
//
// Release builds overwrite the variables through the linker:
//
//	go build -ldflags "-X github.com/matzehuels/chanroute/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/chanroute/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/chanroute/pkg/buildinfo.Date=$(date -u +%Y-%m-%d)" \
//	    ./cmd/chanroute
package buildinfo

import (
	"fmt"
	"runtime"
)

// Stamped at link time; local builds keep the placeholders.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template is the cobra version template: name and version on the first line,
// provenance and toolchain on the second.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\n%s built %s with %s\n", Version, Commit, Date, runtime.Version())
}
