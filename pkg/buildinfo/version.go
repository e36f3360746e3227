// Package buildinfo exposes the version stamped into the binary at link
// time:
//
//	go build -ldflags "\
//	  -X github.com/matzehuels/colgraph/pkg/buildinfo.Version=v0.3.0 \
//	  -X github.com/matzehuels/colgraph/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/matzehuels/colgraph/pkg/buildinfo.Date=$(date -u +%FT%TZ)" \
//	  ./cmd/colgraph
package buildinfo

import "fmt"

// Link-time values. Unstamped builds report "dev".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build stamp as served by the health endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get snapshots the current stamp.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Template is the cobra version template: name and version, then the
// commit and build date on their own lines.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} %s\ncommit %s, built %s\n", i.Version, i.Commit, i.Date)
}
