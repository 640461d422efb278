// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "-X github.com/Aishwarya3011/gapr-sub000/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/Aishwarya3011/gapr-sub000/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/Aishwarya3011/gapr-sub000/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/skelstore
package buildinfo

import "fmt"

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
