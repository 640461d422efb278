package cache

import "fmt"

// Keyer builds cache keys for the artifacts the CLI and server cache.
type Keyer interface {
	// SnapshotKey identifies the state rebuilt from a commit history.
	SnapshotKey(historyHash string, commits uint32) string

	// ExportKey identifies a rendered export of a snapshot.
	ExportKey(snapshotHash string, opts ExportKeyOpts) string

	// FilterKey identifies the visible set of a snapshot under a box.
	FilterKey(snapshotHash string, bbox [6]float64) string
}

// ExportKeyOpts are the options that change an export's bytes.
type ExportKeyOpts struct {
	Format  string `json:"format"`
	Visible bool   `json:"visible,omitempty"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) SnapshotKey(historyHash string, commits uint32) string {
	return fmt.Sprintf("snapshot:%s:%d", historyHash, commits)
}

func (DefaultKeyer) ExportKey(snapshotHash string, opts ExportKeyOpts) string {
	return hashKey("export", snapshotHash, opts)
}

func (DefaultKeyer) FilterKey(snapshotHash string, bbox [6]float64) string {
	return hashKey("filter", snapshotHash, bbox)
}

// KeyType returns the artifact type of key, the text before its first
// colon, skipping a scope prefix ending in "/".
func KeyType(key string) string {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '/' {
			key = key[i+1:]
			break
		}
	}
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			return key[:i]
		}
	}
	return key
}
