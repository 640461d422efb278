package cache

// ScopedKeyer wraps a Keyer with a prefix so several datasets can share
// one backend.
//
// Example usage:
//
//	// Keys for the cortex reconstruction
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "cortex-17")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer whose keys start with scope followed by
// a slash.
func NewScopedKeyer(inner Keyer, scope string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: scope + "/",
	}
}

func (k *ScopedKeyer) SnapshotKey(historyHash string, commits uint32) string {
	return k.prefix + k.inner.SnapshotKey(historyHash, commits)
}

func (k *ScopedKeyer) ExportKey(snapshotHash string, opts ExportKeyOpts) string {
	return k.prefix + k.inner.ExportKey(snapshotHash, opts)
}

func (k *ScopedKeyer) FilterKey(snapshotHash string, bbox [6]float64) string {
	return k.prefix + k.inner.FilterKey(snapshotHash, bbox)
}
