package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Commit hooks
	c := NoopCommitHooks{}
	c.OnPrepare(ctx, "add_edge", time.Millisecond)
	c.OnReject(ctx, "add_edge", errors.New("bad link"))
	c.OnCommit(ctx, 7, time.Millisecond, nil)
	c.OnFilter(ctx, "bbox", 12)

	// Cache hooks
	k := NoopCacheHooks{}
	k.OnCacheHit(ctx, "snapshot")
	k.OnCacheMiss(ctx, "snapshot")
	k.OnCacheSet(ctx, "snapshot", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/state")
	h.OnResponse(ctx, "GET", "/state", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Commit().(NoopCommitHooks); !ok {
		t.Error("Commit() should return NoopCommitHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customCommit := &testCommitHooks{}
	SetCommitHooks(customCommit)
	if Commit() != customCommit {
		t.Error("SetCommitHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Commit().(NoopCommitHooks); !ok {
		t.Error("Reset() should restore NoopCommitHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testCommitHooks{}
	SetCommitHooks(custom)

	// Setting nil should be ignored
	SetCommitHooks(nil)

	if Commit() != custom {
		t.Error("SetCommitHooks(nil) should be ignored")
	}

	Reset()
}

func TestPrometheusHooks(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)

	p.OnPrepare(ctx, "add_edge", time.Millisecond)
	p.OnPrepare(ctx, "add_edge", time.Millisecond)
	p.OnReject(ctx, "add_prop", errors.New("bad key"))
	p.OnCommit(ctx, 1, time.Millisecond, nil)
	p.OnCommit(ctx, 2, time.Millisecond, errors.New("corrupt"))
	p.OnFilter(ctx, "bbox", 42)
	p.OnCacheHit(ctx, "snapshot")
	p.OnCacheSet(ctx, "snapshot", 100)
	p.OnResponse(ctx, "GET", "/state", 200, time.Millisecond)

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"prepared", p.patches.WithLabelValues("add_edge", "ok"), 2},
		{"rejected", p.patches.WithLabelValues("add_prop", "rejected"), 1},
		{"commits ok", p.commits.WithLabelValues("ok"), 1},
		{"commits error", p.commits.WithLabelValues("error"), 1},
		{"visible", p.visible.WithLabelValues("bbox"), 42},
		{"cache hit", p.cacheOps.WithLabelValues("snapshot", "hit"), 1},
		{"cache bytes", p.cacheBytes.WithLabelValues("snapshot"), 100},
		{"requests", p.requests.WithLabelValues("GET", "/state", "200"), 1},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(tt.c); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// Test implementations
type testCommitHooks struct{ NoopCommitHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
