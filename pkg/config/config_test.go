package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	apperr "github.com/Aishwarya3011/gapr-sub000/pkg/errors"
	"github.com/Aishwarya3011/gapr-sub000/pkg/skeleton"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
[history]
backend = "mongo"
mongo_uri = "mongodb://db:27017"

[cache]
backend = "redis"
redis_addr = "cache:6379"
ttl = "2h"

[filter]
bbox = [0.0, 0.0, 0.0, 10.0, 10.0, 5.0]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	want.History.Backend = "mongo"
	want.History.MongoURI = "mongodb://db:27017"
	want.Cache.Backend = "redis"
	want.Cache.RedisAddr = "cache:6379"
	want.Cache.TTL = 2 * time.Hour
	want.Filter.BBox = []float64{0, 0, 0, 10, 10, 5}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	box, err := cfg.Filter.Box()
	if err != nil || box != (skeleton.BBox{0, 0, 0, 10, 10, 5}) {
		t.Errorf("Box() = %v, %v", box, err)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = "0.0.0.0:9000"

[replay]
workers = 2
`)
	t.Setenv("SKELSTORE_REPLAY_WORKERS", "8")
	t.Setenv("SKELSTORE_CACHE_BACKEND", "none")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("Server.Addr = %q, want file value", cfg.Server.Addr)
	}
	if cfg.Replay.Workers != 8 {
		t.Errorf("Replay.Workers = %d, want 8", cfg.Replay.Workers)
	}
	if cfg.Cache.Backend != "none" {
		t.Errorf("Cache.Backend = %q, want none", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL != Default().Cache.TTL {
		t.Errorf("Cache.TTL = %v, want default", cfg.Cache.TTL)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		env  map[string]string
		code apperr.Code
	}{
		{"missing explicit file", filepath.Join(t.TempDir(), "nope.toml"), nil, apperr.ErrCodeFileNotFound},
		{"bad toml", writeConfig(t, "[cache\n"), nil, apperr.ErrCodeInvalidFormat},
		{"unknown backend", writeConfig(t, "[history]\nbackend = \"s3\"\n"), nil, apperr.ErrCodeInvalidInput},
		{"mongo without uri", writeConfig(t, "[history]\nbackend = \"mongo\"\n"), nil, apperr.ErrCodeInvalidInput},
		{"redis without addr", "", map[string]string{"SKELSTORE_CACHE_BACKEND": "redis"}, apperr.ErrCodeInvalidInput},
		{"bad env", "", map[string]string{"SKELSTORE_REPLAY_WORKERS": "many"}, apperr.ErrCodeInvalidInput},
		{"short bbox", "", map[string]string{"SKELSTORE_FILTER_BBOX": "1,2,3"}, apperr.ErrCodeInvalidBBox},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			t.Setenv("XDG_CONFIG_HOME", t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.path)
			if got := apperr.GetCode(err); got != tt.code {
				t.Errorf("Load() code = %v, want %v (err %v)", got, tt.code, err)
			}
		})
	}
}
