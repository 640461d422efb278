// Package config loads skelstore settings from a TOML file and the
// environment.
//
// Settings are resolved in three layers, later layers winning:
//
//  1. [Default] values
//  2. the TOML file passed to [Load], or ~/.config/skelstore/config.toml
//  3. SKELSTORE_* environment variables, e.g. SKELSTORE_CACHE_REDIS_ADDR
//
// An example file:
//
//	[history]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[filter]
//	bbox = [0.0, 0.0, 0.0, 500.0, 500.0, 200.0]
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	apperr "github.com/Aishwarya3011/gapr-sub000/pkg/errors"
	"github.com/Aishwarya3011/gapr-sub000/pkg/skeleton"
)

// EnvPrefix prefixes every environment variable read by [Load].
const EnvPrefix = "SKELSTORE"

// Config holds all settings.
type Config struct {
	History HistoryConfig `toml:"history" envconfig:"HISTORY"`
	Cache   CacheConfig   `toml:"cache" envconfig:"CACHE"`
	Server  ServerConfig  `toml:"server" envconfig:"SERVER"`
	Replay  ReplayConfig  `toml:"replay" envconfig:"REPLAY"`
	Filter  FilterConfig  `toml:"filter" envconfig:"FILTER"`
}

// HistoryConfig selects where commit files are kept.
type HistoryConfig struct {
	Backend         string        `toml:"backend" envconfig:"BACKEND"` // file | mongo | memory
	Dir             string        `toml:"dir" envconfig:"DIR"`
	MongoURI        string        `toml:"mongo_uri" envconfig:"MONGO_URI"`
	MongoDatabase   string        `toml:"mongo_database" envconfig:"MONGO_DATABASE"`
	MongoCollection string        `toml:"mongo_collection" envconfig:"MONGO_COLLECTION"`
	Timeout         time.Duration `toml:"timeout" envconfig:"TIMEOUT"`
}

// CacheConfig selects where snapshots and exports are cached.
type CacheConfig struct {
	Backend       string        `toml:"backend" envconfig:"BACKEND"` // file | redis | none
	Dir           string        `toml:"dir" envconfig:"DIR"`
	TTL           time.Duration `toml:"ttl" envconfig:"TTL"`
	RedisAddr     string        `toml:"redis_addr" envconfig:"REDIS_ADDR"`
	RedisPassword string        `toml:"redis_password" envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `toml:"redis_db" envconfig:"REDIS_DB"`
	Scope         string        `toml:"scope" envconfig:"SCOPE"`
}

// ServerConfig configures the inspection server.
type ServerConfig struct {
	Addr         string        `toml:"addr" envconfig:"ADDR"`
	ReadTimeout  time.Duration `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout time.Duration `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
}

// ReplayConfig tunes history replay.
type ReplayConfig struct {
	Workers int `toml:"workers" envconfig:"WORKERS"` // 0 means one per CPU
}

// FilterConfig holds the box applied after a replay.
type FilterConfig struct {
	BBox []float64 `toml:"bbox" envconfig:"BBOX"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		History: HistoryConfig{
			Backend:         "file",
			MongoDatabase:   "skelstore",
			MongoCollection: "commits",
			Timeout:         10 * time.Second,
		},
		Cache: CacheConfig{
			Backend: "file",
			TTL:     7 * 24 * time.Hour,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8470",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// DefaultPath returns ~/.config/skelstore/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "skelstore", "config.toml")
}

// Load resolves the settings. An empty path reads [DefaultPath] if it
// exists; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		_, err := toml.DecodeFile(path, &cfg)
		switch {
		case err == nil:
		case errors.Is(err, os.ErrNotExist):
			if explicit {
				return Config{}, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "read config %s", path)
			}
		default:
			return Config{}, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "read config %s", path)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "read environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	switch c.History.Backend {
	case "file", "memory":
	case "mongo":
		if c.History.MongoURI == "" {
			return apperr.New(apperr.ErrCodeInvalidInput, "history backend mongo needs mongo_uri")
		}
	default:
		return apperr.New(apperr.ErrCodeInvalidInput, "unknown history backend %q", c.History.Backend)
	}

	switch c.Cache.Backend {
	case "file", "none":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return apperr.New(apperr.ErrCodeInvalidInput, "cache backend redis needs redis_addr")
		}
	default:
		return apperr.New(apperr.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "cache ttl cannot be negative")
	}
	if c.Cache.Scope != "" {
		if err := apperr.ValidateHistoryName(c.Cache.Scope); err != nil {
			return err
		}
	}

	if c.Replay.Workers < 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "replay workers cannot be negative")
	}
	if _, err := c.Filter.Box(); err != nil {
		return err
	}
	return nil
}

// Box returns the configured filter box, or [skeleton.EmptyBBox] when
// none is set.
func (f FilterConfig) Box() (skeleton.BBox, error) {
	switch len(f.BBox) {
	case 0:
		return skeleton.EmptyBBox, nil
	case 6:
		var b skeleton.BBox
		copy(b[:], f.BBox)
		return b, nil
	default:
		return skeleton.BBox{}, apperr.New(apperr.ErrCodeInvalidBBox,
			"filter bbox needs 6 values, got %d", len(f.BBox))
	}
}

// String renders the backends for log lines.
func (c Config) String() string {
	return fmt.Sprintf("history=%s cache=%s", c.History.Backend, c.Cache.Backend)
}
