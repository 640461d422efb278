// Package cli implements the skelstore command-line interface.
//
// Commands share one [CLI] value holding the logger and the resolved
// configuration. Every command that needs a graph builds it the same way:
// either by loading a JSON snapshot (--snapshot) or by replaying the
// commit history, using the snapshot cache when the history is unchanged.
//
// # Commands
//
//   - commit: validate commit files and add them to the history
//   - replay: rebuild the store from the history and report on it
//   - filter, highlight: run a selection and print what became visible
//   - export: write json, swc, dot or svg
//   - serve: run the inspection HTTP API
//   - history: show history state and patch statistics
//   - upgrade: rewrite legacy commit files in the current encoding
//   - cache: manage the snapshot/export cache
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/Aishwarya3011/gapr-sub000/pkg/cache"
	"github.com/Aishwarya3011/gapr-sub000/pkg/config"
	"github.com/Aishwarya3011/gapr-sub000/pkg/history"
)

// appName is the application name used for directories and display.
const appName = "skelstore"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	status     io.Writer // spinner output
	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The configuration file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		status: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig resolves the configuration file and environment.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "backends", cfg.String())
	return nil
}

// openHistory opens the configured commit store. An explicit dir
// overrides the configured backend with a file store.
func (c *CLI) openHistory(ctx context.Context, dir string) (history.Store, error) {
	cfg := c.Config.History
	if dir != "" {
		return history.NewFileStore(dir)
	}
	switch cfg.Backend {
	case "mongo":
		return history.NewMongoStore(ctx, history.MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
			Timeout:    cfg.Timeout,
		})
	case "memory":
		return history.NewMemoryStore(), nil
	default:
		return history.NewFileStore(cfg.Dir)
	}
}

// openCache opens the configured cache, wrapped to report cache metrics.
// A failing Redis falls back to no caching with a warning.
func (c *CLI) openCache(ctx context.Context) (cache.Cache, error) {
	cfg := c.Config.Cache
	if c.noCache || cfg.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == "redis" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			c.Logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.Observed(rc), nil
	}
	dir, err := c.fileCacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return cache.Observed(fc), nil
}

// keyer returns the cache keyer, scoped when a scope is configured.
func (c *CLI) keyer() cache.Keyer {
	if scope := c.Config.Cache.Scope; scope != "" {
		return cache.NewScopedKeyer(cache.NewDefaultKeyer(), scope)
	}
	return cache.NewDefaultKeyer()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/skelstore/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
