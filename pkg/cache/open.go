package cache

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/planarity/pkg/errors"
)

// Backend names accepted by [Open].
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendBadger = "badger"
)

// Config selects and configures a backend.
type Config struct {
	Backend   string        `toml:"backend" yaml:"backend"`
	Dir       string        `toml:"dir" yaml:"dir"`
	RedisAddr string        `toml:"redis_addr" yaml:"redis_addr"`
	TTL       time.Duration `toml:"ttl" yaml:"ttl"`
}

// Open builds the configured backend wrapped with [Instrument]. The empty
// backend name means none.
func Open(ctx context.Context, cfg Config, logger *log.Logger) (*Instrumented, error) {
	var (
		c   Cache
		err error
	)
	switch cfg.Backend {
	case "", BackendNone:
		c = NewNullCache()
	case BackendFile:
		if cfg.Dir == "" {
			return nil, perrors.New(perrors.ErrCodeInvalidInput, "file cache needs cache.dir")
		}
		c, err = NewFileCache(cfg.Dir)
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, perrors.New(perrors.ErrCodeInvalidInput, "redis cache needs cache.redis_addr")
		}
		c, err = NewRedisCache(ctx, RedisOptions{Addr: cfg.RedisAddr})
	case BackendBadger:
		if cfg.Dir == "" {
			return nil, perrors.New(perrors.ErrCodeInvalidInput, "badger cache needs cache.dir")
		}
		c, err = NewBadgerCache(BadgerOptions{Dir: cfg.Dir, Logger: logger})
	default:
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "unknown cache backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Debug("cache opened", "backend", cfg.Backend, "ttl", cfg.TTL)
	}
	return Instrument(c, nil), nil
}
