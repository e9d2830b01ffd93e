package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/planarity/pkg/cache"
	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/store"
)

// configNames are searched in the config directory, in order.
var configNames = []string{"planarity.toml", "planarity.yaml", "planarity.yml"}

// Config is the content of a planarity config file. TOML and YAML use the
// same keys:
//
//	algorithm = "jts"
//
//	[cache]
//	backend = "badger"
//	dir = "/var/cache/planarity"
//	ttl = "24h"
//
//	[store]
//	mongo_uri = "mongodb://localhost:27017"
//
//	[server]
//	addr = ":8080"
//
//	[experiment]
//	workers = 8
//	max_pairs = 500
type Config struct {
	Algorithm  string           `toml:"algorithm" yaml:"algorithm"`
	Cache      cache.Config     `toml:"cache" yaml:"cache"`
	Store      StoreConfig      `toml:"store" yaml:"store"`
	Server     ServerConfig     `toml:"server" yaml:"server"`
	Experiment ExperimentConfig `toml:"experiment" yaml:"experiment"`
}

// StoreConfig selects the report store. Reports are only kept when
// MongoURI is set.
type StoreConfig struct {
	MongoURI string `toml:"mongo_uri" yaml:"mongo_uri"`
	Database string `toml:"database" yaml:"database"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr     string `toml:"addr" yaml:"addr"`
	MaxNodes int    `toml:"max_nodes" yaml:"max_nodes"`
	MaxEdges int    `toml:"max_edges" yaml:"max_edges"`
}

// ExperimentConfig holds defaults for the experiment command.
type ExperimentConfig struct {
	Workers  int `toml:"workers" yaml:"workers"`
	MaxPairs int `toml:"max_pairs" yaml:"max_pairs"`
}

// defaultConfig caches results on disk under the XDG cache directory.
func defaultConfig() *Config {
	cfg := &Config{
		Cache: cache.Config{Backend: cache.BackendNone},
		Store: StoreConfig{Database: store.DefaultDatabase},
	}
	if dir, err := cacheDir(); err == nil {
		cfg.Cache = cache.Config{Backend: cache.BackendFile, Dir: dir}
	}
	return cfg
}

// loadConfig reads path, or the first config file found in the config
// directory when path is empty. It returns the path it read, which is
// empty when no file was found and defaults apply.
func loadConfig(path string) (*Config, string, error) {
	cfg := defaultConfig()
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return cfg, "", nil
		}
		for _, name := range configNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
		if path == "" {
			return cfg, "", nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", perrors.Wrap(perrors.ErrCodeInvalidInput, err, "config file %s", path)
		}
		return nil, "", fmt.Errorf("read config: %w", err)
	}
	if err := decodeConfig(path, data, cfg); err != nil {
		return nil, "", err
	}
	if err := cfg.validate(); err != nil {
		return nil, "", perrors.Wrap(perrors.ErrCodeInvalidInput, err, "config file %s", path)
	}
	return cfg, path, nil
}

func decodeConfig(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return perrors.Wrap(perrors.ErrCodeParse, err, "config file %s", path)
		}
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return perrors.Wrap(perrors.ErrCodeParse, err, "config file %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return perrors.New(perrors.ErrCodeParse, "config file %s: unknown key %q", path, undecoded[0].String())
		}
	}
	return nil
}

func (c *Config) validate() error {
	if err := perrors.ValidateAlgorithm(c.Algorithm); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case "", cache.BackendNone, cache.BackendFile, cache.BackendRedis, cache.BackendBadger:
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Experiment.Workers < 0 || c.Experiment.MaxPairs < 0 {
		return errors.New("experiment settings must not be negative")
	}
	return nil
}
