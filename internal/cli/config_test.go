package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/planarity/pkg/cache"
	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/store"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	cfg := defaultConfig()
	if cfg.Cache.Backend != cache.BackendFile {
		t.Errorf("default backend = %q, want %q", cfg.Cache.Backend, cache.BackendFile)
	}
	if want := filepath.Join("/tmp/xdg-cache", appName); cfg.Cache.Dir != want {
		t.Errorf("default cache dir = %q, want %q", cfg.Cache.Dir, want)
	}
	if cfg.Store.Database != store.DefaultDatabase {
		t.Errorf("default database = %q", cfg.Store.Database)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "planarity.toml", `
algorithm = "jts"

[cache]
backend = "badger"
dir = "/var/cache/planarity"
ttl = "24h"

[server]
addr = ":9090"
max_nodes = 500

[experiment]
workers = 3
max_pairs = 40
`)
	cfg, used, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if used != path {
		t.Errorf("used = %q, want %q", used, path)
	}
	if cfg.Algorithm != "jts" {
		t.Errorf("algorithm = %q", cfg.Algorithm)
	}
	if cfg.Cache.Backend != cache.BackendBadger || cfg.Cache.Dir != "/var/cache/planarity" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL != 24*time.Hour {
		t.Errorf("ttl = %v", cfg.Cache.TTL)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.MaxNodes != 500 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Experiment.Workers != 3 || cfg.Experiment.MaxPairs != 40 {
		t.Errorf("experiment = %+v", cfg.Experiment)
	}
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "planarity.yaml", `
algorithm: bl
cache:
  backend: none
store:
  mongo_uri: mongodb://localhost:27017
  database: reports
`)
	cfg, _, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Cache.Backend != cache.BackendNone {
		t.Errorf("backend = %q", cfg.Cache.Backend)
	}
	if cfg.Store.MongoURI != "mongodb://localhost:27017" || cfg.Store.Database != "reports" {
		t.Errorf("store = %+v", cfg.Store)
	}
}

func TestLoadConfigSearch(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	cfg, used, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig without file: %v", err)
	}
	if used != "" || cfg == nil {
		t.Fatalf("expected defaults, got used=%q", used)
	}

	want := writeConfig(t, filepath.Join(home, appName), "planarity.yml", "algorithm: jts\n")
	cfg, used, err = loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if used != want || cfg.Algorithm != "jts" {
		t.Errorf("used %q algorithm %q", used, cfg.Algorithm)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		file string
		body string
		code perrors.Code
	}{
		{"unknown toml key", "a.toml", "colour = \"red\"\n", perrors.ErrCodeParse},
		{"unknown yaml key", "b.yaml", "colour: red\n", perrors.ErrCodeParse},
		{"broken toml", "c.toml", "algorithm = \n", perrors.ErrCodeParse},
		{"bad algorithm", "d.toml", "algorithm = \"fast\"\n", perrors.ErrCodeInvalidInput},
		{"bad backend", "e.toml", "[cache]\nbackend = \"memcached\"\n", perrors.ErrCodeInvalidInput},
		{"negative workers", "f.yaml", "experiment:\n  workers: -1\n", perrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, dir, tt.file, tt.body)
			_, _, err := loadConfig(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := perrors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}

	_, _, err := loadConfig(filepath.Join(dir, "missing.toml"))
	if !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("missing file: %v", err)
	}
}
