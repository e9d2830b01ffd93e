// Package cli implements the planarity command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/planarity/pkg/buildinfo"
	"github.com/matzehuels/planarity/pkg/cache"
	"github.com/matzehuels/planarity/pkg/observability"
	"github.com/matzehuels/planarity/pkg/pipeline"
	"github.com/matzehuels/planarity/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "planarity"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	// Config is loaded before any subcommand runs.
	Config *Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Planarity testing, embedding and planarization with PQ-trees",
		Long: `Planarity decides whether a graph can be drawn in the plane without crossings,
computes a planar embedding when it can, and planarizes it with virtual
crossing nodes when it cannot. Tests use Booth-Lueker or
Jayakumar-Thulasiraman-Swamy PQ-trees.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			if path != "" {
				c.Logger.Debug("loaded config", "path", path)
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: planarity.toml or planarity.yaml in the config dir)")

	// Register all subcommands
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.embedCommand())
	root.AddCommand(c.planarizeCommand())
	root.AddCommand(c.experimentCommand())
	root.AddCommand(c.pqtreeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.reportCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use from the loaded config.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg := c.Config.Cache
	if noCache {
		cfg.Backend = cache.BackendNone
	}
	rc, err := cache.Open(ctx, cfg, c.Logger)
	if err != nil {
		return nil, err
	}
	st, err := c.openStore(ctx)
	if err != nil {
		rc.Close()
		return nil, err
	}
	r := pipeline.NewRunner(rc, nil, st, c.Logger)
	if cfg.TTL > 0 {
		r.TTL = cfg.TTL
	}
	return r, nil
}

// sweepHooks logs PQ-tree sweeps at debug level.
func (c *CLI) sweepHooks() observability.ReductionHooks {
	return observability.NewLogHooks(c.Logger)
}

// openStore connects to the configured report store. It returns nil, nil
// when none is configured.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	sc := c.Config.Store
	if sc.MongoURI == "" {
		return nil, nil
	}
	return store.NewMongo(ctx, sc.MongoURI, sc.Database)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/planarity/).
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

// configDir returns the config directory using XDG standard (~/.config/planarity/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
