package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planarity/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached result of the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Cache
			if backendName(cfg.Backend, false) == cache.BackendNone {
				printWarning("Cache is disabled in the config; nothing to clear")
				return nil
			}
			rc, err := cache.Open(cmd.Context(), cfg, c.Logger)
			if err != nil {
				return err
			}
			defer rc.Close()

			if err := rc.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared the %s cache", cfg.Backend)
			switch cfg.Backend {
			case cache.BackendFile, cache.BackendBadger:
				printDetail("Directory: %s", cfg.Dir)
			case cache.BackendRedis:
				printDetail("Address: %s", cfg.RedisAddr)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.Config.Cache.Dir
			if dir == "" {
				var err error
				if dir, err = cacheDir(); err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
