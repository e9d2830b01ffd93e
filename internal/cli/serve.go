package cli

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/planarity/internal/server"
	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/observability"
	"github.com/matzehuels/planarity/pkg/pipeline"
	"github.com/matzehuels/planarity/pkg/store"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve check, embed and planarize over HTTP with Prometheus metrics on
/metrics. Results are cached with the configured backend. Reports go to
MongoDB when store.mongo_uri is set and to memory otherwise.`,
		Example: `  planarity serve --addr :9090
  curl -s localhost:9090/v1/check -d @k5.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			hooks := observability.NewPrometheusHooks(reg)
			observability.SetReductionHooks(observability.Tee(hooks, observability.NewLogHooks(c.Logger)))
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			defer observability.Reset()

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			if runner.Store == nil {
				runner.Store = store.NewMemory()
			}
			defer func() {
				if err := runner.Close(context.Background()); err != nil {
					c.Logger.Warn("close runner", "error", err)
				}
			}()

			if !cmd.Flags().Changed("addr") && c.Config.Server.Addr != "" {
				addr = c.Config.Server.Addr
			}
			srv := server.New(server.Options{
				Addr:      addr,
				Runner:    runner,
				Limits:    c.serverLimits(),
				Algorithm: c.Config.Algorithm,
				Gatherer:  reg,
				Hooks:     hooks,
				Logger:    c.Logger,
			})

			printInfo("Listening on %s", srv.Addr())
			printDetail("Cache: %s", backendName(c.Config.Cache.Backend, noCache))
			err = srv.ListenAndServe(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			printSuccess("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) serverLimits() perrors.Limits {
	l := pipeline.DefaultLimits
	if n := c.Config.Server.MaxNodes; n > 0 {
		l.MaxNodes = n
	}
	if n := c.Config.Server.MaxEdges; n > 0 {
		l.MaxEdges = n
	}
	return l
}

func backendName(backend string, disabled bool) string {
	if disabled || backend == "" {
		return "none"
	}
	return backend
}
