package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/molfig/pkg/buildinfo"
	"github.com/matzehuels/molfig/pkg/cache"
	"github.com/matzehuels/molfig/pkg/pipeline"
	"github.com/matzehuels/molfig/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	redisURL string // shared cache; empty uses the file cache
	noCache  bool   // disable caching entirely
}

// serveCommand runs the HTTP render service until the context is cancelled.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: server.DefaultAddr}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve chemfig rendering over HTTP",
		Long: `Serve chemfig rendering over HTTP.

POST a molecule document to /v1/render and receive the \chemfig{} code with
the molecule's width and height. Rendered artifacts are cached in the local
cache directory, or in Redis when --redis is given so several instances can
share them.`,
		Example: `  molfig serve --addr :8080
  molfig serve --redis redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for a shared render cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	store, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}

	// Artifacts depend on the renderer, so entries never cross versions.
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version)
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	defer runner.Close()

	printInfo("Listening on %s", StyleHighlight.Render(opts.addr))
	printDetail("POST /v1/render · GET /healthz · GET /version")
	return server.New(runner, c.Logger).ListenAndServe(ctx, opts.addr)
}

// serveCache picks the cache backend: none, Redis or the file cache.
func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil
	case opts.redisURL != "":
		store, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		c.Logger.Info("Using Redis cache")
		return store, nil
	default:
		return newCache(false)
	}
}
