package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/molfig/pkg/cache"
	"github.com/matzehuels/molfig/pkg/chemfig"
	molio "github.com/matzehuels/molfig/pkg/io"
	"github.com/matzehuels/molfig/pkg/molgraph"
	"github.com/matzehuels/molfig/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ExecuteFile decodes the molecule document at path and runs the pipeline.
func (r *Runner) ExecuteFile(ctx context.Context, path string, opts Options) (*Result, error) {
	decodeStart := time.Now()
	g, err := r.Decode(ctx, path)
	if err != nil {
		return nil, err
	}
	result, err := r.Execute(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.DecodeTime = time.Since(decodeStart)
	return result, nil
}

// Decode reads a molecule document, choosing the decoder by extension.
func (r *Runner) Decode(ctx context.Context, path string) (*molgraph.Graph, error) {
	return r.decode(ctx, path, func() (*molgraph.Graph, error) {
		return molio.Import(path)
	})
}

// DecodeReader reads a molecule document from rd with the given decoder,
// e.g. io.ReadJSON. source names the input in hooks and logs.
func (r *Runner) DecodeReader(ctx context.Context, source string, rd io.Reader, read func(io.Reader) (*molgraph.Graph, error)) (*molgraph.Graph, error) {
	return r.decode(ctx, source, func() (*molgraph.Graph, error) {
		return read(rd)
	})
}

func (r *Runner) decode(ctx context.Context, source string, read func() (*molgraph.Graph, error)) (*molgraph.Graph, error) {
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, source)
	start := time.Now()

	g, err := read()

	atoms := 0
	if g != nil {
		atoms = len(g.Atoms)
	}
	hooks.OnDecodeComplete(ctx, source, atoms, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("decoded molecule", "source", source, "atoms", atoms, "bonds", len(g.Bonds))
	return g, nil
}

// Execute runs the build → render pipeline on g with caching.
func (r *Runner) Execute(ctx context.Context, g *molgraph.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		Graph:     g,
		Artifacts: make(map[string][]byte),
	}
	result.Stats.Atoms = len(g.Atoms)
	result.Stats.Bonds = len(g.Bonds)
	result.Stats.Rings = len(g.Rings)

	// Stage 1: Build
	buildStart := time.Now()
	m, err := r.Build(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Molecule = m
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Width, result.Stats.Height = m.Dimensions()

	r.Logger.Debug("built bond tree",
		"atoms", len(g.Atoms),
		"lines", len(m.Lines()),
		"duration", result.Stats.BuildTime)

	// Stage 2: Render
	var buf bytes.Buffer
	if err := molio.WriteJSON(g, &buf); err != nil {
		return nil, fmt.Errorf("hash molecule: %w", err)
	}
	result.GraphHash = cache.Hash(buf.Bytes())

	renderStart := time.Now()
	artifacts, hits, err := r.RenderWithCacheInfo(ctx, m, result.GraphHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.Hits = hits
	result.CacheInfo.RenderHit = hits == len(opts.Formats)

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build arranges g into a bond tree.
func (r *Runner) Build(ctx context.Context, g *molgraph.Graph, opts Options) (*chemfig.Molecule, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(g.Atoms))
	start := time.Now()
	m, err := chemfig.Build(g, opts.Options)
	hooks.OnBuildComplete(ctx, len(g.Atoms), time.Since(start), err)
	return m, err
}

// RenderWithCacheInfo produces every requested format, serving what it can
// from the cache, and returns the number of cache hits.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, m *chemfig.Molecule, graphHash string, opts Options) (map[string][]byte, int, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, 0, err
	}
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	hits := 0
	var renderErr error

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(graphHash, cache.ArtifactKeyOpts{
			Format:  format,
			Options: opts.keyOptions(format),
		})

		if !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				r.Logger.Warn("cache read failed", "format", format, "error", err)
			}
			if hit {
				cacheHooks.OnCacheHit(ctx, format)
				artifacts[format] = data
				hits++
				continue
			}
			cacheHooks.OnCacheMiss(ctx, format)
		}

		data, err := RenderFormat(m, format, opts)
		if err != nil {
			renderErr = fmt.Errorf("render %s: %w", format, err)
			break
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, format, len(data))
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), renderErr)
	if renderErr != nil {
		return nil, 0, renderErr
	}
	return artifacts, hits, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
