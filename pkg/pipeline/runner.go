package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/scorewell/engrave/pkg/cache"
	"github.com/scorewell/engrave/pkg/document"
	"github.com/scorewell/engrave/pkg/layout"
	"github.com/scorewell/engrave/pkg/observability"
	"github.com/scorewell/engrave/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
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

// Execute runs the complete load → resolve → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	doc, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Document = doc
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.SystemCount = len(doc.Systems)
	for _, sys := range doc.Systems {
		result.Stats.BlockCount += len(sys.Blocks)
	}

	canonical, err := document.Canonical(doc)
	if err != nil {
		return nil, fmt.Errorf("canonicalize: %w", err)
	}
	result.DocHash = cache.Hash(canonical)

	opts.Logger.Info("loaded document",
		"source", opts.source(),
		"systems", result.Stats.SystemCount,
		"blocks", result.Stats.BlockCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Resolve
	resolveStart := time.Now()
	systems, resolveHit, err := r.ResolveWithCacheInfo(ctx, doc, result.DocHash, opts)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	result.Systems = systems
	result.Stats.ResolveTime = time.Since(resolveStart)
	result.CacheInfo.ResolveHit = resolveHit
	for _, res := range systems {
		result.Stats.UnresolvedCollisions += len(res.UnresolvedCollisions)
	}

	opts.Logger.Info("resolved systems",
		"systems", len(systems),
		"unresolved_collisions", result.Stats.UnresolvedCollisions,
		"cached", resolveHit,
		"duration", result.Stats.ResolveTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, result.DocHash, systems, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the document named by opts (file path or inline), validates it,
// and applies any debug override.
func (r *Runner) Load(ctx context.Context, opts Options) (document.Document, error) {
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLoadStart(ctx, opts.source())

	doc := opts.Document
	var err error
	if opts.Path != "" {
		doc, err = document.ReadFile(opts.Path)
	}
	if err == nil {
		err = document.Validate(doc)
	}

	if err != nil {
		hooks.OnLoadComplete(ctx, opts.source(), 0, time.Since(start), err)
		return document.Document{}, err
	}

	if opts.Debug != nil {
		for i := range doc.Systems {
			debug := *opts.Debug
			doc.Systems[i].Debug = &debug
		}
	}

	hooks.OnLoadComplete(ctx, opts.source(), len(doc.Systems), time.Since(start), nil)
	return doc, nil
}

// ResolveWithCacheInfo resolves every system with caching and returns cache
// hit info. The docHash must be the hash of the document's canonical bytes.
func (r *Runner) ResolveWithCacheInfo(ctx context.Context, doc document.Document, docHash string, opts Options) ([]*layout.Result, bool, error) {
	r.applyLogger(&opts)

	cacheKey := r.Keyer.ResultKey(docHash)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached []*layout.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "result")
				return cached, true, nil
			}
			// Unreadable entry, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "result")
	}

	systems, err := document.ToSystems(doc)
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	results := make([]*layout.Result, len(systems))
	for i, sys := range systems {
		start := time.Now()
		hooks.OnResolveStart(ctx, i, len(sys.Blocks))

		res, err := sys.Resolve(layout.WithLogger(opts.Logger))
		if err != nil {
			hooks.OnResolveComplete(ctx, i, 0, time.Since(start), err)
			return nil, false, fmt.Errorf("system %d: %w", i, err)
		}

		hooks.OnResolveComplete(ctx, i, len(res.UnresolvedCollisions), time.Since(start), nil)
		results[i] = res
	}

	// Cache the result
	if data, err := json.Marshal(results); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLResult); err == nil {
			observability.Cache().OnCacheSet(ctx, "result", len(data))
		}
	}

	return results, false, nil
}

// Resolve is a convenience wrapper that computes the document hash itself and
// discards the cache hit info.
func (r *Runner) Resolve(ctx context.Context, doc document.Document, opts Options) ([]*layout.Result, error) {
	canonical, err := document.Canonical(doc)
	if err != nil {
		return nil, err
	}
	results, _, err := r.ResolveWithCacheInfo(ctx, doc, cache.Hash(canonical), opts)
	return results, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc document.Document, docHash string, results []*layout.Result, opts Options) (map[string][]byte, bool, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := r.renderFormats(ctx, doc, results, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, doc document.Document, results []*layout.Result, opts Options) (map[string][]byte, error) {
	canonical, err := document.Canonical(doc)
	if err != nil {
		return nil, err
	}
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, cache.Hash(canonical), results, opts)
	return artifacts, err
}

// renderFormats renders every requested format. SVG is built once and reused
// for the PNG and PDF conversions.
func (r *Runner) renderFormats(ctx context.Context, doc document.Document, results []*layout.Result, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	artifacts := make(map[string][]byte, len(opts.Formats))

	var svg []byte
	needSVG := func() []byte {
		if svg == nil {
			svg = render.RenderSVG(results, render.WithScale(opts.Scale))
		}
		return svg
	}

	for _, format := range opts.Formats {
		start := time.Now()
		hooks.OnRenderStart(ctx, format)

		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data = needSVG()
		case FormatPNG:
			data, err = render.ToPNG(needSVG(), DefaultPNGScale)
		case FormatPDF:
			data, err = render.ToPDF(needSVG())
		case FormatJSON:
			data, err = render.RenderJSON(results)
		case FormatDOT:
			var dots []string
			for _, sys := range doc.Systems {
				dots = append(dots, render.ToDOT(sys))
			}
			data = []byte(strings.Join(dots, "\n"))
		}

		hooks.OnRenderComplete(ctx, format, time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
