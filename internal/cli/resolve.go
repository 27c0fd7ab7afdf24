package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scorewell/engrave/pkg/document"
	"github.com/scorewell/engrave/pkg/errors"
	"github.com/scorewell/engrave/pkg/observability"
	"github.com/scorewell/engrave/pkg/pipeline"
)

// resolveCommand creates the resolve command, the main entry point of the
// CLI.
func (c *CLI) resolveCommand() *cobra.Command {
	var (
		formatsStr   string
		output       string
		noCache      bool
		cacheBackend string
		refresh      bool
		scale        float64
		drawGrid     bool
		showSpacing  bool
		outlines     bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [document]",
		Short: "Resolve a layout document and render the result",
		Long: `Resolve a layout document and render the result.

The resolve command reads a layout document (JSON or TOML), solves every
system's constraints, and writes the solved geometry in the requested
formats. Results are cached locally for faster subsequent runs.

Debug flags overlay extra geometry on the output: --draw-grid paints the
solved grid lines, --show-spacing makes spacing blocks visible, and
--outlines draws every block's padded extent.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Path:    args[0],
				Formats: parseFormats(formatsStr),
				Scale:   scale,
				Refresh: refresh,
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if drawGrid || showSpacing || outlines {
				opts.Debug = &document.Debug{
					DrawHorizontalLines: drawGrid,
					DrawVerticalLines:   drawGrid,
					ShowSpacing:         showSpacing,
					DrawBlockOutlines:   outlines,
				}
			}
			return c.runResolve(cmd.Context(), args[0], opts, output, noCache, cacheBackend)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple); '-' writes to stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&cacheBackend, "cache-backend", "", "cache backend: directory, sqlite file, memory, none, redis:// or mongodb:// URL (default file cache, env ENGRAVE_CACHE_URL)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and recompute")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "pixels per layout unit")

	// Debug flags
	cmd.Flags().BoolVar(&drawGrid, "draw-grid", false, "overlay the solved grid lines")
	cmd.Flags().BoolVar(&showSpacing, "show-spacing", false, "make spacing blocks visible")
	cmd.Flags().BoolVar(&outlines, "outlines", false, "draw every block's padded extent")

	return cmd
}

// runResolve executes the pipeline and writes the artifacts.
func (c *CLI) runResolve(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool, cacheBackend string) error {
	runner, err := c.newRunner(ctx, noCache, cacheBackend)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Resolving layout...")
	observability.SetPipelineHooks(&stageHooks{spinner: spinner})
	defer observability.Reset()
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Resolve failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if result.Stats.UnresolvedCollisions > 0 {
		printWarning("%d collisions could not be resolved", result.Stats.UnresolvedCollisions)
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.ResolveHit && result.CacheInfo.RenderHit,
		systems:   result.Stats.SystemCount,
		blocks:    result.Stats.BlockCount,
	})
}

// =============================================================================
// Stage Progress
// =============================================================================

// stageHooks drives the spinner text from pipeline events, so the status
// line names the stage that is actually running.
type stageHooks struct {
	observability.NoopPipelineHooks
	spinner *Spinner
}

func (h *stageHooks) OnLoadStart(_ context.Context, source string) {
	h.spinner.SetMessage(fmt.Sprintf("Loading %s...", source))
}

func (h *stageHooks) OnResolveStart(_ context.Context, system, blockCount int) {
	h.spinner.SetMessage(fmt.Sprintf("Resolving system %d (%d blocks)...", system, blockCount))
}

func (h *stageHooks) OnRenderStart(_ context.Context, format string) {
	h.spinner.SetMessage(fmt.Sprintf("Rendering %s...", format))
}

// =============================================================================
// Artifact Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
	systems   int
	blocks    int
}

// writeArtifacts writes every rendered format to disk (or stdout) and prints
// a summary.
func writeArtifacts(p artifactWriteParams) error {
	if p.output == "-" {
		if len(p.formats) != 1 {
			return fmt.Errorf("stdout output requires exactly one format")
		}
		_, err := os.Stdout.Write(p.artifacts[p.formats[0]])
		return err
	}

	var paths []string
	for _, format := range p.formats {
		path := artifactPath(p.output, p.input, format, len(p.formats) > 1)
		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(p.artifacts[format]); err != nil {
			out.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("close %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Resolve complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.systems, p.blocks, p.cacheHit)
	return nil
}

// artifactPath derives the output path for one format. With multiple formats
// the output acts as a base path and each format gets its own extension.
func artifactPath(output, input, format string, multi bool) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
	}
	if !multi {
		return output
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		output = strings.TrimSuffix(output, ext)
	}
	return output + "." + format
}

// openOutput opens path for writing, creating parent directories as needed.
func openOutput(path string) (io.WriteCloser, error) {
	if err := errors.ValidateOutputPath(path); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
