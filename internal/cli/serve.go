package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/scorewell/engrave/pkg/buildinfo"
	"github.com/scorewell/engrave/pkg/cache"
	apperrors "github.com/scorewell/engrave/pkg/errors"
	"github.com/scorewell/engrave/pkg/httputil"
	"github.com/scorewell/engrave/pkg/layout"
	"github.com/scorewell/engrave/pkg/pipeline"
)

// maxRequestBytes caps the size of a resolve request body.
const maxRequestBytes = 10 << 20

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr         string
		noCache      bool
		cacheBackend string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the resolve API server",
		Long: `Run the resolve API server.

The server exposes the resolve pipeline over HTTP:

  POST /v1/resolve   resolve an inline document and return the artifacts
  GET  /healthz      liveness probe with version information

Documents are sent inline as JSON; artifacts come back base64-encoded in
the response body. Resolved geometry is cached the same way the CLI
caches it, so repeated requests for the same document are fast. For
multi-instance deployments point --cache-backend at a shared redis:// or
mongodb:// server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache, cacheBackend)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&cacheBackend, "cache-backend", "", "cache backend: directory, sqlite file, memory, none, redis:// or mongodb:// URL (default file cache, env ENGRAVE_CACHE_URL)")

	return cmd
}

// newServeRunner builds the pipeline runner for the API server. API entries
// live in their own key namespace, so a backend shared with local CLI runs
// stays partitionable.
func (c *CLI) newServeRunner(ctx context.Context, noCache bool, cacheBackend string) (*pipeline.Runner, error) {
	runner, err := c.newRunner(ctx, noCache, cacheBackend)
	if err != nil {
		return nil, err
	}
	runner.Keyer = cache.NewScopedKeyer(nil, "api:")
	return runner, nil
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool, cacheBackend string) error {
	runner, err := c.newServeRunner(ctx, noCache, cacheBackend)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newAPIHandler(runner, c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	printInfo("Listening on %s", addr)
	c.Logger.Info("server started", "addr", addr, "version", buildinfo.Version)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// =============================================================================
// Router
// =============================================================================

// newAPIHandler builds the HTTP routes for the resolve API.
func newAPIHandler(runner *pipeline.Runner, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(httputil.Observe)

	r.Get("/healthz", handleHealth)
	r.Post("/v1/resolve", handleResolve(runner, logger))

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// =============================================================================
// Resolve Endpoint
// =============================================================================

// resolveResponse is the body of a successful resolve request. Artifact
// bytes are base64-encoded by the JSON encoder.
type resolveResponse struct {
	DocHash   string            `json:"doc_hash"`
	Systems   []*layout.Result  `json:"systems"`
	Artifacts map[string][]byte `json:"artifacts"`
	Stats     resolveStats      `json:"stats"`
	Cache     resolveCache      `json:"cache"`
}

type resolveStats struct {
	SystemCount          int `json:"system_count"`
	BlockCount           int `json:"block_count"`
	UnresolvedCollisions int `json:"unresolved_collisions"`
}

type resolveCache struct {
	ResolveHit bool `json:"resolve_hit"`
	RenderHit  bool `json:"render_hit"`
}

func handleResolve(runner *pipeline.Runner, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var opts pipeline.Options
		body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
		if err := json.NewDecoder(body).Decode(&opts); err != nil {
			httputil.WriteError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body"))
			return
		}

		// Requests carry the document inline; never read server-side files.
		opts.Path = ""
		opts.Logger = logger

		if err := opts.ValidateAndSetDefaults(); err != nil {
			httputil.WriteError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid options"))
			return
		}

		result, err := runner.Execute(r.Context(), opts)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}

		httputil.WriteJSON(w, http.StatusOK, resolveResponse{
			DocHash:   result.DocHash,
			Systems:   result.Systems,
			Artifacts: result.Artifacts,
			Stats: resolveStats{
				SystemCount:          result.Stats.SystemCount,
				BlockCount:           result.Stats.BlockCount,
				UnresolvedCollisions: result.Stats.UnresolvedCollisions,
			},
			Cache: resolveCache{
				ResolveHit: result.CacheInfo.ResolveHit,
				RenderHit:  result.CacheInfo.RenderHit,
			},
		})
	}
}
