package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depmap/pkg/dag/transform"
	"github.com/matzehuels/depmap/pkg/depgraph"
	"github.com/matzehuels/depmap/pkg/observability"
	"github.com/matzehuels/depmap/pkg/pipeline"
	"github.com/matzehuels/depmap/pkg/render/nodelink"
)

// shutdownTimeout bounds graceful shutdown of `depmap serve`.
const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command that publishes the report over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dependency map over HTTP",
		Long: `Compute the dependency map once and serve it over HTTP.

Endpoints:
  GET /healthz            liveness check
  GET /report.md          markdown report
  GET /report.json        JSON report
  GET /graph.dot          internal package graph (transitively reduced)
  GET /packages/{path}    one package section as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Serve.Addr = addr
			}

			result, err := c.execute(cmd, cfg)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              cfg.Serve.Addr,
				Handler:           newReportHandler(result, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}
			printSuccess("Serving dependency map for %s", StyleHighlight.Render(result.Module))
			printKeyValue("Address", StyleLink.Render("http://"+displayAddr(cfg.Serve.Addr)+"/report.md"))
			return listenAndServe(ctx, srv, logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

// listenAndServe runs srv until ctx is done, then shuts it down gracefully.
func listenAndServe(ctx context.Context, srv *http.Server, logger *log.Logger) error {
	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

// newReportHandler routes requests for a computed pipeline result.
func newReportHandler(result *pipeline.Result, logger *log.Logger) http.Handler {
	markdown := []byte(result.Report.Markdown())
	reportJSON, _ := result.Report.JSON()

	d := result.Graph.ToDAG(depgraph.DAGOptions{})
	transform.TransitiveReduction(d)
	dot := []byte(nodelink.ToDOT(d, nodelink.Options{}))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"module":   result.Module,
			"packages": result.Graph.NodeCount(),
		})
	})
	r.Get("/report.md", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write(markdown)
	})
	r.Get("/report.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(reportJSON)
	})
	r.Get("/graph.dot", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		_, _ = w.Write(dot)
	})
	r.Get("/packages/*", func(w http.ResponseWriter, req *http.Request) {
		pkg := strings.TrimSuffix(chi.URLParam(req, "*"), "/")
		section, ok := result.Report.Section(pkg)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "package not in scope: " + pkg})
			return
		}
		writeJSON(w, http.StatusOK, section)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// requestLogger logs each request at debug level and reports it to the
// server hooks.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)
			observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", elapsed,
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}
