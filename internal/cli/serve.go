package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	dagerrors "github.com/slavekjurkowski2/dagviz/pkg/errors"
	dagio "github.com/slavekjurkowski2/dagviz/pkg/io"
	"github.com/slavekjurkowski2/dagviz/pkg/pipeline"
)

const defaultAddr = "127.0.0.1:8480"

// contentTypes maps output formats to their Content-Type headers.
var contentTypes = map[string]string{
	"svg":  "image/svg+xml",
	"html": "text/html; charset=utf-8",
	"json": "application/json",
	"dot":  "text/vnd.graphviz",
	"png":  "image/png",
	"pdf":  "application/pdf",
}

// newServeCmd creates the serve command, which runs an HTTP rendering
// service. Clients POST a graph JSON document to /render and receive the
// rendered artifact back.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an HTTP rendering service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	return cmd
}

// runServe starts the HTTP server and blocks until ctx is cancelled,
// then shuts the server down gracefully.
func runServe(ctx context.Context, addr string) error {
	logger := loggerFromContext(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// newRouter constructs the chi router with all routes and middleware.
// The context supplies the logger passed down to the render pipeline.
func newRouter(ctx context.Context) chi.Router {
	logger := loggerFromContext(ctx)
	runner := pipeline.NewRunner(logger)

	r := chi.NewRouter()
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealth)
	r.Post("/render", handleRender(runner))
	return r
}

// requestLogger logs each request's method, path, status, and duration
// at debug level.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).Round(time.Millisecond))
		})
	}
}

// handleHealth returns a JSON health check response.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleRender renders the graph JSON in the request body. Query
// parameters select the visualization:
//
//   - type: metro (default) or nodelink
//   - format: svg (default), html, json, dot, png, pdf
//   - target: restrict the plot to this node and its ancestors
//   - ancestors: include ancestors of the target (default true)
//   - title: document title for HTML output
//
// The response carries the artifact with a format-appropriate
// Content-Type and an X-Render-Id header identifying the run.
func handleRender(runner *pipeline.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Cap request body at 4MB to prevent oversized payloads.
		r.Body = http.MaxBytesReader(w, r.Body, 4<<20)

		g, err := dagio.ReadJSON(r.Body)
		if err != nil {
			if isMaxBytesError(err) {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := g.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		opts, format, err := renderOptionsFromQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		result, err := runner.Execute(r.Context(), g, opts)
		if err != nil {
			http.Error(w, dagerrors.UserMessage(err), statusFor(err))
			return
		}

		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set("X-Render-Id", result.RenderID)
		w.WriteHeader(http.StatusOK)
		w.Write(result.Artifacts[format])
	}
}

// renderOptionsFromQuery builds pipeline options from the request query
// parameters. It returns the single requested format alongside the options.
func renderOptionsFromQuery(r *http.Request) (pipeline.Options, string, error) {
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	vizType := q.Get("type")
	if vizType == "" {
		vizType = pipeline.VizTypeMetro
	}

	includeAncestors := true
	if v := q.Get("ancestors"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return pipeline.Options{}, "", errors.New("invalid ancestors parameter: " + v)
		}
		includeAncestors = parsed
	}

	return pipeline.Options{
		VizType:          vizType,
		Formats:          []string{format},
		TargetNode:       q.Get("target"),
		IncludeAncestors: includeAncestors,
		Title:            q.Get("title"),
	}, format, nil
}

// statusFor maps pipeline error codes to HTTP status codes.
func statusFor(err error) int {
	switch dagerrors.GetCode(err) {
	case dagerrors.ErrCodeInvalidInput, dagerrors.ErrCodeInvalidGraph,
		dagerrors.ErrCodeInvalidFormat, dagerrors.ErrCodeInvalidStyle,
		dagerrors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case dagerrors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// isMaxBytesError reports whether err (or any error in its chain) is an
// *http.MaxBytesError, indicating the request body exceeded the size limit.
func isMaxBytesError(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
