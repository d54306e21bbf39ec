// Package server serves the roadmap render view over HTTP.
//
// Each request to /roadmap/{userId} runs the controller flow against the
// roadmap service with its own in-memory handoff slot and answers with the
// diagram, or with the inline error the render view would show.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/roadtower/pkg/client"
	"github.com/matzehuels/roadtower/pkg/controller"
	"github.com/matzehuels/roadtower/pkg/errors"
	"github.com/matzehuels/roadtower/pkg/handoff"
	"github.com/matzehuels/roadtower/pkg/render/scene"
	"github.com/matzehuels/roadtower/pkg/render/sink"
)

// Response formats selected with the "format" query parameter.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatHTML = "html"
)

// DefaultRequestTimeout bounds one render request, backend calls included.
const DefaultRequestTimeout = 3 * time.Minute

// Config configures a Server.
type Config struct {
	Addr           string
	Backend        controller.Backend
	Logger         *log.Logger
	SVGOptions     []sink.SVGOption
	RequestTimeout time.Duration
}

// Server is the HTTP render view.
type Server struct {
	Addr    string
	router  *chi.Mux
	server  *http.Server
	backend controller.Backend
	logger  *log.Logger
	svgOpts []sink.SVGOption
	timeout time.Duration
}

// New creates a server. Call Run or Start to listen.
func New(cfg Config) *Server {
	s := &Server{
		Addr:    cfg.Addr,
		router:  chi.NewRouter(),
		backend: cfg.Backend,
		logger:  cfg.Logger,
		svgOpts: cfg.SVGOptions,
		timeout: cfg.RequestTimeout,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.timeout <= 0 {
		s.timeout = DefaultRequestTimeout
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(requestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.timeout))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/roadmap", s.handleRoadmap)
	s.router.Get("/roadmap/{userId}", s.handleRoadmap)
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens until the server is shut down.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run serves until ctx is cancelled, then shuts down with a grace period.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() { errc <- s.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// handleRoadmap runs the whole flow for one user. The id comes from the path
// or, for links built from a controller navigation, the user_id query
// parameter.
func (s *Server) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	format := r.URL.Query().Get("format")
	if format == "" {
		format = FormatSVG
	}
	if format != FormatSVG && format != FormatJSON && format != FormatHTML {
		s.writeError(w, r, FormatJSON, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format))
		return
	}

	userID := chi.URLParam(r, "userId")
	if userID == "" {
		userID = r.URL.Query().Get("user_id")
	}

	sc, err := s.view(ctx, userID)
	if err != nil {
		s.writeError(w, r, format, err)
		return
	}
	s.writeScene(w, format, sc)
}

// view runs entry, loading and render steps with a private slot.
func (s *Server) view(ctx context.Context, userID string) (scene.Scene, error) {
	ctrl := controller.New(s.backend, handoff.NewMemory(handoff.DefaultSlot))

	nav, err := ctrl.Submit(ctx, userID)
	if err == nil && nav.View == controller.ViewLoading {
		nav, err = ctrl.Generate(ctx, userID)
	}
	if err != nil {
		return scene.Scene{}, err
	}
	s.logger.Debug("Navigation", "view", nav.View, "path", nav.Path())
	return ctrl.View(ctx)
}

func (s *Server) writeScene(w http.ResponseWriter, format string, sc scene.Scene) {
	switch format {
	case FormatJSON:
		data, err := sink.RenderJSON(sc, sink.WithJSONDefs())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	case FormatHTML:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(htmlPage(sink.RenderSVG(sc, s.svgOpts...)))
	default:
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(sink.RenderSVG(sc, s.svgOpts...))
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError answers with the inline error in the requested format.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, format string, err error) {
	status := StatusFor(err)
	s.logger.Warn("Render failed", "path", r.URL.Path, "status", status, "err", err)

	switch format {
	case FormatJSON:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: sink.ErrorMessage(err), Code: string(errors.GetCode(err))})
	case FormatHTML:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write(htmlPage(sink.RenderErrorHTML(err)))
	default:
		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(status)
		_, _ = w.Write(sink.RenderErrorSVG(err))
	}
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeMissingInput, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNetwork, errors.ErrCodeBackend, errors.ErrCodeMalformedPayload:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func htmlPage(body []byte) []byte {
	page := make([]byte, 0, len(body)+256)
	page = append(page, `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Roadmap</title></head>
<body>
<div class="roadmap-container">
`...)
	page = append(page, body...)
	page = append(page, "</div>\n</body>\n</html>\n"...)
	return page
}

// =============================================================================
// Middleware
// =============================================================================

// requestID propagates the caller's X-Request-ID, or a fresh uuid, to the
// response and to every backend call made for the request.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(client.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(client.RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(client.WithRequestID(r.Context(), id)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start).Round(time.Millisecond),
			"id", ww.Header().Get(client.RequestIDHeader),
		)
	})
}
