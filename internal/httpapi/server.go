// Package httpapi exposes the engine over a local HTTP API so producers can
// post notifications and alerts and clients can drive the tray.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cristianoliveira/alertdeck/internal/config"
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/engine"
	"github.com/cristianoliveira/alertdeck/internal/logging"
	"github.com/cristianoliveira/alertdeck/internal/query"
	"github.com/cristianoliveira/alertdeck/internal/settings"
)

// Engine is the part of the engine the API drives.
type Engine interface {
	AddNotification(ctx context.Context, in domain.NotificationInput) (string, error)
	AddAlert(ctx context.Context, in domain.AlertInput) (string, error)
	Query(q query.Query) query.Result
	Get(id string) (domain.Notification, error)
	UnreadCount() int
	MarkAsRead(id string)
	MarkAllAsRead() int
	Dismiss(id string) error
	Remove(id string)
	ClearAll() int
	Settings() settings.NotificationSettings
	UpdateSettings(p settings.Patch) (settings.NotificationSettings, error)
	State() engine.State
	DismissCritical(id string) error
	TakeCriticalAction(ctx context.Context, id, label string) (domain.Notification, error)
	DismissToast(id string) (bool, error)
}

// Options configure the server.
type Options struct {
	// Tokens, when non-empty, are required as a bearer token or X-API-Key
	// on every /api route.
	Tokens []string
	// AllowedOrigins for CORS. Empty allows any origin.
	AllowedOrigins []string
	Logger         logging.Logger
	Now            func() time.Time
}

// Server serves the HTTP API.
type Server struct {
	engine Engine
	opts   Options
	log    logging.Logger
}

// NewServer returns a server over e.
func NewServer(e Engine, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Server{engine: e, opts: opts, log: opts.Logger.With("component", "httpapi")}
}

// OptionsFromConfig reads http_tokens and http_cors_origins.
func OptionsFromConfig(log logging.Logger) Options {
	return Options{
		Tokens:         splitCSV(config.Get("http_tokens", "")),
		AllowedOrigins: splitCSV(config.Get("http_cors_origins", "")),
		Logger:         log,
	}
}

// Router builds the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.Handler(s.corsOptions()))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(RequireToken(s.opts.Tokens))

		r.Post("/notifications", s.handleAddNotification)
		r.Get("/notifications", s.handleList)
		r.Delete("/notifications", s.handleClearAll)
		r.Post("/notifications/read-all", s.handleMarkAllRead)
		r.Get("/notifications/{id}", s.handleGet)
		r.Delete("/notifications/{id}", s.handleRemove)
		r.Post("/notifications/{id}/read", s.handleMarkRead)
		r.Post("/notifications/{id}/dismiss", s.handleDismiss)

		r.Post("/alerts", s.handleAddAlert)
		r.Get("/unread", s.handleUnread)
		r.Get("/state", s.handleState)

		r.Post("/critical/{id}/dismiss", s.handleDismissCritical)
		r.Post("/critical/{id}/actions/{label}", s.handleCriticalAction)
		r.Delete("/toasts/{id}", s.handleDismissToast)

		r.Get("/settings", s.handleGetSettings)
		r.Patch("/settings", s.handlePatchSettings)
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http api listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("http api shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) corsOptions() cors.Options {
	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		MaxAge:         300,
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := s.opts.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", s.opts.Now().Sub(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
