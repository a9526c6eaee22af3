package httpserver

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	custommw "finitefield.org/hanko-docs/internal/httpserver/middleware"
	"finitefield.org/hanko-docs/internal/httpserver/ui"
	"finitefield.org/hanko-docs/internal/observability"
	"finitefield.org/hanko-docs/public"
)

const (
	defaultReadTimeout    = 10 * time.Second
	defaultWriteTimeout   = 30 * time.Second
	defaultIdleTimeout    = 60 * time.Second
	defaultHandlerTimeout = 30 * time.Second
)

// Config holds runtime options for the docs HTTP server.
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Logger       *zap.Logger
	Environment  string
	UI           ui.Dependencies
	// Refresh serves the live reload websocket. Left nil outside development.
	Refresh http.Handler
	// Static overrides the embedded asset tree.
	Static fs.FS
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg Config) (*http.Server, error) {
	handler, err := Router(cfg)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  durationOr(cfg.ReadTimeout, defaultReadTimeout),
		WriteTimeout: durationOr(cfg.WriteTimeout, defaultWriteTimeout),
		IdleTimeout:  durationOr(cfg.IdleTimeout, defaultIdleTimeout),
	}, nil
}

// Router builds the routing tree without binding a listener.
func Router(cfg Config) (http.Handler, error) {
	if cfg.UI.Store == nil || cfg.UI.Bundle == nil {
		return nil, fmt.Errorf("httpserver: content store and locale bundle are required")
	}
	staticContent := cfg.Static
	if staticContent == nil {
		var err error
		staticContent, err = public.StaticFS()
		if err != nil {
			return nil, fmt.Errorf("httpserver: embed static: %w", err)
		}
	}

	assets, err := custommw.StaticAssets(staticContent)
	if err != nil {
		return nil, fmt.Errorf("httpserver: %w", err)
	}
	handlers := ui.NewHandlers(cfg.UI)

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.InjectLoggerMiddleware(cfg.Logger))
	router.Use(observability.TraceMiddleware)
	router.Use(observability.RequestLoggerMiddleware)
	router.Use(observability.RecoveryMiddleware)
	router.Use(custommw.RequestInfoMiddleware)
	router.Use(custommw.Environment(cfg.Environment))
	router.Use(custommw.Locale(cfg.UI.Bundle))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/public/static/highlight.css", handlers.HighlightCSS)
	router.Handle("/public/static/*", http.StripPrefix("/public/static", assets))

	if cfg.Refresh != nil {
		router.Handle("/_dev/refresh", cfg.Refresh)
	}

	router.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(defaultHandlerTimeout))

		r.Get("/", handlers.Root)
		r.Get("/api/pageinfo", handlers.PageInfo)
		r.With(handlers.RestVersionRedirect).Get("/{lang}", handlers.Article)
		r.With(handlers.RestVersionRedirect).Get("/{lang}/*", handlers.Article)
	})
	router.NotFound(handlers.NotFound)

	return router, nil
}

func durationOr(value, fallback time.Duration) time.Duration {
	if value > 0 {
		return value
	}
	return fallback
}
