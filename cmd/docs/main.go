package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"finitefield.org/hanko-docs/internal/config"
	"finitefield.org/hanko-docs/internal/content"
	"finitefield.org/hanko-docs/internal/devrefresh"
	"finitefield.org/hanko-docs/internal/httpserver"
	"finitefield.org/hanko-docs/internal/httpserver/ui"
	"finitefield.org/hanko-docs/internal/i18n"
	"finitefield.org/hanko-docs/internal/learningtrack"
	"finitefield.org/hanko-docs/internal/observability"
	"finitefield.org/hanko-docs/locales"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", verr)
		} else {
			fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		}
		os.Exit(1)
	}

	baseLogger, err := observability.NewLogger(cfg.Dev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named(cfg.Observability.ServiceName).With(zap.String("environment", cfg.Environment))
	ctx = observability.WithLogger(ctx, logger)
	observability.InstallPropagator()

	bundle, err := i18n.Load(locales.FS, cfg.Locale.DefaultLang, cfg.Locale.SupportedLangs)
	if err != nil {
		logger.Fatal("failed to load locales", zap.Error(err))
	}

	store := content.NewStore(os.DirFS(cfg.Content.Dir), content.Options{
		DefaultLang: cfg.Locale.DefaultLang,
		CacheTTL:    cfg.Content.CacheTTL,
	})

	tracks, err := learningtrack.Load(os.DirFS(cfg.Content.DataDir))
	if err != nil {
		logger.Fatal("failed to load learning tracks", zap.Error(err))
	}

	serverCfg := httpserver.Config{
		Address:      cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		Logger:       logger,
		Environment:  cfg.Environment,
		UI: ui.Dependencies{
			Store:            store,
			Tracks:           tracks,
			Bundle:           bundle,
			Dev:              cfg.Dev,
			APIVersions:      cfg.Rest.APIVersions,
			SupportPortalURL: cfg.Support.PortalURL,
			BaseURL:          cfg.Site.BaseURL,
		},
	}

	var watcher *devrefresh.Watcher
	if cfg.Dev {
		hub := devrefresh.NewHub()
		defer hub.Close()
		serverCfg.Refresh = hub

		watcher, err = devrefresh.NewWatcher(devrefresh.Options{
			Dirs:   []string{cfg.Content.Dir, filepath.Join(cfg.Content.DataDir, learningtrack.Dir)},
			Purger: store,
			Hub:    hub,
			Logger: logger.Named("devrefresh"),
		})
		if err != nil {
			logger.Fatal("failed to start content watcher", zap.Error(err))
		}
		go watcher.Run(ctx)
	}

	srv, err := httpserver.New(serverCfg)
	if err != nil {
		logger.Fatal("failed to build http server", zap.Error(err))
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	logger.Info("docs server listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("content_dir", cfg.Content.Dir),
		zap.Strings("languages", bundle.Supported()),
		zap.Strings("track_products", tracks.Products()),
		zap.String("default_api_version", cfg.Rest.DefaultAPIVersion()),
		zap.Bool("dev", cfg.Dev),
	)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	if watcher != nil {
		<-watcher.Done()
	}
	logger.Info("docs server stopped")
}
