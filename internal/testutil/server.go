package testutil

import (
	"io/fs"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"finitefield.org/hanko-docs/internal/content"
	"finitefield.org/hanko-docs/internal/httpserver"
	"finitefield.org/hanko-docs/internal/httpserver/ui"
	"finitefield.org/hanko-docs/internal/i18n"
	"finitefield.org/hanko-docs/internal/learningtrack"
	"finitefield.org/hanko-docs/locales"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*serverSetup)

type serverSetup struct {
	cfg     httpserver.Config
	content fs.FS
	data    fs.FS
	langs   []string
}

// WithContent replaces the fixture article tree.
func WithContent(fsys fs.FS) ServerOption {
	return func(s *serverSetup) { s.content = fsys }
}

// WithDev enables the development helpers on rendered pages.
func WithDev() ServerOption {
	return func(s *serverSetup) { s.cfg.UI.Dev = true }
}

// WithSupportPortal sets the support assistant base URL.
func WithSupportPortal(url string) ServerOption {
	return func(s *serverSetup) { s.cfg.UI.SupportPortalURL = url }
}

// WithBaseURL sets the public origin used for canonical links.
func WithBaseURL(url string) ServerOption {
	return func(s *serverSetup) { s.cfg.UI.BaseURL = url }
}

// WithAPIVersions overrides the documented REST API versions.
func WithAPIVersions(versions ...string) ServerOption {
	return func(s *serverSetup) { s.cfg.UI.APIVersions = versions }
}

// WithLanguages overrides the supported languages; en stays the fallback.
func WithLanguages(langs ...string) ServerOption {
	return func(s *serverSetup) { s.langs = langs }
}

// NewServer constructs an httptest server running the docs HTTP stack over fixture content.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	setup := serverSetup{
		cfg: httpserver.Config{
			Address:     ":0",
			Logger:      zap.NewNop(),
			Environment: "test",
			UI: ui.Dependencies{
				APIVersions: []string{"2022-11-28", "2026-03-10"},
			},
		},
		content: ContentFS(),
		data:    DataFS(),
		langs:   []string{"en", "ja"},
	}
	for _, opt := range opts {
		opt(&setup)
	}

	bundle, err := i18n.Load(locales.FS, "en", setup.langs)
	if err != nil {
		t.Fatalf("load locales: %v", err)
	}
	setup.cfg.UI.Bundle = bundle

	tracks, err := learningtrack.Load(setup.data)
	if err != nil {
		t.Fatalf("load learning tracks: %v", err)
	}
	setup.cfg.UI.Store = content.NewStore(setup.content, content.Options{DefaultLang: "en"})
	setup.cfg.UI.Tracks = tracks

	srv, err := httpserver.New(setup.cfg)
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}
