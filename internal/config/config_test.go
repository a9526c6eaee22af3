package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Content.Dir != "content" || cfg.Content.DataDir != "data" {
		t.Errorf("unexpected content dirs: %+v", cfg.Content)
	}
	if cfg.Content.CacheTTL != defaultCacheTTL {
		t.Errorf("unexpected cache ttl: %s", cfg.Content.CacheTTL)
	}
	if cfg.Locale.DefaultLang != "en" {
		t.Errorf("expected default lang en, got %s", cfg.Locale.DefaultLang)
	}
	if len(cfg.Locale.SupportedLangs) != 2 {
		t.Errorf("expected default supported langs, got %v", cfg.Locale.SupportedLangs)
	}
	if cfg.Rest.DefaultAPIVersion() != "2022-11-28" {
		t.Errorf("unexpected default api version: %s", cfg.Rest.DefaultAPIVersion())
	}
	if cfg.Environment != "local" {
		t.Errorf("expected local environment, got %s", cfg.Environment)
	}
	if cfg.Dev {
		t.Error("expected dev mode off by default")
	}
	if cfg.Observability.ServiceName != "hanko-docs" {
		t.Errorf("unexpected service name: %s", cfg.Observability.ServiceName)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"DOCS_HTTP_ADDR":          "127.0.0.1:9000",
		"DOCS_HTTP_READ_TIMEOUT":  "20s",
		"DOCS_CONTENT_DIR":        "/srv/docs/content",
		"DOCS_DATA_DIR":           "/srv/docs/data",
		"DOCS_CACHE_TTL":          "30s",
		"DOCS_DEFAULT_LANG":       "JA",
		"DOCS_SUPPORTED_LANGS":    "en, JA ,",
		"DOCS_REST_API_VERSIONS":  "2024-01-01,2022-11-28",
		"DOCS_SUPPORT_PORTAL_URL": "https://support.example.com",
		"DOCS_BASE_URL":           "https://docs.hanko-field.example/",
		"DOCS_ENVIRONMENT":        "Staging",
		"DOCS_DEV":                "on",
		"DOCS_OTEL_SERVICE":       "docs-staging",
	}

	cfg, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 20*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Content.Dir != "/srv/docs/content" || cfg.Content.DataDir != "/srv/docs/data" {
		t.Errorf("unexpected content config: %+v", cfg.Content)
	}
	if cfg.Content.CacheTTL != 30*time.Second {
		t.Errorf("unexpected cache ttl: %s", cfg.Content.CacheTTL)
	}
	if cfg.Locale.DefaultLang != "ja" {
		t.Errorf("expected ja default lang, got %s", cfg.Locale.DefaultLang)
	}
	if got := cfg.Locale.SupportedLangs; len(got) != 2 || got[0] != "en" || got[1] != "ja" {
		t.Errorf("unexpected supported langs: %v", got)
	}
	if cfg.Rest.DefaultAPIVersion() != "2024-01-01" || len(cfg.Rest.APIVersions) != 2 {
		t.Errorf("unexpected api versions: %v", cfg.Rest.APIVersions)
	}
	if cfg.Support.PortalURL != "https://support.example.com" {
		t.Errorf("unexpected support portal: %s", cfg.Support.PortalURL)
	}
	if cfg.Site.BaseURL != "https://docs.hanko-field.example" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.Site.BaseURL)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected staging environment, got %s", cfg.Environment)
	}
	if !cfg.Dev {
		t.Error("expected dev mode on")
	}
	if cfg.Observability.ServiceName != "docs-staging" {
		t.Errorf("unexpected service name: %s", cfg.Observability.ServiceName)
	}
}

func TestLoadValidationError(t *testing.T) {
	env := map[string]string{
		"DOCS_DEFAULT_LANG":    "fr",
		"DOCS_SUPPORTED_LANGS": "en,ja",
		"DOCS_CACHE_TTL":       "-1s",
	}

	_, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	fields := verr.Fields()
	if len(fields) != 2 || fields[0] != "Content.CacheTTL" || fields[1] != "Locale.DefaultLang" {
		t.Errorf("unexpected invalid fields: %v", fields)
	}
}

func TestLoadFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	contents := "# local overrides\nexport DOCS_HTTP_ADDR=:7000\nDOCS_DEV=\"true\"\nDOCS_CONTENT_DIR='docs'\nnot-a-pair\n"
	if err := os.WriteFile(envFile, []byte(contents), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(context.Background(),
		WithEnvFile(envFile),
		WithoutSystemEnv(),
		WithEnvMap(map[string]string{"DOCS_CONTENT_DIR": "override"}),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Addr != ":7000" {
		t.Errorf("expected addr from .env, got %s", cfg.Server.Addr)
	}
	if !cfg.Dev {
		t.Error("expected dev mode from .env")
	}
	if cfg.Content.Dir != "override" {
		t.Errorf("expected env map to win over .env, got %s", cfg.Content.Dir)
	}
}

func TestLoadMissingDotEnvIsIgnored(t *testing.T) {
	_, err := Load(context.Background(),
		WithEnvFile(filepath.Join(t.TempDir(), "missing.env")),
		WithoutSystemEnv(),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
}

func TestLoadCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, WithoutSystemEnv(), WithEnvFile(""))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
