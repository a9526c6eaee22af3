package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile         = ".env"
	defaultHTTPAddr        = ":8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultContentDir      = "content"
	defaultDataDir         = "data"
	defaultLang            = "en"
	defaultEnvironment     = "local"
	defaultCacheTTL        = 5 * time.Minute
	defaultOTelService     = "hanko-docs"
)

var (
	defaultSupportedLangs = []string{"en", "ja"}
	defaultAPIVersions    = []string{"2022-11-28"}
)

// Config captures the runtime configuration of the docs server organised by concern.
type Config struct {
	Server        ServerConfig
	Content       ContentConfig
	Locale        LocaleConfig
	Rest          RestConfig
	Support       SupportConfig
	Site          SiteConfig
	Observability ObservabilityConfig
	// Environment names the deployment, e.g. local, staging or prod.
	Environment string
	// Dev enables the live reload helper and file watcher.
	Dev bool
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// ContentConfig locates article markdown and data files.
type ContentConfig struct {
	Dir      string
	DataDir  string
	CacheTTL time.Duration
}

// LocaleConfig lists the languages served.
type LocaleConfig struct {
	DefaultLang    string
	SupportedLangs []string
}

// RestConfig lists the REST API versions documented. The first entry is the default.
type RestConfig struct {
	APIVersions []string
}

// DefaultAPIVersion returns the version used when a request names none or an unknown one.
func (c RestConfig) DefaultAPIVersion() string {
	if len(c.APIVersions) == 0 {
		return ""
	}
	return c.APIVersions[0]
}

// SupportConfig configures the support portal virtual assistant iframe.
type SupportConfig struct {
	PortalURL string
}

// SiteConfig describes the public origin used for canonical and alternate links.
type SiteConfig struct {
	// BaseURL is the scheme and host without a trailing slash. Empty keeps links relative.
	BaseURL string
}

// ObservabilityConfig names the service in traces and logs.
type ObservabilityConfig struct {
	ServiceName string
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides, environment
// variables and the explicit map, in increasing precedence.
func Load(ctx context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if err := ctx.Err(); err != nil {
		return Config{}, err
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	cfg := Config{
		Server: ServerConfig{
			Addr:            stringWithDefault(lookup, "DOCS_HTTP_ADDR", defaultHTTPAddr),
			ReadTimeout:     durationWithDefault(lookup, "DOCS_HTTP_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    durationWithDefault(lookup, "DOCS_HTTP_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     durationWithDefault(lookup, "DOCS_HTTP_IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout: durationWithDefault(lookup, "DOCS_HTTP_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		},
		Content: ContentConfig{
			Dir:      stringWithDefault(lookup, "DOCS_CONTENT_DIR", defaultContentDir),
			DataDir:  stringWithDefault(lookup, "DOCS_DATA_DIR", defaultDataDir),
			CacheTTL: durationWithDefault(lookup, "DOCS_CACHE_TTL", defaultCacheTTL),
		},
		Locale: LocaleConfig{
			DefaultLang:    strings.ToLower(stringWithDefault(lookup, "DOCS_DEFAULT_LANG", defaultLang)),
			SupportedLangs: lowerAll(csvWithDefault(lookup, "DOCS_SUPPORTED_LANGS", defaultSupportedLangs)),
		},
		Rest: RestConfig{
			APIVersions: csvWithDefault(lookup, "DOCS_REST_API_VERSIONS", defaultAPIVersions),
		},
		Support: SupportConfig{
			PortalURL: stringWithDefault(lookup, "DOCS_SUPPORT_PORTAL_URL", ""),
		},
		Site: SiteConfig{
			BaseURL: strings.TrimRight(stringWithDefault(lookup, "DOCS_BASE_URL", ""), "/"),
		},
		Observability: ObservabilityConfig{
			ServiceName: stringWithDefault(lookup, "DOCS_OTEL_SERVICE", defaultOTelService),
		},
		Environment: strings.ToLower(stringWithDefault(lookup, "DOCS_ENVIRONMENT", defaultEnvironment)),
		Dev:         boolWithDefault(lookup, "DOCS_DEV", false),
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		missing = append(missing, "Server.Addr")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		missing = append(missing, "Server.ShutdownTimeout")
	}
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		missing = append(missing, "Content.Dir")
	}
	if cfg.Content.CacheTTL <= 0 {
		missing = append(missing, "Content.CacheTTL")
	}
	if !contains(cfg.Locale.SupportedLangs, cfg.Locale.DefaultLang) {
		missing = append(missing, "Locale.DefaultLang")
	}
	if len(cfg.Rest.APIVersions) == 0 {
		missing = append(missing, "Rest.APIVersions")
	}
	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return parsed
		}
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "yes", "on":
			return true
		case "no", "off":
			return false
		}
	}
	return fallback
}

func csvWithDefault(lookup func(string) (string, bool), key string, fallback []string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return append([]string(nil), fallback...)
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func lowerAll(values []string) []string {
	for i, v := range values {
		values[i] = strings.ToLower(v)
	}
	return values
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
