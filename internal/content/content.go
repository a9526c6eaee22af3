package content

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"finitefield.org/hanko-docs/internal/article"
	"finitefield.org/hanko-docs/internal/observability"
)

// ErrNotFound is returned when no article exists for a path.
var ErrNotFound = errors.New("content: not found")

const (
	defaultLang     = "en"
	defaultCacheTTL = 5 * time.Minute
)

// Page is a rendered article with its front matter resolved.
type Page struct {
	Lang string
	// Path is the article path below the language root, without slashes at either end.
	Path string

	Title               string
	Intro               template.HTML
	Permissions         template.HTML
	Product             template.HTML
	ProductVideoURL     string
	EffectiveDate       string
	Layout              article.Layout
	SupportPortalVaFlow string

	Body         template.HTML
	MiniTocItems []article.MiniTocItem

	Platforms       []string
	DefaultPlatform string
	Tools           []string
	DefaultTool     string
}

type frontMatter struct {
	Title               string `yaml:"title"`
	Intro               string `yaml:"intro"`
	Permissions         string `yaml:"permissions"`
	Product             string `yaml:"product"`
	ProductVideoURL     string `yaml:"product_video_url"`
	EffectiveDate       string `yaml:"effective_date"`
	Layout              string `yaml:"layout"`
	SupportPortalVaFlow string `yaml:"support_portal_va_flow"`
	DefaultPlatform     string `yaml:"default_platform"`
	DefaultTool         string `yaml:"default_tool"`
}

// Options configures a Store.
type Options struct {
	// DefaultLang is served when an article is missing in the requested language.
	DefaultLang string
	CacheTTL    time.Duration
	Renderer    *Renderer
	// Meter records cache and load metrics. The global meter provider is used when nil.
	Meter metric.Meter
}

// Store loads articles from <lang>/<path>.md or <lang>/<path>/index.md files.
type Store struct {
	fsys        fs.FS
	defaultLang string
	ttl         time.Duration
	renderer    *Renderer
	now         func() time.Time
	metrics     storeMetrics

	mu    sync.RWMutex
	items map[string]cacheEntry
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// NewStore constructs a Store reading from fsys.
func NewStore(fsys fs.FS, opts Options) *Store {
	lang := strings.ToLower(strings.TrimSpace(opts.DefaultLang))
	if lang == "" {
		lang = defaultLang
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = NewRenderer()
	}
	return &Store{
		fsys:        fsys,
		defaultLang: lang,
		ttl:         ttl,
		renderer:    renderer,
		now:         time.Now,
		metrics:     newStoreMetrics(opts.Meter),
		items:       map[string]cacheEntry{},
	}
}

// Get returns the article at articlePath in lang, falling back to the default language.
func (s *Store) Get(ctx context.Context, lang, articlePath string) (Page, error) {
	clean, ok := sanitizePath(articlePath)
	if !ok {
		return Page{}, fmt.Errorf("%w: %q", ErrNotFound, articlePath)
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = s.defaultLang
	}

	cacheKey := lang + "|" + clean
	if page, ok := s.cached(cacheKey); ok {
		s.metrics.recordLookup(ctx, true)
		return page, nil
	}
	s.metrics.recordLookup(ctx, false)
	start := time.Now()

	candidates := []string{lang}
	if lang != s.defaultLang {
		candidates = append(candidates, s.defaultLang)
	}
	for _, candidate := range candidates {
		page, err := s.load(candidate, clean)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			s.metrics.recordLoad(ctx, lang, time.Since(start), "error")
			return Page{}, err
		}
		s.metrics.recordLoad(ctx, lang, time.Since(start), "found")
		if candidate != lang {
			observability.FromContext(ctx).Debug("content served from default language",
				zap.String("requested_lang", lang),
				zap.String("path", clean),
			)
		}
		s.store(cacheKey, page)
		return clonePage(page), nil
	}
	s.metrics.recordLoad(ctx, lang, time.Since(start), "not_found")
	return Page{}, fmt.Errorf("%w: %s/%s", ErrNotFound, lang, clean)
}

// Title returns the title of the article at articlePath, if there is one.
func (s *Store) Title(ctx context.Context, lang, articlePath string) (string, bool) {
	page, err := s.Get(ctx, lang, articlePath)
	if err != nil {
		return "", false
	}
	return page.Title, true
}

// Purge drops every cached article.
func (s *Store) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = map[string]cacheEntry{}
}

func (s *Store) load(lang, articlePath string) (Page, error) {
	file, data, err := s.readArticle(lang, articlePath)
	if err != nil {
		return Page{}, err
	}

	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}

	doc, err := s.renderer.Render([]byte(body))
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", file, err)
	}
	intro, err := s.renderer.RenderFragment(front.Intro)
	if err != nil {
		return Page{}, fmt.Errorf("%s intro: %w", file, err)
	}
	permissions, err := s.renderer.RenderFragment(front.Permissions)
	if err != nil {
		return Page{}, fmt.Errorf("%s permissions: %w", file, err)
	}
	product, err := s.renderer.RenderFragment(front.Product)
	if err != nil {
		return Page{}, fmt.Errorf("%s product: %w", file, err)
	}
	variants, err := DetectVariants(string(doc.HTML))
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", file, err)
	}

	page := Page{
		Lang:                lang,
		Path:                articlePath,
		Title:               strings.TrimSpace(front.Title),
		Intro:               intro,
		Permissions:         permissions,
		Product:             product,
		ProductVideoURL:     strings.TrimSpace(front.ProductVideoURL),
		EffectiveDate:       strings.TrimSpace(front.EffectiveDate),
		Layout:              article.Layout(strings.TrimSpace(front.Layout)),
		SupportPortalVaFlow: strings.TrimSpace(front.SupportPortalVaFlow),
		Body:                doc.HTML,
		MiniTocItems:        doc.TOC,
		Platforms:           variants.Platforms,
		DefaultPlatform:     pickDefault(front.DefaultPlatform, variants.Platforms),
		Tools:               variants.Tools,
		DefaultTool:         pickDefault(front.DefaultTool, variants.Tools),
	}
	if page.Title == "" {
		page.Title = prettifySlug(path.Base("/" + articlePath))
	}
	return page, nil
}

func (s *Store) readArticle(lang, articlePath string) (string, []byte, error) {
	var candidates []string
	if articlePath == "" {
		candidates = []string{path.Join(lang, "index.md")}
	} else {
		candidates = []string{
			path.Join(lang, articlePath+".md"),
			path.Join(lang, articlePath, "index.md"),
		}
	}
	for _, file := range candidates {
		data, err := fs.ReadFile(s.fsys, file)
		if err == nil {
			return file, data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return file, nil, fmt.Errorf("content: read %s: %w", file, err)
		}
	}
	return "", nil, ErrNotFound
}

func (s *Store) cached(key string) (Page, bool) {
	now := s.now()
	s.mu.RLock()
	entry, ok := s.items[key]
	s.mu.RUnlock()
	if !ok || now.After(entry.expires) {
		return Page{}, false
	}
	return clonePage(entry.page), true
}

func (s *Store) store(key string, page Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = cacheEntry{
		page:    clonePage(page),
		expires: s.now().Add(s.ttl),
	}
}

func clonePage(src Page) Page {
	cp := src
	if src.MiniTocItems != nil {
		cp.MiniTocItems = cloneToc(src.MiniTocItems)
	}
	if src.Platforms != nil {
		cp.Platforms = append([]string(nil), src.Platforms...)
	}
	if src.Tools != nil {
		cp.Tools = append([]string(nil), src.Tools...)
	}
	return cp
}

func cloneToc(items []article.MiniTocItem) []article.MiniTocItem {
	out := make([]article.MiniTocItem, len(items))
	for i, item := range items {
		out[i] = item
		if item.Items != nil {
			out[i].Items = cloneToc(item.Items)
		}
	}
	return out
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimPrefix(input, "\ufeff")
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n")
		}
	}
	return "", input
}

// sanitizePath normalises an article path and rejects traversal.
func sanitizePath(p string) (string, bool) {
	p = strings.TrimSpace(p)
	if strings.Contains(p, "\\") || strings.Contains(p, "\x00") {
		return "", false
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", false
		}
	}
	clean := strings.Trim(path.Clean("/"+p), "/")
	if clean == "." {
		clean = ""
	}
	return clean, true
}

func prettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" || slug == "/" {
		return ""
	}
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
