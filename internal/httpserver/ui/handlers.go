package ui

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"finitefield.org/hanko-docs/internal/article"
	"finitefield.org/hanko-docs/internal/content"
	custommw "finitefield.org/hanko-docs/internal/httpserver/middleware"
	"finitefield.org/hanko-docs/internal/i18n"
	"finitefield.org/hanko-docs/internal/learningtrack"
	"finitefield.org/hanko-docs/internal/observability"
	articletpl "finitefield.org/hanko-docs/internal/templates/article"
	"finitefield.org/hanko-docs/internal/templates/layouts"
)

// Dependencies collects the services required by the UI handlers.
type Dependencies struct {
	Store  *content.Store
	Tracks *learningtrack.Catalog
	Bundle *i18n.Bundle
	// Dev mounts the live reload helper on every article.
	Dev bool
	// APIVersions lists the documented REST API versions; the first is the default.
	APIVersions      []string
	SupportPortalURL string
	// BaseURL is the public origin used for canonical links. Empty keeps them relative.
	BaseURL string
}

// Handlers exposes HTTP handlers for article pages.
type Handlers struct {
	store            *content.Store
	tracks           *learningtrack.Catalog
	bundle           *i18n.Bundle
	dev              bool
	apiVersions      []string
	supportPortalURL string
	baseURL          string
}

// NewHandlers wires the UI handler set.
func NewHandlers(deps Dependencies) *Handlers {
	tracks := deps.Tracks
	if tracks == nil {
		tracks = &learningtrack.Catalog{}
	}
	return &Handlers{
		store:            deps.Store,
		tracks:           tracks,
		bundle:           deps.Bundle,
		dev:              deps.Dev,
		apiVersions:      deps.APIVersions,
		supportPortalURL: deps.SupportPortalURL,
		baseURL:          deps.BaseURL,
	}
}

// Root redirects to the reader's preferred language.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	lang := custommw.PreferredLang(r.Context(), h.bundle.Fallback())
	http.Redirect(w, r, withRequestQuery(r, "/"+lang), http.StatusFound)
}

// withRequestQuery appends the query recorded by RequestInfoMiddleware to target.
func withRequestQuery(r *http.Request, target string) string {
	info, ok := custommw.RequestInfoFromContext(r.Context())
	if !ok || info.Query == "" {
		return target
	}
	return target + "?" + info.Query
}

// Article renders /{lang} and /{lang}/*.
func (h *Handlers) Article(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	lang := strings.ToLower(chi.URLParam(r, "lang"))
	if !h.bundle.IsSupported(lang) {
		// no language prefix: serve the same path under the preferred language
		preferred := custommw.PreferredLang(ctx, h.bundle.Fallback())
		http.Redirect(w, r, withRequestQuery(r, "/"+preferred+r.URL.Path), http.StatusFound)
		return
	}
	articlePath := chi.URLParam(r, "*")

	ctx, span := observability.StartSpan(ctx, "article.render",
		attribute.String("docs.lang", lang),
		attribute.String("docs.path", articlePath),
	)
	defer span.End()

	page, err := h.store.Get(ctx, lang, articlePath)
	if errors.Is(err, content.ErrNotFound) {
		h.renderNotFound(w, r, lang)
		return
	}
	if err != nil {
		observability.RecordError(span, err)
		logger.Error("load article failed", zap.Error(err), zap.String("lang", lang), zap.String("path", articlePath))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	translator := h.bundle.Translator(lang)
	snapshot := h.snapshot(ctx, lang, page, r.URL.Query())
	plan := article.Plan(snapshot, article.Request{
		Path:       r.URL.Path,
		Dev:        h.dev,
		Translator: translator,
	})
	span.SetAttributes(attribute.String("docs.layout", string(plan.Layout.Layout())))

	chrome := h.chrome(r, lang, page.Title, string(page.Intro))
	chrome.SEO = h.pageMeta(r, lang, chrome.Description, snapshot)
	component := articletpl.Page(plan, chrome)
	templ.Handler(component).ServeHTTP(w, r)
}

// NotFound renders the 404 page in the preferred language.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderNotFound(w, r, custommw.PreferredLang(r.Context(), h.bundle.Fallback()))
}

func (h *Handlers) renderNotFound(w http.ResponseWriter, r *http.Request, lang string) {
	title := h.bundle.T(lang, "pages", "not_found_title")
	component := articletpl.NotFound(h.chrome(r, lang, title, ""))
	templ.Handler(component, templ.WithStatus(http.StatusNotFound)).ServeHTTP(w, r)
}

// HighlightCSS serves the stylesheet for highlighted code blocks.
func (h *Handlers) HighlightCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if err := content.WriteHighlightCSS(w); err != nil {
		observability.FromContext(r.Context()).Error("write highlight css failed", zap.Error(err))
	}
}

func (h *Handlers) chrome(r *http.Request, lang, title, introHTML string) layouts.Chrome {
	chrome := layouts.Chrome{
		Lang:           lang,
		Title:          title,
		Description:    plainText(introHTML),
		RequestPath:    custommw.RequestPathFromContext(r.Context()),
		SupportedLangs: h.bundle.Supported(),
		Environment:    custommw.EnvironmentFromContext(r.Context()),
		Translator:     h.bundle.Translator(lang),
	}
	if chrome.RequestPath == "" {
		chrome.RequestPath = r.URL.Path
	}
	if len(h.apiVersions) > 0 {
		chrome.DefaultAPIVersion = h.apiVersions[0]
	}
	return chrome
}

func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}
