package ui

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"finitefield.org/hanko-docs/internal/article"
	"finitefield.org/hanko-docs/internal/content"
	"finitefield.org/hanko-docs/internal/nav"
	"finitefield.org/hanko-docs/internal/observability"
	articletpl "finitefield.org/hanko-docs/internal/templates/article"
)

// PageInfo is the hover card payload for in-page links.
type PageInfo struct {
	Title   string `json:"title"`
	Intro   string `json:"intro"`
	Product string `json:"product"`
}

// PageInfo answers /api/pageinfo?pathname=/{lang}/{path} with title, intro and product.
// The intro is read back from the rendered lead so cards show exactly what the page shows.
func (h *Handlers) PageInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	// hover cards send link hrefs, which may carry a query or fragment
	target, err := url.Parse(strings.TrimSpace(r.URL.Query().Get("pathname")))
	if err != nil || !strings.HasPrefix(target.Path, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "pathname must be an absolute path"})
		return
	}
	pathname := target.Path

	lang, articlePath := h.splitPathname(pathname)
	page, err := h.store.Get(ctx, lang, articlePath)
	if errors.Is(err, content.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	if err != nil {
		observability.FromContext(ctx).Error("pageinfo lookup failed", zap.Error(err), zap.String("pathname", pathname))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	info := PageInfo{Title: page.Title}
	crumbs := nav.Breadcrumbs(lang, page.Path, h.titleLookup(ctx, lang))
	if len(crumbs) > 0 {
		info.Product = crumbs[0].Label
	}

	plan := article.Plan(article.Snapshot{Title: page.Title, Intro: page.Intro, CurrentLayout: page.Layout}, article.Request{Path: pathname})
	var buf bytes.Buffer
	if err := articletpl.Body(plan, h.chrome(r, lang, page.Title, "")).Render(ctx, &buf); err != nil {
		observability.FromContext(ctx).Error("pageinfo render failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if doc, err := goquery.NewDocumentFromReader(&buf); err == nil {
		info.Intro = strings.Join(strings.Fields(doc.Find("._page-intro").First().Text()), " ")
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	writeJSON(w, http.StatusOK, info)
}

func (h *Handlers) splitPathname(pathname string) (string, string) {
	trimmed := strings.TrimPrefix(pathname, "/")
	first, rest, _ := strings.Cut(trimmed, "/")
	if h.bundle.IsSupported(strings.ToLower(first)) {
		return strings.ToLower(first), rest
	}
	return h.bundle.Fallback(), trimmed
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
