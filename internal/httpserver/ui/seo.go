package ui

import (
	"net/http"

	"finitefield.org/hanko-docs/internal/article"
	"finitefield.org/hanko-docs/internal/seo"
	"finitefield.org/hanko-docs/internal/templates/helpers"
)

// pageMeta derives canonical, hreflang and JSON-LD metadata for an article.
func (h *Handlers) pageMeta(r *http.Request, lang, description string, snap article.Snapshot) *seo.Meta {
	supported := h.bundle.Supported()

	translations := make([]seo.Alternate, 0, len(supported))
	for _, l := range supported {
		translations = append(translations, seo.Alternate{Lang: l, Href: helpers.SwitchLang(r.URL.Path, l, supported)})
	}
	crumbs := make([]seo.BreadcrumbItem, 0, len(snap.Breadcrumbs))
	for _, c := range snap.Breadcrumbs {
		crumbs = append(crumbs, seo.BreadcrumbItem{Name: c.Label, Item: c.Href})
	}

	page := seo.Page{
		BaseURL:      h.baseURL,
		Lang:         lang,
		DefaultLang:  h.bundle.Fallback(),
		Path:         r.URL.Path,
		Title:        snap.Title,
		Description:  description,
		Translations: translations,
		Crumbs:       crumbs,
	}
	if snap.EffectiveDate != "" {
		if stamp := article.ParseEffectiveDate(snap.EffectiveDate); stamp.Valid {
			page.DateModified = stamp.DateTime
		}
	}
	meta := seo.ForPage(page)
	return &meta
}
