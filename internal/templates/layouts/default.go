package layouts

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"finitefield.org/hanko-docs/internal/seo"
	"finitefield.org/hanko-docs/internal/templates/helpers"
)

// StaticPrefix is where embedded assets are served from.
const StaticPrefix = "/public/static/"

// Chrome carries the page-level facts shared by every document.
type Chrome struct {
	Lang        string
	Title       string
	Description string
	// RequestPath is the path the page was requested at, used for the language switcher.
	RequestPath    string
	SupportedLangs []string
	Environment    string
	Translator     helpers.Translator
	// DefaultAPIVersion is handed to the REST redirect helper.
	DefaultAPIVersion string
	// SEO is nil for pages that should not be indexed, such as the not found page.
	SEO *seo.Meta
}

// Default wraps body in the html document with header and footer.
func Default(chrome Chrome, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := helpers.NewWriter(out)
		siteName := helpers.T(chrome.Translator, "header", "site_name")

		w.Raw("<!DOCTYPE html><html")
		w.Attr("lang", firstNonEmpty(chrome.Lang, "en"))
		w.Raw(` data-color-mode="auto"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.Raw("<title>")
		w.Text(documentTitle(chrome.Title, siteName))
		w.Raw("</title>")
		if desc := strings.TrimSpace(chrome.Description); desc != "" {
			w.Raw(`<meta name="description"`)
			w.Attr("content", desc)
			w.Raw(">")
		}
		if chrome.Environment != "" {
			w.Raw(`<meta name="environment"`)
			w.Attr("content", chrome.Environment)
			w.Raw(">")
		}
		renderSEO(w, chrome.SEO)
		w.Raw(`<link rel="stylesheet" href="` + StaticPrefix + `docs.css">`)
		w.Raw(`<link rel="stylesheet" href="` + StaticPrefix + `highlight.css">`)
		w.Raw("</head><body>")

		w.Raw(`<header class="site-header border-bottom px-3 px-md-6 py-3 d-flex flex-items-center flex-justify-between">`)
		w.Raw(`<a class="site-name f4 text-bold"`)
		w.URLAttr("href", "/"+firstNonEmpty(chrome.Lang, "en"))
		w.Raw(">")
		w.Text(siteName)
		w.Raw("</a>")
		renderLangSwitcher(w, chrome)
		w.Raw("</header>")

		w.Raw(`<main id="main-content">`)
		w.Component(ctx, body)
		w.Raw("</main>")

		w.Raw(`<footer class="site-footer border-top px-3 px-md-6 py-4 f6 color-fg-muted">`)
		w.Text(siteName)
		w.Raw("</footer></body></html>")
		return w.Err()
	})
}

func renderLangSwitcher(w *helpers.Writer, chrome Chrome) {
	if len(chrome.SupportedLangs) < 2 {
		return
	}
	w.Raw(`<nav class="lang-switcher" data-testid="language-picker"><ul class="list-style-none d-flex">`)
	for _, lang := range chrome.SupportedLangs {
		w.Raw(`<li class="ml-2">`)
		if lang == chrome.Lang {
			w.Raw(`<span aria-current="true" class="text-bold">`)
			w.Text(lang)
			w.Raw("</span>")
		} else {
			w.Raw("<a")
			w.URLAttr("href", helpers.SwitchLang(chrome.RequestPath, lang, chrome.SupportedLangs))
			w.Attr("hreflang", lang)
			w.Raw(">")
			w.Text(lang)
			w.Raw("</a>")
		}
		w.Raw("</li>")
	}
	w.Raw("</ul></nav>")
}

func renderSEO(w *helpers.Writer, meta *seo.Meta) {
	if meta == nil {
		w.Raw(`<meta name="robots" content="noindex">`)
		return
	}
	if meta.Canonical != "" {
		w.Raw(`<link rel="canonical"`)
		w.URLAttr("href", meta.Canonical)
		w.Raw(">")
	}
	for _, alt := range meta.Alternates {
		w.Raw(`<link rel="alternate"`)
		w.Attr("hreflang", alt.Lang)
		w.URLAttr("href", alt.Href)
		w.Raw(">")
	}
	og := [][2]string{
		{"og:title", meta.OG.Title},
		{"og:description", meta.OG.Description},
		{"og:type", meta.OG.Type},
		{"og:url", meta.OG.URL},
		{"og:locale", meta.OG.Locale},
	}
	for _, pair := range og {
		if pair[1] == "" {
			continue
		}
		w.Raw(`<meta`)
		w.Attr("property", pair[0])
		w.Attr("content", pair[1])
		w.Raw(">")
	}
	for _, doc := range meta.JSONLD {
		w.Raw(`<script type="application/ld+json">`)
		w.Raw(doc)
		w.Raw("</script>")
	}
}

func documentTitle(title, siteName string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return siteName
	}
	return title + " - " + siteName
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
