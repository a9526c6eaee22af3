// Package article renders an article RenderPlan into HTML.
package article

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	docarticle "finitefield.org/hanko-docs/internal/article"
	"finitefield.org/hanko-docs/internal/templates/helpers"
	"finitefield.org/hanko-docs/internal/templates/layouts"
)

const containerClass = "container-xl px-3 px-md-6 my-4"

// Page renders plan inside the default document layout.
func Page(plan docarticle.RenderPlan, chrome layouts.Chrome) templ.Component {
	return layouts.Default(chrome, Body(plan, chrome))
}

// Body renders the helpers and the chosen layout without the document chrome.
func Body(plan docarticle.RenderPlan, chrome layouts.Chrome) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := helpers.NewWriter(out)
		renderSlot(w, chrome, plan.Helpers)
		switch l := plan.Layout.(type) {
		case docarticle.InlineLayout:
			renderInline(w, chrome, l)
		case docarticle.GridLayout:
			renderGrid(w, chrome, l)
		}
		return w.Err()
	})
}

func renderInline(w *helpers.Writer, chrome layouts.Chrome, l docarticle.InlineLayout) {
	w.Raw(`<div class="` + containerClass + `" data-layout="inline">`)
	slotDiv(w, chrome, "breadcrumbs", "mb-3", l.Breadcrumbs)
	w.Raw(`<article class="article-inline">`)
	slotDiv(w, chrome, "topper", "", l.Topper)
	slotDiv(w, chrome, "intro", "", l.Intro)
	slotDiv(w, chrome, "intro-callouts", "", l.IntroCallouts)
	renderSupportPortal(w, chrome, l.SupportPortal)
	slotDiv(w, chrome, "toc", "", l.TOC)
	slotDiv(w, chrome, "body", "", l.Contents)
	w.Raw("</article></div>")
}

func renderGrid(w *helpers.Writer, chrome layouts.Chrome, l docarticle.GridLayout) {
	w.Raw(`<div class="` + containerClass + `" data-layout="default">`)
	slotDiv(w, chrome, "breadcrumbs", "d-none d-xxl-block mt-3 mr-auto width-full", l.Breadcrumbs)
	w.Raw(`<div class="article-grid-container">`)
	slotDiv(w, chrome, "topper", "article-grid-topper", l.Topper)
	slotDiv(w, chrome, "intro", "article-grid-intro", l.Intro)
	renderSupportPortal(w, chrome, l.SupportPortal)
	slotDiv(w, chrome, "toc", "article-grid-toc", l.TOC)
	slotDiv(w, chrome, "body", "article-grid-body", l.Contents)
	w.Raw("</div>")
	slotDiv(w, chrome, "track-nav", "mt-4", l.TrackNav)
	w.Raw("</div>")
}

// slotDiv wraps a non-empty slot. Empty slots render nothing.
func slotDiv(w *helpers.Writer, chrome layouts.Chrome, name, class string, slot docarticle.Slot) {
	if len(slot) == 0 {
		return
	}
	w.Raw("<div")
	if class != "" {
		w.Attr("class", class)
	}
	w.Attr("data-slot", name)
	w.Raw(">")
	renderSlot(w, chrome, slot)
	w.Raw("</div>")
}

func renderSupportPortal(w *helpers.Writer, chrome layouts.Chrome, props *docarticle.SupportPortalVaIframeProps) {
	if props == nil || props.SupportPortalURL == "" || props.VaFlowURLParameter == "" {
		return
	}
	src := props.SupportPortalURL
	sep := "?"
	if strings.Contains(src, "?") {
		sep = "&"
	}
	src += sep + "va_flow=" + url.QueryEscape(props.VaFlowURLParameter)

	w.Raw(`<div class="support-portal-va mb-4" data-testid="support-portal-va"><iframe loading="lazy" width="100%" height="480"`)
	w.Attr("title", helpers.T(chrome.Translator, "support", "virtual_assistant"))
	w.URLAttr("src", src)
	w.Raw("></iframe></div>")
}

// NotFound renders the 404 page body inside the document layout.
func NotFound(chrome layouts.Chrome) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := helpers.NewWriter(out)
		w.Raw(`<div class="` + containerClass + `" data-testid="not-found"><h1>`)
		w.Text(helpers.T(chrome.Translator, "pages", "not_found_title"))
		w.Raw(`</h1><p class="f3 color-fg-muted">`)
		w.Text(helpers.T(chrome.Translator, "pages", "not_found_body"))
		w.Raw("</p></div>")
		return w.Err()
	})
	return layouts.Default(chrome, body)
}
