package article

import (
	docarticle "finitefield.org/hanko-docs/internal/article"
	"finitefield.org/hanko-docs/internal/nav"
	"finitefield.org/hanko-docs/internal/templates/helpers"
	"finitefield.org/hanko-docs/internal/templates/layouts"
)

const externalLinkIcon = `<path d="M3.75 2h3.5a.75.75 0 0 1 0 1.5h-3.5a.25.25 0 0 0-.25.25v8.5c0 .138.112.25.25.25h8.5a.25.25 0 0 0 .25-.25v-3.5a.75.75 0 0 1 1.5 0v3.5A1.75 1.75 0 0 1 12.25 14h-8.5A1.75 1.75 0 0 1 2 12.25v-8.5C2 2.784 2.784 2 3.75 2Zm6.854-1h4.146a.25.25 0 0 1 .25.25v4.146a.25.25 0 0 1-.427.177L13.03 4.03 9.28 7.78a.751.751 0 0 1-1.042-.018.751.751 0 0 1-.018-1.042l3.75-3.75-1.543-1.543A.25.25 0 0 1 10.604 1Z"></path>`

// renderBlock maps one planned block to markup. It makes no layout decisions.
func renderBlock(w *helpers.Writer, chrome layouts.Chrome, block docarticle.Block) {
	switch b := block.(type) {
	case docarticle.Title:
		w.Raw(`<div class="d-flex flex-items-baseline flex-justify-between"><h1 id="title-h1" class="border-bottom-0">`)
		w.Text(b.Text)
		w.Raw("</h1></div>")
	case docarticle.Lead:
		// _page-intro is read by the link preview cards; keep the class name stable.
		w.Raw(`<div class="lead-mktg color-fg-muted f3 mb-3 _page-intro" data-testid="lead" data-search="lead">`)
		w.Raw(string(b.HTML))
		w.Raw("</div>")
	case docarticle.Permissions:
		w.Raw(`<div class="permissions-statement d-flex mb-4 pl-3 border-left" data-testid="permissions-statement">`)
		w.Raw(string(b.HTML))
		w.Raw("</div>")
	case docarticle.PlatformPicker:
		renderPicker(w, chrome, "platform", "platform_label", b.Options, b.Default)
	case docarticle.ToolPicker:
		renderPicker(w, chrome, "tool", "tool_label", b.Options, b.Default)
	case docarticle.ProductAlert:
		w.Raw(`<div class="flash flash-warn mb-4" role="note" data-testid="product-alert">`)
		w.Raw(string(b.HTML))
		w.Raw("</div>")
	case docarticle.LearningTrackCard:
		renderTrackCard(w, chrome, b.Track)
	case docarticle.MiniToc:
		w.Raw(`<nav class="mini-toc mb-4" data-testid="minitoc"`)
		w.Attr("aria-labelledby", "in-this-article")
		w.Raw(`><h2 id="in-this-article" class="h5 mb-1">`)
		w.Text(helpers.T(chrome.Translator, "pages", "contents"))
		w.Raw("</h2>")
		renderTocItems(w, b.Items)
		w.Raw("</nav>")
	case docarticle.Breadcrumbs:
		renderBreadcrumbs(w, chrome, b.Crumbs)
	case docarticle.ArticleContents:
		renderContents(w, chrome, b)
	case docarticle.LearningTrackNav:
		renderTrackNav(w, chrome, b.Track)
	case docarticle.LinkPreviewPopover:
		w.Raw(`<div id="link-preview-popover" data-link-preview-popover hidden></div>`)
		w.Raw(`<script type="module" src="` + layouts.StaticPrefix + `link-preview.js"></script>`)
	case docarticle.ClientSideRefresh:
		w.Raw(`<script type="module" defer data-client-side-refresh src="` + layouts.StaticPrefix + `client-side-refresh.js"></script>`)
	case docarticle.RestRedirect:
		w.Raw(`<script type="module" data-rest-redirect`)
		w.Attr("data-default-api-version", chrome.DefaultAPIVersion)
		w.Raw(` src="` + layouts.StaticPrefix + `rest-redirect.js"></script>`)
	}
}

func renderSlot(w *helpers.Writer, chrome layouts.Chrome, slot docarticle.Slot) {
	for _, block := range slot {
		renderBlock(w, chrome, block)
	}
}

func renderPicker(w *helpers.Writer, chrome layouts.Chrome, kind, labelKey string, options []string, def string) {
	w.Raw(`<nav class="tool-switcher mb-4" data-testid="` + kind + `-picker"`)
	w.Attr("aria-label", helpers.T(chrome.Translator, "picker", labelKey))
	w.Attr("data-default-"+kind, def)
	w.Raw(`><ul class="subnav-links d-flex list-style-none">`)
	for _, opt := range options {
		w.Raw(`<li><a href="#"`)
		w.Attr("data-"+kind, opt)
		selected := ""
		if opt == def {
			selected = "selected"
			w.Raw(` aria-current="page"`)
		}
		w.Attr("class", helpers.ClassNames("subnav-item", selected))
		w.Raw(">")
		w.Text(helpers.T(chrome.Translator, "picker", opt))
		w.Raw("</a></li>")
	}
	w.Raw("</ul></nav>")
}

func renderTocItems(w *helpers.Writer, items []docarticle.MiniTocItem) {
	if len(items) == 0 {
		return
	}
	w.Raw(`<ul class="list-style-none pl-0">`)
	for _, item := range items {
		w.Raw(`<li class="ml-0 mb-1">`)
		w.Raw("<a")
		w.URLAttr("href", item.Href)
		w.Raw(">")
		w.Text(item.Text)
		w.Raw("</a>")
		if len(item.Items) > 0 {
			w.Raw(`<div class="ml-3">`)
			renderTocItems(w, item.Items)
			w.Raw("</div>")
		}
		w.Raw("</li>")
	}
	w.Raw("</ul>")
}

func renderBreadcrumbs(w *helpers.Writer, chrome layouts.Chrome, crumbs []nav.Crumb) {
	if len(crumbs) == 0 {
		return
	}
	w.Raw(`<nav data-testid="breadcrumbs" class="f5 breadcrumbs"`)
	w.Attr("aria-label", helpers.T(chrome.Translator, "header", "breadcrumbs_label"))
	w.Raw(`><ol class="d-flex flex-wrap list-style-none">`)
	for i, crumb := range crumbs {
		w.Raw(`<li class="d-inline-block">`)
		if i > 0 {
			w.Raw(`<span class="color-fg-muted px-1" aria-hidden="true">/</span>`)
		}
		w.Raw("<a")
		w.URLAttr("href", crumb.Href)
		if crumb.Active {
			w.Raw(` aria-current="page" class="color-fg-muted"`)
		} else {
			w.Raw(` class="Link--primary"`)
		}
		w.Raw(">")
		w.Text(crumb.Label)
		w.Raw("</a></li>")
	}
	w.Raw("</ol></nav>")
}

func renderContents(w *helpers.Writer, chrome layouts.Chrome, b docarticle.ArticleContents) {
	w.Raw(`<div id="article-contents">`)
	if b.Video != nil {
		w.Raw(`<div class="my-2"><a id="product-video" target="_blank" rel="noopener noreferrer"`)
		w.URLAttr("href", b.Video.URL)
		w.Raw(`><svg role="img" viewBox="0 0 16 16" width="16" height="16" class="octicon octicon-link-external octicon-link mr-2"`)
		w.Attr("aria-label", helpers.T(chrome.Translator, "pages", "external_site"))
		w.Raw(">" + externalLinkIcon + "</svg>")
		w.Text(b.Video.Label)
		w.Raw("</a></div>")
	}
	w.Raw(`<div class="markdown-body">`)
	w.Raw(string(b.Body))
	w.Raw("</div>")
	if stamp := b.EffectiveDate; stamp != nil {
		w.Raw(`<div class="mt-4" id="effectiveDate">`)
		w.Text(helpers.T(chrome.Translator, "pages", "effective_as_of"))
		w.Raw(" <time")
		if stamp.Valid {
			w.Attr("datetime", stamp.DateTime)
		}
		w.Raw(">")
		w.Text(stamp.Display)
		w.Raw("</time></div>")
	}
	w.Raw("</div>")
}

func renderTrackCard(w *helpers.Writer, chrome layouts.Chrome, track docarticle.LearningTrack) {
	w.Raw(`<div class="learning-track-card border rounded-2 p-3 mb-4" data-testid="learning-track-card"`)
	w.Attr("data-track", track.TrackName)
	w.Raw(`><h2 class="h5 mb-1">`)
	w.Text(track.TrackTitle)
	w.Raw("</h2>")
	if track.TrackDescription != "" {
		w.Raw(`<p class="f5 mb-1" data-testid="learning-track-description">`)
		w.Text(track.TrackDescription)
		w.Raw("</p>")
	}
	w.Raw(`<p class="f6 color-fg-muted mb-2" data-testid="learning-track-progress">`)
	w.Text(helpers.Tf(chrome.Translator, "learning_track_nav", "guide_of", track.CurrentGuideIndex+1, track.NumberOfGuides))
	w.Raw("</p>")
	if track.NextGuide != nil {
		w.Raw(`<a class="f5" data-testid="learning-track-card-next"`)
		w.URLAttr("href", track.NextGuide.Href)
		w.Raw(">")
		w.Text(helpers.T(chrome.Translator, "learning_track_nav", "next_guide") + ": " + track.NextGuide.Title)
		w.Raw("</a>")
	}
	w.Raw("</div>")
}

func renderTrackNav(w *helpers.Writer, chrome layouts.Chrome, track docarticle.LearningTrack) {
	w.Raw(`<nav class="learning-track-nav d-flex flex-justify-between py-3 border-top" data-testid="learning-track-nav"`)
	w.Attr("aria-label", helpers.T(chrome.Translator, "learning_track_nav", "more_guides"))
	w.Raw(">")
	renderTrackLink(w, chrome, "prev", "prev_guide", track.PrevGuide)
	renderTrackLink(w, chrome, "next", "next_guide", track.NextGuide)
	w.Raw("</nav>")
}

func renderTrackLink(w *helpers.Writer, chrome layouts.Chrome, rel, labelKey string, guide *docarticle.TrackGuide) {
	if guide == nil {
		w.Raw("<span></span>")
		return
	}
	w.Raw(`<a class="d-flex flex-column"`)
	w.Attr("rel", rel)
	w.Attr("data-testid", "learning-track-"+rel)
	w.URLAttr("href", guide.Href)
	w.Raw(`><span class="f6 color-fg-muted">`)
	w.Text(helpers.T(chrome.Translator, "learning_track_nav", labelKey))
	w.Raw("</span><span>")
	w.Text(guide.Title)
	w.Raw("</span></a>")
}
