package article_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	docarticle "finitefield.org/hanko-docs/internal/article"
	"finitefield.org/hanko-docs/internal/nav"
	tmpl "finitefield.org/hanko-docs/internal/templates/article"
	"finitefield.org/hanko-docs/internal/templates/layouts"
)

type echoTranslator struct{}

func (echoTranslator) T(namespace, key string) string {
	switch namespace + "." + key {
	case "pages.video_from_transcript":
		return "Watch the video"
	case "pages.effective_as_of":
		return "Effective as of:"
	case "pages.external_site":
		return "(external site)"
	case "learning_track_nav.guide_of":
		return "Guide %d of %d"
	}
	return key
}

func fullSnapshot() docarticle.Snapshot {
	return docarticle.Snapshot{
		Title:                           "Ordering a stamp",
		Intro:                           "<p>Pick a <em>design</em>.</p>",
		EffectiveDate:                   "2023-01-15",
		RenderedPage:                    `<h2 id="one">One</h2><p>body</p>`,
		Permissions:                     "<p>Owners only.</p>",
		IncludesPlatformSpecificContent: true,
		IncludesToolSpecificContent:     true,
		Product:                         "<p>Beta feature.</p>",
		ProductVideoURL:                 "https://videos.example.com/order",
		MiniTocItems: []docarticle.MiniTocItem{
			{Text: "One", Href: "#one", Items: []docarticle.MiniTocItem{{Text: "One A", Href: "#one-a"}}},
			{Text: "Two", Href: "#two"},
		},
		CurrentLearningTrack: &docarticle.LearningTrack{
			TrackName:         "getting_started",
			TrackTitle:        "Getting started",
			TrackDescription:  "Order & design.",
			NumberOfGuides:    3,
			CurrentGuideIndex: 1,
			PrevGuide:         &docarticle.TrackGuide{Href: "/en/stamps/overview?learn=getting_started", Title: "Overview"},
			NextGuide:         &docarticle.TrackGuide{Href: "/en/stamps/pay?learn=getting_started", Title: "Pay"},
		},
		DetectedPlatforms: []string{"mac", "linux"},
		DefaultPlatform:   "linux",
		DetectedTools:     []string{"cli"},
		DefaultTool:       "cli",
		Breadcrumbs: []nav.Crumb{
			{Href: "/en/stamps", Label: "Stamps"},
			{Href: "/en/stamps/order", Label: "Ordering a stamp", Active: true},
		},
	}
}

func chrome() layouts.Chrome {
	return layouts.Chrome{
		Lang:              "en",
		Title:             "Ordering a stamp",
		Description:       "Pick a design.",
		RequestPath:       "/en/stamps/order",
		SupportedLangs:    []string{"en", "ja"},
		Translator:        echoTranslator{},
		DefaultAPIVersion: "2022-11-28",
	}
}

func render(t *testing.T, s docarticle.Snapshot, req docarticle.Request) *goquery.Document {
	t.Helper()

	if req.Translator == nil {
		req.Translator = echoTranslator{}
	}
	var buf bytes.Buffer
	err := tmpl.Page(docarticle.Plan(s, req), chrome()).Render(context.Background(), &buf)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestGridLayoutMarkup(t *testing.T) {
	t.Parallel()

	doc := render(t, fullSnapshot(), docarticle.Request{Path: "/en/stamps/order"})

	root := doc.Find(`[data-layout="default"]`)
	require.Equal(t, 1, root.Length())
	require.True(t, root.HasClass("container-xl"))
	require.Equal(t, "container-xl px-3 px-md-6 my-4", root.AttrOr("class", ""))

	crumbs := root.Children().First()
	require.Equal(t, "d-none d-xxl-block mt-3 mr-auto width-full", crumbs.AttrOr("class", ""))
	require.Equal(t, 1, crumbs.Find(`[data-testid="breadcrumbs"]`).Length())
	require.Equal(t, "page", crumbs.Find("a").Last().AttrOr("aria-current", ""))

	intro := doc.Find(`[data-slot="intro"]`)
	require.Equal(t, 1, intro.Length(), "grid merges intro and callouts into one slot")
	require.Equal(t, 0, doc.Find(`[data-slot="intro-callouts"]`).Length())

	var order []string
	intro.Children().Each(func(_ int, s *goquery.Selection) {
		order = append(order, s.AttrOr("data-testid", ""))
	})
	require.Equal(t, []string{"lead", "permissions-statement", "platform-picker", "tool-picker", "product-alert"}, order)

	lead := doc.Find(`[data-testid="lead"]`)
	require.Equal(t, "lead", lead.AttrOr("data-search", ""))
	require.True(t, lead.HasClass("_page-intro"))
	require.Equal(t, "design", lead.Find("em").Text())

	require.True(t, doc.Find(`[data-testid="product-alert"]`).HasClass("mb-4"))
	require.Equal(t, "linux", doc.Find(`[data-testid="platform-picker"]`).AttrOr("data-default-platform", ""))
	require.Equal(t, "linux", doc.Find(`[data-testid="platform-picker"] a.selected`).AttrOr("data-platform", ""))

	trackNav := doc.Find(`[data-slot="track-nav"]`)
	require.Equal(t, 1, trackNav.Length())
	require.True(t, trackNav.HasClass("mt-4"))
	require.Equal(t, "/en/stamps/pay?learn=getting_started", trackNav.Find(`[data-testid="learning-track-next"]`).AttrOr("href", ""))
	require.Equal(t, "prev", trackNav.Find(`[data-testid="learning-track-prev"]`).AttrOr("rel", ""))
}

func TestInlineLayoutMarkup(t *testing.T) {
	t.Parallel()

	s := fullSnapshot()
	s.CurrentLayout = docarticle.LayoutInline
	doc := render(t, s, docarticle.Request{Path: "/en/stamps/order"})

	require.Equal(t, 1, doc.Find(`[data-layout="inline"]`).Length())
	require.Equal(t, 0, doc.Find(`[data-layout="default"]`).Length())
	require.Equal(t, 1, doc.Find(`[data-slot="intro"] [data-testid="lead"]`).Length())
	require.Equal(t, 4, doc.Find(`[data-slot="intro-callouts"]`).Children().Length())
	require.Equal(t, 1, doc.Find(`[data-slot="breadcrumbs"] [data-testid="breadcrumbs"]`).Length())
	require.Equal(t, 0, doc.Find(`[data-testid="learning-track-nav"]`).Length(), "inline layout never appends the track nav")
	require.Equal(t, 1, doc.Find(`[data-testid="learning-track-card"]`).Length())
}

func TestArticleContentsMarkup(t *testing.T) {
	t.Parallel()

	doc := render(t, fullSnapshot(), docarticle.Request{Path: "/en/stamps/order"})

	contents := doc.Find("#article-contents")
	require.Equal(t, 1, contents.Length())

	video := contents.Find("#product-video")
	require.Equal(t, "https://videos.example.com/order", video.AttrOr("href", ""))
	require.Equal(t, "_blank", video.AttrOr("target", ""))
	require.Equal(t, "(external site)", video.Find("svg").AttrOr("aria-label", ""))
	require.Equal(t, "Watch the video", strings.TrimSpace(video.Text()))

	stamp := contents.Find("#effectiveDate time")
	require.Equal(t, "2023-01-15T00:00:00.000Z", stamp.AttrOr("datetime", ""))
	require.Equal(t, "Sun Jan 15 2023", stamp.Text())
	require.Contains(t, contents.Find("#effectiveDate").Text(), "Effective as of:")

	require.Equal(t, "One", contents.Find(".markdown-body h2#one").Text())

	toc := doc.Find(`[data-slot="toc"]`)
	require.Equal(t, []string{"learning-track-card", "minitoc"}, []string{
		toc.Children().Eq(0).AttrOr("data-testid", ""),
		toc.Children().Eq(1).AttrOr("data-testid", ""),
	})
	require.Equal(t, 3, toc.Find(`[data-testid="minitoc"] a`).Length())
	require.Equal(t, "Guide 2 of 3", toc.Find(`[data-testid="learning-track-progress"]`).Text())
	require.Equal(t, "Order & design.", toc.Find(`[data-testid="learning-track-description"]`).Text())
}

func TestMinimalSnapshotRendersOnlyRequiredBlocks(t *testing.T) {
	t.Parallel()

	doc := render(t, docarticle.Snapshot{
		Title:        "Bare",
		RenderedPage: "<p>text</p>",
		MiniTocItems: []docarticle.MiniTocItem{{Text: "Only", Href: "#only"}},
	}, docarticle.Request{Path: "/en/bare"})

	require.Equal(t, "Bare", doc.Find("h1#title-h1").Text())
	require.Equal(t, 0, doc.Find(`[data-testid="lead"]`).Length())
	require.Equal(t, 0, doc.Find(`[data-slot="intro"]`).Length())
	require.Equal(t, 0, doc.Find(`[data-slot="toc"]`).Length(), "single-entry TOC is omitted")
	require.Equal(t, 0, doc.Find("#product-video").Length())
	require.Equal(t, 0, doc.Find("#effectiveDate").Length())
	require.Equal(t, 0, doc.Find(`[data-slot="track-nav"]`).Length())
	require.Equal(t, 0, doc.Find(`[data-testid="support-portal-va"]`).Length())
}

func TestInvalidEffectiveDate(t *testing.T) {
	t.Parallel()

	doc := render(t, docarticle.Snapshot{Title: "x", EffectiveDate: "not a date"}, docarticle.Request{Path: "/en/x"})

	stamp := doc.Find("#effectiveDate time")
	require.Equal(t, "Invalid Date", stamp.Text())
	_, ok := stamp.Attr("datetime")
	require.False(t, ok)
}

func TestHelperScripts(t *testing.T) {
	t.Parallel()

	plain := render(t, docarticle.Snapshot{Title: "x"}, docarticle.Request{Path: "/en/docs/x"})
	require.Equal(t, 1, plain.Find("[data-link-preview-popover]").Length())
	require.Equal(t, 0, plain.Find("script[data-client-side-refresh]").Length())
	require.Equal(t, 0, plain.Find("script[data-rest-redirect]").Length())

	dev := render(t, docarticle.Snapshot{Title: "x"}, docarticle.Request{Path: "/en/rest/repos", Dev: true})
	refresh := dev.Find("script[data-client-side-refresh]")
	require.Equal(t, 1, refresh.Length())
	require.Equal(t, "module", refresh.AttrOr("type", ""))
	_, deferred := refresh.Attr("defer")
	require.True(t, deferred)
	require.Equal(t, "2022-11-28", dev.Find("script[data-rest-redirect]").AttrOr("data-default-api-version", ""))
}

func TestSupportPortalIframe(t *testing.T) {
	t.Parallel()

	s := docarticle.Snapshot{
		Title: "x",
		SupportPortalVaIframeProps: &docarticle.SupportPortalVaIframeProps{
			SupportPortalURL:   "https://support.example.com/va",
			VaFlowURLParameter: "stamps flow",
		},
	}
	doc := render(t, s, docarticle.Request{Path: "/en/x"})
	require.Equal(t, "https://support.example.com/va?va_flow=stamps+flow", doc.Find(`[data-testid="support-portal-va"] iframe`).AttrOr("src", ""))
}

func TestDocumentChrome(t *testing.T) {
	t.Parallel()

	doc := render(t, docarticle.Snapshot{Title: "x"}, docarticle.Request{Path: "/en/x"})

	require.Equal(t, "en", doc.Find("html").AttrOr("lang", ""))
	require.Equal(t, "Ordering a stamp - site_name", doc.Find("title").Text())
	require.Equal(t, "Pick a design.", doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	require.Equal(t, "/ja/stamps/order", doc.Find(`[data-testid="language-picker"] a[hreflang="ja"]`).AttrOr("href", ""))
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, tmpl.NotFound(chrome()).Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	require.Equal(t, "not_found_title", doc.Find(`[data-testid="not-found"] h1`).Text())
}
