package ui

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"finitefield.org/hanko-docs/internal/article"
	"finitefield.org/hanko-docs/internal/content"
	"finitefield.org/hanko-docs/internal/learningtrack"
	"finitefield.org/hanko-docs/internal/nav"
	"finitefield.org/hanko-docs/internal/observability"
)

// snapshot assembles the per-request article view from the stored page, the
// followed learning track and the breadcrumb trail.
func (h *Handlers) snapshot(ctx context.Context, lang string, page content.Page, query url.Values) article.Snapshot {
	snap := article.Snapshot{
		Title:                           page.Title,
		Intro:                           page.Intro,
		EffectiveDate:                   page.EffectiveDate,
		RenderedPage:                    page.Body,
		Permissions:                     page.Permissions,
		IncludesPlatformSpecificContent: len(page.Platforms) > 0,
		IncludesToolSpecificContent:     len(page.Tools) > 0,
		Product:                         page.Product,
		ProductVideoURL:                 page.ProductVideoURL,
		MiniTocItems:                    page.MiniTocItems,
		CurrentLayout:                   page.Layout,
		DetectedPlatforms:               page.Platforms,
		DefaultPlatform:                 page.DefaultPlatform,
		DetectedTools:                   page.Tools,
		DefaultTool:                     page.DefaultTool,
		Breadcrumbs:                     nav.Breadcrumbs(lang, page.Path, h.titleLookup(ctx, lang)),
	}

	q := learningtrack.QueryFromValues(query)
	q.Lang = lang
	q.ArticlePath = page.Path
	track, err := h.tracks.Resolve(ctx, q, h.store)
	switch {
	case errors.Is(err, learningtrack.ErrUnknownTrack):
		observability.FromContext(ctx).Debug("ignoring unknown learning track", zap.Error(err))
	case err != nil:
		observability.FromContext(ctx).Warn("resolve learning track failed", zap.Error(err))
	default:
		snap.CurrentLearningTrack = track
	}

	if h.supportPortalURL != "" && page.SupportPortalVaFlow != "" {
		snap.SupportPortalVaIframeProps = &article.SupportPortalVaIframeProps{
			SupportPortalURL:   h.supportPortalURL,
			VaFlowURLParameter: page.SupportPortalVaFlow,
		}
	}
	return snap
}

func (h *Handlers) titleLookup(ctx context.Context, lang string) nav.TitleLookup {
	prefix := "/" + lang
	return func(sitePath string) (string, bool) {
		return h.store.Title(ctx, lang, strings.TrimPrefix(sitePath, prefix))
	}
}

// plainText strips markup from an HTML fragment.
func plainText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
