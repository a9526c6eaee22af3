package article

import (
	"html/template"
	"strings"

	"finitefield.org/hanko-docs/internal/nav"
)

// Translation namespace and key of the product video link label.
const (
	VideoLabelNamespace = "pages"
	VideoLabelKey       = "video_from_transcript"
)

// Translator looks up UI strings by namespace and key.
type Translator interface {
	T(namespace, key string) string
}

// TranslatorFunc adapts ordinary functions to Translator.
type TranslatorFunc func(namespace, key string) string

// T calls f(namespace, key).
func (f TranslatorFunc) T(namespace, key string) string { return f(namespace, key) }

// Request carries the per-request facts the plan depends on besides the snapshot.
type Request struct {
	// Path is the route path as requested, e.g. "/en/rest/repos/repos".
	Path       string
	Dev        bool
	Translator Translator
}

// BlockKind identifies a block type.
type BlockKind string

const (
	KindTitle             BlockKind = "title"
	KindLead              BlockKind = "lead"
	KindPermissions       BlockKind = "permissions"
	KindPlatformPicker    BlockKind = "platform-picker"
	KindToolPicker        BlockKind = "tool-picker"
	KindProductAlert      BlockKind = "product-alert"
	KindLearningTrackCard BlockKind = "learning-track-card"
	KindMiniToc           BlockKind = "mini-toc"
	KindBreadcrumbs       BlockKind = "breadcrumbs"
	KindArticleContents   BlockKind = "article-contents"
	KindLearningTrackNav  BlockKind = "learning-track-nav"
	KindLinkPreview       BlockKind = "link-preview-popover"
	KindClientSideRefresh BlockKind = "client-side-refresh"
	KindRestRedirect      BlockKind = "rest-redirect"
)

// Block is one presentational unit placed in a slot.
type Block interface {
	Kind() BlockKind
}

type (
	Title struct {
		Text string
	}
	Lead struct {
		HTML template.HTML
	}
	Permissions struct {
		HTML template.HTML
	}
	PlatformPicker struct {
		Options []string
		Default string
	}
	ToolPicker struct {
		Options []string
		Default string
	}
	ProductAlert struct {
		HTML template.HTML
	}
	LearningTrackCard struct {
		Track LearningTrack
	}
	MiniToc struct {
		Items []MiniTocItem
	}
	Breadcrumbs struct {
		Crumbs []nav.Crumb
	}
	ArticleContents struct {
		Video         *ProductVideo
		Body          template.HTML
		EffectiveDate *EffectiveDateStamp
	}
	LearningTrackNav struct {
		Track LearningTrack
	}
	LinkPreviewPopover struct{}
	ClientSideRefresh  struct{}
	RestRedirect       struct{}
)

// ProductVideo is the external video link shown above the body.
type ProductVideo struct {
	URL   string
	Label string
}

func (Title) Kind() BlockKind              { return KindTitle }
func (Lead) Kind() BlockKind               { return KindLead }
func (Permissions) Kind() BlockKind        { return KindPermissions }
func (PlatformPicker) Kind() BlockKind     { return KindPlatformPicker }
func (ToolPicker) Kind() BlockKind         { return KindToolPicker }
func (ProductAlert) Kind() BlockKind       { return KindProductAlert }
func (LearningTrackCard) Kind() BlockKind  { return KindLearningTrackCard }
func (MiniToc) Kind() BlockKind            { return KindMiniToc }
func (Breadcrumbs) Kind() BlockKind        { return KindBreadcrumbs }
func (ArticleContents) Kind() BlockKind    { return KindArticleContents }
func (LearningTrackNav) Kind() BlockKind   { return KindLearningTrackNav }
func (LinkPreviewPopover) Kind() BlockKind { return KindLinkPreview }
func (ClientSideRefresh) Kind() BlockKind  { return KindClientSideRefresh }
func (RestRedirect) Kind() BlockKind       { return KindRestRedirect }

// Slot is an ordered run of blocks. An empty slot renders nothing.
type Slot []Block

// Kinds lists the kinds of the blocks in order.
func (s Slot) Kinds() []BlockKind {
	out := make([]BlockKind, 0, len(s))
	for _, b := range s {
		out = append(out, b.Kind())
	}
	return out
}

// PageLayout is either InlineLayout or GridLayout.
type PageLayout interface {
	Layout() Layout
}

// InlineLayout keeps the intro and its callouts in separate slots and carries
// its own breadcrumbs slot.
type InlineLayout struct {
	SupportPortal *SupportPortalVaIframeProps
	Topper        Slot
	Intro         Slot
	IntroCallouts Slot
	TOC           Slot
	Breadcrumbs   Slot
	Contents      Slot
}

// GridLayout merges intro and callouts into a single intro slot. Breadcrumbs
// sit above the grid and TrackNav below it.
type GridLayout struct {
	SupportPortal *SupportPortalVaIframeProps
	Breadcrumbs   Slot
	Topper        Slot
	Intro         Slot
	TOC           Slot
	Contents      Slot
	TrackNav      Slot
}

func (InlineLayout) Layout() Layout { return LayoutInline }
func (GridLayout) Layout() Layout   { return LayoutDefault }

// RenderPlan is the complete composition of one article page.
type RenderPlan struct {
	// Helpers mount ahead of the layout and render no visible content.
	Helpers Slot
	Layout  PageLayout
}

// Plan composes the page for s. It is a pure function of its inputs.
func Plan(s Snapshot, req Request) RenderPlan {
	topper := Slot{Title{Text: s.Title}}
	intro := introSlot(s)
	callouts := calloutSlot(s)
	toc := tocSlot(s)
	breadcrumbs := Slot{Breadcrumbs{Crumbs: s.Breadcrumbs}}
	contents := Slot{articleContents(s, req)}

	plan := RenderPlan{Helpers: helperSlot(req)}

	if s.CurrentLayout == LayoutInline {
		plan.Layout = InlineLayout{
			SupportPortal: s.SupportPortalVaIframeProps,
			Topper:        topper,
			Intro:         intro,
			IntroCallouts: callouts,
			TOC:           toc,
			Breadcrumbs:   breadcrumbs,
			Contents:      contents,
		}
		return plan
	}

	merged := make(Slot, 0, len(intro)+len(callouts))
	merged = append(merged, intro...)
	merged = append(merged, callouts...)

	grid := GridLayout{
		SupportPortal: s.SupportPortalVaIframeProps,
		Breadcrumbs:   breadcrumbs,
		Topper:        topper,
		Intro:         merged,
		TOC:           toc,
		Contents:      contents,
	}
	if s.IsLearningPath() {
		grid.TrackNav = Slot{LearningTrackNav{Track: *s.CurrentLearningTrack}}
	}
	plan.Layout = grid
	return plan
}

func introSlot(s Snapshot) Slot {
	if s.Intro == "" {
		return nil
	}
	return Slot{Lead{HTML: s.Intro}}
}

func calloutSlot(s Snapshot) Slot {
	var slot Slot
	if s.Permissions != "" {
		slot = append(slot, Permissions{HTML: s.Permissions})
	}
	if s.IncludesPlatformSpecificContent {
		slot = append(slot, PlatformPicker{Options: s.DetectedPlatforms, Default: s.DefaultPlatform})
	}
	if s.IncludesToolSpecificContent {
		slot = append(slot, ToolPicker{Options: s.DetectedTools, Default: s.DefaultTool})
	}
	if s.Product != "" {
		slot = append(slot, ProductAlert{HTML: s.Product})
	}
	return slot
}

func tocSlot(s Snapshot) Slot {
	var slot Slot
	if s.IsLearningPath() {
		slot = append(slot, LearningTrackCard{Track: *s.CurrentLearningTrack})
	}
	// a single-entry TOC adds nothing
	if len(s.MiniTocItems) > 1 {
		slot = append(slot, MiniToc{Items: s.MiniTocItems})
	}
	return slot
}

func articleContents(s Snapshot, req Request) ArticleContents {
	contents := ArticleContents{Body: s.RenderedPage}
	if s.ProductVideoURL != "" {
		label := VideoLabelKey
		if req.Translator != nil {
			label = req.Translator.T(VideoLabelNamespace, VideoLabelKey)
		}
		contents.Video = &ProductVideo{URL: s.ProductVideoURL, Label: label}
	}
	if s.EffectiveDate != "" {
		stamp := ParseEffectiveDate(s.EffectiveDate)
		contents.EffectiveDate = &stamp
	}
	return contents
}

func helperSlot(req Request) Slot {
	slot := Slot{LinkPreviewPopover{}}
	if req.Dev {
		slot = append(slot, ClientSideRefresh{})
	}
	if strings.Contains(req.Path, "/rest/") {
		slot = append(slot, RestRedirect{})
	}
	return slot
}
