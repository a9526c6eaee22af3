// Package article decides how a documentation article page is composed.
//
// A Snapshot carries everything known about one article for a single render
// pass. Plan turns it into a RenderPlan: the chosen layout plus the ordered
// blocks for each of its slots. Rendering the plan into markup lives in
// internal/templates/article.
package article

import (
	"html/template"

	"finitefield.org/hanko-docs/internal/nav"
)

// Layout names the page chrome an article asks for. Any value other than
// LayoutInline selects the grid layout.
type Layout string

const (
	LayoutInline  Layout = "inline"
	LayoutDefault Layout = "default"
)

// Snapshot is the read-only per-render view of an article.
type Snapshot struct {
	Title         string
	Intro         template.HTML
	EffectiveDate string
	RenderedPage  template.HTML
	Permissions   template.HTML

	IncludesPlatformSpecificContent bool
	IncludesToolSpecificContent     bool

	Product         template.HTML
	ProductVideoURL string
	MiniTocItems    []MiniTocItem

	CurrentLearningTrack       *LearningTrack
	SupportPortalVaIframeProps *SupportPortalVaIframeProps
	CurrentLayout              Layout

	// Picker state. Options are listed in detection order.
	DetectedPlatforms []string
	DefaultPlatform   string
	DetectedTools     []string
	DefaultTool       string

	Breadcrumbs []nav.Crumb
}

// MiniTocItem is one in-page table of contents entry.
type MiniTocItem struct {
	Text  string
	Href  string
	Items []MiniTocItem
}

// LearningTrack describes the learning path the current article belongs to.
type LearningTrack struct {
	TrackName         string
	TrackProduct      string
	TrackTitle        string
	TrackDescription  string
	NumberOfGuides    int
	CurrentGuideIndex int
	PrevGuide         *TrackGuide
	NextGuide         *TrackGuide
}

// TrackGuide links to a neighbouring guide within a learning track.
type TrackGuide struct {
	Href  string
	Title string
}

// SupportPortalVaIframeProps configures the support portal virtual assistant
// frame. The layouts forward it untouched.
type SupportPortalVaIframeProps struct {
	SupportPortalURL   string
	VaFlowURLParameter string
}

// IsLearningPath reports whether the article belongs to a learning track.
func (s Snapshot) IsLearningPath() bool {
	return s.CurrentLearningTrack != nil && s.CurrentLearningTrack.TrackName != ""
}
