// Package seo builds the head metadata of article documents.
package seo

import "strings"

type OpenGraph struct {
	Title       string
	Description string
	Type        string
	URL         string
	Locale      string
}

// Alternate links a translation of the current page.
type Alternate struct {
	Lang string
	Href string
}

type Meta struct {
	Canonical  string
	OG         OpenGraph
	Alternates []Alternate
	// JSONLD holds marshalled schema.org documents.
	JSONLD []string
}

// Page describes one rendered article for metadata purposes.
type Page struct {
	BaseURL     string
	Lang        string
	DefaultLang string
	// Path is the site path of the page, e.g. /en/stamps/order.
	Path        string
	Title       string
	Description string
	// Translations maps each served language to that language's site path.
	Translations []Alternate
	Crumbs       []BreadcrumbItem
	// DateModified is an ISO 8601 timestamp, empty when unknown.
	DateModified string
}

// ForPage assembles canonical, Open Graph, hreflang and JSON-LD metadata.
func ForPage(p Page) Meta {
	canonical := AbsURL(p.BaseURL, p.Path)
	meta := Meta{
		Canonical: canonical,
		OG: OpenGraph{
			Title:       p.Title,
			Description: p.Description,
			Type:        "article",
			URL:         canonical,
			Locale:      p.Lang,
		},
	}

	for _, alt := range p.Translations {
		meta.Alternates = append(meta.Alternates, Alternate{Lang: alt.Lang, Href: AbsURL(p.BaseURL, alt.Href)})
		if alt.Lang == p.DefaultLang {
			meta.Alternates = append(meta.Alternates, Alternate{Lang: "x-default", Href: AbsURL(p.BaseURL, alt.Href)})
		}
	}

	if doc := JSON(TechArticle(p.Title, canonical, p.Lang, p.DateModified)); doc != "" {
		meta.JSONLD = append(meta.JSONLD, doc)
	}
	if len(p.Crumbs) > 0 {
		items := make([]BreadcrumbItem, 0, len(p.Crumbs))
		for _, c := range p.Crumbs {
			items = append(items, BreadcrumbItem{Name: c.Name, Item: AbsURL(p.BaseURL, c.Item)})
		}
		if doc := JSON(BreadcrumbList(items)); doc != "" {
			meta.JSONLD = append(meta.JSONLD, doc)
		}
	}
	return meta
}

// AbsURL joins base and a site path. Paths stay relative when base is empty.
func AbsURL(base, sitePath string) string {
	if sitePath == "" {
		sitePath = "/"
	}
	if !strings.HasPrefix(sitePath, "/") {
		sitePath = "/" + sitePath
	}
	return strings.TrimRight(base, "/") + sitePath
}
