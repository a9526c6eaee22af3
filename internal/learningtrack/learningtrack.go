// Package learningtrack loads learning track definitions and places an article
// within the track a reader is following.
package learningtrack

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"finitefield.org/hanko-docs/internal/article"
)

// ErrUnknownTrack is returned when a query names a track that does not exist.
var ErrUnknownTrack = errors.New("learningtrack: unknown track")

// Dir is the directory, relative to the data root, holding <product>.yml files.
const Dir = "learning-tracks"

// Query parameter names carrying the followed track.
const (
	QueryTrack   = "learn"
	QueryProduct = "learnProduct"
)

// Track is one ordered sequence of guides.
type Track struct {
	Name        string
	Product     string
	Title       string
	Description string
	// Guides are article paths without a language prefix, e.g. "/get-started/install".
	Guides []string
}

type trackFile map[string]struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Guides      []string `yaml:"guides"`
}

// Titler resolves article titles for guide links.
type Titler interface {
	Title(ctx context.Context, lang, articlePath string) (string, bool)
}

// Catalog holds every track keyed by product then track name.
type Catalog struct {
	tracks map[string]map[string]Track
}

// Load reads every <product>.yml below Dir in fsys. A missing directory yields an empty catalog.
func Load(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{tracks: map[string]map[string]Track{}}

	files, err := fs.Glob(fsys, path.Join(Dir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("learningtrack: list tracks: %w", err)
	}
	for _, file := range files {
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("learningtrack: read %s: %w", file, err)
		}
		var defs trackFile
		if err := yaml.Unmarshal(raw, &defs); err != nil {
			return nil, fmt.Errorf("learningtrack: parse %s: %w", file, err)
		}

		product := strings.TrimSuffix(path.Base(file), ".yml")
		byName := make(map[string]Track, len(defs))
		for name, def := range defs {
			guides := make([]string, 0, len(def.Guides))
			for _, g := range def.Guides {
				if g = normalizeGuide(g); g != "" {
					guides = append(guides, g)
				}
			}
			byName[name] = Track{
				Name:        name,
				Product:     product,
				Title:       strings.TrimSpace(def.Title),
				Description: strings.TrimSpace(def.Description),
				Guides:      guides,
			}
		}
		c.tracks[product] = byName
	}
	return c, nil
}

// Products lists the products that define tracks, sorted.
func (c *Catalog) Products() []string {
	out := make([]string, 0, len(c.tracks))
	for p := range c.tracks {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the named track of product.
func (c *Catalog) Lookup(product, name string) (Track, error) {
	track, ok := c.tracks[product][name]
	if !ok {
		return Track{}, fmt.Errorf("%w: %s/%s", ErrUnknownTrack, product, name)
	}
	return track, nil
}

// Query identifies the track being followed and the article being read.
type Query struct {
	Track   string
	Product string
	Lang    string
	// ArticlePath is the article path without the language prefix.
	ArticlePath string
}

// QueryFromValues reads the learn and learnProduct parameters.
func QueryFromValues(values url.Values) Query {
	return Query{
		Track:   strings.TrimSpace(values.Get(QueryTrack)),
		Product: strings.TrimSpace(values.Get(QueryProduct)),
	}
}

// Resolve places q.ArticlePath within the followed track. It returns nil when
// no track is followed or the article is not part of it.
func (c *Catalog) Resolve(ctx context.Context, q Query, titles Titler) (*article.LearningTrack, error) {
	if q.Track == "" || q.Product == "" {
		return nil, nil
	}
	track, err := c.Lookup(q.Product, q.Track)
	if err != nil {
		return nil, err
	}

	current := normalizeGuide(q.ArticlePath)
	index := -1
	for i, g := range track.Guides {
		if g == current {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, nil
	}

	out := &article.LearningTrack{
		TrackName:         track.Name,
		TrackProduct:      track.Product,
		TrackTitle:        track.Title,
		TrackDescription:  track.Description,
		NumberOfGuides:    len(track.Guides),
		CurrentGuideIndex: index,
	}
	if index > 0 {
		out.PrevGuide = c.guide(ctx, track, q.Lang, track.Guides[index-1], titles)
	}
	if index < len(track.Guides)-1 {
		out.NextGuide = c.guide(ctx, track, q.Lang, track.Guides[index+1], titles)
	}
	return out, nil
}

func (c *Catalog) guide(ctx context.Context, track Track, lang, guidePath string, titles Titler) *article.TrackGuide {
	title := ""
	if titles != nil {
		title, _ = titles.Title(ctx, lang, guidePath)
	}
	if title == "" {
		title = path.Base(guidePath)
	}
	return &article.TrackGuide{
		Href:  GuideHref(lang, guidePath, track),
		Title: title,
	}
}

// GuideHref links to guidePath in lang while keeping the track query.
func GuideHref(lang, guidePath string, track Track) string {
	q := url.Values{}
	q.Set(QueryTrack, track.Name)
	q.Set(QueryProduct, track.Product)
	return "/" + lang + normalizeGuide(guidePath) + "?" + q.Encode()
}

func normalizeGuide(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	clean := path.Clean("/" + p)
	if clean == "/" {
		return ""
	}
	return clean
}
