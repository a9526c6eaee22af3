package learningtrack

import (
	"context"
	"errors"
	"net/url"
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

const stampsTracks = `
getting_started:
  title: Getting started with stamps
  description: Order your first stamp.
  guides:
    - /stamps/overview
    - stamps/design/
    - /stamps/order
empty_track:
  title: Nothing yet
`

type titleMap map[string]string

func (m titleMap) Title(_ context.Context, lang, articlePath string) (string, bool) {
	title, ok := m[lang+articlePath]
	return title, ok
}

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()

	c, err := Load(fstest.MapFS{
		"learning-tracks/stamps.yml": {Data: []byte(stampsTracks)},
		"learning-tracks/README.md":  {Data: []byte("ignored")},
	})
	require.NoError(t, err)
	return c
}

func TestLoad(t *testing.T) {
	t.Parallel()

	c := loadCatalog(t)
	require.Equal(t, []string{"stamps"}, c.Products())

	track, err := c.Lookup("stamps", "getting_started")
	require.NoError(t, err)
	require.Equal(t, "Getting started with stamps", track.Title)
	require.Equal(t, []string{"/stamps/overview", "/stamps/design", "/stamps/order"}, track.Guides)

	_, err = c.Lookup("stamps", "missing")
	require.True(t, errors.Is(err, ErrUnknownTrack))
}

func TestLoadEmptyAndInvalid(t *testing.T) {
	t.Parallel()

	c, err := Load(fstest.MapFS{})
	require.NoError(t, err)
	require.Empty(t, c.Products())

	_, err = Load(fstest.MapFS{"learning-tracks/bad.yml": {Data: []byte("track: [unterminated")}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad.yml")
}

func TestResolve(t *testing.T) {
	t.Parallel()

	c := loadCatalog(t)
	titles := titleMap{"en/stamps/overview": "Stamp overview"}
	query := Query{Track: "getting_started", Product: "stamps", Lang: "en", ArticlePath: "stamps/design"}

	got, err := c.Resolve(context.Background(), query, titles)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "getting_started", got.TrackName)
	require.Equal(t, "stamps", got.TrackProduct)
	require.Equal(t, "Getting started with stamps", got.TrackTitle)
	require.Equal(t, "Order your first stamp.", got.TrackDescription)
	require.Equal(t, 3, got.NumberOfGuides)
	require.Equal(t, 1, got.CurrentGuideIndex)

	require.NotNil(t, got.PrevGuide)
	require.Equal(t, "Stamp overview", got.PrevGuide.Title)
	require.Equal(t, "/en/stamps/overview?learn=getting_started&learnProduct=stamps", got.PrevGuide.Href)

	require.NotNil(t, got.NextGuide)
	require.Equal(t, "order", got.NextGuide.Title)
	require.Equal(t, "/en/stamps/order?learn=getting_started&learnProduct=stamps", got.NextGuide.Href)
}

func TestResolveEnds(t *testing.T) {
	t.Parallel()

	c := loadCatalog(t)

	first, err := c.Resolve(context.Background(), Query{Track: "getting_started", Product: "stamps", Lang: "en", ArticlePath: "/stamps/overview"}, nil)
	require.NoError(t, err)
	require.Nil(t, first.PrevGuide)
	require.NotNil(t, first.NextGuide)

	last, err := c.Resolve(context.Background(), Query{Track: "getting_started", Product: "stamps", Lang: "en", ArticlePath: "/stamps/order"}, nil)
	require.NoError(t, err)
	require.NotNil(t, last.PrevGuide)
	require.Nil(t, last.NextGuide)
	require.Equal(t, 2, last.CurrentGuideIndex)
}

func TestResolveWithoutTrack(t *testing.T) {
	t.Parallel()

	c := loadCatalog(t)

	got, err := c.Resolve(context.Background(), Query{Lang: "en", ArticlePath: "/stamps/order"}, nil)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = c.Resolve(context.Background(), Query{Track: "getting_started", Product: "stamps", Lang: "en", ArticlePath: "/elsewhere"}, nil)
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = c.Resolve(context.Background(), Query{Track: "nope", Product: "stamps", Lang: "en", ArticlePath: "/stamps/order"}, nil)
	require.True(t, errors.Is(err, ErrUnknownTrack))
}

func TestQueryFromValues(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery("learn=+getting_started&learnProduct=stamps&other=1")
	require.NoError(t, err)

	q := QueryFromValues(values)
	require.Equal(t, "getting_started", q.Track)
	require.Equal(t, "stamps", q.Product)
}

func TestRepositoryTracks(t *testing.T) {
	t.Parallel()

	catalog, err := Load(os.DirFS("../../data"))
	require.NoError(t, err)
	require.Equal(t, []string{"rest", "stamps"}, catalog.Products())

	track, err := catalog.Lookup("rest", "orders_api")
	require.NoError(t, err)
	require.Equal(t, []string{"/stamps/order", "/rest/orders"}, track.Guides)
}
