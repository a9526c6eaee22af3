package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBreadcrumbsUsesLookupAndPrettifiedFallback(t *testing.T) {
	t.Parallel()

	lookup := func(p string) (string, bool) {
		if p == "/en/actions" {
			return "GitHub Actions", true
		}
		return "", false
	}

	crumbs := Breadcrumbs("en", "/actions/using-workflows/about_triggers", lookup)
	require.Len(t, crumbs, 3)

	require.Equal(t, Crumb{Href: "/en/actions", Label: "GitHub Actions"}, crumbs[0])
	require.Equal(t, Crumb{Href: "/en/actions/using-workflows", Label: "Using workflows"}, crumbs[1])
	require.Equal(t, Crumb{Href: "/en/actions/using-workflows/about_triggers", Label: "About triggers", Active: true}, crumbs[2])
}

func TestBreadcrumbsEmptyForRoot(t *testing.T) {
	t.Parallel()

	require.Empty(t, Breadcrumbs("en", "/", nil))
	require.Empty(t, Breadcrumbs("en", "", nil))
}

func TestBreadcrumbsCleansPath(t *testing.T) {
	t.Parallel()

	crumbs := Breadcrumbs("ja", "rest//repos/", nil)
	require.Len(t, crumbs, 2)
	require.Equal(t, "/ja/rest", crumbs[0].Href)
	require.Equal(t, "/ja/rest/repos", crumbs[1].Href)
	require.True(t, crumbs[1].Active)
}
