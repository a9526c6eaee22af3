package nav

import (
	"path"
	"strings"
)

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// TitleLookup resolves the display title of the article at the given site path
// (e.g. "/en/actions/using-workflows"). It reports false when the path has no article.
type TitleLookup func(sitePath string) (string, bool)

// Breadcrumbs builds breadcrumb entries for an article path below a language root.
// Rules:
// - The language root itself is never a crumb
// - Each segment links to its cumulative path
// - Labels come from lookup when the path is an article, otherwise a prettified segment
// - The last crumb is active
func Breadcrumbs(lang, articlePath string, lookup TitleLookup) []Crumb {
	clean := path.Clean("/" + strings.TrimSpace(articlePath))
	if clean == "/" || clean == "." {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")

	crumbs := make([]Crumb, 0, len(parts))
	href := "/" + lang
	for i, seg := range parts {
		if seg == "" {
			continue
		}
		href = href + "/" + seg
		label := ""
		if lookup != nil {
			if title, ok := lookup(href); ok {
				label = title
			}
		}
		if label == "" {
			label = titleFromSegment(seg)
		}
		crumbs = append(crumbs, Crumb{
			Href:   href,
			Label:  label,
			Active: i == len(parts)-1,
		})
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	// replace hyphens/underscores with spaces and capitalize first letter
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
