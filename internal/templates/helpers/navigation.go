package helpers

import "strings"

// SwitchLang rewrites a /{lang}/... request path to the same page in lang.
// Paths without a known language prefix get lang prepended.
func SwitchLang(requestPath, lang string, known []string) string {
	current := normalizeRoute(requestPath)
	rest := current
	segments := strings.SplitN(strings.TrimPrefix(current, "/"), "/", 2)
	for _, k := range known {
		if segments[0] == k {
			rest = "/"
			if len(segments) == 2 {
				rest += segments[1]
			}
			break
		}
	}
	if rest == "/" {
		return "/" + lang
	}
	return "/" + lang + rest
}

func normalizeRoute(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}
