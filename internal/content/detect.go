package content

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Platforms and Tools list the ghd-tool variants an article body can switch between.
var (
	Platforms = []string{"mac", "windows", "linux"}
	Tools     = []string{"webui", "cli", "desktop", "curl", "codespaces", "vscode", "api"}
)

// Variants records which platform and tool sections a body contains, in document order.
type Variants struct {
	Platforms []string
	Tools     []string
}

// DetectVariants scans rendered HTML for `.ghd-tool.<name>` sections.
func DetectVariants(body string) (Variants, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return Variants{}, fmt.Errorf("content: parse rendered body: %w", err)
	}

	var v Variants
	doc.Find(".ghd-tool").Each(func(_ int, s *goquery.Selection) {
		for _, class := range strings.Fields(s.AttrOr("class", "")) {
			switch {
			case contains(Platforms, class):
				v.Platforms = appendUnique(v.Platforms, class)
			case contains(Tools, class):
				v.Tools = appendUnique(v.Tools, class)
			}
		}
	})
	return v, nil
}

// pickDefault returns preferred when it was detected, otherwise the first detected option.
func pickDefault(preferred string, detected []string) string {
	preferred = strings.ToLower(strings.TrimSpace(preferred))
	if preferred != "" && contains(detected, preferred) {
		return preferred
	}
	if len(detected) > 0 {
		return detected[0]
	}
	return ""
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}

func appendUnique(list []string, val string) []string {
	if contains(list, val) {
		return list
	}
	return append(list, val)
}
