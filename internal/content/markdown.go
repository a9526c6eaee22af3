package content

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"finitefield.org/hanko-docs/internal/article"
)

const highlightStyle = "github"

var (
	classPattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-_]+$`)
	idPattern    = regexp.MustCompile(`^[\p{L}\p{N}\-_]+$`)
)

// Renderer converts article markdown into sanitized HTML.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer builds the markdown pipeline: GFM, heading IDs and
// class-based chroma highlighting, followed by sanitizing.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			// authors write raw ghd-tool blocks; the policy below decides what survives
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md, policy: newArticlePolicy()}
}

// Document is the rendered body of an article.
type Document struct {
	HTML template.HTML
	TOC  []article.MiniTocItem
}

// Render converts src and collects the mini TOC from its h2/h3 headings.
func (r *Renderer) Render(src []byte) (Document, error) {
	doc := r.md.Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return Document{}, fmt.Errorf("content: render markdown: %w", err)
	}
	return Document{
		HTML: template.HTML(r.policy.SanitizeBytes(buf.Bytes())),
		TOC:  miniToc(doc, src),
	}, nil
}

// RenderFragment renders a short front-matter field such as intro or permissions.
func (r *Renderer) RenderFragment(src string) (template.HTML, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("content: render fragment: %w", err)
	}
	return template.HTML(strings.TrimSpace(r.policy.Sanitize(buf.String()))), nil
}

// WriteHighlightCSS writes the stylesheet matching the highlighter's classes.
func WriteHighlightCSS(w io.Writer) error {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	return formatter.WriteCSS(w, styles.Get(highlightStyle))
}

func newArticlePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption", "details", "summary")
	policy.AllowAttrs("class").Matching(classPattern).OnElements(
		"div", "span", "pre", "code", "p", "figure", "figcaption", "table", "ul", "ol", "li",
	)
	policy.AllowAttrs("id").Matching(idPattern).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnFullyQualifiedLinks(true)
	return policy
}

func miniToc(doc ast.Node, src []byte) []article.MiniTocItem {
	var items []article.MiniTocItem
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level != 2 && h.Level != 3 {
			return ast.WalkSkipChildren, nil
		}
		item := article.MiniTocItem{Text: strings.TrimSpace(nodeText(h, src)), Href: "#" + headingID(h)}
		if h.Level == 3 && len(items) > 0 {
			last := &items[len(items)-1]
			last.Items = append(last.Items, item)
		} else {
			items = append(items, item)
		}
		return ast.WalkSkipChildren, nil
	})
	return items
}

func headingID(h *ast.Heading) string {
	v, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	}
	return ""
}

func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
