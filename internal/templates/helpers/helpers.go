package helpers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Translator looks up UI strings by namespace and key.
type Translator interface {
	T(namespace, key string) string
}

// T translates through t, echoing the key when no translator is wired.
func T(t Translator, namespace, key string) string {
	if t == nil {
		return key
	}
	return t.T(namespace, key)
}

// Tf translates a format string and applies args.
func Tf(t Translator, namespace, key string, args ...any) string {
	return fmt.Sprintf(T(t, namespace, key), args...)
}

// ClassNames joins the non-empty class names.
func ClassNames(names ...string) string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}

// Writer accumulates markup and keeps the first write error, the way generated
// templ code checks every write.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup.
func (w *Writer) Raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

// Text writes escaped text.
func (w *Writer) Text(s string) {
	w.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped.
func (w *Writer) Attr(name, value string) {
	w.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// URLAttr writes an href or src attribute, replacing unsafe URLs.
func (w *Writer) URLAttr(name, value string) {
	w.Attr(name, string(templ.URL(value)))
}

// Component renders c in place.
func (w *Writer) Component(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

// Err returns the first error encountered.
func (w *Writer) Err() error {
	return w.err
}
