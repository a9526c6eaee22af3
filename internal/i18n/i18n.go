package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Bundle holds namespaced UI strings per language.
type Bundle struct {
	dict      map[string]map[string]map[string]string
	fallback  string
	supported map[string]struct{}
	ordered   []string
	tags      []language.Tag
	matcher   language.Matcher
}

// Load reads <lang>.json for every supported language from fsys. Each file maps
// namespace → key → string. The fallback language must be present.
func Load(fsys fs.FS, fallback string, supported []string) (*Bundle, error) {
	if len(supported) == 0 {
		supported = []string{"en", "ja"}
	}
	fallback = strings.ToLower(strings.TrimSpace(fallback))
	b := &Bundle{
		dict:      map[string]map[string]map[string]string{},
		fallback:  fallback,
		supported: map[string]struct{}{},
	}

	// the fallback goes first so the matcher prefers it on ties
	ordered := []string{fallback}
	for _, l := range supported {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" && l != fallback {
			ordered = append(ordered, l)
		}
	}

	for _, l := range ordered {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", l, err)
		}
		b.supported[l] = struct{}{}
		b.ordered = append(b.ordered, l)
		b.tags = append(b.tags, tag)

		raw, err := fs.ReadFile(fsys, l+".json")
		if err != nil {
			// allow missing file for non-default locales
			if l == fallback {
				return nil, fmt.Errorf("load locale %s: %w", l, err)
			}
			continue
		}
		var m map[string]map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", l, err)
		}
		b.dict[l] = m
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Supported returns the supported languages in sorted order.
func (b *Bundle) Supported() []string {
	out := make([]string, 0, len(b.supported))
	for k := range b.supported {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// IsSupported reports whether lang is one of the configured languages.
func (b *Bundle) IsSupported(lang string) bool {
	_, ok := b.supported[strings.ToLower(lang)]
	return ok
}

// T returns the string for namespace/key in lang, falling back to the default
// language and finally to the key itself.
func (b *Bundle) T(lang, namespace, key string) string {
	if v, ok := b.lookup(lang, namespace, key); ok {
		return v
	}
	if v, ok := b.lookup(b.fallback, namespace, key); ok {
		return v
	}
	return key
}

func (b *Bundle) lookup(lang, namespace, key string) (string, bool) {
	if lang == "" {
		return "", false
	}
	ns, ok := b.dict[lang][namespace]
	if !ok {
		return "", false
	}
	v, ok := ns[key]
	return v, ok
}

// Translator binds the bundle to one language.
func (b *Bundle) Translator(lang string) Translator {
	return Translator{bundle: b, lang: lang}
}

// Translator looks up strings for a fixed language.
type Translator struct {
	bundle *Bundle
	lang   string
}

// T returns the string for namespace/key.
func (t Translator) T(namespace, key string) string {
	if t.bundle == nil {
		return key
	}
	return t.bundle.T(t.lang, namespace, key)
}

// Resolve chooses the best supported language from an Accept-Language header.
func (b *Bundle) Resolve(acceptLang string) string {
	prefs, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(prefs) == 0 {
		return b.fallback
	}
	_, idx, conf := b.matcher.Match(prefs...)
	if conf == language.No || idx < 0 || idx >= len(b.tags) {
		return b.fallback
	}
	// idx indexes the configured spelling, so regional locales such as pt-br survive
	return b.ordered[idx]
}
