package middleware

import (
	"context"
	"net/http"
	"strings"
)

// LocaleCookie stores the reader's language choice.
const LocaleCookie = "hl"

// LanguageResolver is the part of the i18n bundle the locale middleware needs.
type LanguageResolver interface {
	Fallback() string
	IsSupported(lang string) bool
	Resolve(acceptLanguage string) string
}

type localeContextKey struct{}

// Locale resolves the preferred language from the hl query parameter, the hl
// cookie or Accept-Language, in that order. A supported hl query value is
// persisted in the cookie.
func Locale(resolver LanguageResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept-Language")

			lang := ""
			if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("hl"))); q != "" && resolver.IsSupported(q) {
				lang = q
				http.SetCookie(w, &http.Cookie{Name: LocaleCookie, Value: q, Path: "/", SameSite: http.SameSiteLaxMode})
			}
			if lang == "" {
				if c, err := r.Cookie(LocaleCookie); err == nil && resolver.IsSupported(strings.ToLower(c.Value)) {
					lang = strings.ToLower(c.Value)
				}
			}
			if lang == "" {
				lang = resolver.Resolve(r.Header.Get("Accept-Language"))
			}

			ctx := context.WithValue(r.Context(), localeContextKey{}, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PreferredLang returns the language resolved by Locale, or fallback when absent.
func PreferredLang(ctx context.Context, fallback string) string {
	if lang, ok := ctx.Value(localeContextKey{}).(string); ok && lang != "" {
		return lang
	}
	return fallback
}
