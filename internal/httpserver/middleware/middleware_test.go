package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"finitefield.org/hanko-docs/internal/i18n"
	"finitefield.org/hanko-docs/locales"
)

func newBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	bundle, err := i18n.Load(locales.FS, "en", []string{"en", "ja"})
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	return bundle
}

func TestLocaleMiddleware(t *testing.T) {
	bundle := newBundle(t)

	var got string
	handler := Locale(bundle)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = PreferredLang(r.Context(), "xx")
	}))

	t.Run("query override sets cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?hl=JA", nil)
		req.Header.Set("Accept-Language", "en-US")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if got != "ja" {
			t.Fatalf("expected ja, got %s", got)
		}
		cookies := rr.Result().Cookies()
		if len(cookies) != 1 || cookies[0].Name != LocaleCookie || cookies[0].Value != "ja" {
			t.Fatalf("expected hl cookie, got %v", cookies)
		}
		if rr.Header().Get("Vary") != "Accept-Language" {
			t.Fatalf("expected Vary header, got %q", rr.Header().Get("Vary"))
		}
	})

	t.Run("unsupported query ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?hl=fr", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if got != "en" {
			t.Fatalf("expected fallback en, got %s", got)
		}
		if len(rr.Result().Cookies()) != 0 {
			t.Fatal("unsupported language must not be persisted")
		}
	})

	t.Run("cookie wins over accept-language", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: LocaleCookie, Value: "ja"})
		req.Header.Set("Accept-Language", "en")
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if got != "ja" {
			t.Fatalf("expected ja from cookie, got %s", got)
		}
	})

	t.Run("accept-language", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "ja-JP,ja;q=0.9,en;q=0.5")
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if got != "ja" {
			t.Fatalf("expected ja from header, got %s", got)
		}
	})
}

func TestPreferredLangDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := PreferredLang(req.Context(), "en"); got != "en" {
		t.Fatalf("expected fallback, got %s", got)
	}
}

func TestEnvironmentMiddleware(t *testing.T) {
	var got string
	handler := Environment("  ")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = EnvironmentFromContext(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got != "local" {
		t.Fatalf("expected local default, got %s", got)
	}

	handler = Environment("staging")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = EnvironmentFromContext(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got != "staging" {
		t.Fatalf("expected staging, got %s", got)
	}
}

func TestRequestInfoMiddleware(t *testing.T) {
	var info *RequestInfo
	handler := RequestInfoMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info, _ = RequestInfoFromContext(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/en/stamps?learn=x", nil))
	if info == nil || info.Path != "/en/stamps" || info.Query != "learn=x" || info.Method != http.MethodGet {
		t.Fatalf("unexpected request info: %+v", info)
	}
	if RequestPathFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()) != "" {
		t.Fatal("expected empty path without middleware")
	}
}
