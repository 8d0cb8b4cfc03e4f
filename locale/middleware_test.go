package locale

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdsmith18542/pluralkit/pluralize"
)

func TestLocaleDetector(t *testing.T) {
	m := newDetectManager(t)

	testCases := []struct {
		name           string
		acceptLanguage string
		expectedLocale string
		word           string
		expectedPlural string
	}{
		{"English locale from Accept-Language", "en-US,en;q=0.9", "en", "croissant", "croissants"},
		{"French locale from Accept-Language", "fr-FR,fr;q=0.9,en;q=0.8", "fr", "croissant", "croissant"},
		{"Fallback to default locale", "ja-JP,ja;q=0.9", "en", "croissant", "croissants"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var captured *pluralize.Engine
			var capturedLocale string

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured = PluralizerFromContext(r.Context())
				capturedLocale = LocaleFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Accept-Language", tc.acceptLanguage)
			w := httptest.NewRecorder()

			LocaleDetector(m)(handler).ServeHTTP(w, req)

			require.NotNil(t, captured)
			assert.Equal(t, tc.expectedLocale, capturedLocale)
			assert.Equal(t, tc.expectedPlural, captured.Plural(tc.word))
			assert.Empty(t, w.Result().Cookies())
		})
	}
}

func TestLocaleDetectorWithOptions(t *testing.T) {
	m := newDetectManager(t)

	var capturedLocale string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedLocale = LocaleFromContext(r.Context())
	})
	middleware := LocaleDetectorWithOptions(m, LocaleDetectorOptions{
		SetCookie:  true,
		CookieName: "lang",
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "lang", Value: "es"})
	w := httptest.NewRecorder()
	middleware(handler).ServeHTTP(w, req)

	assert.Equal(t, "es", capturedLocale)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "lang", cookies[0].Name)
	assert.Equal(t, "es", cookies[0].Value)
	assert.Equal(t, 365*24*60*60, cookies[0].MaxAge)
	assert.Equal(t, "/", cookies[0].Path)
}

func TestContextHelpersWithoutMiddleware(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, PluralizerFromContext(ctx))
	assert.Equal(t, "", LocaleFromContext(ctx))
	assert.Panics(t, func() { MustPluralizerFromContext(ctx) })
}

func TestMustPluralizerFromContext(t *testing.T) {
	engine := pluralize.New()
	ctx := context.WithValue(context.Background(), PluralizerContextKey, engine)

	assert.Same(t, engine, MustPluralizerFromContext(ctx))
}
