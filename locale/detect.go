package locale

import (
	"net/http"

	"golang.org/x/text/language"

	"github.com/kdsmith18542/pluralkit/observability"
)

// DefaultCookieName is the cookie Detect reads the preferred locale from.
const DefaultCookieName = "locale"

// Detect returns the locale for a request.
//
// Locale detection order:
// 1. Query parameter: ?locale=fr
// 2. Cookie: locale=fr
// 3. Accept-Language header: Accept-Language: fr-CH, fr;q=0.9, en;q=0.8
// 4. Default locale (configured in manager)
func (m *Manager) Detect(r *http.Request) string {
	return m.detect(r, DefaultCookieName)
}

func (m *Manager) detect(r *http.Request, cookieName string) string {
	ctx := r.Context()
	obs := observability.GetObserver()

	// Try query parameter first
	if code, ok := m.lookup(r.URL.Query().Get("locale")); ok {
		obs.OnLocaleDetection(ctx, code, false)
		return code
	}

	// Try cookie
	if cookie, err := r.Cookie(cookieName); err == nil {
		if code, ok := m.lookup(cookie.Value); ok {
			obs.OnLocaleDetection(ctx, code, false)
			return code
		}
	}

	// Try Accept-Language header
	if header := r.Header.Get("Accept-Language"); header != "" {
		if code, ok := m.matchAcceptLanguage(header); ok {
			obs.OnLocaleDetection(ctx, code, false)
			return code
		}
	}

	// Fall back to default locale
	code := m.DefaultLocale()
	obs.OnLocaleDetection(ctx, code, true)
	return code
}

// matchAcceptLanguage picks the best available locale for an Accept-Language
// header, honouring quality values.
func (m *Manager) matchAcceptLanguage(header string) (string, bool) {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}

	codes := m.AvailableLocales()
	supported := make([]language.Tag, len(codes))
	for i, code := range codes {
		supported[i] = language.Make(code)
	}

	_, index, confidence := language.NewMatcher(supported).Match(tags...)
	if confidence == language.No {
		return "", false
	}
	return codes[index], true
}
