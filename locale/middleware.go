package locale

import (
	"context"
	"net/http"

	"github.com/kdsmith18542/pluralkit/pluralize"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	// PluralizerContextKey is the key used to store the engine in the request context
	PluralizerContextKey contextKey = "pluralkit_pluralizer"
	// LocaleContextKey is the key used to store the detected locale in the request context
	LocaleContextKey contextKey = "pluralkit_locale"
)

// LocaleDetector returns middleware that detects the user's locale and injects
// the matching engine into the request context.
//
// Example usage:
//
//	func main() {
//	    manager, _ := locale.NewManager("./rules")
//
//	    mux := http.NewServeMux()
//	    mux.HandleFunc("/cart", cartHandler)
//
//	    handler := locale.LocaleDetector(manager)(mux)
//	    http.ListenAndServe(":8080", handler)
//	}
//
//	func cartHandler(w http.ResponseWriter, r *http.Request) {
//	    p := locale.PluralizerFromContext(r.Context())
//	    fmt.Fprintf(w, "You have %s", p.Pluralize("item", count, true))
//	}
func LocaleDetector(manager *Manager) func(http.Handler) http.Handler {
	return LocaleDetectorWithOptions(manager, LocaleDetectorOptions{})
}

// LocaleDetectorOptions configures LocaleDetectorWithOptions.
type LocaleDetectorOptions struct {
	// SetCookie sets a cookie with the detected locale
	SetCookie bool
	// CookieName is the cookie read during detection and set when SetCookie is true (default: "locale")
	CookieName string
	// CookieMaxAge is the max age of the locale cookie in seconds (default: 1 year)
	CookieMaxAge int
}

// LocaleDetectorWithOptions returns middleware with configurable options.
//
// When SetCookie is true, the detected locale is stored in a cookie so that
// later requests keep the user's preference.
func LocaleDetectorWithOptions(manager *Manager, opts LocaleDetectorOptions) func(http.Handler) http.Handler {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.CookieMaxAge == 0 {
		opts.CookieMaxAge = 365 * 24 * 60 * 60 // 1 year
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := manager.detect(r, opts.CookieName)

			if opts.SetCookie {
				http.SetCookie(w, &http.Cookie{
					Name:   opts.CookieName,
					Value:  code,
					MaxAge: opts.CookieMaxAge,
					Path:   "/",
				})
			}

			ctx := context.WithValue(r.Context(), PluralizerContextKey, manager.Engine(code))
			ctx = context.WithValue(ctx, LocaleContextKey, code)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PluralizerFromContext retrieves the engine from the request context.
// Returns nil if the LocaleDetector middleware has not run.
func PluralizerFromContext(ctx context.Context) *pluralize.Engine {
	if engine, ok := ctx.Value(PluralizerContextKey).(*pluralize.Engine); ok {
		return engine
	}
	return nil
}

// LocaleFromContext retrieves the detected locale code from the request context.
// Returns an empty string if no locale was found in the context.
func LocaleFromContext(ctx context.Context) string {
	if code, ok := ctx.Value(LocaleContextKey).(string); ok {
		return code
	}
	return ""
}

// MustPluralizerFromContext retrieves the engine from the request context.
// Panics if no engine was found in the context.
func MustPluralizerFromContext(ctx context.Context) *pluralize.Engine {
	engine := PluralizerFromContext(ctx)
	if engine == nil {
		panic("locale: pluralizer not found in context. Did you apply the LocaleDetector middleware?")
	}
	return engine
}
