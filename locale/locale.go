// Package locale keeps one pluralization engine per locale and picks the
// right one for an HTTP request.
//
// Features:
//   - TOML rule bundles layered over the built-in English rules
//   - Locale detection from query parameters, cookies, and Accept-Language
//   - Bundles fetched from any rule source (local, S3, GCS, Azure Blob)
//   - Live reloading of bundles (development mode)
//   - Concurrency-safe for use in HTTP handlers
//
// Example:
//
//	// Initialize manager
//	manager, err := locale.NewManager("./rules")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// In HTTP handler
//	func CartHandler(w http.ResponseWriter, r *http.Request) {
//	    p := manager.Engine(manager.Detect(r))
//	    fmt.Fprintln(w, p.Pluralize("item", 3, true))
//	}
//
// Bundle files are named after their locale (e.g., en-GB.toml):
//
//	uncountable = ["football"]
//
//	[[irregular]]
//	singular = "octopus"
//	plural = "octopodes"
package locale

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/kdsmith18542/pluralkit/internal/logging"
	"github.com/kdsmith18542/pluralkit/observability"
	"github.com/kdsmith18542/pluralkit/pluralize"
	"github.com/kdsmith18542/pluralkit/source"
)

// maxConcurrentLoads bounds the number of bundles fetched at once.
const maxConcurrentLoads = 8

// Manager holds one engine per locale.
// It is safe for concurrent use and should be initialized once at application startup.
type Manager struct {
	engines        map[string]*pluralize.Engine
	defaultLocale  string
	fallbackLocale string
	logger         *logging.Logger
	mu             sync.RWMutex
}

// NewManager creates a manager and loads every .toml bundle under dir.
// Each bundle is applied on top of a freshly seeded engine, so a bundle only
// needs to carry what differs from the built-in rules. The "en" locale always
// exists.
//
// Example:
//
//	manager, err := locale.NewManager("./rules")
func NewManager(dir string) (*Manager, error) {
	m := NewManagerEmpty()

	src, err := source.NewLocal(dir)
	if err != nil {
		return nil, fmt.Errorf("locale: %w", err)
	}
	defer src.Close()

	if err := m.LoadFromSource(context.Background(), source.NewObservable(src, "file")); err != nil {
		return nil, err
	}

	return m, nil
}

// NewManagerEmpty creates a manager with only the built-in "en" locale.
// This is useful for testing or when you want to add locales programmatically.
func NewManagerEmpty() *Manager {
	return &Manager{
		engines: map[string]*pluralize.Engine{
			"en": pluralize.New(pluralize.WithName("en")),
		},
		defaultLocale:  "en",
		fallbackLocale: "en",
		logger:         logging.NewLogger(logging.Config{Level: "info"}),
	}
}

// SetDefaultLocale sets the locale used when none can be detected from the request.
func (m *Manager) SetDefaultLocale(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultLocale = normalize(code)
}

// DefaultLocale returns the locale used when none can be detected.
func (m *Manager) DefaultLocale() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultLocale
}

// SetFallbackLocale sets the locale whose engine Engine returns for unknown codes.
func (m *Manager) SetFallbackLocale(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbackLocale = normalize(code)
}

// SetLogger replaces the logger used by the bundle watcher.
func (m *Manager) SetLogger(logger *logging.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = logger
}

func (m *Manager) log() *logging.Logger {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.logger
}

// AddLocale registers engine under code, replacing any existing engine.
func (m *Manager) AddLocale(code string, engine *pluralize.Engine) error {
	if engine == nil {
		return fmt.Errorf("locale: nil engine for %q", code)
	}
	key, err := canonical(code)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.engines[key] = engine
	m.mu.Unlock()
	return nil
}

// Engine returns the engine for code. An unknown region falls back to its
// base language ("fr-CA" to "fr"), then to the fallback locale.
func (m *Manager) Engine(code string) *pluralize.Engine {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if key, ok := m.lookupLocked(code); ok {
		return m.engines[key]
	}
	if e, ok := m.engines[m.fallbackLocale]; ok {
		return e
	}
	return pluralize.Default()
}

// HasLocale reports whether code, or its base language, has an engine.
func (m *Manager) HasLocale(code string) bool {
	_, ok := m.lookup(code)
	return ok
}

// AvailableLocales returns all locale codes in sorted order.
func (m *Manager) AvailableLocales() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	codes := make([]string, 0, len(m.engines))
	for code := range m.engines {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return codes
}

// LoadBundle decodes a TOML bundle from r and installs it as the engine for
// code. The previous engine for code is kept if the bundle is invalid.
func (m *Manager) LoadBundle(code string, r io.Reader) error {
	return m.loadBundle(context.Background(), code, "reader", r)
}

// LoadFromSource fetches every .toml bundle from src concurrently. Either
// all bundles are installed or, on the first error, none are.
func (m *Manager) LoadFromSource(ctx context.Context, src source.Source) error {
	names, err := src.List(ctx)
	if err != nil {
		return fmt.Errorf("locale: failed to list bundles: %w", err)
	}

	var bundles []string
	for _, name := range names {
		if source.IsBundle(name) {
			bundles = append(bundles, name)
		}
	}

	type loaded struct {
		code   string
		engine *pluralize.Engine
	}
	results := make([]loaded, len(bundles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for i, name := range bundles {
		g.Go(func() error {
			rc, err := src.Open(gctx, name)
			if err != nil {
				return fmt.Errorf("locale: failed to open %s: %w", name, err)
			}
			defer rc.Close()

			code, engine, err := m.decode(gctx, localeCode(name), name, rc)
			if err != nil {
				return err
			}
			results[i] = loaded{code: code, engine: engine}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	m.mu.Lock()
	for _, r := range results {
		m.engines[r.code] = r.engine
	}
	m.mu.Unlock()

	return nil
}

// loadFile reloads a single bundle from disk.
func (m *Manager) loadFile(ctx context.Context, code, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.loadBundle(ctx, code, filePath, f)
}

func (m *Manager) loadBundle(ctx context.Context, code, origin string, r io.Reader) error {
	key, engine, err := m.decode(ctx, code, origin, r)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.engines[key] = engine
	m.mu.Unlock()
	return nil
}

// decode builds a fresh engine for code from the bundle in r and reports
// the load to the observer.
func (m *Manager) decode(ctx context.Context, code, origin string, r io.Reader) (string, *pluralize.Engine, error) {
	start := time.Now()
	key, engine, entries, err := buildEngine(code, r)
	observability.GetObserver().OnBundleLoad(ctx, key, origin, entries, time.Since(start), err)
	if err != nil {
		return "", nil, fmt.Errorf("locale: failed to load %s: %w", origin, err)
	}
	return key, engine, nil
}

func buildEngine(code string, r io.Reader) (string, *pluralize.Engine, int, error) {
	key, err := canonical(code)
	if err != nil {
		return code, nil, 0, err
	}

	bundle, err := pluralize.DecodeBundle(r)
	if err != nil {
		return key, nil, 0, err
	}

	engine := pluralize.New(pluralize.WithName(key))
	if err := bundle.Apply(engine); err != nil {
		return key, nil, bundle.Len(), err
	}

	return key, engine, bundle.Len(), nil
}

// lookup resolves code to a registered locale key.
func (m *Manager) lookup(code string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookupLocked(code)
}

func (m *Manager) lookupLocked(code string) (string, bool) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	if _, ok := m.engines[tag.String()]; ok {
		return tag.String(), true
	}

	base, _ := tag.Base()
	if _, ok := m.engines[base.String()]; ok {
		return base.String(), true
	}
	return "", false
}

// canonical returns the BCP 47 form of code ("en_gb" becomes "en-GB").
func canonical(code string) (string, error) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("locale: invalid locale code %q: %w", code, err)
	}
	return tag.String(), nil
}

// normalize is canonical for settings, keeping code as given when it does not parse.
func normalize(code string) string {
	if key, err := canonical(code); err == nil {
		return key
	}
	return code
}

// localeCode derives a locale code from a bundle name ("nested/fr.toml" is "fr").
func localeCode(name string) string {
	return strings.TrimSuffix(path.Base(name), ".toml")
}
