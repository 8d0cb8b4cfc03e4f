package locale

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdsmith18542/pluralkit/internal/logging"
	"github.com/kdsmith18542/pluralkit/observability"
	"github.com/kdsmith18542/pluralkit/pluralize"
	"github.com/kdsmith18542/pluralkit/source"
)

const frBundle = `uncountable = ["croissant"]

[[irregular]]
singular = "cheval"
plural = "chevaux"
`

const gbBundle = `uncountable = ["football"]`

func writeBundle(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

// replaceBundle swaps a bundle in with a rename so the watcher never sees a
// half-written file.
func replaceBundle(t *testing.T, dir, name, content string) {
	t.Helper()
	tmp := filepath.Join(dir, name+".tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0644))
	require.NoError(t, os.Rename(tmp, filepath.Join(dir, name)))
}

func quietManager(m *Manager) *Manager {
	m.SetLogger(logging.NewLogger(logging.Config{Output: io.Discard}))
	return m
}

func TestNewManager(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "fr.toml", frBundle)
	writeBundle(t, dir, "en-GB.toml", gbBundle)
	writeBundle(t, dir, "README.md", "not a bundle")

	m, err := NewManager(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "en-GB", "fr"}, m.AvailableLocales())

	fr := m.Engine("fr")
	assert.Equal(t, "fr", fr.Name())
	assert.Equal(t, "croissant", fr.Plural("croissant"))
	assert.Equal(t, "chevaux", fr.Plural("cheval"))
	assert.Equal(t, "cats", fr.Plural("cat"), "bundles layer over the built-in rules")

	en := m.Engine("en")
	assert.Equal(t, "croissants", en.Plural("croissant"))
	assert.Equal(t, "footballs", en.Plural("football"))
	assert.Equal(t, "football", m.Engine("en-GB").Plural("football"))
}

func TestNewManagerErrors(t *testing.T) {
	_, err := NewManager(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	dir := t.TempDir()
	writeBundle(t, dir, "fr.toml", `uncountable = [`)
	_, err = NewManager(dir)
	assert.Error(t, err)

	dir = t.TempDir()
	writeBundle(t, dir, "de.toml", "[[plural]]\npattern = \"(\"\nreplacement = \"x\"\n")
	_, err = NewManager(dir)
	var patternErr *pluralize.InvalidPatternError
	assert.ErrorAs(t, err, &patternErr)
}

func TestEngineFallback(t *testing.T) {
	m := NewManagerEmpty()
	require.NoError(t, m.LoadBundle("fr", strings.NewReader(frBundle)))

	assert.Same(t, m.Engine("fr"), m.Engine("fr-CA"), "region falls back to base language")
	assert.Same(t, m.Engine("en"), m.Engine("de"), "unknown locale falls back to fallback locale")
	assert.Same(t, m.Engine("en"), m.Engine(""))
	assert.True(t, m.HasLocale("fr-CA"))
	assert.False(t, m.HasLocale("de"))

	m.SetFallbackLocale("fr")
	assert.Same(t, m.Engine("fr"), m.Engine("de"))

	m.SetFallbackLocale("xx")
	assert.Same(t, pluralize.Default(), m.Engine("de"))
}

func TestLoadBundle(t *testing.T) {
	m := NewManagerEmpty()

	require.NoError(t, m.LoadBundle("en_gb", strings.NewReader(gbBundle)))
	assert.Equal(t, []string{"en", "en-GB"}, m.AvailableLocales())

	before := m.Engine("en-GB")
	err := m.LoadBundle("en-GB", strings.NewReader("plural = [{ pattern = \"(\", replacement = \"x\" }]"))
	assert.Error(t, err)
	assert.Same(t, before, m.Engine("en-GB"), "invalid bundle keeps the previous engine")

	assert.Error(t, m.LoadBundle("??", strings.NewReader(gbBundle)))
	assert.Error(t, m.LoadBundle("de", strings.NewReader(`unknown_key = 1`)))
}

func TestLoadBundleReplacesEngine(t *testing.T) {
	m := NewManagerEmpty()
	require.NoError(t, m.LoadBundle("fr", strings.NewReader(frBundle)))
	require.NoError(t, m.LoadBundle("fr", strings.NewReader(`uncountable = ["baguette"]`)))

	fr := m.Engine("fr")
	assert.Equal(t, "baguette", fr.Plural("baguette"))
	assert.Equal(t, "croissants", fr.Plural("croissant"), "reloading starts from a fresh engine")
}

func TestAddLocale(t *testing.T) {
	m := NewManagerEmpty()
	engine := pluralize.NewEmpty(pluralize.WithName("custom"))

	require.NoError(t, m.AddLocale("DE", engine))
	assert.Same(t, engine, m.Engine("de"))

	assert.Error(t, m.AddLocale("fr", nil))
	assert.Error(t, m.AddLocale("not a locale", engine))
}

func TestLoadFromSource(t *testing.T) {
	mock := source.NewMock()
	mock.Put("fr.toml", []byte(frBundle))
	mock.Put("nested/en-GB.toml", []byte(gbBundle))
	mock.Put("README.md", []byte("ignored"))

	m := NewManagerEmpty()
	require.NoError(t, m.LoadFromSource(context.Background(), mock))

	assert.Equal(t, []string{"en", "en-GB", "fr"}, m.AvailableLocales())
	assert.Equal(t, "chevaux", m.Engine("fr").Plural("cheval"))
}

func TestLoadFromSourceIsAllOrNothing(t *testing.T) {
	mock := source.NewMock()
	mock.Put("fr.toml", []byte(frBundle))
	mock.Put("de.toml", []byte(`uncountable = [`))

	m := NewManagerEmpty()
	assert.Error(t, m.LoadFromSource(context.Background(), mock))
	assert.Equal(t, []string{"en"}, m.AvailableLocales())
}

type recordingObserver struct {
	mu         sync.Mutex
	detections []string
	loads      []string
}

func (r *recordingObserver) OnInflection(ctx context.Context, engine string, direction string, word string, duration time.Duration) {
}
func (r *recordingObserver) OnRuleRegistered(ctx context.Context, engine string, kind string, err error) {
}
func (r *recordingObserver) OnLocaleDetection(ctx context.Context, detectedLocale string, fallbackUsed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fallbackUsed {
		detectedLocale += " (fallback)"
	}
	r.detections = append(r.detections, detectedLocale)
}
func (r *recordingObserver) OnBundleLoad(ctx context.Context, locale string, origin string, entries int, duration time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	status := "ok"
	if err != nil {
		status = "failed"
	}
	r.loads = append(r.loads, locale+":"+origin+":"+status)
}
func (r *recordingObserver) OnSourceOperation(ctx context.Context, operation string, sourceType string, duration time.Duration, success bool) {
}

func TestBundleLoadObserved(t *testing.T) {
	rec := &recordingObserver{}
	observability.SetObserver(rec)
	t.Cleanup(func() { observability.SetObserver(nil) })

	m := NewManagerEmpty()
	require.NoError(t, m.LoadBundle("fr", strings.NewReader(frBundle)))
	assert.Error(t, m.LoadBundle("de", strings.NewReader(`uncountable = [`)))

	assert.Equal(t, []string{"fr:reader:ok", "de:reader:failed"}, rec.loads)
}
