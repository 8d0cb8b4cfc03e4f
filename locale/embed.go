package locale

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path"

	"github.com/kdsmith18542/pluralkit/pluralize"
)

// NewManagerFromFS creates a manager from the bundles under dir in fsys,
// typically an embed.FS compiled into the binary.
//
// Example:
//
//	//go:embed rules/*.toml
//	var rulesFS embed.FS
//
//	manager, err := locale.NewManagerFromFS(rulesFS, "rules")
func NewManagerFromFS(fsys fs.FS, dir string) (*Manager, error) {
	m := NewManagerEmpty()
	if err := m.LoadFromFS(fsys, dir); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadFromFS loads every .toml bundle under dir in fsys. Like LoadFromSource
// it installs either all of them or none.
func (m *Manager) LoadFromFS(fsys fs.FS, dir string) error {
	if dir == "" {
		dir = "."
	}

	type loaded struct {
		code   string
		origin string
		data   []byte
	}
	var bundles []loaded

	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".toml" {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		bundles = append(bundles, loaded{code: localeCode(p), origin: p, data: data})
		return nil
	})
	if err != nil {
		return fmt.Errorf("locale: failed to read bundles from %s: %w", dir, err)
	}

	ctx := context.Background()
	engines := make(map[string]*pluralize.Engine, len(bundles))
	for _, b := range bundles {
		key, engine, err := m.decode(ctx, b.code, b.origin, bytes.NewReader(b.data))
		if err != nil {
			return err
		}
		engines[key] = engine
	}

	m.mu.Lock()
	for key, engine := range engines {
		m.engines[key] = engine
	}
	m.mu.Unlock()

	return nil
}
