package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalSource implements the Source interface for a directory on disk.
type LocalSource struct {
	basePath string
}

// NewLocal creates a new LocalSource rooted at basePath. The directory must exist.
//
// Example:
//
//	src, err := source.NewLocal("./rules")
//	defer src.Close()
func NewLocal(basePath string) (*LocalSource, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source: %s is not a directory", basePath)
	}
	return &LocalSource{basePath: basePath}, nil
}

// Open returns a reader for the named file.
func (l *LocalSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	filePath := filepath.Join(l.basePath, filepath.FromSlash(name))

	// Refuse symlinks so a bundle directory cannot point outside itself
	fi, err := os.Lstat(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("source: stat %s: %w", name, err)
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("source: refusing to read symlink: %s", name)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", name, err)
	}
	return file, nil
}

// List returns every regular file under the base directory, slash-separated.
func (l *LocalSource) List(ctx context.Context) ([]string, error) {
	var files []string

	err := filepath.WalkDir(l.basePath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(l.basePath, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("source: list %s: %w", l.basePath, err)
	}

	return files, nil
}

// Exists reports whether the named file exists.
func (l *LocalSource) Exists(ctx context.Context, name string) bool {
	if validName(name) != nil {
		return false
	}
	_, err := os.Stat(filepath.Join(l.basePath, filepath.FromSlash(name)))
	return err == nil
}

// Path returns the base directory.
func (l *LocalSource) Path() string {
	return l.basePath
}

// Close performs cleanup operations for the source.
func (l *LocalSource) Close() error {
	// Local sources hold no resources
	return nil
}
