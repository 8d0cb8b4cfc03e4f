package source

import (
	"context"
	"io"
	"time"

	"github.com/kdsmith18542/pluralkit/observability"
)

// ObservableSource wraps a Source implementation with observability
type ObservableSource struct {
	source     Source
	sourceType string
}

// NewObservable creates a new observable source wrapper
func NewObservable(src Source, sourceType string) *ObservableSource {
	return &ObservableSource{
		source:     src,
		sourceType: sourceType,
	}
}

// Open returns a reader for the named object with observability
func (o *ObservableSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	start := time.Now()

	reader, err := o.source.Open(ctx, name)
	observability.GetObserver().OnSourceOperation(ctx, "open", o.sourceType, time.Since(start), err == nil)

	return reader, err
}

// List returns the names of all objects with observability
func (o *ObservableSource) List(ctx context.Context) ([]string, error) {
	start := time.Now()

	files, err := o.source.List(ctx)
	observability.GetObserver().OnSourceOperation(ctx, "list", o.sourceType, time.Since(start), err == nil)

	return files, err
}

// Exists checks if the named object exists with observability
func (o *ObservableSource) Exists(ctx context.Context, name string) bool {
	start := time.Now()

	exists := o.source.Exists(ctx, name)
	observability.GetObserver().OnSourceOperation(ctx, "exists", o.sourceType, time.Since(start), true)

	return exists
}

// Close performs cleanup operations with observability
func (o *ObservableSource) Close() error {
	start := time.Now()

	err := o.source.Close()
	observability.GetObserver().OnSourceOperation(context.Background(), "close", o.sourceType, time.Since(start), err == nil)

	return err
}

// Type returns the backend label reported to observers.
func (o *ObservableSource) Type() string {
	return o.sourceType
}

// Unwrap returns the wrapped source.
func (o *ObservableSource) Unwrap() Source {
	return o.source
}
