package source

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSConfig holds configuration for the Google Cloud Storage source.
type GCSConfig struct {
	Bucket          string // GCS bucket name (required)
	Prefix          string // Object prefix bundles live under (optional)
	CredentialsFile string // Path to service account JSON file (optional, uses env if empty)
	Endpoint        string // Custom JSON API endpoint (optional, for emulators)
	Anonymous       bool   // Skip authentication (public buckets and emulators)
}

// GCSSource implements the Source interface for Google Cloud Storage.
type GCSSource struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCS creates a new GCS source. Credentials are resolved the usual way
// (GOOGLE_APPLICATION_CREDENTIALS, metadata server) unless CredentialsFile
// or Anonymous is set.
func NewGCS(ctx context.Context, config GCSConfig) (*GCSSource, error) {
	if config.Bucket == "" {
		return nil, fmt.Errorf("source: bucket name is required")
	}

	var opts []option.ClientOption
	if config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.CredentialsFile))
	}
	if config.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(config.Endpoint))
	}
	if config.Anonymous {
		opts = append(opts, option.WithoutAuthentication())
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("source: failed to create GCS client: %w", err)
	}

	return &GCSSource{
		client: client,
		bucket: config.Bucket,
		prefix: config.Prefix,
	}, nil
}

// Open returns a reader for the named object.
func (g *GCSSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	reader, err := g.client.Bucket(g.bucket).Object(objectKey(g.prefix, name)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("source: failed to get object reader: %w", err)
	}

	return reader, nil
}

// List returns every object under the prefix.
func (g *GCSSource) List(ctx context.Context) ([]string, error) {
	var files []string

	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Prefix: listPrefix(g.prefix)})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("source: failed to list GCS objects: %w", err)
		}
		if name := relativeName(g.prefix, attrs.Name); name != "" {
			files = append(files, name)
		}
	}

	return files, nil
}

// Exists checks if the named object exists.
func (g *GCSSource) Exists(ctx context.Context, name string) bool {
	if validName(name) != nil {
		return false
	}
	_, err := g.client.Bucket(g.bucket).Object(objectKey(g.prefix, name)).Attrs(ctx)
	return err == nil
}

// Close releases the underlying client.
func (g *GCSSource) Close() error {
	return g.client.Close()
}
