package source

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// AzureConfig holds configuration for the Azure Blob Storage source.
type AzureConfig struct {
	AccountName string // Azure storage account name (required unless ServiceURL is set)
	AccountKey  string // Azure storage account key (optional, anonymous access if empty)
	Container   string // Blob container name (required)
	Prefix      string // Blob prefix bundles live under (optional)
	ServiceURL  string // Custom service URL (optional, for Azurite or sovereign clouds)
}

// AzureBlobSource implements the Source interface for Azure Blob Storage.
type AzureBlobSource struct {
	client    *azblob.Client
	container string
	prefix    string
}

// NewAzureBlob creates a new Azure Blob source. With an account key the
// client signs requests with a shared key; without one it reads anonymously,
// which suits public containers and SAS service URLs.
func NewAzureBlob(config AzureConfig) (*AzureBlobSource, error) {
	if config.Container == "" {
		return nil, fmt.Errorf("source: container is required")
	}
	if config.AccountName == "" && config.ServiceURL == "" {
		return nil, fmt.Errorf("source: account name or service URL is required")
	}

	serviceURL := config.ServiceURL
	if serviceURL == "" {
		serviceURL = fmt.Sprintf("https://%s.blob.core.windows.net/", config.AccountName)
	}

	var client *azblob.Client
	if config.AccountKey != "" {
		cred, err := azblob.NewSharedKeyCredential(config.AccountName, config.AccountKey)
		if err != nil {
			return nil, fmt.Errorf("source: failed to create Azure credentials: %w", err)
		}
		client, err = azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("source: failed to create Azure client: %w", err)
		}
	} else {
		var err error
		client, err = azblob.NewClientWithNoCredential(serviceURL, nil)
		if err != nil {
			return nil, fmt.Errorf("source: failed to create Azure client: %w", err)
		}
	}

	return &AzureBlobSource{
		client:    client,
		container: config.Container,
		prefix:    config.Prefix,
	}, nil
}

// Open returns the content of the named blob.
func (a *AzureBlobSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	response, err := a.client.DownloadStream(ctx, a.container, objectKey(a.prefix, name), nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("source: failed to download blob: %w", err)
	}

	return response.Body, nil
}

// List returns every blob under the prefix.
func (a *AzureBlobSource) List(ctx context.Context) ([]string, error) {
	var files []string

	prefix := listPrefix(a.prefix)
	pager := a.client.NewListBlobsFlatPager(a.container, &azblob.ListBlobsFlatOptions{
		Prefix: &prefix,
	})
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("source: failed to list blobs: %w", err)
		}
		for _, blob := range resp.Segment.BlobItems {
			if blob.Name == nil {
				continue
			}
			if name := relativeName(a.prefix, *blob.Name); name != "" {
				files = append(files, name)
			}
		}
	}

	return files, nil
}

// Exists checks if the named blob exists.
func (a *AzureBlobSource) Exists(ctx context.Context, name string) bool {
	if validName(name) != nil {
		return false
	}
	blobClient := a.client.ServiceClient().NewContainerClient(a.container).NewBlobClient(objectKey(a.prefix, name))
	_, err := blobClient.GetProperties(ctx, nil)
	return err == nil
}

// Close performs cleanup operations for the source.
func (a *AzureBlobSource) Close() error {
	return nil
}
