package source

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config holds configuration for the S3 source.
// All fields except Bucket are optional and fall back to AWS defaults.
type S3Config struct {
	Bucket          string // S3 bucket name (required)
	Prefix          string // Key prefix bundles live under (optional)
	Region          string // AWS region (optional, uses default if empty)
	AccessKeyID     string // AWS access key ID (optional, uses environment/default)
	SecretAccessKey string // AWS secret access key (optional, uses environment/default)
	Endpoint        string // Custom S3 endpoint (optional, for S3-compatible services)
	ForcePathStyle  bool   // Use path-style addressing (optional, for S3-compatible services)
}

// S3Source implements the Source interface for Amazon S3.
type S3Source struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3 creates a new S3 source with the specified configuration.
// The configuration can use AWS environment variables, IAM roles, or explicit credentials.
//
// Example:
//
//	// Using S3-compatible service (like MinIO)
//	src, err := source.NewS3(ctx, source.S3Config{
//	    Bucket:         "rules",
//	    Prefix:         "locales",
//	    Endpoint:       "http://localhost:9000",
//	    ForcePathStyle: true,
//	})
func NewS3(ctx context.Context, config S3Config) (*S3Source, error) {
	if config.Bucket == "" {
		return nil, fmt.Errorf("source: bucket name is required")
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.Region))
	if err != nil {
		return nil, fmt.Errorf("source: failed to load AWS config: %w", err)
	}

	// Override credentials if provided
	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		awsConfig.Credentials = aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     config.AccessKeyID,
				SecretAccessKey: config.SecretAccessKey,
			}, nil
		})
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if config.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.Endpoint)
		}
		o.UsePathStyle = config.ForcePathStyle
	})

	return &S3Source{
		client: client,
		bucket: config.Bucket,
		prefix: config.Prefix,
	}, nil
}

// Open returns the body of the named object.
func (s *S3Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(s.prefix, name)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("source: failed to get object: %w", err)
	}

	return result.Body, nil
}

// List returns every object under the prefix.
func (s *S3Source) List(ctx context.Context) ([]string, error) {
	var files []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(listPrefix(s.prefix)),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("source: failed to list S3 objects: %w", err)
		}
		for _, object := range page.Contents {
			if object.Key == nil {
				continue
			}
			if name := relativeName(s.prefix, *object.Key); name != "" {
				files = append(files, name)
			}
		}
	}

	return files, nil
}

// Exists checks if the named object exists.
func (s *S3Source) Exists(ctx context.Context, name string) bool {
	if validName(name) != nil {
		return false
	}
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(s.prefix, name)),
	})
	return err == nil
}

// Close performs cleanup operations for the S3 source.
func (s *S3Source) Close() error {
	// S3 client doesn't require cleanup
	return nil
}
