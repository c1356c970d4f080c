package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3PublisherConfig configures uploads to an S3-compatible bucket. Endpoint
// is optional and selects a non-AWS service (R2, MinIO). Without keys the
// default AWS credential chain is used.
type S3PublisherConfig struct {
	Bucket          string
	Prefix          string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// S3Publisher uploads exported files to a bucket under an optional prefix.
type S3Publisher struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Publisher builds a publisher from cfg.
func NewS3Publisher(ctx context.Context, cfg S3PublisherConfig) (*S3Publisher, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("invalid publish configuration: bucket is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	sdkCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Publisher{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Key returns the object key for a file name.
func (p *S3Publisher) Key(name string) string {
	if p.prefix == "" {
		return name
	}
	return path.Join(p.prefix, name)
}

// Upload puts body at the prefixed key.
func (p *S3Publisher) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	fullKey := p.Key(key)
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(fullKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload object (key: %s): %w", fullKey, err)
	}
	return nil
}
