package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/heartmarshall/sapl-backend/internal/config"
)

// S3Destination uploads JSONL snapshots to an S3-compatible bucket.
type S3Destination struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Destination creates an S3 destination from cfg. A non-empty endpoint
// enables path-style addressing for MinIO and similar stores.
func NewS3Destination(ctx context.Context, cfg config.ExportConfig) (*S3Destination, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var opts []func(*s3.Options)
	if cfg.S3Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Destination{
		client: s3.NewFromConfig(awsCfg, opts...),
		bucket: cfg.S3Bucket,
		prefix: cfg.S3Prefix,
	}, nil
}

// Key returns the object key for a snapshot taken at t.
func Key(prefix string, t time.Time) string {
	return prefix + t.UTC().Format("20060102T150405Z") + ".jsonl"
}

// Write uploads data under key and returns the full object location.
func (d *S3Destination) Write(ctx context.Context, key string, data []byte) (string, error) {
	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/x-ndjson"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}
	return "s3://" + d.bucket + "/" + key, nil
}

// Prefix returns the configured key prefix.
func (d *S3Destination) Prefix() string { return d.prefix }
