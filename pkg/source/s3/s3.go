// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/leseb/pdfrag/pkg/source"
)

func init() {
	source.Providers.Register("s3", func(ctx context.Context, params map[string]string) (source.Loader, error) {
		return New(ctx, Options{
			Region:   params["region"],
			Endpoint: params["endpoint"],
			MaxBytes: source.MaxBytesParam(params),
		})
	})
}

// compile-time check
var _ source.Loader = (*Loader)(nil)

// Options configures the S3 backend.
type Options struct {
	Region   string // e.g. "us-east-1"
	Endpoint string // custom endpoint for MinIO compatibility
	MaxBytes int64
}

// Loader reads documents from S3 (or MinIO). Locations have the form
// "bucket/key".
type Loader struct {
	client   *s3.Client
	maxBytes int64
}

// New creates an S3-backed Loader.
func New(ctx context.Context, opts Options) (*Loader, error) {
	optFns := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		optFns = append(optFns, awsconfig.WithRegion(opts.Region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	s3Opts := []func(*s3.Options){}
	if opts.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true // required for MinIO
		})
	}

	return &Loader{
		client:   s3.NewFromConfig(cfg, s3Opts...),
		maxBytes: opts.MaxBytes,
	}, nil
}

// SplitLocation splits "bucket/key" into its parts.
func SplitLocation(location string) (bucket, key string, err error) {
	bucket, key, ok := strings.Cut(strings.TrimPrefix(location, "/"), "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 location %q must be bucket/key", location)
	}
	return bucket, key, nil
}

// Load downloads the object at location.
func (l *Loader) Load(ctx context.Context, location string) (*source.Document, error) {
	bucket, key, err := SplitLocation(location)
	if err != nil {
		return nil, err
	}

	if l.maxBytes > 0 {
		head, err := l.client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return nil, mapError(err, location, "head object")
		}
		if size := aws.ToInt64(head.ContentLength); size > l.maxBytes {
			return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", source.ErrTooLarge, location, size, l.maxBytes)
		}
	}

	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, mapError(err, location, "get object")
	}
	defer out.Body.Close()

	content, err := source.ReadLimited(out.Body, l.maxBytes)
	if err != nil {
		return nil, err
	}
	return &source.Document{Name: path.Base(key), Content: content}, nil
}

// Close is a no-op for the S3 backend.
func (l *Loader) Close(_ context.Context) error {
	return nil
}

func mapError(err error, location, op string) error {
	var nsk *s3types.NoSuchKey
	var nf *s3types.NotFound
	if errors.As(err, &nsk) || errors.As(err, &nf) {
		return fmt.Errorf("%w: %s", source.ErrNotFound, location)
	}
	return fmt.Errorf("%s: %w", op, err)
}
