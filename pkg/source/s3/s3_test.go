// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package s3_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	srcs3 "github.com/leseb/pdfrag/pkg/source/s3"
	"github.com/leseb/pdfrag/pkg/source/sourcetest"
)

func TestSplitLocation(t *testing.T) {
	tests := []struct {
		in          string
		bucket, key string
		wantErr     bool
	}{
		{in: "docs/report.pdf", bucket: "docs", key: "report.pdf"},
		{in: "/docs/a/b/c.pdf", bucket: "docs", key: "a/b/c.pdf"},
		{in: "docs", wantErr: true},
		{in: "docs/", wantErr: true},
		{in: "/report.pdf", wantErr: true},
	}
	for _, tt := range tests {
		bucket, key, err := srcs3.SplitLocation(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("SplitLocation(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || bucket != tt.bucket || key != tt.key {
			t.Errorf("SplitLocation(%q) = %q, %q, %v", tt.in, bucket, key, err)
		}
	}
}

func TestS3Conformance(t *testing.T) {
	bucket := os.Getenv("SOURCE_S3_BUCKET")
	endpoint := os.Getenv("SOURCE_S3_ENDPOINT")
	if bucket == "" || endpoint == "" {
		t.Skip("Skipping S3 conformance tests: SOURCE_S3_BUCKET and SOURCE_S3_ENDPOINT must be set (e.g. with MinIO)")
	}

	region := os.Getenv("SOURCE_S3_REGION")
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		t.Fatalf("load aws config: %v", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})
	seed := func(t *testing.T, location string, content []byte) {
		t.Helper()
		bkt, key, err := srcs3.SplitLocation(location)
		if err != nil {
			t.Fatal(err)
		}
		_, err = client.PutObject(context.Background(), &s3.PutObjectInput{
			Bucket: aws.String(bkt),
			Key:    aws.String(key),
			Body:   bytes.NewReader(content),
		})
		if err != nil {
			t.Fatalf("put object: %v", err)
		}
	}

	sourcetest.RunConformanceTests(t, func(t *testing.T, maxBytes int64) sourcetest.Fixture {
		loader, err := srcs3.New(context.Background(), srcs3.Options{
			Region:   region,
			Endpoint: endpoint,
			MaxBytes: maxBytes,
		})
		if err != nil {
			t.Fatalf("s3.New: %v", err)
		}
		prefix := "test-" + strings.ReplaceAll(t.Name(), "/", "-") + "/"
		return sourcetest.Fixture{
			Loader:   loader,
			Location: func(name string) string { return bucket + "/" + prefix + name },
			Seed:     seed,
		}
	})
}
