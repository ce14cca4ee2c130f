// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package source loads document bytes from the locations a user can import
// from: local files and S3 (or MinIO) objects.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/leseb/pdfrag/pkg/provider"
)

var (
	// ErrNotFound is returned when the named document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrTooLarge is returned when a document exceeds the configured size limit.
	ErrTooLarge = errors.New("document too large")

	// ErrForbidden is returned for locations a loader refuses to read, such as
	// paths outside its base directory.
	ErrForbidden = errors.New("document location not allowed")
)

// Providers is the registry of document source backends, keyed by URI scheme.
// Import implementation packages with blank imports to register them:
//
//	import _ "github.com/leseb/pdfrag/pkg/source/filesystem"
//	import _ "github.com/leseb/pdfrag/pkg/source/s3"
var Providers = provider.NewRegistry[Loader]("document_source")

// Document is a loaded, not yet extracted, document.
type Document struct {
	Name    string // base name, used to pick the extraction format
	Content []byte
}

// Loader fetches documents from one backend. Locations are backend specific:
// a filesystem path, or "bucket/key" for S3.
type Loader interface {
	Load(ctx context.Context, location string) (*Document, error)
	Close(ctx context.Context) error
}

// ParseURI splits a document URI into a scheme and a backend location.
// A URI without a scheme is a filesystem path.
func ParseURI(uri string) (scheme, location string, err error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return "", "", errors.New("empty document uri")
	}
	scheme, location, ok := strings.Cut(uri, "://")
	if !ok {
		return "file", uri, nil
	}
	scheme = strings.ToLower(scheme)
	if location == "" {
		return "", "", fmt.Errorf("document uri %q has no location", uri)
	}
	return scheme, location, nil
}

// Open resolves uri through Providers, loads the document and releases the
// backend. params are passed to the backend factory.
func Open(ctx context.Context, uri string, params map[string]string) (*Document, error) {
	scheme, location, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	loader, err := Providers.New(ctx, scheme, params)
	if err != nil {
		return nil, err
	}
	defer loader.Close(ctx)

	return loader.Load(ctx, location)
}

// ReadLimited reads r fully, failing with ErrTooLarge past maxBytes.
// A maxBytes of zero or less disables the limit.
func ReadLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, maxBytes)
	}
	return data, nil
}

// MaxBytesParam reads the "max_bytes" factory parameter.
func MaxBytesParam(params map[string]string) int64 {
	n, err := strconv.ParseInt(params["max_bytes"], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
