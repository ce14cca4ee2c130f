// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/leseb/pdfrag/pkg/source"
)

func init() {
	source.Providers.Register("file", func(_ context.Context, params map[string]string) (source.Loader, error) {
		return New(params["base_dir"], source.MaxBytesParam(params)), nil
	})
}

// compile-time check
var _ source.Loader = (*Loader)(nil)

// Loader reads documents from the local filesystem. When baseDir is set,
// locations must be relative paths that stay inside it, symlinks included.
// An empty baseDir allows any path.
type Loader struct {
	baseDir  string
	maxBytes int64
}

// New creates a filesystem Loader.
func New(baseDir string, maxBytes int64) *Loader {
	return &Loader{baseDir: baseDir, maxBytes: maxBytes}
}

// open opens location, confined to baseDir when one is set.
func (l *Loader) open(location string) (*os.File, error) {
	if l.baseDir == "" {
		return os.Open(filepath.Clean(location))
	}
	if !filepath.IsLocal(location) {
		return nil, fmt.Errorf("%w: %s is outside the document directory", source.ErrForbidden, location)
	}
	root, err := os.OpenRoot(l.baseDir)
	if err != nil {
		return nil, fmt.Errorf("open document directory: %w", err)
	}
	defer root.Close()

	f, err := root.Open(location)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		// os.Root refuses symlinks that resolve outside the directory.
		return nil, fmt.Errorf("%w: %s: %v", source.ErrForbidden, location, err)
	}
	return f, err
}

// Load reads the file at location.
func (l *Loader) Load(_ context.Context, location string) (*source.Document, error) {
	f, err := l.open(location)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", source.ErrNotFound, location)
		}
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", location, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", location)
	}

	content, err := source.ReadLimited(f, l.maxBytes)
	if err != nil {
		return nil, err
	}
	return &source.Document{Name: filepath.Base(location), Content: content}, nil
}

// Close is a no-op for the filesystem backend.
func (l *Loader) Close(_ context.Context) error {
	return nil
}
