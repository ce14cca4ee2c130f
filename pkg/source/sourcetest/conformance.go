// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package sourcetest provides a shared conformance test suite for
// source.Loader implementations. Each backend should call
// RunConformanceTests from its own _test.go file.
package sourcetest

import (
	"context"
	"errors"
	"testing"

	"github.com/leseb/pdfrag/pkg/source"
)

// Fixture is a loader under test plus the backend hooks the suite needs:
// Location maps a document name into the loader's namespace and Seed stores
// content at such a location out of band.
type Fixture struct {
	Loader   source.Loader
	Location func(name string) string
	Seed     func(t *testing.T, location string, content []byte)
}

// RunConformanceTests exercises a Loader implementation against the shared
// contract. newFixture is called once per sub-test with the size limit the
// loader must enforce (zero for none).
func RunConformanceTests(t *testing.T, newFixture func(t *testing.T, maxBytes int64) Fixture) {
	t.Helper()

	t.Run("Load", func(t *testing.T) {
		fx := newFixture(t, 0)
		defer fx.Loader.Close(context.Background())
		ctx := context.Background()

		loc := fx.Location("reports/q3.pdf")
		content := []byte("%PDF-1.4 not really")
		fx.Seed(t, loc, content)

		doc, err := fx.Loader.Load(ctx, loc)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if doc.Name != "q3.pdf" {
			t.Errorf("Name = %q, want q3.pdf", doc.Name)
		}
		if string(doc.Content) != string(content) {
			t.Errorf("content mismatch: got %q, want %q", doc.Content, content)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		fx := newFixture(t, 0)
		defer fx.Loader.Close(context.Background())
		ctx := context.Background()

		loc := fx.Location("notes.txt")
		for _, body := range []string{"first", "second"} {
			fx.Seed(t, loc, []byte(body))
		}
		doc, err := fx.Loader.Load(ctx, loc)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if string(doc.Content) != "second" {
			t.Errorf("content = %q, want second", doc.Content)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		fx := newFixture(t, 0)
		defer fx.Loader.Close(context.Background())

		_, err := fx.Loader.Load(context.Background(), fx.Location("missing.pdf"))
		if !errors.Is(err, source.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("TooLarge", func(t *testing.T) {
		fx := newFixture(t, 8)
		defer fx.Loader.Close(context.Background())
		ctx := context.Background()

		small, big := fx.Location("small.txt"), fx.Location("big.txt")
		fx.Seed(t, small, []byte("12345678"))
		fx.Seed(t, big, []byte("123456789"))

		if _, err := fx.Loader.Load(ctx, small); err != nil {
			t.Errorf("document at the limit should load: %v", err)
		}
		if _, err := fx.Loader.Load(ctx, big); !errors.Is(err, source.ErrTooLarge) {
			t.Errorf("expected ErrTooLarge, got %v", err)
		}
	})
}
