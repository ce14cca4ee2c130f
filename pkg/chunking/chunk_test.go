// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package chunking

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSplit_Dispatch(t *testing.T) {
	text := strings.Repeat("Sentence number one. ", 30) + "\n\n" + strings.Repeat("Another line here. ", 30)
	opts := Options{FixedSize: 100, FixedOverlap: 10, RecursiveSize: 100, RecursiveOverlap: 10}

	fixed, err := Split(text, StrategyFixed, opts)
	if err != nil {
		t.Fatalf("Split(fixed): %v", err)
	}
	if !reflect.DeepEqual(fixed, ChunkFixed(text, 100, 10)) {
		t.Error("fixed strategy did not dispatch to ChunkFixed")
	}

	recursive, err := Split(text, StrategyRecursive, opts)
	if err != nil {
		t.Fatalf("Split(recursive): %v", err)
	}
	if !reflect.DeepEqual(recursive, ChunkRecursive(text, 100, 10)) {
		t.Error("recursive strategy did not dispatch to ChunkRecursive")
	}

	again, _ := Split(text, StrategyRecursive, opts)
	if !reflect.DeepEqual(recursive, again) {
		t.Error("expected repeated runs to be identical")
	}
}

func TestSplit_UnsupportedStrategy(t *testing.T) {
	chunks, err := Split("some text", Strategy("semantic"), DefaultOptions())
	if !errors.Is(err, ErrUnsupportedStrategy) {
		t.Fatalf("expected ErrUnsupportedStrategy, got %v", err)
	}
	if chunks != nil {
		t.Errorf("expected no chunks on error, got %v", chunks)
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"fixed", StrategyFixed, false},
		{"Recursive", StrategyRecursive, false},
		{" FIXED ", StrategyFixed, false},
		{"", "", true},
		{"semantic", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStrategy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnsupportedStrategy) {
			t.Errorf("ParseStrategy(%q) error = %v, want ErrUnsupportedStrategy", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseStrategy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
