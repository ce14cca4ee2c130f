// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package chunking splits extracted document text into ordered, id-tagged
// chunks. Two strategies are available: fixed-size windows with overlap, and
// recursive splitting on progressively weaker separators.
package chunking

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedStrategy is returned by Split for an unknown strategy.
var ErrUnsupportedStrategy = errors.New("unsupported chunking strategy")

// Chunk is a contiguous span of document text used as a retrieval unit.
// IDs are 0-based and follow output order within one chunking run.
type Chunk struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Strategy selects the splitting algorithm.
type Strategy string

const (
	StrategyFixed     Strategy = "fixed"
	StrategyRecursive Strategy = "recursive"
)

// DefaultStrategy is used when none is configured.
const DefaultStrategy = StrategyRecursive

// ParseStrategy maps a strategy name (case-insensitive) to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyFixed:
		return StrategyFixed, nil
	case StrategyRecursive:
		return StrategyRecursive, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedStrategy, s)
	}
}

// Sizes are in characters (runes).
const (
	DefaultFixedSize        = 1000
	DefaultFixedOverlap     = 100
	DefaultRecursiveSize    = 1000
	DefaultRecursiveOverlap = 100
)

// Options holds the window sizes used by both chunkers.
type Options struct {
	FixedSize        int `yaml:"fixed_size"`
	FixedOverlap     int `yaml:"fixed_overlap"`
	RecursiveSize    int `yaml:"recursive_size"`
	RecursiveOverlap int `yaml:"recursive_overlap"`
}

// DefaultOptions returns the stock window sizes.
func DefaultOptions() Options {
	return Options{
		FixedSize:        DefaultFixedSize,
		FixedOverlap:     DefaultFixedOverlap,
		RecursiveSize:    DefaultRecursiveSize,
		RecursiveOverlap: DefaultRecursiveOverlap,
	}
}

// Split chunks text with the given strategy.
func Split(text string, strategy Strategy, opts Options) ([]Chunk, error) {
	switch strategy {
	case StrategyFixed:
		return ChunkFixed(text, opts.FixedSize, opts.FixedOverlap), nil
	case StrategyRecursive:
		return ChunkRecursive(text, opts.RecursiveSize, opts.RecursiveOverlap), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedStrategy, string(strategy))
	}
}

// normalize applies the defaults when size is not positive and clamps overlap
// into [0, size).
func normalize(size, overlap, defSize, defOverlap int) (int, int) {
	if size <= 0 {
		size = defSize
	}
	if overlap < 0 || overlap >= size {
		overlap = defOverlap
		if overlap >= size {
			overlap = size / 4
		}
	}
	return size, overlap
}

func number(texts []string) []Chunk {
	chunks := make([]Chunk, len(texts))
	for i, t := range texts {
		chunks[i] = Chunk{ID: i, Text: t}
	}
	return chunks
}
