// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package retrieval selects the chunks most relevant to a question by
// counting the distinct query words each chunk shares with it.
package retrieval

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/leseb/pdfrag/pkg/chunking"
)

// MaxResults caps the number of chunks returned by Retrieve and Rank.
const MaxResults = 5

// minQueryTokenLen is the exclusive lower bound on query word length.
const minQueryTokenLen = 2

// ScoredChunk is a chunk with the number of query words it contains.
type ScoredChunk struct {
	chunking.Chunk
	Score int `json:"score"`
}

// Retrieve returns at most MaxResults chunks sharing at least one word with
// the query, highest overlap first. Equal scores keep their input order.
func Retrieve(query string, chunks []chunking.Chunk) []chunking.Chunk {
	ranked := Rank(query, chunks)
	out := make([]chunking.Chunk, len(ranked))
	for i, sc := range ranked {
		out[i] = sc.Chunk
	}
	return out
}

// Rank is Retrieve with the scores attached.
func Rank(query string, chunks []chunking.Chunk) []ScoredChunk {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return []ScoredChunk{}
	}

	scored := make([]ScoredChunk, len(chunks))
	for i, c := range chunks {
		scored[i] = ScoredChunk{Chunk: c, Score: overlap(terms, wordSet(c.Text))}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > MaxResults {
		scored = scored[:MaxResults]
	}

	out := make([]ScoredChunk, 0, len(scored))
	for _, sc := range scored {
		if sc.Score > 0 {
			out = append(out, sc)
		}
	}
	return out
}

// queryTerms lowercases the query, splits it on whitespace and keeps the
// distinct words longer than two characters.
func queryTerms(query string) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(w) > minQueryTokenLen {
			terms[w] = struct{}{}
		}
	}
	return terms
}

func wordSet(text string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		words[w] = struct{}{}
	}
	return words
}

func overlap(terms, words map[string]struct{}) int {
	n := 0
	for t := range terms {
		if _, ok := words[t]; ok {
			n++
		}
	}
	return n
}
