// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package chunking

import (
	"strings"
	"unicode/utf8"
)

// separators in decreasing order of significance: paragraph, line,
// sentence, word.
var separators = []string{"\n\n", "\n", ". ", " "}

// ChunkRecursive splits text at the strongest separator that keeps pieces
// within size characters, descending to weaker separators for pieces that
// are still too long and finally to fixed windows of (size, overlap).
// Blank pieces are dropped and ids are assigned in document order.
func ChunkRecursive(text string, size, overlap int) []Chunk {
	size, overlap = normalize(size, overlap, DefaultRecursiveSize, DefaultRecursiveOverlap)

	s := splitter{size: size, overlap: overlap}
	pieces := s.split(text, 0)

	kept := pieces[:0]
	for _, p := range pieces {
		if strings.TrimSpace(p) == "" {
			continue
		}
		kept = append(kept, p)
	}
	return number(kept)
}

type splitter struct {
	size    int
	overlap int
}

func (s splitter) split(text string, level int) []string {
	if utf8.RuneCountInString(text) <= s.size {
		return []string{text}
	}
	if level >= len(separators) {
		return windows(text, s.size, s.overlap)
	}

	sep := separators[level]
	sepLen := utf8.RuneCountInString(sep)

	var out []string
	var buf strings.Builder
	bufLen := 0

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		out = append(out, s.split(buf.String(), level+1)...)
		buf.Reset()
		bufLen = 0
	}

	for _, part := range strings.Split(text, sep) {
		partLen := utf8.RuneCountInString(part)
		if bufLen+partLen+sepLen > s.size {
			flush()
			buf.WriteString(part)
			bufLen = partLen
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString(sep)
			bufLen += sepLen
		}
		buf.WriteString(part)
		bufLen += partLen
	}
	flush()

	return out
}
