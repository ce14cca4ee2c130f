// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package chunking

// ChunkFixed splits text into windows of size characters, each starting
// size-overlap characters after the previous one. Windows stop once one
// reaches the end of the text, so no empty or fully overlapped tail is
// emitted. If size <= 0, DefaultFixedSize is used. If overlap < 0 or
// >= size, DefaultFixedOverlap is used (clamped to < size).
func ChunkFixed(text string, size, overlap int) []Chunk {
	size, overlap = normalize(size, overlap, DefaultFixedSize, DefaultFixedOverlap)
	return number(windows(text, size, overlap))
}

// windows returns the raw window texts without ids.
func windows(text string, size, overlap int) []string {
	if len(text) == 0 {
		return nil
	}

	runes := []rune(text)
	step := size - overlap
	if step <= 0 {
		step = 1
	}

	var out []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return out
}
