// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package chunking

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkFixed_EmptyInput(t *testing.T) {
	if got := ChunkFixed("", 100, 10); len(got) != 0 {
		t.Errorf("expected no chunks for empty input, got %v", got)
	}
}

func TestChunkFixed_ShortText(t *testing.T) {
	text := "hello"
	chunks := ChunkFixed(text, 100, 10)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != text || chunks[0].ID != 0 {
		t.Errorf("unexpected chunk %+v", chunks[0])
	}
}

func TestChunkFixed_ExactSize(t *testing.T) {
	chunks := ChunkFixed("abcde", 5, 0)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "abcde" {
		t.Errorf("expected %q, got %q", "abcde", chunks[0].Text)
	}
}

func TestChunkFixed_Windows(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		size    int
		overlap int
		want    []string
	}{
		{
			name: "no overlap",
			text: "abcdefghij", size: 5, overlap: 0,
			want: []string{"abcde", "fghij"},
		},
		{
			name: "with overlap",
			text: "abcdefghij", size: 5, overlap: 2,
			want: []string{"abcde", "defgh", "ghij"},
		},
		{
			name: "large overlap",
			text: "abcdefghij", size: 5, overlap: 4,
			want: []string{"abcde", "bcdef", "cdefg", "defgh", "efghi", "fghij"},
		},
		{
			name: "step divides length",
			text: "abcdefghi", size: 3, overlap: 0,
			want: []string{"abc", "def", "ghi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := ChunkFixed(tt.text, tt.size, tt.overlap)
			if len(chunks) != len(tt.want) {
				t.Fatalf("expected %d chunks, got %d: %v", len(tt.want), len(chunks), chunks)
			}
			for i, c := range chunks {
				if c.ID != i {
					t.Errorf("chunk[%d] has id %d", i, c.ID)
				}
				if c.Text != tt.want[i] {
					t.Errorf("chunk[%d] = %q, want %q", i, c.Text, tt.want[i])
				}
			}
		})
	}
}

func TestChunkFixed_ReconstructsText(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog while the cat watches from the fence."
	for _, p := range []struct{ size, overlap int }{{10, 0}, {10, 3}, {7, 6}, {16, 5}, {200, 20}} {
		chunks := ChunkFixed(text, p.size, p.overlap)

		var sb strings.Builder
		for i, c := range chunks {
			if i == 0 {
				sb.WriteString(c.Text)
				continue
			}
			sb.WriteString(string([]rune(c.Text)[p.overlap:]))
		}
		if sb.String() != text {
			t.Errorf("size=%d overlap=%d: reconstruction mismatch:\n got %q\nwant %q", p.size, p.overlap, sb.String(), text)
		}

		n := len([]rune(text))
		want := 1
		if n > p.size {
			step := p.size - p.overlap
			want = (n - p.overlap + step - 1) / step
		}
		if len(chunks) != want {
			t.Errorf("size=%d overlap=%d: expected %d chunks, got %d", p.size, p.overlap, want, len(chunks))
		}
	}
}

func TestChunkFixed_NoEmptyTail(t *testing.T) {
	text := strings.Repeat("x", 2000)
	chunks := ChunkFixed(text, 800, 200)

	// starts at 0, 600, 1200; the third window ends exactly at 2000
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Text == "" {
			t.Errorf("chunk[%d] is empty", i)
		}
	}
}

func TestChunkFixed_DefaultSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		chunks := ChunkFixed(strings.Repeat("x", 500), size, 0)
		if len(chunks) != 1 {
			t.Errorf("size=%d: expected 1 chunk with default size %d, got %d", size, DefaultFixedSize, len(chunks))
		}
	}

	chunks := ChunkFixed(strings.Repeat("y", DefaultFixedSize+100), 0, 0)
	if len(chunks) < 2 {
		t.Errorf("expected at least 2 chunks for text longer than DefaultFixedSize, got %d", len(chunks))
	}
}

func TestChunkFixed_OverlapClamping(t *testing.T) {
	text := strings.Repeat("a", 100)
	tests := []struct {
		name    string
		overlap int
	}{
		{"negative overlap", -5},
		{"overlap equals size", 20},
		{"overlap exceeds size", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// clamped overlap is 20/4 = 5, so step = 15 and starts are 0..90
			chunks := ChunkFixed(text, 20, tt.overlap)
			if len(chunks) != 7 {
				t.Errorf("expected 7 chunks with clamped overlap, got %d", len(chunks))
			}
		})
	}
}

func TestChunkFixed_MultiByte(t *testing.T) {
	text := "héllo wörld ñ"
	chunks := ChunkFixed(text, 4, 0)
	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d: %v", len(chunks), chunks)
	}
	for i, c := range chunks {
		if !utf8.ValidString(c.Text) {
			t.Errorf("chunk[%d] is not valid UTF-8: %q", i, c.Text)
		}
	}
	if chunks[0].Text != "héll" {
		t.Errorf("expected first chunk %q, got %q", "héll", chunks[0].Text)
	}
}
