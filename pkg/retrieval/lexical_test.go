// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package retrieval

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leseb/pdfrag/pkg/chunking"
)

func mkChunks(texts ...string) []chunking.Chunk {
	chunks := make([]chunking.Chunk, len(texts))
	for i, t := range texts {
		chunks[i] = chunking.Chunk{ID: i, Text: t}
	}
	return chunks
}

func TestRetrieve_NoQuerySignal(t *testing.T) {
	chunks := mkChunks("a bc def", "bc a")
	for _, q := range []string{"", "   ", "a bc", "A BC"} {
		if got := Retrieve(q, chunks); len(got) != 0 {
			t.Errorf("Retrieve(%q) = %v, want empty", q, got)
		}
	}
}

func TestRetrieve_RanksByOverlap(t *testing.T) {
	chunks := mkChunks("the cat sat", "the dog ran", "unrelated text")

	got := Rank("cat sat where", chunks)
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d: %v", len(got), got)
	}
	if got[0].Text != "the cat sat" || got[0].Score != 2 {
		t.Errorf("expected %q with score 2, got %q with score %d", "the cat sat", got[0].Text, got[0].Score)
	}
}

func TestRetrieve_CaseInsensitiveAndDeduplicated(t *testing.T) {
	chunks := mkChunks("Goroutines and CHANNELS", "channels channels channels")

	got := Rank("channels CHANNELS goroutines", chunks)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].ID != 0 || got[0].Score != 2 {
		t.Errorf("expected chunk 0 with score 2 first, got %+v", got[0])
	}
	if got[1].ID != 1 || got[1].Score != 1 {
		t.Errorf("expected chunk 1 with score 1 second, got %+v", got[1])
	}
}

func TestRetrieve_WordsMatchWholeTokensOnly(t *testing.T) {
	chunks := mkChunks("concatenate strings", "the cat, the hat")
	if got := Retrieve("cat", chunks); len(got) != 0 {
		t.Errorf("expected no match for substring or punctuated token, got %v", got)
	}
}

func TestRetrieve_CapsAtMaxResults(t *testing.T) {
	var texts []string
	for i := 0; i < 8; i++ {
		// chunk i shares i+1 of the query words
		words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}[:i+1]
		texts = append(texts, strings.Join(words, " "))
	}
	chunks := mkChunks(texts...)

	got := Rank("alpha bravo charlie delta echo foxtrot golf hotel", chunks)
	if len(got) != MaxResults {
		t.Fatalf("expected %d results, got %d", MaxResults, len(got))
	}
	for i, sc := range got {
		wantID := 7 - i
		if sc.ID != wantID || sc.Score != wantID+1 {
			t.Errorf("result[%d] = id %d score %d, want id %d score %d", i, sc.ID, sc.Score, wantID, wantID+1)
		}
	}
}

func TestRetrieve_TiesKeepInputOrder(t *testing.T) {
	var texts []string
	for i := 0; i < 7; i++ {
		texts = append(texts, fmt.Sprintf("shared word number%d", i))
	}
	chunks := mkChunks(texts...)

	got := Retrieve("shared", chunks)
	if len(got) != MaxResults {
		t.Fatalf("expected %d results, got %d", MaxResults, len(got))
	}
	for i, c := range got {
		if c.ID != i {
			t.Errorf("result[%d] has id %d, want %d", i, c.ID, i)
		}
	}
}

func TestRetrieve_DropsZeroScoresInsideTopK(t *testing.T) {
	chunks := mkChunks("nothing here", "kubernetes cluster", "more nothing", "cluster only")

	got := Retrieve("kubernetes cluster upgrade", chunks)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d: %v", len(got), got)
	}
	if got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("expected ids [1 3], got [%d %d]", got[0].ID, got[1].ID)
	}
}

func TestRetrieve_DoesNotMutateInput(t *testing.T) {
	chunks := mkChunks("zero", "one match", "two match match")
	Retrieve("match", chunks)
	for i, c := range chunks {
		if c.ID != i {
			t.Fatalf("input reordered: chunk[%d] has id %d", i, c.ID)
		}
	}
}
