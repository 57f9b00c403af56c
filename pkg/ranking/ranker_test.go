package ranking

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestCosineSimilarity(t *testing.T) {
	if got := CosineSimilarity([]float32{1, 0}, []float32{1, 0}); math.Abs(got-1) > 1e-9 {
		t.Errorf("identical vectors: got %f, want 1", got)
	}
	if got := CosineSimilarity([]float32{1, 0}, []float32{0, 1}); math.Abs(got) > 1e-9 {
		t.Errorf("orthogonal vectors: got %f, want 0", got)
	}
	if got := CosineSimilarity([]float32{1, 0}, []float32{-1, 0}); math.Abs(got+1) > 1e-9 {
		t.Errorf("opposite vectors: got %f, want -1", got)
	}
	if got := CosineSimilarity([]float32{0, 0}, []float32{1, 0}); got != 0 {
		t.Errorf("zero vector: got %f, want 0", got)
	}
	if got := CosineSimilarity([]float32{1, 0, 0}, []float32{1, 0}); got != 0 {
		t.Errorf("length mismatch: got %f, want 0", got)
	}
}

func TestRankOrdersAndTruncates(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	candidates := []Candidate{
		{SourceId: a, Values: []float32{0.5, 0.5}},
		{SourceId: b, Values: []float32{1, 0}},
		{SourceId: c, Values: []float32{0, 1}},
	}

	matches := Rank([]float32{1, 0}, candidates, Options{Limit: 2, Threshold: 0.1})
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].SourceId != b {
		t.Error("exact match should rank first")
	}
	if matches[1].SourceId != a {
		t.Error("partial match should rank second")
	}
}

func TestRankThreshold(t *testing.T) {
	candidates := []Candidate{
		{SourceId: uuid.New(), Values: []float32{0, 1}}, // score 0
	}
	matches := Rank([]float32{1, 0}, candidates, Options{Threshold: 0.3})
	if len(matches) != 0 {
		t.Errorf("below-threshold candidate survived: %v", matches)
	}
}

func TestRankExcludesBeforeRanking(t *testing.T) {
	self, other := uuid.New(), uuid.New()
	candidates := []Candidate{
		{SourceId: self, Values: []float32{1, 0}},      // would be the top hit
		{SourceId: other, Values: []float32{0.9, 0.1}}, // must not be displaced
	}
	matches := Rank([]float32{1, 0}, candidates, Options{Limit: 1, ExcludeId: &self})
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].SourceId != other {
		t.Error("excluded id consumed a result slot")
	}
}

func TestRankSkipsMismatchedDimensions(t *testing.T) {
	good, bad := uuid.New(), uuid.New()
	candidates := []Candidate{
		{SourceId: good, Values: []float32{1, 0}},
		{SourceId: bad, Values: []float32{1, 0, 0}}, // different embedding model
	}
	matches := Rank([]float32{1, 0}, candidates, Options{})
	if len(matches) != 1 || matches[0].SourceId != good {
		t.Errorf("expected only the dimension-matched candidate, got %v", matches)
	}
}

func TestDedupeByOwnerKeepsBestChunk(t *testing.T) {
	docA, docB := uuid.New(), uuid.New()
	chunk1, chunk2, chunk3 := uuid.New(), uuid.New(), uuid.New()
	ownerOf := map[uuid.UUID]uuid.UUID{
		chunk1: docA,
		chunk2: docA,
		chunk3: docB,
	}

	// Already sorted best-first, two chunks of the same document.
	matches := []Match{
		{SourceId: chunk1, Score: 0.9},
		{SourceId: chunk2, Score: 0.7},
		{SourceId: chunk3, Score: 0.5},
	}

	out := DedupeByOwner(matches, ownerOf)
	if len(out) != 2 {
		t.Fatalf("got %d matches, want 2", len(out))
	}
	if out[0].SourceId != docA || out[0].Score != 0.9 {
		t.Errorf("document A should keep its best chunk score, got %v", out[0])
	}
	if out[1].SourceId != docB || out[1].Score != 0.5 {
		t.Errorf("document B mismatch: %v", out[1])
	}
}

func TestDedupeByOwnerDropsOrphans(t *testing.T) {
	orphan := uuid.New()
	out := DedupeByOwner([]Match{{SourceId: orphan, Score: 0.8}}, map[uuid.UUID]uuid.UUID{})
	if len(out) != 0 {
		t.Errorf("chunk without an owner should be dropped, got %v", out)
	}
}
