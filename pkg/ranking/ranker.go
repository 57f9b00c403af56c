package ranking

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Candidate is one stored vector offered for ranking.
type Candidate struct {
	SourceId  uuid.UUID
	Values    []float32
	Dimension int
}

// Match is one ranked result. Score is cosine similarity in [-1, 1].
type Match struct {
	SourceId uuid.UUID
	Score    float64
}

type Options struct {
	Limit     int
	Threshold float64
	ExcludeId *uuid.UUID
}

// CosineSimilarity returns the cosine of the angle between two vectors.
// Mismatched lengths or a zero-magnitude vector score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// Rank scores every candidate against the query vector and returns matches at
// or above the threshold, best first, truncated to Limit (when positive).
// The excluded id is dropped before ranking so it never displaces another
// result. Candidates whose vector length differs from the query are skipped;
// they came from a different embedding model and their scores would be
// meaningless.
func Rank(query []float32, candidates []Candidate, opts Options) []Match {
	var matches []Match
	for _, c := range candidates {
		if opts.ExcludeId != nil && c.SourceId == *opts.ExcludeId {
			continue
		}
		if len(c.Values) != len(query) {
			continue
		}
		score := CosineSimilarity(query, c.Values)
		if score >= opts.Threshold {
			matches = append(matches, Match{SourceId: c.SourceId, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if opts.Limit > 0 && len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}
	return matches
}

// DedupeByOwner collapses chunk-level matches to one match per owning
// document, keeping the best-scoring chunk. ownerOf maps a chunk id to its
// document id; matches with no owner are dropped. Order of the survivors
// follows the input order, which Rank already sorted by score.
func DedupeByOwner(matches []Match, ownerOf map[uuid.UUID]uuid.UUID) []Match {
	var out []Match
	seen := make(map[uuid.UUID]bool)
	for _, m := range matches {
		owner, ok := ownerOf[m.SourceId]
		if !ok {
			continue
		}
		if seen[owner] {
			continue
		}
		seen[owner] = true
		out = append(out, Match{SourceId: owner, Score: m.Score})
	}
	return out
}
