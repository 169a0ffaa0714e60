package analysis

import (
	"fmt"
	"sort"
	"sync"
)

// Match is one similarity query hit.
type Match struct {
	IssueID uint
	Score   float64
}

// Index is the in-memory similarity index: one embedding vector per
// issue id, queried by brute-force cosine scan. Vectors are copied on
// upsert and the map is guarded by a RWMutex, so queries always observe
// whole vectors and run concurrently with each other; mutations are
// serialized. Updates are visible to the next query immediately.
//
// The index is a derived structure: it is rebuilt from persisted issues
// on cold start and is never the source of truth.
type Index struct {
	mu      sync.RWMutex
	dims    int
	vectors map[uint][]float32
}

func NewIndex(dims int) *Index {
	return &Index{
		dims:    dims,
		vectors: make(map[uint][]float32),
	}
}

// Upsert replaces any existing vector for the issue id.
func (ix *Index) Upsert(issueID uint, vec []float32) error {
	if issueID == 0 {
		return fmt.Errorf("issue ID is required")
	}
	if len(vec) != ix.dims {
		return fmt.Errorf("vector dimension mismatch: got %d, want %d", len(vec), ix.dims)
	}

	stored := make([]float32, len(vec))
	copy(stored, vec)

	ix.mu.Lock()
	ix.vectors[issueID] = stored
	ix.mu.Unlock()
	return nil
}

// Remove drops the vector for the issue id. Queries after Remove never
// return that id.
func (ix *Index) Remove(issueID uint) {
	ix.mu.Lock()
	delete(ix.vectors, issueID)
	ix.mu.Unlock()
}

// Len returns the number of indexed vectors.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.vectors)
}

// Query returns up to k matches with cosine similarity >= minScore,
// ordered by descending score with ties broken by smaller issue id.
// excludeID is omitted from the results so an issue never matches
// itself. Scores are clamped into [0, 1].
func (ix *Index) Query(vec []float32, k int, minScore float64, excludeID uint) ([]Match, error) {
	if len(vec) != ix.dims {
		return nil, fmt.Errorf("vector dimension mismatch: got %d, want %d", len(vec), ix.dims)
	}
	if k <= 0 {
		return nil, nil
	}

	ix.mu.RLock()
	matches := make([]Match, 0, len(ix.vectors))
	for id, stored := range ix.vectors {
		if id == excludeID {
			continue
		}
		score := clampScore(dot(vec, stored))
		if score >= minScore {
			matches = append(matches, Match{IssueID: id, Score: score})
		}
	}
	ix.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].IssueID < matches[j].IssueID
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
