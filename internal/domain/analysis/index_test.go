package analysis

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitVec(t *testing.T, ix *Index, bucket int) []float32 {
	t.Helper()
	vec := make([]float32, ix.dims)
	vec[bucket] = 1
	return vec
}

func TestIndex_QueryOrdering(t *testing.T) {
	ix := NewIndex(VectorDims)
	v := NewVectorizer()

	query := v.Vector("production database outage, all queries failing")
	require.NoError(t, ix.Upsert(1, v.Vector("production database outage, all queries failing right now")))
	require.NoError(t, ix.Upsert(2, v.Vector("database slow when exporting reports")))
	require.NoError(t, ix.Upsert(3, v.Vector("typo on the pricing page footer")))

	matches, err := ix.Query(query, 10, 0.01, 0)
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score,
			"scores must be monotonically non-increasing")
	}
	assert.Equal(t, uint(1), matches[0].IssueID)

	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Score, 0.0)
		assert.LessOrEqual(t, m.Score, 1.0)
	}
}

func TestIndex_TieBreakBySmallerID(t *testing.T) {
	ix := NewIndex(VectorDims)

	// Identical vectors for ids 9 and 4 force a score tie.
	vec := unitVec(t, ix, 7)
	require.NoError(t, ix.Upsert(9, vec))
	require.NoError(t, ix.Upsert(4, vec))

	matches, err := ix.Query(vec, 10, 0.5, 0)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, uint(4), matches[0].IssueID)
	assert.Equal(t, uint(9), matches[1].IssueID)
}

func TestIndex_ExcludesOwnID(t *testing.T) {
	ix := NewIndex(VectorDims)
	vec := unitVec(t, ix, 3)

	require.NoError(t, ix.Upsert(42, vec))
	require.NoError(t, ix.Upsert(43, vec))

	matches, err := ix.Query(vec, 10, 0.0, 42)
	require.NoError(t, err)
	for _, m := range matches {
		assert.NotEqual(t, uint(42), m.IssueID)
	}
	require.Len(t, matches, 1)
}

func TestIndex_RespectsKAndMinScore(t *testing.T) {
	ix := NewIndex(VectorDims)
	v := NewVectorizer()

	base := "checkout fails with card declined message"
	for i := uint(1); i <= 8; i++ {
		require.NoError(t, ix.Upsert(i, v.Vector(fmt.Sprintf("%s variant %d", base, i))))
	}

	matches, err := ix.Query(v.Vector(base), 3, 0.0, 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(matches), 3)

	strict, err := ix.Query(v.Vector(base), 10, 0.99, 0)
	require.NoError(t, err)
	for _, m := range strict {
		assert.GreaterOrEqual(t, m.Score, 0.99)
	}
}

func TestIndex_UpsertImmediatelyVisible(t *testing.T) {
	ix := NewIndex(VectorDims)
	v := NewVectorizer()

	text := "webhook deliveries delayed by several minutes"
	require.NoError(t, ix.Upsert(100, v.Vector(text)))

	matches, err := ix.Query(v.Vector(text), 5, 0.9, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, uint(100), matches[0].IssueID)
}

func TestIndex_RemoveDropsVector(t *testing.T) {
	ix := NewIndex(VectorDims)
	vec := unitVec(t, ix, 11)

	require.NoError(t, ix.Upsert(5, vec))
	require.Equal(t, 1, ix.Len())

	ix.Remove(5)
	assert.Zero(t, ix.Len())

	matches, err := ix.Query(vec, 10, 0.0, 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestIndex_UpsertReplacesVector(t *testing.T) {
	ix := NewIndex(VectorDims)

	first := unitVec(t, ix, 1)
	second := unitVec(t, ix, 2)

	require.NoError(t, ix.Upsert(7, first))
	require.NoError(t, ix.Upsert(7, second))

	matches, err := ix.Query(first, 10, 0.5, 0)
	require.NoError(t, err)
	assert.Empty(t, matches, "old vector must be gone after replacement")

	matches, err = ix.Query(second, 10, 0.5, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
}

func TestIndex_DimensionMismatch(t *testing.T) {
	ix := NewIndex(VectorDims)

	err := ix.Upsert(1, make([]float32, VectorDims+1))
	assert.Error(t, err)

	_, err = ix.Query(make([]float32, 3), 5, 0.0, 0)
	assert.Error(t, err)
}

func TestIndex_ConcurrentQueriesAndMutations(t *testing.T) {
	ix := NewIndex(VectorDims)
	v := NewVectorizer()

	for i := uint(1); i <= 50; i++ {
		require.NoError(t, ix.Upsert(i, v.Vector(fmt.Sprintf("seed issue number %d about billing", i))))
	}

	query := v.Vector("seed issue about billing")
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				id := uint(1000 + worker*100 + i)
				_ = ix.Upsert(id, v.Vector(fmt.Sprintf("concurrent insert %d", id)))
				matches, err := ix.Query(query, 5, 0.0, 0)
				assert.NoError(t, err)
				for _, m := range matches {
					assert.GreaterOrEqual(t, m.Score, 0.0)
					assert.LessOrEqual(t, m.Score, 1.0)
				}
				ix.Remove(id)
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 50, ix.Len())
}
