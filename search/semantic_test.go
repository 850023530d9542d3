package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hibafl/filmo/core/ai"
	"github.com/hibafl/filmo/persistence"
)

func newTestSemantic(t *testing.T, cache VectorCache) *Semantic {
	t.Helper()
	engine := ai.NewMockEmbeddingEngine(ai.ModelConfig{Name: "mock"})
	s := NewSemantic(testStore(), engine, cache)
	require.NoError(t, s.Build(context.Background()))
	return s
}

func TestSemanticSearch(t *testing.T) {
	s := newTestSemantic(t, nil)
	ctx := context.Background()

	t.Run("ranks the matching synopsis first", func(t *testing.T) {
		// Querying with a synopsis verbatim must rank its own record first.
		target := testRecords()[3]
		got := s.Search(ctx, target.Synopsis, 3)
		require.NotEmpty(t, got)
		assert.Equal(t, target.ID, got[0].ID)
	})

	t.Run("respects topK", func(t *testing.T) {
		got := s.Search(ctx, "space travel", 2)
		assert.Len(t, got, 2)
	})

	t.Run("defaults topK", func(t *testing.T) {
		got := s.Search(ctx, "anything at all", 0)
		assert.Len(t, got, len(testRecords())) // catalog smaller than default 10
	})

	t.Run("deterministic ordering", func(t *testing.T) {
		a := s.Search(ctx, "love in space", 5)
		b := s.Search(ctx, "love in space", 5)
		require.Equal(t, len(a), len(b))
		for i := range a {
			assert.Equal(t, a[i].ID, b[i].ID)
		}
	})
}

func TestSemanticBuildUsesCache(t *testing.T) {
	cache := persistence.NewMemoryStore()

	s := newTestSemantic(t, cache)
	assert.Equal(t, len(testRecords()), s.CorpusSize())
	assert.Equal(t, len(testRecords()), cache.Len())

	// A second build over the same catalog is served entirely from cache and
	// must produce an identical corpus.
	s2 := newTestSemantic(t, cache)
	assert.Equal(t, s.CorpusSize(), s2.CorpusSize())
	assert.Equal(t, len(testRecords()), cache.Len())

	got := s2.Search(context.Background(), testRecords()[0].Synopsis, 1)
	require.NotEmpty(t, got)
	assert.Equal(t, "0", got[0].ID)
}

func TestSemanticEmptyCorpus(t *testing.T) {
	engine := ai.NewMockEmbeddingEngine(ai.ModelConfig{Name: "mock"})
	s := NewSemantic(testStore(), engine, nil)
	// Search before Build degrades to empty, not a panic.
	assert.Empty(t, s.Search(context.Background(), "anything", 5))
}
