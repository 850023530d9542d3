package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/hibafl/filmo/catalog"
	"github.com/hibafl/filmo/core"
	"github.com/hibafl/filmo/core/ai"
)

// DefaultSemanticTopK is the fallback result count for semantic search.
const DefaultSemanticTopK = 10

// VectorCache stores computed synopsis embeddings across restarts so the
// corpus does not have to be re-encoded on every startup. Implementations
// live in the persistence package.
type VectorCache interface {
	Get(ctx context.Context, key string) ([]float32, bool, error)
	Put(ctx context.Context, key string, vector []float32) error
}

// Semantic ranks catalog entries by dense-vector cosine similarity between
// the query and precomputed synopsis embeddings. It is the fallback path
// when filtered search finds nothing.
type Semantic struct {
	catalog *catalog.Store
	engine  ai.EmbeddingEngine
	cache   VectorCache

	// One vector per catalog record, in catalog order. Written once by
	// Build, read-only afterwards.
	corpus [][]float32
}

// NewSemantic creates a semantic search over the catalog. cache may be nil,
// in which case every Build re-encodes the full corpus.
func NewSemantic(cat *catalog.Store, engine ai.EmbeddingEngine, cache VectorCache) *Semantic {
	return &Semantic{catalog: cat, engine: engine, cache: cache}
}

// Build precomputes the synopsis embeddings for the whole catalog. Cached
// vectors are reused; only cache misses hit the embedding engine. Must be
// called before Search.
func (s *Semantic) Build(ctx context.Context) error {
	records := s.catalog.Records()
	modelName := s.engine.GetModelInfo().Name

	s.corpus = make([][]float32, len(records))
	missing := make([]int, 0, len(records))
	texts := make([]string, 0, len(records))

	for i, m := range records {
		if s.cache != nil {
			vec, ok, err := s.cache.Get(ctx, vectorCacheKey(modelName, m.Synopsis))
			if err != nil {
				return fmt.Errorf("embedding cache read: %w", err)
			}
			if ok {
				s.corpus[i] = vec
				continue
			}
		}
		missing = append(missing, i)
		texts = append(texts, m.Synopsis)
	}

	if len(missing) == 0 {
		return nil
	}

	embeddings, err := s.engine.EmbedBatch(ctx, texts, 0)
	if err != nil {
		return fmt.Errorf("failed to embed catalog synopses: %w", err)
	}
	if len(embeddings) != len(missing) {
		return fmt.Errorf("embedding count mismatch: got %d, want %d", len(embeddings), len(missing))
	}

	for j, idx := range missing {
		s.corpus[idx] = embeddings[j]
		if s.cache != nil {
			key := vectorCacheKey(modelName, records[idx].Synopsis)
			if err := s.cache.Put(ctx, key, embeddings[j]); err != nil {
				return fmt.Errorf("embedding cache write: %w", err)
			}
		}
	}
	return nil
}

// Search encodes rawQuery and returns the topK most similar records in
// descending similarity order. Ties keep catalog order. A failed encode
// degrades to an empty result rather than surfacing per-query errors.
func (s *Semantic) Search(ctx context.Context, rawQuery string, topK int) []core.MovieRecord {
	if topK <= 0 {
		topK = DefaultSemanticTopK
	}
	if len(s.corpus) == 0 {
		return nil
	}

	vecs, err := s.engine.Embed(ctx, []string{rawQuery})
	if err != nil || len(vecs) == 0 {
		return nil
	}
	query := vecs[0]

	records := s.catalog.Records()
	ranked := make([]core.RankedMovie, 0, len(s.corpus))
	for i, doc := range s.corpus {
		sim, err := core.CosineSimilarity32(query, doc)
		if err != nil {
			continue
		}
		ranked = append(ranked, core.RankedMovie{Movie: records[i], Score: float64(sim)})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return core.Records(ranked)
}

// CorpusSize reports how many synopsis vectors are loaded.
func (s *Semantic) CorpusSize() int {
	return len(s.corpus)
}

func vectorCacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
