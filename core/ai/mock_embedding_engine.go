package ai

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// MockEmbeddingEngine is a deterministic engine for tests and offline runs.
// Each token is hashed into a fixed number of dimensions, so texts sharing
// vocabulary land close together under cosine similarity while the engine
// stays fully reproducible.
type MockEmbeddingEngine struct {
	config    ModelConfig
	modelInfo ModelInfo
}

// NewMockEmbeddingEngine creates a new mock embedding engine.
func NewMockEmbeddingEngine(config ModelConfig) *MockEmbeddingEngine {
	dim := config.Dimensions
	if dim <= 0 {
		dim = 128
	}
	return &MockEmbeddingEngine{
		config: config,
		modelInfo: ModelInfo{
			Name:      config.Name,
			Version:   "1.0",
			Dimension: dim,
			MaxTokens: config.MaxTokens,
		},
	}
}

// Embed generates deterministic embeddings for the given content.
func (m *MockEmbeddingEngine) Embed(ctx context.Context, content []string) ([][]float32, error) {
	embeddings := make([][]float32, len(content))
	for i, text := range content {
		embeddings[i] = m.embedSingle(text)
	}
	return embeddings, nil
}

// EmbedBatch processes content in batches.
func (m *MockEmbeddingEngine) EmbedBatch(ctx context.Context, content []string, batchSize int) ([][]float32, error) {
	if batchSize <= 0 {
		batchSize = m.config.BatchSize
		if batchSize <= 0 {
			batchSize = 32
		}
	}

	var all [][]float32
	for i := 0; i < len(content); i += batchSize {
		end := i + batchSize
		if end > len(content) {
			end = len(content)
		}
		embeddings, err := m.Embed(ctx, content[i:end])
		if err != nil {
			return nil, err
		}
		all = append(all, embeddings...)
	}
	return all, nil
}

// GetModelInfo returns metadata about the mock model.
func (m *MockEmbeddingEngine) GetModelInfo() ModelInfo {
	return m.modelInfo
}

// Warm is a no-op for the mock engine.
func (m *MockEmbeddingEngine) Warm(ctx context.Context) error {
	return nil
}

// Close releases nothing.
func (m *MockEmbeddingEngine) Close() error {
	return nil
}

func (m *MockEmbeddingEngine) embedSingle(text string) []float32 {
	dim := m.modelInfo.Dimension
	vec := make([]float32, dim)

	for _, tok := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(tok))
		sum := h.Sum32()
		// Two buckets per token with hash-derived signs spreads mass enough
		// for cosine similarity to track shared vocabulary.
		vec[sum%uint32(dim)] += signFromBit(sum, 0)
		vec[(sum>>8)%uint32(dim)] += signFromBit(sum, 1)
	}

	var norm float32
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		inv := float32(1.0 / math.Sqrt(float64(norm)))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec
}

func signFromBit(h uint32, bit uint) float32 {
	if h>>(16+bit)&1 == 1 {
		return -1
	}
	return 1
}
