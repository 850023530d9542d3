package ai

import (
	"context"
	"time"
)

// EmbeddingEngine provides the core interface for dense embedding
// generation. Corpus precomputation and per-query encoding must go through
// the same engine instance so the vectors stay comparable.
type EmbeddingEngine interface {
	// Embed generates embeddings for a list of content strings
	Embed(ctx context.Context, content []string) ([][]float32, error)

	// EmbedBatch processes content in batches for optimal performance
	EmbedBatch(ctx context.Context, content []string, batchSize int) ([][]float32, error)

	// GetModelInfo returns metadata about the loaded model
	GetModelInfo() ModelInfo

	// Warm preloads the model for faster inference
	Warm(ctx context.Context) error

	// Close releases model resources
	Close() error
}

// ModelInfo contains metadata about embedding models.
type ModelInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Dimension int    `json:"dimension"`
	MaxTokens int    `json:"max_tokens"`
}

// Supported engine types.
const (
	ModelTypeONNX   = "onnx"
	ModelTypeOllama = "ollama"
	ModelTypeMock   = "mock"
)

// ModelConfig defines model loading configuration.
type ModelConfig struct {
	Name                string        `json:"name"`
	Type                string        `json:"type"` // onnx, ollama, mock
	Path                string        `json:"path"`
	OllamaEndpoint      string        `json:"ollama_endpoint,omitempty"`
	Dimensions          int           `json:"dimensions"`
	BatchSize           int           `json:"batch_size"`
	TimeoutDuration     time.Duration `json:"timeout_duration"`
	NumThreads          int           `json:"num_threads"`
	NormalizeEmbeddings bool          `json:"normalize_embeddings"`
	MaxTokens           int           `json:"max_tokens"`
}
