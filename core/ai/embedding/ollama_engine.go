package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/hibafl/filmo/core/ai"
)

// OllamaEmbeddingEngine implements ai.EmbeddingEngine against Ollama's
// embeddings API, for deployments that keep the model out of process.
type OllamaEmbeddingEngine struct {
	config      *ai.ModelConfig
	httpClient  *http.Client
	modelInfo   ai.ModelInfo
	initialized bool
	mu          sync.RWMutex
}

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// NewOllamaEmbeddingEngine creates a new Ollama embedding engine.
func NewOllamaEmbeddingEngine(config *ai.ModelConfig) (*OllamaEmbeddingEngine, error) {
	if config == nil {
		return nil, NewEmbeddingError("NewOllamaEmbeddingEngine", "", ErrInvalidInput, "model config is nil", false)
	}
	if config.Path == "" {
		return nil, NewEmbeddingError("NewOllamaEmbeddingEngine", "", ErrInvalidInput, "model name (Path) is required for Ollama", false)
	}
	if config.OllamaEndpoint == "" {
		config.OllamaEndpoint = "http://localhost:11434"
	}

	timeout := config.TimeoutDuration
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OllamaEmbeddingEngine{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		modelInfo: ai.ModelInfo{
			Name:      config.Path,
			Dimension: config.Dimensions,
		},
	}, nil
}

// Embed generates embeddings for the given content.
func (e *OllamaEmbeddingEngine) Embed(ctx context.Context, content []string) ([][]float32, error) {
	e.mu.RLock()
	if !e.initialized {
		e.mu.RUnlock()
		return nil, NewEmbeddingError("Embed", e.config.Path, ErrModelNotLoaded, "engine not initialized", false)
	}
	e.mu.RUnlock()

	if len(content) == 0 {
		return [][]float32{}, nil
	}

	embeddings := make([][]float32, len(content))
	for i, text := range content {
		embedding, err := e.embedSingle(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = embedding
	}
	return embeddings, nil
}

// EmbedBatch generates embeddings in batches. Ollama has no native batch
// endpoint, so batching only bounds error attribution.
func (e *OllamaEmbeddingEngine) EmbedBatch(ctx context.Context, content []string, batchSize int) ([][]float32, error) {
	if batchSize <= 0 {
		batchSize = e.config.BatchSize
	}
	if batchSize <= 0 {
		batchSize = 32
	}

	var all [][]float32
	for i := 0; i < len(content); i += batchSize {
		end := i + batchSize
		if end > len(content) {
			end = len(content)
		}
		embeddings, err := e.Embed(ctx, content[i:end])
		if err != nil {
			return nil, fmt.Errorf("failed to embed batch at index %d: %w", i, err)
		}
		all = append(all, embeddings...)
	}
	return all, nil
}

// GetModelInfo returns information about the model.
func (e *OllamaEmbeddingEngine) GetModelInfo() ai.ModelInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.modelInfo
}

// Warm tests connection and model availability.
func (e *OllamaEmbeddingEngine) Warm(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return nil
	}
	vec, err := e.embedSingle(ctx, "warmup")
	if err != nil {
		return NewEmbeddingError("Warm", e.config.Path, err, "failed to warm up Ollama engine", true)
	}
	if e.config.Dimensions == 0 && len(vec) > 0 {
		e.modelInfo.Dimension = len(vec)
		e.config.Dimensions = len(vec)
	}
	e.initialized = true
	return nil
}

// Close releases resources.
func (e *OllamaEmbeddingEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.initialized = false
	return nil
}

func (e *OllamaEmbeddingEngine) embedSingle(ctx context.Context, text string) ([]float32, error) {
	url := fmt.Sprintf("%s/api/embeddings", e.config.OllamaEndpoint)

	jsonData, err := json.Marshal(ollamaEmbedRequest{Model: e.config.Path, Prompt: text})
	if err != nil {
		return nil, NewEmbeddingError("embedSingle", e.config.Path, err, "failed to marshal request", false)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, NewEmbeddingError("embedSingle", e.config.Path, err, "failed to create request", false)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, NewEmbeddingError("embedSingle", e.config.Path, err, "failed to send request", true)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewEmbeddingError("embedSingle", e.config.Path,
			fmt.Errorf("status %d: %s", resp.StatusCode, string(body)),
			"Ollama API error", resp.StatusCode >= 500)
	}

	var ollamaResp ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return nil, NewEmbeddingError("embedSingle", e.config.Path, err, "failed to decode response", false)
	}

	if e.config.NormalizeEmbeddings {
		normalizeEmbeddings([][]float32{ollamaResp.Embedding})
	}

	return ollamaResp.Embedding, nil
}
