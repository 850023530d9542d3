package embedding

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/hibafl/filmo/core/ai"
)

// ONNXEmbeddingEngine generates embeddings with ONNX Runtime. It expects a
// BERT-style sentence-transformer export (e.g. all-MiniLM-L6-v2) with a
// vocab.txt next to the model file, and mean-pools the last hidden state.
type ONNXEmbeddingEngine struct {
	modelPath  string
	config     ai.ModelConfig
	modelInfo  ai.ModelInfo
	tokenizer  *Tokenizer
	session    *ort.DynamicAdvancedSession
	inputNames []string
	mu         sync.Mutex
}

// NewONNXEmbeddingEngine creates an ONNX-based embedding engine.
func NewONNXEmbeddingEngine(modelPath string, config ai.ModelConfig) (*ONNXEmbeddingEngine, error) {
	if modelPath == "" {
		return nil, NewEmbeddingError("NewONNXEmbeddingEngine", config.Name, ErrInvalidInput, "model path is required", false)
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, NewEmbeddingError("NewONNXEmbeddingEngine", config.Name, ErrModelInitFailed, err.Error(), false)
	}

	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 256
	}

	tokenizer, err := NewTokenizer(filepath.Join(filepath.Dir(modelPath), "vocab.txt"), maxTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tokenizer: %w", err)
	}

	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			tokenizer.Close()
			return nil, NewEmbeddingError("NewONNXEmbeddingEngine", config.Name, ErrModelInitFailed,
				fmt.Sprintf("onnxruntime init: %v", err), false)
		}
	}

	inputs, _, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		tokenizer.Close()
		return nil, fmt.Errorf("failed to inspect model inputs: %w", err)
	}
	inputNames := make([]string, len(inputs))
	for i, in := range inputs {
		inputNames[i] = in.Name
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath, inputNames, []string{"last_hidden_state"}, nil)
	if err != nil {
		tokenizer.Close()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXEmbeddingEngine{
		modelPath:  modelPath,
		config:     config,
		tokenizer:  tokenizer,
		session:    session,
		inputNames: inputNames,
		modelInfo: ai.ModelInfo{
			Name:      config.Name,
			Version:   "1.0",
			Dimension: config.Dimensions,
			MaxTokens: maxTokens,
		},
	}, nil
}

// Embed generates embeddings for the given content.
func (e *ONNXEmbeddingEngine) Embed(ctx context.Context, content []string) ([][]float32, error) {
	if len(content) == 0 {
		return [][]float32{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids, masks := e.tokenizer.TokenizeBatch(content, e.config.MaxTokens)

	// The runtime session is not reentrant.
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return nil, NewEmbeddingError("Embed", e.config.Name, ErrModelNotLoaded, "engine closed", false)
	}

	batch := int64(len(ids))
	seqLen := int64(len(ids[0]))
	shape := ort.NewShape(batch, seqLen)

	inputIDs, err := ort.NewTensor(shape, flatten(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to create input_ids tensor: %w", err)
	}
	defer inputIDs.Destroy()

	attention, err := ort.NewTensor(shape, flatten(masks))
	if err != nil {
		return nil, fmt.Errorf("failed to create attention_mask tensor: %w", err)
	}
	defer attention.Destroy()

	inputs := make([]ort.Value, 0, len(e.inputNames))
	for _, name := range e.inputNames {
		switch name {
		case "input_ids":
			inputs = append(inputs, inputIDs)
		case "attention_mask":
			inputs = append(inputs, attention)
		case "token_type_ids":
			zeros, err := ort.NewTensor(shape, make([]int64, batch*seqLen))
			if err != nil {
				return nil, fmt.Errorf("failed to create token_type_ids tensor: %w", err)
			}
			defer zeros.Destroy()
			inputs = append(inputs, zeros)
		default:
			return nil, NewEmbeddingError("Embed", e.config.Name, ErrUnsupportedModel,
				fmt.Sprintf("unexpected model input %q", name), false)
		}
	}

	outputs := []ort.Value{nil}
	if err := e.session.Run(inputs, outputs); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}
	defer outputs[0].Destroy()

	hidden, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, NewEmbeddingError("Embed", e.config.Name, ErrUnsupportedModel, "non-float32 model output", false)
	}

	embeddings := meanPool(hidden.GetData(), masks, hidden.GetShape())
	if e.config.NormalizeEmbeddings {
		normalizeEmbeddings(embeddings)
	}
	if e.modelInfo.Dimension == 0 && len(embeddings) > 0 {
		e.modelInfo.Dimension = len(embeddings[0])
	}

	return embeddings, nil
}

// EmbedBatch processes content in batches for bounded memory use.
func (e *ONNXEmbeddingEngine) EmbedBatch(ctx context.Context, content []string, batchSize int) ([][]float32, error) {
	if batchSize <= 0 {
		batchSize = e.config.BatchSize
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
		embeddings, err := e.Embed(ctx, content[i:end])
		if err != nil {
			return nil, fmt.Errorf("batch processing failed at index %d: %w", i, err)
		}
		all = append(all, embeddings...)
	}
	return all, nil
}

// GetModelInfo returns metadata about the loaded model.
func (e *ONNXEmbeddingEngine) GetModelInfo() ai.ModelInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.modelInfo
}

// Warm runs a dummy inference so the first real query does not pay the
// session spin-up cost.
func (e *ONNXEmbeddingEngine) Warm(ctx context.Context) error {
	_, err := e.Embed(ctx, []string{"warmup"})
	if err != nil {
		return fmt.Errorf("warmup inference failed: %w", err)
	}
	return nil
}

// Close releases model resources.
func (e *ONNXEmbeddingEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		e.session.Destroy()
		e.session = nil
	}
	if e.tokenizer != nil {
		e.tokenizer.Close()
		e.tokenizer = nil
	}
	return nil
}

func flatten(rows [][]int64) []int64 {
	if len(rows) == 0 {
		return nil
	}
	flat := make([]int64, 0, len(rows)*len(rows[0]))
	for _, row := range rows {
		flat = append(flat, row...)
	}
	return flat
}

// meanPool averages the hidden states of non-padding positions, the
// standard sentence-transformers pooling.
func meanPool(data []float32, masks [][]int64, shape ort.Shape) [][]float32 {
	batch := int(shape[0])
	seqLen := int(shape[1])
	dim := int(shape[2])

	embeddings := make([][]float32, batch)
	for b := 0; b < batch; b++ {
		vec := make([]float32, dim)
		var count float32
		for s := 0; s < seqLen; s++ {
			if masks[b][s] == 0 {
				continue
			}
			count++
			base := (b*seqLen + s) * dim
			for d := 0; d < dim; d++ {
				vec[d] += data[base+d]
			}
		}
		if count > 0 {
			for d := range vec {
				vec[d] /= count
			}
		}
		embeddings[b] = vec
	}
	return embeddings
}

// normalizeEmbeddings normalizes each embedding to unit length in place.
func normalizeEmbeddings(embeddings [][]float32) {
	for _, embedding := range embeddings {
		var norm float32
		for _, v := range embedding {
			norm += v * v
		}
		if norm == 0 {
			continue
		}
		inv := float32(1.0 / math.Sqrt(float64(norm)))
		for i := range embedding {
			embedding[i] *= inv
		}
	}
}
