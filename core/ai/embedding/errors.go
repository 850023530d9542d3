// Package embedding implements the dense embedding engines used for
// semantic search: an ONNX Runtime engine for local transformer models and
// an Ollama HTTP engine. Both produce vectors through the ai.EmbeddingEngine
// interface.
package embedding

import (
	"errors"
	"fmt"
)

// Common embedding errors.
var (
	// ErrModelNotLoaded indicates the model is not loaded or initialized
	ErrModelNotLoaded = errors.New("embedding model not loaded")

	// ErrModelInitFailed indicates model initialization failed
	ErrModelInitFailed = errors.New("embedding model initialization failed")

	// ErrInvalidInput indicates the input data is invalid
	ErrInvalidInput = errors.New("invalid input for embedding")

	// ErrDimensionMismatch indicates dimension mismatch in embeddings
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrUnsupportedModel indicates the model type is not supported
	ErrUnsupportedModel = errors.New("unsupported embedding model")
)

// EmbeddingError represents a structured embedding error with context.
type EmbeddingError struct {
	Op        string // Operation that failed
	Model     string // Model name
	Err       error  // Underlying error
	Details   string // Additional details
	Retryable bool   // Whether the operation can be retried
}

// Error implements the error interface.
func (e *EmbeddingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("embedding error in %s with model %s: %v (%s)", e.Op, e.Model, e.Err, e.Details)
	}
	return fmt.Sprintf("embedding error in %s with model %s: %v", e.Op, e.Model, e.Err)
}

// Unwrap returns the underlying error.
func (e *EmbeddingError) Unwrap() error {
	return e.Err
}

// IsRetryable returns whether the error is retryable.
func (e *EmbeddingError) IsRetryable() bool {
	return e.Retryable
}

// NewEmbeddingError creates a new embedding error.
func NewEmbeddingError(op, model string, err error, details string, retryable bool) *EmbeddingError {
	return &EmbeddingError{
		Op:        op,
		Model:     model,
		Err:       err,
		Details:   details,
		Retryable: retryable,
	}
}
