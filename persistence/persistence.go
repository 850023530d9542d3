// Package persistence provides durable storage for computed synopsis
// embeddings, keyed by content hash. Backends: in-memory (default for
// tests and ephemeral runs), BoltDB, and BadgerDB.
package persistence

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
)

// VectorStore is the embedding cache contract. Keys are opaque content
// hashes; values are fixed-dimension float32 vectors.
type VectorStore interface {
	Get(ctx context.Context, key string) ([]float32, bool, error)
	Put(ctx context.Context, key string, vector []float32) error
	Close() error
}

// Config specifies persistence configuration.
type Config struct {
	Type string `yaml:"type" json:"type"` // "memory", "bolt", "badger"
	Path string `yaml:"path" json:"path"` // storage path for persistent backends
}

// Supported persistence types.
const (
	TypeMemory = "memory"
	TypeBolt   = "bolt"
	TypeBadger = "badger"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Type {
	case TypeMemory:
		return nil
	case TypeBolt, TypeBadger:
		if c.Path == "" {
			return fmt.Errorf("path is required for %s persistence", c.Type)
		}
		return nil
	default:
		return fmt.Errorf("unsupported persistence type: %s", c.Type)
	}
}

// encodeVector serializes a float32 vector to little-endian bytes.
func encodeVector(vector []float32) []byte {
	buf := make([]byte, 4*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// decodeVector deserializes bytes produced by encodeVector.
func decodeVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("corrupt vector data: %d bytes", len(data))
	}
	vector := make([]float32, len(data)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vector, nil
}
