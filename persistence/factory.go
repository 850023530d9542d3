package persistence

import "fmt"

// NewVectorStore creates a vector store backend from config.
func NewVectorStore(config Config) (VectorStore, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	switch config.Type {
	case TypeMemory:
		return NewMemoryStore(), nil
	case TypeBolt:
		return NewBoltStore(config.Path)
	case TypeBadger:
		return NewBadgerStore(config.Path)
	default:
		return nil, fmt.Errorf("unsupported persistence type: %s", config.Type)
	}
}
