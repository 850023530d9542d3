package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hibafl/filmo/persistence"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mock", cfg.Embedding.Engine)
	assert.Equal(t, persistence.TypeMemory, cfg.Cache.Type)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filmo.yml")
	content := `
server:
  port: 9090
catalog:
  source: /data/movies.csv
embedding:
  engine: ollama
  model: nomic-embed-text
cache:
  type: bolt
  path: /tmp/cache.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/data/movies.csv", cfg.Catalog.Source)
	assert.Equal(t, "ollama", cfg.Embedding.Engine)
	assert.Equal(t, "nomic-embed-text", cfg.Embedding.Model)
	assert.Equal(t, persistence.TypeBolt, cfg.Cache.Type)
	// Untouched fields keep their defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FILMO_PORT", "7070")
	t.Setenv("FILMO_CATALOG_SOURCE", "https://example.com/movies.csv")
	t.Setenv("FILMO_EMBEDDING_ENGINE", "mock")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "https://example.com/movies.csv", cfg.Catalog.Source)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = -1 }},
		{"missing catalog source", func(c *Config) { c.Catalog.Source = "" }},
		{"unknown engine", func(c *Config) { c.Embedding.Engine = "tensorflow" }},
		{"bolt cache without path", func(c *Config) { c.Cache.Type = "bolt"; c.Cache.Path = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
