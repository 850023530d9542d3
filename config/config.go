// Package config loads filmo configuration from YAML with environment
// variable overrides.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hibafl/filmo/persistence"
)

// Config represents the complete filmo configuration
type Config struct {
	// Server configuration
	Server ServerConfig `yaml:"server" json:"server"`

	// Catalog source configuration
	Catalog CatalogConfig `yaml:"catalog" json:"catalog"`

	// Embedding engine configuration
	Embedding EmbeddingConfig `yaml:"embedding" json:"embedding"`

	// Embedding cache configuration
	Cache persistence.Config `yaml:"cache" json:"cache"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host            string        `yaml:"host" json:"host"`
	Port            int           `yaml:"port" json:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// CatalogConfig locates the movie dataset.
type CatalogConfig struct {
	// Source is a local CSV path or an http(s) URL.
	Source string `yaml:"source" json:"source"`
}

// EmbeddingConfig contains embedding engine configuration
type EmbeddingConfig struct {
	// Engine type: "onnx", "ollama", "mock"
	Engine string `yaml:"engine" json:"engine"`

	// Model name
	Model string `yaml:"model" json:"model"`

	// Batch size for embedding generation
	BatchSize int `yaml:"batch_size" json:"batch_size"`

	// Ollama-specific configuration
	Ollama OllamaConfig `yaml:"ollama" json:"ollama"`

	// ONNX-specific configuration
	ONNX ONNXConfig `yaml:"onnx" json:"onnx"`
}

// OllamaConfig contains Ollama-specific configuration
type OllamaConfig struct {
	// Endpoint URL for Ollama API
	Endpoint string `yaml:"endpoint" json:"endpoint"`

	// Request timeout
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// ONNXConfig contains ONNX-specific configuration
type ONNXConfig struct {
	// Path to ONNX model file; a vocab.txt is expected alongside it
	ModelPath string `yaml:"model_path" json:"model_path"`

	// Number of threads
	NumThreads int `yaml:"num_threads" json:"num_threads"`
}

// LoadConfig loads configuration from file, environment, and defaults.
// Priority: defaults < config file < environment variables.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	// If no config path specified, try default location
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			configPath = filepath.Join(homeDir, ".filmo.yml")
		}
	}

	// Load from file if it exists
	if configPath != "" {
		if err := loadConfigFromFile(configPath, config); err != nil {
			// Only return error if file exists but can't be read
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
			}
		}
	}

	// Override with environment variables
	loadConfigFromEnv(config)

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadConfigFromFile loads configuration from a YAML file
func loadConfigFromFile(path string, config *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// loadConfigFromEnv overrides configuration with environment variables
func loadConfigFromEnv(config *Config) {
	if host := os.Getenv("FILMO_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("FILMO_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 && p <= 65535 {
			config.Server.Port = p
		}
	}

	if source := os.Getenv("FILMO_CATALOG_SOURCE"); source != "" {
		config.Catalog.Source = source
	}

	if engine := os.Getenv("FILMO_EMBEDDING_ENGINE"); engine != "" {
		config.Embedding.Engine = engine
	}
	if model := os.Getenv("FILMO_EMBEDDING_MODEL"); model != "" {
		config.Embedding.Model = model
	}
	if endpoint := os.Getenv("FILMO_OLLAMA_ENDPOINT"); endpoint != "" {
		config.Embedding.Ollama.Endpoint = endpoint
	}
	if modelPath := os.Getenv("FILMO_ONNX_MODEL_PATH"); modelPath != "" {
		config.Embedding.ONNX.ModelPath = modelPath
	}

	if backend := os.Getenv("FILMO_CACHE_BACKEND"); backend != "" {
		config.Cache.Type = backend
	}
	if path := os.Getenv("FILMO_CACHE_PATH"); path != "" {
		config.Cache.Path = path
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Catalog: CatalogConfig{
			Source: "data/movies.csv",
		},
		Embedding: EmbeddingConfig{
			Engine:    "mock",
			Model:     "all-MiniLM-L6-v2",
			BatchSize: 32,
			Ollama: OllamaConfig{
				Endpoint: "http://localhost:11434",
				Timeout:  30 * time.Second,
			},
			ONNX: ONNXConfig{
				ModelPath:  "models/all-MiniLM-L6-v2.onnx",
				NumThreads: 4,
			},
		},
		Cache: persistence.Config{
			Type: persistence.TypeMemory,
			Path: "data/filmo-cache.db",
		},
	}
}

// Validate checks configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Catalog.Source == "" {
		return fmt.Errorf("catalog source is required")
	}
	switch c.Embedding.Engine {
	case "onnx", "ollama", "mock":
	default:
		return fmt.Errorf("unsupported embedding engine: %s", c.Embedding.Engine)
	}
	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("invalid cache config: %w", err)
	}
	return nil
}
