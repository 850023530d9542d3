// filmo is the interactive terminal chat for the movie assistant.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/hibafl/filmo/assistant"
	"github.com/hibafl/filmo/catalog"
	"github.com/hibafl/filmo/config"
	"github.com/hibafl/filmo/core/ai"
	"github.com/hibafl/filmo/core/ai/embedding"
	"github.com/hibafl/filmo/persistence"
	"github.com/hibafl/filmo/presenter"
	"github.com/hibafl/filmo/search"
	"github.com/hibafl/filmo/tui"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to configuration file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	store, err := catalog.Load(cfg.Catalog.Source)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}

	engine, err := embedding.CreateEngine(modelConfig(cfg))
	if err != nil {
		log.Fatalf("failed to create embedding engine: %v", err)
	}
	defer engine.Close()
	if err := engine.Warm(ctx); err != nil {
		log.Fatalf("failed to warm embedding engine: %v", err)
	}

	cache, err := persistence.NewVectorStore(cfg.Cache)
	if err != nil {
		log.Fatalf("failed to open vector cache: %v", err)
	}
	defer cache.Close()

	semantic := search.NewSemantic(store, engine, cache)
	if err := semantic.Build(ctx); err != nil {
		log.Fatalf("failed to build semantic index: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	a := assistant.New(store, semantic, rng)
	p := presenter.New(rng)

	program := tea.NewProgram(tui.New(a, p, presenter.NoopSpeaker{}), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("tui error: %v", err)
	}
}

func modelConfig(cfg *config.Config) ai.ModelConfig {
	mc := ai.ModelConfig{
		Name:                cfg.Embedding.Model,
		Type:                cfg.Embedding.Engine,
		BatchSize:           cfg.Embedding.BatchSize,
		NormalizeEmbeddings: true,
	}
	switch cfg.Embedding.Engine {
	case ai.ModelTypeONNX:
		mc.Path = cfg.Embedding.ONNX.ModelPath
		mc.NumThreads = cfg.Embedding.ONNX.NumThreads
	case ai.ModelTypeOllama:
		mc.Path = cfg.Embedding.Model
		mc.OllamaEndpoint = cfg.Embedding.Ollama.Endpoint
		mc.TimeoutDuration = cfg.Embedding.Ollama.Timeout
	}
	return mc
}
