// filmo-server runs the movie assistant behind a REST API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hibafl/filmo/api"
	"github.com/hibafl/filmo/assistant"
	"github.com/hibafl/filmo/catalog"
	"github.com/hibafl/filmo/config"
	"github.com/hibafl/filmo/core/ai"
	"github.com/hibafl/filmo/core/ai/embedding"
	"github.com/hibafl/filmo/persistence"
	"github.com/hibafl/filmo/presenter"
	"github.com/hibafl/filmo/search"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to configuration file")
	flag.Parse()

	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, p, cleanup, err := buildAssistant(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer cleanup()

	server := api.NewServer(a, p, api.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		log.Fatalf("server failed: %v", err)
	case <-ctx.Done():
		log.Println("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}

// buildAssistant loads the catalog, warms the embedding engine, and
// precomputes the semantic index. Fatal errors here are startup errors;
// nothing in the per-query path depends on external services afterwards.
func buildAssistant(ctx context.Context, cfg *config.Config) (*assistant.Assistant, *presenter.Presenter, func(), error) {
	store, err := catalog.Load(cfg.Catalog.Source)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	log.Printf("loaded %d movies from %s", store.Len(), cfg.Catalog.Source)

	engine, err := embedding.CreateEngine(modelConfig(cfg))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create embedding engine: %w", err)
	}
	if err := engine.Warm(ctx); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to warm embedding engine: %w", err)
	}

	cache, err := persistence.NewVectorStore(cfg.Cache)
	if err != nil {
		engine.Close()
		return nil, nil, nil, fmt.Errorf("failed to open vector cache: %w", err)
	}

	semantic := search.NewSemantic(store, engine, cache)
	if err := semantic.Build(ctx); err != nil {
		engine.Close()
		cache.Close()
		return nil, nil, nil, fmt.Errorf("failed to build semantic index: %w", err)
	}
	log.Printf("semantic index ready (%d vectors)", semantic.CorpusSize())

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	a := assistant.New(store, semantic, rng)
	p := presenter.New(rng)

	cleanup := func() {
		engine.Close()
		cache.Close()
	}
	return a, p, cleanup, nil
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
