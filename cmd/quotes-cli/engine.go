package main

import (
	"fmt"

	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/authors"
	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/config"
	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/core"
	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/corpus"
	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/embedding"
)

// engine bundles the wired-up components a command needs.
type engine struct {
	cfg         *config.Config
	store       *corpus.Store
	embedder    core.Embedder
	coordinator *core.Coordinator
	resolver    *authors.Resolver
}

// openEngine loads configuration and wires the corpus store, embedding
// provider, retrieval coordinator, and author resolver.
func openEngine() (*engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	store, err := corpus.Open(cfg.Corpus.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &engine{
		cfg:         cfg,
		store:       store,
		embedder:    embedder,
		coordinator: core.NewCoordinator(embedder, store),
		resolver:    authors.NewResolver(store),
	}, nil
}

func (e *engine) Close() error {
	return e.store.Close()
}

func newEmbedder(cfg *config.Config) (core.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return embedding.NewOpenAIClient(cfg.OpenAIAPIKey), nil
	case "local", "":
		return embedding.NewLocalClient(
			embedding.WithLocalBaseURL(cfg.Embedding.LocalURL),
			embedding.WithLocalModel(cfg.Embedding.Model),
		), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Embedding.Provider)
	}
}
