// Package app assembles the configured pipeline components for the
// command-line entry points.
package app

import (
	"context"
	"fmt"

	"docchat/internal/backend"
	"docchat/internal/chunker"
	"docchat/internal/config"
	"docchat/internal/embedding"
	"docchat/internal/generation"
	"docchat/internal/loader"
	"docchat/internal/normalize"
	"docchat/internal/service"
	"docchat/internal/vectorstore"
)

// App holds the assembled components.
type App struct {
	Config    *config.AppConfig
	Service   *service.Service
	Index     vectorstore.Index
	Embedder  embedding.Embedder
	Generator generation.Generator
}

// Options controls assembly.
type Options struct {
	// ConfigPath overrides the default config lookup when non-empty.
	ConfigPath string
	// WithGenerator builds and pings the answer generator. Ingestion and
	// search do not need one.
	WithGenerator bool
}

// Build loads the configuration and constructs the pipeline. Misconfiguration
// and unreachable local backends fail here, before any work starts.
func Build(ctx context.Context, opts Options) (*App, error) {
	var cfg *config.AppConfig
	var err error
	if opts.ConfigPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(opts.ConfigPath)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	emb, err := backend.NewEmbedder(ctx, cfg.Embedder)
	if err != nil {
		return nil, fmt.Errorf("embedder init: %w", err)
	}

	var gen generation.Generator
	if opts.WithGenerator {
		gen, err = backend.NewGenerator(ctx, cfg.Generator)
		if err != nil {
			return nil, fmt.Errorf("generator init: %w", err)
		}
	}

	index, err := backend.NewIndex(cfg.Index, emb.ModelName())
	if err != nil {
		return nil, fmt.Errorf("index init: %w", err)
	}

	svc := service.New(
		loader.New(cfg.Documents.Dir),
		normalize.New(cfg.Normalizer.CollapseNewlines),
		chunker.New(cfg.Chunker.Size, cfg.Chunker.Overlap),
		emb,
		gen,
		index,
		cfg.Retrieval.TopK,
	)

	return &App{Config: cfg, Service: svc, Index: index, Embedder: emb, Generator: gen}, nil
}
