// Package backend constructs the embedder and generator selected by the
// configuration. Local backends are pinged here so that an Ollama server
// that is not running fails at startup instead of mid-pipeline.
package backend

import (
	"context"
	"fmt"
	"time"

	"docchat/internal/config"
	"docchat/internal/embedding"
	embollama "docchat/internal/embedding/ollama"
	embopenai "docchat/internal/embedding/openai"
	"docchat/internal/generation"
	genollama "docchat/internal/generation/ollama"
	genopenai "docchat/internal/generation/openai"
)

// NewEmbedder builds the configured embedder. Hosted backends are validated
// for credentials only; their availability is a per-call concern.
func NewEmbedder(ctx context.Context, cfg config.EmbedderConfig) (embedding.Embedder, error) {
	switch cfg.Type {
	case "openai":
		var c embopenai.Config
		if cfg.OpenAI != nil {
			c = embopenai.Config{
				BaseURL:   cfg.OpenAI.BaseURL,
				APIKeyEnv: cfg.OpenAI.APIKeyEnv,
				Model:     cfg.OpenAI.Model,
				Timeout:   time.Duration(cfg.OpenAI.TimeoutSecs) * time.Second,
			}
		}
		return embopenai.NewClient(c)
	case "ollama":
		var c embollama.Config
		if cfg.Ollama != nil {
			c = embollama.Config{
				BaseURL:    cfg.Ollama.BaseURL,
				Model:      cfg.Ollama.Model,
				Dimensions: cfg.Ollama.Dimensions,
				Timeout:    time.Duration(cfg.Ollama.TimeoutSecs) * time.Second,
			}
		}
		client := embollama.NewClient(c)
		if err := client.Ping(ctx); err != nil {
			return nil, fmt.Errorf("ollama embedder unreachable: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown embedder type %q", cfg.Type)
	}
}

// NewGenerator builds the configured answer generator.
func NewGenerator(ctx context.Context, cfg config.GeneratorConfig) (generation.Generator, error) {
	switch cfg.Type {
	case "openai":
		var c genopenai.Config
		if cfg.OpenAI != nil {
			c = genopenai.Config{
				BaseURL:     cfg.OpenAI.BaseURL,
				APIKeyEnv:   cfg.OpenAI.APIKeyEnv,
				Model:       cfg.OpenAI.Model,
				Temperature: cfg.OpenAI.Temperature,
				Timeout:     time.Duration(cfg.OpenAI.TimeoutSecs) * time.Second,
			}
		}
		return genopenai.NewClient(c)
	case "ollama":
		var c genollama.Config
		if cfg.Ollama != nil {
			c = genollama.Config{
				BaseURL:     cfg.Ollama.BaseURL,
				Model:       cfg.Ollama.Model,
				Temperature: cfg.Ollama.Temperature,
				Timeout:     time.Duration(cfg.Ollama.TimeoutSecs) * time.Second,
			}
		}
		client := genollama.NewClient(c)
		if err := client.Ping(ctx); err != nil {
			return nil, fmt.Errorf("ollama generator unreachable: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown generator type %q", cfg.Type)
	}
}
