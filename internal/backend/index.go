package backend

import (
	"fmt"

	"docchat/internal/config"
	"docchat/internal/vectorstore"
	"docchat/internal/vectorstore/memory"
	"docchat/internal/vectorstore/sqlite"
)

// NewIndex builds the configured vector index. The embedding model name is
// recorded in durable indexes so a scheme change is detectable later.
func NewIndex(cfg config.IndexConfig, embeddingModel string) (vectorstore.Index, error) {
	switch cfg.Type {
	case "sqlite":
		return sqlite.New(cfg.Path, embeddingModel), nil
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown index type %q", cfg.Type)
	}
}
