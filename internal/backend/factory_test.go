package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docchat/internal/config"
	"docchat/internal/vectorstore/memory"
	"docchat/internal/vectorstore/sqlite"
)

func ollamaServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestNewEmbedderOllamaPingsAtStartup(t *testing.T) {
	ctx := context.Background()

	emb, err := NewEmbedder(ctx, config.EmbedderConfig{
		Type:   "ollama",
		Ollama: &config.OllamaEmbedderConfig{BaseURL: ollamaServer(t)},
	})
	require.NoError(t, err)
	assert.Equal(t, "all-minilm", emb.ModelName())

	_, err = NewEmbedder(ctx, config.EmbedderConfig{
		Type:   "ollama",
		Ollama: &config.OllamaEmbedderConfig{BaseURL: "http://127.0.0.1:1"},
	})
	assert.Error(t, err)
}

func TestNewEmbedderUnknownType(t *testing.T) {
	_, err := NewEmbedder(context.Background(), config.EmbedderConfig{Type: "bogus"})

	assert.Error(t, err)
}

func TestNewGeneratorOllamaPingsAtStartup(t *testing.T) {
	ctx := context.Background()

	gen, err := NewGenerator(ctx, config.GeneratorConfig{
		Type:   "ollama",
		Ollama: &config.OllamaGeneratorConfig{BaseURL: ollamaServer(t)},
	})
	require.NoError(t, err)
	assert.Equal(t, "llama3", gen.ModelName())

	_, err = NewGenerator(ctx, config.GeneratorConfig{
		Type:   "ollama",
		Ollama: &config.OllamaGeneratorConfig{BaseURL: "http://127.0.0.1:1"},
	})
	assert.Error(t, err)
}

func TestNewGeneratorOpenAIRequiresKey(t *testing.T) {
	t.Setenv("EMPTY_KEY", "")

	_, err := NewGenerator(context.Background(), config.GeneratorConfig{
		Type:   "openai",
		OpenAI: &config.OpenAIGeneratorConfig{APIKeyEnv: "EMPTY_KEY"},
	})

	assert.Error(t, err)
}

func TestNewIndex(t *testing.T) {
	ix, err := NewIndex(config.IndexConfig{Type: "memory"}, "fake")
	require.NoError(t, err)
	assert.IsType(t, &memory.Index{}, ix)

	ix, err = NewIndex(config.IndexConfig{Type: "sqlite", Path: "x.db"}, "fake")
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Store{}, ix)

	_, err = NewIndex(config.IndexConfig{Type: "bogus"}, "fake")
	assert.Error(t, err)
}
