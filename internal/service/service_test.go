package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docchat/internal/chunker"
	"docchat/internal/domain"
	"docchat/internal/loader"
	"docchat/internal/normalize"
	"docchat/internal/vectorstore/memory"
)

// fakeEmbedder produces small deterministic vectors from the text bytes.
type fakeEmbedder struct{}

func (fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	var sum float32
	for _, b := range []byte(text) {
		sum += float32(b)
	}
	return []float32{sum, float32(len(text))}, nil
}

func (f fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		vecs[i], _ = f.Embed(ctx, t)
	}
	return vecs, nil
}

func (fakeEmbedder) Dimensions() int              { return 2 }
func (fakeEmbedder) ModelName() string            { return "fake" }
func (fakeEmbedder) Ping(ctx context.Context) error { return nil }

// fakeGenerator records every prompt and returns a canned answer.
type fakeGenerator struct {
	calls   int
	prompts []string
	answer  string
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	g.prompts = append(g.prompts, prompt)
	return g.answer, nil
}

func (g *fakeGenerator) ModelName() string            { return "fake" }
func (g *fakeGenerator) Ping(ctx context.Context) error { return nil }

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newService(t *testing.T, docsDir string, gen *fakeGenerator) *Service {
	t.Helper()
	return New(
		loader.New(docsDir),
		normalize.New(true),
		chunker.New(1000, 200),
		fakeEmbedder{},
		gen,
		memory.New(),
		5,
	)
}

func TestAskWithoutIndexReturnsSentinelWithoutGenerating(t *testing.T) {
	gen := &fakeGenerator{answer: "should never be used"}
	svc := newService(t, t.TempDir(), gen)

	answer, err := svc.Ask(context.Background(), "¿Cuáles son las materias?")

	require.NoError(t, err)
	assert.Equal(t, NoContextAnswer, answer)
	assert.Zero(t, gen.calls)
}

func TestRetrieveWithoutIndexIsEmpty(t *testing.T) {
	svc := newService(t, t.TempDir(), &fakeGenerator{})

	hits, err := svc.Retrieve(context.Background(), "anything", 5)

	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIngestEmptyDirectory(t *testing.T) {
	svc := newService(t, t.TempDir(), &fakeGenerator{})

	_, err := svc.Ingest(context.Background())

	assert.ErrorIs(t, err, domain.ErrNoDocuments)
}

func TestIngestAndAskEndToEnd(t *testing.T) {
	const pageText = "Plan de Estudios: Matemática I, Física, Química."
	dir := t.TempDir()
	writeDoc(t, dir, "plan.txt", pageText)
	gen := &fakeGenerator{answer: "Matemática I, Física y Química."}
	svc := newService(t, dir, gen)
	ctx := context.Background()

	stats, err := svc.Ingest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Pages)
	assert.Equal(t, 1, stats.Chunks)

	hits, err := svc.Retrieve(ctx, "¿Cuáles son las materias?", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	for _, subject := range []string{"Matemática I", "Física", "Química"} {
		assert.Contains(t, hits[0].Chunk.Content, subject)
	}
	assert.Equal(t, "plan.txt", hits[0].Chunk.SourceID)
	assert.Equal(t, 1, hits[0].Chunk.PageNumber)

	answer, err := svc.Ask(ctx, "¿Cuáles son las materias?")
	require.NoError(t, err)
	assert.Equal(t, gen.answer, answer)
	require.Equal(t, 1, gen.calls)

	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "EXCLUSIVAMENTE")
	assert.Contains(t, prompt, `di "No encuentro esa información"`)
	assert.Contains(t, prompt, "PREGUNTA:\n¿Cuáles son las materias?")
	assert.Equal(t, pageText, promptContext(t, prompt))
}

func TestAnswerWithExplicitHits(t *testing.T) {
	gen := &fakeGenerator{answer: "ok"}
	svc := newService(t, t.TempDir(), gen)

	answer, err := svc.Answer(context.Background(), "¿qué dice?", []domain.RetrievalHit{
		{Chunk: domain.Chunk{Content: "el dato buscado"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", answer)
	require.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.prompts[0], "el dato buscado")
}

func TestPromptContextJoinsHitsWithBlankLine(t *testing.T) {
	hits := []domain.RetrievalHit{
		{Chunk: domain.Chunk{Content: "first chunk"}},
		{Chunk: domain.Chunk{Content: "second chunk"}},
	}

	assert.Equal(t, "first chunk\n\nsecond chunk", assembleContext(hits))
}

func TestRetrieveOrdersByDistance(t *testing.T) {
	dir := t.TempDir()
	// two documents far enough apart in the fake embedding space
	writeDoc(t, dir, "a.txt", "aaaa")
	writeDoc(t, dir, "b.txt", "zzzz")
	svc := newService(t, dir, &fakeGenerator{})
	ctx := context.Background()

	_, err := svc.Ingest(ctx)
	require.NoError(t, err)

	hits, err := svc.Retrieve(ctx, "aaaa", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "a.txt", hits[0].Chunk.SourceID)
	assert.Zero(t, hits[0].Distance)
	assert.Greater(t, hits[1].Distance, hits[0].Distance)
}

// promptContext extracts the substituted context block from a rendered
// prompt.
func promptContext(t *testing.T, prompt string) string {
	t.Helper()
	_, rest, ok := strings.Cut(prompt, "CONTEXTO:\n")
	require.True(t, ok)
	contextText, _, ok := strings.Cut(rest, "\n\nPREGUNTA:")
	require.True(t, ok)
	return contextText
}
