// Package service wires the pipeline: documents are loaded, normalized,
// chunked, embedded and indexed; questions are embedded, matched against
// the index and answered from the retrieved context.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docchat/internal/chunker"
	"docchat/internal/domain"
	"docchat/internal/embedding"
	"docchat/internal/generation"
	"docchat/internal/loader"
	"docchat/internal/normalize"
	"docchat/internal/vectorstore"
)

// Service runs document ingestion and question answering over one index.
type Service struct {
	loader     *loader.Loader
	normalizer *normalize.Normalizer
	chunker    *chunker.WindowChunker
	embedder   embedding.Embedder
	generator  generation.Generator
	index      vectorstore.Index
	topK       int
}

// IngestStats summarizes an ingestion run.
type IngestStats struct {
	Pages  int
	Chunks int
}

// New assembles the service. topK controls how many chunks reach the
// generator per question.
func New(
	ld *loader.Loader,
	norm *normalize.Normalizer,
	ch *chunker.WindowChunker,
	emb embedding.Embedder,
	gen generation.Generator,
	index vectorstore.Index,
	topK int,
) *Service {
	if topK <= 0 {
		topK = 5
	}
	return &Service{
		loader:     ld,
		normalizer: norm,
		chunker:    ch,
		embedder:   emb,
		generator:  gen,
		index:      index,
		topK:       topK,
	}
}

// Ingest loads every document, normalizes and chunks the pages, embeds all
// chunks and atomically replaces the index with the result. Returns
// domain.ErrNoDocuments when the documents directory yields nothing
// readable.
func (s *Service) Ingest(ctx context.Context) (IngestStats, error) {
	pages, err := s.loader.LoadAll()
	if err != nil {
		return IngestStats{}, err
	}

	for i := range pages {
		pages[i].Text = s.normalizer.Normalize(pages[i].Text)
	}
	chunks := s.chunker.Split(pages)
	if len(chunks) == 0 {
		return IngestStats{}, domain.ErrNoDocuments
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vecs, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return IngestStats{}, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vecs) != len(chunks) {
		return IngestStats{}, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vecs), len(chunks))
	}

	entries := make([]domain.IndexEntry, len(chunks))
	for i := range chunks {
		entries[i] = domain.IndexEntry{Chunk: chunks[i], Vector: vecs[i]}
	}
	if err := s.index.Rebuild(ctx, entries); err != nil {
		return IngestStats{}, fmt.Errorf("rebuild index: %w", err)
	}
	return IngestStats{Pages: len(pages), Chunks: len(chunks)}, nil
}

// Retrieve embeds the query and returns the k nearest chunks. An index
// that has never been built yields no hits rather than an error, so a
// fresh install degrades to "no information" instead of failing.
func (s *Service) Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievalHit, error) {
	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	hits, err := s.index.Search(ctx, vec, k)
	if err != nil {
		if errors.Is(err, domain.ErrIndexNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("search index: %w", err)
	}
	return hits, nil
}

// Ask answers a question from the indexed documents.
func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	hits, err := s.Retrieve(ctx, question, s.topK)
	if err != nil {
		return "", err
	}
	return s.Answer(ctx, question, hits)
}

// Answer generates an answer grounded in the given hits. With no hits it
// returns the fixed sentinel without calling the generator.
func (s *Service) Answer(ctx context.Context, question string, hits []domain.RetrievalHit) (string, error) {
	if len(hits) == 0 {
		return NoContextAnswer, nil
	}
	prompt := buildPrompt(assembleContext(hits), question)
	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return answer, nil
}

// assembleContext joins the retrieved chunk contents, nearest first,
// separated by blank lines.
func assembleContext(hits []domain.RetrievalHit) string {
	parts := make([]string, len(hits))
	for i, h := range hits {
		parts[i] = h.Chunk.Content
	}
	return strings.Join(parts, "\n\n")
}

func buildPrompt(contextText, question string) string {
	return fmt.Sprintf(promptTemplate, contextText, question)
}
