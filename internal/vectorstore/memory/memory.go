// Package memory provides a non-persistent brute-force index, used for
// tests and single-run deployments.
package memory

import (
	"context"
	"sort"
	"sync"

	"docchat/internal/domain"
	"docchat/internal/vectorstore"
)

// Ensure Index implements the interface.
var _ vectorstore.Index = (*Index)(nil)

// Index holds entries in memory. It satisfies the same rebuild/search
// contract as the durable store, minus persistence.
type Index struct {
	mu      sync.RWMutex
	entries []domain.IndexEntry
	built   bool
}

// New creates an empty, unbuilt index.
func New() *Index { return &Index{} }

// Rebuild replaces all entries.
func (ix *Index) Rebuild(ctx context.Context, entries []domain.IndexEntry) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.entries = append([]domain.IndexEntry(nil), entries...)
	ix.built = true
	return nil
}

// Search scans all entries and returns the k nearest by L2 distance,
// ascending, ties in insertion order.
func (ix *Index) Search(ctx context.Context, query []float32, k int) ([]domain.RetrievalHit, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if !ix.built {
		return nil, domain.ErrIndexNotFound
	}
	if k <= 0 {
		return nil, nil
	}

	hits := make([]domain.RetrievalHit, 0, len(ix.entries))
	for _, e := range ix.entries {
		dist, err := vectorstore.L2Distance(e.Vector, query)
		if err != nil {
			return nil, err
		}
		hits = append(hits, domain.RetrievalHit{Chunk: e.Chunk, Distance: dist})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Count reports the number of entries.
func (ix *Index) Count(ctx context.Context) (int, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if !ix.built {
		return 0, domain.ErrIndexNotFound
	}
	return len(ix.entries), nil
}
