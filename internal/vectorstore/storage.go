package vectorstore

import (
	"context"

	"docchat/internal/domain"
)

// Index persists (chunk, vector) entries and supports nearest-neighbour
// search by L2 distance.
type Index interface {
	// Rebuild atomically replaces the entire index with the given entries.
	// Readers see either the previous complete index or the new one, never
	// a partial write. After a successful rebuild the index holds exactly
	// len(entries) entries.
	Rebuild(ctx context.Context, entries []domain.IndexEntry) error

	// Search returns the k entries nearest to the query vector, ascending
	// by distance, ties broken by insertion order. Fewer than k entries
	// returns all of them; k <= 0 returns none. Returns
	// domain.ErrIndexNotFound if no index has ever been built.
	Search(ctx context.Context, query []float32, k int) ([]domain.RetrievalHit, error)

	// Count reports the number of persisted entries.
	Count(ctx context.Context) (int, error)
}
