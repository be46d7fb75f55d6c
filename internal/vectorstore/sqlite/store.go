// Package sqlite provides the durable vector index: a single SQLite file
// holding chunks, their embeddings and the embedding scheme they were
// produced under. Rebuilds are atomic; readers either see the previous
// complete index or the new one.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"docchat/internal/domain"
	"docchat/internal/vectorstore"
)

// Ensure Store implements the interface.
var _ vectorstore.Index = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    chunk_id TEXT NOT NULL,
    source_id TEXT NOT NULL,
    page_number INTEGER NOT NULL,
    chunk_index INTEGER NOT NULL,
    content TEXT NOT NULL,
    embedding BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Meta keys recorded alongside the entries.
const (
	metaModel      = "embedding_model"
	metaDimensions = "embedding_dimensions"
)

// Store is a file-backed brute-force L2 index.
type Store struct {
	path  string
	model string

	// rebuildMu serialises rebuilds; searches open the file independently
	// and are isolated from an in-progress rebuild by the rename swap.
	rebuildMu sync.Mutex
}

// New creates a store over the given index file path. The model name is
// recorded on rebuild and checked on search. The file itself is created on
// the first rebuild.
func New(path, model string) *Store {
	return &Store{path: path, model: model}
}

// Rebuild writes all entries to a temporary file next to the index and
// renames it over the live path, so an interrupted rebuild never leaves a
// partial index visible.
func (s *Store) Rebuild(ctx context.Context, entries []domain.IndexEntry) error {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}
	tmp := s.path + ".tmp"
	_ = os.Remove(tmp)

	if err := s.writeIndex(ctx, tmp, entries); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("swap index: %w", err)
	}
	return nil
}

func (s *Store) writeIndex(ctx context.Context, path string, entries []domain.IndexEntry) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open index: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rebuild: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries(id, chunk_id, source_id, page_number, chunk_index, content, embedding)
		 VALUES(?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	dims := 0
	for _, e := range entries {
		if dims == 0 {
			dims = len(e.Vector)
		}
		_, err := stmt.ExecContext(ctx, uuid.NewString(), e.Chunk.ID, e.Chunk.SourceID,
			e.Chunk.PageNumber, e.Chunk.Index, e.Chunk.Content, encodeVector(e.Vector))
		if err != nil {
			return fmt.Errorf("insert entry %s: %w", e.Chunk.ID, err)
		}
	}

	for key, value := range map[string]string{
		metaModel:      s.model,
		metaDimensions: fmt.Sprint(dims),
	} {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO meta(key, value) VALUES(?, ?)`, key, value); err != nil {
			return fmt.Errorf("write meta: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rebuild: %w", err)
	}
	return nil
}

// Search loads all entries, ranks them by L2 distance to the query and
// returns the k nearest ascending, ties in insertion order.
func (s *Store) Search(ctx context.Context, query []float32, k int) ([]domain.RetrievalHit, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if k <= 0 {
		return nil, nil
	}
	s.checkModel(ctx, db)

	rows, err := db.QueryContext(ctx,
		`SELECT chunk_id, source_id, page_number, chunk_index, content, embedding
		 FROM entries ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var hits []domain.RetrievalHit
	for rows.Next() {
		var c domain.Chunk
		var blob []byte
		if err := rows.Scan(&c.ID, &c.SourceID, &c.PageNumber, &c.Index, &c.Content, &blob); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		vec, err := decodeVector(blob)
		if err != nil {
			return nil, err
		}
		dist, err := vectorstore.L2Distance(vec, query)
		if err != nil {
			return nil, err
		}
		hits = append(hits, domain.RetrievalHit{Chunk: c, Distance: dist})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Count reports the number of persisted entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	db, err := s.open()
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// Model returns the embedding scheme recorded in the index, or "" when the
// index has no meta yet.
func (s *Store) Model(ctx context.Context) (string, error) {
	db, err := s.open()
	if err != nil {
		return "", err
	}
	defer db.Close()
	return readMeta(ctx, db, metaModel), nil
}

func (s *Store) open() (*sql.DB, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrIndexNotFound
		}
		return nil, fmt.Errorf("stat index: %w", err)
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	return db, nil
}

// checkModel warns when the index was built under a different embedding
// scheme than the one configured now. Mixed schemes do not fail; they
// silently degrade ranking, which is why the mismatch is at least logged.
func (s *Store) checkModel(ctx context.Context, db *sql.DB) {
	stored := readMeta(ctx, db, metaModel)
	if stored != "" && s.model != "" && stored != s.model {
		log.Printf("warning: index built with embedding model %q, querying with %q; ranking will be unreliable", stored, s.model)
	}
}

func readMeta(ctx context.Context, db *sql.DB, key string) string {
	var value string
	if err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&value); err != nil {
		return ""
	}
	return value
}
