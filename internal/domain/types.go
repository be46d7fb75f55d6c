package domain

// Page is the page-level text produced by document extraction.
// Immutable once created.
type Page struct {
	Text       string
	SourceID   string
	PageNumber int
}

// Chunk is a bounded text window derived from one or more adjacent pages.
// It is the unit of retrieval.
type Chunk struct {
	ID         string
	Content    string
	SourceID   string
	PageNumber int
	Index      int
}

// IndexEntry is a chunk paired with its embedding vector, persisted together.
type IndexEntry struct {
	Chunk  Chunk
	Vector []float32
}

// RetrievalHit is a chunk with its distance to the query vector.
// Distance is L2: lower means more similar.
type RetrievalHit struct {
	Chunk    Chunk
	Distance float64
}
