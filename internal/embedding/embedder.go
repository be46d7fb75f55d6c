package embedding

import "context"

// Embedder converts text into a fixed-dimension vector representation.
// For a fixed model configuration the same text always yields the same
// vector; all vectors written to one index must come from one Embedder
// configuration.
type Embedder interface {
	// Embed returns the embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one vector per input text, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the vector size produced by this embedder.
	Dimensions() int

	// ModelName identifies the embedding scheme for index validation.
	ModelName() string

	// Ping verifies the backend is reachable without running inference.
	Ping(ctx context.Context) error
}
