package generation

import "context"

// Generator is an opaque text-completion capability: it receives a fully
// rendered prompt and returns the model's raw text output.
type Generator interface {
	// Generate produces a completion for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelName identifies the generation model in use.
	ModelName() string

	// Ping verifies the backend is reachable without running inference.
	Ping(ctx context.Context) error
}
