package domain

import "errors"

// Domain errors represent pipeline failures.
// Infrastructure errors are wrapped around these sentinels so callers can
// branch with errors.Is.
var (
	// ErrIndexNotFound indicates no index has ever been built, or a query
	// arrived before the first ingestion completed.
	ErrIndexNotFound = errors.New("vector index not found")

	// ErrNoDocuments indicates ingestion found no loadable documents.
	// No index is written in this case.
	ErrNoDocuments = errors.New("no documents loaded")

	// ErrBackendUnavailable indicates an embedding or generation backend
	// failed at the network or auth level.
	ErrBackendUnavailable = errors.New("backend unavailable")
)
