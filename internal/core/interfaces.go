package core

import "context"

// Embedder maps text to fixed-length vectors.
// Implementations: embedding.OpenAIClient, embedding.LocalClient.
type Embedder interface {
	// EmbedQuery embeds a search query (may use different prefix/settings
	// than document embedding).
	EmbedQuery(ctx context.Context, query string) ([]float32, error)

	// EmbedBatch embeds texts for storage/indexing.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// CorpusStore answers similarity queries over stored chunks.
// Implementations: corpus.Store (SQLite + brute-force exact KNN).
type CorpusStore interface {
	// Query returns up to limit chunks from the given pool ordered by
	// ascending cosine distance to the vector. A non-empty authorLike
	// restricts results to authors matching it case-insensitively as a
	// substring.
	Query(ctx context.Context, poolID string, vector []float32, limit int, authorLike string) ([]ScoredChunk, error)

	// HasAuthor reports whether at least one stored chunk has a matching
	// author (case-insensitive substring).
	HasAuthor(ctx context.Context, author string) (bool, error)
}
