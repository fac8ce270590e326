package core

// Pool tags which corpus partition a candidate came from. The tag is only
// meaningful during quota merging; callers should not branch on it.
type Pool string

const (
	PoolOwn    Pool = "own"
	PoolCommon Pool = "common"
)

// SharedPoolID is the pool holding material from every author. Per-author
// private pools use their own identifiers.
const SharedPoolID = "common"

// Chunk is a stored, immutable segment of a source work with a precomputed
// embedding.
type Chunk struct {
	ID         string    `json:"id,omitempty"`
	Author     string    `json:"author"`
	Work       string    `json:"work"`
	Content    string    `json:"content"`
	ChunkIndex int       `json:"chunk_index"`
	PoolID     string    `json:"pool_id"`
	Embedding  []float32 `json:"-"`
}

// ScoredChunk is a Chunk annotated with its cosine distance to the query
// (lower = more similar), its pool provenance, and an estimated token count.
type ScoredChunk struct {
	Chunk
	Distance      float64 `json:"distance"`
	Pool          Pool    `json:"pool,omitempty"`
	TokenEstimate int     `json:"token_estimate"`
}

// RetrieveRequest describes a retrieval call.
type RetrieveRequest struct {
	Query     string `json:"query"`
	TopK      int    `json:"top_k,omitempty"`
	OwnPoolID string `json:"own_pool_id,omitempty"`

	// AuthorFilter switches retrieval to strict single-author mode:
	// only chunks whose author matches (case-insensitive substring) are
	// returned, never backfilled from other authors.
	AuthorFilter string `json:"author_filter,omitempty"`
}
