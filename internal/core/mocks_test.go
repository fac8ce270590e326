package core

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Common test errors
var (
	ErrMockEmbedding = errors.New("mock embedding error")
	ErrMockStorage   = errors.New("mock storage error")
)

// MockEmbedder implements Embedder for testing
type MockEmbedder struct {
	mu          sync.Mutex
	QueryFunc   func(ctx context.Context, query string) ([]float32, error)
	CallCount   int
	LastQuery   string
	Fail        bool
	FixedVector []float32
}

func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{
		FixedVector: []float32{1, 0, 0},
	}
}

func (m *MockEmbedder) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.LastQuery = query

	if m.Fail {
		return nil, ErrMockEmbedding
	}
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, query)
	}
	return m.FixedVector, nil
}

func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.Fail {
		return nil, ErrMockEmbedding
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = m.FixedVector
	}
	return out, nil
}

// queryCall records the arguments of one MockCorpusStore.Query call
type queryCall struct {
	PoolID     string
	Limit      int
	AuthorLike string
}

// MockCorpusStore implements CorpusStore for testing. Pools maps pool IDs
// to candidates already sorted ascending by distance.
type MockCorpusStore struct {
	mu         sync.Mutex
	Pools      map[string][]ScoredChunk
	Authors    map[string]bool
	Calls      []queryCall
	FailQuery  bool
	FailAuthor bool
}

func NewMockCorpusStore() *MockCorpusStore {
	return &MockCorpusStore{
		Pools:   make(map[string][]ScoredChunk),
		Authors: make(map[string]bool),
	}
}

func (m *MockCorpusStore) Query(ctx context.Context, poolID string, vector []float32, limit int, authorLike string) ([]ScoredChunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, queryCall{PoolID: poolID, Limit: limit, AuthorLike: authorLike})

	if m.FailQuery {
		return nil, ErrMockStorage
	}

	needle := strings.ToLower(authorLike)
	var out []ScoredChunk
	for _, c := range m.Pools[poolID] {
		if needle != "" && !strings.Contains(strings.ToLower(c.Author), needle) {
			continue
		}
		out = append(out, c)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *MockCorpusStore) HasAuthor(ctx context.Context, author string) (bool, error) {
	if m.FailAuthor {
		return false, ErrMockStorage
	}
	return m.Authors[author], nil
}

// chunk builds a test candidate
func chunk(id, author string, pool string, distance float64) ScoredChunk {
	return ScoredChunk{
		Chunk: Chunk{
			ID:      id,
			Author:  author,
			Work:    "Test Work",
			Content: "Some test content with a handful of words in it.",
			PoolID:  pool,
		},
		Distance: distance,
	}
}
