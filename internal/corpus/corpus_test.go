package corpus

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/core"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "corpus.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testChunk(id, author, pool string, embedding []float32) core.Chunk {
	return core.Chunk{
		ID:         id,
		Author:     author,
		Work:       "Test Work",
		Content:    "Test content for " + id,
		ChunkIndex: 0,
		PoolID:     pool,
		Embedding:  embedding,
	}
}

func TestStore_InsertAndQuery(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	similar := testChunk("similar", "Hume", "common", []float32{1, 0, 0})
	dissimilar := testChunk("dissimilar", "Kant", "common", []float32{0, 1, 0})

	if err := s.Insert(ctx, similar); err != nil {
		t.Fatalf("Insert similar: %v", err)
	}
	if err := s.Insert(ctx, dissimilar); err != nil {
		t.Fatalf("Insert dissimilar: %v", err)
	}

	results, err := s.Query(ctx, "common", []float32{0.9, 0.1, 0}, 10, "")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != "similar" || results[1].ID != "dissimilar" {
		t.Errorf("wrong order: %s, %s", results[0].ID, results[1].ID)
	}
	if results[0].Distance >= results[1].Distance {
		t.Errorf("expected ascending distance, got %f >= %f", results[0].Distance, results[1].Distance)
	}
}

func TestStore_QueryDistanceCorrectness(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	vec := []float32{1, 2, 3}
	if err := s.Insert(ctx, testChunk("same", "Hume", "common", vec)); err != nil {
		t.Fatal(err)
	}

	results, err := s.Query(ctx, "common", vec, 1, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	// Identical vectors have cosine distance 0.
	if math.Abs(results[0].Distance) > 1e-6 {
		t.Errorf("distance to self = %f, want ~0", results[0].Distance)
	}
}

func TestStore_QueryPoolIsolation(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.Insert(ctx, testChunk("own-1", "Kuczynski", "kuczynski", []float32{1, 0, 0})); err != nil {
		t.Fatal(err)
	}
	if err := s.Insert(ctx, testChunk("common-1", "Hume", "common", []float32{1, 0, 0})); err != nil {
		t.Fatal(err)
	}

	results, err := s.Query(ctx, "kuczynski", []float32{1, 0, 0}, 10, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ID != "own-1" {
		t.Errorf("pool isolation broken: %v", results)
	}
}

func TestStore_QueryAuthorFilter(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	chunks := []core.Chunk{
		testChunk("h1", "David Hume", "common", []float32{1, 0, 0}),
		testChunk("k1", "Immanuel Kant", "common", []float32{0.9, 0.1, 0}),
		testChunk("h2", "David Hume", "common", []float32{0.8, 0.2, 0}),
	}
	for _, c := range chunks {
		if err := s.Insert(ctx, c); err != nil {
			t.Fatal(err)
		}
	}

	// Case-insensitive substring match on the author name.
	results, err := s.Query(ctx, "common", []float32{1, 0, 0}, 10, "hume")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 Hume chunks, got %d", len(results))
	}
	for _, r := range results {
		if r.Author != "David Hume" {
			t.Errorf("filter leaked author %q", r.Author)
		}
	}
}

func TestStore_QueryDimensionMismatchSkipped(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.Insert(ctx, testChunk("good", "Hume", "common", []float32{1, 0, 0})); err != nil {
		t.Fatal(err)
	}
	if err := s.Insert(ctx, testChunk("odd", "Kant", "common", []float32{1, 0})); err != nil {
		t.Fatal(err)
	}

	results, err := s.Query(ctx, "common", []float32{1, 0, 0}, 10, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ID != "good" {
		t.Errorf("expected only matching-dimension chunk, got %v", results)
	}
}

func TestStore_SkipsMalformedRows(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "corpus.db")
	ctx := context.Background()

	s, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Insert(ctx, testChunk("good", "Hume", "common", []float32{1, 0, 0})); err != nil {
		t.Fatal(err)
	}

	// A row with no author, written behind the store's back.
	blob := float32ToBlob(normalize([]float32{1, 0, 0}))
	_, err = s.db.Exec(`
		INSERT INTO chunks (id, author, work, content, chunk_index, pool_id, embedding, dimensions)
		VALUES ('no-author', '', 'Test Work', 'Orphaned content.', 0, 'common', ?, 3)
	`, blob)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// Load-time skip: the malformed row never enters the cache.
	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	if reopened.Count() != 1 {
		t.Fatalf("expected 1 chunk after reopen, got %d", reopened.Count())
	}

	// Scan-time skip: a malformed cached chunk is never returned.
	reopened.chunks = append(reopened.chunks, core.Chunk{
		ID:        "no-content",
		Author:    "Kant",
		Work:      "Test Work",
		PoolID:    "common",
		Embedding: normalize([]float32{0, 1, 0}),
	})
	results, err := reopened.Query(ctx, "common", []float32{1, 0, 0}, 10, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ID != "good" {
		t.Errorf("expected only the well-formed chunk, got %v", results)
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "corpus.db")
	ctx := context.Background()

	s, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Insert(ctx, testChunk("c1", "Hume", "common", []float32{1, 0, 0})); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	if reopened.Count() != 1 {
		t.Fatalf("expected 1 chunk after reopen, got %d", reopened.Count())
	}
	results, err := reopened.Query(ctx, "common", []float32{1, 0, 0}, 10, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ID != "c1" {
		t.Errorf("expected persisted chunk, got %v", results)
	}
}

func TestStore_HasAuthor(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.Insert(ctx, testChunk("h1", "David Hume", "common", []float32{1, 0, 0})); err != nil {
		t.Fatal(err)
	}

	ok, err := s.HasAuthor(ctx, "hume")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected HasAuthor(hume) = true")
	}

	ok, err = s.HasAuthor(ctx, "leibniz")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected HasAuthor(leibniz) = false")
	}
}

func TestStore_Stats(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	chunks := []core.Chunk{
		testChunk("c1", "Hume", "common", []float32{1, 0, 0}),
		testChunk("c2", "Kant", "common", []float32{0, 1, 0}),
		testChunk("o1", "Kuczynski", "kuczynski", []float32{0, 0, 1}),
	}
	for _, c := range chunks {
		if err := s.Insert(ctx, c); err != nil {
			t.Fatal(err)
		}
	}

	stats := s.Stats()
	if len(stats) != 2 {
		t.Fatalf("expected 2 pools, got %d", len(stats))
	}
	// Sorted by pool ID.
	if stats[0].PoolID != "common" || stats[0].Chunks != 2 || stats[0].Authors != 2 {
		t.Errorf("common pool stats wrong: %+v", stats[0])
	}
	if stats[1].PoolID != "kuczynski" || stats[1].Chunks != 1 {
		t.Errorf("kuczynski pool stats wrong: %+v", stats[1])
	}
}

func TestStore_InsertAssignsID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	c := testChunk("", "Hume", "common", []float32{1, 0, 0})
	if err := s.Insert(ctx, c); err != nil {
		t.Fatal(err)
	}
	if s.Count() != 1 {
		t.Fatalf("expected 1 chunk, got %d", s.Count())
	}

	results, err := s.Query(ctx, "common", []float32{1, 0, 0}, 1, "")
	if err != nil {
		t.Fatal(err)
	}
	if results[0].ID == "" {
		t.Error("expected generated ID on insert")
	}
}

func TestStore_InsertRejectsEmptyEmbedding(t *testing.T) {
	s := createTestStore(t)

	err := s.Insert(context.Background(), testChunk("bad", "Hume", "common", nil))
	if err == nil {
		t.Fatal("expected error for empty embedding")
	}
}
