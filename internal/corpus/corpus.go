// Package corpus stores the chunked text corpus and serves brute-force
// vector search over it. Embeddings live in SQLite BLOBs and are mirrored
// in memory; at corpus scale (tens of thousands of chunks) a full scan is
// sub-millisecond and exact.
package corpus

import (
	"container/heap"
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/core"
)

// Store is the SQLite-backed chunk store. Vectors are normalized on insert
// so dot product equals cosine similarity.
type Store struct {
	db *sql.DB

	mu     sync.RWMutex
	chunks []core.Chunk // embeddings normalized
}

// Open opens (creating if needed) the corpus database at dbPath and loads
// all chunks into memory.
func Open(dbPath string) (*Store, error) {
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("corpus migrate: %w", err)
	}
	if err := s.loadAll(); err != nil {
		db.Close()
		return nil, fmt.Errorf("corpus load: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS chunks (
			id          TEXT PRIMARY KEY,
			author      TEXT NOT NULL,
			work        TEXT NOT NULL,
			content     TEXT NOT NULL,
			chunk_index INTEGER NOT NULL,
			pool_id     TEXT NOT NULL,
			embedding   BLOB NOT NULL,
			dimensions  INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_chunks_pool ON chunks(pool_id);
		CREATE INDEX IF NOT EXISTS idx_chunks_author ON chunks(author);
	`)
	return err
}

func (s *Store) loadAll() error {
	rows, err := s.db.Query(`
		SELECT id, author, work, content, chunk_index, pool_id, embedding, dimensions
		FROM chunks
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c core.Chunk
		var blob []byte
		var dims int
		if err := rows.Scan(&c.ID, &c.Author, &c.Work, &c.Content, &c.ChunkIndex, &c.PoolID, &blob, &dims); err != nil {
			return err
		}
		if c.Author == "" || c.Content == "" {
			continue
		}
		c.Embedding = blobToFloat32(blob, dims)
		s.chunks = append(s.chunks, c)
	}
	return rows.Err()
}

// Insert stores a chunk, normalizing its embedding and assigning an ID if
// the chunk has none.
func (s *Store) Insert(ctx context.Context, chunk core.Chunk) error {
	if chunk.ID == "" {
		chunk.ID = uuid.New().String()
	}
	if len(chunk.Embedding) == 0 {
		return fmt.Errorf("insert chunk %s: empty embedding", chunk.ID)
	}
	chunk.Embedding = normalize(chunk.Embedding)
	blob := float32ToBlob(chunk.Embedding)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chunks (id, author, work, content, chunk_index, pool_id, embedding, dimensions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			author=excluded.author, work=excluded.work, content=excluded.content,
			chunk_index=excluded.chunk_index, pool_id=excluded.pool_id,
			embedding=excluded.embedding, dimensions=excluded.dimensions
	`, chunk.ID, chunk.Author, chunk.Work, chunk.Content, chunk.ChunkIndex, chunk.PoolID, blob, len(chunk.Embedding))
	if err != nil {
		return err
	}

	for i := range s.chunks {
		if s.chunks[i].ID == chunk.ID {
			s.chunks[i] = chunk
			return nil
		}
	}
	s.chunks = append(s.chunks, chunk)
	return nil
}

// Query returns up to limit chunks from the given pool, ordered by cosine
// distance to the query vector, ascending. When authorLike is non-empty
// only chunks whose author contains it (case-insensitively) are
// considered. Chunks with mismatched dimensions or a missing author or
// content are skipped.
func (s *Store) Query(ctx context.Context, poolID string, vector []float32, limit int, authorLike string) ([]core.ScoredChunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	query := normalize(vector)
	needle := strings.ToLower(authorLike)

	s.mu.RLock()
	h := &maxHeap{}
	heap.Init(h)
	for _, c := range s.chunks {
		if c.PoolID != poolID {
			continue
		}
		if c.Author == "" || c.Content == "" {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(c.Author), needle) {
			continue
		}
		if len(c.Embedding) != len(query) {
			continue
		}
		dist := 1 - dotProduct(query, c.Embedding)
		if h.Len() < limit {
			heap.Push(h, core.ScoredChunk{Chunk: c, Distance: dist})
		} else if dist < (*h)[0].Distance {
			(*h)[0] = core.ScoredChunk{Chunk: c, Distance: dist}
			heap.Fix(h, 0)
		}
	}
	s.mu.RUnlock()

	// Extract in ascending distance order.
	results := make([]core.ScoredChunk, h.Len())
	for i := len(results) - 1; i >= 0; i-- {
		results[i] = heap.Pop(h).(core.ScoredChunk)
	}
	return results, nil
}

// HasAuthor reports whether the corpus holds any chunk whose author
// contains the given name, case-insensitively.
func (s *Store) HasAuthor(ctx context.Context, author string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	needle := strings.ToLower(author)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.chunks {
		if strings.Contains(strings.ToLower(c.Author), needle) {
			return true, nil
		}
	}
	return false, nil
}

// PoolStats summarizes one pool's contents.
type PoolStats struct {
	PoolID  string `json:"pool_id"`
	Chunks  int    `json:"chunks"`
	Authors int    `json:"authors"`
	Works   int    `json:"works"`
}

// Stats returns per-pool chunk, author, and work counts.
func (s *Store) Stats() []PoolStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type tally struct {
		chunks  int
		authors map[string]struct{}
		works   map[string]struct{}
	}
	pools := make(map[string]*tally)
	var order []string
	for _, c := range s.chunks {
		t, ok := pools[c.PoolID]
		if !ok {
			t = &tally{authors: make(map[string]struct{}), works: make(map[string]struct{})}
			pools[c.PoolID] = t
			order = append(order, c.PoolID)
		}
		t.chunks++
		t.authors[c.Author] = struct{}{}
		t.works[c.Work] = struct{}{}
	}

	sort.Strings(order)
	stats := make([]PoolStats, 0, len(order))
	for _, poolID := range order {
		t := pools[poolID]
		stats = append(stats, PoolStats{
			PoolID:  poolID,
			Chunks:  t.chunks,
			Authors: len(t.authors),
			Works:   len(t.works),
		})
	}
	return stats
}

// Count returns the number of stored chunks.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// maxHeap keeps the worst (largest) distance at the root so the K best
// candidates survive.
type maxHeap []core.ScoredChunk

func (h maxHeap) Len() int           { return len(h) }
func (h maxHeap) Less(i, j int) bool { return h[i].Distance > h[j].Distance }
func (h maxHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x any)        { *h = append(*h, x.(core.ScoredChunk)) }
func (h *maxHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// --- math helpers ---

func normalize(v []float32) []float32 {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return make([]float32, len(v))
	}

	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

func dotProduct(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// --- serialization helpers ---

func float32ToBlob(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func blobToFloat32(b []byte, dims int) []float32 {
	v := make([]float32, dims)
	for i := 0; i < dims && i*4+4 <= len(b); i++ {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
