package core

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	defaultTopK = 10

	// overFetchFactor controls how many candidates are pulled per pool
	// beyond its quota so re-ranking can improve on the naive per-pool
	// top-N.
	overFetchFactor = 2
)

// Coordinator orchestrates the embedding provider and the corpus store
// under either a dual-pool quota policy or a strict single-author policy.
// It is stateless; a single instance serves concurrent requests.
type Coordinator struct {
	embedder Embedder
	store    CorpusStore
}

// NewCoordinator creates a retrieval coordinator.
func NewCoordinator(embedder Embedder, store CorpusStore) *Coordinator {
	return &Coordinator{
		embedder: embedder,
		store:    store,
	}
}

// Retrieve returns up to TopK scored chunks for the query. With an author
// filter set it runs in strict mode: shared-pool results restricted to that
// author, never backfilled from others, so returning fewer than TopK is
// correct and expected. Without a filter it runs the dual-pool quota policy
// over the own pool and the shared pool.
//
// Provider and store failures surface as ErrRetrievalUnavailable. Zero
// results is a valid outcome, not an error.
func (c *Coordinator) Retrieve(ctx context.Context, req RetrieveRequest) ([]ScoredChunk, error) {
	if req.TopK <= 0 {
		req.TopK = defaultTopK
	}

	vector, err := c.embedder.EmbedQuery(ctx, req.Query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", ErrRetrievalUnavailable, err)
	}

	if req.AuthorFilter != "" {
		return c.retrieveStrict(ctx, vector, req)
	}
	return c.retrieveDualPool(ctx, vector, req)
}

func (c *Coordinator) retrieveStrict(ctx context.Context, vector []float32, req RetrieveRequest) ([]ScoredChunk, error) {
	results, err := c.store.Query(ctx, SharedPoolID, vector, req.TopK, req.AuthorFilter)
	if err != nil {
		return nil, fmt.Errorf("%w: corpus query: %v", ErrRetrievalUnavailable, err)
	}

	selected := annotate(results, PoolCommon)
	if len(selected) > req.TopK {
		selected = selected[:req.TopK]
	}
	return selected, nil
}

func (c *Coordinator) retrieveDualPool(ctx context.Context, vector []float32, req RetrieveRequest) ([]ScoredChunk, error) {
	ownQuota, commonQuota := splitQuota(req.TopK)

	var own, common []ScoredChunk
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := c.store.Query(gctx, req.OwnPoolID, vector, ownQuota*overFetchFactor, "")
		if err != nil {
			return err
		}
		own = res
		return nil
	})
	if commonQuota > 0 {
		g.Go(func() error {
			res, err := c.store.Query(gctx, SharedPoolID, vector, commonQuota*overFetchFactor, "")
			if err != nil {
				return err
			}
			common = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: corpus query: %v", ErrRetrievalUnavailable, err)
	}

	// Own-pool candidates come first so stable sorting gives equal
	// distances a deterministic own-then-common order.
	candidates := annotate(own, PoolOwn)
	candidates = append(candidates, annotate(common, PoolCommon)...)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Distance < candidates[j].Distance
	})

	return selectWithQuota(candidates, ownQuota, commonQuota, req.TopK), nil
}

// annotate tags candidates with their pool, fills in token estimates, and
// skips malformed records rather than aborting the batch.
func annotate(chunks []ScoredChunk, pool Pool) []ScoredChunk {
	out := make([]ScoredChunk, 0, len(chunks))
	for _, c := range chunks {
		if c.Author == "" || c.Content == "" {
			continue
		}
		c.Pool = pool
		c.TokenEstimate = estimateTokens(c.Content)
		out = append(out, c)
	}
	return out
}

func estimateTokens(content string) int {
	words := len(strings.Fields(content))
	return int(math.Ceil(float64(words) * 1.3))
}
