package core

import "sort"

// splitQuota computes per-pool result quotas for dual-pool retrieval.
// For topK >= 2 one slot is reserved for each pool and the remainder is
// split roughly 67/33 in favor of the own pool. For topK < 2 the own pool
// gets everything.
func splitQuota(topK int) (own, common int) {
	if topK < 2 {
		return topK, 0
	}
	remainder := topK - 2
	ownExtra := remainder * 67 / 100
	return 1 + ownExtra, 1 + remainder - ownExtra
}

// selectWithQuota performs the two-pass group-quota top-K merge over
// candidates sorted ascending by distance.
//
// Pass 1 walks the list once, admitting a candidate only while its pool's
// quota is unmet. It does not stop when topK is reached; it stops once both
// quotas are satisfied and the result holds topK items, so a pool whose
// candidates rank late still gets its reserved slots. Pass 2 runs only if
// the result is still short of topK (a pool had fewer candidates than its
// quota) and admits the best not-yet-included candidates regardless of pool.
//
// Ties on distance are resolved by candidate order: the caller concatenates
// own-pool candidates before common-pool ones and all sorts are stable, so
// equal distances keep own-then-common, then per-pool rank order.
func selectWithQuota(candidates []ScoredChunk, ownQuota, commonQuota, topK int) []ScoredChunk {
	if topK <= 0 || len(candidates) == 0 {
		return nil
	}

	quota := map[Pool]int{PoolOwn: ownQuota, PoolCommon: commonQuota}
	counts := map[Pool]int{}
	taken := make([]bool, len(candidates))
	selected := make([]ScoredChunk, 0, topK)

	for i, c := range candidates {
		if counts[c.Pool] >= quota[c.Pool] {
			continue
		}
		selected = append(selected, c)
		taken[i] = true
		counts[c.Pool]++
		if len(selected) >= topK && counts[PoolOwn] >= ownQuota && counts[PoolCommon] >= commonQuota {
			break
		}
	}

	if len(selected) < topK {
		for i, c := range candidates {
			if taken[i] {
				continue
			}
			selected = append(selected, c)
			taken[i] = true
			if len(selected) >= topK {
				break
			}
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Distance < selected[j].Distance
	})

	if len(selected) > topK {
		selected = selected[:topK]
	}
	return selected
}
