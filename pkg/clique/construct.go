package clique

import (
	"context"
	"math/rand/v2"

	"github.com/matzehuels/maxclique/pkg/graph"
	"github.com/matzehuels/maxclique/pkg/order"
)

// construct grows a maximal clique from candidates, which must be pairwise
// compatible with whatever visit has already accepted. At each step a vertex
// is drawn uniformly from a prefix of the surviving candidates; the prefix
// covers a fraction r of the list plus one extra slot when widen is set.
// With r == 0 and widen unset the construction is purely greedy.
//
// candidates is used as scratch space and is overwritten.
func construct(g *graph.Graph, candidates []int, r float64, widen bool, rng *rand.Rand, visit func(int)) {
	for len(candidates) > 0 {
		limit := int(r * float64(len(candidates)))
		if widen {
			limit++
		}
		limit = min(limit, len(candidates)-1)

		v := candidates[rng.IntN(limit+1)]
		visit(v)

		kept := candidates[:0]
		for _, u := range candidates {
			if g.Adjacent(v, u) {
				kept = append(kept, u)
			}
		}
		candidates = kept
	}
}

// GreedyResult is the outcome of [RandomizedGreedy].
type GreedyResult struct {
	Clique []int
	// Randomization is the prefix fraction of the restart that produced
	// Clique.
	Randomization float64
	Restarts      int
}

// RandomizedGreedy runs iterations randomized constructions over the
// smallest-last order of g and keeps the largest clique. The randomization
// fraction rises linearly from 0 (pure greedy) toward 1.
//
// ctx is polled once per restart. A cancelled search returns the best clique
// found so far.
func RandomizedGreedy(ctx context.Context, g *graph.Graph, iterations int, rng *rand.Rand) GreedyResult {
	var res GreedyResult
	if g.VertexCount() == 0 {
		return res
	}

	base := order.SmallestLastOrder(g)
	scratch := make([]int, 0, len(base))
	current := make([]int, 0, len(base))

	for it := 0; it < iterations; it++ {
		if ctx.Err() != nil {
			break
		}
		r := float64(it) / float64(iterations)
		current = current[:0]
		construct(g, append(scratch[:0], base...), r, it > 0, rng, func(v int) {
			current = append(current, v)
		})
		res.Restarts++
		if len(current) > len(res.Clique) {
			res.Clique = append(res.Clique[:0], current...)
			res.Randomization = r
		}
	}
	return res
}
