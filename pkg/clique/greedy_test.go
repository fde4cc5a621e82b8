package clique

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/maxclique/pkg/graph"
)

func TestRandomizedGreedy(t *testing.T) {
	ctx := context.Background()

	res := RandomizedGreedy(ctx, graph.Complete(7), 10, newRNG(1))
	assert.Len(t, res.Clique, 7)
	assert.Equal(t, 10, res.Restarts)

	res = RandomizedGreedy(ctx, edgeless(t, 4), 10, newRNG(1))
	assert.Len(t, res.Clique, 1)

	res = RandomizedGreedy(ctx, edgeless(t, 0), 10, newRNG(1))
	assert.Empty(t, res.Clique)

	g := twoTriangles(t)
	res = RandomizedGreedy(ctx, g, 10, newRNG(1))
	require.NoError(t, Verify(g, res.Clique))
	assert.Len(t, res.Clique, 3)
}

func TestRandomizedGreedyFirstRestartIsGreedy(t *testing.T) {
	g := randomGraph(t, 40, 0.5, 8)

	// A single restart uses r == 0, so the result does not depend on the seed.
	a := RandomizedGreedy(context.Background(), g, 1, newRNG(1))
	b := RandomizedGreedy(context.Background(), g, 1, newRNG(99))
	assert.Equal(t, a.Clique, b.Clique)
	assert.Zero(t, a.Randomization)
}

func TestRandomizedGreedyValidOnRandomGraphs(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		g := randomGraph(t, 50, 0.6, seed)
		res := RandomizedGreedy(context.Background(), g, 50, newRNG(seed))
		require.NoError(t, Verify(g, res.Clique))
		assert.GreaterOrEqual(t, res.Randomization, 0.0)
		assert.Less(t, res.Randomization, 1.0)
	}
}
