package clique

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/maxclique/pkg/graph"
	"github.com/matzehuels/maxclique/pkg/order"
)

func TestBranchAndBoundMatchesBruteForce(t *testing.T) {
	for seed := uint64(1); seed <= 12; seed++ {
		for _, p := range []float64{0.3, 0.6, 0.9} {
			g := randomGraph(t, 13, p, seed)
			res := NewBranchAndBound(g, BnBOptions{}).Run(context.Background(), nil)

			require.NoError(t, Verify(g, res.Clique))
			assert.True(t, res.Complete)
			assert.Len(t, res.Clique, bruteForceOmega(g), "seed %d p %.1f", seed, p)
		}
	}
}

func TestBranchAndBoundKnownGraphs(t *testing.T) {
	tests := []struct {
		name string
		g    *graph.Graph
		want int
	}{
		{"empty", edgeless(t, 0), 0},
		{"edgeless", edgeless(t, 5), 1},
		{"complete", graph.Complete(12), 12},
		{"two triangles", twoTriangles(t), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewBranchAndBound(tt.g, BnBOptions{}).Run(context.Background(), nil)
			require.NoError(t, Verify(tt.g, res.Clique))
			assert.Len(t, res.Clique, tt.want)
			assert.True(t, res.Complete)
		})
	}
}

func TestBranchAndBoundNeverShrinksSeed(t *testing.T) {
	g := randomGraph(t, 70, 0.5, 21)
	seed := NewTabuSearch(g, newRNG(1), TabuOptions{}).Run(context.Background(), 30).Clique

	res := NewBranchAndBound(g, BnBOptions{}).Run(context.Background(), seed)
	require.NoError(t, Verify(g, res.Clique))
	assert.GreaterOrEqual(t, len(res.Clique), len(seed))
	assert.Positive(t, res.Nodes)
}

func TestBranchAndBoundSeededPrunes(t *testing.T) {
	g := randomGraph(t, 40, 0.7, 5)

	cold := NewBranchAndBound(g, BnBOptions{}).Run(context.Background(), nil)
	warm := NewBranchAndBound(g, BnBOptions{}).Run(context.Background(), cold.Clique)

	assert.Len(t, warm.Clique, len(cold.Clique))
	assert.Zero(t, warm.Improvements)
	assert.LessOrEqual(t, warm.Nodes, cold.Nodes)
}

func TestBranchAndBoundDeadline(t *testing.T) {
	g := randomGraph(t, 30, 0.5, 3)
	seed := []int{g.Edges()[0].U, g.Edges()[0].V}

	res := NewBranchAndBound(g, BnBOptions{
		Deadline: time.Now().Add(-time.Second),
	}).Run(context.Background(), seed)

	assert.False(t, res.Complete)
	assert.Equal(t, seed, res.Clique)
	assert.Zero(t, res.Nodes)
}

func TestBranchAndBoundCancelled(t *testing.T) {
	g := randomGraph(t, 30, 0.5, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewBranchAndBound(g, BnBOptions{}).Run(ctx, nil)
	assert.False(t, res.Complete)
	assert.Empty(t, res.Clique)
}

func TestBranchAndBoundProgress(t *testing.T) {
	g := randomGraph(t, 25, 0.5, 6)
	var last BnBProgress
	calls := 0
	res := NewBranchAndBound(g, BnBOptions{
		Order: order.EliminationOrder(g),
		Progress: func(p BnBProgress) {
			calls++
			assert.GreaterOrEqual(t, p.Best, last.Best)
			last = p
		},
	}).Run(context.Background(), nil)

	assert.Equal(t, g.VertexCount(), calls)
	assert.Equal(t, g.VertexCount(), last.Done)
	assert.Equal(t, len(res.Clique), last.Best)
	assert.Equal(t, res.Nodes, last.Nodes)
}
