package clique

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/maxclique/pkg/graph"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func randomGraph(t *testing.T, n int, p float64, seed uint64) *graph.Graph {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed))
	b, err := graph.NewBuilder(n)
	require.NoError(t, err)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if rng.Float64() < p {
				require.NoError(t, b.AddEdge(u, v))
			}
		}
	}
	return b.Build()
}

// twoTriangles is 0-1-2 and 2-3-4 sharing vertex 2.
func twoTriangles(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New(5, []graph.Edge{
		{U: 0, V: 1}, {U: 1, V: 2}, {U: 0, V: 2},
		{U: 2, V: 3}, {U: 3, V: 4}, {U: 2, V: 4},
	})
	require.NoError(t, err)
	return g
}

func edgeless(t *testing.T, n int) *graph.Graph {
	t.Helper()
	g, err := graph.New(n, nil)
	require.NoError(t, err)
	return g
}

// bruteForceOmega enumerates every vertex subset. Only usable for small n.
func bruteForceOmega(g *graph.Graph) int {
	n := g.VertexCount()
	best := 0
	for mask := 1; mask < 1<<n; mask++ {
		var set []int
		for v := 0; v < n; v++ {
			if mask&(1<<v) != 0 {
				set = append(set, v)
			}
		}
		if len(set) > best && IsClique(g, set) {
			best = len(set)
		}
	}
	return best
}
