package graph

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// MaxVertices is the largest vertex count a [Builder] accepts. Storage is
// quadratic in n: one bit matrix row plus neighbour and non-neighbour
// lists per vertex, about 8n² bytes once built.
const MaxVertices = 1 << 15

var (
	// ErrNegativeVertexCount is returned by [NewBuilder] and [New] when the
	// declared vertex count is below zero.
	ErrNegativeVertexCount = errors.New("vertex count must not be negative")

	// ErrVertexCountTooLarge is returned by [NewBuilder] and [New] when the
	// declared vertex count exceeds [MaxVertices], and by [ReadDIMACSLimit]
	// when it exceeds the caller's limit.
	ErrVertexCountTooLarge = errors.New("vertex count too large")

	// ErrVertexOutOfRange is returned by [Builder.AddEdge] when an endpoint
	// is outside 0..n-1.
	ErrVertexOutOfRange = errors.New("vertex out of range")

	// ErrSelfLoop is returned by [Builder.AddEdge] when both endpoints are
	// the same vertex. Cliques are defined over simple graphs.
	ErrSelfLoop = errors.New("self-loop not allowed")
)

// Edge is an undirected edge between two 0-indexed vertices.
type Edge struct {
	U, V int
}

// Graph is an immutable simple undirected graph.
//
// The zero value is an empty graph with no vertices.
type Graph struct {
	n      int
	words  int      // uint64 words per adjacency row
	matrix []uint64 // row-major packed adjacency, n*words
	adj    [][]int  // sorted neighbours
	non    [][]int  // sorted non-neighbours, excluding the vertex itself
	edges  int
}

// New builds a graph with n vertices from an edge list.
// It fails on the first invalid edge.
func New(n int, edges []Edge) (*Graph, error) {
	b, err := NewBuilder(n)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if err := b.AddEdge(e.U, e.V); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// Complete returns the complete graph on n vertices. It panics if n exceeds
// [MaxVertices].
func Complete(n int) *Graph {
	b, err := NewBuilder(max(n, 0))
	if err != nil {
		panic(err)
	}
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			_ = b.AddEdge(u, v)
		}
	}
	return b.Build()
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return g.n }

// EdgeCount returns the number of distinct undirected edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Adjacent reports whether u and v share an edge. It is false for u == v.
func (g *Graph) Adjacent(u, v int) bool {
	return g.matrix[u*g.words+v>>6]&(1<<(uint(v)&63)) != 0
}

// Neighbours returns the sorted neighbours of v.
// The returned slice is shared and must not be modified.
func (g *Graph) Neighbours(v int) []int { return g.adj[v] }

// NonNeighbours returns the sorted vertices that are neither v nor adjacent
// to v. The returned slice is shared and must not be modified.
func (g *Graph) NonNeighbours(v int) []int { return g.non[v] }

// Degree returns the number of neighbours of v.
func (g *Graph) Degree(v int) int { return len(g.adj[v]) }

// Density returns 2m / n(n-1), or 0 for graphs with fewer than two vertices.
func (g *Graph) Density() float64 {
	if g.n < 2 {
		return 0
	}
	return 2 * float64(g.edges) / (float64(g.n) * float64(g.n-1))
}

// Edges returns every edge once with U < V, ordered by (U, V).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for u := 0; u < g.n; u++ {
		for _, v := range g.adj[u] {
			if v > u {
				out = append(out, Edge{U: u, V: v})
			}
		}
	}
	return out
}

// Builder accumulates edges for a fixed vertex count.
type Builder struct {
	n      int
	words  int
	matrix []uint64
	edges  int
}

// NewBuilder creates a builder for a graph with n vertices.
func NewBuilder(n int) (*Builder, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeVertexCount, n)
	}
	if n > MaxVertices {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrVertexCountTooLarge, n, MaxVertices)
	}
	words := (n + 63) / 64
	if words > 0 && n > math.MaxInt/words {
		return nil, fmt.Errorf("%w: %d", ErrVertexCountTooLarge, n)
	}
	return &Builder{
		n:      n,
		words:  words,
		matrix: make([]uint64, n*words),
	}, nil
}

// VertexCount returns the declared vertex count.
func (b *Builder) VertexCount() int { return b.n }

// AddEdge inserts the undirected edge {u, v}. Repeated edges are no-ops.
func (b *Builder) AddEdge(u, v int) error {
	if u < 0 || u >= b.n {
		return fmt.Errorf("%w: %d (n=%d)", ErrVertexOutOfRange, u, b.n)
	}
	if v < 0 || v >= b.n {
		return fmt.Errorf("%w: %d (n=%d)", ErrVertexOutOfRange, v, b.n)
	}
	if u == v {
		return fmt.Errorf("%w: %d", ErrSelfLoop, u)
	}
	mask := uint64(1) << (uint(v) & 63)
	if b.matrix[u*b.words+v>>6]&mask != 0 {
		return nil
	}
	b.matrix[u*b.words+v>>6] |= mask
	b.matrix[v*b.words+u>>6] |= 1 << (uint(u) & 63)
	b.edges++
	return nil
}

// Build freezes the accumulated edges into a Graph. The builder must not be
// used afterwards.
func (b *Builder) Build() *Graph {
	g := &Graph{
		n:      b.n,
		words:  b.words,
		matrix: b.matrix,
		adj:    make([][]int, b.n),
		non:    make([][]int, b.n),
		edges:  b.edges,
	}
	for v := 0; v < b.n; v++ {
		row := g.matrix[v*g.words : (v+1)*g.words]
		deg := 0
		for _, w := range row {
			deg += bits.OnesCount64(w)
		}
		g.adj[v] = make([]int, 0, deg)
		g.non[v] = make([]int, 0, b.n-deg-1)
		for u := 0; u < b.n; u++ {
			switch {
			case u == v:
			case row[u>>6]&(1<<(uint(u)&63)) != 0:
				g.adj[v] = append(g.adj[v], u)
			default:
				g.non[v] = append(g.non[v], u)
			}
		}
	}
	b.matrix = nil
	return g
}
