// Package coloring implements sequential greedy vertex coloring.
//
// Each vertex, taken in the given order, receives the smallest color not
// used by an already colored neighbour. The number of colors used is an
// upper bound on the size of any clique inside the colored vertex set, which
// is how the branch-and-bound search prunes.
//
// Two entry points exist. [Colorer] colors an arbitrary vertex subset and is
// meant to be reused across many calls on the same graph (one per search
// node). [Color] colors the whole graph and returns a vertex-indexed result
// that [Check] and [Classes] understand.
package coloring

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/maxclique/pkg/graph"
)

var (
	// ErrUncolored is returned by [Check] when a vertex has color 0.
	ErrUncolored = errors.New("vertex is not colored")

	// ErrConflict is returned by [Check] when two adjacent vertices share a
	// color.
	ErrConflict = errors.New("adjacent vertices share a color")
)

// Colorer performs greedy coloring of vertex subsets of one graph.
//
// Colors from previous calls never leak into the next one: every call opens a
// new epoch, and only vertices stamped with the current epoch count as
// colored. A Colorer is not safe for concurrent use.
type Colorer struct {
	g     *graph.Graph
	stamp []int // epoch in which the vertex was last colored
	color []int // color of the vertex, valid when stamp matches epoch
	used  []int // used[c] == mark when color c is taken around the current vertex
	epoch int
	mark  int
}

// NewColorer allocates the per-vertex scratch space for g.
func NewColorer(g *graph.Graph) *Colorer {
	n := g.VertexCount()
	return &Colorer{
		g:     g,
		stamp: make([]int, n),
		color: make([]int, n),
		used:  make([]int, n+2),
	}
}

// Color greedily colors vertices in the given order, considering only edges
// inside the set. It returns the number of colors used and a slice where
// colors[i] is the color (1-based) of vertices[i].
func (c *Colorer) Color(vertices []int) (int, []int) {
	c.epoch++
	maxColor := 0
	colors := make([]int, len(vertices))

	for i, v := range vertices {
		c.mark++
		// Scan whichever is shorter: the already colored prefix or v's
		// neighbourhood.
		if i < c.g.Degree(v) {
			for _, u := range vertices[:i] {
				if c.g.Adjacent(u, v) {
					c.used[c.color[u]] = c.mark
				}
			}
		} else {
			for _, u := range c.g.Neighbours(v) {
				if c.stamp[u] == c.epoch {
					c.used[c.color[u]] = c.mark
				}
			}
		}

		col := 1
		for col <= maxColor && c.used[col] == c.mark {
			col++
		}
		maxColor = max(maxColor, col)

		c.color[v] = col
		c.stamp[v] = c.epoch
		colors[i] = col
	}
	return maxColor, colors
}

// Result is a whole-graph coloring.
type Result struct {
	MaxColor int
	// Colors is indexed by vertex id; 0 means uncolored.
	Colors []int
}

// Color colors every vertex listed in order and returns vertex-indexed
// colors. Vertices missing from order stay uncolored.
func Color(g *graph.Graph, order []int) Result {
	maxColor, byPos := NewColorer(g).Color(order)
	colors := make([]int, g.VertexCount())
	for i, v := range order {
		colors[v] = byPos[i]
	}
	return Result{MaxColor: maxColor, Colors: colors}
}

// Check verifies that colors is a complete proper coloring of g.
func Check(g *graph.Graph, colors []int) error {
	if len(colors) != g.VertexCount() {
		return fmt.Errorf("%w: got %d colors for %d vertices", ErrUncolored, len(colors), g.VertexCount())
	}
	for v, c := range colors {
		if c <= 0 {
			return fmt.Errorf("%w: vertex %d", ErrUncolored, v)
		}
		for _, u := range g.Neighbours(v) {
			if u > v && colors[u] == c {
				return fmt.Errorf("%w: vertices %d and %d have color %d", ErrConflict, v, u, c)
			}
		}
	}
	return nil
}

// Classes groups vertices by color. Larger classes come first; equal sizes
// are ordered by color. Vertices inside a class are ascending. Uncolored
// vertices are skipped.
func Classes(colors []int) [][]int {
	byColor := map[int][]int{}
	for v, c := range colors {
		if c > 0 {
			byColor[c] = append(byColor[c], v)
		}
	}
	keys := make([]int, 0, len(byColor))
	for c := range byColor {
		keys = append(keys, c)
	}
	slices.SortFunc(keys, func(a, b int) int {
		if d := len(byColor[b]) - len(byColor[a]); d != 0 {
			return d
		}
		return a - b
	})

	out := make([][]int, len(keys))
	for i, c := range keys {
		out[i] = byColor[c]
	}
	return out
}

// FormatClasses renders classes as "{0, 3}, {1, 2}".
func FormatClasses(classes [][]int) string {
	parts := make([]string, len(classes))
	for i, class := range classes {
		ids := make([]string, len(class))
		for j, v := range class {
			ids[j] = strconv.Itoa(v)
		}
		parts[i] = "{" + strings.Join(ids, ", ") + "}"
	}
	return strings.Join(parts, ", ")
}
