package clique

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/maxclique/pkg/graph"
)

var (
	// ErrNotClique is returned by [Verify] when two vertices of the set are
	// not adjacent.
	ErrNotClique = errors.New("vertex set is not a clique")

	// ErrDuplicateVertex is returned by [Verify] when a vertex appears twice.
	ErrDuplicateVertex = errors.New("duplicate vertex in clique")
)

// Verify checks every pair of vertices in clique for adjacency.
func Verify(g *graph.Graph, clique []int) error {
	n := g.VertexCount()
	seen := make(map[int]struct{}, len(clique))
	for _, v := range clique {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: %d (n=%d)", graph.ErrVertexOutOfRange, v, n)
		}
		if _, dup := seen[v]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateVertex, v)
		}
		seen[v] = struct{}{}
	}
	for i, u := range clique {
		for _, v := range clique[i+1:] {
			if !g.Adjacent(u, v) {
				return fmt.Errorf("%w: %d and %d are not adjacent", ErrNotClique, u, v)
			}
		}
	}
	return nil
}

// IsClique reports whether Verify accepts clique.
func IsClique(g *graph.Graph, clique []int) bool {
	return Verify(g, clique) == nil
}

// Format renders clique as "{a,b,c}" with ascending vertex ids. With
// oneBased set the ids are shifted to match DIMACS numbering.
func Format(clique []int, oneBased bool) string {
	sorted := slices.Sorted(slices.Values(clique))
	var sb strings.Builder
	sb.WriteByte('{')
	for i, v := range sorted {
		if i > 0 {
			sb.WriteByte(',')
		}
		if oneBased {
			v++
		}
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte('}')
	return sb.String()
}
