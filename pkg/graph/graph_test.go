package graph

import (
	"errors"
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		edges     []Edge
		wantEdges int
		wantErr   error
	}{
		{name: "Empty", n: 0},
		{name: "Edgeless", n: 4},
		{
			name:      "Triangle",
			n:         3,
			edges:     []Edge{{0, 1}, {1, 2}, {0, 2}},
			wantEdges: 3,
		},
		{
			name:      "DuplicateEdges",
			n:         3,
			edges:     []Edge{{0, 1}, {1, 0}, {0, 1}},
			wantEdges: 1,
		},
		{name: "NegativeCount", n: -1, wantErr: ErrNegativeVertexCount},
		{name: "TooManyVertices", n: MaxVertices + 1, wantErr: ErrVertexCountTooLarge},
		{name: "OutOfRange", n: 2, edges: []Edge{{0, 2}}, wantErr: ErrVertexOutOfRange},
		{name: "NegativeVertex", n: 2, edges: []Edge{{-1, 0}}, wantErr: ErrVertexOutOfRange},
		{name: "SelfLoop", n: 2, edges: []Edge{{1, 1}}, wantErr: ErrSelfLoop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.n, tt.edges)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if g.VertexCount() != tt.n {
				t.Errorf("VertexCount() = %d, want %d", g.VertexCount(), tt.n)
			}
			if g.EdgeCount() != tt.wantEdges {
				t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), tt.wantEdges)
			}
		})
	}
}

func TestAdjacencyAndComplement(t *testing.T) {
	// Two triangles sharing vertex 2.
	g, err := New(5, []Edge{{0, 1}, {1, 2}, {0, 2}, {2, 3}, {3, 4}, {2, 4}})
	if err != nil {
		t.Fatal(err)
	}

	for u := 0; u < g.VertexCount(); u++ {
		if g.Adjacent(u, u) {
			t.Errorf("Adjacent(%d, %d) should be false", u, u)
		}
		for v := 0; v < g.VertexCount(); v++ {
			if g.Adjacent(u, v) != g.Adjacent(v, u) {
				t.Errorf("adjacency not symmetric for %d,%d", u, v)
			}
		}
		if got := len(g.Neighbours(u)) + len(g.NonNeighbours(u)); got != g.VertexCount()-1 {
			t.Errorf("vertex %d: neighbours+non-neighbours = %d, want %d", u, got, g.VertexCount()-1)
		}
		for _, v := range g.NonNeighbours(u) {
			if v == u || g.Adjacent(u, v) {
				t.Errorf("NonNeighbours(%d) contains %d", u, v)
			}
		}
	}

	if got := g.Neighbours(2); !slices.Equal(got, []int{0, 1, 3, 4}) {
		t.Errorf("Neighbours(2) = %v", got)
	}
	if got := g.NonNeighbours(0); !slices.Equal(got, []int{3, 4}) {
		t.Errorf("NonNeighbours(0) = %v", got)
	}
	if g.Degree(2) != 4 || g.Degree(0) != 2 {
		t.Errorf("Degree(2) = %d, Degree(0) = %d", g.Degree(2), g.Degree(0))
	}
}

func TestAdjacentAcrossWords(t *testing.T) {
	// Endpoints in different uint64 words of the bit matrix.
	g, err := New(130, []Edge{{0, 129}, {64, 65}, {63, 64}})
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range []Edge{{0, 129}, {129, 0}, {64, 65}, {63, 64}} {
		if !g.Adjacent(e.U, e.V) {
			t.Errorf("Adjacent(%d, %d) = false", e.U, e.V)
		}
	}
	if g.Adjacent(0, 128) || g.Adjacent(1, 129) {
		t.Error("unexpected adjacency")
	}
}

func TestComplete(t *testing.T) {
	g := Complete(6)
	if g.EdgeCount() != 15 {
		t.Errorf("EdgeCount() = %d, want 15", g.EdgeCount())
	}
	if g.Density() != 1 {
		t.Errorf("Density() = %v, want 1", g.Density())
	}
	for v := 0; v < 6; v++ {
		if len(g.NonNeighbours(v)) != 0 {
			t.Errorf("NonNeighbours(%d) = %v, want empty", v, g.NonNeighbours(v))
		}
	}
	if Complete(0).VertexCount() != 0 {
		t.Error("Complete(0) should be empty")
	}
}

func TestEdgesOrdered(t *testing.T) {
	g, _ := New(4, []Edge{{3, 2}, {1, 0}, {2, 0}})
	want := []Edge{{0, 1}, {0, 2}, {2, 3}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}
