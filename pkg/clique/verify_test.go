package clique

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/maxclique/pkg/graph"
)

func TestVerify(t *testing.T) {
	g := twoTriangles(t)
	tests := []struct {
		name   string
		clique []int
		err    error
	}{
		{"empty", nil, nil},
		{"single", []int{4}, nil},
		{"triangle", []int{2, 0, 1}, nil},
		{"not adjacent", []int{0, 3}, ErrNotClique},
		{"duplicate", []int{0, 1, 0}, ErrDuplicateVertex},
		{"out of range", []int{0, 5}, graph.ErrVertexOutOfRange},
		{"negative", []int{-1}, graph.ErrVertexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(g, tt.clique)
			if tt.err == nil {
				assert.NoError(t, err)
				assert.True(t, IsClique(g, tt.clique))
				return
			}
			assert.ErrorIs(t, err, tt.err)
			assert.False(t, IsClique(g, tt.clique))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "{}", Format(nil, false))
	assert.Equal(t, "{0,2,7}", Format([]int{7, 0, 2}, false))
	assert.Equal(t, "{1,3,8}", Format([]int{7, 0, 2}, true))

	in := []int{3, 1, 2}
	Format(in, false)
	assert.Equal(t, []int{3, 1, 2}, in, "input must not be reordered")
}
