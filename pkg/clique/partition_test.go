package clique

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	qco, index, tightness []int
	q, c                  int
}

func snap(p *Partition) snapshot {
	return snapshot{
		qco:       slices.Clone(p.qco),
		index:     slices.Clone(p.index),
		tightness: slices.Clone(p.tightness),
		q:         p.qBorder,
		c:         p.cBorder,
	}
}

func TestPartitionEmpty(t *testing.T) {
	g := randomGraph(t, 10, 0.5, 1)
	p := NewPartition(g)

	require.NoError(t, p.Validate())
	assert.Equal(t, 0, p.Size())
	assert.Equal(t, 10, p.CandidateCount())
	assert.Empty(t, p.Clique())
	assert.Len(t, p.Candidates(), 10)
}

func TestPartitionInsertExcludesNonNeighbours(t *testing.T) {
	p := NewPartition(twoTriangles(t))

	p.Insert(0)
	require.NoError(t, p.Validate())
	assert.True(t, p.InClique(0))
	assert.ElementsMatch(t, []int{1, 2}, p.Candidates())
	assert.Equal(t, 1, p.Tightness(3))
	assert.Equal(t, 1, p.Tightness(4))

	p.Insert(2)
	require.NoError(t, p.Validate())
	assert.ElementsMatch(t, []int{1}, p.Candidates())

	p.Insert(1)
	require.NoError(t, p.Validate())
	assert.ElementsMatch(t, []int{0, 1, 2}, p.Clique())
	assert.Equal(t, 0, p.CandidateCount())
}

func TestPartitionInsertRemoveRestoresState(t *testing.T) {
	g := randomGraph(t, 40, 0.6, 7)
	p := NewPartition(g)
	rng := newRNG(3)

	for step := 0; step < 500; step++ {
		if p.CandidateCount() == 0 {
			p.Remove(p.Member(rng.IntN(p.Size())))
			require.NoError(t, p.Validate())
			continue
		}
		before := snap(p)
		v := p.Candidate(rng.IntN(p.CandidateCount()))

		p.Insert(v)
		require.NoError(t, p.Validate())
		p.Remove(v)
		require.Equal(t, before, snap(p), "step %d vertex %d", step, v)

		// Keep it to move on.
		p.Insert(v)
		require.NoError(t, p.Validate())
	}
}

func TestPartitionRandomOperations(t *testing.T) {
	for seed := uint64(1); seed <= 4; seed++ {
		g := randomGraph(t, 30, 0.5, seed)
		p := NewPartition(g)
		rng := newRNG(seed)

		for step := 0; step < 300; step++ {
			if p.Size() > 0 && (p.CandidateCount() == 0 || rng.IntN(3) == 0) {
				p.Remove(p.Member(rng.IntN(p.Size())))
			} else if p.CandidateCount() > 0 {
				p.Insert(p.Candidate(rng.IntN(p.CandidateCount())))
			}
			require.NoError(t, p.Validate(), "seed %d step %d", seed, step)
			require.True(t, IsClique(g, p.Clique()))
		}

		p.Clear()
		require.NoError(t, p.Validate())
		assert.Equal(t, 0, p.Size())
	}
}

func TestPartitionSwapCandidates(t *testing.T) {
	p := NewPartition(twoTriangles(t))
	p.Insert(0)
	p.Insert(1)

	// 3 and 4 conflict with both members; none has tightness 1.
	assert.Empty(t, p.swapCandidates(0, nil))

	p.Remove(1)
	p.Insert(2)
	// Members {0, 2}: 1 is a candidate, 3 and 4 only conflict with 0.
	assert.ElementsMatch(t, []int{3, 4}, p.swapCandidates(0, nil))
	assert.Empty(t, p.swapCandidates(2, nil))
}
