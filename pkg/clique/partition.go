package clique

import (
	"fmt"
	"slices"

	"github.com/matzehuels/maxclique/pkg/graph"
)

// Partition maintains a clique and its candidate set incrementally.
//
// All vertices live in one permutation array split into three zones:
//
//	[0, qBorder)        clique members
//	[qBorder, cBorder)  free candidates, adjacent to every clique member
//	[cBorder, n)        excluded, non-adjacent to at least one member
//
// tightness[v] counts the clique members v is not adjacent to. It is zero
// exactly for members and free candidates.
//
// Insert and Remove only visit the non-neighbours of the vertex they move.
// Insert(v) directly followed by Remove(v) restores the permutation, the
// position index, tightness and both borders exactly; the last insert is
// journaled for that purpose.
type Partition struct {
	g         *graph.Graph
	qco       []int // permutation of vertices
	index     []int // index[qco[i]] == i
	tightness []int
	qBorder   int
	cBorder   int

	last    int   // vertex of the journaled insert, -1 when stale
	journal []int // positions displaced by the journaled insert
}

// NewPartition returns an empty partition over g: no clique members and
// every vertex a free candidate.
func NewPartition(g *graph.Graph) *Partition {
	n := g.VertexCount()
	p := &Partition{
		g:         g,
		qco:       make([]int, n),
		index:     make([]int, n),
		tightness: make([]int, n),
	}
	p.Clear()
	return p
}

// Clear resets to the empty clique with all vertices free.
func (p *Partition) Clear() {
	for i := range p.qco {
		p.qco[i] = i
		p.index[i] = i
		p.tightness[i] = 0
	}
	p.qBorder = 0
	p.cBorder = len(p.qco)
	p.last = -1
}

// swap exchanges the slot of vertex v with whatever occupies position border.
func (p *Partition) swap(v, border int) {
	p.swapAt(p.index[v], border)
}

func (p *Partition) swapAt(i, j int) {
	a, b := p.qco[i], p.qco[j]
	p.qco[i], p.qco[j] = b, a
	p.index[a], p.index[b] = j, i
}

// Insert adds the free candidate v to the clique. Candidates that are not
// adjacent to v become excluded.
//
// v must be a free candidate; inserting anything else breaks the partition.
func (p *Partition) Insert(v int) {
	p.journal = p.journal[:0]
	for _, j := range p.g.NonNeighbours(v) {
		if p.tightness[j] == 0 {
			p.cBorder--
			p.journal = append(p.journal, p.index[j])
			p.swap(j, p.cBorder)
		}
		p.tightness[j]++
	}
	p.journal = append(p.journal, p.index[v])
	p.swap(v, p.qBorder)
	p.qBorder++
	p.last = v
}

// Remove takes the clique member v out of the clique. Excluded vertices
// whose only conflict was v become free candidates again, and so does v.
func (p *Partition) Remove(v int) {
	if v == p.last {
		p.undoInsert(v)
		return
	}
	p.last = -1

	for _, j := range p.g.NonNeighbours(v) {
		if p.tightness[j] == 1 {
			p.swap(j, p.cBorder)
			p.cBorder++
		}
		p.tightness[j]--
	}
	p.qBorder--
	p.swap(v, p.qBorder)
}

// undoInsert replays the journal of the last Insert backwards.
func (p *Partition) undoInsert(v int) {
	p.last = -1

	p.qBorder--
	p.swapAt(p.qBorder, p.journal[len(p.journal)-1])
	for k := len(p.journal) - 2; k >= 0; k-- {
		p.swapAt(p.cBorder, p.journal[k])
		p.cBorder++
	}
	for _, j := range p.g.NonNeighbours(v) {
		p.tightness[j]--
	}
}

// Size returns the number of clique members.
func (p *Partition) Size() int { return p.qBorder }

// CandidateCount returns the number of free candidates.
func (p *Partition) CandidateCount() int { return p.cBorder - p.qBorder }

// Clique returns a copy of the current members.
func (p *Partition) Clique() []int { return slices.Clone(p.qco[:p.qBorder]) }

// Candidates returns a copy of the current free candidates.
func (p *Partition) Candidates() []int { return slices.Clone(p.qco[p.qBorder:p.cBorder]) }

// Member returns the clique member stored at position i, 0 <= i < Size().
func (p *Partition) Member(i int) int { return p.qco[i] }

// Candidate returns the free candidate stored at position i,
// 0 <= i < CandidateCount().
func (p *Partition) Candidate(i int) int { return p.qco[p.qBorder+i] }

// Tightness returns the number of clique members v is not adjacent to.
func (p *Partition) Tightness(v int) int { return p.tightness[v] }

// InClique reports whether v is a clique member.
func (p *Partition) InClique(v int) bool { return p.index[v] < p.qBorder }

// IsCandidate reports whether v is a free candidate.
func (p *Partition) IsCandidate(v int) bool {
	i := p.index[v]
	return i >= p.qBorder && i < p.cBorder
}

// swapCandidates appends to buf the excluded vertices whose single conflict
// is the clique member v.
func (p *Partition) swapCandidates(v int, buf []int) []int {
	for _, j := range p.g.NonNeighbours(v) {
		if p.tightness[j] == 1 {
			buf = append(buf, j)
		}
	}
	return buf
}

// Validate recomputes every invariant from scratch. It is O(n²) and meant
// for tests and debugging.
func (p *Partition) Validate() error {
	n := len(p.qco)
	if p.qBorder < 0 || p.qBorder > p.cBorder || p.cBorder > n {
		return fmt.Errorf("borders out of order: q=%d c=%d n=%d", p.qBorder, p.cBorder, n)
	}
	for i, v := range p.qco {
		if p.index[v] != i {
			return fmt.Errorf("index[%d] = %d, want %d", v, p.index[v], i)
		}
	}
	members := p.qco[:p.qBorder]
	for v := 0; v < n; v++ {
		want := 0
		for _, u := range members {
			if u != v && !p.g.Adjacent(u, v) {
				want++
			}
		}
		if p.tightness[v] != want {
			return fmt.Errorf("tightness[%d] = %d, want %d", v, p.tightness[v], want)
		}
		inClique := p.InClique(v)
		switch {
		case inClique && want != 0:
			return fmt.Errorf("member %d conflicts with %d members", v, want)
		case !inClique && p.IsCandidate(v) && want != 0:
			return fmt.Errorf("candidate %d has tightness %d", v, want)
		case !inClique && !p.IsCandidate(v) && want == 0:
			return fmt.Errorf("excluded vertex %d has tightness 0", v)
		}
	}
	return nil
}
