package clique

import (
	"context"
	"slices"
	"time"

	"github.com/matzehuels/maxclique/pkg/coloring"
	"github.com/matzehuels/maxclique/pkg/graph"
	"github.com/matzehuels/maxclique/pkg/order"
)

// BnBOptions configures a [BranchAndBound] search.
type BnBOptions struct {
	// Deadline stops the outer loop once passed. The zero value means no
	// deadline.
	Deadline time.Time

	// Order is the outer iteration order. Defaults to the elimination order
	// of the graph.
	Order []int

	// Progress, when set, is called after every outer vertex.
	Progress func(BnBProgress)
}

// BnBProgress is a snapshot passed to [BnBOptions.Progress].
type BnBProgress struct {
	Done  int // outer vertices finished
	Total int
	Best  int
	Nodes int64
}

// BnBResult is the outcome of [BranchAndBound.Run].
type BnBResult struct {
	Clique []int
	// Complete is true when every outer vertex was explored, which makes
	// Clique a maximum clique.
	Complete     bool
	Nodes        int64 // recursive calls
	Pruned       int64 // color classes cut by the bound
	Improvements int
}

// BranchAndBound is an exact maximum clique search.
//
// The outer loop walks the order; for vertex order[i] the search recurses
// on its neighbours among order[i+1:], listed from the back of the order
// forward. Each recursive call greedily colors its candidates and expands
// color classes from the highest color down, returning as soon as the
// current clique plus the class color cannot beat the incumbent.
//
// The deadline and ctx are polled only between outer vertices. A recursive
// call in flight always finishes.
type BranchAndBound struct {
	g       *graph.Graph
	opts    BnBOptions
	colorer *coloring.Colorer

	clique []int
	best   []int
	levels []*level

	nodes        int64
	pruned       int64
	improvements int
}

// level is the scratch space of one recursion depth.
type level struct {
	next    []int
	visited []bool
	classes [][]int
}

// NewBranchAndBound prepares a search over g.
func NewBranchAndBound(g *graph.Graph, opts BnBOptions) *BranchAndBound {
	if opts.Order == nil {
		opts.Order = order.EliminationOrder(g)
	}
	return &BranchAndBound{
		g:       g,
		opts:    opts,
		colorer: coloring.NewColorer(g),
	}
}

// Run searches for a clique larger than seed. seed is the incumbent and is
// returned unchanged when nothing larger exists or the deadline hits first.
func (b *BranchAndBound) Run(ctx context.Context, seed []int) BnBResult {
	b.best = append(b.best[:0], seed...)
	b.clique = b.clique[:0]
	b.nodes, b.pruned, b.improvements = 0, 0, 0

	ord := b.opts.Order
	complete := true
	top := make([]int, 0, len(ord))

	for i, v := range ord {
		if ctx.Err() != nil || b.expired() {
			complete = false
			break
		}

		top = top[:0]
		for j := len(ord) - 1; j > i; j-- {
			if b.g.Adjacent(v, ord[j]) {
				top = append(top, ord[j])
			}
		}
		b.clique = append(b.clique, v)
		b.expand(top, 0)
		b.clique = b.clique[:len(b.clique)-1]

		if b.opts.Progress != nil {
			b.opts.Progress(BnBProgress{Done: i + 1, Total: len(ord), Best: len(b.best), Nodes: b.nodes})
		}
	}

	return BnBResult{
		Clique:       slices.Clone(b.best),
		Complete:     complete,
		Nodes:        b.nodes,
		Pruned:       b.pruned,
		Improvements: b.improvements,
	}
}

func (b *BranchAndBound) expired() bool {
	return !b.opts.Deadline.IsZero() && time.Now().After(b.opts.Deadline)
}

// expand explores every extension of b.clique by vertices of candidates.
// b.clique is restored before returning on every path.
func (b *BranchAndBound) expand(candidates []int, depth int) {
	b.nodes++
	if len(candidates) == 0 {
		if len(b.clique) > len(b.best) {
			b.best = append(b.best[:0], b.clique...)
			b.improvements++
		}
		return
	}

	maxColor, colors := b.colorer.Color(candidates)

	lv := b.level(depth, len(candidates), maxColor)
	for i := len(candidates) - 1; i >= 0; i-- {
		lv.classes[colors[i]] = append(lv.classes[colors[i]], i)
	}

	for color := maxColor; color > 0; color-- {
		if len(b.clique)+color <= len(b.best) {
			b.pruned += int64(color)
			return
		}
		for _, pos := range lv.classes[color] {
			u := candidates[pos]
			lv.visited[pos] = true

			lv.next = lv.next[:0]
			for k, w := range candidates {
				if !lv.visited[k] && b.g.Adjacent(u, w) {
					lv.next = append(lv.next, w)
				}
			}

			b.clique = append(b.clique, u)
			b.expand(lv.next, depth+1)
			b.clique = b.clique[:len(b.clique)-1]
		}
	}
}

// level returns the cleared scratch space for depth.
func (b *BranchAndBound) level(depth, size, maxColor int) *level {
	for len(b.levels) <= depth {
		b.levels = append(b.levels, &level{})
	}
	lv := b.levels[depth]

	lv.visited = slices.Grow(lv.visited[:0], size)[:size]
	clear(lv.visited)

	for len(lv.classes) <= maxColor {
		lv.classes = append(lv.classes, nil)
	}
	for c := range lv.classes {
		lv.classes[c] = lv.classes[c][:0]
	}
	return lv
}
