package clique

import (
	"context"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/maxclique/pkg/graph"
	"github.com/matzehuels/maxclique/pkg/order"
)

const (
	// DefaultMaxSwaps is the number of 1-for-1 swaps a restart may make
	// before the next stagnation forces a destroy.
	DefaultMaxSwaps = 100

	// DefaultDestroys is the number of destroy events that end a restart.
	DefaultDestroys = 2
)

// TabuOptions configures a [TabuSearch]. Zero fields take defaults.
type TabuOptions struct {
	MaxSwaps int
	Destroys int

	// Order is the construction order. Defaults to the smallest-last order
	// of the graph.
	Order []int

	// Progress, when set, is called after every restart.
	Progress func(TabuProgress)
}

// TabuProgress is a snapshot passed to [TabuOptions.Progress].
type TabuProgress struct {
	Restart    int // restart counter, advanced by destroys as well
	Iterations int
	Best       int
}

// SearchStats counts local search events.
type SearchStats struct {
	Restarts     int
	Moves        int
	Swaps11      int // 1-for-1 swaps
	Swaps12      int // 1-for-2 swaps
	Destroys     int
	Improvements int
}

// TabuResult is the outcome of [TabuSearch.Run].
type TabuResult struct {
	Clique []int
	Stats  SearchStats
}

// TabuSearch is a restart-based local search for large cliques.
//
// Every restart builds a randomized clique along the construction order and
// then improves it with three operators:
//
//   - Move inserts a random free candidate.
//   - Swap exchanges one member for two mutually adjacent excluded
//     vertices, or failing that for one, honouring the tabu lists.
//   - Destroy removes two to five random members once swaps stagnate.
//
// A TabuSearch owns its partition and is not safe for concurrent use.
type TabuSearch struct {
	g    *graph.Graph
	rng  *rand.Rand
	opts TabuOptions

	p          *Partition
	insertTabu tabuList
	removeTabu tabuList

	best  []int
	stats SearchStats

	perm  []int
	swaps []int
	build []int
}

// NewTabuSearch prepares a search over g drawing all randomness from rng.
func NewTabuSearch(g *graph.Graph, rng *rand.Rand, opts TabuOptions) *TabuSearch {
	if opts.MaxSwaps <= 0 {
		opts.MaxSwaps = DefaultMaxSwaps
	}
	if opts.Destroys <= 0 {
		opts.Destroys = DefaultDestroys
	}
	if opts.Order == nil {
		opts.Order = order.SmallestLastOrder(g)
	}
	return &TabuSearch{
		g:     g,
		rng:   rng,
		opts:  opts,
		p:     NewPartition(g),
		build: make([]int, 0, g.VertexCount()),
	}
}

// Run performs the search and returns the best clique seen across all
// restarts.
//
// The restart counter also advances on every destroy event, so fewer than
// iterations restarts actually run. ctx is polled once per restart; on
// cancellation the best clique so far is returned.
func (s *TabuSearch) Run(ctx context.Context, iterations int) TabuResult {
	s.best = s.best[:0]
	s.stats = SearchStats{}
	if s.g.VertexCount() == 0 {
		return TabuResult{Clique: []int{}}
	}

	for it := 0; it < iterations; it++ {
		if ctx.Err() != nil {
			break
		}
		s.stats.Restarts++

		s.p.Clear()
		r := math.Sqrt(float64(it) / float64(iterations))
		construct(s.g, append(s.build[:0], s.opts.Order...), r, r > 0, s.rng, s.p.Insert)

		s.insertTabu.reset(3 + it%5)
		s.removeTabu.reset(s.insertTabu.size + 3)

		swaps, destroys := 0, 0
		for destroys < s.opts.Destroys {
			s.record()

			if s.move() {
				continue
			}
			code := s.swap()
			if code == 2 {
				continue
			}
			if code == 1 && swaps < s.opts.MaxSwaps {
				swaps++
				continue
			}

			s.destroy()
			destroys++
			it++
			swaps = 0
			s.insertTabu.clear()
			s.removeTabu.clear()
		}

		if s.opts.Progress != nil {
			s.opts.Progress(TabuProgress{Restart: it, Iterations: iterations, Best: len(s.best)})
		}
	}
	return TabuResult{Clique: slices.Clone(s.best), Stats: s.stats}
}

func (s *TabuSearch) record() {
	if s.p.Size() > len(s.best) {
		s.best = append(s.best[:0], s.p.qco[:s.p.Size()]...)
		s.stats.Improvements++
	}
}

// move inserts a uniformly random free candidate.
func (s *TabuSearch) move() bool {
	n := s.p.CandidateCount()
	if n == 0 {
		return false
	}
	s.p.Insert(s.p.Candidate(s.rng.IntN(n)))
	s.stats.Moves++
	return true
}

// swap returns 2 after a 1-for-2 swap, 1 after a 1-for-1 swap and 0 when
// neither is possible.
func (s *TabuSearch) swap() int {
	q := s.p.Size()
	s.perm = s.perm[:0]
	for i := 0; i < q; i++ {
		s.perm = append(s.perm, i)
	}
	s.rng.Shuffle(len(s.perm), func(i, j int) { s.perm[i], s.perm[j] = s.perm[j], s.perm[i] })

	out, in := -1, -1
	for _, pos := range s.perm {
		v := s.p.Member(pos)
		s.swaps = s.p.swapCandidates(v, s.swaps[:0])
		if len(s.swaps) == 0 {
			continue
		}
		s.rng.Shuffle(len(s.swaps), func(i, j int) { s.swaps[i], s.swaps[j] = s.swaps[j], s.swaps[i] })

		for _, c1 := range s.swaps {
			for _, c2 := range s.swaps {
				if s.g.Adjacent(c1, c2) {
					s.p.Remove(v)
					s.p.Insert(c1)
					s.p.Insert(c2)
					s.stats.Swaps12++
					return 2
				}
			}
		}

		if out < 0 && !s.insertTabu.contains(v) {
			for _, c := range s.swaps {
				if !s.removeTabu.contains(c) {
					out, in = v, c
				}
			}
		}
	}

	if out < 0 {
		return 0
	}
	s.p.Remove(out)
	s.removeTabu.push(out)
	s.p.Insert(in)
	s.insertTabu.push(in)
	s.stats.Swaps11++
	return 1
}

// destroy removes between two and five random members.
func (s *TabuSearch) destroy() {
	for k := 2 + s.rng.IntN(4); k > 0; k-- {
		if q := s.p.Size(); q > 0 {
			s.p.Remove(s.p.Member(s.rng.IntN(q)))
		}
	}
	s.stats.Destroys++
}

// tabuList is a bounded FIFO of recently moved vertices.
type tabuList struct {
	items []int
	size  int
}

func (t *tabuList) reset(size int) {
	t.size = size
	t.clear()
}

func (t *tabuList) clear() { t.items = t.items[:0] }

func (t *tabuList) push(v int) {
	t.items = append(t.items, v)
	if len(t.items) > t.size {
		t.items = append(t.items[:0], t.items[1:]...)
	}
}

func (t *tabuList) contains(v int) bool { return slices.Contains(t.items, v) }
