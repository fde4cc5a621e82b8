package cli

import (
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/maxclique/pkg/clique"
	"github.com/matzehuels/maxclique/pkg/solver"
)

// heartbeat is the interval between "Searching..." status lines.
const heartbeat = 10 * time.Second

// searchReporter turns solver progress callbacks into log lines: the first
// clique found, every improvement, and a heartbeat every 10 seconds.
//
// It is not safe for concurrent use; the solver calls it from the search
// goroutine only.
type searchReporter struct {
	logger    *log.Logger
	timeLimit time.Duration
	best      int
	start     time.Time
	lastLog   time.Time
}

func newSearchReporter(logger *log.Logger, timeLimit time.Duration) *searchReporter {
	now := time.Now()
	return &searchReporter{
		logger:    logger,
		timeLimit: timeLimit,
		best:      -1,
		start:     now,
		lastLog:   now,
	}
}

// attach wires the reporter into opts.
func (r *searchReporter) attach(opts *solver.Options) {
	opts.TabuProgress = r.onTabu
	opts.BnBProgress = r.onBnB
}

// improved logs a new best size and reports whether it was one.
func (r *searchReporter) improved(size int, where string) bool {
	switch {
	case r.best < 0:
		r.logger.Infof("Initial: clique of %d (%s)", size, where)
	case size > r.best:
		r.logger.Infof("Improved: clique of %d (↑%d, %s)", size, size-r.best, where)
	default:
		return false
	}
	r.best = size
	r.lastLog = time.Now()
	return true
}

func (r *searchReporter) onTabu(p clique.TabuProgress) {
	if r.improved(p.Best, "tabu restart "+strconv.Itoa(p.Restart)) {
		return
	}
	if time.Since(r.lastLog) >= heartbeat {
		r.logger.Infof("Searching... tabu restart %d/%d, best %d", p.Restart, p.Iterations, r.best)
		r.lastLog = time.Now()
	}
}

func (r *searchReporter) onBnB(p clique.BnBProgress) {
	if r.improved(p.Best, "branch and bound") {
		return
	}
	if time.Since(r.lastLog) >= heartbeat {
		elapsed := time.Since(r.start).Truncate(time.Second)
		r.logger.Infof("Searching... %v/%.0fs elapsed, vertex %d/%d, best %d (nodes: %d)",
			elapsed, r.timeLimit.Seconds(), p.Done, p.Total, r.best, p.Nodes)
		r.lastLog = time.Now()
	}
}

// finish logs the search statistics and warns when branch and bound ran
// out of time.
func (r *searchReporter) finish(res *solver.Result) {
	s := res.Search
	r.logger.Debugf("Heuristic: size %d, %d restarts, %d moves, %d 1-1 swaps, %d 1-2 swaps, %d destroys",
		s.HeuristicSize, s.Restarts, s.Moves, s.Swaps11, s.Swaps12, s.Destroys)
	if res.Quality != solver.QualityOptimal {
		return
	}
	r.logger.Debugf("Branch and bound: %d nodes, %d pruned colors, %d improvements",
		res.Exact.Nodes, res.Exact.Pruned, res.Exact.Improvements)
	if !res.Complete {
		r.logger.Warn("Search stopped at the time limit; the clique may not be maximum (try increasing --time-limit)")
	}
}
