package solver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/maxclique/pkg/cache"
	"github.com/matzehuels/maxclique/pkg/clique"
	"github.com/matzehuels/maxclique/pkg/coloring"
	mcerrors "github.com/matzehuels/maxclique/pkg/errors"
	"github.com/matzehuels/maxclique/pkg/graph"
	"github.com/matzehuels/maxclique/pkg/observability"
	"github.com/matzehuels/maxclique/pkg/order"
)

// Runner executes searches with caching.
// Both CLI and API use it so caching and verification live in one place.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner; every Solve call owns its own
// search state and random generator.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// GraphHash returns the content hash of g over its canonical DIMACS
// encoding. Equal graphs hash equally regardless of input edge order.
func GraphHash(g *graph.Graph) string {
	var buf bytes.Buffer
	_ = graph.WriteDIMACS(&buf, g)
	return cache.Hash(buf.Bytes())
}

// NewRand returns the generator used for a run with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Solve searches g for a maximum clique.
//
// The time limit covers the whole run and is enforced between outer
// branch-and-bound vertices; the heuristic phase always finishes its
// restarts. Running out of time is not an error: the result is returned
// with Complete unset.
//
// If the returned set fails verification, Solve returns both the result
// (with Verified unset) and an error with code VERIFICATION_FAILED.
func (r *Runner) Solve(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, mcerrors.Wrap(mcerrors.ErrCodeInvalidOption, err, "solver options")
	}
	logger := opts.Logger

	hash := GraphHash(g)
	key := r.Keyer.ResultKey(hash, opts.ResultKeyOpts())

	if !opts.Refresh {
		var cached Result
		if err := cache.GetJSON(ctx, r.Cache, key, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "result")
			logger.Debug("result cache hit", "key", key)
			cached.Cached = true
			return &cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Warn("result cache lookup failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "result")
	}

	res, err := r.search(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	res.GraphHash = hash

	if !res.Verified {
		return res, mcerrors.New(mcerrors.ErrCodeVerification, "returned set %s is not a clique: %s",
			clique.Format(res.Clique, false), res.VerifyError)
	}

	ttl := cache.TTLPartialResult
	if res.Complete {
		ttl = cache.TTLResult
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		return cache.SetJSON(ctx, r.Cache, key, res, ttl)
	})
	if err != nil {
		logger.Warn("result cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "result", res.Size)
	}
	return res, nil
}

// search runs the phases selected by opts.Quality.
func (r *Runner) search(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	logger := opts.Logger
	hooks := observability.Solver()

	start := time.Now()
	deadline := start.Add(opts.TimeLimit)
	rng := NewRand(opts.Seed)
	hooks.OnSolveStart(ctx, g.VertexCount(), g.EdgeCount(), string(opts.Quality))

	res := &Result{
		RunID:     uuid.NewString(),
		CreatedAt: start.UTC(),
		Quality:   opts.Quality,
		Seed:      opts.Seed,
		Vertices:  g.VertexCount(),
		Edges:     g.EdgeCount(),
	}

	// Heuristic phase
	var best []int
	if opts.Quality == QualityFast {
		gr := clique.RandomizedGreedy(ctx, g, opts.Iterations, rng)
		best = gr.Clique
		res.Search = SearchStats{Restarts: gr.Restarts, Improvements: len(best)}
		logger.Debug("best randomization", "r", gr.Randomization)
	} else {
		tr := clique.NewTabuSearch(g, rng, clique.TabuOptions{Progress: opts.TabuProgress}).Run(ctx, opts.Iterations)
		best = tr.Clique
		res.Search = SearchStats{
			Restarts:     tr.Stats.Restarts,
			Moves:        tr.Stats.Moves,
			Swaps11:      tr.Stats.Swaps11,
			Swaps12:      tr.Stats.Swaps12,
			Destroys:     tr.Stats.Destroys,
			Improvements: tr.Stats.Improvements,
		}
	}
	res.Search.HeuristicSize = len(best)
	res.HeuristicTime = time.Since(start)
	hooks.OnPhaseComplete(ctx, heuristicPhase(opts.Quality), len(best), res.HeuristicTime)
	logger.Info("heuristic phase",
		"size", len(best),
		"restarts", res.Search.Restarts,
		"duration", res.HeuristicTime)

	if err := ctx.Err(); err != nil {
		hooks.OnSolveComplete(ctx, len(best), false, false, time.Since(start), err)
		return nil, err
	}

	// Exact phase
	if opts.Quality == QualityOptimal {
		exactStart := time.Now()
		br := clique.NewBranchAndBound(g, clique.BnBOptions{
			Deadline: deadline,
			Progress: opts.BnBProgress,
		}).Run(ctx, best)
		best = br.Clique
		res.Complete = br.Complete
		res.Exact = ExactStats{Nodes: br.Nodes, Pruned: br.Pruned, Improvements: br.Improvements}
		res.ExactTime = time.Since(exactStart)
		hooks.OnPhaseComplete(ctx, "bnb", len(best), res.ExactTime)
		logger.Info("exact phase",
			"size", len(best),
			"complete", br.Complete,
			"nodes", br.Nodes,
			"duration", res.ExactTime)

		if err := ctx.Err(); err != nil {
			hooks.OnSolveComplete(ctx, len(best), false, false, time.Since(start), err)
			return nil, err
		}
	}

	res.Clique = slices.Sorted(slices.Values(best))
	res.Size = len(best)
	res.Verified = true
	if err := clique.Verify(g, res.Clique); err != nil {
		res.Verified = false
		res.VerifyError = err.Error()
		logger.Error("verification failed", "clique", clique.Format(res.Clique, false), "err", err)
	}
	hooks.OnSolveComplete(ctx, res.Size, res.Verified, res.Complete, time.Since(start), nil)
	return res, nil
}

func heuristicPhase(q Quality) string {
	if q == QualityFast {
		return "greedy"
	}
	return "tabu"
}

// ColorResult is a cached whole-graph coloring.
type ColorResult struct {
	Ordering string  `json:"ordering"`
	MaxColor int     `json:"max_color"`
	Colors   []int   `json:"colors"`
	Classes  [][]int `json:"classes"`
	Cached   bool    `json:"cached"`
}

// Color greedily colors g along the strategy's order and checks the
// result. seed only matters for the random strategy.
func (r *Runner) Color(ctx context.Context, g *graph.Graph, strategy order.Strategy, seed uint64) (*ColorResult, error) {
	if seed == 0 {
		seed = DefaultSeed
	}
	key := r.Keyer.ColoringKey(GraphHash(g), cache.ColoringKeyOpts{Ordering: strategy.String(), Seed: seed})

	var cached ColorResult
	if err := cache.GetJSON(ctx, r.Cache, key, &cached); err == nil {
		observability.Cache().OnCacheHit(ctx, "coloring")
		cached.Cached = true
		return &cached, nil
	}
	observability.Cache().OnCacheMiss(ctx, "coloring")

	col := coloring.Color(g, strategy.Order(g, NewRand(seed)))
	if err := coloring.Check(g, col.Colors); err != nil {
		return nil, mcerrors.Wrap(mcerrors.ErrCodeVerification, err, "coloring with %s order", strategy)
	}
	res := &ColorResult{
		Ordering: strategy.String(),
		MaxColor: col.MaxColor,
		Colors:   col.Colors,
		Classes:  coloring.Classes(col.Colors),
	}
	if err := cache.SetJSON(ctx, r.Cache, key, res, cache.TTLColoring); err != nil {
		r.Logger.Warn("coloring cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "coloring", res.MaxColor)
	}
	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		if err := r.Cache.Close(); err != nil {
			return fmt.Errorf("close cache: %w", err)
		}
	}
	return nil
}
