// Package solver runs the maximum clique search end to end.
//
// This package ties the search components together so the CLI and the HTTP
// server share one implementation:
//
//  1. Heuristic: randomized greedy or tabu search for a strong incumbent
//  2. Exact: branch and bound seeded with the incumbent, under a deadline
//  3. Verify: all-pairs adjacency check of the returned clique
//
// Results are cached by graph content and options.
//
// # Usage
//
//	runner := solver.NewRunner(cache, nil, logger)
//	res, err := runner.Solve(ctx, g, solver.Options{
//	    Quality:   solver.QualityOptimal,
//	    TimeLimit: 30 * time.Second,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Size, clique.Format(res.Clique, true))
package solver

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/maxclique/pkg/cache"
	"github.com/matzehuels/maxclique/pkg/clique"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultIterations is the number of heuristic restarts.
	DefaultIterations = 1000

	// DefaultTimeLimit bounds the whole search, heuristic phase included.
	DefaultTimeLimit = 60 * time.Second

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultQuality runs the heuristic followed by branch and bound.
	DefaultQuality = QualityOptimal
)

// Quality selects which phases run.
type Quality string

const (
	// QualityFast runs randomized greedy construction only.
	QualityFast Quality = "fast"
	// QualityBalanced runs tabu search only.
	QualityBalanced Quality = "balanced"
	// QualityOptimal runs tabu search and then branch and bound.
	QualityOptimal Quality = "optimal"
)

// ValidQualities is the set of supported quality levels.
var ValidQualities = map[Quality]bool{
	QualityFast:     true,
	QualityBalanced: true,
	QualityOptimal:  true,
}

// ErrInvalidOptions is wrapped by every validation failure.
var ErrInvalidOptions = errors.New("invalid options")

// ParseQuality converts a flag or query value into a Quality.
func ParseQuality(s string) (Quality, error) {
	q := Quality(s)
	if !ValidQualities[q] {
		return "", fmt.Errorf("%w: quality %q (must be one of: fast, balanced, optimal)", ErrInvalidOptions, s)
	}
	return q, nil
}

// =============================================================================
// Options - Solver Configuration
// =============================================================================

// Options configures a solver run. It supports JSON for API requests.
type Options struct {
	Quality    Quality       `json:"quality,omitempty"`
	Iterations int           `json:"iterations,omitempty"`
	TimeLimit  time.Duration `json:"time_limit,omitempty"`
	Seed       uint64        `json:"seed,omitempty"`
	Refresh    bool          `json:"refresh,omitempty"` // bypass the cache lookup

	// Runtime options (not serialized)
	Logger       *log.Logger               `json:"-"`
	TabuProgress func(clique.TabuProgress) `json:"-"`
	BnBProgress  func(clique.BnBProgress)  `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Quality == "" {
		o.Quality = DefaultQuality
	}
	if !ValidQualities[o.Quality] {
		return fmt.Errorf("%w: quality %q (must be one of: fast, balanced, optimal)", ErrInvalidOptions, o.Quality)
	}
	if o.Iterations < 0 {
		return fmt.Errorf("%w: iterations must not be negative, got %d", ErrInvalidOptions, o.Iterations)
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.TimeLimit < 0 {
		return fmt.Errorf("%w: time limit must not be negative, got %s", ErrInvalidOptions, o.TimeLimit)
	}
	if o.TimeLimit == 0 {
		o.TimeLimit = DefaultTimeLimit
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ResultKeyOpts returns cache key options for the result of this run.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	opts := cache.ResultKeyOpts{
		Quality:    string(o.Quality),
		Iterations: o.Iterations,
		Seed:       o.Seed,
	}
	// The time limit only matters when branch and bound runs.
	if o.Quality == QualityOptimal {
		opts.TimeLimit = o.TimeLimit.Seconds()
	}
	return opts
}

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of a solver run.
type Result struct {
	RunID     string    `json:"run_id"`
	GraphHash string    `json:"graph_hash"`
	CreatedAt time.Time `json:"created_at"`
	Quality   Quality   `json:"quality"`
	Seed      uint64    `json:"seed"`

	Vertices int `json:"vertices"`
	Edges    int `json:"edges"`

	// Clique holds 0-indexed vertex ids in ascending order.
	Clique []int `json:"clique"`
	Size   int   `json:"size"`

	// Verified is false only when the returned set failed the all-pairs
	// check. Solve then also returns a VERIFICATION_FAILED error.
	Verified    bool   `json:"verified"`
	VerifyError string `json:"verify_error,omitempty"`

	// Complete is true when branch and bound exhausted the search tree,
	// which proves the clique maximum.
	Complete bool `json:"complete"`

	HeuristicTime time.Duration `json:"heuristic_time"`
	ExactTime     time.Duration `json:"exact_time"`

	Search SearchStats `json:"search"`
	Exact  ExactStats  `json:"exact"`

	// Cached is true when the result came from the cache.
	Cached bool `json:"cached"`
}

// SearchStats summarizes the heuristic phase.
type SearchStats struct {
	HeuristicSize int `json:"heuristic_size"`
	Restarts      int `json:"restarts"`
	Moves         int `json:"moves,omitempty"`
	Swaps11       int `json:"swaps_1_1,omitempty"`
	Swaps12       int `json:"swaps_1_2,omitempty"`
	Destroys      int `json:"destroys,omitempty"`
	Improvements  int `json:"improvements"`
}

// ExactStats summarizes the branch-and-bound phase.
type ExactStats struct {
	Nodes        int64 `json:"nodes"`
	Pruned       int64 `json:"pruned"`
	Improvements int   `json:"improvements"`
}
