package cli

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/maxclique/pkg/clique"
	mcerrors "github.com/matzehuels/maxclique/pkg/errors"
	"github.com/matzehuels/maxclique/pkg/solver"
)

// searchFlags are the solver flags shared by solve and bench. Unset flags
// fall back to the [solver] section of the config.
type searchFlags struct {
	quality    string
	timeLimit  time.Duration
	iterations int
	seed       uint64
	random     bool
	noCache    bool
	refresh    bool
}

func (f *searchFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.quality, "quality", "q", string(solver.DefaultQuality), "search quality: fast (greedy), balanced (tabu), optimal (tabu + branch and bound)")
	fs.DurationVarP(&f.timeLimit, "time-limit", "t", solver.DefaultTimeLimit, "wall-clock budget for the whole run")
	fs.IntVarP(&f.iterations, "iterations", "n", solver.DefaultIterations, "heuristic restart budget")
	fs.Uint64Var(&f.seed, "seed", solver.DefaultSeed, "random seed")
	fs.BoolVar(&f.random, "random", false, "draw a random seed (non-reproducible)")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached results and search again")
}

// options merges flags explicitly set on cmd over the configured defaults.
func (f *searchFlags) options(cmd *cobra.Command, cfg SolverConfig) (solver.Options, error) {
	opts := solver.Options{
		Quality:    solver.Quality(cfg.Quality),
		TimeLimit:  cfg.TimeLimit,
		Iterations: cfg.Iterations,
		Seed:       cfg.Seed,
		Refresh:    f.refresh,
	}
	flags := cmd.Flags()
	if flags.Changed("quality") {
		q, err := solver.ParseQuality(f.quality)
		if err != nil {
			return opts, mcerrors.Wrap(mcerrors.ErrCodeInvalidOption, err, "--quality")
		}
		opts.Quality = q
	}
	if flags.Changed("time-limit") {
		opts.TimeLimit = f.timeLimit
	}
	if flags.Changed("iterations") {
		opts.Iterations = f.iterations
	}
	if flags.Changed("seed") {
		opts.Seed = f.seed
	}
	if f.random {
		if flags.Changed("seed") {
			return opts, mcerrors.New(mcerrors.ErrCodeInvalidOption, "--seed and --random are mutually exclusive")
		}
		opts.Seed = rand.Uint64() | 1
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, mcerrors.Wrap(mcerrors.ErrCodeInvalidOption, err, "search flags")
	}
	// Defaults applied above include a discard logger; let the runner
	// supply its own.
	opts.Logger = nil
	return opts, nil
}

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	searchFlags
	oneBased bool // print DIMACS (1-indexed) vertex ids
	jsonOut  bool
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve <graph.clq>",
		Short: "Find a maximum clique in a DIMACS graph",
		Long: `Find a maximum clique in a DIMACS graph.

The optimal quality runs a tabu local search and uses its clique to seed a
coloring-bounded branch and bound. If the time limit expires first, the best
clique found so far is reported and marked incomplete.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd, args[0], &opts)
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().BoolVar(&opts.oneBased, "one-based", false, "print 1-indexed vertex ids as in the DIMACS file")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the result as JSON")

	return cmd
}

func (c *CLI) runSolve(cmd *cobra.Command, path string, opts *solveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	sopts, err := opts.options(cmd, c.cfg.Solver)
	if err != nil {
		return err
	}
	g, err := loadGraph(ctx, path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	reporter := newSearchReporter(logger, sopts.TimeLimit)
	reporter.attach(&sopts)
	logger.Infof("Searching (%s, seed %d, time limit %s)", sopts.Quality, sopts.Seed, sopts.TimeLimit)

	res, err := runner.Solve(ctx, g, sopts)
	if res != nil {
		reporter.finish(res)
	}
	if opts.jsonOut && res != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(res); encErr != nil {
			return encErr
		}
		return err
	}
	if err != nil {
		if mcerrors.Is(err, mcerrors.ErrCodeVerification) {
			printWarning("%s", mcerrors.UserMessage(err))
		}
		return err
	}

	printResult(res, opts.oneBased)
	return nil
}

// printResult prints a solve result for humans.
func printResult(res *solver.Result, oneBased bool) {
	if res.Complete {
		printSuccess("Maximum clique: %s", StyleNumber.Render(fmt.Sprint(res.Size)))
	} else {
		printSuccess("Clique: %s %s", StyleNumber.Render(fmt.Sprint(res.Size)), StyleDim.Render("(not proven maximum)"))
	}
	printStats(res.Vertices, res.Edges, res.HeuristicTime+res.ExactTime, res.Cached)
	printNewline()
	printKeyValue("Vertices", clique.Format(res.Clique, oneBased))
	printKeyValue("Heuristic", fmt.Sprintf("%d in %s (%d restarts)",
		res.Search.HeuristicSize, res.HeuristicTime.Round(time.Millisecond), res.Search.Restarts))
	if res.Quality == solver.QualityOptimal {
		printKeyValue("BnB", fmt.Sprintf("%s, %d nodes", res.ExactTime.Round(time.Millisecond), res.Exact.Nodes))
	}
	printKeyValue("Verified", fmt.Sprint(res.Verified))
	printKeyValue("Run", StyleDim.Render(res.RunID))
}
