package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	mcerrors "github.com/matzehuels/maxclique/pkg/errors"
	"github.com/matzehuels/maxclique/pkg/report"
	"github.com/matzehuels/maxclique/pkg/solver"
	"github.com/matzehuels/maxclique/pkg/suite"
)

// benchOpts holds the command-line flags for the bench command.
type benchOpts struct {
	searchFlags
	only     []string // instance names to run
	pick     bool     // choose instances interactively
	csvPath  string   // "-" writes to stdout
	parquet  string
	noSave   bool
	oneBased bool
}

// benchCommand creates the bench command.
func (c *CLI) benchCommand() *cobra.Command {
	var opts benchOpts

	cmd := &cobra.Command{
		Use:   "bench <suite.toml | dir>",
		Short: "Run a benchmark suite and report the results",
		Long: `Run every instance of a benchmark suite and report heuristic and branch
and bound times, clique sizes and whether each search finished.

The argument is a suite file or a directory; a directory runs every .clq and
.col file in it. Suite settings override the config, flags override both.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBench(cmd, args[0], &opts)
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().StringSliceVar(&opts.only, "only", nil, "run only these instances (comma-separated)")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose instances interactively")
	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "write the report as CSV (- for stdout)")
	cmd.Flags().StringVar(&opts.parquet, "parquet", "", "write the report as Parquet")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "do not store the run")
	cmd.Flags().BoolVar(&opts.oneBased, "one-based", false, "report 1-indexed vertex ids")

	return cmd
}

// loadSuite reads a suite file or discovers one from a directory.
func loadSuite(path string) (*suite.Suite, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mcerrors.Wrap(mcerrors.ErrCodeFileNotFound, err, "suite")
		}
		return nil, err
	}
	if info.IsDir() {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		return suite.Discover(filepath.Base(abs), path)
	}
	return suite.Load(path)
}

// suiteDefaults layers the suite settings over the configured defaults.
func suiteDefaults(cfg SolverConfig, s *suite.Suite) SolverConfig {
	if s.Quality != "" {
		cfg.Quality = s.Quality
	}
	if s.TimeLimit.Duration > 0 {
		cfg.TimeLimit = s.TimeLimit.Duration
	}
	if s.Iterations > 0 {
		cfg.Iterations = s.Iterations
	}
	if s.Seed > 0 {
		cfg.Seed = s.Seed
	}
	return cfg
}

func (c *CLI) runBench(cmd *cobra.Command, path string, opts *benchOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	s, err := loadSuite(path)
	if err != nil {
		return err
	}
	if opts.pick {
		names, err := pickInstances(s)
		if err != nil {
			return err
		}
		opts.only = names
	}
	if len(opts.only) > 0 {
		if s, err = s.Select(opts.only); err != nil {
			return err
		}
	}

	sopts, err := opts.options(cmd, suiteDefaults(c.cfg.Solver, s))
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	printInfo("Suite %s: %d instances (%s, time limit %s each)", StyleHighlight.Render(s.Name),
		len(s.Instances), sopts.Quality, sopts.TimeLimit)

	run := report.NewRun(s.Name, sopts)
	failed := c.benchInstances(ctx, runner, s, sopts, run, opts.oneBased)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	printNewline()
	if len(run.Rows) > 0 {
		fmt.Println(benchTable(run.Rows))
	}
	sum := run.Summarize()
	printSuccess("%d/%d complete, %d below known best, %s total", sum.Complete, sum.Instances, sum.BelowBest,
		sum.TotalTime.Round(time.Millisecond))
	if sum.Unverified > 0 {
		printWarning("%d results failed verification", sum.Unverified)
	}

	if err := writeReports(run.Rows, opts); err != nil {
		return err
	}
	if !opts.noSave {
		c.saveRun(ctx, logger, run)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d instances failed", failed, len(s.Instances))
	}
	return nil
}

// benchInstances solves every instance of s into run and returns the number
// of instances that could not be solved. Verification failures still produce
// a row.
func (c *CLI) benchInstances(ctx context.Context, runner *solver.Runner, s *suite.Suite, sopts solver.Options, run *report.Run, oneBased bool) int {
	logger := loggerFromContext(ctx)
	verbose := logger.GetLevel() <= log.DebugLevel

	var spinner *Spinner
	if !verbose {
		spinner = newSpinner(ctx, "Starting")
		spinner.Start()
		defer spinner.Stop()
	}

	failed := 0
	for i, in := range s.Instances {
		if ctx.Err() != nil {
			return failed
		}
		if spinner != nil {
			spinner.Update(fmt.Sprintf("Solving %s (%d/%d)", in.Name, i+1, len(s.Instances)))
		}

		g, err := loadGraph(ctx, s.Path(in))
		if err != nil {
			logger.Error("Skipping instance", "instance", in.Name, "err", err)
			failed++
			continue
		}

		iopts := sopts
		if verbose {
			newSearchReporter(logger, iopts.TimeLimit).attach(&iopts)
		}
		res, err := runner.Solve(ctx, g, iopts)
		if err != nil && !mcerrors.Is(err, mcerrors.ErrCodeVerification) {
			if errors.Is(err, context.Canceled) {
				return failed
			}
			logger.Error("Search failed", "instance", in.Name, "err", err)
			failed++
			continue
		}
		if err != nil {
			logger.Warn("Result failed verification", "instance", in.Name, "err", err)
		}

		row := report.NewRow(in.Name, in.File, in.KnownBest, res, oneBased)
		run.Rows = append(run.Rows, row)
		logger.Infof("%s: clique %d (heuristic %.3fs, bnb %.3fs, complete %v)",
			in.Name, row.Size, row.HeuristicTime, row.ExactTime, row.Complete)
	}
	return failed
}

// writeReports writes the requested CSV and Parquet files.
func writeReports(rows []report.Row, opts *benchOpts) error {
	switch opts.csvPath {
	case "":
	case "-":
		if err := report.WriteCSV(os.Stdout, rows); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	default:
		f, err := os.Create(opts.csvPath)
		if err != nil {
			return fmt.Errorf("create csv: %w", err)
		}
		if err := report.WriteCSV(f, rows); err != nil {
			f.Close()
			return fmt.Errorf("write csv: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		printFile(opts.csvPath)
	}

	if opts.parquet != "" {
		if err := report.WriteParquet(opts.parquet, rows); err != nil {
			return err
		}
		printFile(opts.parquet)
	}
	return nil
}

// saveRun stores run in the configured store. Storage problems are logged,
// not returned: the report has already been printed.
func (c *CLI) saveRun(ctx context.Context, logger *log.Logger, run *report.Run) {
	store, err := c.newStore(ctx)
	if err != nil {
		logger.Warn("Run not saved", "err", err)
		return
	}
	if store == nil {
		return
	}
	defer store.Close(context.WithoutCancel(ctx))

	if err := store.Save(ctx, run); err != nil {
		logger.Warn("Run not saved", "err", err)
		return
	}
	printNextStep("Saved run "+shortID(run.ID), "maxclique runs show "+run.ID)
}
