package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	mcerrors "github.com/matzehuels/maxclique/pkg/errors"
	"github.com/matzehuels/maxclique/pkg/report"
)

// runsCommand creates the command for inspecting stored benchmark runs.
func (c *CLI) runsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect stored benchmark runs",
	}

	cmd.AddCommand(c.runsListCommand())
	cmd.AddCommand(c.runsShowCommand())

	return cmd
}

func (c *CLI) runsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.requireStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			runs, err := store.List(ctx, limit)
			if err != nil {
				return mcerrors.Wrap(mcerrors.ErrCodeStorage, err, "list runs")
			}
			if len(runs) == 0 {
				printInfo("No stored runs")
				return nil
			}
			for _, r := range runs {
				sum := r.Summarize()
				fmt.Printf("%s  %s  %-16s %s\n",
					StyleHighlight.Render(shortID(r.ID)),
					StyleDim.Render(r.CreatedAt.Local().Format(time.DateTime)),
					r.Suite,
					StyleDim.Render(fmt.Sprintf("%d instances, %d complete, %s", sum.Instances, sum.Complete, r.Quality)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs (0 for all)")
	return cmd
}

func (c *CLI) runsShowCommand() *cobra.Command {
	var csvOut bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the report of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.requireStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			run, err := store.Get(ctx, args[0])
			if errors.Is(err, report.ErrNotFound) {
				return mcerrors.Wrap(mcerrors.ErrCodeRunNotFound, err, "run")
			}
			if err != nil {
				return mcerrors.Wrap(mcerrors.ErrCodeStorage, err, "get run")
			}

			if csvOut {
				return report.WriteCSV(os.Stdout, run.Rows)
			}
			printKeyValue("Run", run.ID)
			printKeyValue("Suite", run.Suite)
			printKeyValue("Created", run.CreatedAt.Local().Format(time.DateTime))
			printKeyValue("Settings", fmt.Sprintf("%s, time limit %s, seed %d", run.Quality, run.TimeLimit, run.Seed))
			printNewline()
			fmt.Println(benchTable(run.Rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&csvOut, "csv", false, "print the report as CSV")
	return cmd
}

// requireStore opens the run store or explains how to enable one.
func (c *CLI) requireStore(cmd *cobra.Command) (report.Store, error) {
	store, err := c.newStore(cmd.Context())
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, mcerrors.New(mcerrors.ErrCodeUnsupported, "run storage is disabled (report.store = none)")
	}
	return store, nil
}

// shortID abbreviates a run id for listings.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
