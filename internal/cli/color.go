package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	mcerrors "github.com/matzehuels/maxclique/pkg/errors"
	"github.com/matzehuels/maxclique/pkg/order"
	"github.com/matzehuels/maxclique/pkg/solver"
)

// colorOpts holds the command-line flags for the color command.
type colorOpts struct {
	strategy string
	seed     uint64
	noCache  bool
	classes  int // number of color classes to list, 0 for all
	oneBased bool
}

// colorCommand creates the greedy coloring command.
func (c *CLI) colorCommand() *cobra.Command {
	opts := colorOpts{strategy: order.SmallestLast.String(), seed: solver.DefaultSeed, classes: 10}

	cmd := &cobra.Command{
		Use:   "color <graph.clq>",
		Short: "Greedily color a graph and check the coloring",
		Long: `Greedily color a graph along a vertex ordering and check that every vertex
is colored and no edge joins two vertices of the same color.

The number of colors bounds the maximum clique size from above. Color
classes are listed largest first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runColor(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.strategy, "order", "o", opts.strategy, "vertex order: "+strategyNames())
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "seed for the random order")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().IntVar(&opts.classes, "classes", opts.classes, "color classes to list (0 for all)")
	cmd.Flags().BoolVar(&opts.oneBased, "one-based", false, "print 1-indexed vertex ids")

	return cmd
}

func strategyNames() string {
	names := make([]string, 0, len(order.Strategies()))
	for _, s := range order.Strategies() {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}

func (c *CLI) runColor(cmd *cobra.Command, path string, opts *colorOpts) error {
	ctx := cmd.Context()

	strategy, err := order.ParseStrategy(opts.strategy)
	if err != nil {
		return mcerrors.Wrap(mcerrors.ErrCodeInvalidOption, err, "--order")
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

	prog := newProgress(loggerFromContext(ctx))
	res, err := runner.Color(ctx, g, strategy, opts.seed)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Colored with %s order", res.Ordering))

	printSuccess("%s colors, coloring checked", StyleNumber.Render(fmt.Sprint(res.MaxColor)))
	printStats(g.VertexCount(), g.EdgeCount(), 0, res.Cached)
	printNewline()

	classes := res.Classes
	limit := len(classes)
	if opts.classes > 0 {
		limit = min(limit, opts.classes)
	}
	for _, members := range classes[:limit] {
		col := res.Colors[members[0]]
		printKeyValue(fmt.Sprintf("Color %d", col), fmt.Sprintf("%d vertices %s", len(members), formatIDs(members, opts.oneBased)))
	}
	if limit < len(classes) {
		printDetail("... %d more classes (--classes 0 lists all)", len(classes)-limit)
	}
	return nil
}

// formatIDs prints up to 12 vertex ids.
func formatIDs(ids []int, oneBased bool) string {
	const maxShown = 12
	off := 0
	if oneBased {
		off = 1
	}
	parts := make([]string, 0, min(len(ids), maxShown))
	for _, v := range ids[:min(len(ids), maxShown)] {
		parts = append(parts, fmt.Sprint(v+off))
	}
	s := strings.Join(parts, " ")
	if len(ids) > maxShown {
		s += " ..."
	}
	return StyleDim.Render(s)
}
