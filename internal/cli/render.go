package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/maxclique/pkg/graph"
	"github.com/matzehuels/maxclique/pkg/order"
	"github.com/matzehuels/maxclique/pkg/render"
	"github.com/matzehuels/maxclique/pkg/solver"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	searchFlags
	output     string   // output file (single format) or base path (multiple)
	formats    []string // dot, svg, png
	layout     string   // graphviz engine
	noClique   bool     // skip the search, draw the plain graph
	colors     bool     // fill vertices by greedy color class
	cliqueOnly bool     // drop vertices with no clique neighbour
	oneBased   bool
}

// renderCommand creates the render command for drawing a graph with its
// maximum clique highlighted.
//
// Default settings:
//   - format: svg
//   - layout: neato
//   - quality: balanced (tabu search only, no exhaustive search)
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{layout: string(render.LayoutNeato)}

	cmd := &cobra.Command{
		Use:   "render <graph.clq>",
		Short: "Draw a graph with its clique highlighted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if _, err := render.ParseLayout(opts.layout); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().Lookup("quality").DefValue = string(solver.QualityBalanced)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.layout, "layout", opts.layout, "graphviz layout: neato, circo, fdp, sfdp")
	cmd.Flags().BoolVar(&opts.noClique, "no-clique", false, "draw the graph without searching for a clique")
	cmd.Flags().BoolVar(&opts.colors, "colors", false, "fill vertices by greedy color class")
	cmd.Flags().BoolVar(&opts.cliqueOnly, "clique-only", false, "draw only the clique and its neighbourhood")
	cmd.Flags().BoolVar(&opts.oneBased, "one-based", false, "label vertices with DIMACS ids")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{string(render.FormatSVG)}
	}
	return strings.Split(s, ",")
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := render.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, .dot), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := render.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()

	g, err := loadGraph(ctx, input)
	if err != nil {
		return err
	}
	dot, err := c.buildDOT(cmd, g, opts)
	if err != nil {
		return err
	}

	base := basePath(opts.output, input)
	for _, f := range opts.formats {
		path := base + "." + f
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := renderTo(ctx, dot, render.Layout(opts.layout), render.Format(f), path); err != nil {
			return err
		}
	}
	return nil
}

// buildDOT solves for the clique (unless disabled) and converts g to DOT.
func (c *CLI) buildDOT(cmd *cobra.Command, g *graph.Graph, opts *renderOpts) (string, error) {
	ctx := cmd.Context()
	dopts := render.Options{OneBased: opts.oneBased, CliqueOnly: opts.cliqueOnly}
	if opts.noClique && opts.cliqueOnly {
		return "", fmt.Errorf("--clique-only needs a clique; drop --no-clique")
	}

	needRunner := !opts.noClique || opts.colors
	if !needRunner {
		return render.ToDOT(g, dopts), nil
	}
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return "", err
	}
	defer runner.Close()

	if !opts.noClique {
		cfg := c.cfg.Solver
		if !cmd.Flags().Changed("quality") {
			cfg.Quality = string(solver.QualityBalanced)
		}
		sopts, err := opts.options(cmd, cfg)
		if err != nil {
			return "", err
		}
		res, err := runner.Solve(ctx, g, sopts)
		if err != nil {
			return "", err
		}
		printInfo("Highlighting clique of %d", res.Size)
		dopts.Clique = res.Clique
	}
	if opts.colors {
		col, err := runner.Color(ctx, g, order.SmallestLast, opts.seed)
		if err != nil {
			return "", err
		}
		dopts.Colors = col.Colors
	}
	return render.ToDOT(g, dopts), nil
}

func renderTo(ctx context.Context, dot string, layout render.Layout, format render.Format, path string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	data, err := render.Render(ctx, dot, layout, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	prog.done("Rendered " + string(format))
	printFile(path)
	return nil
}
