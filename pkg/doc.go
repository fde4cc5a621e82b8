// Package pkg holds the libraries behind the maxclique command.
//
// # Overview
//
// Maxclique finds maximum cliques in simple undirected graphs. A run has two
// phases: a tabu local search over a partition of the vertices produces a
// large clique quickly, and a branch and bound bounded by greedy coloring
// then proves it maximum or improves on it before the time limit.
//
// The packages are layered bottom up:
//
//  1. [graph] - immutable graph model and the DIMACS reader and writer
//  2. [order], [coloring] - vertex orderings and greedy sequential coloring
//  3. [clique] - greedy construction, tabu search, branch and bound, verification
//  4. [solver] - options, quality levels and the cached Runner
//  5. [cache], [report], [suite] - result caching, benchmark reports and suites
//  6. [render] - Graphviz output with the clique highlighted
//  7. [errors], [observability], [buildinfo] - shared infrastructure
//
// # Quick Start
//
//	g, _, err := graph.ReadDIMACSFile("brock200_1.clq")
//	if err != nil {
//	    return err
//	}
//
//	runner := solver.NewRunner(nil, nil, logger)
//	res, err := runner.Solve(ctx, g, solver.Options{
//	    Quality:   solver.QualityOptimal,
//	    TimeLimit: time.Minute,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Size, res.Complete)
//
// Without a solver the algorithms can be driven directly:
//
//	tabu := clique.NewTabuSearch(g, solver.NewRand(1), clique.TabuOptions{})
//	heuristic := tabu.Run(ctx, 1000)
//	exact := clique.NewBranchAndBound(g, clique.BnBOptions{}).Run(ctx, heuristic.Clique)
//
// # Determinism
//
// Every randomized step draws from a generator seeded by [solver.Options.Seed].
// Equal graphs, options and seeds give equal cliques; the time limit is the
// only source of variation between runs.
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/maxclique/pkg/graph
// [order]: https://pkg.go.dev/github.com/matzehuels/maxclique/pkg/order
// [coloring]: https://pkg.go.dev/github.com/matzehuels/maxclique/pkg/coloring
// [clique]: https://pkg.go.dev/github.com/matzehuels/maxclique/pkg/clique
// [solver]: https://pkg.go.dev/github.com/matzehuels/maxclique/pkg/solver
// [solver.Options.Seed]: https://pkg.go.dev/github.com/matzehuels/maxclique/pkg/solver#Options
// [cache]: https://pkg.go.dev/github.com/matzehuels/maxclique/pkg/cache
// [report]: https://pkg.go.dev/github.com/matzehuels/maxclique/pkg/report
// [suite]: https://pkg.go.dev/github.com/matzehuels/maxclique/pkg/suite
// [render]: https://pkg.go.dev/github.com/matzehuels/maxclique/pkg/render
// [errors]: https://pkg.go.dev/github.com/matzehuels/maxclique/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/maxclique/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/maxclique/pkg/buildinfo
package pkg
