// Package clique searches for maximum cliques in undirected graphs.
//
// # Overview
//
// The package combines three searches over an immutable [graph.Graph]:
//
//   - [RandomizedGreedy]: repeated randomized construction over a static
//     vertex order. Fast and shallow.
//   - [TabuSearch]: randomized construction followed by Move, Swap and
//     destroy operators under a tabu discipline. This is the usual source of
//     the initial incumbent.
//   - [BranchAndBound]: exact enumeration over the elimination order, pruned
//     with greedy coloring bounds and stopped at a wall-clock deadline.
//
// The local searches are built on [Partition], which keeps every vertex in
// exactly one of three zones (clique, free candidates, excluded) and moves
// vertices between zones in time proportional to the complement degree of
// the vertex being inserted or removed.
//
// # Determinism
//
// Randomness always comes from a *rand.Rand owned by the caller. Two runs
// with equal seeds, inputs and iteration counts produce cliques of equal
// size. The branch-and-bound search is deterministic apart from its
// deadline.
//
// # Verification
//
// Every result can be checked with [Verify], which scans all vertex pairs.
// A failure there is a programming error, never an input error.
//
// [graph.Graph]: github.com/matzehuels/maxclique/pkg/graph
package clique
